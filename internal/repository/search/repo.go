// Package search builds and runs the keyword and vector search pipelines.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/query"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Aggregate(ctx context.Context, collection string, pipeline, out any) error
	FindOne(ctx context.Context, collection string, filter, projection, out any) error
}

// Config names the collections and indexes searched.
type Config struct {
	Movies         string
	EmbeddedMovies string
	SearchIndex    string
	VectorIndex    string
	VectorPath     string
	SimilarIndex   string
	SimilarPath    string
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
	cfg   Config
}

// New creates a search repository.
func New(s store, cfg Config) *Repo {
	return &Repo{store: s, cfg: cfg}
}

// Keyword runs a compound full-text search over movies.
func (r *Repo) Keyword(ctx context.Context, req request.Request) ([]movie.Movie, error) {
	movies := []movie.Movie{}
	if err := r.store.Aggregate(ctx, r.cfg.Movies, r.keywordPipeline(req), &movies); err != nil {
		return nil, storeErr("keyword search", err)
	}
	return movies, nil
}

// VectorCandidates returns identifiers and scores nearest to vector in the
// embedded movies collection.
func (r *Repo) VectorCandidates(
	ctx context.Context, vector []float32, req request.VectorRequest,
) ([]result.Candidate, error) {
	candidates := []result.Candidate{}
	if err := r.store.Aggregate(ctx, r.cfg.EmbeddedMovies, r.candidatesPipeline(vector, req), &candidates); err != nil {
		return nil, storeErr("vector search", err)
	}
	return candidates, nil
}

// HitsByID loads the public fields of the given movies. Order is unspecified.
func (r *Repo) HitsByID(ctx context.Context, ids []primitive.ObjectID) ([]result.Hit, error) {
	hits := []result.Hit{}
	if len(ids) == 0 {
		return hits, nil
	}
	if err := r.store.Aggregate(ctx, r.cfg.Movies, hitsPipeline(ids), &hits); err != nil {
		return nil, storeErr("load search hits", err)
	}
	return hits, nil
}

// PlotEmbedding returns the stored plot vector of a movie. A missing or
// non-numeric vector yields nil.
func (r *Repo) PlotEmbedding(ctx context.Context, id primitive.ObjectID) ([]float64, error) {
	var doc bson.Raw
	projection := bson.D{{Key: r.cfg.SimilarPath, Value: 1}}
	if err := r.store.FindOne(ctx, r.cfg.Movies, query.ByID(id), projection, &doc); err != nil {
		if errors.Is(err, db.ErrNoDocuments) {
			return nil, &domain.NotFoundError{Resource: "movie", ID: id.Hex()}
		}
		return nil, storeErr("load plot embedding", err)
	}
	val, err := doc.LookupErr(strings.Split(r.cfg.SimilarPath, ".")...)
	if err != nil {
		return nil, nil
	}
	var vector []float64
	if err := val.Unmarshal(&vector); err != nil {
		return nil, nil
	}
	return vector, nil
}

// Similar returns movies nearest to vector, excluding the source movie.
func (r *Repo) Similar(
	ctx context.Context, vector []float64, req request.SimilarRequest,
) ([]result.ScoredMovie, error) {
	movies := []result.ScoredMovie{}
	if err := r.store.Aggregate(ctx, r.cfg.Movies, r.similarPipeline(vector, req), &movies); err != nil {
		return nil, storeErr("similar search", err)
	}
	return movies, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrDatabaseOperation, err)
}
