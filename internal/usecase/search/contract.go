package search

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
)

// Repository runs search pipelines.
type Repository interface {
	Keyword(ctx context.Context, req request.Request) ([]movie.Movie, error)
	VectorCandidates(ctx context.Context, vector []float32, req request.VectorRequest) ([]result.Candidate, error)
	HitsByID(ctx context.Context, ids []primitive.ObjectID) ([]result.Hit, error)
	PlotEmbedding(ctx context.Context, id primitive.ObjectID) ([]float64, error)
	Similar(ctx context.Context, vector []float64, req request.SimilarRequest) ([]result.ScoredMovie, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
