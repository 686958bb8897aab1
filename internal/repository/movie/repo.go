// Package movie executes movie queries against the movies collection.
package movie

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/domain"
	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/page"
	"github.com/kailas-cloud/cinedex/internal/query"
)

// store is the consumer interface for movies (ISP).
type store interface {
	Find(ctx context.Context, collection string, filter any, opts db.FindOptions, out any) error
	FindOne(ctx context.Context, collection string, filter, projection, out any) error
	Count(ctx context.Context, collection string, filter any) (int64, error)
	InsertOne(ctx context.Context, collection string, doc any) (any, error)
	InsertMany(ctx context.Context, collection string, docs []any) ([]any, error)
	UpdateOne(ctx context.Context, collection string, filter, update any) (db.UpdateResult, error)
	UpdateMany(ctx context.Context, collection string, filter, update any) (db.UpdateResult, error)
	ReplaceOne(ctx context.Context, collection string, filter, replacement any) (db.UpdateResult, error)
	DeleteOne(ctx context.Context, collection string, filter any) (int64, error)
	DeleteMany(ctx context.Context, collection string, filter any) (int64, error)
	FindOneAndDelete(ctx context.Context, collection string, filter, out any) error
}

// listProjection keeps stored vectors out of list responses.
var listProjection = bson.D{{Key: "plot_embedding", Value: 0}}

// Repo implements usecase/movie.Repository.
type Repo struct {
	store      store
	collection string
}

// New creates a movie repository over the named collection.
func New(s store, collection string) *Repo {
	return &Repo{store: s, collection: collection}
}

// List returns one page of movies matching filter.
func (r *Repo) List(ctx context.Context, filter, sort bson.D, p page.Page) ([]dommovie.Movie, error) {
	movies := []dommovie.Movie{}
	opts := db.FindOptions{
		Sort:       sort,
		Projection: listProjection,
		Skip:       int64(p.Skip),
		Limit:      int64(p.Limit),
	}
	if err := r.store.Find(ctx, r.collection, filter, opts, &movies); err != nil {
		return nil, storeErr("list movies", err)
	}
	return movies, nil
}

// Count returns the number of movies matching filter.
func (r *Repo) Count(ctx context.Context, filter bson.D) (int64, error) {
	n, err := r.store.Count(ctx, r.collection, filter)
	if err != nil {
		return 0, storeErr("count movies", err)
	}
	return n, nil
}

// Get returns the movie with id.
func (r *Repo) Get(ctx context.Context, id primitive.ObjectID) (dommovie.Movie, error) {
	var m dommovie.Movie
	if err := r.store.FindOne(ctx, r.collection, query.ByID(id), listProjection, &m); err != nil {
		if errors.Is(err, db.ErrNoDocuments) {
			return dommovie.Movie{}, notFound(id)
		}
		return dommovie.Movie{}, storeErr("get movie", err)
	}
	return m, nil
}

// Insert stores m under a fresh identifier.
func (r *Repo) Insert(ctx context.Context, m dommovie.Movie) (primitive.ObjectID, error) {
	m.ID = primitive.NewObjectID()
	if _, err := r.store.InsertOne(ctx, r.collection, m); err != nil {
		return primitive.NilObjectID, storeErr("insert movie", err)
	}
	return m.ID, nil
}

// InsertMany stores movies in order under fresh identifiers.
func (r *Repo) InsertMany(ctx context.Context, movies []dommovie.Movie) ([]primitive.ObjectID, error) {
	docs := make([]any, len(movies))
	ids := make([]primitive.ObjectID, len(movies))
	for i := range movies {
		m := movies[i]
		m.ID = primitive.NewObjectID()
		ids[i] = m.ID
		docs[i] = m
	}
	if _, err := r.store.InsertMany(ctx, r.collection, docs); err != nil {
		return nil, storeErr("insert movies", err)
	}
	return ids, nil
}

// Update applies update to the movie with id and returns the matched count.
func (r *Repo) Update(ctx context.Context, id primitive.ObjectID, update bson.D) (int64, error) {
	res, err := r.store.UpdateOne(ctx, r.collection, query.ByID(id), update)
	if err != nil {
		return 0, storeErr("update movie", err)
	}
	return res.Matched, nil
}

// UpdateMany applies update to every movie matching filter.
func (r *Repo) UpdateMany(ctx context.Context, filter, update bson.D) (dommovie.UpdateCounts, error) {
	res, err := r.store.UpdateMany(ctx, r.collection, filter, update)
	if err != nil {
		return dommovie.UpdateCounts{}, storeErr("update movies", err)
	}
	return dommovie.UpdateCounts{Matched: res.Matched, Modified: res.Modified}, nil
}

// Replace overwrites the movie with id and returns the matched count.
func (r *Repo) Replace(ctx context.Context, id primitive.ObjectID, m dommovie.Movie) (int64, error) {
	m.ID = id
	res, err := r.store.ReplaceOne(ctx, r.collection, query.ByID(id), m)
	if err != nil {
		return 0, storeErr("replace movie", err)
	}
	return res.Matched, nil
}

// Delete removes the movie with id and returns the deleted count.
func (r *Repo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	n, err := r.store.DeleteOne(ctx, r.collection, query.ByID(id))
	if err != nil {
		return 0, storeErr("delete movie", err)
	}
	return n, nil
}

// DeleteMany removes every movie matching filter.
func (r *Repo) DeleteMany(ctx context.Context, filter bson.D) (int64, error) {
	n, err := r.store.DeleteMany(ctx, r.collection, filter)
	if err != nil {
		return 0, storeErr("delete movies", err)
	}
	return n, nil
}

// FindAndDelete removes the movie with id and returns it.
func (r *Repo) FindAndDelete(ctx context.Context, id primitive.ObjectID) (dommovie.Movie, error) {
	var m dommovie.Movie
	if err := r.store.FindOneAndDelete(ctx, r.collection, query.ByID(id), &m); err != nil {
		if errors.Is(err, db.ErrNoDocuments) {
			return dommovie.Movie{}, notFound(id)
		}
		return dommovie.Movie{}, storeErr("find and delete movie", err)
	}
	return m, nil
}

func notFound(id primitive.ObjectID) error {
	return &domain.NotFoundError{Resource: "movie", ID: id.Hex()}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrDatabaseOperation, err)
}
