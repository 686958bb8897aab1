package movie

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/page"
)

// Repository defines the storage contract for movies.
type Repository interface {
	List(ctx context.Context, filter, sort bson.D, p page.Page) ([]dommovie.Movie, error)
	Count(ctx context.Context, filter bson.D) (int64, error)
	Get(ctx context.Context, id primitive.ObjectID) (dommovie.Movie, error)
	Insert(ctx context.Context, m dommovie.Movie) (primitive.ObjectID, error)
	InsertMany(ctx context.Context, movies []dommovie.Movie) ([]primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, update bson.D) (matched int64, err error)
	UpdateMany(ctx context.Context, filter, update bson.D) (dommovie.UpdateCounts, error)
	Replace(ctx context.Context, id primitive.ObjectID, m dommovie.Movie) (matched int64, err error)
	Delete(ctx context.Context, id primitive.ObjectID) (deleted int64, err error)
	DeleteMany(ctx context.Context, filter bson.D) (deleted int64, err error)
	FindAndDelete(ctx context.Context, id primitive.ObjectID) (dommovie.Movie, error)
}
