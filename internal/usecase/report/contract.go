package report

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	domreport "github.com/kailas-cloud/cinedex/internal/domain/report"
)

// Repository runs the reporting aggregations.
type Repository interface {
	RecentComments(ctx context.Context, limit int, movieID *primitive.ObjectID) ([]domreport.MovieWithComments, error)
	YearStatistics(ctx context.Context) ([]domreport.YearStatistics, error)
	DirectorStatistics(ctx context.Context, limit int) ([]domreport.DirectorStatistics, error)
}
