// Package report serves the catalogue reporting endpoints.
package report

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/page"
	domreport "github.com/kailas-cloud/cinedex/internal/domain/report"
)

// Service clamps report parameters and post-processes rows.
type Service struct {
	repo Repository
}

// New creates a report service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecentComments returns movies ordered by latest comment. An empty movieID
// reports across the catalogue.
func (s *Service) RecentComments(
	ctx context.Context, limit *int, movieID string,
) ([]domreport.MovieWithComments, error) {
	n := page.Clamp(limit, domreport.DefaultCommentsLimit, 1, domreport.MaxCommentsLimit)

	var id *primitive.ObjectID
	if strings.TrimSpace(movieID) != "" {
		oid, err := dommovie.ParseID(movieID)
		if err != nil {
			return nil, err
		}
		id = &oid
	}

	rows, err := s.repo.RecentComments(ctx, n, id)
	if err != nil {
		return nil, fmt.Errorf("recent comments: %w", err)
	}
	return rows, nil
}

// YearStatistics returns per-year rating statistics with averages rounded to 2dp.
func (s *Service) YearStatistics(ctx context.Context) ([]domreport.YearStatistics, error) {
	rows, err := s.repo.YearStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("year statistics: %w", err)
	}
	for i := range rows {
		rows[i].AverageRating = round2(rows[i].AverageRating)
	}
	return rows, nil
}

// DirectorStatistics returns the most prolific directors with averages rounded to 2dp.
func (s *Service) DirectorStatistics(ctx context.Context, limit *int) ([]domreport.DirectorStatistics, error) {
	n := page.Clamp(limit, domreport.DefaultDirectorsLimit, 1, domreport.MaxDirectorsLimit)
	rows, err := s.repo.DirectorStatistics(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("director statistics: %w", err)
	}
	for i := range rows {
		rows[i].AverageRating = round2(rows[i].AverageRating)
	}
	return rows, nil
}

// round2 rounds half away from zero to two decimals.
func round2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*100) / 100
	return &r
}
