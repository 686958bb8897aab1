package cinedex

import (
	"context"
	"fmt"
	"time"
)

// ReportService runs the reporting aggregations.
type ReportService struct {
	svc reportUseCase
	obs *observer
}

// ByComments returns movies ordered by their latest comment. An empty movieID
// reports across the catalogue.
func (s *ReportService) ByComments(ctx context.Context, limit int, movieID string) (_ []CommentsReport, err error) {
	start := time.Now()
	defer func() { s.obs.observe("reports.comments", start, err) }()

	rows, err := s.svc.RecentComments(ctx, positive(limit), movieID)
	if err != nil {
		return nil, fmt.Errorf("comments report: %w", err)
	}
	return rows, nil
}

// ByYear returns rating statistics per release year.
func (s *ReportService) ByYear(ctx context.Context) (_ []YearReport, err error) {
	start := time.Now()
	defer func() { s.obs.observe("reports.years", start, err) }()

	rows, err := s.svc.YearStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("year report: %w", err)
	}
	return rows, nil
}

// ByDirectors returns the most prolific directors.
func (s *ReportService) ByDirectors(ctx context.Context, limit int) (_ []DirectorsReport, err error) {
	start := time.Now()
	defer func() { s.obs.observe("reports.directors", start, err) }()

	rows, err := s.svc.DirectorStatistics(ctx, positive(limit))
	if err != nil {
		return nil, fmt.Errorf("directors report: %w", err)
	}
	return rows, nil
}
