package cinedex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
)

// SearchService runs keyword and vector searches.
type SearchService struct {
	svc searchUseCase
	obs *observer
}

// Keyword runs a compound full-text search.
func (s *SearchService) Keyword(ctx context.Context, q KeywordQuery) (_ KeywordPage, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.keyword", start, err) }()

	req, err := request.New(request.Searchable{
		Plot:      q.Plot,
		FullPlot:  q.FullPlot,
		Directors: q.Directors,
		Writers:   q.Writers,
		Cast:      q.Cast,
	}, q.Mode, positive(q.Limit), positive(q.Skip))
	if err != nil {
		return KeywordPage{}, fmt.Errorf("keyword search: %w", err)
	}
	page, err := s.svc.Keyword(ctx, req)
	if err != nil {
		return KeywordPage{}, fmt.Errorf("keyword search: %w", err)
	}
	return page, nil
}

// Vector finds movies whose plots are semantically close to text.
func (s *SearchService) Vector(ctx context.Context, text string, limit int) (_ []VectorHit, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.vector", start, err) }()

	req, err := request.NewVector(text, positive(limit))
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	hits, err := s.svc.Vector(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return hits, nil
}

// Similar finds movies whose plot embeddings are nearest to the given movie's.
func (s *SearchService) Similar(ctx context.Context, movieID string, limit int) (_ []SimilarHit, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.similar", start, err) }()

	req, err := request.NewSimilar(movieID, positive(limit))
	if err != nil {
		return nil, fmt.Errorf("similar search: %w", err)
	}
	movies, err := s.svc.Similar(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("similar search: %w", err)
	}
	return movies, nil
}
