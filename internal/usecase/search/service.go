// Package search orchestrates keyword, vector and find-similar searches.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
)

// Service handles movie search.
type Service struct {
	repo  Repository
	embed Embedder
}

// New creates a search service. embed may be nil when no provider is configured.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Keyword runs a compound full-text search.
func (s *Service) Keyword(ctx context.Context, req request.Request) (result.Page, error) {
	movies, err := s.repo.Keyword(ctx, req)
	if err != nil {
		return result.Page{}, fmt.Errorf("keyword search: %w", err)
	}
	return result.Page{Movies: movies, TotalCount: len(movies)}, nil
}

// Vector embeds the query, finds candidates in the embedded collection and
// loads them from the canonical collection. The phases are not atomic.
func (s *Service) Vector(ctx context.Context, req request.VectorRequest) ([]result.Hit, error) {
	vector, err := s.embedQuery(ctx, req.Query())
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.VectorCandidates(ctx, vector, req)
	if err != nil {
		return nil, fmt.Errorf("vector candidates: %w", err)
	}
	ids, scores := candidateIDs(candidates)
	if len(ids) == 0 {
		return []result.Hit{}, nil
	}

	hits, err := s.repo.HitsByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load hits: %w", err)
	}
	return rank(hits, scores), nil
}

// Similar returns movies whose plot embedding is nearest to the source movie's.
func (s *Service) Similar(ctx context.Context, req request.SimilarRequest) ([]result.ScoredMovie, error) {
	vector, err := s.repo.PlotEmbedding(ctx, req.ID())
	if err != nil {
		return nil, fmt.Errorf("source embedding: %w", err)
	}
	if len(vector) == 0 {
		return nil, domain.NewValidationError("movie %s has no plot embedding", req.ID().Hex())
	}

	movies, err := s.repo.Similar(ctx, vector, req)
	if err != nil {
		return nil, fmt.Errorf("similar search: %w", err)
	}
	return movies, nil
}

func (s *Service) embedQuery(ctx context.Context, text string) ([]float32, error) {
	if s.embed == nil {
		return nil, domain.ErrEmbeddingNotConfigured
	}
	res, err := s.embed.Embed(ctx, text)
	if err != nil {
		if errors.Is(err, domain.ErrEmbeddingService) {
			return nil, fmt.Errorf("embed query: %w", err)
		}
		return nil, domain.NewEmbeddingError("embed query", err)
	}
	if len(res.Embedding) == 0 {
		return nil, domain.NewEmbeddingError("embedding service returned no vector", nil)
	}
	return res.Embedding, nil
}
