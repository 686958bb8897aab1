package search

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
)

type mockRepo struct {
	keywordFn       func(ctx context.Context, req request.Request) ([]movie.Movie, error)
	candidatesFn    func(ctx context.Context, vector []float32, req request.VectorRequest) ([]result.Candidate, error)
	hitsByIDFn      func(ctx context.Context, ids []primitive.ObjectID) ([]result.Hit, error)
	plotEmbeddingFn func(ctx context.Context, id primitive.ObjectID) ([]float64, error)
	similarFn       func(ctx context.Context, vector []float64, req request.SimilarRequest) ([]result.ScoredMovie, error)

	storeCalls int
}

func (m *mockRepo) Keyword(ctx context.Context, req request.Request) ([]movie.Movie, error) {
	m.storeCalls++
	if m.keywordFn != nil {
		return m.keywordFn(ctx, req)
	}
	return []movie.Movie{}, nil
}

func (m *mockRepo) VectorCandidates(
	ctx context.Context, vector []float32, req request.VectorRequest,
) ([]result.Candidate, error) {
	m.storeCalls++
	if m.candidatesFn != nil {
		return m.candidatesFn(ctx, vector, req)
	}
	return []result.Candidate{}, nil
}

func (m *mockRepo) HitsByID(ctx context.Context, ids []primitive.ObjectID) ([]result.Hit, error) {
	m.storeCalls++
	if m.hitsByIDFn != nil {
		return m.hitsByIDFn(ctx, ids)
	}
	return []result.Hit{}, nil
}

func (m *mockRepo) PlotEmbedding(ctx context.Context, id primitive.ObjectID) ([]float64, error) {
	m.storeCalls++
	if m.plotEmbeddingFn != nil {
		return m.plotEmbeddingFn(ctx, id)
	}
	return nil, domain.ErrMovieNotFound
}

func (m *mockRepo) Similar(
	ctx context.Context, vector []float64, req request.SimilarRequest,
) ([]result.ScoredMovie, error) {
	m.storeCalls++
	if m.similarFn != nil {
		return m.similarFn(ctx, vector, req)
	}
	return []result.ScoredMovie{}, nil
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

func score(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
