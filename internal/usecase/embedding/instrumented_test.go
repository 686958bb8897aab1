package embedding

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterEmbeddingMetrics()
	os.Exit(m.Run())
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return m.result, m.err
}

type configuredEmbedder struct {
	mockEmbedder
	configured bool
}

func (c *configuredEmbedder) Configured() bool { return c.configured }

func TestInstrumentedEmbedder_Success(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:   []float32{0.1, 0.2, 0.3},
		TotalTokens: 4,
	}}
	p := NewInstrumentedEmbedder(inner, "voyage", "success-model", 3, zap.NewNop())

	result, err := p.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Embedding) != 3 {
		t.Errorf("expected 3 dimensions, got %d", len(result.Embedding))
	}
	got := testutil.ToFloat64(metrics.EmbeddingTokensTotal.WithLabelValues("voyage", "success-model"))
	if got != 4 {
		t.Errorf("tokens metric = %v, want 4", got)
	}
}

func TestInstrumentedEmbedder_InnerError(t *testing.T) {
	inner := &mockEmbedder{err: domain.ErrEmbeddingAuth}
	p := NewInstrumentedEmbedder(inner, "voyage", "m", 0, zap.NewNop())

	_, err := p.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbeddingAuth) {
		t.Errorf("expected ErrEmbeddingAuth, got %v", err)
	}
	if !errors.Is(err, domain.ErrEmbeddingService) {
		t.Errorf("expected ErrEmbeddingService in chain, got %v", err)
	}
}

func TestInstrumentedEmbedder_EmptyVector(t *testing.T) {
	p := NewInstrumentedEmbedder(&mockEmbedder{}, "voyage", "m", 0, zap.NewNop())

	_, err := p.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbeddingService) {
		t.Errorf("expected ErrEmbeddingService, got %v", err)
	}
}

func TestInstrumentedEmbedder_DimensionMismatch(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1, 2}}}
	p := NewInstrumentedEmbedder(inner, "voyage", "m", 2048, zap.NewNop())

	_, err := p.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbeddingService) {
		t.Errorf("expected ErrEmbeddingService, got %v", err)
	}
}

func TestInstrumentedEmbedder_Configured(t *testing.T) {
	if !NewInstrumentedEmbedder(&mockEmbedder{}, "p", "m", 0, zap.NewNop()).Configured() {
		t.Error("plain embedder should be reported configured")
	}
	inner := &configuredEmbedder{configured: false}
	if NewInstrumentedEmbedder(inner, "p", "m", 0, zap.NewNop()).Configured() {
		t.Error("expected unconfigured")
	}
}
