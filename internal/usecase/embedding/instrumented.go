// Package embedding decorates the embedding gateway with logging, token
// accounting and response shape checks.
package embedding

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/metrics"
)

// InstrumentedEmbedder wraps Embedder with logging, token metrics and a
// dimension check. Transport metrics (requests, duration, errors) are
// recorded in transport/voyage.
type InstrumentedEmbedder struct {
	inner      domain.Embedder
	provider   string
	model      string
	dimensions int
	logger     *zap.Logger
}

// NewInstrumentedEmbedder wraps an embedder. dimensions <= 0 disables the check.
func NewInstrumentedEmbedder(
	inner domain.Embedder, provider, model string,
	dimensions int, logger *zap.Logger,
) *InstrumentedEmbedder {
	return &InstrumentedEmbedder{
		inner:      inner,
		provider:   provider,
		model:      model,
		dimensions: dimensions,
		logger:     logger,
	}
}

// Configured reports whether the wrapped embedder has usable credentials.
// Embedders that cannot tell are assumed configured.
func (p *InstrumentedEmbedder) Configured() bool {
	if c, ok := p.inner.(domain.ConfigChecker); ok {
		return c.Configured()
	}
	return true
}

// Embed delegates to the inner embedder, validates the vector and records usage.
func (p *InstrumentedEmbedder) Embed(
	ctx context.Context, text string,
) (domain.EmbeddingResult, error) {
	start := time.Now()

	result, err := p.inner.Embed(ctx, text)

	duration := time.Since(start)

	if err != nil {
		p.logger.Error("Embedding request failed",
			zap.String("provider", p.provider),
			zap.String("model", p.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}

	if len(result.Embedding) == 0 {
		return domain.EmbeddingResult{}, domain.NewEmbeddingError("empty embedding returned", nil)
	}
	if p.dimensions > 0 && len(result.Embedding) != p.dimensions {
		return domain.EmbeddingResult{}, domain.NewEmbeddingError(
			fmt.Sprintf("unexpected embedding dimensions: got %d, want %d", len(result.Embedding), p.dimensions), nil)
	}

	if result.TotalTokens > 0 {
		metrics.EmbeddingTokensTotal.WithLabelValues(p.provider, p.model).Add(float64(result.TotalTokens))
	}

	p.logger.Debug("Embedding request completed",
		zap.String("provider", p.provider),
		zap.String("model", p.model),
		zap.Duration("duration", duration),
		zap.Int("dimensions", len(result.Embedding)),
		zap.Int("total_tokens", result.TotalTokens),
	)

	return result, nil
}
