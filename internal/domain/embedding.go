package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// ConfigChecker reports whether an embedding provider has usable credentials.
type ConfigChecker interface {
	Configured() bool
}

// EmbeddingResult carries the embedding vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding   []float32
	TotalTokens int
}
