package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker reports whether the embedding provider has usable credentials.
type EmbeddingChecker interface {
	Configured() bool
}
