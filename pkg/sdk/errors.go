package cinedex

import "github.com/kailas-cloud/cinedex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation             = domain.ErrValidation
	ErrNotFound               = domain.ErrNotFound
	ErrUnsupportedOperator    = domain.ErrUnsupportedOperator
	ErrEmbeddingService       = domain.ErrEmbeddingService
	ErrEmbeddingNotConfigured = domain.ErrEmbeddingNotConfigured
	ErrDatabaseOperation      = domain.ErrDatabaseOperation
)
