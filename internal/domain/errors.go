package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals malformed input rejected before any storage access.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedOperator signals a filter operator outside the supported set.
	ErrUnsupportedOperator = errors.New("unsupported operator")
	// ErrEmbeddingService signals an embedding provider failure.
	ErrEmbeddingService = errors.New("embedding service error")
	// ErrDatabaseOperation signals a storage failure.
	ErrDatabaseOperation = errors.New("database operation failed")
)

var (
	// ErrInvalidIdentifier signals an identifier that is not a 24-char hex ObjectID.
	ErrInvalidIdentifier = &ValidationError{Message: "invalid identifier format"}
	// ErrEmptyUpdate signals an update with no present fields.
	ErrEmptyUpdate = &ValidationError{Message: "no valid fields provided for update"}
	// ErrEmptyFilter signals an empty filter on a destructive operation.
	ErrEmptyFilter = &ValidationError{Message: "filter cannot be empty"}

	// ErrEmbeddingAuth signals rejected embedding credentials.
	ErrEmbeddingAuth = &EmbeddingError{Message: "invalid embedding API key"}
	// ErrEmbeddingNotConfigured signals a missing or placeholder embedding credential.
	ErrEmbeddingNotConfigured = &EmbeddingError{Message: "embedding API key not configured"}

	// ErrMovieNotFound is returned when no movie matches an identifier.
	ErrMovieNotFound = &NotFoundError{Resource: "movie"}
)

// ValidationError carries a client-facing reason and unwraps to ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError formats a validation failure.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Is matches any NotFoundError for the same resource, regardless of ID.
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	return ok && t.Resource == e.Resource
}

// OperatorError names the field and the operator that is not supported.
type OperatorError struct {
	Field    string
	Operator string
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("unsupported operator %q on field %q", e.Operator, e.Field)
}

func (e *OperatorError) Unwrap() error { return ErrUnsupportedOperator }

// EmbeddingError describes an embedding gateway failure. Cause is optional.
type EmbeddingError struct {
	Message string
	Cause   error
}

func (e *EmbeddingError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *EmbeddingError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrEmbeddingService}
	}
	return []error{ErrEmbeddingService, e.Cause}
}

// NewEmbeddingError wraps cause as an embedding failure.
func NewEmbeddingError(message string, cause error) error {
	return &EmbeddingError{Message: message, Cause: cause}
}
