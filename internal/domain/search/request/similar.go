package request

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/page"
)

// Vector and similarity limits.
const (
	DefaultVectorLimit = 10
	MaxVectorLimit     = 50
	// CandidateFactor scales the limit into the approximate-search candidate pool.
	CandidateFactor = 20
)

// VectorRequest is a validated natural-language similarity query.
type VectorRequest struct {
	query string
	limit int
}

// NewVector requires a non-blank query and clamps limit to [1,50], default 10.
func NewVector(query string, limit *int) (VectorRequest, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return VectorRequest{}, domain.NewValidationError("search query is required")
	}
	return VectorRequest{query: query, limit: page.Clamp(limit, DefaultVectorLimit, 1, MaxVectorLimit)}, nil
}

// Query returns the text to embed.
func (r *VectorRequest) Query() string { return r.query }

// Limit returns the maximum results to return.
func (r *VectorRequest) Limit() int { return r.limit }

// NumCandidates returns the candidate pool size.
func (r *VectorRequest) NumCandidates() int { return r.limit * CandidateFactor }

// SimilarRequest is a validated "find similar" query.
type SimilarRequest struct {
	id    primitive.ObjectID
	limit int
}

// NewSimilar parses the source movie id and clamps limit to [1,50], default 10.
func NewSimilar(id string, limit *int) (SimilarRequest, error) {
	if strings.TrimSpace(id) == "" {
		return SimilarRequest{}, domain.NewValidationError("movie id is required")
	}
	oid, err := movie.ParseID(id)
	if err != nil {
		return SimilarRequest{}, err
	}
	return SimilarRequest{id: oid, limit: page.Clamp(limit, DefaultVectorLimit, 1, MaxVectorLimit)}, nil
}

// ID returns the source movie identifier.
func (r *SimilarRequest) ID() primitive.ObjectID { return r.id }

// Limit returns the maximum results to return.
func (r *SimilarRequest) Limit() int { return r.limit }

// NumCandidates returns the candidate pool size.
func (r *SimilarRequest) NumCandidates() int { return r.limit * CandidateFactor }
