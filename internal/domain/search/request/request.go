package request

import (
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/page"
	"github.com/kailas-cloud/cinedex/internal/domain/search/mode"
)

// Search parameter limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Searchable names the fields a keyword search can target.
type Searchable struct {
	Plot      string
	FullPlot  string
	Directors string
	Writers   string
	Cast      string
}

// Request is a validated compound keyword search.
type Request struct {
	fields     Searchable
	searchMode mode.Mode
	skip       int
	limit      int
}

// New validates and normalizes search parameters.
// Defaults: mode=must, limit=20 in [1,100], skip=0.
func New(fields Searchable, m mode.Mode, limit, skip *int) (Request, error) {
	fields = Searchable{
		Plot:      strings.TrimSpace(fields.Plot),
		FullPlot:  strings.TrimSpace(fields.FullPlot),
		Directors: strings.TrimSpace(fields.Directors),
		Writers:   strings.TrimSpace(fields.Writers),
		Cast:      strings.TrimSpace(fields.Cast),
	}
	if fields == (Searchable{}) {
		return Request{}, domain.NewValidationError(
			"at least one search parameter must be provided (plot, fullplot, directors, writers, cast)")
	}
	if m == "" {
		m = mode.Must
	}
	if !m.IsValid() {
		return Request{}, domain.NewValidationError("invalid search mode: %q", m)
	}
	return Request{
		fields:     fields,
		searchMode: m,
		skip:       page.Clamp(skip, 0, 0, -1),
		limit:      page.Clamp(limit, DefaultLimit, 1, MaxLimit),
	}, nil
}

// Fields returns the trimmed search terms.
func (r *Request) Fields() Searchable { return r.fields }

// Mode returns the compound clause.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Skip returns the number of rows skipped.
func (r *Request) Skip() int { return r.skip }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }
