// Package page normalizes pagination and sort parameters.
package page

import "strings"

// Defaults for list queries.
const (
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultSort  = "title"
)

// Clamp returns def when v is nil, otherwise v bounded to [lo, hi].
// A negative hi means no upper bound.
func Clamp(v *int, def, lo, hi int) int {
	if v == nil {
		return def
	}
	n := *v
	if n < lo {
		n = lo
	}
	if hi >= 0 && n > hi {
		n = hi
	}
	return n
}

// Page is a normalized skip/limit window.
type Page struct {
	Skip  int
	Limit int
}

// New clamps limit to [1, MaxLimit] (default DefaultLimit) and skip to [0, ∞).
func New(limit, skip *int) Page {
	return Page{
		Skip:  Clamp(skip, 0, 0, -1),
		Limit: Clamp(limit, DefaultLimit, 1, MaxLimit),
	}
}

// Number returns the 1-based page number for the window.
func (p Page) Number() int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Skip/p.Limit + 1
}

// Pages returns the page count for total items.
func (p Page) Pages(total int64) int64 {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	return (total + int64(p.Limit) - 1) / int64(p.Limit)
}

// Sort is a normalized single-field ordering.
type Sort struct {
	Field      string
	Descending bool
}

// NewSort defaults the field to DefaultSort; only "desc" (any case) sorts descending.
func NewSort(field, order string) Sort {
	field = strings.TrimSpace(field)
	if field == "" {
		field = DefaultSort
	}
	return Sort{Field: field, Descending: strings.EqualFold(strings.TrimSpace(order), "desc")}
}

// Direction returns 1 for ascending and -1 for descending.
func (s Sort) Direction() int {
	if s.Descending {
		return -1
	}
	return 1
}
