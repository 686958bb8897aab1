package cinedex

import (
	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/movie/patch"
	domreport "github.com/kailas-cloud/cinedex/internal/domain/report"
	"github.com/kailas-cloud/cinedex/internal/domain/search/mode"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/query"
)

// Catalogue types shared with the service.
type (
	Movie        = dommovie.Movie
	BatchResult  = dommovie.BatchResult
	UpdateCounts = dommovie.UpdateCounts
	Patch        = patch.Patch
	Document     = query.Document

	KeywordPage = result.Page
	VectorHit   = result.Hit
	SimilarHit  = result.ScoredMovie

	CommentsReport  = domreport.MovieWithComments
	YearReport      = domreport.YearStatistics
	DirectorsReport = domreport.DirectorStatistics

	SearchMode = mode.Mode
)

// Search modes.
const (
	Must    = mode.Must
	Should  = mode.Should
	MustNot = mode.MustNot
	Filter  = mode.Filter
)

// ListOptions narrows and pages a movie listing. Zero values take the service defaults.
type ListOptions struct {
	Text      string
	Genre     string
	Year      *int
	MinRating *float64
	MaxRating *float64
	Limit     int
	Skip      int
	SortBy    string
	SortOrder string
}

// ListResult is one page of movies.
type ListResult struct {
	Movies []Movie
	Total  int64
	Page   int
	Pages  int64
}

// KeywordQuery is a compound full-text search. At least one field must be set.
type KeywordQuery struct {
	Plot      string
	FullPlot  string
	Directors string
	Writers   string
	Cast      string
	Mode      SearchMode
	Limit     int
	Skip      int
}

// positive maps zero and negative values to "not provided".
func positive(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}
