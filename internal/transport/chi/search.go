package chi

import (
	"net/http"

	"github.com/kailas-cloud/cinedex/internal/domain/search/mode"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
)

// SearchMovies handles GET /api/movies/search.
func (s *Server) SearchMovies(w http.ResponseWriter, r *http.Request) {
	var (
		plot, fullplot, directors, writers, cast, searchMode *string
		limit, skip                                          *int
	)
	err := bindQuery(r,
		queryParam{"plot", &plot},
		queryParam{"fullplot", &fullplot},
		queryParam{"directors", &directors},
		queryParam{"writers", &writers},
		queryParam{"cast", &cast},
		queryParam{"searchOperator", &searchMode},
		queryParam{"limit", &limit},
		queryParam{"skip", &skip},
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	req, err := request.New(request.Searchable{
		Plot:      deref(plot),
		FullPlot:  deref(fullplot),
		Directors: deref(directors),
		Writers:   deref(writers),
		Cast:      deref(cast),
	}, mode.Mode(deref(searchMode)), limit, skip)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	page, err := s.search.Keyword(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", page)
}

// VectorSearch handles GET /api/movies/vector-search.
func (s *Server) VectorSearch(w http.ResponseWriter, r *http.Request) {
	var (
		q     *string
		limit *int
	)
	if err := bindQuery(r, queryParam{"q", &q}, queryParam{"limit", &limit}); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	req, err := request.NewVector(deref(q), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	hits, err := s.search.Vector(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", hits)
}

// FindSimilarMovies handles GET /api/movies/find-similar-movies.
func (s *Server) FindSimilarMovies(w http.ResponseWriter, r *http.Request) {
	var (
		movieID *string
		limit   *int
	)
	if err := bindQuery(r, queryParam{"movieId", &movieID}, queryParam{"limit", &limit}); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	req, err := request.NewSimilar(deref(movieID), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	movies, err := s.search.Similar(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", movies)
}

// ReportByComments handles GET /api/movies/aggregations/reportingByComments.
func (s *Server) ReportByComments(w http.ResponseWriter, r *http.Request) {
	var (
		movieID *string
		limit   *int
	)
	if err := bindQuery(r, queryParam{"movieId", &movieID}, queryParam{"limit", &limit}); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	rows, err := s.reports.RecentComments(r.Context(), limit, deref(movieID))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", rows)
}

// ReportByYear handles GET /api/movies/aggregations/reportingByYear.
func (s *Server) ReportByYear(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.YearStatistics(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", rows)
}

// ReportByDirectors handles GET /api/movies/aggregations/reportingByDirectors.
func (s *Server) ReportByDirectors(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if err := bindQuery(r, queryParam{"limit", &limit}); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	rows, err := s.reports.DirectorStatistics(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", rows)
}
