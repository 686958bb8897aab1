package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/movie/patch"
	"github.com/kailas-cloud/cinedex/internal/query"
	movieuc "github.com/kailas-cloud/cinedex/internal/usecase/movie"
)

// updateManyRequest is the body of PATCH /api/movies.
type updateManyRequest struct {
	Filter query.Document `json:"filter" validate:"required"`
	Update query.Document `json:"update" validate:"required"`
}

// deleteManyRequest is the body of DELETE /api/movies.
type deleteManyRequest struct {
	Filter query.Document `json:"filter" validate:"required"`
}

// batchRequest is the body of POST /api/movies/batch.
type batchRequest []dommovie.Movie

type deletedResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// ListMovies handles GET /api/movies.
func (s *Server) ListMovies(w http.ResponseWriter, r *http.Request) {
	var (
		q                 movieuc.ListQuery
		text, genre       *string
		sortBy, sortOrder *string
	)
	err := bindQuery(r,
		queryParam{"q", &text},
		queryParam{"genre", &genre},
		queryParam{"year", &q.Filter.Year},
		queryParam{"minRating", &q.Filter.MinRating},
		queryParam{"maxRating", &q.Filter.MaxRating},
		queryParam{"limit", &q.Limit},
		queryParam{"skip", &q.Skip},
		queryParam{"sortBy", &sortBy},
		queryParam{"sortOrder", &sortOrder},
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	q.Filter.Text = deref(text)
	q.Filter.Genre = deref(genre)
	q.SortBy = deref(sortBy)
	q.SortOrder = deref(sortOrder)

	res, err := s.movies.List(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writePage(w, res.Movies, pagination{
		Page:  res.Page.Number(),
		Limit: res.Page.Limit,
		Total: res.Total,
		Pages: res.Page.Pages(res.Total),
	})
}

// GetMovie handles GET /api/movies/{id}.
func (s *Server) GetMovie(w http.ResponseWriter, r *http.Request) {
	m, err := s.movies.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", m)
}

// CreateMovie handles POST /api/movies.
func (s *Server) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var m dommovie.Movie
	if err := decodeBody(w, r, &m); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	created, err := s.movies.Create(r.Context(), m)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Movie created successfully", created)
}

// CreateMovies handles POST /api/movies/batch.
func (s *Server) CreateMovies(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	res, err := s.movies.CreateBatch(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, fmt.Sprintf("Successfully created %d movies", res.InsertedCount), res)
}

// UpdateMovie handles PATCH /api/movies/{id}.
func (s *Server) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	var p patch.Patch
	if err := decodeBody(w, r, &p); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	m, err := s.movies.Update(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Movie updated successfully", m)
}

// ReplaceMovie handles PUT /api/movies/{id}.
func (s *Server) ReplaceMovie(w http.ResponseWriter, r *http.Request) {
	var m dommovie.Movie
	if err := decodeBody(w, r, &m); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	replaced, err := s.movies.Replace(r.Context(), chi.URLParam(r, "id"), m)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Movie replaced successfully", replaced)
}

// UpdateMovies handles PATCH /api/movies.
func (s *Server) UpdateMovies(w http.ResponseWriter, r *http.Request) {
	var req updateManyRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if err := s.check(req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	counts, err := s.movies.UpdateMany(r.Context(), req.Filter, req.Update)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK,
		fmt.Sprintf("Update operation completed. Matched %d, modified %d", counts.Matched, counts.Modified),
		counts)
}

// DeleteMovie handles DELETE /api/movies/{id}.
func (s *Server) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := s.movies.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Movie deleted successfully", deletedResponse{DeletedCount: 1})
}

// DeleteMovies handles DELETE /api/movies.
func (s *Server) DeleteMovies(w http.ResponseWriter, r *http.Request) {
	var req deleteManyRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if err := s.check(req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	n, err := s.movies.DeleteMany(r.Context(), req.Filter)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, fmt.Sprintf("Deleted %d movies", n), deletedResponse{DeletedCount: n})
}

// FindAndDeleteMovie handles DELETE /api/movies/{id}/find-and-delete.
func (s *Server) FindAndDeleteMovie(w http.ResponseWriter, r *http.Request) {
	m, err := s.movies.FindAndDelete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Movie found and deleted successfully", m)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
