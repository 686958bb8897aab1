// Package movie implements catalogue CRUD on top of the query compilers.
package movie

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/domain"
	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/movie/patch"
	"github.com/kailas-cloud/cinedex/internal/domain/page"
	"github.com/kailas-cloud/cinedex/internal/query"
)

// ListQuery carries the raw list parameters.
type ListQuery struct {
	Filter    query.ListFilter
	Limit     *int
	Skip      *int
	SortBy    string
	SortOrder string
}

// ListResult is one page of movies plus the total match count.
type ListResult struct {
	Movies []dommovie.Movie
	Total  int64
	Page   page.Page
}

// Service handles movie CRUD.
type Service struct {
	repo Repository
}

// New creates a movie service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns a page of movies for q together with the total count.
func (s *Service) List(ctx context.Context, q ListQuery) (ListResult, error) {
	p := page.New(q.Limit, q.Skip)
	filter := q.Filter.Compile()
	sort := query.Order(page.NewSort(q.SortBy, q.SortOrder))

	movies, err := s.repo.List(ctx, filter, sort, p)
	if err != nil {
		return ListResult{}, fmt.Errorf("list: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return ListResult{}, fmt.Errorf("count: %w", err)
	}
	return ListResult{Movies: movies, Total: total, Page: p}, nil
}

// Get returns a single movie.
func (s *Service) Get(ctx context.Context, id string) (dommovie.Movie, error) {
	oid, err := dommovie.ParseID(id)
	if err != nil {
		return dommovie.Movie{}, err
	}
	m, err := s.repo.Get(ctx, oid)
	if err != nil {
		return dommovie.Movie{}, fmt.Errorf("get: %w", err)
	}
	return m, nil
}

// Create validates and stores a movie, returning it with its new identifier.
func (s *Service) Create(ctx context.Context, m dommovie.Movie) (dommovie.Movie, error) {
	if err := m.Validate(); err != nil {
		return dommovie.Movie{}, err
	}
	id, err := s.repo.Insert(ctx, m)
	if err != nil {
		return dommovie.Movie{}, fmt.Errorf("create: %w", err)
	}
	m.ID = id
	return m, nil
}

// CreateBatch validates every movie before writing any of them.
func (s *Service) CreateBatch(ctx context.Context, movies []dommovie.Movie) (dommovie.BatchResult, error) {
	if err := dommovie.ValidateBatch(movies); err != nil {
		return dommovie.BatchResult{}, err
	}
	ids, err := s.repo.InsertMany(ctx, movies)
	if err != nil {
		return dommovie.BatchResult{}, fmt.Errorf("create batch: %w", err)
	}
	return dommovie.BatchResult{InsertedCount: len(ids), InsertedIDs: ids}, nil
}

// Update applies a sparse patch and returns the stored result.
func (s *Service) Update(ctx context.Context, id string, p patch.Patch) (dommovie.Movie, error) {
	oid, err := dommovie.ParseID(id)
	if err != nil {
		return dommovie.Movie{}, err
	}
	update, err := query.Patch(p)
	if err != nil {
		return dommovie.Movie{}, err
	}
	matched, err := s.repo.Update(ctx, oid, update)
	if err != nil {
		return dommovie.Movie{}, fmt.Errorf("update: %w", err)
	}
	if matched == 0 {
		return dommovie.Movie{}, notFound(oid)
	}
	return s.reread(ctx, oid)
}

// UpdateMany applies update to every movie matching filter.
func (s *Service) UpdateMany(ctx context.Context, filter, update query.Document) (dommovie.UpdateCounts, error) {
	if len(filter) == 0 {
		return dommovie.UpdateCounts{}, domain.ErrEmptyFilter
	}
	f, err := query.Filter(filter)
	if err != nil {
		return dommovie.UpdateCounts{}, err
	}
	u, err := query.Update(update)
	if err != nil {
		return dommovie.UpdateCounts{}, err
	}
	counts, err := s.repo.UpdateMany(ctx, f, u)
	if err != nil {
		return dommovie.UpdateCounts{}, fmt.Errorf("update many: %w", err)
	}
	return counts, nil
}

// Replace overwrites a movie and returns the stored result.
func (s *Service) Replace(ctx context.Context, id string, m dommovie.Movie) (dommovie.Movie, error) {
	oid, err := dommovie.ParseID(id)
	if err != nil {
		return dommovie.Movie{}, err
	}
	if err := m.Validate(); err != nil {
		return dommovie.Movie{}, err
	}
	matched, err := s.repo.Replace(ctx, oid, m)
	if err != nil {
		return dommovie.Movie{}, fmt.Errorf("replace: %w", err)
	}
	if matched == 0 {
		return dommovie.Movie{}, notFound(oid)
	}
	return s.reread(ctx, oid)
}

// Delete removes a movie.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := dommovie.ParseID(id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if deleted == 0 {
		return notFound(oid)
	}
	return nil
}

// DeleteMany removes every movie matching a non-empty filter.
func (s *Service) DeleteMany(ctx context.Context, filter query.Document) (int64, error) {
	if len(filter) == 0 {
		return 0, domain.ErrEmptyFilter
	}
	f, err := query.Filter(filter)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.DeleteMany(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("delete many: %w", err)
	}
	return n, nil
}

// FindAndDelete removes a movie and returns it.
func (s *Service) FindAndDelete(ctx context.Context, id string) (dommovie.Movie, error) {
	oid, err := dommovie.ParseID(id)
	if err != nil {
		return dommovie.Movie{}, err
	}
	m, err := s.repo.FindAndDelete(ctx, oid)
	if err != nil {
		return dommovie.Movie{}, fmt.Errorf("find and delete: %w", err)
	}
	return m, nil
}

// reread loads the document after a write. The write and the read are not atomic.
func (s *Service) reread(ctx context.Context, id primitive.ObjectID) (dommovie.Movie, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return dommovie.Movie{}, fmt.Errorf("reread: %w", err)
	}
	return m, nil
}

func notFound(id primitive.ObjectID) error {
	return &domain.NotFoundError{Resource: "movie", ID: id.Hex()}
}
