package cinedex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/cinedex/internal/query"
	movieuc "github.com/kailas-cloud/cinedex/internal/usecase/movie"
)

// MovieService manages catalogue records.
type MovieService struct {
	svc movieUseCase
	obs *observer
}

// List returns a filtered, sorted page of movies.
func (s *MovieService) List(ctx context.Context, opts ListOptions) (_ ListResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("movies.list", start, err) }()

	res, err := s.svc.List(ctx, movieuc.ListQuery{
		Filter: query.ListFilter{
			Text:      opts.Text,
			Genre:     opts.Genre,
			Year:      opts.Year,
			MinRating: opts.MinRating,
			MaxRating: opts.MaxRating,
		},
		Limit:     positive(opts.Limit),
		Skip:      positive(opts.Skip),
		SortBy:    opts.SortBy,
		SortOrder: opts.SortOrder,
	})
	if err != nil {
		return ListResult{}, fmt.Errorf("list movies: %w", err)
	}
	return ListResult{
		Movies: res.Movies,
		Total:  res.Total,
		Page:   res.Page.Number(),
		Pages:  res.Page.Pages(res.Total),
	}, nil
}

// Get retrieves a movie by its hex identifier.
func (s *MovieService) Get(ctx context.Context, id string) (_ Movie, err error) {
	start := time.Now()
	defer func() { s.obs.observe("movies.get", start, err) }()

	m, err := s.svc.Get(ctx, id)
	if err != nil {
		return Movie{}, fmt.Errorf("get movie: %w", err)
	}
	return m, nil
}

// Create stores a movie and returns it with its identifier.
func (s *MovieService) Create(ctx context.Context, m Movie) (_ Movie, err error) {
	start := time.Now()
	defer func() { s.obs.observe("movies.create", start, err) }()

	created, err := s.svc.Create(ctx, m)
	if err != nil {
		return Movie{}, fmt.Errorf("create movie: %w", err)
	}
	return created, nil
}

// CreateBatch stores movies after validating all of them.
func (s *MovieService) CreateBatch(ctx context.Context, movies []Movie) (_ BatchResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("movies.create_batch", start, err) }()

	res, err := s.svc.CreateBatch(ctx, movies)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create movies: %w", err)
	}
	return res, nil
}

// Update applies a sparse patch and returns the stored movie.
func (s *MovieService) Update(ctx context.Context, id string, p Patch) (_ Movie, err error) {
	start := time.Now()
	defer func() { s.obs.observe("movies.update", start, err) }()

	m, err := s.svc.Update(ctx, id, p)
	if err != nil {
		return Movie{}, fmt.Errorf("update movie: %w", err)
	}
	return m, nil
}

// Replace overwrites a movie and returns the stored movie.
func (s *MovieService) Replace(ctx context.Context, id string, m Movie) (_ Movie, err error) {
	start := time.Now()
	defer func() { s.obs.observe("movies.replace", start, err) }()

	replaced, err := s.svc.Replace(ctx, id, m)
	if err != nil {
		return Movie{}, fmt.Errorf("replace movie: %w", err)
	}
	return replaced, nil
}

// UpdateMany applies a free-form update to every movie matching filter.
func (s *MovieService) UpdateMany(ctx context.Context, filter, update Document) (_ UpdateCounts, err error) {
	start := time.Now()
	defer func() { s.obs.observe("movies.update_many", start, err) }()

	counts, err := s.svc.UpdateMany(ctx, filter, update)
	if err != nil {
		return UpdateCounts{}, fmt.Errorf("update movies: %w", err)
	}
	return counts, nil
}

// Delete removes a movie.
func (s *MovieService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("movies.delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	return nil
}

// DeleteMany removes every movie matching a non-empty filter.
func (s *MovieService) DeleteMany(ctx context.Context, filter Document) (_ int64, err error) {
	start := time.Now()
	defer func() { s.obs.observe("movies.delete_many", start, err) }()

	n, err := s.svc.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete movies: %w", err)
	}
	return n, nil
}

// FindAndDelete removes a movie and returns it.
func (s *MovieService) FindAndDelete(ctx context.Context, id string) (_ Movie, err error) {
	start := time.Now()
	defer func() { s.obs.observe("movies.find_and_delete", start, err) }()

	m, err := s.svc.FindAndDelete(ctx, id)
	if err != nil {
		return Movie{}, fmt.Errorf("find and delete movie: %w", err)
	}
	return m, nil
}
