package movie

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/domain"
	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/page"
)

// mockRepo implements Repository for tests. Unset funcs behave like an empty collection.
type mockRepo struct {
	listFn          func(ctx context.Context, filter, sort bson.D, p page.Page) ([]dommovie.Movie, error)
	countFn         func(ctx context.Context, filter bson.D) (int64, error)
	getFn           func(ctx context.Context, id primitive.ObjectID) (dommovie.Movie, error)
	insertFn        func(ctx context.Context, m dommovie.Movie) (primitive.ObjectID, error)
	insertManyFn    func(ctx context.Context, movies []dommovie.Movie) ([]primitive.ObjectID, error)
	updateFn        func(ctx context.Context, id primitive.ObjectID, update bson.D) (int64, error)
	updateManyFn    func(ctx context.Context, filter, update bson.D) (dommovie.UpdateCounts, error)
	replaceFn       func(ctx context.Context, id primitive.ObjectID, m dommovie.Movie) (int64, error)
	deleteFn        func(ctx context.Context, id primitive.ObjectID) (int64, error)
	deleteManyFn    func(ctx context.Context, filter bson.D) (int64, error)
	findAndDeleteFn func(ctx context.Context, id primitive.ObjectID) (dommovie.Movie, error)

	writes int
}

func (m *mockRepo) List(ctx context.Context, filter, sort bson.D, p page.Page) ([]dommovie.Movie, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter, sort, p)
	}
	return []dommovie.Movie{}, nil
}

func (m *mockRepo) Count(ctx context.Context, filter bson.D) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, filter)
	}
	return 0, nil
}

func (m *mockRepo) Get(ctx context.Context, id primitive.ObjectID) (dommovie.Movie, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return dommovie.Movie{}, domain.ErrMovieNotFound
}

func (m *mockRepo) Insert(ctx context.Context, mv dommovie.Movie) (primitive.ObjectID, error) {
	m.writes++
	if m.insertFn != nil {
		return m.insertFn(ctx, mv)
	}
	return primitive.NewObjectID(), nil
}

func (m *mockRepo) InsertMany(ctx context.Context, movies []dommovie.Movie) ([]primitive.ObjectID, error) {
	m.writes++
	if m.insertManyFn != nil {
		return m.insertManyFn(ctx, movies)
	}
	ids := make([]primitive.ObjectID, len(movies))
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}
	return ids, nil
}

func (m *mockRepo) Update(ctx context.Context, id primitive.ObjectID, update bson.D) (int64, error) {
	m.writes++
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return 0, nil
}

func (m *mockRepo) UpdateMany(ctx context.Context, filter, update bson.D) (dommovie.UpdateCounts, error) {
	m.writes++
	if m.updateManyFn != nil {
		return m.updateManyFn(ctx, filter, update)
	}
	return dommovie.UpdateCounts{}, nil
}

func (m *mockRepo) Replace(ctx context.Context, id primitive.ObjectID, mv dommovie.Movie) (int64, error) {
	m.writes++
	if m.replaceFn != nil {
		return m.replaceFn(ctx, id, mv)
	}
	return 0, nil
}

func (m *mockRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	m.writes++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return 0, nil
}

func (m *mockRepo) DeleteMany(ctx context.Context, filter bson.D) (int64, error) {
	m.writes++
	if m.deleteManyFn != nil {
		return m.deleteManyFn(ctx, filter)
	}
	return 0, nil
}

func (m *mockRepo) FindAndDelete(ctx context.Context, id primitive.ObjectID) (dommovie.Movie, error) {
	m.writes++
	if m.findAndDeleteFn != nil {
		return m.findAndDeleteFn(ctx, id)
	}
	return dommovie.Movie{}, domain.ErrMovieNotFound
}

// memRepo is a map-backed Repository used for end-to-end scenarios.
type memRepo struct {
	mockRepo
	docs map[primitive.ObjectID]dommovie.Movie
}

func newMemRepo() *memRepo {
	r := &memRepo{docs: map[primitive.ObjectID]dommovie.Movie{}}
	r.insertFn = func(_ context.Context, mv dommovie.Movie) (primitive.ObjectID, error) {
		mv.ID = primitive.NewObjectID()
		r.docs[mv.ID] = mv
		return mv.ID, nil
	}
	r.getFn = func(_ context.Context, id primitive.ObjectID) (dommovie.Movie, error) {
		mv, ok := r.docs[id]
		if !ok {
			return dommovie.Movie{}, &domain.NotFoundError{Resource: "movie", ID: id.Hex()}
		}
		return mv, nil
	}
	r.deleteFn = func(_ context.Context, id primitive.ObjectID) (int64, error) {
		if _, ok := r.docs[id]; !ok {
			return 0, nil
		}
		delete(r.docs, id)
		return 1, nil
	}
	return r
}

func intPtr(v int) *int { return &v }
