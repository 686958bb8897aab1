package movie

import (
	"context"

	"github.com/kailas-cloud/cinedex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	findFn             func(ctx context.Context, collection string, filter any, opts db.FindOptions, out any) error
	findOneFn          func(ctx context.Context, collection string, filter, projection, out any) error
	countFn            func(ctx context.Context, collection string, filter any) (int64, error)
	insertOneFn        func(ctx context.Context, collection string, doc any) (any, error)
	insertManyFn       func(ctx context.Context, collection string, docs []any) ([]any, error)
	updateOneFn        func(ctx context.Context, collection string, filter, update any) (db.UpdateResult, error)
	updateManyFn       func(ctx context.Context, collection string, filter, update any) (db.UpdateResult, error)
	replaceOneFn       func(ctx context.Context, collection string, filter, replacement any) (db.UpdateResult, error)
	deleteOneFn        func(ctx context.Context, collection string, filter any) (int64, error)
	deleteManyFn       func(ctx context.Context, collection string, filter any) (int64, error)
	findOneAndDeleteFn func(ctx context.Context, collection string, filter, out any) error
}

func (m *mockStore) Find(ctx context.Context, collection string, filter any, opts db.FindOptions, out any) error {
	if m.findFn != nil {
		return m.findFn(ctx, collection, filter, opts, out)
	}
	return nil
}

func (m *mockStore) FindOne(ctx context.Context, collection string, filter, projection, out any) error {
	if m.findOneFn != nil {
		return m.findOneFn(ctx, collection, filter, projection, out)
	}
	return db.ErrNoDocuments
}

func (m *mockStore) Count(ctx context.Context, collection string, filter any) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, collection, filter)
	}
	return 0, nil
}

func (m *mockStore) InsertOne(ctx context.Context, collection string, doc any) (any, error) {
	if m.insertOneFn != nil {
		return m.insertOneFn(ctx, collection, doc)
	}
	return nil, nil
}

func (m *mockStore) InsertMany(ctx context.Context, collection string, docs []any) ([]any, error) {
	if m.insertManyFn != nil {
		return m.insertManyFn(ctx, collection, docs)
	}
	return nil, nil
}

func (m *mockStore) UpdateOne(ctx context.Context, collection string, filter, update any) (db.UpdateResult, error) {
	if m.updateOneFn != nil {
		return m.updateOneFn(ctx, collection, filter, update)
	}
	return db.UpdateResult{}, nil
}

func (m *mockStore) UpdateMany(ctx context.Context, collection string, filter, update any) (db.UpdateResult, error) {
	if m.updateManyFn != nil {
		return m.updateManyFn(ctx, collection, filter, update)
	}
	return db.UpdateResult{}, nil
}

func (m *mockStore) ReplaceOne(
	ctx context.Context, collection string, filter, replacement any,
) (db.UpdateResult, error) {
	if m.replaceOneFn != nil {
		return m.replaceOneFn(ctx, collection, filter, replacement)
	}
	return db.UpdateResult{}, nil
}

func (m *mockStore) DeleteOne(ctx context.Context, collection string, filter any) (int64, error) {
	if m.deleteOneFn != nil {
		return m.deleteOneFn(ctx, collection, filter)
	}
	return 0, nil
}

func (m *mockStore) DeleteMany(ctx context.Context, collection string, filter any) (int64, error) {
	if m.deleteManyFn != nil {
		return m.deleteManyFn(ctx, collection, filter)
	}
	return 0, nil
}

func (m *mockStore) FindOneAndDelete(ctx context.Context, collection string, filter, out any) error {
	if m.findOneAndDeleteFn != nil {
		return m.findOneAndDeleteFn(ctx, collection, filter, out)
	}
	return db.ErrNoDocuments
}
