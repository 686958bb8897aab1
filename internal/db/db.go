package db

import (
	"context"
	"time"
)

// DocumentStore is the main document database facade combining all sub-interfaces.
//
//nolint:interfacebloat // consumers depend on the narrow sub-interfaces
type DocumentStore interface {
	Pinger
	Finder
	Writer
	Aggregator
	IndexManager
	Close(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// FindOptions controls a multi-document read.
type FindOptions struct {
	Sort       any
	Projection any
	Skip       int64
	Limit      int64
}

// Finder provides read operations. Results are decoded into out.
type Finder interface {
	Find(ctx context.Context, collection string, filter any, opts FindOptions, out any) error
	FindOne(ctx context.Context, collection string, filter, projection, out any) error
	Count(ctx context.Context, collection string, filter any) (int64, error)
}

// UpdateResult reports matched and modified document counts.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// Writer provides write operations.
type Writer interface {
	InsertOne(ctx context.Context, collection string, doc any) (any, error)
	InsertMany(ctx context.Context, collection string, docs []any) ([]any, error)
	UpdateOne(ctx context.Context, collection string, filter, update any) (UpdateResult, error)
	UpdateMany(ctx context.Context, collection string, filter, update any) (UpdateResult, error)
	ReplaceOne(ctx context.Context, collection string, filter, replacement any) (UpdateResult, error)
	DeleteOne(ctx context.Context, collection string, filter any) (int64, error)
	DeleteMany(ctx context.Context, collection string, filter any) (int64, error)
	FindOneAndDelete(ctx context.Context, collection string, filter, out any) error
}

// Aggregator runs aggregation pipelines.
type Aggregator interface {
	Aggregate(ctx context.Context, collection string, pipeline, out any) error
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, def *IndexDefinition) (bool, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
