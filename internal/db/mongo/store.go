// Package mongo implements db.DocumentStore with the official MongoDB driver.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/metrics"
)

const tracerName = "cinedex/db/mongo"

// Compile-time check: Store implements db.DocumentStore.
var _ db.DocumentStore = (*Store)(nil)

// Config holds connection parameters for a MongoDB store.
type Config struct {
	URI            string
	Database       string
	AppName        string
	ConnectTimeout time.Duration
}

// Store implements db.DocumentStore on a single database.
type Store struct {
	client   *mongo.Client
	database *mongo.Database
	tracer   trace.Tracer
}

// NewStore creates a MongoDB store. The driver connects lazily; use WaitForReady.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("uri is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database is required")
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{
		client:   client,
		database: client.Database(cfg.Database),
		tracer:   otel.Tracer(tracerName),
	}, nil
}

// Ping checks connectivity against the primary.
func (s *Store) Ping(ctx context.Context) error {
	err := s.run(ctx, db.OpPing, "", func(ctx context.Context) error {
		return s.client.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Find decodes every matching document into out, which must be a pointer to a slice.
func (s *Store) Find(ctx context.Context, collection string, filter any, opts db.FindOptions, out any) error {
	return s.run(ctx, db.OpFind, collection, func(ctx context.Context) error {
		fo := options.Find()
		if opts.Sort != nil {
			fo.SetSort(opts.Sort)
		}
		if opts.Projection != nil {
			fo.SetProjection(opts.Projection)
		}
		if opts.Skip > 0 {
			fo.SetSkip(opts.Skip)
		}
		if opts.Limit > 0 {
			fo.SetLimit(opts.Limit)
		}
		cur, err := s.coll(collection).Find(ctx, orEmpty(filter), fo)
		if err != nil {
			return err //nolint:wrapcheck // wrapped by run
		}
		return cur.All(ctx, out) //nolint:wrapcheck // wrapped by run
	})
}

// FindOne decodes the first matching document into out. Returns db.ErrNoDocuments on miss.
func (s *Store) FindOne(ctx context.Context, collection string, filter, projection, out any) error {
	return s.run(ctx, db.OpFindOne, collection, func(ctx context.Context) error {
		fo := options.FindOne()
		if projection != nil {
			fo.SetProjection(projection)
		}
		return decodeSingle(s.coll(collection).FindOne(ctx, orEmpty(filter), fo), out)
	})
}

// Count returns the number of matching documents.
func (s *Store) Count(ctx context.Context, collection string, filter any) (int64, error) {
	var n int64
	err := s.run(ctx, db.OpCount, collection, func(ctx context.Context) error {
		var err error
		n, err = s.coll(collection).CountDocuments(ctx, orEmpty(filter))
		return err //nolint:wrapcheck // wrapped by run
	})
	return n, err
}

// InsertOne inserts doc and returns the stored identifier.
func (s *Store) InsertOne(ctx context.Context, collection string, doc any) (any, error) {
	var id any
	err := s.run(ctx, db.OpInsertOne, collection, func(ctx context.Context) error {
		res, err := s.coll(collection).InsertOne(ctx, doc)
		if err != nil {
			return err //nolint:wrapcheck // wrapped by run
		}
		id = res.InsertedID
		return nil
	})
	return id, err
}

// InsertMany inserts docs in order and stops at the first failure.
// Documents written before the failure are not rolled back.
func (s *Store) InsertMany(ctx context.Context, collection string, docs []any) ([]any, error) {
	var ids []any
	err := s.run(ctx, db.OpInsertMany, collection, func(ctx context.Context) error {
		res, err := s.coll(collection).InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
		if err != nil {
			return err //nolint:wrapcheck // wrapped by run
		}
		ids = res.InsertedIDs
		return nil
	})
	return ids, err
}

// UpdateOne applies update to the first matching document.
func (s *Store) UpdateOne(ctx context.Context, collection string, filter, update any) (db.UpdateResult, error) {
	return s.update(ctx, db.OpUpdateOne, collection, func(ctx context.Context) (*mongo.UpdateResult, error) {
		return s.coll(collection).UpdateOne(ctx, orEmpty(filter), update)
	})
}

// UpdateMany applies update to every matching document.
func (s *Store) UpdateMany(ctx context.Context, collection string, filter, update any) (db.UpdateResult, error) {
	return s.update(ctx, db.OpUpdateMany, collection, func(ctx context.Context) (*mongo.UpdateResult, error) {
		return s.coll(collection).UpdateMany(ctx, orEmpty(filter), update)
	})
}

// ReplaceOne replaces the first matching document.
func (s *Store) ReplaceOne(ctx context.Context, collection string, filter, replacement any) (db.UpdateResult, error) {
	return s.update(ctx, db.OpReplaceOne, collection, func(ctx context.Context) (*mongo.UpdateResult, error) {
		return s.coll(collection).ReplaceOne(ctx, orEmpty(filter), replacement)
	})
}

// DeleteOne removes the first matching document and returns the deleted count.
func (s *Store) DeleteOne(ctx context.Context, collection string, filter any) (int64, error) {
	return s.delete(ctx, db.OpDeleteOne, collection, func(ctx context.Context) (*mongo.DeleteResult, error) {
		return s.coll(collection).DeleteOne(ctx, orEmpty(filter))
	})
}

// DeleteMany removes every matching document and returns the deleted count.
func (s *Store) DeleteMany(ctx context.Context, collection string, filter any) (int64, error) {
	return s.delete(ctx, db.OpDeleteMany, collection, func(ctx context.Context) (*mongo.DeleteResult, error) {
		return s.coll(collection).DeleteMany(ctx, orEmpty(filter))
	})
}

// FindOneAndDelete removes the first matching document and decodes it into out.
func (s *Store) FindOneAndDelete(ctx context.Context, collection string, filter, out any) error {
	return s.run(ctx, db.OpFindOneAndDelete, collection, func(ctx context.Context) error {
		return decodeSingle(s.coll(collection).FindOneAndDelete(ctx, orEmpty(filter)), out)
	})
}

// Aggregate runs pipeline and decodes all rows into out.
func (s *Store) Aggregate(ctx context.Context, collection string, pipeline, out any) error {
	return s.run(ctx, db.OpAggregate, collection, func(ctx context.Context) error {
		cur, err := s.coll(collection).Aggregate(ctx, pipeline)
		if err != nil {
			return err //nolint:wrapcheck // wrapped by run
		}
		return cur.All(ctx, out) //nolint:wrapcheck // wrapped by run
	})
}

func (s *Store) coll(name string) *mongo.Collection {
	return s.database.Collection(name)
}

func (s *Store) update(
	ctx context.Context, op, collection string,
	fn func(context.Context) (*mongo.UpdateResult, error),
) (db.UpdateResult, error) {
	var out db.UpdateResult
	err := s.run(ctx, op, collection, func(ctx context.Context) error {
		res, err := fn(ctx)
		if err != nil {
			return err
		}
		out = db.UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}
		return nil
	})
	return out, err
}

func (s *Store) delete(
	ctx context.Context, op, collection string,
	fn func(context.Context) (*mongo.DeleteResult, error),
) (int64, error) {
	var n int64
	err := s.run(ctx, op, collection, func(ctx context.Context) error {
		res, err := fn(ctx)
		if err != nil {
			return err
		}
		n = res.DeletedCount
		return nil
	})
	return n, err
}

// run traces and times one operation. Failures other than db.ErrNoDocuments
// come back as *db.Error.
func (s *Store) run(ctx context.Context, op, collection string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "mongo."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mongodb"),
			attribute.String("db.namespace", s.database.Name()),
			attribute.String("db.collection.name", collection),
			attribute.String("db.operation.name", op),
		),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	if errors.Is(err, db.ErrNoDocuments) {
		metrics.ObserveStore(op, collection, start, nil)
		return err
	}
	metrics.ObserveStore(op, collection, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return &db.Error{Op: op, Collection: collection, Err: err}
	}
	return nil
}

func decodeSingle(res *mongo.SingleResult, out any) error {
	if err := res.Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return db.ErrNoDocuments
		}
		return err //nolint:wrapcheck // wrapped by run
	}
	return nil
}

// orEmpty maps a missing filter to the match-all document.
func orEmpty(filter any) any {
	switch f := filter.(type) {
	case nil:
		return bson.D{}
	case bson.D:
		if f == nil {
			return bson.D{}
		}
	case bson.M:
		if f == nil {
			return bson.D{}
		}
	}
	return filter
}
