package search

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/kailas-cloud/cinedex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	aggregateFn func(ctx context.Context, collection string, pipeline, out any) error
	findOneFn   func(ctx context.Context, collection string, filter, projection, out any) error

	calls []string
}

func (m *mockStore) Aggregate(ctx context.Context, collection string, pipeline, out any) error {
	m.calls = append(m.calls, collection)
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, collection, pipeline, out)
	}
	return nil
}

func (m *mockStore) FindOne(ctx context.Context, collection string, filter, projection, out any) error {
	if m.findOneFn != nil {
		return m.findOneFn(ctx, collection, filter, projection, out)
	}
	return db.ErrNoDocuments
}

func testConfig() Config {
	return Config{
		Movies:         "movies",
		EmbeddedMovies: "embedded_movies",
		SearchIndex:    "movieSearchIndex",
		VectorIndex:    "vector_index",
		VectorPath:     "plot_embedding_voyage_3_large",
		SimilarIndex:   "plotEmbeddingIndex",
		SimilarPath:    "plot_embedding",
	}
}

func body(stage any) (string, bson.D) {
	d := stage.(bson.D)
	v, _ := d[0].Value.(bson.D)
	return d[0].Key, v
}

func field(d bson.D, key string) any {
	for _, e := range d {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

func intPtr(v int) *int { return &v }
