package report

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	aggregateFn func(ctx context.Context, collection string, pipeline, out any) error

	collection string
	pipeline   bson.A
}

func (m *mockStore) Aggregate(ctx context.Context, collection string, pipeline, out any) error {
	m.collection = collection
	m.pipeline, _ = pipeline.(bson.A)
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, collection, pipeline, out)
	}
	return nil
}

// stage returns the operator name and body of pipeline stage i.
func stage(p bson.A, i int) (string, any) {
	d := p[i].(bson.D)
	return d[0].Key, d[0].Value
}

// lookup returns the value under key in d, or nil.
func lookup(d bson.D, key string) any {
	for _, e := range d {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}
