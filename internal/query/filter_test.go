package query

import (
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

func TestFilter_Deterministic(t *testing.T) {
	doc := Document{
		"year":   map[string]any{"$gte": 2000},
		"genres": "Drama",
		"rated":  map[string]any{"$in": []any{"PG", "R"}},
		"cast":   map[string]any{"$exists": true},
	}
	first, err := Filter(doc)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		again, err := Filter(doc)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("compilation is not deterministic:\n%v\n%v", first, again)
		}
	}
	keys := make([]string, len(first))
	for i, e := range first {
		keys[i] = e.Key
	}
	if !reflect.DeepEqual(keys, []string{"cast", "genres", "rated", "year"}) {
		t.Errorf("keys = %v", keys)
	}
}

func TestFilter_Empty(t *testing.T) {
	got, err := Filter(Document{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("empty filter = %v", got)
	}
}

func TestFilter_PropagatesErrors(t *testing.T) {
	_, err := Filter(Document{"title": "A", "year": map[string]any{"$foo": 1}})
	if !errors.Is(err, domain.ErrUnsupportedOperator) {
		t.Fatalf("expected ErrUnsupportedOperator, got %v", err)
	}
}

func TestListFilter_Compile(t *testing.T) {
	year := 1999
	minR, maxR := 6.5, 9.0
	got := ListFilter{Text: " matrix ", Genre: "sci-fi (new)", Year: &year, MinRating: &minR, MaxRating: &maxR}.Compile()
	want := bson.D{
		{Key: "$text", Value: bson.D{{Key: "$search", Value: "matrix"}}},
		{Key: "genres", Value: primitive.Regex{Pattern: `sci-fi \(new\)`, Options: "i"}},
		{Key: "imdb.rating", Value: bson.D{{Key: "$gte", Value: 6.5}, {Key: "$lte", Value: 9.0}}},
		{Key: "year", Value: int32(1999)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got  %#v\nwant %#v", got, want)
	}
	if len((ListFilter{}).Compile()) != 0 {
		t.Error("zero filter should be empty")
	}
}

func TestByID(t *testing.T) {
	id := primitive.NewObjectID()
	if got := ByID(id); got[0].Key != "_id" || got[0].Value != id {
		t.Errorf("ByID = %v", got)
	}
}
