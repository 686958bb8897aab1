package query

import (
	"regexp"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a client filter or update document: field → value.
type Document map[string]any

// Filter compiles a document into a conjunction of fragments, sorted by field
// name. An empty document compiles to an empty predicate that matches everything.
func Filter(doc Document) (bson.D, error) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(bson.D, 0, len(keys))
	for _, k := range keys {
		e, err := Criteria(k, doc[k])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// ByID matches a single document by identifier.
func ByID(id primitive.ObjectID) bson.D {
	return bson.D{{Key: IDField, Value: id}}
}

// ListFilter carries the typed list query parameters.
type ListFilter struct {
	Text      string
	Genre     string
	Year      *int
	MinRating *float64
	MaxRating *float64
}

// Compile builds the list predicate. Genre matches case-insensitively as a literal.
func (f ListFilter) Compile() bson.D {
	out := bson.D{}
	if q := strings.TrimSpace(f.Text); q != "" {
		out = append(out, bson.E{Key: "$text", Value: bson.D{{Key: "$search", Value: q}}})
	}
	if g := strings.TrimSpace(f.Genre); g != "" {
		out = append(out, bson.E{Key: "genres", Value: primitive.Regex{Pattern: regexp.QuoteMeta(g), Options: "i"}})
	}
	if f.MinRating != nil || f.MaxRating != nil {
		rating := bson.D{}
		if f.MinRating != nil {
			rating = append(rating, bson.E{Key: string(OpGTE), Value: *f.MinRating})
		}
		if f.MaxRating != nil {
			rating = append(rating, bson.E{Key: string(OpLTE), Value: *f.MaxRating})
		}
		out = append(out, bson.E{Key: "imdb.rating", Value: rating})
	}
	if f.Year != nil {
		out = append(out, bson.E{Key: "year", Value: narrowInt(int64(*f.Year))})
	}
	return out
}
