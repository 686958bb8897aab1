// Package query compiles client filter and update documents into store predicates.
package query

import (
	"encoding/json"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Operator is a supported comparison operator.
type Operator string

// Supported operators. Any other "$" key is rejected.
const (
	OpGT     Operator = "$gt"
	OpGTE    Operator = "$gte"
	OpLT     Operator = "$lt"
	OpLTE    Operator = "$lte"
	OpNE     Operator = "$ne"
	OpIn     Operator = "$in"
	OpNotIn  Operator = "$nin"
	OpRegex  Operator = "$regex"
	OpExists Operator = "$exists"
)

var operators = map[Operator]struct{}{
	OpGT: {}, OpGTE: {}, OpLT: {}, OpLTE: {}, OpNE: {},
	OpIn: {}, OpNotIn: {}, OpRegex: {}, OpExists: {},
}

// ParseOperator reports whether s names a supported operator.
func ParseOperator(s string) (Operator, bool) {
	op := Operator(s)
	_, ok := operators[op]
	return op, ok
}

// IDField is the identity field; string operands on it are parsed as ObjectIDs.
const IDField = "_id"

// asMap returns v as a string-keyed map when it is one.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case primitive.M:
		return m, true
	case primitive.D:
		out := make(map[string]any, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	}
	return nil, false
}

// asSlice returns v as a generic slice when it is one.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case primitive.A:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	}
	return nil, false
}

// normalize converts decoded JSON numbers to the narrowest BSON numeric type so
// integers are stored as int32 rather than double.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return narrowInt(i)
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		out := make(bson.A, len(t))
		for i := range t {
			out[i] = normalize(t[i])
		}
		return out
	case primitive.A:
		return normalize([]any(t))
	case map[string]any:
		out := make(bson.M, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case primitive.M:
		return normalize(map[string]any(t))
	}
	return v
}

func narrowInt(i int64) any {
	if i >= math.MinInt32 && i <= math.MaxInt32 {
		return int32(i)
	}
	return i
}
