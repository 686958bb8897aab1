package query

import (
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// Criteria compiles one field and its raw value into a predicate fragment.
// A map value must contain only supported operators; anything else is equality.
func Criteria(field string, raw any) (bson.E, error) {
	if strings.TrimSpace(field) == "" {
		return bson.E{}, domain.NewValidationError("filter field name is required")
	}
	if strings.HasPrefix(field, "$") {
		return bson.E{}, &domain.OperatorError{Field: field, Operator: field}
	}

	ops, ok := asMap(raw)
	if !ok {
		v, err := literal(field, raw)
		if err != nil {
			return bson.E{}, err
		}
		return bson.E{Key: field, Value: v}, nil
	}
	if len(ops) == 0 {
		return bson.E{}, domain.NewValidationError("operator map for field %q is empty", field)
	}

	keys := make([]string, 0, len(ops))
	for k := range ops {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	expr := make(bson.D, 0, len(keys))
	for _, k := range keys {
		op, ok := ParseOperator(k)
		if !ok {
			return bson.E{}, &domain.OperatorError{Field: field, Operator: k}
		}
		v, err := operand(field, op, ops[k])
		if err != nil {
			return bson.E{}, err
		}
		expr = append(expr, bson.E{Key: k, Value: v})
	}
	return bson.E{Key: field, Value: expr}, nil
}

func operand(field string, op Operator, raw any) (any, error) {
	switch op {
	case OpIn, OpNotIn:
		items, ok := asSlice(raw)
		if !ok {
			return nil, domain.NewValidationError("%s on field %q requires an array", op, field)
		}
		out := make(bson.A, len(items))
		for i, item := range items {
			v, err := literal(field, item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case OpExists:
		b, ok := raw.(bool)
		if !ok {
			return nil, domain.NewValidationError("%s on field %q requires a boolean", op, field)
		}
		return b, nil
	case OpRegex:
		s, ok := raw.(string)
		if !ok {
			return nil, domain.NewValidationError("%s on field %q requires a string", op, field)
		}
		return primitive.Regex{Pattern: s}, nil
	default:
		return literal(field, raw)
	}
}

// literal normalizes a plain value; strings on the identity field become ObjectIDs.
func literal(field string, raw any) (any, error) {
	if field == IDField {
		if s, ok := raw.(string); ok {
			id, err := movie.ParseID(s)
			if err != nil {
				return nil, err
			}
			return id, nil
		}
	}
	return normalize(raw), nil
}
