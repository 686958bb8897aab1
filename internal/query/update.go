package query

import (
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie/patch"
)

const setOp = "$set"

// Update compiles a free-form update document into a $set of its non-null
// entries. Operator keys and the identity field are rejected.
func Update(doc Document) (bson.D, error) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := make(bson.D, 0, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			return nil, domain.NewValidationError("update field name is required")
		}
		if strings.HasPrefix(k, "$") {
			return nil, domain.NewValidationError("update field %q cannot be an operator", k)
		}
		if k == IDField || strings.HasPrefix(k, IDField+".") {
			return nil, domain.NewValidationError("update cannot modify %s", IDField)
		}
		v := doc[k]
		if v == nil {
			continue
		}
		set = append(set, bson.E{Key: k, Value: normalize(v)})
	}
	if len(set) == 0 {
		return nil, domain.ErrEmptyUpdate
	}
	return bson.D{{Key: setOp, Value: set}}, nil
}

// Patch compiles a typed sparse update; only present fields are assigned.
func Patch(p patch.Patch) (bson.D, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	assignments := p.Assignments()
	if len(assignments) == 0 {
		return nil, domain.ErrEmptyUpdate
	}
	set := make(bson.D, len(assignments))
	for i, a := range assignments {
		set[i] = bson.E{Key: a.Field, Value: a.Value}
	}
	return bson.D{{Key: setOp, Value: set}}, nil
}
