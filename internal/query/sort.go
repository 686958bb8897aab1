package query

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/kailas-cloud/cinedex/internal/domain/page"
)

// Order compiles a normalized sort into a sort document.
func Order(s page.Sort) bson.D {
	return bson.D{{Key: s.Field, Value: s.Direction()}}
}
