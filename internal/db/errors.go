package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound   = errors.New("db: key not found")
	ErrNoDocuments   = errors.New("db: no documents")
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
)

// Op constants name store operations for error context and metrics labels.
const (
	OpPing             = "ping"
	OpFind             = "find"
	OpFindOne          = "findOne"
	OpCount            = "countDocuments"
	OpInsertOne        = "insertOne"
	OpInsertMany       = "insertMany"
	OpUpdateOne        = "updateOne"
	OpUpdateMany       = "updateMany"
	OpReplaceOne       = "replaceOne"
	OpDeleteOne        = "deleteOne"
	OpDeleteMany       = "deleteMany"
	OpFindOneAndDelete = "findOneAndDelete"
	OpAggregate        = "aggregate"
	OpCreateIndex      = "createIndex"
	OpListIndexes      = "listIndexes"
	OpGet              = "GET"
	OpSet              = "SET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op         string
	Collection string
	Err        error
}

func (e *Error) Error() string {
	if e.Collection == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Collection + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
