package result

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// Hit is a single similarity search result.
type Hit struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Plot      string             `bson:"plot,omitempty" json:"plot,omitempty"`
	Poster    string             `bson:"poster,omitempty" json:"poster,omitempty"`
	Year      movie.NullInt      `bson:"year" json:"year"`
	Genres    []string           `bson:"genres,omitempty" json:"genres,omitempty"`
	Directors []string           `bson:"directors,omitempty" json:"directors,omitempty"`
	Cast      []string           `bson:"cast,omitempty" json:"cast,omitempty"`
	Score     float64            `bson:"score" json:"score"`
}

// Candidate is an identifier with its similarity score from the vector index.
type Candidate struct {
	ID    primitive.ObjectID `bson:"_id"`
	Score *float64           `bson:"score"`
}

// Page is a keyword search result set.
type Page struct {
	Movies     []movie.Movie `json:"movies"`
	TotalCount int           `json:"totalCount"`
}

// ScoredMovie is a movie ranked by similarity to a source movie.
type ScoredMovie struct {
	movie.Movie `bson:",inline"`
	Score       float64 `bson:"score" json:"score"`
}
