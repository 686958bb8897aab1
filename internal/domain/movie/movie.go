// Package movie holds the catalogue record types stored in the movies collection.
package movie

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

// Movie is a catalogue record. Field names follow the stored document layout.
type Movie struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title         string             `bson:"title" json:"title"`
	Year          NullInt            `bson:"year,omitempty" json:"year,omitzero"`
	Plot          string             `bson:"plot,omitempty" json:"plot,omitempty"`
	FullPlot      string             `bson:"fullplot,omitempty" json:"fullplot,omitempty"`
	Genres        []string           `bson:"genres,omitempty" json:"genres,omitempty"`
	Directors     []string           `bson:"directors,omitempty" json:"directors,omitempty"`
	Writers       []string           `bson:"writers,omitempty" json:"writers,omitempty"`
	Cast          []string           `bson:"cast,omitempty" json:"cast,omitempty"`
	Countries     []string           `bson:"countries,omitempty" json:"countries,omitempty"`
	Languages     []string           `bson:"languages,omitempty" json:"languages,omitempty"`
	Rated         string             `bson:"rated,omitempty" json:"rated,omitempty"`
	Runtime       NullInt            `bson:"runtime,omitempty" json:"runtime,omitzero"`
	Poster        string             `bson:"poster,omitempty" json:"poster,omitempty"`
	Released      *time.Time         `bson:"released,omitempty" json:"released,omitempty"`
	Awards        *Awards            `bson:"awards,omitempty" json:"awards,omitempty"`
	Imdb          *Imdb              `bson:"imdb,omitempty" json:"imdb,omitempty"`
	PlotEmbedding []float64          `bson:"plot_embedding,omitempty" json:"-"`
}

// Awards summarizes wins and nominations.
type Awards struct {
	Wins        int    `bson:"wins" json:"wins"`
	Nominations int    `bson:"nominations" json:"nominations"`
	Text        string `bson:"text,omitempty" json:"text,omitempty"`
}

// Imdb carries rating data. Rating and votes are sometimes stored as strings.
type Imdb struct {
	Rating NullFloat `bson:"rating,omitempty" json:"rating,omitzero"`
	Votes  NullInt   `bson:"votes,omitempty" json:"votes,omitzero"`
	ID     NullInt   `bson:"id,omitempty" json:"id,omitzero"`
}

// Comment is a read-only user comment on a movie.
type Comment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MovieID primitive.ObjectID `bson:"movie_id" json:"movieId"`
	Name    string             `bson:"name" json:"name"`
	Email   string             `bson:"email" json:"email"`
	Text    string             `bson:"text" json:"text"`
	Date    time.Time          `bson:"date" json:"date"`
}

// Validate checks the fields required before a write.
func (m *Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return domain.NewValidationError("title is required")
	}
	return nil
}

// ValidateBatch validates every movie and qualifies the first failure with its index.
func ValidateBatch(movies []Movie) error {
	if len(movies) == 0 {
		return domain.NewValidationError("movies list cannot be empty")
	}
	for i := range movies {
		if err := movies[i].Validate(); err != nil {
			return domain.NewValidationError("movie at index %d: %s", i, err.Error())
		}
	}
	return nil
}

// ParseID parses a 24-char hex identifier.
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, s)
	}
	return id, nil
}

// BatchResult reports the identifiers written by a batch insert.
type BatchResult struct {
	InsertedCount int                  `json:"insertedCount"`
	InsertedIDs   []primitive.ObjectID `json:"insertedIds"`
}

// UpdateCounts reports the outcome of a multi-document update.
type UpdateCounts struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}
