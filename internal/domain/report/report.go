// Package report holds the rows produced by the reporting aggregations.
package report

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reporting limits.
const (
	DefaultCommentsLimit  = 10
	MaxCommentsLimit      = 50
	DefaultDirectorsLimit = 20
	MaxDirectorsLimit     = 100
	// RecentCommentsShown is how many comments each row carries.
	RecentCommentsShown = 5
	// Plausible year window used by every report.
	MinYear = 1800
	MaxYear = 2030
)

// CommentInfo is a comment as shown in the recent comments report.
type CommentInfo struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Text  string             `bson:"text" json:"text"`
	Date  time.Time          `bson:"date" json:"date"`
}

// MovieWithComments is a movie with its most recent comments.
type MovieWithComments struct {
	ID                    primitive.ObjectID `bson:"_id" json:"_id"`
	Title                 string             `bson:"title" json:"title"`
	Year                  *int               `bson:"year" json:"year"`
	Plot                  string             `bson:"plot,omitempty" json:"plot,omitempty"`
	Poster                string             `bson:"poster,omitempty" json:"poster,omitempty"`
	Genres                []string           `bson:"genres,omitempty" json:"genres,omitempty"`
	ImdbRating            *float64           `bson:"imdbRating" json:"imdbRating"`
	RecentComments        []CommentInfo      `bson:"recentComments" json:"recentComments"`
	TotalComments         int                `bson:"totalComments" json:"totalComments"`
	MostRecentCommentDate *time.Time         `bson:"mostRecentCommentDate" json:"mostRecentCommentDate"`
}

// YearStatistics aggregates ratings for one release year.
type YearStatistics struct {
	Year          int      `bson:"year" json:"year"`
	MovieCount    int      `bson:"movieCount" json:"movieCount"`
	AverageRating *float64 `bson:"averageRating" json:"averageRating"`
	HighestRating *float64 `bson:"highestRating" json:"highestRating"`
	LowestRating  *float64 `bson:"lowestRating" json:"lowestRating"`
	TotalVotes    int64    `bson:"totalVotes" json:"totalVotes"`
}

// DirectorStatistics aggregates movies per director.
type DirectorStatistics struct {
	Director      string   `bson:"director" json:"director"`
	MovieCount    int      `bson:"movieCount" json:"movieCount"`
	AverageRating *float64 `bson:"averageRating" json:"averageRating"`
}
