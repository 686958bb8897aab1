// Package report runs the reporting aggregations over movies and comments.
package report

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/domain"
	domreport "github.com/kailas-cloud/cinedex/internal/domain/report"
)

// store is the consumer interface for reports (ISP).
type store interface {
	Aggregate(ctx context.Context, collection string, pipeline, out any) error
}

// Repo implements usecase/report.Repository.
type Repo struct {
	store    store
	movies   string
	comments string
}

// New creates a report repository reading movies and joining comments.
func New(s store, movies, comments string) *Repo {
	return &Repo{store: s, movies: movies, comments: comments}
}

// RecentComments returns up to limit movies ordered by their latest comment.
// A non-nil movieID restricts the report to that movie.
func (r *Repo) RecentComments(
	ctx context.Context, limit int, movieID *primitive.ObjectID,
) ([]domreport.MovieWithComments, error) {
	rows := []domreport.MovieWithComments{}
	if err := r.store.Aggregate(ctx, r.movies, recentCommentsPipeline(r.comments, limit, movieID), &rows); err != nil {
		return nil, storeErr("recent comments report", err)
	}
	return rows, nil
}

// YearStatistics returns rating statistics per release year, newest first.
func (r *Repo) YearStatistics(ctx context.Context) ([]domreport.YearStatistics, error) {
	rows := []domreport.YearStatistics{}
	if err := r.store.Aggregate(ctx, r.movies, yearStatisticsPipeline(), &rows); err != nil {
		return nil, storeErr("year statistics report", err)
	}
	return rows, nil
}

// DirectorStatistics returns the limit directors with the most movies.
func (r *Repo) DirectorStatistics(ctx context.Context, limit int) ([]domreport.DirectorStatistics, error) {
	rows := []domreport.DirectorStatistics{}
	if err := r.store.Aggregate(ctx, r.movies, directorStatisticsPipeline(limit), &rows); err != nil {
		return nil, storeErr("director statistics report", err)
	}
	return rows, nil
}

// plausibleYear matches integer years inside the report window.
func plausibleYear() bson.E {
	return bson.E{Key: "year", Value: bson.D{
		{Key: "$type", Value: "int"},
		{Key: "$gte", Value: domreport.MinYear},
		{Key: "$lte", Value: domreport.MaxYear},
	}}
}

// numeric yields the field value when it is a number and null otherwise.
// Catalogue rows carry strings such as "" in rating fields.
func numeric(path string) bson.D {
	return bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$isNumber", Value: path}}, path, nil,
	}}}
}

func recentCommentsPipeline(comments string, limit int, movieID *primitive.ObjectID) bson.A {
	match := bson.D{plausibleYear()}
	if movieID != nil {
		match = append(match, bson.E{Key: "_id", Value: *movieID})
	}
	byDateDesc := bson.D{{Key: "date", Value: -1}}

	return bson.A{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: comments},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "movie_id"},
			{Key: "as", Value: "comments"},
		}}},
		bson.D{{Key: "$match", Value: bson.D{{Key: "comments", Value: bson.D{{Key: "$ne", Value: bson.A{}}}}}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "year", Value: 1},
			{Key: "plot", Value: 1},
			{Key: "poster", Value: 1},
			{Key: "genres", Value: 1},
			{Key: "imdb", Value: 1},
			{Key: "comments", Value: bson.D{{Key: "$sortArray", Value: bson.D{
				{Key: "input", Value: "$comments"},
				{Key: "sortBy", Value: byDateDesc},
			}}}},
			{Key: "totalComments", Value: bson.D{{Key: "$size", Value: "$comments"}}},
			{Key: "mostRecentCommentDate", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{
				bson.D{{Key: "$sortArray", Value: bson.D{
					{Key: "input", Value: "$comments.date"},
					{Key: "sortBy", Value: -1},
				}}},
				0,
			}}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "mostRecentCommentDate", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "year", Value: 1},
			{Key: "plot", Value: 1},
			{Key: "poster", Value: 1},
			{Key: "genres", Value: 1},
			{Key: "imdbRating", Value: numeric("$imdb.rating")},
			{Key: "recentComments", Value: bson.D{{Key: "$slice", Value: bson.A{
				"$comments", domreport.RecentCommentsShown,
			}}}},
			{Key: "totalComments", Value: 1},
			{Key: "mostRecentCommentDate", Value: 1},
		}}},
	}
}

func yearStatisticsPipeline() bson.A {
	rating := numeric("$imdb.rating")
	return bson.A{
		bson.D{{Key: "$match", Value: bson.D{plausibleYear()}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$year"},
			{Key: "movieCount", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: rating}}},
			{Key: "highestRating", Value: bson.D{{Key: "$max", Value: rating}}},
			{Key: "lowestRating", Value: bson.D{{Key: "$min", Value: rating}}},
			{Key: "totalVotes", Value: bson.D{{Key: "$sum", Value: numeric("$imdb.votes")}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "year", Value: "$_id"},
			{Key: "movieCount", Value: 1},
			{Key: "averageRating", Value: 1},
			{Key: "highestRating", Value: 1},
			{Key: "lowestRating", Value: 1},
			{Key: "totalVotes", Value: 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "year", Value: -1}}}},
	}
}

func directorStatisticsPipeline(limit int) bson.A {
	return bson.A{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "directors", Value: bson.D{
				{Key: "$exists", Value: true},
				{Key: "$nin", Value: bson.A{nil, bson.A{}}},
			}},
			plausibleYear(),
		}}},
		bson.D{{Key: "$unwind", Value: "$directors"}},
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "directors", Value: bson.D{{Key: "$nin", Value: bson.A{nil, ""}}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$directors"},
			{Key: "movieCount", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: numeric("$imdb.rating")}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "movieCount", Value: -1}, {Key: "_id", Value: 1}}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "director", Value: "$_id"},
			{Key: "movieCount", Value: 1},
			{Key: "averageRating", Value: 1},
		}}},
	}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrDatabaseOperation, err)
}
