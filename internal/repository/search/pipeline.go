package search

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
)

// Fuzzy matching for people names tolerates one edit after a 5-rune prefix.
const (
	fuzzyMaxEdits     = 1
	fuzzyPrefixLength = 5
)

// publicFields are the movie fields returned by keyword and similar search.
var publicFields = []string{
	"_id", "title", "year", "plot", "fullplot", "released", "runtime", "poster",
	"genres", "directors", "writers", "cast", "countries", "languages", "rated",
	"awards", "imdb",
}

func publicProjection(extra ...bson.E) bson.D {
	d := make(bson.D, 0, len(publicFields)+len(extra))
	for _, f := range publicFields {
		d = append(d, bson.E{Key: f, Value: 1})
	}
	return append(d, extra...)
}

func phrase(query, path string) bson.D {
	return bson.D{{Key: "phrase", Value: bson.D{
		{Key: "query", Value: query},
		{Key: "path", Value: path},
	}}}
}

func fuzzyText(query, path string) bson.D {
	return bson.D{{Key: "text", Value: bson.D{
		{Key: "query", Value: query},
		{Key: "path", Value: path},
		{Key: "fuzzy", Value: bson.D{
			{Key: "maxEdits", Value: fuzzyMaxEdits},
			{Key: "prefixLength", Value: fuzzyPrefixLength},
		}},
	}}}
}

// clauses emits one operator per present field in a fixed order.
func clauses(f request.Searchable) bson.A {
	out := bson.A{}
	if f.Plot != "" {
		out = append(out, phrase(f.Plot, "plot"))
	}
	if f.FullPlot != "" {
		out = append(out, phrase(f.FullPlot, "fullplot"))
	}
	if f.Directors != "" {
		out = append(out, fuzzyText(f.Directors, "directors"))
	}
	if f.Writers != "" {
		out = append(out, fuzzyText(f.Writers, "writers"))
	}
	if f.Cast != "" {
		out = append(out, fuzzyText(f.Cast, "cast"))
	}
	return out
}

func (r *Repo) keywordPipeline(req request.Request) bson.A {
	return bson.A{
		bson.D{{Key: "$search", Value: bson.D{
			{Key: "index", Value: r.cfg.SearchIndex},
			{Key: "compound", Value: bson.D{{Key: string(req.Mode()), Value: clauses(req.Fields())}}},
		}}},
		bson.D{{Key: "$skip", Value: req.Skip()}},
		bson.D{{Key: "$limit", Value: req.Limit()}},
		bson.D{{Key: "$project", Value: publicProjection()}},
	}
}

func vectorScore() bson.E {
	return bson.E{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}}
}

func (r *Repo) candidatesPipeline(vector []float32, req request.VectorRequest) bson.A {
	return bson.A{
		bson.D{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: r.cfg.VectorIndex},
			{Key: "path", Value: r.cfg.VectorPath},
			{Key: "queryVector", Value: vector},
			{Key: "numCandidates", Value: req.NumCandidates()},
			{Key: "limit", Value: req.Limit()},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "_id", Value: 1}, vectorScore()}}},
	}
}

// hitsPipeline loads hit fields; year is kept only when stored as an int.
func hitsPipeline(ids []primitive.ObjectID) bson.A {
	year := bson.D{{Key: "$cond", Value: bson.D{
		{Key: "if", Value: bson.D{{Key: "$eq", Value: bson.A{
			bson.D{{Key: "$type", Value: "$year"}}, "int",
		}}}},
		{Key: "then", Value: "$year"},
		{Key: "else", Value: nil},
	}}}
	return bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "title", Value: 1},
			{Key: "plot", Value: 1},
			{Key: "poster", Value: 1},
			{Key: "genres", Value: 1},
			{Key: "directors", Value: 1},
			{Key: "cast", Value: 1},
			{Key: "year", Value: year},
		}}},
	}
}

// similarPipeline asks for one extra neighbour because the source movie
// is its own nearest match.
func (r *Repo) similarPipeline(vector []float64, req request.SimilarRequest) bson.A {
	return bson.A{
		bson.D{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: r.cfg.SimilarIndex},
			{Key: "path", Value: r.cfg.SimilarPath},
			{Key: "queryVector", Value: vector},
			{Key: "numCandidates", Value: req.NumCandidates()},
			{Key: "limit", Value: req.Limit() + 1},
		}}},
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: bson.D{{Key: "$ne", Value: req.ID()}}}}}},
		bson.D{{Key: "$limit", Value: req.Limit()}},
		bson.D{{Key: "$project", Value: publicProjection(vectorScore())}},
	}
}
