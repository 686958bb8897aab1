package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kailas-cloud/cinedex/internal/db"
)

// CreateIndex provisions def. Search and vector indexes build asynchronously on the server.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err //nolint:wrapcheck // validation message is self-describing
	}
	return s.run(ctx, db.OpCreateIndex, def.Collection, func(ctx context.Context) error {
		coll := s.coll(def.Collection)
		if def.IsSearchIndex() {
			_, err := coll.SearchIndexes().CreateOne(ctx, searchIndexModel(def))
			return err //nolint:wrapcheck // wrapped by run
		}
		_, err := coll.Indexes().CreateOne(ctx, indexModel(def))
		return err //nolint:wrapcheck // wrapped by run
	})
}

// IndexExists reports whether an index named def.Name exists on def.Collection.
func (s *Store) IndexExists(ctx context.Context, def *db.IndexDefinition) (bool, error) {
	var found bool
	err := s.run(ctx, db.OpListIndexes, def.Collection, func(ctx context.Context) error {
		coll := s.coll(def.Collection)
		if def.IsSearchIndex() {
			cur, err := coll.SearchIndexes().List(ctx, options.SearchIndexes().SetName(def.Name))
			if err != nil {
				return err //nolint:wrapcheck // wrapped by run
			}
			var rows []bson.M
			if err := cur.All(ctx, &rows); err != nil {
				return err //nolint:wrapcheck // wrapped by run
			}
			found = len(rows) > 0
			return nil
		}
		specs, err := coll.Indexes().ListSpecifications(ctx)
		if err != nil {
			var cmdErr mongo.CommandError
			if errors.As(err, &cmdErr) && cmdErr.Name == "NamespaceNotFound" {
				return nil
			}
			return err //nolint:wrapcheck // wrapped by run
		}
		for _, spec := range specs {
			if spec.Name == def.Name {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func indexModel(def *db.IndexDefinition) mongo.IndexModel {
	keys := make(bson.D, 0, len(def.Fields))
	for _, f := range def.Fields {
		switch f.Type {
		case db.IndexFieldDescending:
			keys = append(keys, bson.E{Key: f.Name, Value: -1})
		case db.IndexFieldText:
			keys = append(keys, bson.E{Key: f.Name, Value: "text"})
		default:
			keys = append(keys, bson.E{Key: f.Name, Value: 1})
		}
	}
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(def.Name)}
}

func searchIndexModel(def *db.IndexDefinition) mongo.SearchIndexModel {
	return mongo.SearchIndexModel{
		Definition: searchDefinition(def),
		Options:    options.SearchIndexes().SetName(def.Name).SetType(string(def.Kind)),
	}
}

func searchDefinition(def *db.IndexDefinition) bson.D {
	if def.Kind == db.KindVectorSearch {
		fields := make(bson.A, 0, len(def.Fields))
		for _, f := range def.Fields {
			fields = append(fields, bson.D{
				{Key: "type", Value: "vector"},
				{Key: "path", Value: f.Name},
				{Key: "numDimensions", Value: f.VectorDim},
				{Key: "similarity", Value: string(f.Similarity)},
			})
		}
		return bson.D{{Key: "fields", Value: fields}}
	}

	mapped := make(bson.D, 0, len(def.Fields))
	for _, f := range def.Fields {
		spec := bson.D{{Key: "type", Value: "string"}}
		if f.Analyzer != "" {
			spec = append(spec, bson.E{Key: "analyzer", Value: f.Analyzer})
		}
		mapped = append(mapped, bson.E{Key: f.Name, Value: spec})
	}
	return bson.D{{Key: "mappings", Value: bson.D{
		{Key: "dynamic", Value: false},
		{Key: "fields", Value: mapped},
	}}}
}

// Catalogue names the collections and search indexes of the movie database.
type Catalogue struct {
	Movies           string
	Comments         string
	EmbeddedMovies   string
	SearchIndex      string
	VectorIndex      string
	VectorPath       string
	VectorDimensions int
}

// CatalogueIndexes returns the indexes the service expects at startup.
func CatalogueIndexes(c Catalogue) []*db.IndexDefinition {
	const analyzer = "lucene.standard"
	return []*db.IndexDefinition{
		db.NewIndex("text_search_index").On(c.Movies).
			Text("plot").Text("title").Text("fullplot").MustBuild(),
		db.NewIndex("year_index").On(c.Movies).Ascending("year").MustBuild(),
		db.NewIndex("movie_id_index").On(c.Comments).Ascending("movie_id").MustBuild(),
		db.NewIndex(c.SearchIndex).On(c.Movies).
			SearchString("plot", analyzer).
			SearchString("fullplot", analyzer).
			SearchString("directors", analyzer).
			SearchString("writers", analyzer).
			SearchString("cast", analyzer).
			MustBuild(),
		db.NewIndex(c.VectorIndex).On(c.EmbeddedMovies).
			Vector(c.VectorPath, c.VectorDimensions, db.SimilarityCosine).MustBuild(),
	}
}
