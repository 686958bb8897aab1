package mongo

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/db"
)

// verifyStore is the subset of the store used by startup verification.
type verifyStore interface {
	Count(ctx context.Context, collection string, filter any) (int64, error)
	IndexExists(ctx context.Context, def *db.IndexDefinition) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// VerifyResult summarizes a startup verification pass.
type VerifyResult struct {
	Counts   map[string]int64
	Existing []string
	Created  []string
	Failed   []string
}

// Verify counts documents in each collection and creates missing indexes.
// Every failure is logged as a warning; verification never fails startup.
func Verify(
	ctx context.Context, store verifyStore, collections []string, indexes []*db.IndexDefinition, log *zap.Logger,
) VerifyResult {
	res := VerifyResult{Counts: make(map[string]int64, len(collections))}

	for _, name := range collections {
		n, err := store.Count(ctx, name, nil)
		if err != nil {
			log.Warn("collection check failed", zap.String("collection", name), zap.Error(err))
			continue
		}
		res.Counts[name] = n
		if n == 0 {
			log.Warn("collection is empty", zap.String("collection", name))
			continue
		}
		log.Info("collection verified", zap.String("collection", name), zap.Int64("documents", n))
	}

	for _, def := range indexes {
		fields := []zap.Field{
			zap.String("index", def.Name),
			zap.String("collection", def.Collection),
			zap.String("kind", string(def.Kind)),
		}
		exists, err := store.IndexExists(ctx, def)
		if err != nil {
			log.Warn("index lookup failed", append(fields, zap.Error(err))...)
			res.Failed = append(res.Failed, def.Name)
			continue
		}
		if exists {
			res.Existing = append(res.Existing, def.Name)
			continue
		}
		if err := store.CreateIndex(ctx, def); err != nil {
			log.Warn("index creation failed", append(fields, zap.Error(err))...)
			res.Failed = append(res.Failed, def.Name)
			continue
		}
		log.Info("index created", fields...)
		res.Created = append(res.Created, def.Name)
	}

	return res
}
