package search

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
)

// candidateIDs returns the identifiers of scored candidates in index order.
func candidateIDs(candidates []result.Candidate) ([]primitive.ObjectID, map[primitive.ObjectID]float64) {
	ids := make([]primitive.ObjectID, 0, len(candidates))
	scores := make(map[primitive.ObjectID]float64, len(candidates))
	for _, c := range candidates {
		if c.Score == nil {
			continue
		}
		if _, dup := scores[c.ID]; !dup {
			ids = append(ids, c.ID)
		}
		scores[c.ID] = *c.Score
	}
	return ids, scores
}

// rank attaches candidate scores to hits, drops hits without a score and
// orders by score descending with ties broken by identifier.
func rank(hits []result.Hit, scores map[primitive.ObjectID]float64) []result.Hit {
	out := make([]result.Hit, 0, len(hits))
	for _, h := range hits {
		s, ok := scores[h.ID]
		if !ok {
			continue
		}
		h.Score = s
		out = append(out, h)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out
}
