package match

import (
	"sort"

	"brandlink/internal/registry"
	"brandlink/internal/similarity"
)

// Candidate pairs a registry entity with its precomputed normalized name.
// The candidate slice is built once per run from the registry snapshot and
// treated as immutable; its order is the tie-break order for FindBest.
type Candidate struct {
	Normalized string
	Entity     registry.Entity
}

// Best is the single-match result for a query.
type Best struct {
	Entity      *registry.Entity
	Score       float64
	Disposition Disposition
}

// Scored pairs an entity with its similarity score, used to give reviewers
// alternative matches for context.
type Scored struct {
	Entity registry.Entity
	Score  float64
}

// FindBest scores the query against every candidate and classifies the
// highest score. The scan keeps the first candidate reaching the strict
// maximum, so earlier-listed candidates win ties. An empty query or
// candidate set rejects with a nil entity and score 0.
func FindBest(query string, candidates []Candidate, thresholds Thresholds) Best {
	if query == "" || len(candidates) == 0 {
		return Best{Disposition: Reject}
	}

	var best *registry.Entity
	var bestScore float64
	for i := range candidates {
		score := similarity.Score(query, candidates[i].Normalized)
		if score > bestScore {
			bestScore = score
			best = &candidates[i].Entity
		}
	}

	disposition := thresholds.Classify(bestScore)
	if disposition == Reject {
		// A rejected score still reports the nearest entity when one
		// exists; callers treat nil entity and reject alike.
		return Best{Entity: best, Score: bestScore, Disposition: Reject}
	}
	if best == nil {
		return Best{Score: bestScore, Disposition: Reject}
	}
	return Best{Entity: best, Score: bestScore, Disposition: disposition}
}

// TopK returns up to k candidates ranked by score descending. The sort is
// stable, so candidates with equal scores keep their original relative
// order.
func TopK(query string, candidates []Candidate, k int) []Scored {
	if query == "" || len(candidates) == 0 || k <= 0 {
		return nil
	}

	scored := make([]Scored, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, Scored{
			Entity: candidate.Entity,
			Score:  similarity.Score(query, candidate.Normalized),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
