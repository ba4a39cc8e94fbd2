package match

import (
	"sort"

	"github.com/pastalab/shapeserve/pkg/index"
	"github.com/pastalab/shapeserve/pkg/textnorm"
)

// DefaultMinFuzzyLen is the shortest normalized query worth
// correcting; anything shorter cannot disambiguate reliably.
const DefaultMinFuzzyLen = 3

// maxFuzzyDist caps the distance budget regardless of query length.
const maxFuzzyDist = 4

// fuzzyBudget scales the allowed edit distance slowly with query
// length: 1 for short queries, +1 every six characters, capped.
func fuzzyBudget(keyLen int) int {
	d := keyLen/6 + 1
	if d > maxFuzzyDist {
		d = maxFuzzyDist
	}
	return d
}

// Fuzzy returns "did you mean" candidates: up to limit entries whose
// alias keys are within the edit-distance budget of the normalized
// query. Candidates order by distance, then lexically by key; each
// entry appears once, at its closest distance.
func Fuzzy(idx *index.Index, query string, limit int) []Result {
	return FuzzyWithMinLen(idx, query, limit, DefaultMinFuzzyLen)
}

// FuzzyWithMinLen is Fuzzy with a caller-supplied minimum query
// length.
func FuzzyWithMinLen(idx *index.Index, query string, limit, minLen int) []Result {
	if minLen <= 0 {
		minLen = DefaultMinFuzzyLen
	}
	qKey := textnorm.Normalize(query)
	if len(qKey) < minLen || limit <= 0 {
		return nil
	}
	maxDist := fuzzyBudget(len(qKey))

	type candidate struct {
		key  string
		dist int
	}
	var candidates []candidate

	// Trie visit order is lexical, so a stable sort on distance keeps
	// the key order as the deterministic secondary tie-break.
	idx.VisitKeys(func(key string) {
		if abs(len(key)-len(qKey)) > maxDist {
			return
		}
		if d := boundedLevenshtein(qKey, key, maxDist); d <= maxDist {
			candidates = append(candidates, candidate{key: key, dist: d})
		}
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	seen := make(map[string]bool)
	var results []Result
	for _, c := range candidates {
		slug, ok := idx.AliasToSlug[c.key]
		if !ok || seen[slug] {
			continue
		}
		seen[slug] = true
		entry := idx.Resolve(slug)
		display := idx.AliasDisplay[c.key]
		if display == "" {
			display = c.key
		}
		results = append(results, Result{Entry: entry, Label: label(entry, c.key, display)})
		if len(results) >= limit {
			break
		}
	}
	return results
}

// MaxDistanceFor exposes the budget for a normalized query length, for
// callers that report or test the bound.
func MaxDistanceFor(qKey string) int {
	return fuzzyBudget(len(qKey))
}
