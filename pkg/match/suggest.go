package match

import (
	"fmt"
	"strings"

	"github.com/pastalab/shapeserve/pkg/index"
	"github.com/pastalab/shapeserve/pkg/textnorm"
)

// Result is one suggestion: the entry plus a display label that names
// the matched alias when it differs from the canonical name.
type Result struct {
	Entry *index.Entry
	Label string
}

// Suggest returns up to limit entries whose alias keys start with or
// contain the normalized query. Prefix hits rank before substring hits;
// within each bucket alias registration order is preserved, and each
// entry appears at most once.
func Suggest(idx *index.Index, query string, limit int) []Result {
	q := textnorm.Normalize(query)
	if q == "" || limit <= 0 {
		return nil
	}

	startsWith := idx.PrefixPositions(q)
	inPrefix := make(map[int]bool, len(startsWith))
	for _, pos := range startsWith {
		inPrefix[pos] = true
	}

	var contains []int
	for pos, alias := range idx.AliasList {
		if inPrefix[pos] {
			continue
		}
		if strings.Contains(alias.Key, q) {
			contains = append(contains, pos)
		}
	}

	seen := make(map[string]bool)
	var results []Result
	for _, pos := range append(startsWith, contains...) {
		alias := idx.AliasList[pos]
		if seen[alias.Slug] {
			continue
		}
		seen[alias.Slug] = true
		entry := idx.Resolve(alias.Slug)
		results = append(results, Result{Entry: entry, Label: label(entry, alias.Key, alias.Display)})
		if len(results) >= limit {
			break
		}
	}
	return results
}

// label formats "Name (aka Alias)" when the matched alias is not just
// the canonical name in another spelling.
func label(entry *index.Entry, aliasKey, aliasDisplay string) string {
	if aliasKey == textnorm.Normalize(entry.Name) {
		return entry.Name
	}
	return fmt.Sprintf("%s (aka %s)", entry.Name, aliasDisplay)
}
