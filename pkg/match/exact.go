/*
Package match implements the query tiers over a built index: exact
alias resolution, prefix/substring suggestions, bounded edit-distance
"did you mean" candidates, the waterfall orchestrator that sequences
them, and the feature-filter identification flow.

Every function here is a pure read over an immutable index and is safe
for concurrent use.
*/
package match

import (
	"github.com/pastalab/shapeserve/pkg/index"
	"github.com/pastalab/shapeserve/pkg/textnorm"
)

// Exact resolves a query to a single entry, or nil.
//
// Resolution order: the plain normalized key, the letter-spacing
// collapsed key ("p e n n e" -> "penne"), then the stopword-stripped
// fallback. The fallback only fires when the stripped key maps to
// exactly one slug: ambiguity is not a match.
func Exact(idx *index.Index, query string) *index.Entry {
	key := textnorm.Normalize(query)
	if key == "" {
		return nil
	}

	if e := byKey(idx, key); e != nil {
		return e
	}

	if collapsed := textnorm.CollapseLetterSpacing(key); collapsed != key {
		if e := byKey(idx, collapsed); e != nil {
			return e
		}
	}

	if stopKey := textnorm.StripStopwords(key); stopKey != "" {
		if slugs := idx.StopKeySlugs[stopKey]; len(slugs) == 1 {
			for slug := range slugs {
				return idx.Resolve(slug)
			}
		}
	}

	return nil
}

func byKey(idx *index.Index, key string) *index.Entry {
	if slug, ok := idx.AliasToSlug[key]; ok {
		return idx.Resolve(slug)
	}
	return nil
}
