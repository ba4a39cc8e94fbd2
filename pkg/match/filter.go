package match

import (
	"strings"

	"github.com/pastalab/shapeserve/pkg/index"
)

// UnknownValue is the explicit "value is blank in the data" selection.
// Choosing it matches entries whose feature column is empty, which is
// distinct from leaving the feature unselected (a wildcard).
const UnknownValue = "unknown"

// DefaultFilterCap is the fixed display count for filter results.
const DefaultFilterCap = 30

// FilterPage is a capped filter result: the entries shown plus how many
// more matched beyond the cap.
type FilterPage struct {
	Entries []*index.Entry
	More    int
}

// FilterByFeatures returns every entry whose features satisfy all
// selections, in catalog order. Unset features are wildcards; there is
// no ranking.
func FilterByFeatures(idx *index.Index, selections map[string]string) []*index.Entry {
	var out []*index.Entry
	for _, slug := range idx.Order {
		entry := idx.Entries[slug]
		if featuresMatch(entry, selections) {
			out = append(out, entry)
		}
	}
	return out
}

// FilterByFeaturesCapped applies the display cap on top of
// FilterByFeatures.
func FilterByFeaturesCapped(idx *index.Index, selections map[string]string, limit int) FilterPage {
	if limit <= 0 {
		limit = DefaultFilterCap
	}
	matched := FilterByFeatures(idx, selections)
	if len(matched) <= limit {
		return FilterPage{Entries: matched}
	}
	return FilterPage{Entries: matched[:limit], More: len(matched) - limit}
}

func featuresMatch(entry *index.Entry, selections map[string]string) bool {
	for key, want := range selections {
		want = strings.TrimSpace(strings.ToLower(want))
		if want == "" {
			continue
		}
		// Feature keys are stored under folded CSV headers.
		have := strings.TrimSpace(strings.ToLower(entry.Features[strings.ToLower(strings.TrimSpace(key))]))
		if want == UnknownValue {
			if have != "" {
				return false
			}
			continue
		}
		if have != want {
			return false
		}
	}
	return true
}
