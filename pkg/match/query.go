package match

import (
	"strings"

	"github.com/pastalab/shapeserve/pkg/index"
)

// Default tier limits for the waterfall.
const (
	DefaultSuggestLimit = 10
	DefaultFuzzyLimit   = 5
)

// Kind tags a QueryResult.
type Kind int

const (
	// Idle means the query was empty after trimming; the caller shows
	// its resting state rather than "no results".
	Idle Kind = iota
	// ExactMatch carries a single resolved entry.
	ExactMatch
	// Suggestions carries prefix/substring candidates.
	Suggestions
	// FuzzySuggestions carries did-you-mean candidates.
	FuzzySuggestions
	// NoMatch means every tier came up empty.
	NoMatch
)

// String names the kind for logs and protocol payloads.
func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case ExactMatch:
		return "exact"
	case Suggestions:
		return "suggestions"
	case FuzzySuggestions:
		return "fuzzy"
	case NoMatch:
		return "no_match"
	}
	return "unknown"
}

// QueryResult is the outcome of one query. Entry is set for ExactMatch,
// Results for the two suggestion kinds.
type QueryResult struct {
	Kind    Kind
	Entry   *index.Entry
	Results []Result
}

// Options are the tunable knobs of the waterfall, normally fed from
// the [search] config section.
type Options struct {
	SuggestLimit int
	FuzzyLimit   int
	MinFuzzyLen  int
}

// DefaultOptions returns the built-in tier limits.
func DefaultOptions() Options {
	return Options{
		SuggestLimit: DefaultSuggestLimit,
		FuzzyLimit:   DefaultFuzzyLimit,
		MinFuzzyLen:  DefaultMinFuzzyLen,
	}
}

// Query runs the strict waterfall: exact, then suggestions, then fuzzy,
// then NoMatch. A later tier is only consulted when every earlier tier
// yielded nothing; tiers never blend.
func Query(idx *index.Index, rawQuery string) QueryResult {
	return QueryWithOptions(idx, rawQuery, DefaultOptions())
}

// QueryWithOptions is Query with explicit Options.
func QueryWithOptions(idx *index.Index, rawQuery string, opts Options) QueryResult {
	if strings.TrimSpace(rawQuery) == "" {
		return QueryResult{Kind: Idle}
	}

	if e := Exact(idx, rawQuery); e != nil {
		return QueryResult{Kind: ExactMatch, Entry: e}
	}
	if results := Suggest(idx, rawQuery, opts.SuggestLimit); len(results) > 0 {
		return QueryResult{Kind: Suggestions, Results: results}
	}
	if results := FuzzyWithMinLen(idx, rawQuery, opts.FuzzyLimit, opts.MinFuzzyLen); len(results) > 0 {
		return QueryResult{Kind: FuzzySuggestions, Results: results}
	}
	return QueryResult{Kind: NoMatch}
}
