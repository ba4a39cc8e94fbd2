/*
Package index builds the immutable search index from raw catalog rows.

An Index is constructed once per catalog snapshot and never mutated
afterwards, so concurrent readers need no locking. A rebuild produces a
fresh Index off to the side; the caller swaps the reference when it is
complete.
*/
package index

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/pastalab/shapeserve/pkg/catalog"
	"github.com/pastalab/shapeserve/pkg/textnorm"
)

// DefaultBaseURL is the display-path prefix for entry URLs.
const DefaultBaseURL = "/pasta/"

// Entry is one canonical catalog item.
type Entry struct {
	Slug        string
	Name        string
	URL         string
	Description string
	Synonyms    []string
	Features    map[string]string
}

// Alias associates a normalized key with the entry it resolves to,
// keeping the original display form for UI labels.
type Alias struct {
	Key     string
	Display string
	Slug    string
}

// Index is the built search artifact. All fields are read-only after
// Build returns.
type Index struct {
	// Entries keyed by slug; Order preserves catalog row order.
	Entries map[string]*Entry
	Order   []string

	// AliasToSlug is the canonical alias map, first-registration-wins.
	// AliasDisplay keeps the display form that registered each key.
	AliasToSlug  map[string]string
	AliasDisplay map[string]string

	// AliasList holds one record per distinct (key, slug) pair in
	// registration order; the suggestion scan walks it.
	AliasList []Alias

	// StopKeySlugs maps a stopword-stripped key to every slug that
	// produces it. Only a single-member set may resolve a match.
	StopKeySlugs map[string]map[string]bool

	// trie maps each distinct alias key to its AliasList positions.
	trie *patricia.Trie

	baseURL string
}

// Builder assembles an Index from catalog records.
type Builder struct {
	baseURL  string
	synDelim string
}

// NewBuilder returns a Builder producing URLs under baseURL.
func NewBuilder(baseURL string) *Builder {
	return &Builder{
		baseURL:  normalizeBaseURL(baseURL),
		synDelim: catalog.DefaultSynonymDelimiter,
	}
}

// SynonymDelimiter overrides the delimiter used to split the synonym
// column. The empty string keeps the default.
func (b *Builder) SynonymDelimiter(delim string) *Builder {
	if delim != "" {
		b.synDelim = delim
	}
	return b
}

func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL
}

func newTrie() *patricia.Trie {
	return patricia.NewTrie()
}

// Build constructs the index. Malformed rows are skipped, never fatal:
// a hand-edited catalog always carries a few bad rows and a partial
// index beats no index.
func (b *Builder) Build(records []catalog.Record) *Index {
	idx := &Index{
		Entries:      make(map[string]*Entry, len(records)),
		AliasToSlug:  make(map[string]string),
		AliasDisplay: make(map[string]string),
		StopKeySlugs: make(map[string]map[string]bool),
		trie:         newTrie(),
		baseURL:      b.baseURL,
	}

	for i, rec := range records {
		name := rec.Field(catalog.FieldName)
		if name == "" {
			log.Debugf("Skipping row %d: no display name", i+1)
			continue
		}
		slug := rec.Field(catalog.FieldSlug)
		if slug == "" {
			slug = textnorm.Slugify(name)
		}
		if slug == "" {
			log.Debugf("Skipping row %d (%q): empty slug", i+1, name)
			continue
		}
		if _, dup := idx.Entries[slug]; dup {
			log.Warnf("Duplicate slug %q at row %d, keeping first", slug, i+1)
			continue
		}

		entry := &Entry{
			Slug:        slug,
			Name:        name,
			URL:         b.baseURL + slug + "/",
			Description: rec.Field(catalog.FieldDescription),
			Synonyms:    catalog.SplitSynonymsDelim(rec.Field(catalog.FieldSynonyms), b.synDelim),
			Features:    rec.Features(),
		}
		idx.Entries[slug] = entry
		idx.Order = append(idx.Order, slug)

		idx.registerAliases(entry)
	}

	log.Debugf("Index built: %d entries, %d alias records, %d keys",
		len(idx.Entries), len(idx.AliasList), len(idx.AliasToSlug))
	return idx
}

// registerAliases registers the canonical name first, then synonyms, so
// a name always beats a colliding synonym in AliasToSlug.
func (idx *Index) registerAliases(entry *Entry) {
	seen := make(map[string]bool, 1+len(entry.Synonyms))
	for _, display := range append([]string{entry.Name}, entry.Synonyms...) {
		key := textnorm.Normalize(display)
		if key == "" {
			continue
		}

		if _, taken := idx.AliasToSlug[key]; !taken {
			idx.AliasToSlug[key] = entry.Slug
			idx.AliasDisplay[key] = display
		}

		// One AliasList record per (key, slug) pair: a synonym that
		// folds to the same key as the name must not inflate the
		// suggestion candidates.
		if !seen[key] {
			seen[key] = true
			idx.addAliasRecord(Alias{Key: key, Display: display, Slug: entry.Slug})
		}

		if stopKey := textnorm.StripStopwords(key); stopKey != "" {
			set := idx.StopKeySlugs[stopKey]
			if set == nil {
				set = make(map[string]bool)
				idx.StopKeySlugs[stopKey] = set
			}
			set[entry.Slug] = true
		}
	}
}

// addAliasRecord appends to AliasList and records the position in the
// key trie.
func (idx *Index) addAliasRecord(a Alias) {
	pos := len(idx.AliasList)
	idx.AliasList = append(idx.AliasList, a)

	prefix := patricia.Prefix(a.Key)
	if item := idx.trie.Get(prefix); item != nil {
		idx.trie.Set(prefix, append(item.([]int), pos))
	} else {
		idx.trie.Insert(prefix, []int{pos})
	}
}

// Entry returns the entry for slug, if present.
func (idx *Index) Entry(slug string) (*Entry, bool) {
	e, ok := idx.Entries[slug]
	return e, ok
}

// Resolve returns the entry for slug, synthesizing a minimal stand-in
// for a dangling alias reference. The stand-in is a data-quality
// defect, not a crash.
func (idx *Index) Resolve(slug string) *Entry {
	if e, ok := idx.Entries[slug]; ok {
		return e
	}
	log.Warnf("Alias resolves to unknown slug %q, synthesizing stand-in", slug)
	return &Entry{Slug: slug, Name: slug, URL: idx.baseURL + slug + "/"}
}

// PrefixPositions returns AliasList positions of every alias whose key
// starts with q, in AliasList order.
func (idx *Index) PrefixPositions(q string) []int {
	var positions []int
	_ = idx.trie.VisitSubtree(patricia.Prefix(q), func(p patricia.Prefix, item patricia.Item) error {
		positions = append(positions, item.([]int)...)
		return nil
	})
	sort.Ints(positions)
	return positions
}

// VisitKeys walks every distinct alias key in lexical order.
func (idx *Index) VisitKeys(fn func(key string)) {
	_ = idx.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		fn(string(p))
		return nil
	})
}

// Len returns the entry count.
func (idx *Index) Len() int {
	return len(idx.Entries)
}

// BaseURL returns the display-path prefix the index was built with.
func (idx *Index) BaseURL() string {
	return idx.baseURL
}
