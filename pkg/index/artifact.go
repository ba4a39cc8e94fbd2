package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// ArtifactEntry is the published form of an Entry.
type ArtifactEntry struct {
	Slug        string            `json:"slug" msgpack:"slug"`
	Name        string            `json:"name" msgpack:"name"`
	URL         string            `json:"url" msgpack:"url"`
	Description string            `json:"description,omitempty" msgpack:"description,omitempty"`
	Synonyms    []string          `json:"synonyms,omitempty" msgpack:"synonyms,omitempty"`
	Features    map[string]string `json:"features,omitempty" msgpack:"features,omitempty"`
}

// Artifact is the published index document. The JSON form is fetched by
// the web client; the msgpack form is the compact snapshot the IPC
// server loads.
type Artifact struct {
	Entries        []ArtifactEntry   `json:"entries" msgpack:"entries"`
	AliasToSlug    map[string]string `json:"aliasToSlug" msgpack:"aliasToSlug"`
	AliasToDisplay map[string]string `json:"aliasToDisplay,omitempty" msgpack:"aliasToDisplay,omitempty"`
}

// Export flattens the index into its published document.
func (idx *Index) Export() *Artifact {
	art := &Artifact{
		Entries:        make([]ArtifactEntry, 0, len(idx.Order)),
		AliasToSlug:    idx.AliasToSlug,
		AliasToDisplay: idx.AliasDisplay,
	}
	for _, slug := range idx.Order {
		e := idx.Entries[slug]
		art.Entries = append(art.Entries, ArtifactEntry{
			Slug:        e.Slug,
			Name:        e.Name,
			URL:         e.URL,
			Description: e.Description,
			Synonyms:    e.Synonyms,
			Features:    e.Features,
		})
	}
	return art
}

// Index rebuilds a queryable Index from a published artifact. Derived
// structures are reconstructed by re-registering each entry's aliases;
// artifact keys that reference no known entry are kept so queries on
// them resolve through the stand-in path.
func (art *Artifact) Index(baseURL string) *Index {
	idx := &Index{
		Entries:      make(map[string]*Entry, len(art.Entries)),
		AliasToSlug:  make(map[string]string),
		AliasDisplay: make(map[string]string),
		StopKeySlugs: make(map[string]map[string]bool),
		trie:         newTrie(),
		baseURL:      normalizeBaseURL(baseURL),
	}

	for _, ae := range art.Entries {
		if ae.Slug == "" {
			continue
		}
		if _, dup := idx.Entries[ae.Slug]; dup {
			continue
		}
		entry := &Entry{
			Slug:        ae.Slug,
			Name:        ae.Name,
			URL:         ae.URL,
			Description: ae.Description,
			Synonyms:    ae.Synonyms,
			Features:    ae.Features,
		}
		idx.Entries[ae.Slug] = entry
		idx.Order = append(idx.Order, ae.Slug)
		idx.registerAliases(entry)
	}

	// Preserve published alias keys that re-registration did not
	// produce (catalog validator territory, but queries must not
	// crash on them).
	for key, slug := range art.AliasToSlug {
		if _, ok := idx.AliasToSlug[key]; ok {
			continue
		}
		idx.AliasToSlug[key] = slug
		display := art.AliasToDisplay[key]
		if display == "" {
			display = key
		}
		idx.AliasDisplay[key] = display
		idx.addAliasRecord(Alias{Key: key, Display: display, Slug: slug})
	}

	return idx
}

// WriteJSON publishes the artifact as the web document.
func (art *Artifact) WriteJSON(path string) error {
	data, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing artifact %s: %w", path, err)
	}
	log.Debugf("Wrote JSON artifact: %s (%d entries)", path, len(art.Entries))
	return nil
}

// WriteMsgpack publishes the compact binary snapshot.
func (art *Artifact) WriteMsgpack(path string) error {
	data, err := msgpack.Marshal(art)
	if err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing artifact %s: %w", path, err)
	}
	log.Debugf("Wrote msgpack artifact: %s (%d entries)", path, len(art.Entries))
	return nil
}

// LoadArtifact reads a published artifact, sniffing the format from the
// file extension: .json is the web document, anything else msgpack.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact %s: %w", path, err)
	}

	art := &Artifact{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, art); err != nil {
			return nil, fmt.Errorf("decoding JSON artifact %s: %w", path, err)
		}
	} else {
		if err := msgpack.Unmarshal(data, art); err != nil {
			return nil, fmt.Errorf("decoding msgpack artifact %s: %w", path, err)
		}
	}
	return art, nil
}
