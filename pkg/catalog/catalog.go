/*
Package catalog reads the raw shape catalog from CSV and resolves its
loosely-spelled columns to canonical field names.

The source sheet is hand-edited: the same semantic column shows up under
several spellings across snapshots ("Description", "descriptionShort",
...). Resolution is table-driven so a new spelling is a one-line change.
*/
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pastalab/shapeserve/internal/logger"
)

// Canonical field names used by the index builder.
const (
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldSynonyms    = "synonyms"
	FieldDescription = "description"
)

// fieldAliases maps a canonical field to the accepted source-column
// spellings, checked in order. Comparison is case-insensitive on the
// trimmed header.
var fieldAliases = map[string][]string{
	FieldName:        {"name", "shapename", "shape name", "pasta", "pastaname"},
	FieldSlug:        {"slug", "id", "permalink"},
	FieldSynonyms:    {"synonyms", "aliases", "aka", "othernames", "other names"},
	FieldDescription: {"description", "descriptionshort", "desc", "summary"},
}

// Record is one raw catalog row keyed by folded header name.
type Record map[string]string

// Field resolves a canonical field through the alias table. The empty
// string means the row has no value under any accepted spelling.
func (r Record) Field(canonical string) string {
	for _, alias := range fieldAliases[canonical] {
		if v, ok := r[alias]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Features returns every column that is not claimed by a canonical
// field, preserved verbatim. The identification-by-features flow filters
// on these without knowing the column set up front.
func (r Record) Features() map[string]string {
	claimed := make(map[string]bool)
	for _, aliases := range fieldAliases {
		for _, a := range aliases {
			claimed[a] = true
		}
	}
	features := make(map[string]string)
	for k, v := range r {
		if !claimed[k] {
			features[k] = strings.TrimSpace(v)
		}
	}
	return features
}

// foldHeader folds a source column header for alias-table lookup.
func foldHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// Read parses catalog rows from r. Short or ragged rows are tolerated;
// a row shorter than the header simply leaves the trailing fields empty.
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}
	folded := make([]string, len(header))
	for i, h := range header {
		folded[i] = foldHeader(h)
	}

	clog := logger.New("catalog")
	var records []Record
	line := 1
	for {
		row, err := cr.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			clog.Warnf("Skipping malformed catalog row %d: %v", line, err)
			continue
		}
		rec := make(Record, len(folded))
		for i, h := range folded {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Load reads catalog rows from a CSV file on disk.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, err
	}
	logger.New("catalog").Debugf("Loaded %d catalog rows from %s", len(records), path)
	return records, nil
}

// DefaultSynonymDelimiter separates entries in the synonym column.
const DefaultSynonymDelimiter = ";"

// SplitSynonyms parses a semicolon-delimited synonym field, trimming
// each entry and dropping empties.
func SplitSynonyms(field string) []string {
	return SplitSynonymsDelim(field, DefaultSynonymDelimiter)
}

// SplitSynonymsDelim is SplitSynonyms with a caller-supplied
// delimiter.
func SplitSynonymsDelim(field, delim string) []string {
	if field == "" {
		return nil
	}
	if delim == "" {
		delim = DefaultSynonymDelimiter
	}
	var out []string
	for _, part := range strings.Split(field, delim) {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
