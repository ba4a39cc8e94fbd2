/*
Package textnorm folds catalog names and user queries into canonical
matching keys.

Every lookup path in shapeserve compares normalized keys, never raw
strings. Normalize is total and idempotent: any input, including empty or
pathological text, folds to a string over [a-z0-9 -] with single spaces
and no edge whitespace.
*/
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopwords are Italian connector tokens (articles, prepositions) that
// carry no identity in a shape name. Only the unique-slug fallback path
// may strip them; primary matching never does.
var stopwords = map[string]bool{
	"di":    true,
	"de":    true,
	"del":   true,
	"della": true,
	"delle": true,
	"dei":   true,
	"al":    true,
	"alla":  true,
	"alle":  true,
	"la":    true,
	"le":    true,
	"il":    true,
	"lo":    true,
	"gli":   true,
	"i":     true,
	"con":   true,
	"e":     true,
	"a":     true,
	"in":    true,
	"da":    true,
	"per":   true,
}

// foldMarks strips combining diacritical marks after NFD decomposition,
// so "à" folds to "a".
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds s into a canonical matching key. Steps run in a fixed
// order: lowercase, diacritic strip, "&" to "and", quote characters to
// spaces, everything outside [a-z0-9 -] to spaces, whitespace collapse.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)

	if folded, _, err := transform.String(foldMarks, s); err == nil {
		s = folded
	}

	s = strings.ReplaceAll(s, "&", "and")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\'' || r == '‘' || r == '’' || r == '"' || r == '“' || r == '”' || r == '`':
			b.WriteByte(' ')
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// StripStopwords removes connector tokens from an already-normalized key.
// The result may be empty when every token is a stopword.
func StripStopwords(key string) string {
	fields := strings.Fields(key)
	kept := fields[:0]
	for _, f := range fields {
		if !stopwords[f] {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// CollapseLetterSpacing undoes letter-spaced input like "p e n n e".
// It only fires when the key is three or more single alphanumeric
// characters separated by spaces; anything else is returned unchanged.
func CollapseLetterSpacing(key string) string {
	fields := strings.Fields(key)
	if len(fields) < 3 {
		return key
	}
	for _, f := range fields {
		if len(f) != 1 {
			return key
		}
		c := f[0]
		if !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9') {
			return key
		}
	}
	return strings.Join(fields, "")
}

// Slugify derives a URL-safe slug from a display name: normalized key
// with spaces turned into hyphens, hyphen runs collapsed, edges trimmed.
func Slugify(name string) string {
	key := Normalize(name)
	key = strings.ReplaceAll(key, " ", "-")
	for strings.Contains(key, "--") {
		key = strings.ReplaceAll(key, "--", "-")
	}
	return strings.Trim(key, "-")
}

// IsStopword reports whether a single normalized token is in the
// connector set.
func IsStopword(token string) bool {
	return stopwords[token]
}
