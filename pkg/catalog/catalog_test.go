package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadResolvesColumnSpellings(t *testing.T) {
	// The sheet spells columns differently across snapshots; all of
	// these must land on the same canonical fields.
	csv := strings.Join([]string{
		"ShapeName,Slug,Synonyms,descriptionShort,isHollow",
		"Penne,penne,mostaccioli; maccheroni,Short tubes,yes",
		"Fusilli,,,Corkscrews,no",
	}, "\n")

	records, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Penne", records[0].Field(FieldName))
	assert.Equal(t, "penne", records[0].Field(FieldSlug))
	assert.Equal(t, "mostaccioli; maccheroni", records[0].Field(FieldSynonyms))
	assert.Equal(t, "Short tubes", records[0].Field(FieldDescription))

	assert.Equal(t, "Fusilli", records[1].Field(FieldName))
	assert.Equal(t, "", records[1].Field(FieldSlug), "blank slug stays blank")
}

func TestFeaturesExcludeCanonicalColumns(t *testing.T) {
	csv := "Name,Synonyms,isHollow,sizeClass\nRigatoni,,yes,large\n"
	records, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)

	features := records[0].Features()
	assert.Equal(t, "yes", features["ishollow"])
	assert.Equal(t, "large", features["sizeclass"])
	assert.NotContains(t, features, "name")
	assert.NotContains(t, features, "synonyms")
}

func TestReadToleratesRaggedRows(t *testing.T) {
	csv := "Name,Synonyms,isHollow\nPenne\nZiti,zitoni,yes,extra\n"
	records, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Penne", records[0].Field(FieldName))
	assert.Equal(t, "", records[0].Field(FieldSynonyms))
	assert.Equal(t, "Ziti", records[1].Field(FieldName))
}

func TestSplitSynonyms(t *testing.T) {
	testCases := []struct {
		input    string
		expected []string
	}{
		{"mostaccioli; maccheroni", []string{"mostaccioli", "maccheroni"}},
		{"one;;two; ", []string{"one", "two"}},
		{"single", []string{"single"}},
		{"", nil},
		{" ; ; ", nil},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, SplitSynonyms(tc.input), "input %q", tc.input)
	}
}

func TestSplitSynonymsDelim(t *testing.T) {
	testCases := []struct {
		input    string
		delim    string
		expected []string
	}{
		{"mostaccioli| maccheroni", "|", []string{"mostaccioli", "maccheroni"}},
		{"one,,two, ", ",", []string{"one", "two"}},
		{"a; b", ";", []string{"a", "b"}},
		// The empty delimiter falls back to the default.
		{"a; b", "", []string{"a", "b"}},
		{"a; b", "|", []string{"a; b"}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, SplitSynonymsDelim(tc.input, tc.delim), "input %q delim %q", tc.input, tc.delim)
	}
}
