package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 10, cfg.Search.SuggestLimit)
	assert.Equal(t, 5, cfg.Search.FuzzyLimit)
	assert.Equal(t, 3, cfg.Search.MinFuzzyLen)
	assert.Equal(t, 30, cfg.Search.FilterDisplayCap)
	assert.Equal(t, "/pasta/", cfg.Catalog.BaseURL)
	assert.Equal(t, ";", cfg.Catalog.SynonymDelimiter)
}

func TestLoadConfigReadsTierOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[search]
suggest_limit = 7
fuzzy_limit = 2
min_fuzzy_len = 5

[catalog]
synonym_delimiter = "|"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Search.SuggestLimit)
	assert.Equal(t, 2, cfg.Search.FuzzyLimit)
	assert.Equal(t, 5, cfg.Search.MinFuzzyLen)
	assert.Equal(t, "|", cfg.Catalog.SynonymDelimiter)
	assert.Equal(t, "catalog.csv", cfg.Catalog.CSVPath, "omitted fields keep their defaults")
}

func TestLoadConfigSalvagesTypedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// suggest_limit has the wrong type; the rest of the file should
	// still be honored.
	content := `
[search]
suggest_limit = "ten"
min_fuzzy_len = 4

[catalog]
synonym_delimiter = ","
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Search.SuggestLimit, "bad value falls back to the default")
	assert.Equal(t, 4, cfg.Search.MinFuzzyLen)
	assert.Equal(t, ",", cfg.Catalog.SynonymDelimiter)
}

func TestGetActiveConfigPath(t *testing.T) {
	assert.True(t, filepath.IsAbs(GetActiveConfigPath("config.toml")))
	abs := filepath.Join(t.TempDir(), "config.toml")
	assert.Equal(t, abs, GetActiveConfigPath(abs))
}
