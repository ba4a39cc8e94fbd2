/*
Package config manages TOML config for shapeserve.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/pastalab/shapeserve/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Catalog CatalogConfig `toml:"catalog"`
}

// SearchConfig has query tier options.
type SearchConfig struct {
	SuggestLimit     int `toml:"suggest_limit"`
	FuzzyLimit       int `toml:"fuzzy_limit"`
	MinFuzzyLen      int `toml:"min_fuzzy_len"`
	FilterDisplayCap int `toml:"filter_display_cap"`
}

// CatalogConfig holds catalog ingestion options.
type CatalogConfig struct {
	CSVPath          string `toml:"csv_path"`
	BaseURL          string `toml:"base_url"`
	SynonymDelimiter string `toml:"synonym_delimiter"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			SuggestLimit:     10,
			FuzzyLimit:       5,
			MinFuzzyLen:      3,
			FilterDisplayCap: 30,
		},
		Catalog: CatalogConfig{
			CSVPath:          "catalog.csv",
			BaseURL:          "/pasta/",
			SynonymDelimiter: ";",
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/shapeserve
// 2. ~/Library/Application Support/shapeserve (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "shapeserve")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "shapeserve")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [config dir]/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			cfg, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return cfg, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return cfg, nil
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		return tryPartialParse(configPath)
	}
	return cfg, nil
}

// tryPartialParse salvages the valid sections of a broken TOML file.
func tryPartialParse(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return cfg, nil
	}

	if searchSection, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(searchSection, &cfg.Search)
	}
	if catalogSection, ok := utils.ExtractSection(tempConfig, "catalog"); ok {
		extractCatalogConfig(catalogSection, &cfg.Catalog)
	}
	return cfg, nil
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "suggest_limit"); ok {
		search.SuggestLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "fuzzy_limit"); ok {
		search.FuzzyLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_fuzzy_len"); ok {
		search.MinFuzzyLen = val
	}
	if val, ok := utils.ExtractInt64(data, "filter_display_cap"); ok {
		search.FilterDisplayCap = val
	}
}

func extractCatalogConfig(data map[string]any, cat *CatalogConfig) {
	if val, ok := utils.ExtractString(data, "csv_path"); ok {
		cat.CSVPath = val
	}
	if val, ok := utils.ExtractString(data, "base_url"); ok {
		cat.BaseURL = val
	}
	if val, ok := utils.ExtractString(data, "synonym_delimiter"); ok {
		cat.SynonymDelimiter = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}
