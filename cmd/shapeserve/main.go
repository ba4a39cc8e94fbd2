/*
Shapeserve builds and serves the pasta-shape lookup index.

The catalog is a hand-edited CSV of shapes, synonyms and feature
columns. The build command folds it into an immutable search index and
publishes the artifact the web client fetches; serve answers lookup
queries over a msgpack stdio IPC; query runs one-shot or interactive
lookups for testing.

Usage:

	shapeserve build -i catalog.csv -o index.json [--msgpack index.bin]
	shapeserve serve -i index.bin
	shapeserve query -i catalog.csv "penne"
	shapeserve query -i catalog.csv

The -i input is sniffed by extension: .csv is ingested and indexed in
place, anything else is loaded as a published artifact (JSON or
msgpack). Queries walk a strict waterfall: exact alias match, then
prefix/substring suggestions, then bounded edit-distance "did you mean"
candidates.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pastalab/shapeserve/internal/cli"
	"github.com/pastalab/shapeserve/pkg/catalog"
	"github.com/pastalab/shapeserve/pkg/config"
	"github.com/pastalab/shapeserve/pkg/index"
	"github.com/pastalab/shapeserve/pkg/match"
	"github.com/pastalab/shapeserve/pkg/server"
)

const (
	Version = "1.2.0"
	AppName = "shapeserve"
)

var (
	flagConfig string
	flagInput  string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:           AppName,
	Short:         "Pasta shape catalog search",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagDebug {
			log.SetLevel(log.DebugLevel)
			log.SetReportTimestamp(true)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the search index from a catalog CSV and publish it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, _ := config.LoadConfigWithPriority(flagConfig)
		jsonOut, _ := cmd.Flags().GetString("out")
		packOut, _ := cmd.Flags().GetString("msgpack")

		idx, err := loadIndex(inputPath(cfg), cfg)
		if err != nil {
			return err
		}
		art := idx.Export()

		if jsonOut != "" {
			if err := art.WriteJSON(jsonOut); err != nil {
				return err
			}
			fmt.Printf("wrote %s: %d entries, %d aliases\n", jsonOut, len(art.Entries), len(art.AliasToSlug))
		}
		if packOut != "" {
			if err := art.WriteMsgpack(packOut); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", packOut)
		}
		if jsonOut == "" && packOut == "" {
			return fmt.Errorf("nothing to publish: pass --out and/or --msgpack")
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lookup queries over msgpack stdio IPC",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cfgPath, _ := config.LoadConfigWithPriority(flagConfig)
		idx, err := loadIndex(inputPath(cfg), cfg)
		if err != nil {
			return err
		}
		showStartupInfo(idx, cfgPath)
		return server.NewServer(idx, cfg).Start()
	},
}

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Run a one-shot query, or an interactive loop with no argument",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, _ := config.LoadConfigWithPriority(flagConfig)
		idx, err := loadIndex(inputPath(cfg), cfg)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			return cli.NewInputHandler(idx, searchOptions(cfg)).Start()
		}

		result := match.QueryWithOptions(idx, args[0], searchOptions(cfg))
		switch result.Kind {
		case match.ExactMatch:
			fmt.Printf("exact: %s  %s\n", result.Entry.Name, result.Entry.URL)
		case match.Suggestions, match.FuzzySuggestions:
			fmt.Printf("%s:\n", result.Kind)
			for _, r := range result.Results {
				fmt.Printf("  %s  %s\n", r.Label, r.Entry.URL)
			}
		default:
			fmt.Println(result.Kind)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show current version",
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("[ shapeserve ] pasta shape catalog search")
		logger.Print("", "version", Version)
	},
}

// searchOptions maps the loaded config onto query tier options.
func searchOptions(cfg *config.Config) match.Options {
	return match.Options{
		SuggestLimit: cfg.Search.SuggestLimit,
		FuzzyLimit:   cfg.Search.FuzzyLimit,
		MinFuzzyLen:  cfg.Search.MinFuzzyLen,
	}
}

// inputPath resolves -i, falling back to the configured catalog path.
func inputPath(cfg *config.Config) string {
	if flagInput != "" {
		return flagInput
	}
	return cfg.Catalog.CSVPath
}

// loadIndex builds an index from a CSV catalog or loads a published
// artifact, sniffed by extension.
func loadIndex(path string, cfg *config.Config) (*index.Index, error) {
	if path == "" {
		return nil, fmt.Errorf("no input: pass -i or set catalog.csv_path in config")
	}

	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		records, err := catalog.Load(path)
		if err != nil {
			return nil, err
		}
		return index.NewBuilder(cfg.Catalog.BaseURL).
			SynonymDelimiter(cfg.Catalog.SynonymDelimiter).
			Build(records), nil
	}

	art, err := index.LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	return art.Index(cfg.Catalog.BaseURL), nil
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(idx *index.Index, cfgPath string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("Config: %s", config.GetActiveConfigPath(cfgPath))
	log.Infof("entries: %d, alias records: %d", idx.Len(), len(idx.AliasList))
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config.toml")
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "Catalog CSV or published artifact")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "Toggle debug mode")

	buildCmd.Flags().StringP("out", "o", "", "JSON artifact output path")
	buildCmd.Flags().String("msgpack", "", "msgpack artifact output path")

	rootCmd.AddCommand(buildCmd, serveCmd, queryCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
