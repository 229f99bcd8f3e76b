// Package main provides the refmd CLI for normalizing bibliographic
// references and rendering them to markdown.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/refkit/refmd/internal/config"
	"github.com/refkit/refmd/internal/reference"
	"github.com/refkit/refmd/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verboseOutput raises stderr diagnostics from warnings to debug detail
var verboseOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refmd",
	Short: "Agent-first bibliography-to-markdown pipeline",
	Long: `refmd normalizes bibliographic references and renders them to markdown.

Core features:
  - BibTeX and RIS parsing into one canonical record model
  - Markdown page generation through user templates
  - HTML listing pages, combined corpus files, RIS-to-BibTeX conversion
  - SQLite full-text search over normalized records
  - RIS stub generation from folders of PDFs

Source files stay authoritative; every derived artifact can be rebuilt
from them at any time. All commands output JSON by default for AI agent
integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env if present, so REFMD_* overrides work without exporting
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verboseOutput, "verbose", "v", false, "Show debug diagnostics on stderr")
	rootCmd.Version = Version
}

// newLogger builds the pipeline logger. Diagnostics go to stderr so
// stdout stays clean for JSON and text output.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verboseOutput {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenDatabase opens the SQLite index, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(path string) *storage.DB {
	db, err := storage.Open(path)
	if err != nil {
		exitWithError(ExitError, "opening database %s: %v", path, err)
	}
	return db
}

// mustLoadSources parses every source under path into one collection,
// exiting only when the path itself is unreadable. Individual files
// that fail to parse are logged and skipped.
func mustLoadSources(path string, log zerolog.Logger) reference.Collection {
	paths, err := discoverSources(path)
	if err != nil {
		exitWithError(ExitDataError, "reading sources: %v", err)
	}
	return loadCollection(paths, log)
}
