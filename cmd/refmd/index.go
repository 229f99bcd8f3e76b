package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexDB string

func init() {
	indexCmd.Flags().StringVar(&indexDB, "db", "", "Index file path (default from config, then refmd.db)")
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index <path>",
	Short: "Rebuild the search index from sources",
	Long: `Rebuild the SQLite full-text index from the reference file or directory
at <path>.

The index is ephemeral. Source files stay authoritative, and the
database can be deleted and rebuilt at any time without losing data.

Examples:
  refmd index refs/
  refmd index refs/ --db /tmp/refs.db`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

// IndexResult is the response for the index command.
type IndexResult struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
	DB      string `json:"db"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	log := newLogger()

	col := mustLoadSources(args[0], log)

	dbPath := cfg.ResolveDBPath(indexDB)
	db := mustOpenDatabase(dbPath)
	defer db.Close()

	count, err := db.Rebuild(col)
	if err != nil {
		exitWithError(ExitDataError, "rebuilding index: %v", err)
	}

	if humanOutput {
		fmt.Printf("Indexed %d records into %s\n", count, dbPath)
	} else {
		outputJSON(IndexResult{Status: "indexed", Records: count, DB: dbPath})
	}
	return nil
}
