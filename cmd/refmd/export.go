package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/refkit/refmd/internal/export"
)

var (
	exportBibtex bool
	exportKeys   string
	exportDB     string
)

func init() {
	exportCmd.Flags().BoolVar(&exportBibtex, "bibtex", false, "Export to BibTeX format")
	exportCmd.Flags().StringVar(&exportKeys, "keys", "", "Export only specified IDs (comma-separated)")
	exportCmd.Flags().StringVar(&exportDB, "db", "", "Index file path (default from config, then refmd.db)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export indexed records to BibTeX format",
	Long: `Export records from the search index to BibTeX format. Without
--keys every indexed record is exported, in identifier order. Run
'refmd index' first to build the index.

Examples:
  refmd export --bibtex
  refmd export --bibtex --keys smith_2023,jones_2022
  refmd export --bibtex > refs.bib`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	if !exportBibtex {
		exitWithError(ExitError, "--bibtex flag is required")
	}

	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg.ResolveDBPath(exportDB))
	defer db.Close()

	var entries []string
	if exportKeys != "" {
		// Export specific keys, in the order given
		for _, key := range strings.Split(exportKeys, ",") {
			key = strings.TrimSpace(key)
			rec, err := db.GetByID(key)
			if err != nil {
				exitWithError(ExitError, "getting record %s: %v", key, err)
			}
			if rec == nil {
				exitWithError(ExitError, "unknown key: %s", key)
			}
			entries = append(entries, export.ToBibTeX(key, rec))
		}
	} else {
		results, err := db.ListAll(0)
		if err != nil {
			exitWithError(ExitError, "listing records: %v", err)
		}
		for _, res := range results {
			entries = append(entries, export.ToBibTeX(res.ID, res.Record))
		}
	}

	// BibTeX is always text output, never JSON
	if len(entries) > 0 {
		fmt.Println(strings.Join(entries, "\n\n"))
	}
	return nil
}
