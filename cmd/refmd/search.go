package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refkit/refmd/internal/storage"
)

var (
	searchDB    string
	searchLimit int
	searchField string
)

func init() {
	searchCmd.Flags().StringVar(&searchDB, "db", "", "Index file path (default from config, then refmd.db)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().StringVar(&searchField, "field", "", "Restrict the query to one field: title or author")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the record index",
	Long: `Full-text search over indexed records. The query matches titles,
abstracts, authors, and years; --field narrows it to a single one.
Run 'refmd index' first to build the index.

Examples:
  refmd search "machine learning"
  refmd search Smith --field author
  refmd search influenza --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	db := mustOpenDatabase(cfg.ResolveDBPath(searchDB))
	defer db.Close()

	var results []storage.Result
	var err error
	if searchField != "" {
		results, err = db.SearchField(searchField, args[0], searchLimit)
	} else {
		results, err = db.Search(args[0], searchLimit)
	}
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	// An empty result set is not an error
	if results == nil {
		results = []storage.Result{}
	}

	if humanOutput {
		if len(results) == 0 {
			fmt.Println("No records found")
			return nil
		}
		fmt.Printf("Found %d records:\n\n", len(results))
		for i, res := range results {
			printRecordSummary(i+1, res.ID, res.Record)
		}
	} else {
		outputJSON(results)
	}
	return nil
}
