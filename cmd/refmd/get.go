package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/refkit/refmd/internal/reference"
)

var getDB string

func init() {
	getCmd.Flags().StringVar(&getDB, "db", "", "Index file path (default from config, then refmd.db)")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single indexed record by identifier",
	Long: `Get one record from the search index by its identifier.
Run 'refmd index' first to build the index.

Example:
  refmd get smith_2023`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	db := mustOpenDatabase(cfg.ResolveDBPath(getDB))
	defer db.Close()

	id := args[0]
	rec, err := db.GetByID(id)
	if err != nil {
		exitWithError(ExitError, "getting record: %v", err)
	}
	if rec == nil {
		exitWithError(ExitError, "record not found: %s", id)
	}

	if humanOutput {
		printRecordDetail(id, rec)
	} else {
		outputJSON(rec)
	}
	return nil
}

// printRecordDetail dumps every populated field of one record, the
// presentation fields first and the rest alphabetically.
func printRecordDetail(id string, rec reference.Record) {
	fmt.Println(id)

	leading := []string{
		reference.FieldTitle,
		reference.FieldAuthorsList,
		reference.FieldType,
		reference.FieldJournal,
		reference.FieldBookTitle,
		reference.FieldYear,
		reference.FieldDOI,
		reference.FieldURL,
	}
	printed := make(map[string]bool, len(rec))
	for _, field := range leading {
		printField(field, rec[field])
		printed[field] = true
	}

	rest := make([]string, 0, len(rec))
	for field := range rec {
		if !printed[field] {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		printField(field, rec[field])
	}
}

func printField(name, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %-17s %s\n", name+":", value)
}
