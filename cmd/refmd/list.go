package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refkit/refmd/internal/reference"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list <path>",
	Short: "Show normalized records without writing anything",
	Long: `Parse the reference file or directory at <path> and print the
normalized records. JSON output maps record identifiers to their full
canonical field set; human output shows one summary per record, newest
year first.

Examples:
  refmd list refs/
  refmd list refs.bib --human`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	log := newLogger()
	col := mustLoadSources(args[0], log)

	if humanOutput {
		if len(col) == 0 {
			fmt.Println("No records found")
			return nil
		}
		fmt.Printf("%d records:\n\n", len(col))
		for i, id := range reference.IDsByYearDesc(col) {
			printRecordSummary(i+1, id, col[id])
		}
	} else {
		outputJSON(col)
	}
	return nil
}
