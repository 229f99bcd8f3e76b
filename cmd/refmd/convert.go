package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refkit/refmd/internal/export"
)

var convertOutput string

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file (default stdout for a single file, required for a folder)")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <path>",
	Short: "Convert RIS references to BibTeX",
	Long: `Convert a RIS file, or every RIS file in a folder, to BibTeX. Entries
pass through normalization first, so identifiers and field names match
the rest of the pipeline.

Examples:
  refmd convert refs.ris
  refmd convert refs.ris --output refs.bib
  refmd convert ris-folder/ --output combined.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

// ConvertResult is the response for the convert command.
type ConvertResult struct {
	Status string `json:"status"`
	Output string `json:"output"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := newLogger()
	path := args[0]

	if isDirectory(path) {
		if convertOutput == "" {
			exitWithError(ExitError, "--output is required when converting a folder")
		}
		if err := export.ConvertFolder(path, convertOutput, log); err != nil {
			exitWithError(ExitDataError, "converting folder: %v", err)
		}
	} else {
		bib, err := export.ConvertFile(path, log)
		if err != nil {
			exitWithError(ExitDataError, "converting %s: %v", path, err)
		}
		if convertOutput == "" {
			// BibTeX goes to stdout as plain text, never JSON
			if bib != "" {
				fmt.Println(bib)
			}
			return nil
		}
		if err := writeTextFile(convertOutput, bib); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	if humanOutput {
		fmt.Printf("Wrote %s\n", convertOutput)
	} else {
		outputJSON(ConvertResult{Status: "converted", Output: convertOutput})
	}
	return nil
}
