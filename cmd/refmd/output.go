package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/refkit/refmd/internal/reference"
)

// Output tuning shared by the record-listing commands
const (
	DefaultSearchLimit = 50 // Default maximum results for search
	SummaryTitleMaxLen = 70 // Title truncation in human summaries
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// printRecordSummary prints one numbered record in human-readable form.
func printRecordSummary(num int, id string, rec reference.Record) {
	fmt.Printf("[%d] %s\n", num, id)
	if title := rec[reference.FieldTitle]; title != "" {
		fmt.Printf("    %s\n", truncateString(title, SummaryTitleMaxLen))
	}
	if authors := rec[reference.FieldAuthorsList]; authors != "" {
		fmt.Printf("    %s\n", authors)
	}
	venue := rec[reference.FieldJournal]
	if venue == "" {
		venue = rec[reference.FieldBookTitle]
	}
	year := rec[reference.FieldYear]
	switch {
	case venue != "" && year != "":
		fmt.Printf("    %s, %s\n", venue, year)
	case venue != "":
		fmt.Printf("    %s\n", venue)
	case year != "":
		fmt.Printf("    %s\n", year)
	}
	fmt.Println()
}

// writeTextFile writes content to path, creating parent directories as
// needed. Non-empty content always ends with a newline.
func writeTextFile(path, content string) error {
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
