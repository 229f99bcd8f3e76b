package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/refkit/refmd/internal/linkcheck"
	"github.com/refkit/refmd/internal/reference"
)

var (
	checkLinks   bool
	checkTimeout time.Duration
)

func init() {
	checkCmd.Flags().BoolVar(&checkLinks, "links", false, "Verify that record URLs resolve over HTTP")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", linkcheck.DefaultTimeout, "Per-request timeout for --links")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Verify corpus integrity",
	Long: `Check the reference file or directory at <path> for duplicate
identifiers across files, duplicate DOIs, missing titles, and output
filename collisions. With --links, every record URL is verified with
rate-limited HTTP requests.

Issues are reported, not fatal: the command exits 0 either way so that
agents can act on the JSON report.

Examples:
  refmd check refs/
  refmd check refs/ --links --timeout 5s`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status       string       `json:"status"`
	Records      int          `json:"records"`
	LinksChecked int          `json:"links_checked,omitempty"`
	Issues       []CheckIssue `json:"issues"`
}

// CheckIssue describes a single problem found in the corpus.
type CheckIssue struct {
	Type   string   `json:"type"`
	ID     string   `json:"id,omitempty"`
	IDs    []string `json:"ids,omitempty"`
	DOI    string   `json:"doi,omitempty"`
	File   string   `json:"file,omitempty"`
	Files  []string `json:"files,omitempty"`
	URL    string   `json:"url,omitempty"`
	Detail string   `json:"detail,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	log := newLogger()

	paths, err := discoverSources(args[0])
	if err != nil {
		exitWithError(ExitDataError, "reading sources: %v", err)
	}

	// Parse file by file so cross-file identifier clashes are still
	// visible before the merge flattens them.
	idFiles := make(map[string][]string)
	col := make(reference.Collection)
	for _, path := range paths {
		fileCol, err := parseSource(path, log)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("skipping unparseable file")
			continue
		}
		for id := range fileCol {
			idFiles[id] = append(idFiles[id], path)
		}
		col = reference.Merge(col, fileCol)
	}

	var issues []CheckIssue

	for _, id := range sortedKeys(idFiles) {
		if files := idFiles[id]; len(files) > 1 {
			issues = append(issues, CheckIssue{
				Type:   "duplicate_id",
				ID:     id,
				Files:  files,
				Detail: "the last file parsed wins",
			})
		}
	}

	doiIDs := make(map[string][]string)
	fileIDs := make(map[string][]string)
	for _, id := range reference.SortedIDs(col) {
		rec := col[id]
		if doi := reference.NormalizeDOI(rec[reference.FieldDOI]); doi != "" {
			doiIDs[doi] = append(doiIDs[doi], id)
		}
		if name := rec[reference.FieldPaperFileName]; name != "" {
			fileIDs[name] = append(fileIDs[name], id)
		}
		if rec[reference.FieldTitle] == "" {
			issues = append(issues, CheckIssue{Type: "missing_title", ID: id})
		}
	}
	for _, doi := range sortedKeys(doiIDs) {
		if ids := doiIDs[doi]; len(ids) > 1 {
			issues = append(issues, CheckIssue{Type: "duplicate_doi", DOI: doi, IDs: ids})
		}
	}
	for _, name := range sortedKeys(fileIDs) {
		if ids := fileIDs[name]; len(ids) > 1 {
			issues = append(issues, CheckIssue{
				Type:   "filename_collision",
				File:   name,
				IDs:    ids,
				Detail: "records would overwrite each other's pages",
			})
		}
	}

	linksChecked := 0
	if checkLinks {
		checker := linkcheck.New(linkcheck.WithTimeout(checkTimeout))
		broken, checked := checker.CheckCollection(cmd.Context(), col, log)
		linksChecked = checked
		for _, b := range broken {
			issues = append(issues, CheckIssue{Type: "broken_link", ID: b.ID, URL: b.URL, Detail: b.Error})
		}
	}

	status := "ok"
	if len(issues) > 0 {
		status = "issues"
	}
	if issues == nil {
		issues = []CheckIssue{}
	}

	if humanOutput {
		fmt.Printf("Checked %d records", len(col))
		if checkLinks {
			fmt.Printf(" (%d links)", linksChecked)
		}
		fmt.Println()
		for _, issue := range issues {
			fmt.Printf("[WARN] %s\n", describeIssue(issue))
		}
		if len(issues) == 0 {
			fmt.Println("No issues found")
		}
	} else {
		outputJSON(CheckResult{
			Status:       status,
			Records:      len(col),
			LinksChecked: linksChecked,
			Issues:       issues,
		})
	}
	return nil
}

// describeIssue renders one issue as a human-readable line.
func describeIssue(issue CheckIssue) string {
	switch issue.Type {
	case "duplicate_id":
		return fmt.Sprintf("duplicate id %q in %s", issue.ID, strings.Join(issue.Files, ", "))
	case "duplicate_doi":
		return fmt.Sprintf("duplicate DOI %q shared by %s", issue.DOI, strings.Join(issue.IDs, ", "))
	case "missing_title":
		return fmt.Sprintf("record %q has no title", issue.ID)
	case "filename_collision":
		return fmt.Sprintf("records %s all map to %s", strings.Join(issue.IDs, ", "), issue.File)
	case "broken_link":
		return fmt.Sprintf("record %q link %s failed: %s", issue.ID, issue.URL, issue.Detail)
	default:
		return issue.Type
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
