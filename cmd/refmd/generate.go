package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refkit/refmd/internal/config"
	"github.com/refkit/refmd/internal/export"
	"github.com/refkit/refmd/internal/render"
)

var (
	generateTemplate     string
	generateOutput       string
	generateAbstract     bool
	generateHTML         string
	generateHTMLTemplate string
	generateCombinedBib  string
	generateCombinedRIS  string
)

func init() {
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "", "Markdown page template (default from config)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Directory for the generated pages (default from config, then \"papers\")")
	generateCmd.Flags().BoolVar(&generateAbstract, "include-abstract", false, "Bind abstract and paper URL into pages")
	generateCmd.Flags().StringVar(&generateHTML, "html", "", "Also write an HTML listing page to this path")
	generateCmd.Flags().StringVar(&generateHTMLTemplate, "html-template", "", "Listing template for --html (default built-in)")
	generateCmd.Flags().StringVar(&generateCombinedBib, "combined-bib", "", "Also combine every source into one BibTeX file at this path")
	generateCmd.Flags().StringVar(&generateCombinedRIS, "combined-ris", "", "Also concatenate RIS sources into one file at this path")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate <path>",
	Short: "Render markdown pages from reference sources",
	Long: `Parse the reference file or directory at <path>, normalize every entry,
and render one markdown page per record through the page template. Page
files are named {year}-{title}.md and rewritten on every run.

Examples:
  refmd generate refs/ --template page.md
  refmd generate refs.bib -t page.md -o site/papers --include-abstract
  refmd generate refs/ -t page.md --html site/index.html --combined-bib site/all.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

// GenerateResult is the response for the generate command.
type GenerateResult struct {
	Status      string `json:"status"`
	Records     int    `json:"records"`
	Written     int    `json:"written"`
	Failed      int    `json:"failed"`
	OutputDir   string `json:"output_dir"`
	Listing     string `json:"listing,omitempty"`
	CombinedBib string `json:"combined_bib,omitempty"`
	CombinedRIS string `json:"combined_ris,omitempty"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	log := newLogger()

	templatePath := generateTemplate
	if templatePath == "" {
		templatePath = cfg.Template
	}
	if templatePath == "" {
		exitWithError(ExitConfigError, "no page template: pass --template or set template in %s", config.Path())
	}

	outputDir := generateOutput
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if outputDir == "" {
		outputDir = "papers"
	}

	htmlTemplate := generateHTMLTemplate
	if htmlTemplate == "" {
		htmlTemplate = cfg.HTMLTemplate
	}

	if (generateCombinedBib != "" || generateCombinedRIS != "") && !isDirectory(args[0]) {
		exitWithError(ExitError, "--combined-bib and --combined-ris need a source directory, not a single file")
	}

	tmpl, err := render.Load(templatePath)
	if err != nil {
		exitWithError(ExitConfigError, "loading template: %v", err)
	}

	col := mustLoadSources(args[0], log)

	writer := render.Writer{
		OutDir: outputDir,
		Opts:   render.BindOptions{IncludeAbstract: generateAbstract || cfg.IncludeAbstract},
	}
	stats, err := writer.WriteAll(col, tmpl, log)
	if err != nil {
		exitWithError(ExitError, "writing pages: %v", err)
	}

	if generateHTML != "" {
		if err := render.WriteListing(col, htmlTemplate, generateHTML); err != nil {
			exitWithError(ExitError, "writing listing: %v", err)
		}
	}
	if generateCombinedBib != "" {
		if err := export.ConcatAllToBib(args[0], generateCombinedBib, log); err != nil {
			exitWithError(ExitError, "writing combined BibTeX: %v", err)
		}
	}
	if generateCombinedRIS != "" {
		if err := export.ConcatRIS(args[0], generateCombinedRIS, log); err != nil {
			exitWithError(ExitError, "writing combined RIS: %v", err)
		}
	}

	if humanOutput {
		fmt.Printf("Generated %d of %d pages in %s\n", stats.Written, len(col), outputDir)
		if stats.Failed > 0 {
			fmt.Printf("%d pages failed, run with --verbose for details\n", stats.Failed)
		}
		if generateHTML != "" {
			fmt.Printf("Listing: %s\n", generateHTML)
		}
		if generateCombinedBib != "" {
			fmt.Printf("Combined BibTeX: %s\n", generateCombinedBib)
		}
		if generateCombinedRIS != "" {
			fmt.Printf("Combined RIS: %s\n", generateCombinedRIS)
		}
	} else {
		outputJSON(GenerateResult{
			Status:      "generated",
			Records:     len(col),
			Written:     stats.Written,
			Failed:      stats.Failed,
			OutputDir:   outputDir,
			Listing:     generateHTML,
			CombinedBib: generateCombinedBib,
			CombinedRIS: generateCombinedRIS,
		})
	}
	return nil
}
