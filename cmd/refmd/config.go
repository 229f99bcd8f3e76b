package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/refkit/refmd/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  refmd config                           # Show all config
  refmd config template                  # Get specific value
  refmd config template ~/tpl/page.md    # Set value

Keys:
  template          Markdown page template path
  html-template     Listing page template path
  output-dir        Markdown output directory
  include-abstract  Bind abstract/URL into pages (true/false)
  db-path           Search index location`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the JSON form of the full configuration.
type ConfigResponse struct {
	Template        string `json:"template"`
	HTMLTemplate    string `json:"html_template"`
	OutputDir       string `json:"output_dir"`
	IncludeAbstract bool   `json:"include_abstract"`
	DBPath          string `json:"db_path"`
}

// UpdateResponse reports a config set operation.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("config file:      %s\n", config.Path())
			fmt.Printf("template:         %s\n", cfg.Template)
			fmt.Printf("html-template:    %s\n", cfg.HTMLTemplate)
			fmt.Printf("output-dir:       %s\n", cfg.OutputDir)
			fmt.Printf("include-abstract: %t\n", cfg.IncludeAbstract)
			fmt.Printf("db-path:          %s\n", cfg.DBPath)
		} else {
			outputJSON(ConfigResponse{
				Template:        cfg.Template,
				HTMLTemplate:    cfg.HTMLTemplate,
				OutputDir:       cfg.OutputDir,
				IncludeAbstract: cfg.IncludeAbstract,
				DBPath:          cfg.DBPath,
			})
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		value, ok := configValue(cfg, key)
		if !ok {
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	switch key {
	case "template":
		expanded := config.ExpandPath(value)
		if err := config.ValidateTemplatePath(expanded); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.Template = expanded
	case "html-template":
		expanded := config.ExpandPath(value)
		if err := config.ValidateTemplatePath(expanded); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.HTMLTemplate = expanded
	case "output-dir":
		cfg.OutputDir = config.ExpandPath(value)
	case "include-abstract":
		b, err := strconv.ParseBool(value)
		if err != nil {
			exitWithError(ExitError, "include-abstract wants true or false, got %q", value)
		}
		cfg.IncludeAbstract = b
	case "db-path":
		cfg.DBPath = config.ExpandPath(value)
	default:
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}

// configValue maps a normalized key to its current value.
func configValue(cfg *config.Config, key string) (string, bool) {
	switch key {
	case "template":
		return cfg.Template, true
	case "html-template":
		return cfg.HTMLTemplate, true
	case "output-dir":
		return cfg.OutputDir, true
	case "include-abstract":
		return strconv.FormatBool(cfg.IncludeAbstract), true
	case "db-path":
		return cfg.DBPath, true
	}
	return "", false
}

// normalizeKey converts key formats (output-dir, output_dir) to one form.
func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}
