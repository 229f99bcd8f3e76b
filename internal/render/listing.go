package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/refkit/refmd/internal/reference"
)

// defaultListing is parsed at init time to fail fast on template errors.
var defaultListing *template.Template

func init() {
	defaultListing = template.Must(template.New("listing").Option("missingkey=zero").Parse(defaultListingTemplate))
}

// WriteListing renders all records, newest year first, through a
// list-oriented HTML template into a single page. The template receives
// the records under the "papers" variable; an empty templatePath selects
// the built-in page.
func WriteListing(col reference.Collection, templatePath, outPath string) error {
	tmpl := defaultListing
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return fmt.Errorf("reading listing template: %w", err)
		}
		tmpl, err = template.New(filepath.Base(templatePath)).Option("missingkey=zero").Parse(string(data))
		if err != nil {
			return fmt.Errorf("parsing listing template: %w", err)
		}
	}

	papers := reference.ByYearDesc(col)
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{"papers": papers}); err != nil {
		return fmt.Errorf("rendering listing: %w", err)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating listing directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

const defaultListingTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Publications</title>
<style>
  body { font-family: sans-serif; max-width: 50em; margin: 2em auto; }
  li { margin-bottom: 0.8em; }
  .venue { color: #555; }
</style>
</head>
<body>
<h1>Publications</h1>
<ul>
{{- range .papers}}
  <li>
    {{if .url}}<a href="{{.url}}">{{.title}}</a>{{else}}{{.title}}{{end}}
    {{- if .authors_list}}<br>{{.authors_list}}{{end}}
    {{- if .journal}}<br><span class="venue">{{.journal}}{{if .year}}, {{.year}}{{end}}</span>
    {{- else if .year}}<br><span class="venue">{{.year}}</span>{{end}}
  </li>
{{- end}}
</ul>
</body>
</html>
`
