// Package render binds canonical records to page templates and writes the
// resulting markdown and HTML files.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/template"
	"text/template/parse"

	"github.com/refkit/refmd/internal/reference"
)

// Injected variables are always bound, whether or not the record carries
// them, so they never count as unresolved.
var injected = map[string]bool{
	"permalink": true,
	"excerpt":   true,
	"paperurl":  true,
}

// Template is a parsed page template plus the set of top-level variables
// it references, discovered once at load time and reused for every record.
type Template struct {
	tmpl *template.Template
	Vars []string
}

// Load parses the template file and discovers its variable set. Missing
// variables render as empty strings rather than failing execution.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	return Parse(filepath.Base(path), string(data))
}

// Parse builds a Template from source text.
func Parse(name, text string) (*Template, error) {
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &Template{tmpl: tmpl, Vars: templateVars(tmpl)}, nil
}

// Render executes the template over the bound variable map.
func (t *Template) Render(w io.Writer, vars map[string]string) error {
	return t.tmpl.Execute(w, vars)
}

// BindOptions control the presentation bindings that override record
// values.
type BindOptions struct {
	// IncludeAbstract fills excerpt and paperurl from the record's
	// abstract and url; when false both render empty regardless of what
	// the record holds.
	IncludeAbstract bool
}

// Bind assembles the variable map for one record: every declared variable
// the record carries is copied over, permalink is always injected, and
// excerpt/paperurl follow the abstract toggle. The second return lists
// declared variables that stayed unresolved, for a non-fatal diagnostic;
// rendering proceeds either way.
func Bind(rec reference.Record, vars []string, opts BindOptions) (map[string]string, []string) {
	bound := make(map[string]string, len(vars)+len(injected))
	var unresolved []string

	for _, v := range vars {
		if injected[v] {
			continue
		}
		if val := rec[v]; val != "" {
			bound[v] = val
		} else {
			unresolved = append(unresolved, v)
		}
	}
	sort.Strings(unresolved)

	bound["permalink"] = rec[reference.FieldPermalink]
	if opts.IncludeAbstract {
		bound["excerpt"] = rec[reference.FieldAbstract]
		bound["paperurl"] = rec[reference.FieldURL]
	} else {
		bound["excerpt"] = ""
		bound["paperurl"] = ""
	}

	return bound, unresolved
}

// templateVars collects the top-level field names referenced anywhere in
// the template's parse trees.
func templateVars(t *template.Template) []string {
	seen := make(map[string]bool)
	for _, assoc := range t.Templates() {
		if assoc.Tree != nil {
			listVars(assoc.Tree.Root, seen)
		}
	}
	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}

func listVars(node parse.Node, seen map[string]bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			listVars(child, seen)
		}
	case *parse.ActionNode:
		pipeVars(n.Pipe, seen)
	case *parse.IfNode:
		branchVars(&n.BranchNode, seen)
	case *parse.RangeNode:
		branchVars(&n.BranchNode, seen)
	case *parse.WithNode:
		branchVars(&n.BranchNode, seen)
	case *parse.TemplateNode:
		pipeVars(n.Pipe, seen)
	}
}

func branchVars(n *parse.BranchNode, seen map[string]bool) {
	pipeVars(n.Pipe, seen)
	listVars(n.List, seen)
	listVars(n.ElseList, seen)
}

func pipeVars(pipe *parse.PipeNode, seen map[string]bool) {
	if pipe == nil {
		return
	}
	for _, cmd := range pipe.Cmds {
		for _, arg := range cmd.Args {
			switch a := arg.(type) {
			case *parse.FieldNode:
				if len(a.Ident) > 0 {
					seen[a.Ident[0]] = true
				}
			case *parse.PipeNode:
				pipeVars(a, seen)
			}
		}
	}
}
