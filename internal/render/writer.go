package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/refkit/refmd/internal/reference"
)

// Writer renders records through a page template into one markdown file
// per record.
type Writer struct {
	OutDir string
	Opts   BindOptions
}

// Stats reports what a WriteAll pass did.
type Stats struct {
	Written int `json:"written"`
	Failed  int `json:"failed"`
}

// WriteAll renders every record in the collection, in identifier order.
// The output directory is created once up front. A failure on one record
// is logged and counted while the remaining records still render; the
// only error returned is an unusable output directory. Distinct records
// mapping to the same filename are logged and the later write wins.
func (w Writer) WriteAll(col reference.Collection, tmpl *Template, log zerolog.Logger) (Stats, error) {
	if err := os.MkdirAll(w.OutDir, 0755); err != nil {
		return Stats{}, fmt.Errorf("creating output folder: %w", err)
	}

	var stats Stats
	claimed := make(map[string]string, len(col)) // filename -> record id
	for _, id := range reference.SortedIDs(col) {
		rec := col[id]
		name := rec[reference.FieldPaperFileName]
		if prev, dup := claimed[name]; dup {
			log.Warn().Str("file", name).Str("id", id).Str("previous", prev).
				Msg("filename collision, later record wins")
		}
		claimed[name] = id

		bound, unresolved := Bind(rec, tmpl.Vars, w.Opts)
		if len(unresolved) > 0 {
			log.Warn().Str("id", id).Strs("variables", unresolved).
				Msg("template variables not defined for record")
		}

		if err := writeOne(filepath.Join(w.OutDir, name), tmpl, bound); err != nil {
			log.Error().Err(err).Str("id", id).Msg("writing markdown file")
			stats.Failed++
			continue
		}
		log.Debug().Str("file", name).Msg("markdown file written")
		stats.Written++
	}
	return stats, nil
}

// writeOne renders into memory first so a render failure leaves no
// partial file behind.
func writeOne(path string, tmpl *Template, vars map[string]string) error {
	var buf bytes.Buffer
	if err := tmpl.Render(&buf, vars); err != nil {
		return fmt.Errorf("rendering template: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
