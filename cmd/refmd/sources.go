package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/refkit/refmd/internal/bibtex"
	"github.com/refkit/refmd/internal/reference"
	"github.com/refkit/refmd/internal/ris"
)

// discoverSources resolves a path argument into the list of reference
// files to parse. A file path is returned as-is; a directory yields its
// .bib and .ris entries in name order, subdirectories excluded.
func discoverSources(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".bib" || ext == ".ris" {
			paths = append(paths, filepath.Join(path, entry.Name()))
		}
	}
	return paths, nil
}

// parseSource parses one reference file by extension into a normalized
// collection. Unrecognized extensions default to BibTeX.
func parseSource(path string, log zerolog.Logger) (reference.Collection, error) {
	if strings.EqualFold(filepath.Ext(path), ".ris") {
		entries, err := ris.ParseFile(path)
		if err != nil {
			return nil, err
		}
		return ris.Normalize(entries, log), nil
	}

	entries, errs := bibtex.ParseFile(path)
	for _, err := range errs {
		log.Warn().Err(err).Str("file", path).Msg("entry skipped")
	}
	return bibtex.Normalize(entries, log), nil
}

// loadCollection parses each file and merges the results in path order,
// so records from later files replace earlier ones on identifier clash.
// A file that cannot be parsed is logged and skipped, never fatal.
func loadCollection(paths []string, log zerolog.Logger) reference.Collection {
	cols := make([]reference.Collection, 0, len(paths))
	for _, path := range paths {
		col, err := parseSource(path, log)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("skipping unparseable file")
			continue
		}
		log.Debug().Str("file", path).Int("records", len(col)).Msg("parsed source")
		cols = append(cols, col)
	}
	return reference.Merge(cols...)
}

// isDirectory reports whether path exists and is a directory.
func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
