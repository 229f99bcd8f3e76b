package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Stub holds the metadata recovered from one PDF file.
type Stub struct {
	Path  string
	Title string
	DOI   string
}

// ScanFolder extracts stub metadata from every .pdf file in folder, in
// name order. Unreadable files are logged and skipped.
func ScanFolder(folder string, log zerolog.Logger) ([]Stub, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", folder, err)
	}

	var stubs []Stub
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(folder, e.Name())
		stub, err := scanFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("skipping unreadable PDF")
			continue
		}
		log.Debug().Str("file", path).Str("doi", stub.DOI).Msg("scanned PDF")
		stubs = append(stubs, stub)
	}
	return stubs, nil
}

func scanFile(path string) (Stub, error) {
	stub := Stub{Path: path}

	doi, err := ExtractDOI(path)
	if err != nil {
		return stub, err
	}
	stub.DOI = doi

	title, err := ExtractTitle(path)
	if err != nil {
		return stub, err
	}
	if title == "" {
		title = titleFromFilename(path)
	}
	stub.Title = title

	return stub, nil
}

// titleFromFilename falls back to the file name stem, underscores and
// hyphens read as spaces.
func titleFromFilename(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")
	return strings.Join(strings.Fields(stem), " ")
}

// StubRIS renders stubs as generic RIS entries, one per PDF, ready for
// the normalize pipeline. The L1 tag records which file each stub came
// from.
func StubRIS(stubs []Stub) string {
	var b strings.Builder
	for i, stub := range stubs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("TY  - GEN\n")
		if stub.Title != "" {
			fmt.Fprintf(&b, "TI  - %s\n", stub.Title)
		}
		if stub.DOI != "" {
			fmt.Fprintf(&b, "DO  - %s\n", stub.DOI)
			fmt.Fprintf(&b, "UR  - https://doi.org/%s\n", stub.DOI)
		}
		if stub.Path != "" {
			fmt.Fprintf(&b, "L1  - %s\n", stub.Path)
		}
		b.WriteString("ER  -\n")
	}
	return b.String()
}
