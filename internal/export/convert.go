package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/refkit/refmd/internal/ris"
)

// ConvertFile parses one RIS file and renders its entries as BibTeX.
func ConvertFile(path string, log zerolog.Logger) (string, error) {
	entries, err := ris.ParseFile(path)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	col := ris.Normalize(entries, log)
	return ToBibTeXList(col), nil
}

// ConvertFolder converts every .ris file in folder and writes the combined
// BibTeX to outFile. Files that fail to parse are logged and skipped. The
// output file is written even when the folder holds no RIS files, so callers
// can rely on it existing afterwards.
func ConvertFolder(folder, outFile string, log zerolog.Logger) error {
	paths, err := listByExt(folder, ".ris")
	if err != nil {
		return fmt.Errorf("listing %s: %w", folder, err)
	}

	var parts []string
	for _, path := range paths {
		bib, err := ConvertFile(path, log)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("skipping unparseable RIS file")
			continue
		}
		if bib != "" {
			parts = append(parts, bib)
		}
		log.Debug().Str("file", path).Msg("converted RIS file")
	}

	content := strings.Join(parts, "\n\n")
	if content != "" {
		content += "\n"
	}

	if err := ensureParentDir(outFile); err != nil {
		return err
	}
	if err := os.WriteFile(outFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outFile, err)
	}
	log.Info().Str("output", outFile).Int("files", len(paths)).Msg("wrote converted BibTeX")
	return nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
