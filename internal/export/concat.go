package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const risTerminator = "ER  -"

// ConcatBib joins every .bib file in folder into outFile, in name order,
// separated by blank lines.
func ConcatBib(folder, outFile string, log zerolog.Logger) error {
	return concatFiles(folder, ".bib", outFile, false, log)
}

// ConcatRIS joins every .ris file in folder into outFile. Entries missing
// their ER terminator get one appended so the combined file stays parseable.
func ConcatRIS(folder, outFile string, log zerolog.Logger) error {
	return concatFiles(folder, ".ris", outFile, true, log)
}

func concatFiles(folder, ext, outFile string, fixTerminator bool, log zerolog.Logger) error {
	paths, err := listByExt(folder, ext)
	if err != nil {
		return fmt.Errorf("listing %s: %w", folder, err)
	}

	var parts []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("skipping unreadable file")
			continue
		}
		content := strings.TrimSpace(string(data))
		if content == "" {
			continue
		}
		if fixTerminator && !strings.HasSuffix(content, risTerminator) {
			content += "\n" + risTerminator
			log.Warn().Str("file", path).Msg("appended missing RIS terminator")
		}
		parts = append(parts, content)
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
	log.Info().Str("output", outFile).Int("files", len(paths)).Msg("concatenated source files")
	return nil
}

// ConcatAllToBib combines a mixed folder into one BibTeX file: .bib files
// pass through verbatim, .ris files are converted first.
func ConcatAllToBib(folder, outFile string, log zerolog.Logger) error {
	bibPaths, err := listByExt(folder, ".bib")
	if err != nil {
		return fmt.Errorf("listing %s: %w", folder, err)
	}
	risPaths, err := listByExt(folder, ".ris")
	if err != nil {
		return fmt.Errorf("listing %s: %w", folder, err)
	}

	var parts []string
	for _, path := range bibPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("skipping unreadable file")
			continue
		}
		content := strings.TrimSpace(string(data))
		if content != "" {
			parts = append(parts, content)
		}
	}
	for _, path := range risPaths {
		bib, err := ConvertFile(path, log)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("skipping unparseable RIS file")
			continue
		}
		if bib != "" {
			parts = append(parts, bib)
		}
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
	log.Info().Str("output", outFile).Int("bib", len(bibPaths)).Int("ris", len(risPaths)).Msg("combined sources into BibTeX")
	return nil
}
