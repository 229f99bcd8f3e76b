package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestConcatBib(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.bib", "@article{first,\n  title = {First},\n}\n")
	writeTestFile(t, dir, "b.bib", "@book{second,\n  title = {Second},\n}\n")
	writeTestFile(t, dir, "c.ris", sampleRIS)

	outFile := filepath.Join(dir, "all.bib")
	if err := ConcatBib(dir, outFile, zerolog.Nop()); err != nil {
		t.Fatalf("ConcatBib: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	got := string(data)

	want := "@article{first,\n  title = {First},\n}\n\n@book{second,\n  title = {Second},\n}\n"
	if got != want {
		t.Errorf("combined output = %q, want %q", got, want)
	}
	if strings.Contains(got, "An Example Paper") {
		t.Error("RIS content should not appear in .bib concatenation")
	}
}

func TestConcatRIS_AppendsMissingTerminator(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.ris", sampleRIS)
	writeTestFile(t, dir, "b.ris", "TY  - JOUR\nTI  - Truncated Entry\n")

	var buf bytes.Buffer
	log := zerolog.New(&buf)

	outFile := filepath.Join(dir, "all.ris")
	if err := ConcatRIS(dir, outFile, log); err != nil {
		t.Fatalf("ConcatRIS: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	got := string(data)

	if !strings.Contains(got, "TI  - Truncated Entry\nER  -") {
		t.Errorf("truncated entry should gain a terminator:\n%s", got)
	}
	if !strings.Contains(buf.String(), "appended missing RIS terminator") {
		t.Errorf("missing terminator should be logged, got %q", buf.String())
	}
}

func TestConcatRIS_SkipsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.ris", sampleRIS)
	writeTestFile(t, dir, "empty.ris", "   \n")

	outFile := filepath.Join(dir, "all.ris")
	if err := ConcatRIS(dir, outFile, zerolog.Nop()); err != nil {
		t.Fatalf("ConcatRIS: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if strings.Contains(string(data), "\n\n\n") {
		t.Errorf("empty source files should not leave gaps:\n%s", data)
	}
}

func TestConcatAllToBib(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "native.bib", "@misc{native,\n  title = {Native Entry},\n}\n")
	writeTestFile(t, dir, "converted.ris", sampleRIS)

	outFile := filepath.Join(dir, "out", "all.bib")
	if err := ConcatAllToBib(dir, outFile, zerolog.Nop()); err != nil {
		t.Fatalf("ConcatAllToBib: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	got := string(data)

	nativeIdx := strings.Index(got, "@misc{native,")
	convertedIdx := strings.Index(got, "@article{an_example_paper,")
	if nativeIdx < 0 {
		t.Fatalf("output missing native BibTeX entry:\n%s", got)
	}
	if convertedIdx < 0 {
		t.Fatalf("output missing converted RIS entry:\n%s", got)
	}
	if nativeIdx > convertedIdx {
		t.Errorf("native BibTeX should precede converted RIS:\n%s", got)
	}
}

func TestListByExt(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "b.ris", "x")
	writeTestFile(t, dir, "a.RIS", "x")
	writeTestFile(t, dir, "c.bib", "x")
	if err := os.Mkdir(filepath.Join(dir, "sub.ris"), 0755); err != nil {
		t.Fatal(err)
	}

	paths, err := listByExt(dir, ".ris")
	if err != nil {
		t.Fatalf("listByExt: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2: %v", len(paths), paths)
	}
	if filepath.Base(paths[0]) != "a.RIS" || filepath.Base(paths[1]) != "b.ris" {
		t.Errorf("paths should be name-ordered and case-insensitive: %v", paths)
	}
}
