package ris

import (
	"strings"
	"testing"
)

func TestParse_SingleEntry(t *testing.T) {
	input := strings.Join([]string{
		"TY  - JOUR",
		"TI  - An Example Paper",
		"AU  - Smith, John",
		"AU  - Doe, Jane",
		"T2  - Journal of Examples",
		"PY  - 2023",
		"VL  - 12",
		"IS  - 3",
		"SP  - 101",
		"DO  - 10.1/x",
		"ER  - ",
	}, "\n")

	entries, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}

	e := entries[0]
	if got, want := e.Field("type_of_reference"), "JOUR"; got != want {
		t.Errorf("type_of_reference = %q, want %q", got, want)
	}
	if got, want := e.Field("primary_title"), "An Example Paper"; got != want {
		t.Errorf("primary_title = %q, want %q", got, want)
	}
	if got, want := e.Field("secondary_title"), "Journal of Examples"; got != want {
		t.Errorf("secondary_title = %q, want %q", got, want)
	}
	if got, want := e.Field("year"), "2023"; got != want {
		t.Errorf("year = %q, want %q", got, want)
	}
	if got, want := e.Field("start_page"), "101"; got != want {
		t.Errorf("start_page = %q, want %q", got, want)
	}

	authors := e.Lists["authors"]
	if len(authors) != 2 || authors[0] != "Smith, John" || authors[1] != "Doe, Jane" {
		t.Errorf("authors = %v, want [Smith, John | Doe, Jane]", authors)
	}
}

func TestParse_MultipleEntries(t *testing.T) {
	input := "TY  - JOUR\nTI  - First\nER  -\n\nTY  - BOOK\nTI  - Second\nER  -\n"

	entries, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Parse() returned %d entries, want 2", len(entries))
	}
	if entries[0].Field("primary_title") != "First" || entries[1].Field("primary_title") != "Second" {
		t.Errorf("titles = %q, %q, want First, Second",
			entries[0].Field("primary_title"), entries[1].Field("primary_title"))
	}
}

func TestParse_MissingTerminator(t *testing.T) {
	// A TY before the previous ER flushes the unterminated entry, and a
	// final entry without ER is still kept.
	input := "TY  - JOUR\nTI  - First\nTY  - JOUR\nTI  - Second"

	entries, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Parse() returned %d entries, want 2", len(entries))
	}
}

func TestParse_ContinuationLines(t *testing.T) {
	input := strings.Join([]string{
		"TY  - JOUR",
		"AB  - First part of the abstract",
		"      continues on a second line",
		"AU  - Smith, John",
		"      Jr.",
		"ER  -",
	}, "\n")

	entries, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}

	e := entries[0]
	if got, want := e.Field("abstract"), "First part of the abstract continues on a second line"; got != want {
		t.Errorf("abstract = %q, want %q", got, want)
	}
	if got, want := e.Lists["authors"][0], "Smith, John Jr."; got != want {
		t.Errorf("author = %q, want %q", got, want)
	}
}

func TestParse_UnknownTagKeptRaw(t *testing.T) {
	input := "TY  - JOUR\nJF  - Journal of Raw Tags\nER  -\n"

	entries, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, want := entries[0].Field("JF"), "Journal of Raw Tags"; got != want {
		t.Errorf("JF = %q, want %q", got, want)
	}
}

func TestParse_CRLF(t *testing.T) {
	input := "TY  - JOUR\r\nTI  - Windows Export\r\nER  -\r\n"

	entries, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, want := entries[0].Field("primary_title"), "Windows Export"; got != want {
		t.Errorf("primary_title = %q, want %q", got, want)
	}
}

func TestSplitTagLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantTag string
		wantVal string
		wantOK  bool
	}{
		{"standard tag", "TY  - JOUR", "TY", "JOUR", true},
		{"terminator without value", "ER  -", "ER", "", true},
		{"terminator with trailing space", "ER  - ", "ER", "", true},
		{"digit tag", "A1  - Smith, J.", "A1", "Smith, J.", true},
		{"continuation line", "    more text", "", "", false},
		{"lowercase tag", "ty  - JOUR", "", "", false},
		{"missing spaces", "TY- JOUR", "", "", false},
		{"empty line", "", "", "", false},
		{"value containing hyphens", "UR  - https://doi.org/10.1/x", "UR", "https://doi.org/10.1/x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, val, ok := splitTagLine(tt.line)
			if tag != tt.wantTag || val != tt.wantVal || ok != tt.wantOK {
				t.Errorf("splitTagLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.line, tag, val, ok, tt.wantTag, tt.wantVal, tt.wantOK)
			}
		})
	}
}
