package bibtex

import (
	"reflect"
	"testing"
)

func TestParse_BasicEntry(t *testing.T) {
	src := `@article{smith2023,
  title = {An Example Paper},
  author = {Smith, John and Doe, Jane},
  journal = {Journal of Examples},
  year = {2023},
}`

	entries, errs := Parse([]byte(src))
	if len(errs) != 0 {
		t.Fatalf("Parse() errors = %v", errs)
	}
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.Key != "smith2023" {
		t.Errorf("Key = %q, want smith2023", e.Key)
	}
	if e.Type != "article" {
		t.Errorf("Type = %q, want article", e.Type)
	}
	if got, want := e.Fields["title"], "An Example Paper"; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}
	if got, want := e.Fields["journal"], "Journal of Examples"; got != want {
		t.Errorf("journal = %q, want %q", got, want)
	}

	// The author field moves into Persons.
	if _, ok := e.Fields["author"]; ok {
		t.Errorf("author should not remain in Fields, got %q", e.Fields["author"])
	}
	want := []string{"Smith, John", "Doe, Jane"}
	if !reflect.DeepEqual(e.Persons["author"], want) {
		t.Errorf("Persons[author] = %v, want %v", e.Persons["author"], want)
	}
}

func TestParse_QuotedAndBareValues(t *testing.T) {
	src := `@article{k, journal = "Nature", year = 2023, month = mar}`

	entries, errs := Parse([]byte(src))
	if len(errs) != 0 {
		t.Fatalf("Parse() errors = %v", errs)
	}

	e := entries[0]
	if got, want := e.Fields["journal"], "Nature"; got != want {
		t.Errorf("journal = %q, want %q", got, want)
	}
	if got, want := e.Fields["year"], "2023"; got != want {
		t.Errorf("year = %q, want %q", got, want)
	}
	if got, want := e.Fields["month"], "mar"; got != want {
		t.Errorf("month = %q, want %q", got, want)
	}
}

func TestParse_NestedBraces(t *testing.T) {
	src := `@article{k, title = {The {DNA} Story}}`

	entries, errs := Parse([]byte(src))
	if len(errs) != 0 {
		t.Fatalf("Parse() errors = %v", errs)
	}
	if got, want := entries[0].Fields["title"], "The {DNA} Story"; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}
}

func TestParse_MultilineValueCollapses(t *testing.T) {
	src := "@article{k,\n  abstract = {First line\n    second line\n    third},\n}"

	entries, errs := Parse([]byte(src))
	if len(errs) != 0 {
		t.Fatalf("Parse() errors = %v", errs)
	}
	if got, want := entries[0].Fields["abstract"], "First line second line third"; got != want {
		t.Errorf("abstract = %q, want %q", got, want)
	}
}

func TestParse_SkipsDirectives(t *testing.T) {
	src := `@comment{this is ignored}
@string{jx = {Journal of X}}
@preamble{"\newcommand{\x}{y}"}
@article{real, title = {Kept}}`

	entries, errs := Parse([]byte(src))
	if len(errs) != 0 {
		t.Fatalf("Parse() errors = %v", errs)
	}
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
	if entries[0].Key != "real" {
		t.Errorf("Key = %q, want real", entries[0].Key)
	}
}

func TestParse_MalformedEntryIsolated(t *testing.T) {
	src := `@article{broken, title = }
@article{good, title = {Still Parsed}}`

	entries, errs := Parse([]byte(src))
	if len(errs) == 0 {
		t.Errorf("Parse() expected an error for the malformed entry")
	}
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
	if entries[0].Key != "good" {
		t.Errorf("Key = %q, want good", entries[0].Key)
	}
}

func TestParse_ParenDelimiters(t *testing.T) {
	src := `@article(k, title = {Parens})`

	entries, errs := Parse([]byte(src))
	if len(errs) != 0 {
		t.Fatalf("Parse() errors = %v", errs)
	}
	if got, want := entries[0].Fields["title"], "Parens"; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}
}

func TestParse_Concatenation(t *testing.T) {
	src := `@article{k, title = "Hello" # "World"}`

	entries, errs := Parse([]byte(src))
	if len(errs) != 0 {
		t.Fatalf("Parse() errors = %v", errs)
	}
	if got, want := entries[0].Fields["title"], "Hello World"; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}
}

func TestParse_EntryWithoutFields(t *testing.T) {
	entries, errs := Parse([]byte(`@misc{lonely}`))
	if len(errs) != 0 {
		t.Fatalf("Parse() errors = %v", errs)
	}
	if len(entries) != 1 || entries[0].Key != "lonely" {
		t.Fatalf("Parse() = %v, want one entry keyed lonely", entries)
	}
}

func TestParse_IgnoresInterEntryText(t *testing.T) {
	src := `This line is commentary.
@article{k, title = {T}}
trailing prose`

	entries, errs := Parse([]byte(src))
	if len(errs) != 0 {
		t.Fatalf("Parse() errors = %v", errs)
	}
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
}

func TestSplitNames(t *testing.T) {
	tests := []struct {
		name string
		list string
		want []string
	}{
		{
			name: "two names",
			list: "Smith, John and Doe, Jane",
			want: []string{"Smith, John", "Doe, Jane"},
		},
		{
			name: "single name",
			list: "Smith, John",
			want: []string{"Smith, John"},
		},
		{
			name: "three plain names",
			list: "A Brown and B Jones and C White",
			want: []string{"A Brown", "B Jones", "C White"},
		},
		{
			name: "corporate name stays whole",
			list: "{Barnes and Noble} and Smith, John",
			want: []string{"{Barnes and Noble}", "Smith, John"},
		},
		{
			name: "uppercase AND",
			list: "A Brown AND B Jones",
			want: []string{"A Brown", "B Jones"},
		},
		{
			name: "empty",
			list: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitNames(tt.list)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitNames(%q) = %v, want %v", tt.list, got, tt.want)
			}
		})
	}
}
