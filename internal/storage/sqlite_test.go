package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/refkit/refmd/internal/reference"
)

func testCollection() reference.Collection {
	return reference.Collection{
		"smith_2023": {
			reference.FieldType:        "article",
			reference.FieldTitle:       "Machine Learning in Biology",
			reference.FieldAuthorsList: "John Smith, Jane Doe",
			reference.FieldYear:        "2023",
			reference.FieldJournal:     "Nature",
			reference.FieldAbstract:    "This paper discusses machine learning applications.",
			reference.FieldDOI:         "10.1234/smith",
			reference.FieldURL:         "https://doi.org/10.1234/smith",
		},
		"jones_2022": {
			reference.FieldType:        "inproceedings",
			reference.FieldTitle:       "Deep Learning for Protein Structure",
			reference.FieldAuthorsList: "Alice Jones",
			reference.FieldYear:        "2022",
			reference.FieldBookTitle:   "Proceedings of CompBio",
			reference.FieldAbstract:    "A study of deep learning methods for proteins.",
		},
		"brown_2021": {
			reference.FieldType:        "phdthesis",
			reference.FieldTitle:       "Statistical Methods in Genomics",
			reference.FieldAuthorsList: "Bob Brown",
			reference.FieldYear:        "2021",
			reference.FieldSchool:      "MIT",
		},
	}
}

// setupTestDB creates an indexed test database
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Rebuild(testCollection()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	return db
}

func TestOpen_CreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Open() did not create database file")
	}
}

func TestDB_Rebuild(t *testing.T) {
	db := setupTestDB(t)

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}

	// Rebuild replaces previous contents
	rebuilt, err := db.Rebuild(reference.Collection{
		"only_one": {
			reference.FieldType:  "misc",
			reference.FieldTitle: "New Paper",
		},
	})
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if rebuilt != 1 {
		t.Errorf("Rebuild() = %d, want 1", rebuilt)
	}

	count, _ = db.Count()
	if count != 1 {
		t.Errorf("after rebuild, Count() = %d, want 1", count)
	}
}

func TestDB_Rebuild_Empty(t *testing.T) {
	db := setupTestDB(t)

	count, err := db.Rebuild(reference.Collection{})
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Rebuild() = %d, want 0", count)
	}

	dbCount, _ := db.Count()
	if dbCount != 0 {
		t.Errorf("Count() = %d, want 0", dbCount)
	}
}

func TestDB_GetByID(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		id        string
		wantFound bool
		wantTitle string
	}{
		{"smith_2023", true, "Machine Learning in Biology"},
		{"jones_2022", true, "Deep Learning for Protein Structure"},
		{"not_there", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rec, err := db.GetByID(tt.id)
			if err != nil {
				t.Fatalf("GetByID() error = %v", err)
			}

			if tt.wantFound {
				if rec == nil {
					t.Fatal("GetByID() returned nil, want record")
				}
				if got := rec[reference.FieldTitle]; got != tt.wantTitle {
					t.Errorf("GetByID() title = %q, want %q", got, tt.wantTitle)
				}
			} else if rec != nil {
				t.Errorf("GetByID() returned %v, want nil", rec)
			}
		})
	}
}

func TestDB_GetByID_RoundTripsAllFields(t *testing.T) {
	db := setupTestDB(t)

	rec, err := db.GetByID("smith_2023")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if rec == nil {
		t.Fatal("GetByID() returned nil")
	}

	want := testCollection()["smith_2023"]
	if len(rec) != len(want) {
		t.Errorf("record has %d fields, want %d", len(rec), len(want))
	}
	for key, wantVal := range want {
		if got := rec[key]; got != wantVal {
			t.Errorf("field %s = %q, want %q", key, got, wantVal)
		}
	}
}

func TestDB_Search(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		query   string
		limit   int
		wantIDs []string
		wantMin int
	}{
		// Title search
		{"machine learning", 10, []string{"smith_2023"}, 1},
		{"statistical", 10, []string{"brown_2021"}, 1},

		// Abstract search
		{"protein", 10, []string{"jones_2022"}, 1},

		// Author search
		{"Smith", 10, []string{"smith_2023"}, 1},

		// Year search
		{"2022", 10, []string{"jones_2022"}, 1},

		// Combined terms
		{"Smith 2023", 10, []string{"smith_2023"}, 1},

		// No results
		{"nonexistent query xyz", 10, nil, 0},

		// Limit
		{"learning", 1, nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := db.Search(tt.query, tt.limit)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}

			if len(results) < tt.wantMin {
				t.Errorf("Search(%q) returned %d results, want at least %d", tt.query, len(results), tt.wantMin)
			}
			if tt.limit == 1 && len(results) > 1 {
				t.Errorf("Search(%q) returned %d results, limit was 1", tt.query, len(results))
			}

			for _, wantID := range tt.wantIDs {
				found := false
				for _, res := range results {
					if res.ID == wantID {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Search(%q) missing expected ID %q", tt.query, wantID)
				}
			}
		})
	}
}

func TestDB_SearchField(t *testing.T) {
	db := setupTestDB(t)

	results, err := db.SearchField("author", "Smith", 10)
	if err != nil {
		t.Fatalf("SearchField(author) error = %v", err)
	}
	if len(results) != 1 || results[0].ID != "smith_2023" {
		t.Errorf("SearchField(author, Smith) = %v, want [smith_2023]", results)
	}

	results, err = db.SearchField("title", "Statistical", 10)
	if err != nil {
		t.Fatalf("SearchField(title) error = %v", err)
	}
	if len(results) != 1 || results[0].ID != "brown_2021" {
		t.Errorf("SearchField(title, Statistical) = %v, want [brown_2021]", results)
	}

	// Title terms should not leak into author scope
	results, err = db.SearchField("author", "Statistical", 10)
	if err != nil {
		t.Fatalf("SearchField(author) error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("SearchField(author, Statistical) = %v, want none", results)
	}

	if _, err := db.SearchField("invalid", "test", 10); err == nil {
		t.Error("SearchField(invalid) should return error")
	}
}

func TestDB_ListAll(t *testing.T) {
	db := setupTestDB(t)

	results, err := db.ListAll(0)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("ListAll(0) returned %d records, want 3", len(results))
	}

	// Identifier order
	wantOrder := []string{"brown_2021", "jones_2022", "smith_2023"}
	for i, want := range wantOrder {
		if results[i].ID != want {
			t.Errorf("ListAll()[%d].ID = %q, want %q", i, results[i].ID, want)
		}
	}

	results, err = db.ListAll(2)
	if err != nil {
		t.Fatalf("ListAll(2) error = %v", err)
	}
	if len(results) != 2 {
		t.Errorf("ListAll(2) returned %d records, want 2", len(results))
	}
}

func TestDB_Close(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if _, err := db.Count(); err == nil {
		t.Error("operations after Close() should fail")
	}
}

func TestPrepareFTSQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", "simple"},
		{"two words", "two words"},
		{"  spaces  ", "spaces"},
		{"", ""},
		{`with "quotes"`, `"with ""quotes"""`},
		{"special*chars", `"special*chars"`},
		{"term:colon", `"term:colon"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := prepareFTSQuery(tt.input)
			if got != tt.want {
				t.Errorf("prepareFTSQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
