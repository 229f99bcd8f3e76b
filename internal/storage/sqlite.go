// Package storage provides an ephemeral SQLite index over canonical
// records. The .bib and .ris source files remain the source of truth;
// the database is rebuilt from them and can be deleted at any time.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/refkit/refmd/internal/reference"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Result pairs a canonical record with its collection identifier.
type Result struct {
	ID     string           `json:"id"`
	Record reference.Record `json:"record"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		-- Promoted columns serve filters and ordering; fields_json holds
		-- the complete record, open-ended fields included.
		CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			entry_type TEXT NOT NULL,
			title TEXT,
			authors TEXT,
			year TEXT,
			journal TEXT,
			url TEXT,
			pub_date TEXT,
			file_name TEXT,
			permalink TEXT,
			abstract TEXT,
			fields_json TEXT NOT NULL
		);

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
			id,
			title,
			abstract,
			authors,
			year
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the database and reindexes every record in the
// collection. Returns the number of records indexed.
func (d *DB) Rebuild(col reference.Collection) (int, error) {
	if _, err := d.db.Exec("DELETE FROM records"); err != nil {
		return 0, fmt.Errorf("clearing records table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM records_fts"); err != nil {
		return 0, fmt.Errorf("clearing records_fts table: %w", err)
	}

	recordStmt, err := d.db.Prepare(`
		INSERT INTO records (
			id, entry_type, title, authors, year, journal,
			url, pub_date, file_name, permalink, abstract, fields_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing records insert: %w", err)
	}
	defer recordStmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO records_fts (id, title, abstract, authors, year)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, id := range reference.SortedIDs(col) {
		rec := col[id]
		fieldsJSON, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("marshaling fields for %s: %w", id, err)
		}

		entryType := rec[reference.FieldType]
		if entryType == "" {
			entryType = "misc"
		}

		_, err = recordStmt.Exec(
			id, entryType,
			nullableString(rec[reference.FieldTitle]),
			nullableString(rec[reference.FieldAuthorsList]),
			nullableString(rec[reference.FieldYear]),
			nullableString(rec[reference.FieldJournal]),
			nullableString(rec[reference.FieldURL]),
			nullableString(rec[reference.FieldDate]),
			nullableString(rec[reference.FieldPaperFileName]),
			nullableString(rec[reference.FieldPermalink]),
			nullableString(rec[reference.FieldAbstract]),
			string(fieldsJSON),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting record %s: %w", id, err)
		}

		_, err = ftsStmt.Exec(
			id,
			rec[reference.FieldTitle],
			rec[reference.FieldAbstract],
			rec[reference.FieldAuthorsList],
			rec[reference.FieldYear],
		)
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", id, err)
		}
	}

	return len(col), nil
}

// GetByID retrieves a record by its identifier. Returns nil when the
// record does not exist.
func (d *DB) GetByID(id string) (reference.Record, error) {
	row := d.db.QueryRow(`SELECT id, fields_json FROM records WHERE id = ?`, id)
	res, err := scanResult(row)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	return res.Record, nil
}

// Search performs a full-text search across titles, abstracts, authors,
// and years.
func (d *DB) Search(query string, limit int) ([]Result, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := d.db.Query(`
		SELECT id, fields_json
		FROM records
		WHERE id IN (SELECT id FROM records_fts WHERE records_fts MATCH ?)
		ORDER BY id
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// SearchField performs a full-text search scoped to a single field.
func (d *DB) SearchField(field, value string, limit int) ([]Result, error) {
	var ftsQuery string

	switch field {
	case "author":
		ftsQuery = "authors:" + prepareFTSQuery(value)
	case "title":
		ftsQuery = "title:" + prepareFTSQuery(value)
	default:
		return nil, fmt.Errorf("unknown search field: %s", field)
	}

	rows, err := d.db.Query(`
		SELECT id, fields_json
		FROM records
		WHERE id IN (SELECT id FROM records_fts WHERE records_fts MATCH ?)
		ORDER BY id
		LIMIT ?
	`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", field, err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// ListAll returns all records in identifier order, optionally limited.
func (d *DB) ListAll(limit int) ([]Result, error) {
	query := `SELECT id, fields_json FROM records ORDER BY id`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// Count returns the total number of indexed records.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanResult(s scanner) (*Result, error) {
	var res Result
	var fieldsJSON string

	err := s.Scan(&res.ID, &fieldsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(fieldsJSON), &res.Record); err != nil {
		return nil, fmt.Errorf("parsing fields JSON for %s: %w", res.ID, err)
	}

	return &res, nil
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		if res != nil {
			results = append(results, *res)
		}
	}
	return results, rows.Err()
}

// nullableString converts a string to sql.NullString, treating empty as NULL.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// FTS5 uses double quotes for phrase matching; quote the whole query
	// when it carries syntax characters
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
