// Package reference defines the canonical record model that every input
// format is normalized into and that all downstream stages consume.
package reference

import "strings"

// Canonical field names. Records are open maps and normalizers may attach
// any key, but these are the names the pipeline derives from, renders with,
// and exports.
const (
	FieldType        = "type"
	FieldTitle       = "title"
	FieldAuthorsList = "authors_list"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldDate        = "date"
	FieldJournal     = "journal"
	FieldBookTitle   = "booktitle"
	FieldVolume      = "volume"
	FieldNumber      = "number"
	FieldPages       = "pages"
	FieldAbstract    = "abstract"
	FieldURL         = "url"
	FieldDOI         = "doi"
	FieldEPrint      = "eprint"
	FieldSchool      = "school"
	FieldAddress     = "address"
	FieldThesisType  = "thesis_type"

	// Derived by Derive.
	FieldPaperFileName = "paper_file_name"
	FieldPermalink     = "permalink"
)

// Record is one normalized bibliographic entry: a flat map from canonical
// field names to string values. An absent key and an empty value mean the
// same thing.
type Record map[string]string

// Collection maps record identifiers to records. The identifier is the
// BibTeX cite key for primary-format sources and the normalizer-assigned
// id for everything else.
type Collection map[string]Record

// Get returns the value for key, or "" when the key is absent.
func (r Record) Get(key string) string { return r[key] }

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CanonicalKey normalizes a source field name: trimmed, lower-cased,
// hyphens replaced with underscores.
func CanonicalKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}
