package ris

import "strings"

// Alias chains, in resolution order. Different export tools scatter the
// same concept across competing tags, so each canonical field resolves to
// the first chain key holding a non-empty value. Chains are data: adding
// a newly observed synonym means appending a key, not writing code.
var (
	titleAliases      = []string{"primary_title", "title", "TI"}
	journalAliases    = []string{"secondary_title", "journal_name", "journal", "JO", "JF", "J1"}
	yearAliases       = []string{"year", "publication_year", "date"}
	pagesAliases      = []string{"pages", "start_page"}
	numberAliases     = []string{"number", "issue"}
	abstractAliases   = []string{"abstract", "notes_abstract"}
	thesisTypeAliases = []string{"thesis_type", "type_of_work"}
)

// resolve returns the first non-empty value among keys, or fallback when
// the whole chain comes up empty.
func resolve(e Entry, keys []string, fallback string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(e.Fields[k]); v != "" {
			return v
		}
	}
	return fallback
}
