package bibtex

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/refkit/refmd/internal/reference"
)

// Normalize converts parsed BibTeX entries into canonical records keyed by
// cite key. Field names pass through reference.CanonicalKey, person roles
// flatten into authors_list in role order (authors before editors), and
// the entry type tag becomes the canonical type.
func Normalize(entries []Entry, log zerolog.Logger) reference.Collection {
	col := make(reference.Collection, len(entries))
	for _, e := range entries {
		rec := make(reference.Record, len(e.Fields)+4)
		for name, value := range e.Fields {
			rec[reference.CanonicalKey(name)] = value
		}
		rec[reference.FieldType] = strings.ToLower(e.Type)

		var names []string
		for _, role := range personRoles {
			names = append(names, e.Persons[role]...)
		}
		rec[reference.FieldAuthorsList] = reference.JoinAuthors(names)

		if rec[reference.FieldTitle] == "" {
			log.Warn().Str("key", e.Key).Msg("bib entry has no title")
		}

		reference.Derive(rec)
		col[e.Key] = rec
	}
	return col
}
