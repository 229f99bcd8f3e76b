package ris

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/refkit/refmd/internal/reference"
)

// slugMax bounds title-derived identifiers.
const slugMax = 50

// Normalize converts parsed RIS entries into canonical records. Entry
// identifiers come from an explicit ID tag when present, then a slug of
// the title, then a positional fallback; identifiers are kept unique
// within this batch by numeric suffixing. A malformed entry is logged and
// normalized with defaults rather than aborting the batch.
func Normalize(entries []Entry, log zerolog.Logger) reference.Collection {
	col := make(reference.Collection, len(entries))
	for _, e := range entries {
		rec := normalizeEntry(e)
		id := uniqueID(col, entryID(e, len(col)))
		if rec[reference.FieldTitle] == "" {
			log.Warn().Str("id", id).Msg("RIS entry has no title")
		}
		col[id] = rec
	}
	return col
}

func normalizeEntry(e Entry) reference.Record {
	rec := make(reference.Record)

	rec[reference.FieldTitle] = resolve(e, titleAliases, "")

	risType := strings.ToUpper(strings.TrimSpace(e.Field("type_of_reference")))
	thesisType := resolve(e, thesisTypeAliases, "")
	rec[reference.FieldType] = MapType(risType, thesisType)

	rec[reference.FieldJournal] = resolve(e, journalAliases, "")
	rec[reference.FieldBookTitle] = strings.TrimSpace(e.Field("secondary_title"))

	year, month := publicationDate(e)
	rec[reference.FieldYear] = year
	rec[reference.FieldMonth] = reference.NormalizeMonth(month)

	rec[reference.FieldVolume] = strings.TrimSpace(e.Field("volume"))
	rec[reference.FieldNumber] = resolve(e, numberAliases, "")
	rec[reference.FieldPages] = resolve(e, pagesAliases, "")
	rec[reference.FieldAbstract] = resolve(e, abstractAliases, "")
	rec[reference.FieldURL] = strings.TrimSpace(e.Field("url"))
	rec[reference.FieldDOI] = strings.TrimSpace(e.Field("doi"))

	if risType == "THES" {
		rec[reference.FieldSchool] = strings.TrimSpace(e.Field("publisher"))
		rec[reference.FieldAddress] = strings.TrimSpace(e.Field("place_published"))
		rec[reference.FieldThesisType] = thesisType
	}

	rec[reference.FieldAuthorsList] = reference.JoinAuthors(authorNames(e))

	reference.Derive(rec)
	return rec
}

// entryID picks the record identifier: the explicit ID tag, else a slug
// of the title, else a positional fallback built from the running count.
func entryID(e Entry, n int) string {
	if id := strings.TrimSpace(e.Field("id")); id != "" {
		return id
	}
	if title := resolve(e, titleAliases, ""); title != "" {
		return reference.Slug(title, slugMax)
	}
	return fmt.Sprintf("ris_entry_%d", n)
}

// uniqueID suffixes id with -2, -3, ... while col already claims it.
// Collisions across files remain last-write-wins at merge time.
func uniqueID(col reference.Collection, id string) string {
	if _, taken := col[id]; !taken {
		return id
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", id, i)
		if _, taken := col[candidate]; !taken {
			return candidate
		}
	}
}

// authorNames prefers the AU list and falls back to A1.
func authorNames(e Entry) []string {
	if names := e.Lists["authors"]; len(names) > 0 {
		return names
	}
	return e.Lists["first_authors"]
}

// publicationDate resolves year and month. RIS carries dates either as a
// plain year (PY) or as slash-separated YYYY/MM/DD values (Y1, DA); the
// slashed forms contribute a month when present.
func publicationDate(e Entry) (year, month string) {
	raw := resolve(e, yearAliases, "")
	parts := strings.Split(raw, "/")
	year = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		month = strings.TrimSpace(parts[1])
	}
	return year, month
}
