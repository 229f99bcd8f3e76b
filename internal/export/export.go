// Package export converts canonical records back into BibTeX corpus files
// and concatenates source corpora.
package export

import (
	"fmt"
	"strings"

	"github.com/refkit/refmd/internal/reference"
)

// ToBibTeX renders one canonical record as a BibTeX entry. The canonical
// type picks the block header, fields follow a fixed order, and values are
// quoted literally: records normalized from LaTeX-bearing sources keep
// their markup untouched.
func ToBibTeX(id string, rec reference.Record) string {
	entryType := rec[reference.FieldType]
	if entryType == "" {
		entryType = "misc"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", entryType, id)

	writeField(&b, "title", rec[reference.FieldTitle])
	writeField(&b, "author", rec[reference.FieldAuthorsList])
	if entryType == "article" {
		writeField(&b, "journal", rec[reference.FieldJournal])
	}
	if entryType == "inbook" || entryType == "inproceedings" {
		writeField(&b, "booktitle", rec[reference.FieldBookTitle])
	}
	writeField(&b, "year", rec[reference.FieldYear])
	writeField(&b, "volume", rec[reference.FieldVolume])
	writeField(&b, "number", rec[reference.FieldNumber])
	writeField(&b, "pages", rec[reference.FieldPages])
	writeField(&b, "url", rec[reference.FieldURL])
	writeField(&b, "doi", rec[reference.FieldDOI])
	writeField(&b, "abstract", rec[reference.FieldAbstract])

	if isThesis(entryType) {
		writeField(&b, "school", rec[reference.FieldSchool])
		writeField(&b, "address", rec[reference.FieldAddress])
		if entryType == "phdthesis" {
			writeField(&b, "type", "PhD Thesis")
		} else {
			writeField(&b, "type", "Master's Thesis")
		}
	}

	b.WriteString("}")
	return b.String()
}

// ToBibTeXList renders a collection in identifier order, entries separated
// by a blank line. An empty collection yields an empty string.
func ToBibTeXList(col reference.Collection) string {
	entries := make([]string, 0, len(col))
	for _, id := range reference.SortedIDs(col) {
		entries = append(entries, ToBibTeX(id, col[id]))
	}
	return strings.Join(entries, "\n\n")
}

func writeField(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "  %s = {%s},\n", name, value)
}

func isThesis(entryType string) bool {
	return entryType == "phdthesis" || entryType == "mastersthesis"
}
