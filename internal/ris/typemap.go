package ris

import "strings"

// entryTypes maps RIS reference type codes to BibTeX entry types. THES is
// handled separately because it splits on the thesis type text; codes
// outside the table map to misc.
var entryTypes = map[string]string{
	"JOUR": "article",
	"BOOK": "book",
	"CHAP": "inbook",
	"CONF": "inproceedings",
	"RPRT": "techreport",
}

// doctoralKeywords mark a thesis type as doctoral.
var doctoralKeywords = []string{"phd", "doct", "dissertation"}

// MapType translates a RIS type code into a canonical BibTeX entry type.
// THES entries become phdthesis when the free-text thesis type contains a
// doctoral keyword or carries no signal at all, and mastersthesis when it
// names something else.
func MapType(code, thesisType string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "THES" {
		return thesisEntryType(thesisType)
	}
	if t, ok := entryTypes[code]; ok {
		return t
	}
	return "misc"
}

func thesisEntryType(thesisType string) string {
	t := strings.ToLower(strings.TrimSpace(thesisType))
	if t == "" {
		return "phdthesis"
	}
	for _, kw := range doctoralKeywords {
		if strings.Contains(t, kw) {
			return "phdthesis"
		}
	}
	return "mastersthesis"
}
