package reference

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultYear stands in for a missing publication year wherever a date
	// or filename needs one.
	DefaultYear = "2022"

	// DefaultMonth is used when a record carries no usable month.
	DefaultMonth = "01"

	urlTemplateDOI    = "https://doi.org/%s"
	urlTemplateEPrint = "https://arxiv.org/abs/%s"
)

// monthNumbers maps three-letter English month prefixes to zero-padded
// numbers, covering both "Mar" and "March" style values.
var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// Derive fills the fields computed from other fields: paper_file_name,
// permalink, date, and a synthesized url when the source had none. Both
// format paths call it exactly once, after the canonical fields are
// populated, so derived values never depend on the input format.
func Derive(rec Record) {
	year := rec[FieldYear]
	if year == "" {
		year = DefaultYear
	}
	title := rec[FieldTitle]
	if title == "" {
		title = "Untitled"
	}

	name := year + "-" + strings.ReplaceAll(title, " ", "-") + ".md"
	rec[FieldPaperFileName] = name
	rec[FieldPermalink] = strings.TrimSuffix(name, ".md")
	rec[FieldDate] = year + "-" + NormalizeMonth(rec[FieldMonth]) + "-01"

	if rec[FieldURL] == "" {
		switch {
		case rec[FieldDOI] != "":
			rec[FieldURL] = fmt.Sprintf(urlTemplateDOI, rec[FieldDOI])
		case rec[FieldEPrint] != "":
			rec[FieldURL] = fmt.Sprintf(urlTemplateEPrint, rec[FieldEPrint])
		}
	}
}

// NormalizeMonth returns a two-digit month. Numeric values are range-checked
// and zero-padded, English month names are mapped by their first three
// letters, and anything else degrades to DefaultMonth.
func NormalizeMonth(month string) string {
	month = strings.TrimSpace(month)
	if month == "" {
		return DefaultMonth
	}
	if n, err := strconv.Atoi(month); err == nil {
		if n >= 1 && n <= 12 {
			return fmt.Sprintf("%02d", n)
		}
		return DefaultMonth
	}
	key := strings.ToLower(month)
	if len(key) > 3 {
		key = key[:3]
	}
	if m, ok := monthNumbers[key]; ok {
		return m
	}
	return DefaultMonth
}
