package ris

// tagNames maps single-valued RIS tags to the long field names the alias
// chains and the normalizer work with. Tags absent from this table and
// from listTags are kept under their raw two-letter form so alias chains
// can still reach short-tag synonyms like JF or J1.
var tagNames = map[string]string{
	"TY": "type_of_reference",
	"TI": "primary_title",
	"T1": "primary_title",
	"T2": "secondary_title",
	"T3": "tertiary_title",
	"ST": "short_title",
	"AB": "abstract",
	"N2": "notes_abstract",
	"N1": "notes",
	"PY": "year",
	"Y1": "publication_year",
	"DA": "date",
	"JO": "journal_name",
	"SP": "start_page",
	"EP": "end_page",
	"VL": "volume",
	"IS": "number",
	"SN": "issn",
	"DO": "doi",
	"UR": "url",
	"PB": "publisher",
	"CY": "place_published",
	"M3": "thesis_type",
	"ET": "edition",
	"LA": "language",
	"DB": "name_of_database",
	"ID": "id",
}

// listTags are the repeatable tags whose values accumulate per entry.
var listTags = map[string]string{
	"AU": "authors",
	"A1": "first_authors",
	"A2": "secondary_authors",
	"A3": "tertiary_authors",
	"A4": "subsidiary_authors",
	"KW": "keywords",
}
