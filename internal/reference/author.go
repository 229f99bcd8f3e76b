package reference

import "strings"

// FormatAuthorName rewrites "Last, First" as "First Last". Only the first
// comma splits, so "van Dyke, Mary Ann" becomes "Mary Ann van Dyke"; names
// without a comma pass through unchanged.
//
// Known limitations:
//   - Suffixes written after a second comma ("Smith, John, Jr.") stay
//     attached to the given names
//   - Non-Western name orders are not detected
func FormatAuthorName(name string) string {
	name = strings.TrimSpace(name)
	parts := strings.SplitN(name, ",", 2)
	if len(parts) < 2 {
		return name
	}
	last := strings.TrimSpace(parts[0])
	first := strings.TrimSpace(parts[1])
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}

// JoinAuthors builds the authors_list value: each name reordered by
// FormatAuthorName, joined with ", ".
func JoinAuthors(names []string) string {
	formatted := make([]string, 0, len(names))
	for _, n := range names {
		if f := FormatAuthorName(n); f != "" {
			formatted = append(formatted, f)
		}
	}
	return strings.Join(formatted, ", ")
}

// Slug derives a fallback identifier from a title: lower-cased, spaces to
// underscores, truncated to max runes. Returns "" for an empty title.
func Slug(title string, max int) string {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "_")
	if max > 0 {
		if r := []rune(s); len(r) > max {
			s = string(r[:max])
		}
	}
	return s
}
