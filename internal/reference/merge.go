package reference

import (
	"sort"
	"strconv"
	"strings"
)

// Merge folds collections into one, in argument order. A repeated
// identifier replaces the whole earlier record; fields are never combined
// across sources. Callers control precedence by ordering the arguments.
func Merge(cols ...Collection) Collection {
	merged := make(Collection)
	for _, col := range cols {
		for id, rec := range col {
			merged[id] = rec
		}
	}
	return merged
}

// SortedIDs returns the collection's identifiers in lexical order, for
// deterministic iteration.
func SortedIDs(col Collection) []string {
	ids := make([]string, 0, len(col))
	for id := range col {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IDsByYearDesc returns the collection's identifiers ordered newest
// first. Years compare numerically, records without a parseable year
// sort last, and ties keep identifier order.
func IDsByYearDesc(col Collection) []string {
	ids := SortedIDs(col)
	sort.SliceStable(ids, func(i, j int) bool {
		return yearOf(col[ids[i]]) > yearOf(col[ids[j]])
	})
	return ids
}

// ByYearDesc returns the records ordered newest first, for templates
// that range over records directly.
func ByYearDesc(col Collection) []Record {
	ids := IDsByYearDesc(col)
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, col[id])
	}
	return out
}

func yearOf(rec Record) int {
	n, err := strconv.Atoi(strings.TrimSpace(rec[FieldYear]))
	if err != nil {
		return 0
	}
	return n
}
