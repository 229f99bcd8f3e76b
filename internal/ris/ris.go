// Package ris parses RIS reference files and normalizes their entries
// into canonical records.
package ris

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxLineCapacity is the scanner buffer limit for a single RIS line (1MB).
// Abstracts are occasionally exported as one very long line.
const MaxLineCapacity = 1024 * 1024

const (
	tagType = "TY"
	tagEnd  = "ER"
)

// Entry is one raw RIS entry. Fields holds single-valued tags keyed by
// their long names (tags outside the table keep the raw two-letter form);
// repeatable tags such as AU accumulate in Lists.
type Entry struct {
	Fields map[string]string
	Lists  map[string][]string
}

func newEntry() *Entry {
	return &Entry{
		Fields: make(map[string]string),
		Lists:  make(map[string][]string),
	}
}

// Field returns the value stored under the long name key, or "".
func (e Entry) Field(key string) string { return e.Fields[key] }

// ParseFile reads and parses one RIS file.
func ParseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening RIS file: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

// Parse reads RIS entries from r. An entry opens at its TY tag and closes
// at ER; a TY met before the previous ER flushes the unterminated entry,
// and a final entry missing its ER is kept, so truncated exports still
// parse. Lines that are not tag lines continue the preceding value.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, MaxLineCapacity)
	scanner.Buffer(buf, MaxLineCapacity)

	var (
		entries  []Entry
		cur      *Entry
		lastKey  string // Fields key receiving continuation lines
		lastList string // Lists key when the previous tag was repeatable
	)

	flush := func() {
		if cur != nil && (len(cur.Fields) > 0 || len(cur.Lists) > 0) {
			entries = append(entries, *cur)
		}
		cur = nil
		lastKey, lastList = "", ""
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		tag, value, ok := splitTagLine(line)
		if !ok {
			// Continuation of the previous tag's value.
			text := strings.TrimSpace(line)
			if text == "" || cur == nil {
				continue
			}
			switch {
			case lastList != "":
				vals := cur.Lists[lastList]
				vals[len(vals)-1] += " " + text
			case lastKey != "":
				cur.Fields[lastKey] += " " + text
			}
			continue
		}

		if tag == tagEnd {
			flush()
			continue
		}
		if tag == tagType && cur != nil {
			flush()
		}
		if cur == nil {
			cur = newEntry()
		}

		if name, repeatable := listTags[tag]; repeatable {
			cur.Lists[name] = append(cur.Lists[name], value)
			lastList, lastKey = name, ""
			continue
		}
		name, known := tagNames[tag]
		if !known {
			name = tag
		}
		cur.Fields[name] = value
		lastKey, lastList = name, ""
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading RIS data: %w", err)
	}
	flush()

	return entries, nil
}

// splitTagLine splits "XX  - value" into tag and value. The terminator
// line "ER  -" carries no trailing space, so the value part is optional.
func splitTagLine(line string) (tag, value string, ok bool) {
	if len(line) < 5 || line[2] != ' ' || line[3] != ' ' || line[4] != '-' {
		return "", "", false
	}
	if len(line) > 5 && line[5] != ' ' {
		return "", "", false
	}
	t := line[:2]
	if !isTagByte(t[0]) || !isTagByte(t[1]) {
		return "", "", false
	}
	if len(line) > 6 {
		value = strings.TrimSpace(line[6:])
	}
	return t, value, true
}

func isTagByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
