// Package bibtex parses BibTeX files and normalizes their entries into
// canonical records.
package bibtex

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one raw BibTeX entry: cite key, entry type tag, field map, and
// the person roles (author, editor) split out of the field map.
type Entry struct {
	Key     string
	Type    string
	Fields  map[string]string
	Persons map[string][]string
}

// personRoles are the fields holding name lists rather than plain values.
var personRoles = []string{"author", "editor"}

// ParseFile reads and parses one BibTeX file.
func ParseFile(path string) ([]Entry, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{fmt.Errorf("reading bib file: %w", err)}
	}
	return Parse(data)
}

// Parse scans BibTeX source and returns its entries. Text outside @ blocks
// is ignored, @comment/@preamble/@string blocks are skipped, and a
// malformed entry is reported and skipped while later entries still parse.
func Parse(data []byte) ([]Entry, []error) {
	p := &parser{src: string(data), line: 1}
	var entries []Entry
	var errs []error

	for p.seekEntry() {
		start := p.line
		entry, err := p.parseEntry()
		if err != nil {
			errs = append(errs, fmt.Errorf("entry starting at line %d: %w", start, err))
			continue
		}
		if entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries, errs
}

// SplitNames splits a BibTeX name list on the "and" keyword at brace depth
// zero, so corporate names like {Barnes and Noble} stay whole.
func SplitNames(list string) []string {
	var names []string
	var cur []string
	depth := 0
	for _, word := range strings.Fields(list) {
		if depth == 0 && strings.EqualFold(word, "and") {
			if len(cur) > 0 {
				names = append(names, strings.Join(cur, " "))
				cur = nil
			}
			continue
		}
		depth += strings.Count(word, "{") - strings.Count(word, "}")
		cur = append(cur, word)
	}
	if len(cur) > 0 {
		names = append(names, strings.Join(cur, " "))
	}
	return names
}

type parser struct {
	src  string
	pos  int
	line int
}

// seekEntry advances to the next @ and consumes it.
func (p *parser) seekEntry() bool {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '\n' {
			p.line++
		}
		p.pos++
		if c == '@' {
			return true
		}
	}
	return false
}

// parseEntry consumes one @type{key, ...} block. Directive blocks
// (@comment, @preamble, @string) are skipped and return a nil entry.
func (p *parser) parseEntry() (*Entry, error) {
	typ := p.readWord()
	if typ == "" {
		return nil, fmt.Errorf("missing entry type after @")
	}
	p.skipSpace()

	open := p.peek()
	if open != '{' && open != '(' {
		return nil, fmt.Errorf("expected { after @%s", typ)
	}
	closer := byte('}')
	if open == '(' {
		closer = ')'
	}
	p.pos++

	switch strings.ToLower(typ) {
	case "comment", "preamble", "string":
		return nil, p.skipBalanced(open, closer)
	}

	key, err := p.readKey(closer)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		Key:     key,
		Type:    strings.ToLower(typ),
		Fields:  make(map[string]string),
		Persons: make(map[string][]string),
	}

	for {
		p.skipSpace()
		switch c := p.peek(); {
		case c == 0:
			return nil, fmt.Errorf("unterminated entry %s", key)
		case c == closer:
			p.pos++
			extractPersons(entry)
			return entry, nil
		case c == ',':
			p.pos++
		default:
			name, value, err := p.parseField(closer)
			if err != nil {
				return nil, fmt.Errorf("entry %s: %w", key, err)
			}
			entry.Fields[strings.ToLower(name)] = value
		}
	}
}

// extractPersons moves name-list fields out of the field map, splitting
// them on the "and" keyword.
func extractPersons(entry *Entry) {
	for _, role := range personRoles {
		raw, ok := entry.Fields[role]
		if !ok {
			continue
		}
		delete(entry.Fields, role)
		if names := SplitNames(raw); len(names) > 0 {
			entry.Persons[role] = names
		}
	}
}

func (p *parser) readWord() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) readKey(closer byte) (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ',' || c == closer {
			key := strings.TrimSpace(p.src[start:p.pos])
			if c == ',' {
				p.pos++
			}
			if key == "" {
				return "", fmt.Errorf("empty cite key")
			}
			return key, nil
		}
		if c == '\n' {
			p.line++
		}
		p.pos++
	}
	return "", fmt.Errorf("unterminated cite key")
}

func (p *parser) parseField(closer byte) (name, value string, err error) {
	name = p.readFieldName(closer)
	if name == "" {
		return "", "", fmt.Errorf("expected field name at line %d", p.line)
	}
	p.skipSpace()
	if p.peek() != '=' {
		return "", "", fmt.Errorf("expected = after field %q at line %d", name, p.line)
	}
	p.pos++
	value, err = p.parseValue(closer)
	if err != nil {
		return "", "", fmt.Errorf("field %q: %w", name, err)
	}
	return name, value, nil
}

func (p *parser) readFieldName(closer byte) string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '=' || c == ',' || c == closer || isSpace(c) {
			break
		}
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos])
}

// parseValue reads one field value: a braced group, a quoted string, or a
// bare token, with # concatenation between parts.
func (p *parser) parseValue(closer byte) (string, error) {
	var parts []string
	for {
		p.skipSpace()
		var part string
		var err error
		switch p.peek() {
		case '{':
			part, err = p.readBraced()
		case '"':
			part, err = p.readQuoted()
		default:
			part = p.readBare(closer)
			if part == "" {
				err = fmt.Errorf("missing value at line %d", p.line)
			}
		}
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
		p.skipSpace()
		if p.peek() != '#' {
			break
		}
		p.pos++
	}
	return collapseSpace(strings.Join(parts, " ")), nil
}

// readBraced returns the content of a balanced brace group, outer braces
// stripped, nested braces kept.
func (p *parser) readBraced() (string, error) {
	p.pos++
	start := p.pos
	depth := 1
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				v := p.src[start:p.pos]
				p.pos++
				return v, nil
			}
		case '\n':
			p.line++
		}
		p.pos++
	}
	return "", fmt.Errorf("unterminated braced value at line %d", p.line)
}

func (p *parser) readQuoted() (string, error) {
	p.pos++
	start := p.pos
	depth := 0
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				v := p.src[start:p.pos]
				p.pos++
				return v, nil
			}
		case '\n':
			p.line++
		}
		p.pos++
	}
	return "", fmt.Errorf("unterminated quoted value at line %d", p.line)
}

func (p *parser) readBare(closer byte) string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ',' || c == closer || c == '#' || isSpace(c) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) skipBalanced(open, closer byte) error {
	depth := 1
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; c {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		case '\n':
			p.line++
		}
		p.pos++
	}
	return fmt.Errorf("unterminated directive block")
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if !isSpace(c) {
			return
		}
		if c == '\n' {
			p.line++
		}
		p.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// collapseSpace folds whitespace runs into single spaces so values that
// wrap across source lines read as one line.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
