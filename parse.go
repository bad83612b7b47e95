package collate

import (
	"fmt"
	"strconv"
	"strings"
)

// TableFormatError reports a malformed row in a collation element table
// source. The table is discarded whole; no partial table is returned.
type TableFormatError struct {
	Line   int // 1-based line number of the offending row
	Reason string
}

func (e *TableFormatError) Error() string {
	return fmt.Sprintf("collate: table line %d: %s", e.Line, e.Reason)
}

// ParseTable parses a collation element table in the line-oriented format
// of the Default Unicode Collation Element Table (allkeys.txt):
//
//	0041  ; [.1CAD.0020.0008]                 # LATIN CAPITAL LETTER A
//	0063 0068 ; [.1CE0.0020.0002]             # contraction "ch"
//	0021  ; [*025E.0020.0002]                 # variable (punctuation)
//	@implicitweights 17000..18AFF; FB00
//
// Each significant line holds one or more space-separated hexadecimal code
// points, a semicolon, and one or more bracketed weight groups. A group
// opens with "." or, marking the element variable, "*", followed by three
// period-separated hexadecimal weights. Blank lines, "#" comments and
// "@version" lines are ignored. "@implicitweights" lines declare a
// code-point range whose weights derive from the given base primary.
//
// Loading is all-or-nothing: the first malformed line aborts with a
// [TableFormatError] and no table is returned.
func ParseTable(src string) (*Table, error) {
	table := NewTable()
	for i, line := range strings.Split(src, "\n") {
		lineno := i + 1
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "@") {
			if err := parseDirective(table, line, lineno); err != nil {
				return nil, err
			}
			continue
		}
		if err := parseRow(table, line, lineno); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// parseDirective handles "@"-lines. "@version" carries no table content.
func parseDirective(table *Table, line string, lineno int) error {
	if strings.HasPrefix(line, "@version") {
		return nil
	}
	if rest, ok := strings.CutPrefix(line, "@implicitweights"); ok {
		return parseImplicitWeights(table, rest, lineno)
	}
	return &TableFormatError{Line: lineno, Reason: fmt.Sprintf("unknown directive %q", line)}
}

// parseImplicitWeights parses the remainder of an "@implicitweights"
// line: a code-point range "XXXX..YYYY", a semicolon, and a base primary.
func parseImplicitWeights(table *Table, rest string, lineno int) error {
	if idx := strings.Index(rest, "#"); idx >= 0 {
		rest = rest[:idx]
	}
	span, base, ok := strings.Cut(rest, ";")
	if !ok {
		return &TableFormatError{Line: lineno, Reason: "implicit weights: missing base primary"}
	}
	loStr, hiStr, ok := strings.Cut(strings.TrimSpace(span), "..")
	if !ok {
		return &TableFormatError{Line: lineno, Reason: "implicit weights: malformed code point range"}
	}
	lo, err := parseCodePoint(loStr)
	if err != nil {
		return &TableFormatError{Line: lineno, Reason: fmt.Sprintf("implicit weights: %v", err)}
	}
	hi, err := parseCodePoint(hiStr)
	if err != nil {
		return &TableFormatError{Line: lineno, Reason: fmt.Sprintf("implicit weights: %v", err)}
	}
	if hi < lo {
		return &TableFormatError{Line: lineno, Reason: "implicit weights: range end before range start"}
	}
	b, err := parseWeight(strings.TrimSpace(base))
	if err != nil {
		return &TableFormatError{Line: lineno, Reason: fmt.Sprintf("implicit weights: %v", err)}
	}
	table.addImplicitRange(lo, hi, b)
	return nil
}

// parseRow parses one table row and inserts its mapping.
func parseRow(table *Table, line string, lineno int) error {
	points, weights, ok := strings.Cut(line, ";")
	if !ok {
		return &TableFormatError{Line: lineno, Reason: "missing ';' between code points and weights"}
	}

	var key []rune
	for _, field := range strings.Fields(points) {
		r, err := parseCodePoint(field)
		if err != nil {
			return &TableFormatError{Line: lineno, Reason: err.Error()}
		}
		key = append(key, r)
	}
	if len(key) == 0 {
		return &TableFormatError{Line: lineno, Reason: "empty code point sequence"}
	}

	// A '#' cannot occur inside a weight group, so everything from the
	// first one on is the row comment.
	if idx := strings.Index(weights, "#"); idx >= 0 {
		weights = weights[:idx]
	}
	elems, err := parseWeightGroups(strings.TrimSpace(weights), lineno)
	if err != nil {
		return err
	}
	table.Insert(key, elems)
	return nil
}

// parseWeightGroups parses a run of "[.pppp.ssss.tttt]" groups.
func parseWeightGroups(s string, lineno int) ([]Element, error) {
	var elems []Element
	for s != "" {
		if s[0] != '[' {
			return nil, &TableFormatError{Line: lineno, Reason: fmt.Sprintf("expected '[' at %q", s)}
		}
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, &TableFormatError{Line: lineno, Reason: "unterminated weight group"}
		}
		elem, err := parseWeightGroup(s[1:end])
		if err != nil {
			return nil, &TableFormatError{Line: lineno, Reason: err.Error()}
		}
		elems = append(elems, elem)
		s = strings.TrimSpace(s[end+1:])
	}
	if len(elems) == 0 {
		return nil, &TableFormatError{Line: lineno, Reason: "row has no weight groups"}
	}
	return elems, nil
}

// parseWeightGroup parses the contents of one bracketed group: a variable
// marker ("*") or non-variable marker ("."), then three period-separated
// hexadecimal weights.
func parseWeightGroup(s string) (Element, error) {
	if s == "" {
		return Element{}, fmt.Errorf("empty weight group")
	}
	var elem Element
	switch s[0] {
	case '*':
		elem.Variable = true
	case '.':
	default:
		return Element{}, fmt.Errorf("weight group must open with '.' or '*', got %q", s)
	}
	parts := strings.Split(s[1:], ".")
	if len(parts) != 3 {
		return Element{}, fmt.Errorf("weight group needs exactly 3 weights, got %d", len(parts))
	}
	var err error
	if elem.Primary, err = parseWeight(parts[0]); err != nil {
		return Element{}, err
	}
	if elem.Secondary, err = parseWeight(parts[1]); err != nil {
		return Element{}, err
	}
	if elem.Tertiary, err = parseWeight(parts[2]); err != nil {
		return Element{}, err
	}
	return elem, nil
}

func parseCodePoint(s string) (rune, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || v > 0x10FFFF {
		return 0, fmt.Errorf("invalid code point %q", s)
	}
	return rune(v), nil
}

func parseWeight(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid weight %q", s)
	}
	return uint16(v), nil
}
