package collate

import "fmt"

// RuleSyntaxError reports malformed tailoring rule text. Offset is the
// rune offset into the source at which the defect was detected.
type RuleSyntaxError struct {
	Offset int
	Reason string
}

func (e *RuleSyntaxError) Error() string {
	return fmt.Sprintf("collate: rule syntax error at offset %d: %s", e.Offset, e.Reason)
}

// ParseTailoring parses tailoring rule text into its flat rule sequence.
// The grammar is the compact CLDR-style rule syntax:
//
//	[strength secondary]      settings as bracketed key/value pairs
//	&c                        reset: anchor the following relations at "c"
//	&[before 2]e              reset just before "e" at the given strength
//	<x  <<x  <<<x  <<<<x  =x  relation: primary through quaternary
//	                          difference, or equality, to the anchor
//	<*abx-z                   range relation: each character of the run
//	                          in turn, including "x-y" character spans
//	<ch/a                     extension: trailing elements folded in
//	<ch|prefix                relation active only after "prefix"
//	é \x 'literal <>'    escapes and quoted literals
//	# comment to end of line
//
// Relations chain: each target becomes the anchor for the next relation,
// so "&a<b<c" orders c after b after a. A relation with no preceding
// reset, an unbalanced bracket, an invalid before level, or an escape at
// end of input fails with a [RuleSyntaxError]. Parsing is purely
// syntactic; no table is consulted.
func ParseTailoring(src string) (*Tailoring, error) {
	p := &ruleParser{src: []rune(src)}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return &Tailoring{Settings: p.settings, Rules: p.rules}, nil
}

type ruleParser struct {
	src []rune
	pos int

	seenReset bool
	settings  []Setting
	rules     []Rule
}

func (p *ruleParser) errorf(offset int, format string, args ...any) error {
	return &RuleSyntaxError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func (p *ruleParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *ruleParser) peek() rune {
	if p.eof() {
		return -1
	}
	return p.src[p.pos]
}

// skipSpace consumes whitespace and "#" comments, which extend to the end
// of the line and contribute nothing.
func (p *ruleParser) skipSpace() {
	for !p.eof() {
		switch c := p.src[p.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			p.pos++
		case c == '#':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *ruleParser) parse() error {
	for {
		p.skipSpace()
		if p.eof() {
			return nil
		}
		switch c := p.peek(); c {
		case '[':
			if err := p.parseSetting(); err != nil {
				return err
			}
		case '&':
			if err := p.parseReset(); err != nil {
				return err
			}
		case '<', '=':
			if err := p.parseRelation(); err != nil {
				return err
			}
		default:
			return p.errorf(p.pos, "unexpected character %q", c)
		}
	}
}

// parseSetting reads a bracketed "[key value]" pair.
func (p *ruleParser) parseSetting() error {
	open := p.pos
	p.pos++ // '['
	p.skipSpace()
	key := p.parseIdentifier()
	if key == "" {
		return p.errorf(p.pos, "setting key expected after '['")
	}
	if key == "before" {
		return p.errorf(open, "[before] modifier is only valid after '&'")
	}
	p.skipSpace()
	var value []rune
	for !p.eof() && p.peek() != ']' && p.peek() != '\n' {
		value = append(value, p.src[p.pos])
		p.pos++
	}
	if p.peek() != ']' {
		return p.errorf(open, "unbalanced '[' in setting")
	}
	p.pos++ // ']'
	p.settings = append(p.settings, Setting{Key: key, Value: trimRight(value)})
	return nil
}

func (p *ruleParser) parseIdentifier() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' {
			p.pos++
			continue
		}
		break
	}
	return string(p.src[start:p.pos])
}

// parseReset reads "&", an optional "[before n]" modifier, and the reset
// point sequence.
func (p *ruleParser) parseReset() error {
	p.pos++ // '&'
	p.skipSpace()

	var before Level
	if p.peek() == '[' {
		open := p.pos
		p.pos++
		p.skipSpace()
		if p.parseIdentifier() != "before" {
			return p.errorf(open, "expected [before n] after '&'")
		}
		p.skipSpace()
		n := p.peek()
		if n < '1' || n > '3' {
			return p.errorf(p.pos, "before level must be 1, 2 or 3")
		}
		before = Level(n - '0')
		p.pos++
		p.skipSpace()
		if p.peek() != ']' {
			return p.errorf(open, "unbalanced '[' in [before] modifier")
		}
		p.pos++
		p.skipSpace()
	}

	seq, err := p.parseSequence()
	if err != nil {
		return err
	}
	if len(seq) == 0 {
		return p.errorf(p.pos, "reset needs a target sequence")
	}
	p.rules = append(p.rules, Rule{Kind: RuleReset, Before: before, Sequence: seq})
	p.seenReset = true
	return nil
}

// parseRelation reads one of "<", "<<", "<<<", "<<<<" or "=", an optional
// "*" range marker, and the target with its optional "|" prefix context
// and "/" extension.
func (p *ruleParser) parseRelation() error {
	opStart := p.pos
	var level Level
	if p.peek() == '=' {
		level = Identical
		p.pos++
	} else {
		for p.peek() == '<' {
			level++
			p.pos++
		}
		if level > Quaternary {
			return p.errorf(opStart, "relation strength deeper than '<<<<'")
		}
	}
	if !p.seenReset {
		return p.errorf(opStart, "relation with no preceding reset point")
	}

	if p.peek() == '*' {
		p.pos++
		return p.parseRangeRelation(level)
	}

	p.skipSpace()
	seq, err := p.parseSequence()
	if err != nil {
		return err
	}
	if len(seq) == 0 {
		return p.errorf(p.pos, "relation needs a target sequence")
	}
	rule := Rule{Kind: RuleRelation, Level: level, Sequence: seq}

	p.skipSpace()
	if p.peek() == '|' {
		p.pos++
		p.skipSpace()
		if rule.Prefix, err = p.parseSequence(); err != nil {
			return err
		}
		if len(rule.Prefix) == 0 {
			return p.errorf(p.pos, "'|' needs a prefix sequence")
		}
		p.skipSpace()
	}
	if p.peek() == '/' {
		p.pos++
		p.skipSpace()
		if rule.Extension, err = p.parseSequence(); err != nil {
			return err
		}
		if len(rule.Extension) == 0 {
			return p.errorf(p.pos, "'/' needs an extension sequence")
		}
	}
	p.rules = append(p.rules, rule)
	return nil
}

// parseRangeRelation reads the contiguous run following a starred
// operator: single characters and "x-y" spans, each assigned successively
// incrementing weights by the applier.
func (p *ruleParser) parseRangeRelation(level Level) error {
	p.skipSpace()
	var run []RunItem
	for {
		start := p.pos
		lo, ok, err := p.parseSequenceRune()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		item := RunItem{Lo: lo, Hi: lo}
		if p.peek() == '-' {
			p.pos++
			hi, ok, err := p.parseSequenceRune()
			if err != nil {
				return err
			}
			if !ok {
				return p.errorf(p.pos, "range needs a character after '-'")
			}
			if hi < lo {
				return p.errorf(start, "range end U+%04X before range start U+%04X", hi, lo)
			}
			item.Hi = hi
		}
		run = append(run, item)
	}
	if len(run) == 0 {
		return p.errorf(p.pos, "range relation needs a character run")
	}
	p.rules = append(p.rules, Rule{Kind: RuleRangeRelation, Level: level, Run: run})
	return nil
}

// parseSequence reads a maximal run of literal characters, escapes and
// quoted chunks. Whitespace and unescaped reserved symbols end the
// sequence; an empty result is the caller's error to report.
func (p *ruleParser) parseSequence() ([]rune, error) {
	var seq []rune
	for {
		r, ok, err := p.parseSequenceRune()
		if err != nil {
			return nil, err
		}
		if !ok {
			if p.peek() == '\'' {
				quoted, err := p.parseQuoted()
				if err != nil {
					return nil, err
				}
				seq = append(seq, quoted...)
				continue
			}
			return seq, nil
		}
		seq = append(seq, r)
	}
}

// parseSequenceRune reads one data character: a literal non-reserved
// character or a "\"-escape. ok is false when the next character is not
// sequence data.
func (p *ruleParser) parseSequenceRune() (r rune, ok bool, err error) {
	c := p.peek()
	switch {
	case c == '\\':
		r, err = p.parseEscape()
		return r, err == nil, err
	case c >= 0 && !reservedRune(c):
		p.pos++
		return c, true, nil
	}
	return 0, false, nil
}

// parseQuoted reads a single-quoted literal. Everything inside is data,
// apart from "\"-escapes.
func (p *ruleParser) parseQuoted() ([]rune, error) {
	open := p.pos
	p.pos++ // '\''
	var out []rune
	for {
		switch c := p.peek(); c {
		case -1:
			return nil, p.errorf(open, "unterminated quoted literal")
		case '\'':
			p.pos++
			if len(out) == 0 {
				return nil, p.errorf(open, "empty quoted literal")
			}
			return out, nil
		case '\\':
			r, err := p.parseEscape()
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		default:
			out = append(out, c)
			p.pos++
		}
	}
}

// parseEscape reads a "\"-escape: "\uXXXX", "\UXXXXXXXX", a C-style
// escape letter, or any other character taken literally.
func (p *ruleParser) parseEscape() (rune, error) {
	start := p.pos
	p.pos++ // '\\'
	if p.eof() {
		return 0, p.errorf(start, "escape at end of input")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'u':
		return p.parseHexEscape(start, 4)
	case 'U':
		return p.parseHexEscape(start, 8)
	case 'a':
		return '\a', nil
	case 'b':
		return '\b', nil
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'v':
		return '\v', nil
	case 'f':
		return '\f', nil
	case 'r':
		return '\r', nil
	case 'e':
		return '\x1b', nil
	default:
		// Any other escaped character, reserved symbols and whitespace
		// included, is data.
		return c, nil
	}
}

func (p *ruleParser) parseHexEscape(start, digits int) (rune, error) {
	var v rune
	for i := 0; i < digits; i++ {
		d := hexDigit(p.peek())
		if d < 0 {
			return 0, p.errorf(start, "escape needs %d hex digits", digits)
		}
		v = v<<4 | rune(d)
		p.pos++
	}
	if v > 0x10FFFF {
		return 0, p.errorf(start, "escape U+%X is not a code point", v)
	}
	return v, nil
}

func hexDigit(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// reservedRune reports whether c is part of the rule syntax rather than
// data: whitespace and the ASCII punctuation blocks.
func reservedRune(c rune) bool {
	switch {
	case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
		return true
	case c >= 0x21 && c <= 0x2F:
		return true
	case c >= 0x3A && c <= 0x40:
		return true
	case c >= 0x5B && c <= 0x60:
		return true
	case c >= 0x7B && c <= 0x7E:
		return true
	}
	return false
}

func trimRight(rs []rune) string {
	end := len(rs)
	for end > 0 && (rs[end-1] == ' ' || rs[end-1] == '\t') {
		end--
	}
	return string(rs[:end])
}
