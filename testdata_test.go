package collate

import "testing"

// testAllkeys is a miniature table in the allkeys format covering the
// fixtures the tests need: cased letters with DUCET-style weight
// conventions, a combining mark, a precomposed letter, variable
// punctuation, a contraction and an implicit-weight range.
const testAllkeys = `
# miniature collation element table
@version 15.0.0

0020  ; [*0100.0020.0002] # SPACE
002D  ; [*0200.0020.0002] # HYPHEN-MINUS
0061  ; [.1000.0020.0002] # LATIN SMALL LETTER A
0041  ; [.1000.0020.0008] # LATIN CAPITAL LETTER A
0062  ; [.1100.0020.0002] # LATIN SMALL LETTER B
0042  ; [.1100.0020.0008] # LATIN CAPITAL LETTER B
0063  ; [.1200.0020.0002] # LATIN SMALL LETTER C
0043  ; [.1200.0020.0008] # LATIN CAPITAL LETTER C
0064  ; [.1300.0020.0002] # LATIN SMALL LETTER D
0065  ; [.1400.0020.0002] # LATIN SMALL LETTER E
0068  ; [.1500.0020.0002] # LATIN SMALL LETTER H
0301  ; [.0000.0024.0002] # COMBINING ACUTE ACCENT
00E1  ; [.1000.0021.0002] # LATIN SMALL LETTER A WITH ACUTE
0063 0068 ; [.1250.0020.0002] # contraction "ch"
@implicitweights 17000..18AFF; FB00
`

// mustTable parses testAllkeys, failing the test on any format error.
func mustTable(t *testing.T) *Table {
	t.Helper()
	table, err := ParseTable(testAllkeys)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	return table
}

// mustTailor parses and applies rule text on top of testAllkeys and
// returns a collator over the result.
func mustTailor(t *testing.T, rules string, opts ...Option) *Collator {
	t.Helper()
	c := New(mustTable(t), opts...)
	tailoring, err := ParseTailoring(rules)
	if err != nil {
		t.Fatalf("ParseTailoring(%q): %v", rules, err)
	}
	if err := c.ApplyTailoring(tailoring); err != nil {
		t.Fatalf("ApplyTailoring(%q): %v", rules, err)
	}
	return c
}
