/*
Package collate implements the Unicode Collation Algorithm: it turns
Unicode code-point sequences into multi-level sort keys whose numeric
comparison reproduces culturally-expected string ordering, consistently
across platforms.

This package follows:
  - Unicode Technical Standard #10 (https://unicode.org/reports/tr10/)
    for collation element mapping and sort key generation
  - The CLDR collation rule syntax
    (https://unicode.org/reports/tr35/tr35-collation.html) for tailoring

# Overview

Using this package, you can:
  - Load a collation element table from DUCET-format (allkeys.txt) text
  - Tailor a table with compact reordering rules ("&a<b<<c")
  - Generate sort keys at primary through quaternary strength
  - Compare strings, with shifted punctuation handling and backwards
    (French) secondary ordering

# Getting Started

Load a table and build a collator:

	table, err := collate.ParseTable(allkeys)
	if err != nil { ... }
	c := collate.New(table, collate.Strength(collate.Secondary))
	sort.Slice(words, func(i, j int) bool {
		return c.Compare(words[i], words[j]) < 0
	})

For repeated comparisons against stored data, generate keys once with
[Collator.SortKey] and order by [Key.Compare] or the byte rendering
[Key.Bytes].

# Tailoring

A tailoring repositions characters relative to a base table. Rules
anchor at a reset point and chain: "&a<b<c" places b primary-after a
and c primary-after b. The operators "<", "<<", "<<<" and "<<<<"
declare primary through quaternary differences, "=" equality; a "*"
suffix applies the relation to a whole character run. Parse rule text
with [ParseTailoring], then apply it with [Apply] or
[Collator.ApplyTailoring]:

	t, err := collate.ParseTailoring("&c<ch<<<Ch<<<CH")
	if err != nil { ... }
	if err := c.ApplyTailoring(t); err != nil { ... }

Tables and tailorings are immutable once constructed. Every operation
is pure: a table, once built, may back any number of concurrent
comparisons without locking.

# Scope

Input is taken as given: the package does not normalize unless the
[Normalize] option is set, performs no I/O, and resolves no locale
data. Callers supply table text, rule text and strings; everything else
is out of scope.
*/
package collate
