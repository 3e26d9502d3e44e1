package parser

import (
	"regexp"
	"unicode/utf8"
)

const (
	// minDataAmounts is the fewest amounts a ledger row can show
	// (prior and current balance).
	minDataAmounts = 2
	// minDataLineLength filters page numbers and footnotes that happen to
	// carry two short numbers.
	minDataLineLength = 20
)

var leadingCode = regexp.MustCompile(`^\d+`)

// IsDataLine reports whether line looks like a ledger-account row: it starts
// with an account code, carries at least two amounts and is longer than
// twenty characters once whitespace is normalized.
func IsDataLine(line string) bool {
	clean := normalizeSpaces(line)
	code := leadingCode.FindString(clean)
	if code == "" {
		return false
	}
	if utf8.RuneCountInString(clean) <= minDataLineLength {
		return false
	}
	// Amounts are counted after the code so the code digits never merge
	// into the first amount.
	return len(rowAmountPattern.FindAllStringIndex(clean[len(code):], -1)) >= minDataAmounts
}
