package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// creditMarker is the suffix that marks a credit-side amount.
const creditMarker = "CR"

var (
	// rowAmountPattern matches amounts as printed in the statement rows:
	// digits grouped in 3s separated by whitespace, two fraction digits and
	// an optional CR marker, e.g. "380 727 198.64" or "1 234.56 CR".
	rowAmountPattern = regexp.MustCompile(`\b\d{1,3}(?:\s\d{3})*\.\d{2}(?:\s*CR\b)?`)

	// canonicalPattern is the display grammar every validated field must match.
	canonicalPattern = regexp.MustCompile(`^\d{1,3}(?:,\d{3})*\.\d{2}(?:\s*CR)?$`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// amountFormatter renders minor units as "1,234.56" without a currency sign.
var amountFormatter = money.NewFormatter(2, ".", ",", "", "1")

var hundred = decimal.NewFromInt(100)

// Amount is a parsed monetary field. Magnitude is never negative; Credit
// records whether the CR marker was present.
type Amount struct {
	Magnitude decimal.Decimal
	Credit    bool
}

// ParseAmount parses a row-grammar token such as "1 234.56 CR".
func ParseAmount(raw string) (Amount, error) {
	s := strings.TrimSpace(raw)
	credit := strings.HasSuffix(s, creditMarker)
	s = strings.TrimSuffix(s, creditMarker)
	s = whitespaceRun.ReplaceAllString(s, "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("invalid amount %q: negative magnitude", raw)
	}
	return Amount{Magnitude: d, Credit: credit}, nil
}

// Signed returns the value used for arithmetic: credits are negative.
func (a Amount) Signed() decimal.Decimal {
	if a.Credit {
		return a.Magnitude.Neg()
	}
	return a.Magnitude
}

// Display returns the canonical display string, keeping the CR marker.
func (a Amount) Display() string {
	s := FormatMagnitude(a.Magnitude)
	if a.Credit {
		s += " " + creditMarker
	}
	return s
}

// FormatMagnitude formats the absolute value of d with thousands separators
// and two fraction digits.
func FormatMagnitude(d decimal.Decimal) string {
	cents := d.Abs().Mul(hundred).Round(0).IntPart()
	return amountFormatter.Format(cents)
}

// FormatSigned formats d like FormatMagnitude with a leading minus sign for
// negative values. Used for aggregate sums, which carry no CR marker.
func FormatSigned(d decimal.Decimal) string {
	s := FormatMagnitude(d)
	if d.Round(2).IsNegative() {
		return "-" + s
	}
	return s
}

// IsCanonical reports whether s matches the display grammar.
func IsCanonical(s string) bool {
	return canonicalPattern.MatchString(s)
}

// ParseDisplay converts a display string ("1,234.56 CR") to its signed value.
func ParseDisplay(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	credit := strings.HasSuffix(s, creditMarker)
	s = strings.TrimSpace(strings.TrimSuffix(s, creditMarker))
	s = strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid display amount %q: %w", s, err)
	}
	if credit {
		return d.Neg(), nil
	}
	return d, nil
}

// findAmounts returns the row-grammar amounts in s with their byte offsets.
func findAmounts(s string) (tokens []string, locs [][]int) {
	locs = rowAmountPattern.FindAllStringIndex(s, -1)
	tokens = make([]string, len(locs))
	for i, loc := range locs {
		tokens[i] = s[loc[0]:loc[1]]
	}
	return tokens, locs
}

// normalizeSpaces collapses whitespace runs to single spaces and trims.
func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
