package parser

import (
	"regexp"
	"unicode/utf8"

	"github.com/insightdelivered/trial-balance-converter/internal/models"
)

// minNameLength is the shortest account name kept as read from the row.
const minNameLength = 2

// nameNoise matches characters that never belong in an account name.
var nameNoise = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\-.()/]`)

// ParseRow parses one ledger-account row into a record. It returns false
// when no account code or no amount can be extracted; such rows are noise
// and are skipped by the caller.
//
// Layout: CODE [NAME] AMOUNT{1,4}. Zero-valued columns are not printed, so
// the amounts are mapped to columns by how many of them appear:
//
//	1 → current balance
//	2 → prior, current
//	3 → prior, movement, current (movement is a debit when current > prior)
//	4+ → prior, debits, credits, current (extra amounts are ignored)
func ParseRow(line string) (models.AccountRecord, bool) {
	clean := normalizeSpaces(line)

	code := leadingCode.FindString(clean)
	if code == "" {
		return models.AccountRecord{}, false
	}
	rest := clean[len(code):]

	tokens, locs := findAmounts(rest)
	amounts := make([]Amount, 0, len(tokens))
	firstAt := -1
	for i, tok := range tokens {
		a, err := ParseAmount(tok)
		if err != nil {
			continue
		}
		if firstAt < 0 {
			firstAt = locs[i][0]
		}
		amounts = append(amounts, a)
	}
	if len(amounts) == 0 {
		return models.AccountRecord{}, false
	}

	name := cleanName(rest[:firstAt])
	if utf8.RuneCountInString(name) < minNameLength {
		name = PlaceholderName(code)
	}

	rec := models.NewAccountRecord(code, name)
	assignColumns(&rec, amounts)
	return rec, true
}

// assignColumns maps amounts onto the four amount columns by count.
func assignColumns(rec *models.AccountRecord, amounts []Amount) {
	switch n := len(amounts); {
	case n == 1:
		rec.CurrentBalance = amounts[0].Display()
	case n == 2:
		rec.PriorBalance = amounts[0].Display()
		rec.CurrentBalance = amounts[1].Display()
	case n == 3:
		rec.PriorBalance = amounts[0].Display()
		if amounts[2].Signed().GreaterThan(amounts[0].Signed()) {
			rec.Debits = amounts[1].Display()
		} else {
			rec.Credits = amounts[1].Display()
		}
		rec.CurrentBalance = amounts[2].Display()
	case n >= 4:
		rec.PriorBalance = amounts[0].Display()
		rec.Debits = amounts[1].Display()
		rec.Credits = amounts[2].Display()
		rec.CurrentBalance = amounts[3].Display()
	}
}

// cleanName strips characters outside the account-name alphabet and
// collapses whitespace.
func cleanName(segment string) string {
	return normalizeSpaces(nameNoise.ReplaceAllString(segment, " "))
}
