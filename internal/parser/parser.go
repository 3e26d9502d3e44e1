// Package parser turns the page text of a trial balance into account
// records: statement date, row classification and row parsing.
package parser

import (
	"strings"

	"github.com/insightdelivered/trial-balance-converter/internal/models"
)

// Debug line results.
const (
	LineParsed     = "parsed"
	LineRejected   = "rejected"
	LineUnparsable = "unparsable"
)

// ParsePage classifies and parses every line of one page. Lines that are
// not ledger rows, or that fail to parse, are skipped. page is the 1-based
// page number recorded in the debug lines.
func ParsePage(page int, text string) ([]models.AccountRecord, []models.DebugLine) {
	var records []models.AccountRecord
	var debug []models.DebugLine

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		dl := models.DebugLine{Page: page, LineNum: i + 1, Text: line, Result: LineRejected}
		if IsDataLine(line) {
			if rec, ok := ParseRow(line); ok {
				records = append(records, rec)
				dl.Result = LineParsed
				dl.Amounts = countAmounts(rec)
			} else {
				dl.Result = LineUnparsable
			}
		}
		debug = append(debug, dl)
	}

	return records, debug
}

func countAmounts(rec models.AccountRecord) int {
	n := 0
	for _, a := range rec.Amounts() {
		if a != models.ZeroAmount {
			n++
		}
	}
	return n
}
