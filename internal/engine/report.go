package engine

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/trial-balance-converter/internal/models"
)

func logWarnings(ev *zerolog.Event, w models.Warnings, kept int) {
	ev.Int("records", kept).
		Int("missing_code", w.MissingCode).
		Int("malformed_fields", w.MalformedFields).
		Int("all_zero", w.AllZero).
		Int("unbalanced", w.Unbalanced).
		Int("duplicates", w.Duplicates).
		Int("placeholder_names", w.PlaceholderNames).
		Msg("validation completed")
}

// WarningLines renders non-zero warning counts as short messages for
// console output, in validation order.
func WarningLines(w models.Warnings) []string {
	var lines []string
	add := func(n int, msg string) {
		if n > 0 {
			lines = append(lines, strconv.Itoa(n)+" "+msg)
		}
	}
	add(w.MissingCode, "rows without account code removed")
	add(w.PlaceholderNames, "accounts without name (placeholder used)")
	add(w.MalformedFields, "malformed amounts set to 0.00")
	add(w.AllZero, "accounts with all amounts at 0.00 (possibly incomplete)")
	add(w.Unbalanced, "accounts failing prior + debits - credits = current")
	add(w.Duplicates, "duplicate account codes removed (first kept)")
	return lines
}
