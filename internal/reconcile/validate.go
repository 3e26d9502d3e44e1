// Package reconcile cleans parsed trial balance records and computes the
// reconciliation summary over them.
package reconcile

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/trial-balance-converter/internal/models"
	"github.com/insightdelivered/trial-balance-converter/internal/parser"
)

// BalanceTolerance is the largest per-row deviation from
// prior + debits - credits = current that is still considered balanced.
var BalanceTolerance = decimal.RequireFromString("0.01")

// FieldStatus tags the outcome of checking one amount field.
type FieldStatus int

const (
	// FieldClean means the value already matched the display grammar.
	FieldClean FieldStatus = iota
	// FieldMissing means the value was empty or a null marker ("nan").
	FieldMissing
	// FieldMalformed means the value was present but not a valid amount.
	FieldMalformed
)

func (s FieldStatus) String() string {
	switch s {
	case FieldClean:
		return "clean"
	case FieldMissing:
		return "missing"
	default:
		return "malformed"
	}
}

// FieldResult is the checked value of one amount field. Value is always a
// canonical display string; Original is what was checked.
type FieldResult struct {
	Value    string
	Original string
	Status   FieldStatus
}

var nullMarkers = map[string]bool{"": true, "nan": true, "none": true, "null": true}

// CheckAmount validates one amount field, coercing anything outside the
// display grammar to the canonical zero.
func CheckAmount(s string) FieldResult {
	v := strings.TrimSpace(s)
	switch {
	case nullMarkers[strings.ToLower(v)]:
		return FieldResult{Value: models.ZeroAmount, Original: s, Status: FieldMissing}
	case parser.IsCanonical(v):
		return FieldResult{Value: v, Original: s, Status: FieldClean}
	default:
		return FieldResult{Value: models.ZeroAmount, Original: s, Status: FieldMalformed}
	}
}

// RecordCheck is the per-record outcome folded into the run's Warnings.
type RecordCheck struct {
	Fields      [4]FieldResult
	AllZero     bool
	Unbalanced  bool
	Placeholder bool
}

// CheckRecord normalizes the name and amount fields of r and reports what
// it found. The code is never changed.
func CheckRecord(r models.AccountRecord) (models.AccountRecord, RecordCheck) {
	var chk RecordCheck

	r.Name = strings.Join(strings.Fields(r.Name), " ")
	if r.Name == "" {
		r.Name = parser.PlaceholderName(r.Code)
	}
	chk.Placeholder = parser.IsPlaceholder(r.Name)

	fields := []*string{&r.PriorBalance, &r.Debits, &r.Credits, &r.CurrentBalance}
	chk.AllZero = true
	for i, f := range fields {
		res := CheckAmount(*f)
		*f = res.Value
		chk.Fields[i] = res
		if res.Value != models.ZeroAmount {
			chk.AllZero = false
		}
	}

	chk.Unbalanced = !Balanced(r)
	return r, chk
}

// fold adds one record's findings to w.
func fold(w models.Warnings, chk RecordCheck) models.Warnings {
	for _, f := range chk.Fields {
		if f.Status == FieldMalformed {
			w.MalformedFields++
		}
	}
	if chk.AllZero {
		w.AllZero++
	}
	if chk.Unbalanced {
		w.Unbalanced++
	}
	if chk.Placeholder {
		w.PlaceholderNames++
	}
	return w
}

// Balanced reports whether prior + debits - credits - current is within
// BalanceTolerance of zero. Fields that do not parse count as zero.
func Balanced(r models.AccountRecord) bool {
	diff := signedValue(r.PriorBalance).
		Add(signedValue(r.Debits)).
		Sub(signedValue(r.Credits)).
		Sub(signedValue(r.CurrentBalance))
	return diff.Abs().LessThanOrEqual(BalanceTolerance)
}

// Validate cleans a run's records. In order it drops records without a
// code, normalizes names and amounts, flags all-zero and unbalanced rows,
// keeps the first record of each code and sorts by code. Nothing here
// aborts; every finding is counted in the returned Warnings.
func Validate(records []models.AccountRecord) ([]models.AccountRecord, models.Warnings) {
	var w models.Warnings

	checked := make([]models.AccountRecord, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.Code) == "" {
			w.MissingCode++
			continue
		}
		clean, chk := CheckRecord(r)
		w = fold(w, chk)
		checked = append(checked, clean)
	}

	seen := make(map[string]struct{}, len(checked))
	unique := make([]models.AccountRecord, 0, len(checked))
	for _, r := range checked {
		if _, dup := seen[r.Code]; dup {
			w.Duplicates++
			continue
		}
		seen[r.Code] = struct{}{}
		unique = append(unique, r)
	}

	// Codes sort as strings: leading zeros are significant.
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Code < unique[j].Code
	})

	return unique, w
}

func signedValue(s string) decimal.Decimal {
	d, err := parser.ParseDisplay(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
