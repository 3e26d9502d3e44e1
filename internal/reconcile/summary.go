package reconcile

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/trial-balance-converter/internal/models"
	"github.com/insightdelivered/trial-balance-converter/internal/parser"
)

// Verdict is the corpus-level reconciliation outcome.
type Verdict string

const (
	VerdictOK     Verdict = "OK"
	VerdictReview Verdict = "REVISAR"
)

var (
	// VerdictTolerance bounds |prior + debits - credits - current| over all
	// records for an OK verdict.
	VerdictTolerance = decimal.NewFromInt(1)
	// LargeBalanceThreshold is the |current balance| above which an account
	// counts as a large balance.
	LargeBalanceThreshold = decimal.NewFromInt(1_000_000)
)

// Summary labels, in output order.
const (
	LabelAccounts      = "Total de Cuentas"
	LabelPriorTotal    = "Suma Saldos Anteriores"
	LabelDebitsTotal   = "Suma Total Cargos"
	LabelCreditsTotal  = "Suma Total Abonos"
	LabelCurrentTotal  = "Suma Saldos Actuales"
	LabelDifference    = "Diferencia (Actual - Anterior)"
	LabelVerdict       = "Validación Balance"
	LabelLargeBalances = "Cuentas con Saldo Mayor a 1M"
	LabelWithMovement  = "Cuentas con Movimientos"
)

// Summary holds the aggregate figures of a validated record set. Sums are
// algebraic: CR amounts subtract.
type Summary struct {
	Accounts      int
	PriorTotal    decimal.Decimal
	DebitsTotal   decimal.Decimal
	CreditsTotal  decimal.Decimal
	CurrentTotal  decimal.Decimal
	Difference    decimal.Decimal
	Verdict       Verdict
	LargeBalances int
	WithMovement  int
}

// Summarize computes the reconciliation summary over validated records.
func Summarize(records []models.AccountRecord) Summary {
	s := Summary{Accounts: len(records)}

	for _, r := range records {
		prior := signedValue(r.PriorBalance)
		debits := signedValue(r.Debits)
		credits := signedValue(r.Credits)
		current := signedValue(r.CurrentBalance)

		s.PriorTotal = s.PriorTotal.Add(prior)
		s.DebitsTotal = s.DebitsTotal.Add(debits)
		s.CreditsTotal = s.CreditsTotal.Add(credits)
		s.CurrentTotal = s.CurrentTotal.Add(current)

		if current.Abs().GreaterThan(LargeBalanceThreshold) {
			s.LargeBalances++
		}
		if !debits.IsZero() || !credits.IsZero() {
			s.WithMovement++
		}
	}

	s.Difference = s.CurrentTotal.Sub(s.PriorTotal)

	gap := s.PriorTotal.Add(s.DebitsTotal).Sub(s.CreditsTotal).Sub(s.CurrentTotal)
	if gap.Abs().LessThan(VerdictTolerance) {
		s.Verdict = VerdictOK
	} else {
		s.Verdict = VerdictReview
	}

	return s
}

// Rows returns the summary as ordered (label, value) pairs.
func (s Summary) Rows() []models.SummaryRow {
	return []models.SummaryRow{
		{Label: LabelAccounts, Value: strconv.Itoa(s.Accounts)},
		{Label: LabelPriorTotal, Value: parser.FormatSigned(s.PriorTotal)},
		{Label: LabelDebitsTotal, Value: parser.FormatSigned(s.DebitsTotal)},
		{Label: LabelCreditsTotal, Value: parser.FormatSigned(s.CreditsTotal)},
		{Label: LabelCurrentTotal, Value: parser.FormatSigned(s.CurrentTotal)},
		{Label: LabelDifference, Value: parser.FormatSigned(s.Difference)},
		{Label: LabelVerdict, Value: string(s.Verdict)},
		{Label: LabelLargeBalances, Value: strconv.Itoa(s.LargeBalances)},
		{Label: LabelWithMovement, Value: strconv.Itoa(s.WithMovement)},
	}
}
