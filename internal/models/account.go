package models

// ZeroAmount is the canonical display string for an empty amount column.
const ZeroAmount = "0.00"

// Column headers of the detail table, in output order.
var DetailColumns = []string{"CODIGO", "NOMBRE", "SALDO_ANTERIOR", "CARGOS", "ABONOS", "SALDO_ACTUAL"}

// AccountRecord is one ledger account row of a trial balance.
// Amount fields hold display strings ("1,234.56" or "1,234.56 CR").
type AccountRecord struct {
	Code           string `json:"CODIGO" csv:"CODIGO"`
	Name           string `json:"NOMBRE" csv:"NOMBRE"`
	PriorBalance   string `json:"SALDO_ANTERIOR" csv:"SALDO_ANTERIOR"`
	Debits         string `json:"CARGOS" csv:"CARGOS"`
	Credits        string `json:"ABONOS" csv:"ABONOS"`
	CurrentBalance string `json:"SALDO_ACTUAL" csv:"SALDO_ACTUAL"`
}

// NewAccountRecord returns a record with every amount set to ZeroAmount.
func NewAccountRecord(code, name string) AccountRecord {
	return AccountRecord{
		Code:           code,
		Name:           name,
		PriorBalance:   ZeroAmount,
		Debits:         ZeroAmount,
		Credits:        ZeroAmount,
		CurrentBalance: ZeroAmount,
	}
}

// Amounts returns the four amount fields in column order.
func (r AccountRecord) Amounts() [4]string {
	return [4]string{r.PriorBalance, r.Debits, r.Credits, r.CurrentBalance}
}

// Row returns the record as a slice of cell values in DetailColumns order.
func (r AccountRecord) Row() []string {
	return []string{r.Code, r.Name, r.PriorBalance, r.Debits, r.Credits, r.CurrentBalance}
}

// SummaryRow is one (label, value) pair of the reconciliation summary.
type SummaryRow struct {
	Label string `json:"concepto" csv:"Concepto"`
	Value string `json:"valor" csv:"Valor"`
}

// Warnings holds the non-fatal diagnostics produced while validating records.
type Warnings struct {
	MissingCode     int `json:"missingCode"`
	MalformedFields int `json:"malformedFields"`
	AllZero         int `json:"allZero"`
	Unbalanced      int `json:"unbalanced"`
	Duplicates      int `json:"duplicates"`
	// PlaceholderNames is informational: accounts whose name was synthesized.
	PlaceholderNames int `json:"placeholderNames"`
}

// Total returns the sum of the warning counts, excluding PlaceholderNames.
func (w Warnings) Total() int {
	return w.MissingCode + w.MalformedFields + w.AllZero + w.Unbalanced + w.Duplicates
}

// DebugLine captures what the parser did with each input line.
type DebugLine struct {
	Page    int    `json:"page"`
	LineNum int    `json:"lineNum"`
	Text    string `json:"text"`
	Result  string `json:"result"` // "parsed", "rejected", "unparsable"
	Amounts int    `json:"amounts,omitempty"`
}

// Result is the output pair of one extraction run plus its metadata.
type Result struct {
	RunID      string          `json:"runId"`
	Date       string          `json:"date"` // DD/MM/YYYY
	Records    []AccountRecord `json:"records"`
	Summary    []SummaryRow    `json:"summary"`
	Warnings   Warnings        `json:"warnings"`
	Pages      int             `json:"pages"`
	EmptyPages []int           `json:"emptyPages,omitempty"`
	RawRows    int             `json:"rawRows"`
	DebugLines []DebugLine     `json:"debugLines,omitempty"`
}
