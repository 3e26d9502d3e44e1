package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/trial-balance-converter/internal/models"
)

func rec(code, name, prior, debits, credits, current string) models.AccountRecord {
	return models.AccountRecord{
		Code: code, Name: name,
		PriorBalance: prior, Debits: debits, Credits: credits, CurrentBalance: current,
	}
}

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		in     string
		value  string
		status FieldStatus
	}{
		{"1,234.56", "1,234.56", FieldClean},
		{"1,234.56 CR", "1,234.56 CR", FieldClean},
		{" 0.00 ", "0.00", FieldClean},
		{"", "0.00", FieldMissing},
		{"nan", "0.00", FieldMissing},
		{"NaN", "0.00", FieldMissing},
		{"None", "0.00", FieldMissing},
		{"abc", "0.00", FieldMalformed},
		{"1234.56", "0.00", FieldMalformed},
		{"1 234.56", "0.00", FieldMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := CheckAmount(tt.in)
			assert.Equal(t, tt.value, got.Value)
			assert.Equal(t, tt.status, got.Status, "status %s", got.Status)
			assert.Equal(t, tt.in, got.Original)
		})
	}
}

func TestValidate_Deduplicates(t *testing.T) {
	in := []models.AccountRecord{
		rec("101", "Caja", "100.00", "0.00", "0.00", "100.00"),
		rec("101", "Caja Chica", "5.00", "0.00", "0.00", "5.00"),
	}

	out, w := Validate(in)
	require.Len(t, out, 1)
	assert.Equal(t, "Caja", out[0].Name)
	assert.Equal(t, 1, w.Duplicates)
	assert.Equal(t, 1, w.Total())
}

func TestValidate_DropsMissingCode(t *testing.T) {
	in := []models.AccountRecord{
		rec("", "Sin codigo", "1.00", "0.00", "0.00", "1.00"),
		rec("  ", "Espacios", "1.00", "0.00", "0.00", "1.00"),
		rec("102", "Bancos", "1.00", "0.00", "0.00", "1.00"),
	}

	out, w := Validate(in)
	require.Len(t, out, 1)
	assert.Equal(t, "102", out[0].Code)
	assert.Equal(t, 2, w.MissingCode)
}

func TestValidate_CoercesMalformed(t *testing.T) {
	in := []models.AccountRecord{
		rec("101", "Caja", "nan", "garbage", "", "1234.00"),
	}

	out, w := Validate(in)
	require.Len(t, out, 1)
	r := out[0]
	for _, a := range r.Amounts() {
		assert.Equal(t, models.ZeroAmount, a)
	}
	// Null markers are coerced silently; only real garbage is counted.
	assert.Equal(t, 2, w.MalformedFields)
	assert.Equal(t, 1, w.AllZero)
	assert.Equal(t, 0, w.Unbalanced)
}

func TestValidate_FlagsWithoutDropping(t *testing.T) {
	in := []models.AccountRecord{
		rec("101", "Caja", "0.00", "0.00", "0.00", "0.00"),
		rec("102", "Bancos", "100.00", "50.00", "0.00", "200.00"),
		rec("201", "Proveedores", "100.00 CR", "0.00", "20.00", "120.00 CR"),
		rec("202", "Acreedores", "100.00", "0.00", "0.00", "100.01"),
	}

	out, w := Validate(in)
	assert.Len(t, out, 4)
	assert.Equal(t, 1, w.AllZero)
	assert.Equal(t, 1, w.Unbalanced, "only 102 is outside the tolerance")
	assert.Equal(t, 0, w.MalformedFields)
}

func TestValidate_NamesAndSort(t *testing.T) {
	in := []models.AccountRecord{
		rec("201", "  Proveedores \t Locales ", "1.00", "0.00", "0.00", "1.00"),
		rec("1010", "", "1.00", "0.00", "0.00", "1.00"),
		rec("0101", "Cuenta Cero", "1.00", "0.00", "0.00", "1.00"),
		rec("301", "PATRIMONIO_301", "1.00", "0.00", "0.00", "1.00"),
	}

	out, w := Validate(in)
	require.Len(t, out, 4)

	codes := make([]string, len(out))
	for i, r := range out {
		codes[i] = r.Code
	}
	assert.Equal(t, []string{"0101", "1010", "201", "301"}, codes)
	assert.Equal(t, "-", out[1].Name)
	assert.Equal(t, "Proveedores Locales", out[2].Name)
	assert.Equal(t, 2, w.PlaceholderNames)
	assert.Equal(t, 0, w.Total())
}

func TestValidate_Idempotent(t *testing.T) {
	in := []models.AccountRecord{
		rec("201", "Proveedores", "1,000.00 CR", "0.00", "500.00", "1,500.00 CR"),
		rec("101", "Caja", "100.00", "50.00", "0.00", "150.00"),
		rec("101", "Caja duplicada", "1.00", "0.00", "0.00", "1.00"),
		rec("102", "Bancos", "nan", "0.00", "0.00", "0.00"),
	}

	once, _ := Validate(in)
	twice, w := Validate(once)

	assert.Equal(t, once, twice)
	assert.Equal(t, 0, w.Duplicates)
	assert.Equal(t, 0, w.MissingCode)
	assert.Equal(t, 0, w.MalformedFields)
}

func TestValidate_Empty(t *testing.T) {
	out, w := Validate(nil)
	assert.Empty(t, out)
	assert.Equal(t, models.Warnings{}, w)
}

func TestBalanced(t *testing.T) {
	assert.True(t, Balanced(rec("1", "x", "100.00", "50.00", "20.00", "130.00")))
	assert.True(t, Balanced(rec("1", "x", "100.00", "50.00", "20.00", "130.01")))
	assert.False(t, Balanced(rec("1", "x", "100.00", "50.00", "20.00", "130.02")))
	assert.True(t, Balanced(rec("2", "x", "10.00 CR", "0.00", "5.00", "15.00 CR")))
}
