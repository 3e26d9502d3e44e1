package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/trial-balance-converter/internal/models"
)

func TestIsDataLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"101 CUENTA EJEMPLO 1 234.56 2 000.00", true},
		{"1105 Bancos Nacionales 12 500.00 CR 3 000.00 9 500.00 CR", true},
		{"101 ABC", false},
		{"CUENTA EJEMPLO 1 234.56 2 000.00", false},
		{"101 CUENTA EJEMPLO 1 234.56", false},
		// Two amounts but too short to be a row.
		{"1 2.00 3.00", false},
		{"Página 1 de 3", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDataLine(tt.line))
		})
	}
}

func TestParseRow_AmountCounts(t *testing.T) {
	tests := []struct {
		name string
		line string
		want models.AccountRecord
	}{
		{
			name: "one amount",
			line: "101 380 727 198.64",
			want: models.AccountRecord{
				Code: "101", Name: "-",
				PriorBalance: "0.00", Debits: "0.00", Credits: "0.00",
				CurrentBalance: "380,727,198.64",
			},
		},
		{
			name: "two amounts",
			line: "101 CUENTA EJEMPLO 1 234.56 2 000.00",
			want: models.AccountRecord{
				Code: "101", Name: "CUENTA EJEMPLO",
				PriorBalance: "1,234.56", Debits: "0.00", Credits: "0.00",
				CurrentBalance: "2,000.00",
			},
		},
		{
			name: "three amounts rising balance is a debit",
			line: "1105 Caja General 100.00 50.00 150.00",
			want: models.AccountRecord{
				Code: "1105", Name: "Caja General",
				PriorBalance: "100.00", Debits: "50.00", Credits: "0.00",
				CurrentBalance: "150.00",
			},
		},
		{
			name: "three amounts falling balance is a credit",
			line: "1105 Caja General 150.00 50.00 100.00",
			want: models.AccountRecord{
				Code: "1105", Name: "Caja General",
				PriorBalance: "150.00", Debits: "0.00", Credits: "50.00",
				CurrentBalance: "100.00",
			},
		},
		{
			name: "three amounts compared with credit sign",
			line: "2101 Proveedores 1 000.00 CR 500.00 1 500.00 CR",
			want: models.AccountRecord{
				Code: "2101", Name: "Proveedores",
				PriorBalance: "1,000.00 CR", Debits: "0.00", Credits: "500.00",
				CurrentBalance: "1,500.00 CR",
			},
		},
		{
			name: "four amounts",
			line: "4101 Sueldos y Salarios 10 000.00 2 500.00 500.00 12 000.00",
			want: models.AccountRecord{
				Code: "4101", Name: "Sueldos y Salarios",
				PriorBalance: "10,000.00", Debits: "2,500.00", Credits: "500.00",
				CurrentBalance: "12,000.00",
			},
		},
		{
			name: "extra amounts ignored",
			line: "5101 Ventas 1.00 2.00 3.00 4.00 5.00",
			want: models.AccountRecord{
				Code: "5101", Name: "Ventas",
				PriorBalance: "1.00", Debits: "2.00", Credits: "3.00",
				CurrentBalance: "4.00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRow(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRow_Name(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"1201 Clientes *** Nacionales 1 000.00 2 000.00", "Clientes Nacionales"},
		{"1202 Depósitos (Garantía) 1 000.00 2 000.00", "Depósitos (Garantía)"},
		{"1203 I.V.A. Acreditable/Pagado 10.00 20.00", "I.V.A. Acreditable/Pagado"},
		{"2101    Proveedores      Locales   1.00   2.00", "Proveedores Locales"},
		{"2102 X 1.00 2.00", "PASIVO_2102"},
		{"3101 1.00 2.00", "PATRIMONIO_3101"},
		{"4102 # 1.00 2.00", "GASTO_4102"},
		{"5102 1.00 2.00", "INGRESO_5102"},
		{"6101 1.00 2.00", "CUENTA_6101"},
		{"1999 1.00 2.00", "-"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ParseRow(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestParseRow_Rejects(t *testing.T) {
	for _, line := range []string{
		"CUENTA SIN CODIGO 1 000.00 2 000.00",
		"101 CUENTA SIN IMPORTES",
		"",
	} {
		_, ok := ParseRow(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestNameFamily(t *testing.T) {
	tests := []struct {
		code   string
		family NameFamily
		name   string
	}{
		{"101", FamilyAsset, "-"},
		{"2101", FamilyLiability, "PASIVO_2101"},
		{"3", FamilyEquity, "PATRIMONIO_3"},
		{"41", FamilyExpense, "GASTO_41"},
		{"501", FamilyIncome, "INGRESO_501"},
		{"601", FamilyGeneric, "CUENTA_601"},
		{"0101", FamilyGeneric, "CUENTA_0101"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.family, FamilyOf(tt.code))
			assert.Equal(t, tt.name, PlaceholderName(tt.code))
			assert.True(t, IsPlaceholder(tt.name))
		})
	}

	assert.False(t, IsPlaceholder("Caja General"))
	assert.False(t, IsPlaceholder("PASIVO"))
	assert.Equal(t, "liability", FamilyLiability.String())
}

func TestParsePage(t *testing.T) {
	text := `EMPRESA DEMO S.A. DE C.V.
BALANCE DE COMPROBACION DIARIO EN MONEDA NACIONAL AL DIA 05/03/2024
CODIGO NOMBRE SALDO ANTERIOR CARGOS ABONOS SALDO ACTUAL

1101 Caja General 1 000.00 500.00 1 500.00
2101 Proveedores 2 000.00 CR 100.00 300.00 2 200.00 CR
Página 1 de 1`

	records, debug := ParsePage(1, text)
	require.Len(t, records, 2)
	assert.Equal(t, "1101", records[0].Code)
	assert.Equal(t, "2101", records[1].Code)
	assert.Equal(t, "300.00", records[1].Credits)

	// Blank lines produce no debug entry.
	require.Len(t, debug, 6)
	assert.Equal(t, LineRejected, debug[0].Result)
	assert.Equal(t, LineParsed, debug[3].Result)
	assert.Equal(t, 5, debug[3].LineNum)
	assert.Equal(t, 3, debug[3].Amounts)
	assert.Equal(t, 4, debug[4].Amounts)
	for _, d := range debug {
		assert.Equal(t, 1, d.Page)
	}
}
