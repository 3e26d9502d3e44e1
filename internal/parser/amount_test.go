package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		credit  bool
		display string
	}{
		{"1 234.56 CR", "1234.56", true, "1,234.56 CR"},
		{"1 234.56", "1234.56", false, "1,234.56"},
		{"380 727 198.64", "380727198.64", false, "380,727,198.64"},
		{"0.00", "0", false, "0.00"},
		{"12.50CR", "12.5", true, "12.50 CR"},
		{" 999.99 ", "999.99", false, "999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Magnitude.Equal(decimal.RequireFromString(tt.want)), "magnitude %s", got.Magnitude)
			assert.Equal(t, tt.credit, got.Credit)
			assert.Equal(t, tt.display, got.Display())
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "CR", "-5.00"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestAmount_CreditRoundTrip(t *testing.T) {
	a, err := ParseAmount("1 234.56 CR")
	require.NoError(t, err)

	assert.Equal(t, "-1234.56", a.Signed().String())
	assert.Equal(t, "1,234.56 CR", a.Display())

	back, err := ParseDisplay(a.Display())
	require.NoError(t, err)
	assert.True(t, back.Equal(a.Signed()))
}

func TestFormatSigned(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"1234567.891", "1,234,567.89"},
		{"-30", "-30.00"},
		{"-0.001", "0.00"},
		{"0.5", "0.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSigned(decimal.RequireFromString(tt.in)), "input %s", tt.in)
	}
}

func TestIsCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0.00", true},
		{"1,234.56", true},
		{"1,234.56 CR", true},
		{"123,456,789.00", true},
		{"1234.56", false},
		{"1 234.56", false},
		{"nan", false},
		{"", false},
		{"12.5", false},
		{"-1.00", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCanonical(tt.in), "IsCanonical(%q)", tt.in)
	}
}

func TestParseDisplay_Invalid(t *testing.T) {
	_, err := ParseDisplay("abc")
	assert.Error(t, err)
}
