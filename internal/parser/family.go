package parser

import (
	"regexp"
)

// NameFamily classifies an account by the leading digit of its code. It
// decides which placeholder is used when no name could be read from a row.
type NameFamily int

const (
	FamilyGeneric NameFamily = iota
	FamilyAsset
	FamilyLiability
	FamilyEquity
	FamilyExpense
	FamilyIncome
)

// assetPlaceholder is used for asset accounts without a readable name.
const assetPlaceholder = "-"

var familyPrefixes = map[NameFamily]string{
	FamilyGeneric:   "CUENTA",
	FamilyLiability: "PASIVO",
	FamilyEquity:    "PATRIMONIO",
	FamilyExpense:   "GASTO",
	FamilyIncome:    "INGRESO",
}

var placeholderPattern = regexp.MustCompile(`^(?:-|(?:CUENTA|PASIVO|PATRIMONIO|GASTO|INGRESO)_\d+)$`)

// FamilyOf returns the family for an account code.
func FamilyOf(code string) NameFamily {
	if code == "" {
		return FamilyGeneric
	}
	switch code[0] {
	case '1':
		return FamilyAsset
	case '2':
		return FamilyLiability
	case '3':
		return FamilyEquity
	case '4':
		return FamilyExpense
	case '5':
		return FamilyIncome
	default:
		return FamilyGeneric
	}
}

func (f NameFamily) String() string {
	switch f {
	case FamilyAsset:
		return "asset"
	case FamilyLiability:
		return "liability"
	case FamilyEquity:
		return "equity"
	case FamilyExpense:
		return "expense"
	case FamilyIncome:
		return "income"
	default:
		return "generic"
	}
}

// Placeholder returns the synthesized name for code within family f.
func (f NameFamily) Placeholder(code string) string {
	if f == FamilyAsset {
		return assetPlaceholder
	}
	return familyPrefixes[f] + "_" + code
}

// PlaceholderName returns the synthesized name for an unnamed account.
func PlaceholderName(code string) string {
	return FamilyOf(code).Placeholder(code)
}

// IsPlaceholder reports whether name was synthesized rather than read.
func IsPlaceholder(name string) bool {
	return placeholderPattern.MatchString(name)
}
