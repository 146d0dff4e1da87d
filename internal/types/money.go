package types

import (
	"strings"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/shopspring/decimal"
)

// CurrencyPrecision is the number of fractional digits kept for currency amounts
const CurrencyPrecision int32 = 2

var (
	// Hundred is used for percent conversions
	Hundred = decimal.NewFromInt(100)
)

// CURRENCY_CODES_SYMBOLS is a map of 3 digit ISO currency codes to their symbols
var CURRENCY_CODES_SYMBOLS = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"mxn": "MX$",
	"cad": "CA$",
	"inr": "₹",
	"brl": "R$",
}

// GetCurrencySymbol returns the symbol for a given currency code
// if the code is not found, it returns the code itself
func GetCurrencySymbol(code string) string {
	if symbol, ok := CURRENCY_CODES_SYMBOLS[strings.ToLower(code)]; ok {
		return symbol
	}
	return code
}

// ParseAmount parses a decimal string into a currency amount without going through float64
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ierr.WithErrorf(err, "invalid amount %q", s).
			WithHint("Amounts must be decimal strings such as 100.00").
			Mark(ierr.ErrValidation)
	}
	return amount, nil
}

// MustParseAmount is ParseAmount for constants and tests
func MustParseAmount(s string) decimal.Decimal {
	amount, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return amount
}

// PercentOf returns pct percent of amount, i.e. amount * pct / 100
func PercentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(Hundred)
}

// ClampPercent bounds a percentage to [0, 100]
func ClampPercent(pct decimal.Decimal) decimal.Decimal {
	if pct.GreaterThan(Hundred) {
		return Hundred
	}
	if pct.IsNegative() {
		return decimal.Zero
	}
	return pct
}

// FloorZero returns zero for negative amounts
func FloorZero(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// RatioPercent returns part/whole expressed as a percentage rounded to CurrencyPrecision.
// A zero or negative whole yields zero instead of dividing.
func RatioPercent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(Hundred).DivRound(whole, CurrencyPrecision)
}

// SafeDiv divides and rounds to CurrencyPrecision, returning zero when the divisor is zero
func SafeDiv(numerator, divisor decimal.Decimal) decimal.Decimal {
	if divisor.IsZero() {
		return decimal.Zero
	}
	return numerator.DivRound(divisor, CurrencyPrecision)
}

// SumAmounts adds amounts exactly
func SumAmounts(amounts ...decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, amounts...)
}

// FormatAmount renders an amount with the currency precision, e.g. 70 -> "70.00"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(CurrencyPrecision)
}
