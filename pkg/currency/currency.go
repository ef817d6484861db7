// Package currency holds the ISO-4217 minor-unit exponents the gateway uses
// when amounts are expressed in minor units, plus conversion helpers.
package currency

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultExponent applies to every currency not listed in exponents.
const DefaultExponent = 2

var exponents = map[string]int32{
	// zero decimal currencies
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0, "KMF": 0,
	"KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "UYI": 0, "VND": 0, "VUV": 0,
	"XAF": 0, "XOF": 0, "XPF": 0,
	// three decimal currencies
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
	// four decimal currencies
	"CLF": 4, "UYW": 4,
}

var (
	// ErrNegative is returned when converting a negative amount.
	ErrNegative = errors.New("currency: amount must not be negative")
	// ErrPrecision is returned when an amount has more fractional digits than
	// the currency supports.
	ErrPrecision = errors.New("currency: amount exceeds currency precision")
	// ErrRange is returned when the minor-unit value overflows int64.
	ErrRange = errors.New("currency: amount out of range")
)

// Exponent returns the number of minor-unit digits for code.
func Exponent(code string) int32 {
	if exp, ok := exponents[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return exp
	}
	return DefaultExponent
}

// ToMinor converts a major-unit amount (12.34 USD) into minor units (1234).
func ToMinor(amount decimal.Decimal, code string) (int64, error) {
	if amount.IsNegative() {
		return 0, ErrNegative
	}
	exp := Exponent(code)
	minor := amount.Shift(exp)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: %s %s", ErrPrecision, amount.String(), code)
	}
	if minor.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, fmt.Errorf("%w: %s %s", ErrRange, amount.String(), code)
	}
	return minor.IntPart(), nil
}

// ToMajor converts minor units back into a major-unit decimal.
func ToMajor(minor int64, code string) decimal.Decimal {
	return decimal.New(minor, -Exponent(code))
}
