package currency_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-paygate/pkg/currency"
)

func TestExponent(t *testing.T) {
	cases := map[string]int32{
		"USD":   2,
		"jpy":   0,
		" KWD ": 3,
		"CLF":   4,
		"XXX":   currency.DefaultExponent,
	}
	for code, want := range cases {
		if got := currency.Exponent(code); got != want {
			t.Fatalf("Exponent(%q) = %d, want %d", code, got, want)
		}
	}
}

func TestToMinor(t *testing.T) {
	cases := []struct {
		amount string
		code   string
		want   int64
	}{
		{"12.34", "USD", 1234},
		{"10", "USD", 1000},
		{"1500", "JPY", 1500},
		{"1.005", "KWD", 1005},
		{"0", "EUR", 0},
	}
	for _, tc := range cases {
		got, err := currency.ToMinor(decimal.RequireFromString(tc.amount), tc.code)
		if err != nil {
			t.Fatalf("ToMinor(%s %s): %v", tc.amount, tc.code, err)
		}
		if got != tc.want {
			t.Fatalf("ToMinor(%s %s) = %d, want %d", tc.amount, tc.code, got, tc.want)
		}
	}
}

func TestToMinorErrors(t *testing.T) {
	if _, err := currency.ToMinor(decimal.RequireFromString("-1"), "USD"); !errors.Is(err, currency.ErrNegative) {
		t.Fatalf("expected ErrNegative, got %v", err)
	}
	if _, err := currency.ToMinor(decimal.RequireFromString("1.234"), "USD"); !errors.Is(err, currency.ErrPrecision) {
		t.Fatalf("expected ErrPrecision, got %v", err)
	}
	if _, err := currency.ToMinor(decimal.RequireFromString("1.5"), "JPY"); !errors.Is(err, currency.ErrPrecision) {
		t.Fatalf("expected ErrPrecision for JPY, got %v", err)
	}
	if _, err := currency.ToMinor(decimal.RequireFromString("99999999999999999999"), "USD"); !errors.Is(err, currency.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
}

func TestToMajor(t *testing.T) {
	if got := currency.ToMajor(1234, "USD").String(); got != "12.34" {
		t.Fatalf("ToMajor = %s, want 12.34", got)
	}
	if got := currency.ToMajor(1500, "JPY").String(); got != "1500" {
		t.Fatalf("ToMajor JPY = %s, want 1500", got)
	}
}
