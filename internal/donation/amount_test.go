package donation_test

import (
	"errors"
	"math"
	"testing"

	"github.com/erikvaldez23/foundation-api/internal/donation"
)

func floatPtr(v float64) *float64 { return &v }

func TestMinorUnitsRejectsSubUnitAmounts(t *testing.T) {
	cases := []struct {
		name   string
		amount *float64
	}{
		{"missing", nil},
		{"zero", floatPtr(0)},
		{"below floor", floatPtr(0.4)},
		{"just below floor", floatPtr(0.999)},
		{"negative", floatPtr(-5)},
		{"overflows int64 minor units", floatPtr(1e17)},
		{"huge finite", floatPtr(math.MaxFloat64)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := donation.Request{Amount: tc.amount}
			if _, err := req.MinorUnits(); !errors.Is(err, donation.ErrInvalidAmount) {
				t.Fatalf("expected ErrInvalidAmount, got %v", err)
			}
		})
	}
}

func TestMinorUnitsRoundsToNearest(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{1, 100},
		{50, 5000},
		{19.995, 2000},
		{19.994, 1999},
		{25.005, 2501},
		{100, 10000},
		{9e15, 900000000000000000},
	}
	for _, tc := range cases {
		req := donation.Request{Amount: floatPtr(tc.amount)}
		got, err := req.MinorUnits()
		if err != nil {
			t.Fatalf("amount %v: unexpected error %v", tc.amount, err)
		}
		if got != tc.want {
			t.Fatalf("amount %v: expected %d minor units, got %d", tc.amount, tc.want, got)
		}
	}
}

func TestCurrencyOrDefault(t *testing.T) {
	if got := (donation.Request{}).CurrencyOrDefault("usd"); got != "usd" {
		t.Fatalf("expected usd, got %q", got)
	}
	if got := (donation.Request{Currency: " EUR "}).CurrencyOrDefault("usd"); got != "eur" {
		t.Fatalf("expected eur, got %q", got)
	}
}
