package booking

import (
	"errors"
	"testing"
)

func TestQuote(t *testing.T) {
	cases := []struct {
		name      string
		rate      int64
		duration  float64
		wantTotal int64
		wantFee   int64
	}{
		{"two hours", 50000, 2, 100000, 5000},
		{"ninety minutes", 50000, 1.5, 75000, 3750},
		{"one hour", 30000, 1, 30000, 1500},
		{"fee rounds half up", 10, 1, 10, 1}, // 10 * 0.05 = 0.5 -> 1
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total, fee, err := Quote(tc.rate, tc.duration, DefaultFeeRate)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if total != tc.wantTotal {
				t.Errorf("total = %d, want %d", total, tc.wantTotal)
			}
			if fee != tc.wantFee {
				t.Errorf("fee = %d, want %d", fee, tc.wantFee)
			}
		})
	}
}

func TestQuote_FeeDerivedFromRoundedTotal(t *testing.T) {
	// 333 * 1.5 = 499.5 rounds to 500; the fee must come from 500,
	// not from the raw product.
	total, fee, err := Quote(333, 1.5, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 500 {
		t.Errorf("total = %d, want 500", total)
	}
	if fee != 50 {
		t.Errorf("fee = %d, want 50", fee)
	}
}

func TestQuote_InvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		rate     int64
		duration float64
	}{
		{"zero rate", 0, 1},
		{"negative rate", -100, 1},
		{"zero duration", 50000, 0},
		{"negative duration", 50000, -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := Quote(tc.rate, tc.duration, DefaultFeeRate); !errors.Is(err, ErrInvalidPricingInput) {
				t.Errorf("expected ErrInvalidPricingInput, got %v", err)
			}
		})
	}
}
