package fees

import (
	"testing"

	"github.com/compile-and-cry/GlobePay/pkg/config"
	"github.com/compile-and-cry/GlobePay/pkg/money"
)

func newCalculator() *Calculator {
	return NewCalculator(config.IntakeConfig{
		SettlementCurrency: "INR",
		FeeTransfer:        99,
		FeePlatform:        25,
	})
}

func TestCompute_CrossBorder(t *testing.T) {
	calc := newCalculator()

	b := calc.Compute(1000, "USD", 83.0)

	if b.AmountINR != 83000.00 {
		t.Errorf("AmountINR = %v, want 83000.00", b.AmountINR)
	}
	if b.FeeTransferINR != 99 || b.FeePlatformINR != 25 {
		t.Errorf("fees = %v/%v, want 99/25", b.FeeTransferINR, b.FeePlatformINR)
	}
	if b.TotalINR != 83124.00 {
		t.Errorf("TotalINR = %v, want 83124.00", b.TotalINR)
	}
	wantSrc := money.Round2(1000 + money.Round2(124.0/83.0))
	if b.TotalSrc != wantSrc {
		t.Errorf("TotalSrc = %v, want %v", b.TotalSrc, wantSrc)
	}
}

func TestCompute_SettlementCurrencyHasNoFees(t *testing.T) {
	calc := newCalculator()

	b := calc.Compute(2500.50, "INR", 1.0)

	if b.AmountINR != 2500.50 {
		t.Errorf("AmountINR = %v, want 2500.50", b.AmountINR)
	}
	if b.FeeTransferINR != 0 || b.FeePlatformINR != 0 || b.FeeSrcTotal != 0 {
		t.Errorf("expected zero fees, got %v/%v/%v", b.FeeTransferINR, b.FeePlatformINR, b.FeeSrcTotal)
	}
	if b.TotalINR != 2500.50 || b.TotalSrc != 2500.50 {
		t.Errorf("totals = %v/%v, want 2500.50 each", b.TotalINR, b.TotalSrc)
	}
}

// The flat fee must reconcile exactly: totalINR - amountINR == 124 and
// totalSrc == round2(amount + round2(124/rate)) for any amount and rate.
func TestCompute_FeeReconciliation(t *testing.T) {
	calc := newCalculator()

	cases := []struct {
		amount float64
		rate   float64
	}{
		{0, 83.0},
		{1, 0.25},
		{999.99, 22.5},
		{100000, 61.0},
		{12.34, 90.0},
	}

	for _, tc := range cases {
		b := calc.Compute(tc.amount, "USD", tc.rate)

		if diff := money.Round2(b.TotalINR - b.AmountINR); diff != 124 {
			t.Errorf("amount=%v rate=%v: fee delta = %v, want 124", tc.amount, tc.rate, diff)
		}
		wantSrc := money.Round2(tc.amount + money.Round2(124/tc.rate))
		if b.TotalSrc != wantSrc {
			t.Errorf("amount=%v rate=%v: TotalSrc = %v, want %v", tc.amount, tc.rate, b.TotalSrc, wantSrc)
		}
		if b.AmountINR != money.Round2(tc.amount*tc.rate) {
			t.Errorf("amount=%v rate=%v: AmountINR = %v, want %v", tc.amount, tc.rate, b.AmountINR, money.Round2(tc.amount*tc.rate))
		}
	}
}

func TestCompute_SourceCurrencyCaseInsensitive(t *testing.T) {
	calc := newCalculator()

	b := calc.Compute(100, "inr", 1.0)
	if b.FeeTransferINR != 0 {
		t.Errorf("lower-cased settlement currency still charged fees: %v", b.FeeTransferINR)
	}
}
