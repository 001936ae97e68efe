package fees

import (
	"strings"

	"github.com/compile-and-cry/GlobePay/pkg/config"
	"github.com/compile-and-cry/GlobePay/pkg/money"
)

// Breakdown is the full fee and conversion result for one payment, with
// every money field rounded to 2 decimals in its own currency.
type Breakdown struct {
	AmountINR      float64 `json:"amount_inr"`
	FeeTransferINR float64 `json:"fee_transfer_inr"`
	FeePlatformINR float64 `json:"fee_platform_inr"`
	FeeSrcTotal    float64 `json:"fee_src_total"`
	TotalINR       float64 `json:"total_inr"`
	TotalSrc       float64 `json:"total_src"`
}

// Calculator converts a source amount into the settlement currency and
// applies the flat cross-border fees. Pure; safe for concurrent use.
type Calculator struct {
	settlementCurrency string
	feeTransfer        float64
	feePlatform        float64
}

func NewCalculator(cfg config.IntakeConfig) *Calculator {
	return &Calculator{
		settlementCurrency: strings.ToUpper(cfg.SettlementCurrency),
		feeTransfer:        cfg.FeeTransfer,
		feePlatform:        cfg.FeePlatform,
	}
}

// Compute derives the settlement amount and fee components for a source
// amount at the given rate. Settlement-currency payments carry no fees.
func (c *Calculator) Compute(sourceAmount float64, sourceCurrency string, rate float64) Breakdown {
	amountINR := money.Round2(sourceAmount * rate)

	if strings.ToUpper(sourceCurrency) == c.settlementCurrency {
		return Breakdown{
			AmountINR: amountINR,
			TotalINR:  amountINR,
			TotalSrc:  money.Round2(sourceAmount),
		}
	}

	feeSrcTotal := money.Round2((c.feeTransfer + c.feePlatform) / rate)

	return Breakdown{
		AmountINR:      amountINR,
		FeeTransferINR: c.feeTransfer,
		FeePlatformINR: c.feePlatform,
		FeeSrcTotal:    feeSrcTotal,
		TotalINR:       money.Round2(amountINR + c.feeTransfer + c.feePlatform),
		TotalSrc:       money.Round2(sourceAmount + feeSrcTotal),
	}
}

// SettlementCurrency reports the currency all payments settle in.
func (c *Calculator) SettlementCurrency() string {
	return c.settlementCurrency
}
