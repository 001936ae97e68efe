package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
)

// Payment is created with all derived fields (conversion, fees, risk)
// already computed, then mutated exactly once by success finalization.
type Payment struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	PayerName      string        `json:"payer_name" db:"payer_name"`
	UpiID          string        `json:"upi_id" db:"upi_id"`
	Note           string        `json:"note,omitempty" db:"note"`
	SourceCurrency string        `json:"source_currency" db:"source_currency"`
	SourceAmount   float64       `json:"source_amount" db:"source_amount"`
	AmountINR      float64       `json:"amount_inr" db:"amount_inr"`
	RateToINR      *float64      `json:"rate_to_inr,omitempty" db:"rate_to_inr"`
	RateTimestamp  *time.Time    `json:"rate_timestamp,omitempty" db:"rate_timestamp"`
	FeeTransferINR float64       `json:"fee_transfer_inr" db:"fee_transfer_inr"`
	FeePlatformINR float64       `json:"fee_platform_inr" db:"fee_platform_inr"`
	FeeSrcTotal    float64       `json:"fee_src_total" db:"fee_src_total"`
	TotalINR       float64       `json:"total_inr" db:"total_inr"`
	TotalSrc       float64       `json:"total_src" db:"total_src"`
	RiskScore      int           `json:"risk_score" db:"risk_score"`
	RiskLabel      string        `json:"risk_label" db:"risk_label"`
	RiskReasons    []string      `json:"risk_reasons" db:"risk_reasons"`
	Status         PaymentStatus `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}
