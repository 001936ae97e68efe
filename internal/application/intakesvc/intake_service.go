package intakesvc

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/compile-and-cry/GlobePay/internal/application/fees"
	"github.com/compile-and-cry/GlobePay/internal/application/risk"
	"github.com/compile-and-cry/GlobePay/internal/domain"
)

var ErrInvalidSessionID = errors.New("invalid session id")

// SubmitRequest is one mobile payment submission.
type SubmitRequest struct {
	PayerName string
	Handle    string
	Amount    float64
	Currency  string
	Note      string
	SessionID string
}

// SubmitResult reports the persisted payment plus the outcome of the
// advisory side effects. SessionLinked and FxRecorded are informational:
// the core payment write succeeded whenever Submit returns no error.
type SubmitResult struct {
	PaymentID      uuid.UUID          `json:"payment_id"`
	UpiID          string             `json:"upi_id"`
	SourceCurrency string             `json:"source_currency"`
	SourceAmount   float64            `json:"source_amount"`
	Quote          domain.QuoteResult `json:"quote"`
	Fees           fees.Breakdown     `json:"fees"`
	Risk           risk.Assessment    `json:"risk"`
	SessionLinked  bool               `json:"session_linked"`
	FxRecorded     bool               `json:"fx_recorded"`
}

// FinalizeResult reports success finalization. Payment is nil when the
// payment id was malformed or unknown; SessionFinalized reflects the
// advisory session transition.
type FinalizeResult struct {
	Payment          *domain.Payment `json:"payment,omitempty"`
	SessionFinalized bool            `json:"session_finalized"`
}

// CurrencyOption is one ranked entry from the currency optimizer.
type CurrencyOption struct {
	Currency  string  `json:"currency"`
	Rate      float64 `json:"rate"`
	AmountINR float64 `json:"amount_inr"`
	FeeINR    float64 `json:"fee_inr"`
	NetINR    float64 `json:"net_inr"`
}

// IIntakeService sequences the payment intake pipeline and owns every
// session/payment state transition.
type IIntakeService interface {
	CreateSession(ctx context.Context) (uuid.UUID, error)
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
	Finalize(ctx context.Context, paymentID, sessionID string) (*FinalizeResult, error)
	SessionStatus(ctx context.Context, sessionID string) string
	ForceProcessing(ctx context.Context, sessionID string) error
	RankCurrencies(amount float64, clientAllowed []string) []CurrencyOption
}
