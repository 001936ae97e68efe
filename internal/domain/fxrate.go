package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rate provider names recorded on fx audit rows and payments.
const (
	RateProviderStatic   = "static"
	RateProviderFallback = "fallback"
	RateProviderLive     = "exchangerate.host-live"
)

// FxRate is a write-only audit row recording where a conversion rate came
// from. Never read back by the intake flow.
type FxRate struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	BaseCurrency  string     `json:"base_currency" db:"base_currency"`
	QuoteCurrency string     `json:"quote_currency" db:"quote_currency"`
	Rate          float64    `json:"rate" db:"rate"`
	Provider      string     `json:"provider" db:"provider"`
	FetchedAt     *time.Time `json:"fetched_at,omitempty" db:"fetched_at"`
}

// QuoteResult is a resolved conversion rate. Timestamp is nil when no live
// quote was obtained and no timestamp is attributable.
type QuoteResult struct {
	Rate      float64    `json:"rate"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Provider  string     `json:"provider"`
}
