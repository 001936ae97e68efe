package rates

import (
	"context"
	"time"

	"github.com/compile-and-cry/GlobePay/internal/domain"
)

// LiveSource is the remote quote API the service tries first.
type LiveSource interface {
	GetLiveRate(ctx context.Context, base, quote string) (float64, time.Time, error)
}

// IRateService resolves base->quote conversion rates. Resolve never fails:
// any live-source failure is absorbed by the static fallback table.
type IRateService interface {
	Resolve(ctx context.Context, base, quote string) domain.QuoteResult
	FallbackRate(base string) float64
}
