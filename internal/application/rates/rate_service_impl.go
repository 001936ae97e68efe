package rates

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/compile-and-cry/GlobePay/internal/domain"
)

// fallbackRates are rough demo rates into INR, used whenever the live source
// fails. Unknown codes resolve to 1.0.
var fallbackRates = map[string]float64{
	"AED": 22.5,
	"NPR": 0.63,
	"BTN": 1.0,
	"SGD": 61.0,
	"MUR": 1.7,
	"EUR": 90.0,
	"LKR": 0.25,
}

type rateService struct {
	live   LiveSource
	logger zerolog.Logger
}

func New(live LiveSource, logger zerolog.Logger) IRateService {
	return &rateService{
		live:   live,
		logger: logger.With().Str("component", "rate_service").Logger(),
	}
}

// Resolve returns the base->quote rate. Same-currency pairs short-circuit to
// 1.0 without a network call. A single live failure falls back immediately;
// the fallback carries no timestamp.
func (s *rateService) Resolve(ctx context.Context, base, quote string) domain.QuoteResult {
	baseUp := strings.ToUpper(strings.TrimSpace(base))
	quoteUp := strings.ToUpper(strings.TrimSpace(quote))

	if baseUp == quoteUp {
		now := time.Now().UTC()
		return domain.QuoteResult{
			Rate:      1.0,
			Timestamp: &now,
			Provider:  domain.RateProviderStatic,
		}
	}

	rate, fetchedAt, err := s.live.GetLiveRate(ctx, baseUp, quoteUp)
	if err != nil {
		fallback := s.FallbackRate(baseUp)
		s.logger.Warn().
			Err(err).
			Str("base", baseUp).
			Str("quote", quoteUp).
			Float64("fallback_rate", fallback).
			Msg("Live rate fetch failed, using fallback table")

		return domain.QuoteResult{
			Rate:     fallback,
			Provider: domain.RateProviderFallback,
		}
	}

	return domain.QuoteResult{
		Rate:      rate,
		Timestamp: &fetchedAt,
		Provider:  domain.RateProviderLive,
	}
}

func (s *rateService) FallbackRate(base string) float64 {
	if rate, ok := fallbackRates[strings.ToUpper(strings.TrimSpace(base))]; ok {
		return rate
	}
	return 1.0
}
