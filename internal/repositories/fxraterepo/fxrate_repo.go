package fxraterepo

import (
	"context"

	"github.com/compile-and-cry/GlobePay/internal/domain"
)

// IFxRateRepository appends fx audit rows. Best-effort: callers log and
// swallow failures.
type IFxRateRepository interface {
	Insert(ctx context.Context, rate *domain.FxRate) error
}
