package paymentrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/compile-and-cry/GlobePay/internal/domain"
)

// IPaymentRepository persists payments. GetByID returns (nil, nil) for an
// unknown id; MarkSuccess is idempotent.
type IPaymentRepository interface {
	Insert(ctx context.Context, payment *domain.Payment) error
	MarkSuccess(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
}
