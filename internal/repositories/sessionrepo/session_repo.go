package sessionrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/compile-and-cry/GlobePay/internal/domain"
)

// ISessionRepository persists browsing sessions. GetByID returns (nil, nil)
// for an unknown id.
type ISessionRepository interface {
	Create(ctx context.Context) (uuid.UUID, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.SessionStatus) error
	AttachPayment(ctx context.Context, id, paymentID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
}
