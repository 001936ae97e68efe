package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusCreated    SessionStatus = "created"
	SessionStatusProcessing SessionStatus = "processing"
	SessionStatusSuccess    SessionStatus = "success"
)

// Session links a desktop QR scan to a later mobile submission. A session
// that never completes stays in processing; there is no failed or expired
// state and no expiry sweep.
type Session struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	Status    SessionStatus `json:"status" db:"status"`
	PaymentID *uuid.UUID    `json:"payment_id,omitempty" db:"payment_id"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}
