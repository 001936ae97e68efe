package sessionrepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/compile-and-cry/GlobePay/internal/domain"
	"github.com/compile-and-cry/GlobePay/internal/infrastructure/database"
)

type sessionRepositoryImpl struct {
	db     *sql.DB
	logger zerolog.Logger
}

func New(db *database.DBManager, logger zerolog.Logger) ISessionRepository {
	return &sessionRepositoryImpl{
		db:     db.Db,
		logger: logger,
	}
}

func (r *sessionRepositoryImpl) Create(ctx context.Context) (uuid.UUID, error) {
	id := uuid.New()

	_, err := r.db.ExecContext(ctx, `INSERT INTO sessions (id) VALUES ($1)`, id)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to create session")
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

func (r *sessionRepositoryImpl) SetStatus(ctx context.Context, id uuid.UUID, status domain.SessionStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sessions SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", id.String()).Str("status", string(status)).Msg("Failed to update session status")
		return fmt.Errorf("failed to update session status: %w", err)
	}
	return nil
}

func (r *sessionRepositoryImpl) AttachPayment(ctx context.Context, id, paymentID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sessions SET payment_id = $2 WHERE id = $1`, id, paymentID)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", id.String()).Str("payment_id", paymentID.String()).Msg("Failed to attach payment to session")
		return fmt.Errorf("failed to attach payment to session: %w", err)
	}
	return nil
}

func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, status, payment_id, created_at FROM sessions WHERE id = $1`, id)

	var (
		session   domain.Session
		status    string
		paymentID uuid.NullUUID
	)

	if err := row.Scan(&session.ID, &status, &paymentID, &session.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("session_id", id.String()).Msg("Failed to get session")
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Status = domain.SessionStatus(status)
	if paymentID.Valid {
		session.PaymentID = &paymentID.UUID
	}

	return &session, nil
}
