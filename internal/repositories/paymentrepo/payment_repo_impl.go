package paymentrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sqlc-dev/pqtype"

	"github.com/compile-and-cry/GlobePay/internal/domain"
	"github.com/compile-and-cry/GlobePay/internal/infrastructure/database"
)

type paymentRepositoryImpl struct {
	db     *sql.DB
	logger zerolog.Logger
}

func New(db *database.DBManager, logger zerolog.Logger) IPaymentRepository {
	return &paymentRepositoryImpl{
		db:     db.Db,
		logger: logger,
	}
}

func (r *paymentRepositoryImpl) Insert(ctx context.Context, payment *domain.Payment) error {
	reasons, err := marshalReasons(payment.RiskReasons)
	if err != nil {
		r.logger.Error().Err(err).Str("payment_id", payment.ID.String()).Msg("Failed to encode risk reasons")
		return fmt.Errorf("failed to encode risk reasons: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO payments (
			id, payer_name, upi_id, amount_inr, note, status,
			source_currency, source_amount, rate_to_inr, rate_timestamp,
			fee_transfer_inr, fee_platform_inr, fee_src_total, total_inr, total_src,
			risk_score, risk_label, risk_reasons
		) VALUES (
			$1,$2,$3,$4,$5,'pending',$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17
		)`,
		payment.ID,
		payment.PayerName,
		payment.UpiID,
		payment.AmountINR,
		sql.NullString{String: payment.Note, Valid: payment.Note != ""},
		payment.SourceCurrency,
		payment.SourceAmount,
		nullFloat(payment.RateToINR),
		nullTime(payment.RateTimestamp),
		payment.FeeTransferINR,
		payment.FeePlatformINR,
		payment.FeeSrcTotal,
		payment.TotalINR,
		payment.TotalSrc,
		payment.RiskScore,
		payment.RiskLabel,
		reasons,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("payment_id", payment.ID.String()).Msg("Failed to insert payment")
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// MarkSuccess is a plain status update; re-applying it to an already
// successful payment is a no-op.
func (r *paymentRepositoryImpl) MarkSuccess(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE payments SET status = 'success' WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("payment_id", id.String()).Msg("Failed to mark payment successful")
		return fmt.Errorf("failed to mark payment successful: %w", err)
	}
	return nil
}

func (r *paymentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, payer_name, upi_id, amount_inr, note, status,
			source_currency, source_amount, rate_to_inr, rate_timestamp,
			fee_transfer_inr, fee_platform_inr, fee_src_total, total_inr, total_src,
			risk_score, risk_label, risk_reasons, created_at
		FROM payments WHERE id = $1`, id)

	var (
		payment domain.Payment
		note    sql.NullString
		rate    sql.NullFloat64
		rateTs  sql.NullTime
		reasons pqtype.NullRawMessage
		status  string
	)

	err := row.Scan(
		&payment.ID,
		&payment.PayerName,
		&payment.UpiID,
		&payment.AmountINR,
		&note,
		&status,
		&payment.SourceCurrency,
		&payment.SourceAmount,
		&rate,
		&rateTs,
		&payment.FeeTransferINR,
		&payment.FeePlatformINR,
		&payment.FeeSrcTotal,
		&payment.TotalINR,
		&payment.TotalSrc,
		&payment.RiskScore,
		&payment.RiskLabel,
		&reasons,
		&payment.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("payment_id", id.String()).Msg("Failed to get payment by ID")
		return nil, fmt.Errorf("failed to get payment by ID: %w", err)
	}

	payment.Status = domain.PaymentStatus(status)
	payment.Note = note.String
	if rate.Valid {
		payment.RateToINR = &rate.Float64
	}
	if rateTs.Valid {
		ts := rateTs.Time
		payment.RateTimestamp = &ts
	}
	if reasons.Valid {
		if err := json.Unmarshal(reasons.RawMessage, &payment.RiskReasons); err != nil {
			r.logger.Error().Err(err).Str("payment_id", id.String()).Msg("Failed to decode risk reasons")
			return nil, fmt.Errorf("failed to decode risk reasons: %w", err)
		}
	}

	return &payment, nil
}

func marshalReasons(reasons []string) (pqtype.NullRawMessage, error) {
	if reasons == nil {
		reasons = []string{}
	}
	raw, err := json.Marshal(reasons)
	if err != nil {
		return pqtype.NullRawMessage{}, err
	}
	return pqtype.NullRawMessage{RawMessage: raw, Valid: true}, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}
