package fxraterepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/compile-and-cry/GlobePay/internal/domain"
	"github.com/compile-and-cry/GlobePay/internal/infrastructure/database"
)

type fxRateRepositoryImpl struct {
	db     *sql.DB
	logger zerolog.Logger
}

func New(db *database.DBManager, logger zerolog.Logger) IFxRateRepository {
	return &fxRateRepositoryImpl{
		db:     db.Db,
		logger: logger,
	}
}

func (r *fxRateRepositoryImpl) Insert(ctx context.Context, rate *domain.FxRate) error {
	fetchedAt := sql.NullTime{}
	if rate.FetchedAt != nil {
		fetchedAt = sql.NullTime{Time: *rate.FetchedAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO fx_rates (id, base_currency, quote_currency, rate, provider, fetched_at)
		VALUES ($1,$2,$3,$4,$5, COALESCE($6, now()))`,
		rate.ID,
		rate.BaseCurrency,
		rate.QuoteCurrency,
		rate.Rate,
		rate.Provider,
		fetchedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("base", rate.BaseCurrency).
			Str("quote", rate.QuoteCurrency).
			Msg("Failed to insert fx rate")
		return fmt.Errorf("failed to insert fx rate: %w", err)
	}

	return nil
}
