package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// ExchangeRate is a persisted currency pair rate, refreshed from external sources.
type ExchangeRate struct {
	ID           int64
	FromCurrency string
	ToCurrency   string
	Rate         float64
	UpdatedAt    time.Time
}

// UpsertRate stores the latest rate for a currency pair, replacing any previous value.
func (s *Store) UpsertRate(ctx context.Context, from, to string, rate float64) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO exchange_rates (from_currency, to_currency, rate, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (from_currency, to_currency) DO UPDATE SET
			rate = EXCLUDED.rate, updated_at = now()`,
		from, to, rate)
	return err
}

// GetRate fetches the stored rate for a currency pair. Returns ErrNotFound when the
// pair has never been refreshed.
func (s *Store) GetRate(ctx context.Context, from, to string) (ExchangeRate, error) {
	var r ExchangeRate
	err := s.pool.QueryRow(ctx, `
		SELECT id, from_currency, to_currency, rate, updated_at
		FROM exchange_rates WHERE from_currency = $1 AND to_currency = $2`,
		from, to).
		Scan(&r.ID, &r.FromCurrency, &r.ToCurrency, &r.Rate, &r.UpdatedAt)
	if err == pgx.ErrNoRows {
		return ExchangeRate{}, ErrNotFound
	}
	return r, err
}
