package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finarc/fintxn/internal/domain"
)

// StoredRateLookup implements usecase.RateLookup against the exchange_rates
// table. Rate discovery happens outside the engine; this lookup only reads
// what has been stored, so every rate it returns carries the stored-rate
// provenance.
type StoredRateLookup struct {
	pool *pgxpool.Pool
}

// NewStoredRateLookup creates a new StoredRateLookup.
func NewStoredRateLookup(pool *pgxpool.Pool) *StoredRateLookup {
	return &StoredRateLookup{pool: pool}
}

// GetRate returns the stored rate for a currency pair.
func (l *StoredRateLookup) GetRate(ctx context.Context, from, to string) (decimal.Decimal, domain.RateProvenance, error) {
	var rate pgtype.Numeric

	err := l.pool.QueryRow(ctx, `
		SELECT rate FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2`,
		from, to).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, "", fmt.Errorf("%w: %s/%s", domain.ErrRateNotFound, from, to)
		}

		return decimal.Zero, "", err
	}

	return numericToDecimal(rate), domain.RateProvenanceStored, nil
}
