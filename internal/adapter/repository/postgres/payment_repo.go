package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finarc/fintxn/internal/domain"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// Insert inserts one payment record.
func (r *PaymentRepository) Insert(ctx context.Context, record *domain.PaymentRecord) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO payment_records
				(id, line_id, amount, payment_date, method, reference_number, journal_entry_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			record.ID,
			record.LineID,
			decimalToNumeric(record.Amount),
			timeToPgTimestamptz(record.Date),
			string(record.Method),
			record.ReferenceNumber,
			record.JournalEntryID,
			timeToPgTimestamptz(record.CreatedAt),
		)

		return err
	})
}

// Delete removes a payment record. Part of compensating rollback.
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM payment_records WHERE id = $1`, id)
		return err
	})
}

// ListByLine retrieves the payment history of a distribution line.
func (r *PaymentRepository) ListByLine(ctx context.Context, lineID string) ([]*domain.PaymentRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, line_id, amount, payment_date, method, reference_number, journal_entry_id, created_at
		FROM payment_records WHERE line_id = $1 ORDER BY created_at, id`, lineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.PaymentRecord
	for rows.Next() {
		var (
			record    domain.PaymentRecord
			amount    pgtype.Numeric
			date      pgtype.Timestamptz
			method    string
			createdAt pgtype.Timestamptz
		)

		if err := rows.Scan(
			&record.ID,
			&record.LineID,
			&amount,
			&date,
			&method,
			&record.ReferenceNumber,
			&record.JournalEntryID,
			&createdAt,
		); err != nil {
			return nil, err
		}

		record.Amount = numericToDecimal(amount)
		record.Date = date.Time
		record.Method = domain.PaymentMethod(method)
		record.CreatedAt = createdAt.Time

		records = append(records, &record)
	}

	return records, rows.Err()
}
