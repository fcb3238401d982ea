package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finarc/fintxn/internal/domain"
)

// DistributionRepository implements usecase.DistributionRepository.
// Scoped reads always filter on the full governance scope; there is no
// NULL-scope fallback.
type DistributionRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewDistributionRepository creates a new DistributionRepository.
func NewDistributionRepository(pool *pgxpool.Pool) *DistributionRepository {
	return &DistributionRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// InsertHeader inserts a distribution header.
func (r *DistributionRepository) InsertHeader(ctx context.Context, header *domain.DistributionHeader) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO distribution_headers
				(id, tenant_id, branch_id, cost_center_id, warehouse_id, acting_user_id,
				 total_amount, currency, distribution_date, fiscal_year, journal_entry_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			header.ID,
			header.Scope.TenantID,
			header.Scope.BranchID,
			header.Scope.CostCenterID,
			header.Scope.WarehouseID,
			header.Scope.ActingUserID,
			decimalToNumeric(header.TotalAmount),
			header.Currency,
			timeToPgTimestamptz(header.Date),
			header.FiscalYear,
			header.JournalEntryID,
			timeToPgTimestamptz(header.CreatedAt),
		)

		return err
	})
}

// InsertLine inserts one distribution line.
func (r *DistributionRepository) InsertLine(ctx context.Context, line *domain.DistributionLine) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO distribution_lines
				(id, header_id, recipient_id, share_amount, paid_amount, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			line.ID,
			line.HeaderID,
			line.RecipientID,
			decimalToNumeric(line.ShareAmount),
			decimalToNumeric(line.PaidAmount),
			string(line.Status),
			timeToPgTimestamptz(line.CreatedAt),
			timeToPgTimestamptz(line.UpdatedAt),
		)

		return err
	})
}

// GetHeader retrieves a header by id within a governance scope.
func (r *DistributionRepository) GetHeader(ctx context.Context, scope domain.GovernanceContext, id string) (*domain.DistributionHeader, error) {
	var (
		header    domain.DistributionHeader
		total     pgtype.Numeric
		date      pgtype.Timestamptz
		createdAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, branch_id, cost_center_id, warehouse_id, acting_user_id,
		       total_amount, currency, distribution_date, fiscal_year, journal_entry_id, created_at
		FROM distribution_headers
		WHERE id = $1 AND tenant_id = $2 AND branch_id = $3 AND cost_center_id = $4`,
		id, scope.TenantID, scope.BranchID, scope.CostCenterID).
		Scan(
			&header.ID,
			&header.Scope.TenantID,
			&header.Scope.BranchID,
			&header.Scope.CostCenterID,
			&header.Scope.WarehouseID,
			&header.Scope.ActingUserID,
			&total,
			&header.Currency,
			&date,
			&header.FiscalYear,
			&header.JournalEntryID,
			&createdAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDistributionNotFound
		}

		return nil, err
	}

	header.TotalAmount = numericToDecimal(total)
	header.Date = date.Time
	header.CreatedAt = createdAt.Time

	return &header, nil
}

// GetLine retrieves a line by id, scoped through its header.
func (r *DistributionRepository) GetLine(ctx context.Context, scope domain.GovernanceContext, id string) (*domain.DistributionLine, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT l.id, l.header_id, l.recipient_id, l.share_amount, l.paid_amount, l.status, l.created_at, l.updated_at
		FROM distribution_lines l
		JOIN distribution_headers h ON h.id = l.header_id
		WHERE l.id = $1 AND h.tenant_id = $2 AND h.branch_id = $3 AND h.cost_center_id = $4`,
		id, scope.TenantID, scope.BranchID, scope.CostCenterID)

	line, err := scanLine(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLineNotFound
		}

		return nil, err
	}

	return line, nil
}

// ListLines retrieves all lines of a header in insertion order.
func (r *DistributionRepository) ListLines(ctx context.Context, headerID string) ([]*domain.DistributionLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, header_id, recipient_id, share_amount, paid_amount, status, created_at, updated_at
		FROM distribution_lines WHERE header_id = $1 ORDER BY id`, headerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*domain.DistributionLine
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// SetJournalEntry links the equity posting to the header (audit linkage,
// the only mutation a header allows).
func (r *DistributionRepository) SetJournalEntry(ctx context.Context, headerID, entryID string) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx,
			`UPDATE distribution_headers SET journal_entry_id = $2 WHERE id = $1`,
			headerID, entryID)

		return err
	})
}

// UpdateLinePayment applies a payment to a line only when paid_amount still
// equals expectedPaid. A zero-row update means a concurrent payment won the
// race.
func (r *DistributionRepository) UpdateLinePayment(
	ctx context.Context,
	lineID string,
	paid decimal.Decimal,
	status domain.DistributionStatus,
	expectedPaid decimal.Decimal,
	updatedAt time.Time,
) error {
	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, `
			UPDATE distribution_lines
			SET paid_amount = $2, status = $3, updated_at = $4
			WHERE id = $1 AND paid_amount = $5`,
			lineID,
			decimalToNumeric(paid),
			string(status),
			timeToPgTimestamptz(updatedAt),
			decimalToNumeric(expectedPaid),
		)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrConcurrentPayment
		}

		return nil
	})
}

// DeleteLines removes all lines of a header. Part of compensating rollback.
func (r *DistributionRepository) DeleteLines(ctx context.Context, headerID string) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM distribution_lines WHERE header_id = $1`, headerID)
		return err
	})
}

// DeleteHeader removes a header. Part of compensating rollback.
func (r *DistributionRepository) DeleteHeader(ctx context.Context, id string) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM distribution_headers WHERE id = $1`, id)
		return err
	})
}

func scanLine(row pgx.Row) (*domain.DistributionLine, error) {
	var (
		line      domain.DistributionLine
		share     pgtype.Numeric
		paid      pgtype.Numeric
		status    string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	if err := row.Scan(
		&line.ID,
		&line.HeaderID,
		&line.RecipientID,
		&share,
		&paid,
		&status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	line.ShareAmount = numericToDecimal(share)
	line.PaidAmount = numericToDecimal(paid)
	line.Status = domain.DistributionStatus(status)
	line.CreatedAt = createdAt.Time
	line.UpdatedAt = updatedAt.Time

	return &line, nil
}
