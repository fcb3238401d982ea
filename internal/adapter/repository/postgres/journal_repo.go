package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finarc/fintxn/internal/domain"
)

// JournalRepository implements usecase.JournalRepository. Every method is a
// single statement; the posting service owns cross-statement consistency.
type JournalRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// InsertEntry inserts the entry header only; lines are inserted separately.
func (r *JournalRepository) InsertEntry(ctx context.Context, entry *domain.JournalEntry) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO journal_entries
				(id, tenant_id, branch_id, cost_center_id, warehouse_id, acting_user_id,
				 posting_date, description, reference_type, reference_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			entry.ID,
			entry.Scope.TenantID,
			entry.Scope.BranchID,
			entry.Scope.CostCenterID,
			entry.Scope.WarehouseID,
			entry.Scope.ActingUserID,
			timeToPgTimestamptz(entry.PostingDate),
			entry.Description,
			entry.ReferenceType,
			entry.ReferenceID,
			timeToPgTimestamptz(entry.CreatedAt),
		)

		return err
	})
}

// InsertLine inserts one journal entry line.
func (r *JournalRepository) InsertLine(ctx context.Context, line *domain.JournalEntryLine) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO journal_entry_lines
				(id, entry_id, account_id, debit, credit, currency,
				 original_currency, original_amount, exchange_rate, rate_provenance, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			line.ID,
			line.EntryID,
			line.AccountID,
			decimalToNumeric(line.Debit),
			decimalToNumeric(line.Credit),
			line.Currency,
			line.OriginalCurrency,
			decimalToNumeric(line.OriginalAmount),
			decimalToNumeric(line.ExchangeRate),
			string(line.RateProvenance),
			timeToPgTimestamptz(line.CreatedAt),
		)

		return err
	})
}

// GetEntry retrieves a journal entry header with its lines.
func (r *JournalRepository) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	var (
		entry       domain.JournalEntry
		postingDate pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, branch_id, cost_center_id, warehouse_id, acting_user_id,
		       posting_date, description, reference_type, reference_id, created_at
		FROM journal_entries WHERE id = $1`, id).
		Scan(
			&entry.ID,
			&entry.Scope.TenantID,
			&entry.Scope.BranchID,
			&entry.Scope.CostCenterID,
			&entry.Scope.WarehouseID,
			&entry.Scope.ActingUserID,
			&postingDate,
			&entry.Description,
			&entry.ReferenceType,
			&entry.ReferenceID,
			&createdAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	entry.PostingDate = postingDate.Time
	entry.CreatedAt = createdAt.Time

	entry.Lines, err = r.GetLines(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// GetLines retrieves the persisted lines of an entry, in insertion order.
func (r *JournalRepository) GetLines(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, entry_id, account_id, debit, credit, currency,
		       original_currency, original_amount, exchange_rate, rate_provenance, created_at
		FROM journal_entry_lines WHERE entry_id = $1 ORDER BY id`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.JournalEntryLine
	for rows.Next() {
		var (
			line       domain.JournalEntryLine
			debit      pgtype.Numeric
			credit     pgtype.Numeric
			original   pgtype.Numeric
			rate       pgtype.Numeric
			provenance string
			createdAt  pgtype.Timestamptz
		)

		if err := rows.Scan(
			&line.ID,
			&line.EntryID,
			&line.AccountID,
			&debit,
			&credit,
			&line.Currency,
			&line.OriginalCurrency,
			&original,
			&rate,
			&provenance,
			&createdAt,
		); err != nil {
			return nil, err
		}

		line.Debit = numericToDecimal(debit)
		line.Credit = numericToDecimal(credit)
		line.OriginalAmount = numericToDecimal(original)
		line.ExchangeRate = numericToDecimal(rate)
		line.RateProvenance = domain.RateProvenance(provenance)
		line.CreatedAt = createdAt.Time

		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// DeleteLines removes all lines of an entry. Part of compensating rollback.
func (r *JournalRepository) DeleteLines(ctx context.Context, entryID string) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1`, entryID)
		return err
	})
}

// DeleteEntry removes the entry header. Part of compensating rollback.
func (r *JournalRepository) DeleteEntry(ctx context.Context, id string) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1`, id)
		return err
	})
}
