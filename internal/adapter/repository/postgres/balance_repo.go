package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finarc/fintxn/internal/domain"
)

// BalanceQuery implements usecase.BalanceQuery by summing posted journal
// lines of the account behind a role, honoring its normal balance side.
type BalanceQuery struct {
	pool         *pgxpool.Pool
	directory    *AccountDirectory
	baseCurrency string
}

// NewBalanceQuery creates a new BalanceQuery.
func NewBalanceQuery(pool *pgxpool.Pool, directory *AccountDirectory, baseCurrency string) *BalanceQuery {
	return &BalanceQuery{
		pool:         pool,
		directory:    directory,
		baseCurrency: baseCurrency,
	}
}

// AvailableBalance computes the account's current balance from its posted
// lines within the tenant scope. Credit-normal accounts report
// credits-minus-debits, debit-normal the reverse.
func (q *BalanceQuery) AvailableBalance(ctx context.Context, scope domain.GovernanceContext, role domain.AccountRole) (domain.Money, error) {
	account, err := q.directory.Resolve(ctx, scope, role)
	if err != nil {
		return domain.Money{}, err
	}

	var debits, credits pgtype.Numeric

	err = q.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE l.account_id = $1 AND e.tenant_id = $2`,
		account.ID, scope.TenantID).
		Scan(&debits, &credits)
	if err != nil {
		return domain.Money{}, err
	}

	balance := numericToDecimal(credits).Sub(numericToDecimal(debits))
	if account.NormalBalance == domain.NormalBalanceDebit {
		balance = balance.Neg()
	}

	return domain.NewMoney(balance, q.baseCurrency), nil
}
