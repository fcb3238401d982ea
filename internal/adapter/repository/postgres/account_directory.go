package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finarc/fintxn/internal/domain"
)

// AccountDirectory implements usecase.AccountDirectory against the
// per-tenant account_role_map table. A role without a mapping is a hard
// failure; the directory never scans account names for a plausible match.
type AccountDirectory struct {
	pool *pgxpool.Pool
}

// NewAccountDirectory creates a new AccountDirectory.
func NewAccountDirectory(pool *pgxpool.Pool) *AccountDirectory {
	return &AccountDirectory{pool: pool}
}

// Resolve maps a logical role to the tenant's configured ledger account.
func (d *AccountDirectory) Resolve(ctx context.Context, scope domain.GovernanceContext, role domain.AccountRole) (*domain.Account, error) {
	var (
		account domain.Account
		normal  string
	)

	err := d.pool.QueryRow(ctx, `
		SELECT a.id, a.code, a.name, a.normal_balance, a.tenant_id
		FROM account_role_map m
		JOIN accounts a ON a.id = m.account_id
		WHERE m.tenant_id = $1 AND m.role = $2`,
		scope.TenantID, string(role)).
		Scan(&account.ID, &account.Code, &account.Name, &normal, &account.TenantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.RoleNotMappedError{Role: role, TenantID: scope.TenantID}
		}

		return nil, err
	}

	account.NormalBalance = domain.NormalBalance(normal)

	return &account, nil
}
