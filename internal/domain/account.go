package domain

import "fmt"

// NormalBalance is the side an account naturally carries its balance on.
type NormalBalance string

const (
	NormalBalanceDebit  NormalBalance = "debit"
	NormalBalanceCredit NormalBalance = "credit"
)

// AccountRole is a logical role in a tenant's chart of accounts. The engine
// never selects accounts by name heuristics; a role either resolves through
// the directory or the operation fails.
type AccountRole string

const (
	RoleRetainedEarnings AccountRole = "retained_earnings"
	RoleDividendsPayable AccountRole = "dividends_payable"
	RoleCash             AccountRole = "cash"
	RoleBank             AccountRole = "bank"
)

// Account is a ledger account within a tenant's chart of accounts. Owned by
// the account directory; read-only to this engine.
type Account struct {
	ID            string
	Code          string
	Name          string
	NormalBalance NormalBalance
	TenantID      string
}

// RoleNotMappedError is returned when a role has no account mapped for the
// requesting scope. The engine fails loudly rather than substituting a
// guessed account.
type RoleNotMappedError struct {
	Role     AccountRole
	TenantID string
}

func (e *RoleNotMappedError) Error() string {
	return fmt.Sprintf("account role %q is not mapped for tenant %s", e.Role, e.TenantID)
}
