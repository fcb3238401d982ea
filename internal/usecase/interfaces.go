package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finarc/fintxn/internal/domain"
)

// JournalRepository defines data access for journal entries. The store
// exposes independent single-statement operations only; atomicity across
// header and lines is emulated by the posting service with compensating
// deletes.
type JournalRepository interface {
	InsertEntry(ctx context.Context, entry *domain.JournalEntry) error
	InsertLine(ctx context.Context, line *domain.JournalEntryLine) error
	GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error)
	GetLines(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)
	DeleteLines(ctx context.Context, entryID string) error
	DeleteEntry(ctx context.Context, id string) error
}

// DistributionRepository defines data access for distribution headers and
// lines.
type DistributionRepository interface {
	InsertHeader(ctx context.Context, header *domain.DistributionHeader) error
	InsertLine(ctx context.Context, line *domain.DistributionLine) error
	GetHeader(ctx context.Context, scope domain.GovernanceContext, id string) (*domain.DistributionHeader, error)
	GetLine(ctx context.Context, scope domain.GovernanceContext, id string) (*domain.DistributionLine, error)
	ListLines(ctx context.Context, headerID string) ([]*domain.DistributionLine, error)
	SetJournalEntry(ctx context.Context, headerID, entryID string) error
	// UpdateLinePayment applies a paid-amount/status change only when the
	// line's current paid amount still equals expectedPaid. Returns
	// domain.ErrConcurrentPayment when the compare fails.
	UpdateLinePayment(ctx context.Context, lineID string, paid decimal.Decimal, status domain.DistributionStatus, expectedPaid decimal.Decimal, updatedAt time.Time) error
	DeleteLines(ctx context.Context, headerID string) error
	DeleteHeader(ctx context.Context, id string) error
}

// PaymentRepository defines data access for payment records.
type PaymentRepository interface {
	Insert(ctx context.Context, record *domain.PaymentRecord) error
	Delete(ctx context.Context, id string) error
	ListByLine(ctx context.Context, lineID string) ([]*domain.PaymentRecord, error)
}

// AccountDirectory resolves a logical account role to a concrete ledger
// account within the scope's tenant. Unmapped roles fail with
// *domain.RoleNotMappedError; the engine never guesses an account.
type AccountDirectory interface {
	Resolve(ctx context.Context, scope domain.GovernanceContext, role domain.AccountRole) (*domain.Account, error)
}

// BalanceQuery answers the available balance of the account behind a role.
type BalanceQuery interface {
	AvailableBalance(ctx context.Context, scope domain.GovernanceContext, role domain.AccountRole) (domain.Money, error)
}

// RateLookup supplies an exchange rate and its provenance for a currency
// pair. Rate discovery itself lives outside this engine.
type RateLookup interface {
	GetRate(ctx context.Context, from, to string) (decimal.Decimal, domain.RateProvenance, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
