package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the largest tolerated difference between total debits
// and total credits: one minor currency unit.
var BalanceEpsilon = decimal.NewFromFloat(0.01)

// JournalEntry is a balanced set of debit/credit lines recorded as one unit.
type JournalEntry struct {
	ID            string
	Scope         GovernanceContext
	PostingDate   time.Time
	Description   string
	ReferenceType string
	ReferenceID   string
	Lines         []JournalEntryLine
	CreatedAt     time.Time
}

// JournalEntryLine is a single debit or credit against one account. Exactly
// one of Debit/Credit is non-zero; the other side is zero by convention.
// Original* fields are only set for lines that were converted from a
// non-base currency and exist for traceability, never for balancing.
type JournalEntryLine struct {
	ID               string
	EntryID          string
	AccountID        string
	Debit            decimal.Decimal
	Credit           decimal.Decimal
	Currency         string
	OriginalCurrency string
	OriginalAmount   decimal.Decimal
	ExchangeRate     decimal.Decimal
	RateProvenance   RateProvenance
	CreatedAt        time.Time
}

// Validate checks the single-sided convention for a line.
func (l JournalEntryLine) Validate() error {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return ErrNegativeLineAmount
	}

	if !l.Debit.IsZero() && !l.Credit.IsZero() {
		return ErrBothSidesSet
	}

	return nil
}

// SumDebitsCredits totals the two sides of a set of lines.
func SumDebitsCredits(lines []JournalEntryLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero

	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}

	return debits, credits
}

// CheckBalanced verifies the double-entry invariant over lines, within one
// minor unit.
func CheckBalanced(lines []JournalEntryLine) error {
	if len(lines) == 0 {
		return ErrEmptyEntry
	}

	debits, credits := SumDebitsCredits(lines)
	if debits.Sub(credits).Abs().GreaterThan(BalanceEpsilon) {
		return fmt.Errorf("%w: debits=%s credits=%s", ErrUnbalancedEntry, debits, credits)
	}

	return nil
}

// PostingErrorKind classifies how a posting attempt failed.
type PostingErrorKind string

const (
	PostingUnbalanced  PostingErrorKind = "unbalanced"
	PostingWriteFailed PostingErrorKind = "write_failed"
)

// PostingError reports a failed posting attempt. When Kind is
// PostingWriteFailed every row written by the attempt has already been
// compensated before the error surfaces.
type PostingError struct {
	Kind PostingErrorKind
	Err  error
}

func (e *PostingError) Error() string {
	return fmt.Sprintf("ledger posting failed (%s): %v", e.Kind, e.Err)
}

func (e *PostingError) Unwrap() error {
	return e.Err
}
