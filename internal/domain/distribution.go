package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DistributionStatus is the payment state of a distribution line. It is
// derived from paid vs share amounts, never set directly.
type DistributionStatus string

const (
	DistributionPending       DistributionStatus = "pending"
	DistributionPartiallyPaid DistributionStatus = "partially_paid"
	DistributionPaid          DistributionStatus = "paid"
)

// percentTolerance is how far the recipient percentages may drift from 100
// before the distribution is refused.
var percentTolerance = decimal.NewFromFloat(0.01)

// DistributionHeader records one profit or dividend distribution. Created
// once and immutable thereafter except for audit linkage.
type DistributionHeader struct {
	ID             string
	Scope          GovernanceContext
	TotalAmount    decimal.Decimal
	Currency       string
	Date           time.Time
	FiscalYear     int
	JournalEntryID string
	CreatedAt      time.Time
}

// DistributionLine is one recipient's share of a distribution.
type DistributionLine struct {
	ID          string
	HeaderID    string
	RecipientID string
	ShareAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	Status      DistributionStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Remaining returns the unpaid part of the share.
func (l DistributionLine) Remaining() decimal.Decimal {
	return l.ShareAmount.Sub(l.PaidAmount)
}

// DeriveStatus computes the line status from the paid amount.
func DeriveStatus(shareAmount, paidAmount decimal.Decimal) DistributionStatus {
	switch {
	case paidAmount.GreaterThanOrEqual(shareAmount):
		return DistributionPaid
	case paidAmount.IsPositive():
		return DistributionPartiallyPaid
	default:
		return DistributionPending
	}
}

// Recipient is a distribution target with its ownership percentage.
type Recipient struct {
	ID         string
	Percentage decimal.Decimal
}

// ValidatePercentages checks that recipient percentages total 100 within
// tolerance. A partial-ownership table cannot be distributed fairly.
func ValidatePercentages(recipients []Recipient) error {
	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	total := decimal.Zero
	for _, r := range recipients {
		total = total.Add(r.Percentage)
	}

	if total.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(percentTolerance) {
		return fmt.Errorf("%w: got %s", ErrInvalidPercentageTotal, total)
	}

	return nil
}

// ComputeShares rounds each recipient's share to two fractional digits and
// assigns the rounding residue to the first recipient, so the shares always
// sum to total exactly. Recipients must already be validated.
func ComputeShares(total decimal.Decimal, recipients []Recipient) []decimal.Decimal {
	hundred := decimal.NewFromInt(100)

	shares := make([]decimal.Decimal, len(recipients))
	sum := decimal.Zero

	for i, r := range recipients {
		shares[i] = total.Mul(r.Percentage).Div(hundred).Round(2)
		sum = sum.Add(shares[i])
	}

	residue := total.Sub(sum)
	if !residue.IsZero() && len(shares) > 0 {
		shares[0] = shares[0].Add(residue)

		// Many tiny percentages all rounding up can leave a residue larger
		// than the first share. Spill the deficit forward so no share goes
		// negative while the sum stays exact.
		for i := 1; i < len(shares) && shares[0].IsNegative(); i++ {
			take := decimal.Min(shares[i], shares[0].Neg())
			shares[i] = shares[i].Sub(take)
			shares[0] = shares[0].Add(take)
		}
	}

	return shares
}
