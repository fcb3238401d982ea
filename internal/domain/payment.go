package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a distribution payment was settled.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheck        PaymentMethod = "check"
)

// ValidMethod reports whether m is a known payment method.
func ValidMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentBankTransfer, PaymentCheck:
		return true
	}

	return false
}

// PaymentRecord is one installment paid against a distribution line,
// linked to the journal entry that settled it.
type PaymentRecord struct {
	ID              string
	LineID          string
	Amount          decimal.Decimal
	Date            time.Time
	Method          PaymentMethod
	ReferenceNumber string
	JournalEntryID  string
	CreatedAt       time.Time
}

// ValidateReference enforces that non-cash methods carry an external
// reference number.
func ValidateReference(method PaymentMethod, referenceNumber string) error {
	if !ValidMethod(method) {
		return ErrInvalidMethod
	}

	if method != PaymentCash && referenceNumber == "" {
		return ErrMissingReference
	}

	return nil
}
