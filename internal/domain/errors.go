package domain

import "errors"

var (
	// Money errors
	ErrCurrencyMismatch      = errors.New("cannot combine amounts in different currencies")
	ErrInvalidExchangeRate   = errors.New("exchange rate must be positive")
	ErrMissingRateProvenance = errors.New("currency conversion requires a rate provenance")
	ErrRateNotFound          = errors.New("no stored exchange rate for currency pair")

	// Journal errors
	ErrEmptyEntry         = errors.New("journal entry must have at least one line")
	ErrUnbalancedEntry    = errors.New("journal entry debits do not equal credits")
	ErrBothSidesSet       = errors.New("journal line cannot carry both a debit and a credit")
	ErrEntryNotFound      = errors.New("journal entry not found")
	ErrNegativeLineAmount = errors.New("journal line amounts must not be negative")

	// Distribution errors
	ErrInvalidAmount                = errors.New("amount must be positive")
	ErrInvalidPercentageTotal       = errors.New("recipient percentages must total 100")
	ErrInsufficientRetainedEarnings = errors.New("distribution exceeds available retained earnings")
	ErrNoRecipients                 = errors.New("distribution requires at least one recipient")
	ErrDistributionNotFound         = errors.New("distribution not found")
	ErrLineNotFound                 = errors.New("distribution line not found")

	// Payment errors
	ErrExceedsRemaining  = errors.New("payment exceeds remaining share balance")
	ErrMissingReference  = errors.New("reference number is required for non-cash payments")
	ErrLineAlreadyPaid   = errors.New("distribution line is already fully paid")
	ErrInvalidMethod     = errors.New("unknown payment method")
	ErrConcurrentPayment = errors.New("distribution line was modified by a concurrent payment")
	ErrPaymentNotFound   = errors.New("payment record not found")
)
