package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateProvenance tags where an exchange rate came from.
type RateProvenance string

const (
	RateProvenanceManual    RateProvenance = "manual"
	RateProvenanceMarketAPI RateProvenance = "market-api"
	RateProvenanceStored    RateProvenance = "stored-rate"
)

// Money is a fixed-point amount in a single currency. Arithmetic between
// different currencies is forbidden without an explicit conversion carrying
// a rate and its provenance.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// NewMoney constructs a Money value.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// Add returns m + other, or ErrCurrencyMismatch when currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}

	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub returns m - other, or ErrCurrencyMismatch when currencies differ.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}

	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

// Convert converts m into targetCurrency at the given rate, rounded to two
// fractional digits. The rate and provenance travel with the journal line,
// not with the Money value.
func (m Money) Convert(targetCurrency string, rate decimal.Decimal, provenance RateProvenance) (Money, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return Money{}, fmt.Errorf("%w: rate %s", ErrInvalidExchangeRate, rate)
	}

	if provenance == "" {
		return Money{}, ErrMissingRateProvenance
	}

	return Money{
		Amount:   m.Amount.Mul(rate).Round(2),
		Currency: targetCurrency,
	}, nil
}
