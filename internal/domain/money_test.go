package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyArithmetic(t *testing.T) {
	t.Parallel()

	usd := NewMoney(decimal.NewFromInt(100), "USD")
	eur := NewMoney(decimal.NewFromInt(50), "EUR")

	t.Run("same currency add", func(t *testing.T) {
		got, err := usd.Add(NewMoney(decimal.NewFromInt(25), "USD"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !got.Amount.Equal(decimal.NewFromInt(125)) {
			t.Fatalf("expected 125, got %s", got.Amount)
		}
	})

	t.Run("cross currency add rejected", func(t *testing.T) {
		if _, err := usd.Add(eur); !errors.Is(err, ErrCurrencyMismatch) {
			t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
		}
	})

	t.Run("cross currency sub rejected", func(t *testing.T) {
		if _, err := usd.Sub(eur); !errors.Is(err, ErrCurrencyMismatch) {
			t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
		}
	})
}

func TestMoneyConvert(t *testing.T) {
	t.Parallel()

	eur := NewMoney(decimal.NewFromInt(100), "EUR")

	t.Run("converts at a tagged rate", func(t *testing.T) {
		got, err := eur.Convert("USD", decimal.NewFromFloat(1.085), RateProvenanceMarketAPI)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got.Currency != "USD" {
			t.Fatalf("expected USD, got %s", got.Currency)
		}

		if !got.Amount.Equal(decimal.NewFromFloat(108.50)) {
			t.Fatalf("expected 108.50, got %s", got.Amount)
		}
	})

	t.Run("zero rate rejected", func(t *testing.T) {
		if _, err := eur.Convert("USD", decimal.Zero, RateProvenanceManual); !errors.Is(err, ErrInvalidExchangeRate) {
			t.Fatalf("expected ErrInvalidExchangeRate, got %v", err)
		}
	})

	t.Run("provenance required", func(t *testing.T) {
		if _, err := eur.Convert("USD", decimal.NewFromInt(1), ""); !errors.Is(err, ErrMissingRateProvenance) {
			t.Fatalf("expected ErrMissingRateProvenance, got %v", err)
		}
	})
}

func TestValidateReference(t *testing.T) {
	t.Parallel()

	if err := ValidateReference(PaymentCash, ""); err != nil {
		t.Fatalf("cash without reference should pass, got %v", err)
	}

	if err := ValidateReference(PaymentBankTransfer, ""); !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference, got %v", err)
	}

	if err := ValidateReference(PaymentCheck, "CHK-100"); err != nil {
		t.Fatalf("check with reference should pass, got %v", err)
	}

	if err := ValidateReference("wire", "X"); !errors.Is(err, ErrInvalidMethod) {
		t.Fatalf("expected ErrInvalidMethod, got %v", err)
	}
}
