package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finarc/fintxn/internal/domain"
	"github.com/finarc/fintxn/internal/usecase"
	"github.com/finarc/fintxn/internal/usecase/mocks"
)

type paymentFixture struct {
	journalRepo *mocks.MockJournalRepository
	distRepo    *mocks.MockDistributionRepository
	paymentRepo *mocks.MockPaymentRepository
	svc         *usecase.PaymentService
}

func newPaymentFixture(t *testing.T, share int64) (*paymentFixture, *domain.DistributionLine) {
	t.Helper()

	journalRepo := mocks.NewMockJournalRepository()
	distRepo := mocks.NewMockDistributionRepository()
	paymentRepo := mocks.NewMockPaymentRepository()

	posting := usecase.NewPostingService(
		journalRepo,
		mocks.NewMockDirectory(),
		mocks.NewMockRates(),
		mocks.NewMockIDGenerator(),
		"USD",
		zerolog.Nop(),
		nil,
	)

	header := &domain.DistributionHeader{
		ID:          "dist-1",
		Scope:       validScope(),
		TotalAmount: decimal.NewFromInt(share),
		Currency:    "USD",
		FiscalYear:  2025,
	}
	if err := distRepo.InsertHeader(context.Background(), header); err != nil {
		t.Fatalf("seed header: %v", err)
	}

	line := &domain.DistributionLine{
		ID:          "line-1",
		HeaderID:    header.ID,
		RecipientID: "r1",
		ShareAmount: decimal.NewFromInt(share),
		PaidAmount:  decimal.Zero,
		Status:      domain.DistributionPending,
	}
	if err := distRepo.InsertLine(context.Background(), line); err != nil {
		t.Fatalf("seed line: %v", err)
	}

	return &paymentFixture{
		journalRepo: journalRepo,
		distRepo:    distRepo,
		paymentRepo: paymentRepo,
		svc:         usecase.NewPaymentService(distRepo, paymentRepo, posting, mocks.NewMockIDGenerator(), zerolog.Nop(), nil),
	}, line
}

func payInput(lineID string, amount int64) usecase.PayInput {
	return usecase.PayInput{
		LineID:          lineID,
		Amount:          decimal.NewFromInt(amount),
		Date:            time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		SettlementRole:  domain.RoleBank,
		PayableRole:     domain.RoleDividendsPayable,
		Method:          domain.PaymentBankTransfer,
		ReferenceNumber: "TRF-001",
	}
}

func TestPaymentService_Pay(t *testing.T) {
	t.Run("full payment settles the line", func(t *testing.T) {
		fx, line := newPaymentFixture(t, 100)

		record, err := fx.svc.Pay(context.Background(), validScope(), payInput(line.ID, 100))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if record.JournalEntryID == "" {
			t.Fatalf("expected payment linked to its journal entry")
		}

		updated := fx.distRepo.Line(line.ID)
		if updated.Status != domain.DistributionPaid {
			t.Fatalf("expected paid status, got %s", updated.Status)
		}

		if !updated.PaidAmount.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("expected paid amount 100, got %s", updated.PaidAmount)
		}

		if fx.journalRepo.EntryCount() != 1 {
			t.Fatalf("expected one settlement entry, got %d", fx.journalRepo.EntryCount())
		}
	})

	t.Run("two installments accumulate and close the line", func(t *testing.T) {
		fx, line := newPaymentFixture(t, 100)

		if _, err := fx.svc.Pay(context.Background(), validScope(), payInput(line.ID, 40)); err != nil {
			t.Fatalf("first installment: %v", err)
		}

		updated := fx.distRepo.Line(line.ID)
		if updated.Status != domain.DistributionPartiallyPaid {
			t.Fatalf("expected partially_paid after first installment, got %s", updated.Status)
		}

		if _, err := fx.svc.Pay(context.Background(), validScope(), payInput(line.ID, 60)); err != nil {
			t.Fatalf("second installment: %v", err)
		}

		updated = fx.distRepo.Line(line.ID)
		if updated.Status != domain.DistributionPaid {
			t.Fatalf("expected paid after second installment, got %s", updated.Status)
		}

		if fx.paymentRepo.RecordCount() != 2 {
			t.Fatalf("expected 2 payment records, got %d", fx.paymentRepo.RecordCount())
		}

		if fx.journalRepo.EntryCount() != 2 {
			t.Fatalf("expected 2 settlement entries, got %d", fx.journalRepo.EntryCount())
		}
	})

	t.Run("rejects a payment above the remaining share", func(t *testing.T) {
		fx, line := newPaymentFixture(t, 100)

		if _, err := fx.svc.Pay(context.Background(), validScope(), payInput(line.ID, 40)); err != nil {
			t.Fatalf("first installment: %v", err)
		}

		_, err := fx.svc.Pay(context.Background(), validScope(), payInput(line.ID, 61))
		if !errors.Is(err, domain.ErrExceedsRemaining) {
			t.Fatalf("expected ErrExceedsRemaining, got %v", err)
		}

		updated := fx.distRepo.Line(line.ID)
		if !updated.PaidAmount.Equal(decimal.NewFromInt(40)) {
			t.Fatalf("refused payment must not change the line, paid=%s", updated.PaidAmount)
		}

		if fx.journalRepo.EntryCount() != 1 {
			t.Fatalf("refused payment must not post, entries=%d", fx.journalRepo.EntryCount())
		}
	})

	t.Run("paid is terminal", func(t *testing.T) {
		fx, line := newPaymentFixture(t, 100)

		if _, err := fx.svc.Pay(context.Background(), validScope(), payInput(line.ID, 100)); err != nil {
			t.Fatalf("settling payment: %v", err)
		}

		_, err := fx.svc.Pay(context.Background(), validScope(), payInput(line.ID, 1))
		if !errors.Is(err, domain.ErrLineAlreadyPaid) {
			t.Fatalf("expected ErrLineAlreadyPaid, got %v", err)
		}
	})

	t.Run("non-cash methods require a reference number", func(t *testing.T) {
		fx, line := newPaymentFixture(t, 100)

		input := payInput(line.ID, 100)
		input.ReferenceNumber = ""

		_, err := fx.svc.Pay(context.Background(), validScope(), input)
		if !errors.Is(err, domain.ErrMissingReference) {
			t.Fatalf("expected ErrMissingReference, got %v", err)
		}

		input.Method = domain.PaymentCash
		if _, err := fx.svc.Pay(context.Background(), validScope(), input); err != nil {
			t.Fatalf("cash payment without reference should pass: %v", err)
		}
	})

	t.Run("rejects an unknown method", func(t *testing.T) {
		fx, line := newPaymentFixture(t, 100)

		input := payInput(line.ID, 100)
		input.Method = "barter"

		_, err := fx.svc.Pay(context.Background(), validScope(), input)
		if !errors.Is(err, domain.ErrInvalidMethod) {
			t.Fatalf("expected ErrInvalidMethod, got %v", err)
		}
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		fx, line := newPaymentFixture(t, 100)

		_, err := fx.svc.Pay(context.Background(), validScope(), payInput(line.ID, 0))
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("expected-paid guard detects a stale read", func(t *testing.T) {
		fx, line := newPaymentFixture(t, 100)

		if _, err := fx.svc.Pay(context.Background(), validScope(), payInput(line.ID, 40)); err != nil {
			t.Fatalf("first installment: %v", err)
		}

		input := payInput(line.ID, 60)
		stale := decimal.Zero
		input.ExpectedPaid = &stale

		_, err := fx.svc.Pay(context.Background(), validScope(), input)
		if !errors.Is(err, domain.ErrConcurrentPayment) {
			t.Fatalf("expected ErrConcurrentPayment, got %v", err)
		}
	})

	t.Run("compensates posting and record on a concurrent update", func(t *testing.T) {
		fx, line := newPaymentFixture(t, 100)

		fx.distRepo.UpdateLinePaymentFunc = func(ctx context.Context, lineID string, paid decimal.Decimal, status domain.DistributionStatus, expectedPaid decimal.Decimal, updatedAt time.Time) error {
			return domain.ErrConcurrentPayment
		}

		_, err := fx.svc.Pay(context.Background(), validScope(), payInput(line.ID, 100))
		if !errors.Is(err, domain.ErrConcurrentPayment) {
			t.Fatalf("expected ErrConcurrentPayment, got %v", err)
		}

		if fx.journalRepo.EntryCount() != 0 {
			t.Fatalf("expected the settlement posting compensated, entries=%d", fx.journalRepo.EntryCount())
		}

		if fx.paymentRepo.RecordCount() != 0 {
			t.Fatalf("expected the payment record compensated, records=%d", fx.paymentRepo.RecordCount())
		}
	})

	t.Run("line is invisible to another tenant", func(t *testing.T) {
		fx, line := newPaymentFixture(t, 100)

		other := validScope()
		other.TenantID = "tenant-2"

		_, err := fx.svc.Pay(context.Background(), other, payInput(line.ID, 100))
		if !errors.Is(err, domain.ErrLineNotFound) {
			t.Fatalf("expected ErrLineNotFound, got %v", err)
		}
	})
}

func TestPaymentService_ListPayments(t *testing.T) {
	fx, line := newPaymentFixture(t, 100)

	if _, err := fx.svc.Pay(context.Background(), validScope(), payInput(line.ID, 40)); err != nil {
		t.Fatalf("payment: %v", err)
	}

	records, err := fx.svc.ListPayments(context.Background(), validScope(), line.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	if !records[0].Amount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("unexpected amount %s", records[0].Amount)
	}
}
