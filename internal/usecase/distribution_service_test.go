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

type distributionFixture struct {
	journalRepo *mocks.MockJournalRepository
	distRepo    *mocks.MockDistributionRepository
	balances    *mocks.MockBalances
	svc         *usecase.DistributionService
}

func newDistributionFixture(available int64) *distributionFixture {
	journalRepo := mocks.NewMockJournalRepository()
	distRepo := mocks.NewMockDistributionRepository()
	balances := mocks.NewMockBalances(domain.NewMoney(decimal.NewFromInt(available), "USD"))

	posting := usecase.NewPostingService(
		journalRepo,
		mocks.NewMockDirectory(),
		mocks.NewMockRates(),
		mocks.NewMockIDGenerator(),
		"USD",
		zerolog.Nop(),
		nil,
	)

	return &distributionFixture{
		journalRepo: journalRepo,
		distRepo:    distRepo,
		balances:    balances,
		svc: usecase.NewDistributionService(
			distRepo,
			posting,
			balances,
			mocks.NewMockIDGenerator(),
			zerolog.Nop(),
			nil,
		),
	}
}

func distributeInput(total int64, recipients []domain.Recipient) usecase.DistributeInput {
	return usecase.DistributeInput{
		TotalAmount: decimal.NewFromInt(total),
		Date:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		FiscalYear:  2025,
		Recipients:  recipients,
		EquityRole:  domain.RoleRetainedEarnings,
		PayableRole: domain.RoleDividendsPayable,
	}
}

func pct(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestDistributionService_Distribute(t *testing.T) {
	t.Run("creates header, pending lines and the equity posting", func(t *testing.T) {
		fx := newDistributionFixture(5000)

		recipients := []domain.Recipient{
			{ID: "r1", Percentage: pct(33.33)},
			{ID: "r2", Percentage: pct(33.33)},
			{ID: "r3", Percentage: pct(33.34)},
		}

		header, lines, err := fx.svc.Distribute(context.Background(), validScope(), distributeInput(1000, recipients))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if header.JournalEntryID == "" {
			t.Fatalf("expected header linked to its journal entry")
		}

		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}

		want := []string{"333.3", "333.3", "333.4"}
		sum := decimal.Zero
		for i, line := range lines {
			if line.ShareAmount.String() != want[i] {
				t.Fatalf("line %d share = %s, want %s", i, line.ShareAmount, want[i])
			}
			if line.Status != domain.DistributionPending {
				t.Fatalf("line %d status = %s, want pending", i, line.Status)
			}
			sum = sum.Add(line.ShareAmount)
		}

		if !sum.Equal(decimal.NewFromInt(1000)) {
			t.Fatalf("shares sum to %s, want exactly 1000", sum)
		}

		if fx.journalRepo.EntryCount() != 1 {
			t.Fatalf("expected 1 journal entry, got %d", fx.journalRepo.EntryCount())
		}
	})

	t.Run("assigns the rounding residue to the first recipient", func(t *testing.T) {
		fx := newDistributionFixture(5000)

		recipients := []domain.Recipient{
			{ID: "r1", Percentage: pct(33.33)},
			{ID: "r2", Percentage: pct(33.33)},
			{ID: "r3", Percentage: pct(33.33)},
		}

		_, lines, err := fx.svc.Distribute(context.Background(), validScope(), distributeInput(100, recipients))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if lines[0].ShareAmount.String() != "33.34" {
			t.Fatalf("first share = %s, want 33.34", lines[0].ShareAmount)
		}

		if lines[1].ShareAmount.String() != "33.33" || lines[2].ShareAmount.String() != "33.33" {
			t.Fatalf("unexpected shares %s/%s", lines[1].ShareAmount, lines[2].ShareAmount)
		}
	})

	t.Run("rejects percentages that do not total 100", func(t *testing.T) {
		fx := newDistributionFixture(5000)

		recipients := []domain.Recipient{
			{ID: "r1", Percentage: pct(60)},
			{ID: "r2", Percentage: pct(30)},
		}

		_, _, err := fx.svc.Distribute(context.Background(), validScope(), distributeInput(100, recipients))
		if !errors.Is(err, domain.ErrInvalidPercentageTotal) {
			t.Fatalf("expected ErrInvalidPercentageTotal, got %v", err)
		}

		if fx.distRepo.HeaderCount() != 0 || fx.journalRepo.EntryCount() != 0 {
			t.Fatalf("refused distribution must not write anything")
		}
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		fx := newDistributionFixture(5000)

		_, _, err := fx.svc.Distribute(context.Background(), validScope(),
			distributeInput(0, []domain.Recipient{{ID: "r1", Percentage: pct(100)}}))
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("refuses to distribute more than retained earnings", func(t *testing.T) {
		fx := newDistributionFixture(400)

		_, _, err := fx.svc.Distribute(context.Background(), validScope(),
			distributeInput(1000, []domain.Recipient{{ID: "r1", Percentage: pct(100)}}))
		if !errors.Is(err, domain.ErrInsufficientRetainedEarnings) {
			t.Fatalf("expected ErrInsufficientRetainedEarnings, got %v", err)
		}

		if fx.distRepo.HeaderCount() != 0 || fx.journalRepo.EntryCount() != 0 {
			t.Fatalf("refused distribution must not write anything")
		}
	})

	t.Run("compensates header and lines when the posting fails", func(t *testing.T) {
		fx := newDistributionFixture(5000)

		fx.journalRepo.InsertEntryFunc = func(ctx context.Context, entry *domain.JournalEntry) error {
			return errors.New("connection reset")
		}

		_, _, err := fx.svc.Distribute(context.Background(), validScope(),
			distributeInput(1000, []domain.Recipient{{ID: "r1", Percentage: pct(100)}}))
		if err == nil {
			t.Fatalf("expected error")
		}

		if fx.distRepo.HeaderCount() != 0 || fx.distRepo.LineCount() != 0 {
			t.Fatalf("expected distribution rows compensated, headers=%d lines=%d",
				fx.distRepo.HeaderCount(), fx.distRepo.LineCount())
		}
	})

	t.Run("compensates everything when the audit link fails", func(t *testing.T) {
		fx := newDistributionFixture(5000)

		fx.distRepo.SetJournalEntryFunc = func(ctx context.Context, headerID, entryID string) error {
			return errors.New("connection reset")
		}

		_, _, err := fx.svc.Distribute(context.Background(), validScope(),
			distributeInput(1000, []domain.Recipient{{ID: "r1", Percentage: pct(100)}}))
		if err == nil {
			t.Fatalf("expected error")
		}

		if fx.distRepo.HeaderCount() != 0 || fx.distRepo.LineCount() != 0 {
			t.Fatalf("expected distribution rows compensated")
		}

		if fx.journalRepo.EntryCount() != 0 {
			t.Fatalf("expected the equity posting compensated, %d entries remain", fx.journalRepo.EntryCount())
		}
	})

	t.Run("re-checks the balance right before posting", func(t *testing.T) {
		fx := newDistributionFixture(5000)

		var calls int
		fx.balances.AvailableBalanceFunc = func(ctx context.Context, scope domain.GovernanceContext, role domain.AccountRole) (domain.Money, error) {
			calls++
			if calls > 1 {
				// Balance consumed by a concurrent distribution.
				return domain.NewMoney(decimal.NewFromInt(100), "USD"), nil
			}
			return domain.NewMoney(decimal.NewFromInt(5000), "USD"), nil
		}

		_, _, err := fx.svc.Distribute(context.Background(), validScope(),
			distributeInput(1000, []domain.Recipient{{ID: "r1", Percentage: pct(100)}}))
		if !errors.Is(err, domain.ErrInsufficientRetainedEarnings) {
			t.Fatalf("expected ErrInsufficientRetainedEarnings, got %v", err)
		}

		if calls != 2 {
			t.Fatalf("expected 2 balance checks, got %d", calls)
		}

		if fx.distRepo.HeaderCount() != 0 || fx.distRepo.LineCount() != 0 {
			t.Fatalf("expected rows from the failed attempt compensated")
		}
	})
}

func TestDistributionService_GetDistribution(t *testing.T) {
	fx := newDistributionFixture(5000)

	header, lines, err := fx.svc.Distribute(context.Background(), validScope(),
		distributeInput(1000, []domain.Recipient{{ID: "r1", Percentage: pct(100)}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, gotLines, err := fx.svc.GetDistribution(context.Background(), validScope(), header.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.ID != header.ID || len(gotLines) != len(lines) {
		t.Fatalf("unexpected distribution %s with %d lines", got.ID, len(gotLines))
	}

	t.Run("not visible to another tenant", func(t *testing.T) {
		other := validScope()
		other.TenantID = "tenant-2"

		_, _, err := fx.svc.GetDistribution(context.Background(), other, header.ID)
		if !errors.Is(err, domain.ErrDistributionNotFound) {
			t.Fatalf("expected ErrDistributionNotFound, got %v", err)
		}
	})
}
