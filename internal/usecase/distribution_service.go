package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finarc/fintxn/internal/domain"
	"github.com/finarc/fintxn/internal/infrastructure/metrics"
)

// DistributionService allocates a total amount across recipients by
// ownership percentage and records the equity-side posting.
type DistributionService struct {
	distRepo DistributionRepository
	posting  *PostingService
	balances BalanceQuery
	idGen    IDGenerator
	log      zerolog.Logger
	metrics  *metrics.Metrics
}

// NewDistributionService creates a new DistributionService.
func NewDistributionService(
	distRepo DistributionRepository,
	posting *PostingService,
	balances BalanceQuery,
	idGen IDGenerator,
	log zerolog.Logger,
	m *metrics.Metrics,
) *DistributionService {
	return &DistributionService{
		distRepo: distRepo,
		posting:  posting,
		balances: balances,
		idGen:    idGen,
		log:      log,
		metrics:  m,
	}
}

// DistributeInput describes one distribution request.
type DistributeInput struct {
	TotalAmount decimal.Decimal
	Date        time.Time
	FiscalYear  int
	Description string
	Recipients  []domain.Recipient
	EquityRole  domain.AccountRole
	PayableRole domain.AccountRole
}

// Distribute creates a distribution header, one pending line per recipient
// and the balancing journal entry (debit equity, credit payable suspense).
// Preconditions are checked in order, each with its own error; on a posting
// failure the already-written rows are compensated.
func (s *DistributionService) Distribute(
	ctx context.Context,
	scope domain.GovernanceContext,
	input DistributeInput,
) (*domain.DistributionHeader, []*domain.DistributionLine, error) {
	if err := scope.Validate(false); err != nil {
		return nil, nil, err
	}

	if !input.TotalAmount.IsPositive() {
		return nil, nil, domain.ErrInvalidAmount
	}

	if err := domain.ValidatePercentages(input.Recipients); err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	// Early refusal so an over-distribution never writes anything. The
	// balance is checked again right before the posting; see below.
	if err := s.checkAvailable(ctx, scope, input); err != nil {
		return nil, nil, err
	}

	shares := domain.ComputeShares(input.TotalAmount, input.Recipients)

	now := time.Now().UTC()
	base := s.posting.baseCurrency

	header := &domain.DistributionHeader{
		ID:          s.idGen.Generate(),
		Scope:       scope,
		TotalAmount: input.TotalAmount,
		Currency:    base,
		Date:        input.Date,
		FiscalYear:  input.FiscalYear,
		CreatedAt:   now,
	}

	sg := newSaga(s.log)

	if err := s.distRepo.InsertHeader(ctx, header); err != nil {
		return nil, nil, fmt.Errorf("insert distribution header: %w", err)
	}

	sg.record("distribution_header", func(c context.Context) error {
		return s.distRepo.DeleteHeader(c, header.ID)
	})

	lines := make([]*domain.DistributionLine, 0, len(input.Recipients))
	for i, r := range input.Recipients {
		line := &domain.DistributionLine{
			ID:          s.idGen.Generate(),
			HeaderID:    header.ID,
			RecipientID: r.ID,
			ShareAmount: shares[i],
			PaidAmount:  decimal.Zero,
			Status:      domain.DistributionPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := s.distRepo.InsertLine(ctx, line); err != nil {
			sg.record("distribution_lines", func(c context.Context) error {
				return s.distRepo.DeleteLines(c, header.ID)
			})
			sg.compensate(ctx)

			return nil, nil, fmt.Errorf("insert distribution line: %w", err)
		}

		lines = append(lines, line)
	}

	sg.record("distribution_lines", func(c context.Context) error {
		return s.distRepo.DeleteLines(c, header.ID)
	})

	// Re-check the balance immediately before posting instead of trusting
	// the value read at the top of the operation. Narrows the window
	// between two concurrent distributions against the same equity account.
	if err := s.checkAvailable(ctx, scope, input); err != nil {
		sg.compensate(ctx)
		return nil, nil, err
	}

	description := input.Description
	if description == "" {
		description = fmt.Sprintf("profit distribution %s FY%d", input.Date.Format("2006-01-02"), input.FiscalYear)
	}

	entry, err := s.posting.Post(ctx, scope, PostInput{
		PostingDate:   input.Date,
		Description:   description,
		ReferenceType: ReferenceTypeDistribution,
		ReferenceID:   header.ID,
		Lines: []ProposedLine{
			{Role: input.EquityRole, Debit: input.TotalAmount},
			{Role: input.PayableRole, Credit: input.TotalAmount},
		},
	})
	if err != nil {
		sg.compensate(ctx)
		return nil, nil, err
	}

	sg.record("equity_posting", func(c context.Context) error {
		return s.posting.Compensate(c, entry.ID)
	})

	if err := s.distRepo.SetJournalEntry(ctx, header.ID, entry.ID); err != nil {
		sg.compensate(ctx)
		return nil, nil, fmt.Errorf("link journal entry: %w", err)
	}

	header.JournalEntryID = entry.ID

	if s.metrics != nil {
		s.metrics.DistributionsCreated.Inc()
	}

	s.log.Info().
		Str("distribution_id", header.ID).
		Str("tenant_id", scope.TenantID).
		Str("total", input.TotalAmount.String()).
		Int("recipients", len(lines)).
		Msg("distribution recorded")

	return header, lines, nil
}

// GetDistribution returns a header and its lines within a scope.
func (s *DistributionService) GetDistribution(
	ctx context.Context,
	scope domain.GovernanceContext,
	id string,
) (*domain.DistributionHeader, []*domain.DistributionLine, error) {
	if err := scope.Validate(false); err != nil {
		return nil, nil, err
	}

	header, err := s.distRepo.GetHeader(ctx, scope, id)
	if err != nil {
		return nil, nil, err
	}

	lines, err := s.distRepo.ListLines(ctx, header.ID)
	if err != nil {
		return nil, nil, err
	}

	return header, lines, nil
}

func (s *DistributionService) checkAvailable(ctx context.Context, scope domain.GovernanceContext, input DistributeInput) error {
	available, err := s.balances.AvailableBalance(ctx, scope, input.EquityRole)
	if err != nil {
		return err
	}

	if available.Amount.LessThan(input.TotalAmount) {
		return fmt.Errorf("%w: available %s, requested %s",
			domain.ErrInsufficientRetainedEarnings, available.Amount, input.TotalAmount)
	}

	return nil
}
