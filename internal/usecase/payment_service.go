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

// PaymentService records installments against distribution lines. The
// ledger posting happens first; the line is only mutated after the posting
// and the payment record both landed, so a failed posting leaves the line
// untouched.
type PaymentService struct {
	distRepo    DistributionRepository
	paymentRepo PaymentRepository
	posting     *PostingService
	idGen       IDGenerator
	log         zerolog.Logger
	metrics     *metrics.Metrics
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	distRepo DistributionRepository,
	paymentRepo PaymentRepository,
	posting *PostingService,
	idGen IDGenerator,
	log zerolog.Logger,
	m *metrics.Metrics,
) *PaymentService {
	return &PaymentService{
		distRepo:    distRepo,
		paymentRepo: paymentRepo,
		posting:     posting,
		idGen:       idGen,
		log:         log,
		metrics:     m,
	}
}

// PayInput describes one payment against a distribution line. ExpectedPaid
// is an optional optimistic guard: when set, the payment only applies if
// the line's paid amount still equals it.
type PayInput struct {
	LineID          string
	Amount          decimal.Decimal
	Date            time.Time
	SettlementRole  domain.AccountRole
	PayableRole     domain.AccountRole
	Method          domain.PaymentMethod
	ReferenceNumber string
	ExpectedPaid    *decimal.Decimal
}

// Pay settles part or all of a line's share. Cumulative payments never
// exceed the share; paid is a terminal status.
func (s *PaymentService) Pay(ctx context.Context, scope domain.GovernanceContext, input PayInput) (*domain.PaymentRecord, error) {
	if err := scope.Validate(false); err != nil {
		return nil, err
	}

	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	if err := domain.ValidateReference(input.Method, input.ReferenceNumber); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	line, err := s.distRepo.GetLine(ctx, scope, input.LineID)
	if err != nil {
		return nil, err
	}

	if line.Status == domain.DistributionPaid {
		return nil, domain.ErrLineAlreadyPaid
	}

	if input.ExpectedPaid != nil && !input.ExpectedPaid.Equal(line.PaidAmount) {
		return nil, domain.ErrConcurrentPayment
	}

	if input.Amount.GreaterThan(line.Remaining()) {
		return nil, fmt.Errorf("%w: remaining %s, requested %s",
			domain.ErrExceedsRemaining, line.Remaining(), input.Amount)
	}

	entry, err := s.posting.Post(ctx, scope, PostInput{
		PostingDate:   input.Date,
		Description:   fmt.Sprintf("distribution payment for line %s", line.ID),
		ReferenceType: ReferenceTypeDistributionPayment,
		ReferenceID:   line.ID,
		Lines: []ProposedLine{
			{Role: input.PayableRole, Debit: input.Amount},
			{Role: input.SettlementRole, Credit: input.Amount},
		},
	})
	if err != nil {
		return nil, err
	}

	sg := newSaga(s.log)
	sg.record("payment_posting", func(c context.Context) error {
		return s.posting.Compensate(c, entry.ID)
	})

	now := time.Now().UTC()
	record := &domain.PaymentRecord{
		ID:              s.idGen.Generate(),
		LineID:          line.ID,
		Amount:          input.Amount,
		Date:            input.Date,
		Method:          input.Method,
		ReferenceNumber: input.ReferenceNumber,
		JournalEntryID:  entry.ID,
		CreatedAt:       now,
	}

	if err := s.paymentRepo.Insert(ctx, record); err != nil {
		sg.compensate(ctx)
		return nil, fmt.Errorf("insert payment record: %w", err)
	}

	sg.record("payment_record", func(c context.Context) error {
		return s.paymentRepo.Delete(c, record.ID)
	})

	newPaid := line.PaidAmount.Add(input.Amount)
	status := domain.DeriveStatus(line.ShareAmount, newPaid)

	// Compare-and-swap on the previous paid amount closes the race between
	// two concurrent payments against the same line.
	if err := s.distRepo.UpdateLinePayment(ctx, line.ID, newPaid, status, line.PaidAmount, now); err != nil {
		sg.compensate(ctx)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PaymentsRecorded.Inc()
	}

	s.log.Info().
		Str("line_id", line.ID).
		Str("payment_id", record.ID).
		Str("amount", input.Amount.String()).
		Str("status", string(status)).
		Msg("distribution payment recorded")

	return record, nil
}

// ListPayments returns the payment history of a line.
func (s *PaymentService) ListPayments(ctx context.Context, scope domain.GovernanceContext, lineID string) ([]*domain.PaymentRecord, error) {
	if err := scope.Validate(false); err != nil {
		return nil, err
	}

	if _, err := s.distRepo.GetLine(ctx, scope, lineID); err != nil {
		return nil, err
	}

	return s.paymentRepo.ListByLine(ctx, lineID)
}
