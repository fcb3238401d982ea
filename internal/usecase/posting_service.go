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

// PostingService turns proposed lines into a persisted, balanced journal
// entry. Every write is a single statement against the store; the balance
// invariant is re-verified from the persisted rows after the writes land,
// and any failure compensates the attempt's own rows before surfacing.
type PostingService struct {
	journalRepo  JournalRepository
	directory    AccountDirectory
	rates        RateLookup
	idGen        IDGenerator
	baseCurrency string
	log          zerolog.Logger
	metrics      *metrics.Metrics
}

// NewPostingService creates a new PostingService.
func NewPostingService(
	journalRepo JournalRepository,
	directory AccountDirectory,
	rates RateLookup,
	idGen IDGenerator,
	baseCurrency string,
	log zerolog.Logger,
	m *metrics.Metrics,
) *PostingService {
	return &PostingService{
		journalRepo:  journalRepo,
		directory:    directory,
		rates:        rates,
		idGen:        idGen,
		baseCurrency: baseCurrency,
		log:          log,
		metrics:      m,
	}
}

// ProposedLine is one side of a posting before account resolution. Amounts
// in a non-base currency are converted at posting time; the original amount
// and rate are stored on the line for traceability only.
type ProposedLine struct {
	Role     domain.AccountRole
	Debit    decimal.Decimal
	Credit   decimal.Decimal
	Currency string
}

// PostInput describes a posting request.
type PostInput struct {
	PostingDate      time.Time
	Description      string
	ReferenceType    string
	ReferenceID      string
	RequireWarehouse bool
	Lines            []ProposedLine
}

// Post persists a journal entry with its lines. The entry either lands
// complete and balanced or not at all.
func (s *PostingService) Post(ctx context.Context, scope domain.GovernanceContext, input PostInput) (*domain.JournalEntry, error) {
	if err := scope.Validate(input.RequireWarehouse); err != nil {
		return nil, err
	}

	if len(input.Lines) == 0 {
		return nil, domain.ErrEmptyEntry
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	now := time.Now().UTC()
	entryID := s.idGen.Generate()

	lines := make([]domain.JournalEntryLine, 0, len(input.Lines))
	for _, pl := range input.Lines {
		line, err := s.buildLine(ctx, scope, entryID, pl, now)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	// Balance check on base-currency amounts, before any write.
	if err := domain.CheckBalanced(lines); err != nil {
		return nil, &domain.PostingError{Kind: domain.PostingUnbalanced, Err: err}
	}

	entry := &domain.JournalEntry{
		ID:            entryID,
		Scope:         scope,
		PostingDate:   input.PostingDate,
		Description:   input.Description,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		Lines:         lines,
		CreatedAt:     now,
	}

	sg := newSaga(s.log)

	if err := s.journalRepo.InsertEntry(ctx, entry); err != nil {
		return nil, &domain.PostingError{Kind: domain.PostingWriteFailed, Err: err}
	}

	sg.record("journal_entry", func(c context.Context) error {
		return s.journalRepo.DeleteEntry(c, entryID)
	})

	for i := range lines {
		if err := s.journalRepo.InsertLine(ctx, &lines[i]); err != nil {
			sg.record("journal_lines", func(c context.Context) error {
				return s.journalRepo.DeleteLines(c, entryID)
			})
			sg.compensate(ctx)
			s.countCompensation()

			return nil, &domain.PostingError{Kind: domain.PostingWriteFailed, Err: err}
		}
	}

	sg.record("journal_lines", func(c context.Context) error {
		return s.journalRepo.DeleteLines(c, entryID)
	})

	// Re-read the persisted lines and re-verify the invariant. The store
	// gives no cross-statement atomicity, so a partial landing can only be
	// detected after the fact.
	persisted, err := s.journalRepo.GetLines(ctx, entryID)
	if err != nil {
		sg.compensate(ctx)
		s.countCompensation()

		return nil, &domain.PostingError{Kind: domain.PostingWriteFailed, Err: err}
	}

	if err := domain.CheckBalanced(persisted); err != nil {
		sg.compensate(ctx)
		s.countCompensation()

		return nil, &domain.PostingError{Kind: domain.PostingUnbalanced, Err: err}
	}

	if s.metrics != nil {
		s.metrics.EntriesPosted.Inc()
	}

	s.log.Info().
		Str("entry_id", entryID).
		Str("tenant_id", scope.TenantID).
		Str("reference_type", input.ReferenceType).
		Msg("journal entry posted")

	return entry, nil
}

// GetEntry loads an entry with its lines. Entries outside the scope's
// tenant are reported as not found.
func (s *PostingService) GetEntry(ctx context.Context, scope domain.GovernanceContext, entryID string) (*domain.JournalEntry, error) {
	if err := scope.Validate(false); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	entry, err := s.journalRepo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Scope.TenantID != scope.TenantID {
		return nil, domain.ErrEntryNotFound
	}

	lines, err := s.journalRepo.GetLines(ctx, entryID)
	if err != nil {
		return nil, err
	}

	entry.Lines = lines

	return entry, nil
}

// Compensate deletes a previously posted entry, lines first. Used by the
// distribution and payment services when a dependent write after a
// successful posting fails.
func (s *PostingService) Compensate(ctx context.Context, entryID string) error {
	if err := s.journalRepo.DeleteLines(ctx, entryID); err != nil {
		return fmt.Errorf("delete lines of entry %s: %w", entryID, err)
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		return fmt.Errorf("delete entry %s: %w", entryID, err)
	}

	s.countCompensation()

	return nil
}

func (s *PostingService) buildLine(
	ctx context.Context,
	scope domain.GovernanceContext,
	entryID string,
	pl ProposedLine,
	now time.Time,
) (domain.JournalEntryLine, error) {
	account, err := s.directory.Resolve(ctx, scope, pl.Role)
	if err != nil {
		return domain.JournalEntryLine{}, err
	}

	line := domain.JournalEntryLine{
		ID:        s.idGen.Generate(),
		EntryID:   entryID,
		AccountID: account.ID,
		Debit:     pl.Debit,
		Credit:    pl.Credit,
		Currency:  s.baseCurrency,
		CreatedAt: now,
	}

	if err := line.Validate(); err != nil {
		return domain.JournalEntryLine{}, err
	}

	if pl.Currency != "" && pl.Currency != s.baseCurrency {
		if err := s.convertLine(ctx, &line, pl); err != nil {
			return domain.JournalEntryLine{}, err
		}
	}

	return line, nil
}

// convertLine rewrites the line's amounts into the base currency, keeping
// the original amount, rate and provenance on the line. The original
// amount never participates in the balance invariant.
func (s *PostingService) convertLine(ctx context.Context, line *domain.JournalEntryLine, pl ProposedLine) error {
	rate, provenance, err := s.rates.GetRate(ctx, pl.Currency, s.baseCurrency)
	if err != nil {
		return err
	}

	original := pl.Debit
	if original.IsZero() {
		original = pl.Credit
	}

	converted, err := domain.NewMoney(original, pl.Currency).Convert(s.baseCurrency, rate, provenance)
	if err != nil {
		return err
	}

	if !pl.Debit.IsZero() {
		line.Debit = converted.Amount
	} else {
		line.Credit = converted.Amount
	}

	line.OriginalCurrency = pl.Currency
	line.OriginalAmount = original
	line.ExchangeRate = rate
	line.RateProvenance = provenance

	return nil
}

func (s *PostingService) countCompensation() {
	if s.metrics != nil {
		s.metrics.EntriesCompensated.Inc()
	}
}
