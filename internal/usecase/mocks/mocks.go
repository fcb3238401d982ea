package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finarc/fintxn/internal/domain"
)

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.JournalEntry
	lines   map[string][]domain.JournalEntryLine

	InsertEntryFunc func(ctx context.Context, entry *domain.JournalEntry) error
	InsertLineFunc  func(ctx context.Context, line *domain.JournalEntryLine) error
	GetEntryFunc    func(ctx context.Context, id string) (*domain.JournalEntry, error)
	GetLinesFunc    func(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)
	DeleteLinesFunc func(ctx context.Context, entryID string) error
	DeleteEntryFunc func(ctx context.Context, id string) error
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{
		entries: make(map[string]*domain.JournalEntry),
		lines:   make(map[string][]domain.JournalEntryLine),
	}
}

func (m *MockJournalRepository) InsertEntry(ctx context.Context, entry *domain.JournalEntry) error {
	if m.InsertEntryFunc != nil {
		return m.InsertEntryFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *entry
	stored.Lines = nil
	m.entries[entry.ID] = &stored
	return nil
}

func (m *MockJournalRepository) InsertLine(ctx context.Context, line *domain.JournalEntryLine) error {
	if m.InsertLineFunc != nil {
		return m.InsertLineFunc(ctx, line)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines[line.EntryID] = append(m.lines[line.EntryID], *line)
	return nil
}

func (m *MockJournalRepository) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	if m.GetEntryFunc != nil {
		return m.GetEntryFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockJournalRepository) GetLines(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	if m.GetLinesFunc != nil {
		return m.GetLinesFunc(ctx, entryID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.JournalEntryLine(nil), m.lines[entryID]...), nil
}

func (m *MockJournalRepository) DeleteLines(ctx context.Context, entryID string) error {
	if m.DeleteLinesFunc != nil {
		return m.DeleteLinesFunc(ctx, entryID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lines, entryID)
	return nil
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, id string) error {
	if m.DeleteEntryFunc != nil {
		return m.DeleteEntryFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// EntryCount reports how many entry headers are currently stored.
func (m *MockJournalRepository) EntryCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// LineCount reports how many lines are stored for an entry.
func (m *MockJournalRepository) LineCount(entryID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lines[entryID])
}

// MockDistributionRepository is a mock implementation of
// DistributionRepository.
type MockDistributionRepository struct {
	mu      sync.RWMutex
	headers map[string]*domain.DistributionHeader
	lines   map[string]*domain.DistributionLine

	InsertHeaderFunc      func(ctx context.Context, header *domain.DistributionHeader) error
	InsertLineFunc        func(ctx context.Context, line *domain.DistributionLine) error
	GetHeaderFunc         func(ctx context.Context, scope domain.GovernanceContext, id string) (*domain.DistributionHeader, error)
	GetLineFunc           func(ctx context.Context, scope domain.GovernanceContext, id string) (*domain.DistributionLine, error)
	ListLinesFunc         func(ctx context.Context, headerID string) ([]*domain.DistributionLine, error)
	SetJournalEntryFunc   func(ctx context.Context, headerID, entryID string) error
	UpdateLinePaymentFunc func(ctx context.Context, lineID string, paid decimal.Decimal, status domain.DistributionStatus, expectedPaid decimal.Decimal, updatedAt time.Time) error
	DeleteLinesFunc       func(ctx context.Context, headerID string) error
	DeleteHeaderFunc      func(ctx context.Context, id string) error
}

func NewMockDistributionRepository() *MockDistributionRepository {
	return &MockDistributionRepository{
		headers: make(map[string]*domain.DistributionHeader),
		lines:   make(map[string]*domain.DistributionLine),
	}
}

func (m *MockDistributionRepository) InsertHeader(ctx context.Context, header *domain.DistributionHeader) error {
	if m.InsertHeaderFunc != nil {
		return m.InsertHeaderFunc(ctx, header)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *header
	m.headers[header.ID] = &copied
	return nil
}

func (m *MockDistributionRepository) InsertLine(ctx context.Context, line *domain.DistributionLine) error {
	if m.InsertLineFunc != nil {
		return m.InsertLineFunc(ctx, line)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *line
	m.lines[line.ID] = &copied
	return nil
}

func (m *MockDistributionRepository) GetHeader(ctx context.Context, scope domain.GovernanceContext, id string) (*domain.DistributionHeader, error) {
	if m.GetHeaderFunc != nil {
		return m.GetHeaderFunc(ctx, scope, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.headers[id]
	if !ok || h.Scope.TenantID != scope.TenantID {
		return nil, domain.ErrDistributionNotFound
	}
	copied := *h
	return &copied, nil
}

func (m *MockDistributionRepository) GetLine(ctx context.Context, scope domain.GovernanceContext, id string) (*domain.DistributionLine, error) {
	if m.GetLineFunc != nil {
		return m.GetLineFunc(ctx, scope, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.lines[id]
	if !ok {
		return nil, domain.ErrLineNotFound
	}
	if h, ok := m.headers[l.HeaderID]; ok && h.Scope.TenantID != scope.TenantID {
		return nil, domain.ErrLineNotFound
	}
	copied := *l
	return &copied, nil
}

func (m *MockDistributionRepository) ListLines(ctx context.Context, headerID string) ([]*domain.DistributionLine, error) {
	if m.ListLinesFunc != nil {
		return m.ListLinesFunc(ctx, headerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.DistributionLine
	for _, l := range m.lines {
		if l.HeaderID == headerID {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockDistributionRepository) SetJournalEntry(ctx context.Context, headerID, entryID string) error {
	if m.SetJournalEntryFunc != nil {
		return m.SetJournalEntryFunc(ctx, headerID, entryID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.headers[headerID]
	if !ok {
		return domain.ErrDistributionNotFound
	}
	h.JournalEntryID = entryID
	return nil
}

func (m *MockDistributionRepository) UpdateLinePayment(ctx context.Context, lineID string, paid decimal.Decimal, status domain.DistributionStatus, expectedPaid decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateLinePaymentFunc != nil {
		return m.UpdateLinePaymentFunc(ctx, lineID, paid, status, expectedPaid, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lines[lineID]
	if !ok {
		return domain.ErrLineNotFound
	}
	if !l.PaidAmount.Equal(expectedPaid) {
		return domain.ErrConcurrentPayment
	}
	l.PaidAmount = paid
	l.Status = status
	l.UpdatedAt = updatedAt
	return nil
}

func (m *MockDistributionRepository) DeleteLines(ctx context.Context, headerID string) error {
	if m.DeleteLinesFunc != nil {
		return m.DeleteLinesFunc(ctx, headerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.lines {
		if l.HeaderID == headerID {
			delete(m.lines, id)
		}
	}
	return nil
}

func (m *MockDistributionRepository) DeleteHeader(ctx context.Context, id string) error {
	if m.DeleteHeaderFunc != nil {
		return m.DeleteHeaderFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.headers, id)
	return nil
}

// HeaderCount reports how many headers are currently stored.
func (m *MockDistributionRepository) HeaderCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.headers)
}

// LineCount reports how many lines are currently stored.
func (m *MockDistributionRepository) LineCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lines)
}

// Line returns the stored line or nil.
func (m *MockDistributionRepository) Line(id string) *domain.DistributionLine {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.lines[id]; ok {
		copied := *l
		return &copied
	}
	return nil
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.PaymentRecord

	InsertFunc     func(ctx context.Context, record *domain.PaymentRecord) error
	DeleteFunc     func(ctx context.Context, id string) error
	ListByLineFunc func(ctx context.Context, lineID string) ([]*domain.PaymentRecord, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{records: make(map[string]*domain.PaymentRecord)}
}

func (m *MockPaymentRepository) Insert(ctx context.Context, record *domain.PaymentRecord) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.records[record.ID] = &copied
	return nil
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *MockPaymentRepository) ListByLine(ctx context.Context, lineID string) ([]*domain.PaymentRecord, error) {
	if m.ListByLineFunc != nil {
		return m.ListByLineFunc(ctx, lineID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.PaymentRecord
	for _, r := range m.records {
		if r.LineID == lineID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

// InsertDirect stores a record bypassing InsertFunc, for overrides that
// only want to fail selectively.
func (m *MockPaymentRepository) InsertDirect(record *domain.PaymentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.records[record.ID] = &copied
	return nil
}

// RecordCount reports how many payment records are currently stored.
func (m *MockPaymentRepository) RecordCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// MockDirectory is a hand-rolled stand-in for AccountDirectory. By default
// every role resolves to a deterministic account within the scope's tenant;
// the generated gomock variant lives in mock_interfaces.go for tests that
// need call assertions.
type MockDirectory struct {
	ResolveFunc func(ctx context.Context, scope domain.GovernanceContext, role domain.AccountRole) (*domain.Account, error)
}

func NewMockDirectory() *MockDirectory {
	return &MockDirectory{}
}

func (m *MockDirectory) Resolve(ctx context.Context, scope domain.GovernanceContext, role domain.AccountRole) (*domain.Account, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, scope, role)
	}
	return &domain.Account{
		ID:       "acct-" + string(role),
		Code:     string(role),
		Name:     string(role),
		TenantID: scope.TenantID,
	}, nil
}

// MockBalances is a hand-rolled stand-in for BalanceQuery.
type MockBalances struct {
	Balance domain.Money

	AvailableBalanceFunc func(ctx context.Context, scope domain.GovernanceContext, role domain.AccountRole) (domain.Money, error)
}

func NewMockBalances(balance domain.Money) *MockBalances {
	return &MockBalances{Balance: balance}
}

func (m *MockBalances) AvailableBalance(ctx context.Context, scope domain.GovernanceContext, role domain.AccountRole) (domain.Money, error) {
	if m.AvailableBalanceFunc != nil {
		return m.AvailableBalanceFunc(ctx, scope, role)
	}
	return m.Balance, nil
}

// MockRates is a hand-rolled stand-in for RateLookup. The default rate of 1
// keeps single-currency tests out of the conversion path.
type MockRates struct {
	GetRateFunc func(ctx context.Context, from, to string) (decimal.Decimal, domain.RateProvenance, error)
}

func NewMockRates() *MockRates {
	return &MockRates{}
}

func (m *MockRates) GetRate(ctx context.Context, from, to string) (decimal.Decimal, domain.RateProvenance, error) {
	if m.GetRateFunc != nil {
		return m.GetRateFunc(ctx, from, to)
	}
	return decimal.NewFromInt(1), domain.RateProvenanceManual, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{data: make(map[string][]byte)}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	m.data[key] = response
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
