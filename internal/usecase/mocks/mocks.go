// Package mocks provides hand-rolled test doubles for usecase interfaces.
package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/usecase"
)

// MockTransaction is a mock implementation of usecase.Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of usecase.TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	LastTx *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTransaction{}
	return m.LastTx, nil
}

// MockIDGenerator is a mock implementation of usecase.IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu      sync.Mutex
	counter int
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
	return "id-" + strconv.Itoa(m.counter)
}

// MockMemberRepository is a mock implementation of usecase.MemberRepository.
type MockMemberRepository struct {
	mu      sync.RWMutex
	members map[string]*domain.Member

	CreateFunc        func(ctx context.Context, member *domain.Member) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Member, error)
	UpdateFunc        func(ctx context.Context, member *domain.Member) error
	ListFunc          func(ctx context.Context, limit, offset int) ([]*domain.Member, error)
	CountByStatusFunc func(ctx context.Context, status domain.MemberStatus) (int, error)
}

func NewMockMemberRepository() *MockMemberRepository {
	return &MockMemberRepository{members: make(map[string]*domain.Member)}
}

func (m *MockMemberRepository) Create(ctx context.Context, member *domain.Member) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, member)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[member.ID] = member
	return nil
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if member, ok := m.members[id]; ok {
		return member, nil
	}
	return nil, domain.ErrMemberNotFound
}

func (m *MockMemberRepository) Update(ctx context.Context, member *domain.Member) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, member)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[member.ID] = member
	return nil
}

func (m *MockMemberRepository) List(ctx context.Context, limit, offset int) ([]*domain.Member, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	members := make([]*domain.Member, 0, len(m.members))
	for _, member := range m.members {
		members = append(members, member)
	}
	return members, nil
}

func (m *MockMemberRepository) CountByStatus(ctx context.Context, status domain.MemberStatus) (int, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, member := range m.members {
		if member.Status == status {
			count++
		}
	}
	return count, nil
}

// MockLoanRepository is a mock implementation of usecase.LoanRepository.
type MockLoanRepository struct {
	mu    sync.RWMutex
	loans map[string]*domain.Loan

	CreateFunc           func(ctx context.Context, loan *domain.Loan) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Loan, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Loan, error)
	UpdateDerivedFunc    func(ctx context.Context, tx usecase.Transaction, id string, state domain.LoanDerivedState, updatedAt time.Time) error
	ListByMemberFunc     func(ctx context.Context, memberID string, limit, offset int) ([]*domain.Loan, error)
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Loan, error)
	SumOutstandingFunc   func(ctx context.Context) (decimal.Decimal, error)

	// LastDerived captures the most recent UpdateDerived write.
	LastDerived *domain.LoanDerivedState
}

func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{loans: make(map[string]*domain.Loan)}
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, loan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans[loan.ID] = loan
	return nil
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if loan, ok := m.loans[id]; ok {
		return loan, nil
	}
	return nil, domain.ErrLoanNotFound
}

func (m *MockLoanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Loan, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockLoanRepository) UpdateDerived(ctx context.Context, tx usecase.Transaction, id string, state domain.LoanDerivedState, updatedAt time.Time) error {
	if m.UpdateDerivedFunc != nil {
		return m.UpdateDerivedFunc(ctx, tx, id, state, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastDerived = &state
	if loan, ok := m.loans[id]; ok {
		loan.Apply(state, updatedAt)
	}
	return nil
}

func (m *MockLoanRepository) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.Loan, error) {
	if m.ListByMemberFunc != nil {
		return m.ListByMemberFunc(ctx, memberID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var loans []*domain.Loan
	for _, loan := range m.loans {
		if loan.MemberID == memberID {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}

func (m *MockLoanRepository) List(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	loans := make([]*domain.Loan, 0, len(m.loans))
	for _, loan := range m.loans {
		loans = append(loans, loan)
	}
	return loans, nil
}

func (m *MockLoanRepository) SumOutstanding(ctx context.Context) (decimal.Decimal, error) {
	if m.SumOutstandingFunc != nil {
		return m.SumOutstandingFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, loan := range m.loans {
		if loan.Status != domain.LoanCompleted {
			total = total.Add(loan.Remaining)
		}
	}
	return total, nil
}

// MockLoanTransactionRepository is a mock implementation of
// usecase.LoanTransactionRepository.
type MockLoanTransactionRepository struct {
	mu  sync.RWMutex
	txs map[string]*domain.LoanTransaction

	CreateFunc     func(ctx context.Context, tx usecase.Transaction, lt *domain.LoanTransaction) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.LoanTransaction, error)
	DeleteFunc     func(ctx context.Context, tx usecase.Transaction, id string) error
	ListByLoanFunc func(ctx context.Context, tx usecase.Transaction, loanID string) ([]*domain.LoanTransaction, error)
}

func NewMockLoanTransactionRepository() *MockLoanTransactionRepository {
	return &MockLoanTransactionRepository{txs: make(map[string]*domain.LoanTransaction)}
}

func (m *MockLoanTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, lt *domain.LoanTransaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, lt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs[lt.ID] = lt
	return nil
}

func (m *MockLoanTransactionRepository) GetByID(ctx context.Context, id string) (*domain.LoanTransaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if lt, ok := m.txs[id]; ok {
		return lt, nil
	}
	return nil, domain.ErrLoanTransactionNotFound
}

func (m *MockLoanTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txs[id]; !ok {
		return domain.ErrLoanTransactionNotFound
	}
	delete(m.txs, id)
	return nil
}

func (m *MockLoanTransactionRepository) ListByLoan(ctx context.Context, tx usecase.Transaction, loanID string) ([]*domain.LoanTransaction, error) {
	if m.ListByLoanFunc != nil {
		return m.ListByLoanFunc(ctx, tx, loanID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LoanTransaction
	for _, lt := range m.txs {
		if lt.LoanID == loanID {
			out = append(out, lt)
		}
	}
	// callers expect month-ascending order
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Month < out[i].Month {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

// MockCycleRepository is a mock implementation of usecase.CycleRepository.
type MockCycleRepository struct {
	mu            sync.RWMutex
	cycles        map[string]*domain.Cycle
	contributions map[string][]*domain.Contribution

	CreateFunc                    func(ctx context.Context, cycle *domain.Cycle) error
	GetByIDFunc                   func(ctx context.Context, id string) (*domain.Cycle, error)
	GetByIDForUpdateFunc          func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Cycle, error)
	CloseFunc                     func(ctx context.Context, tx usecase.Transaction, id string, payoutMemberID *string, closedAt time.Time) error
	ListFunc                      func(ctx context.Context, limit, offset int) ([]*domain.Cycle, error)
	CreateContributionFunc        func(ctx context.Context, contribution *domain.Contribution) error
	ListContributionsFunc         func(ctx context.Context, cycleID string) ([]*domain.Contribution, error)
	ListContributionsByMemberFunc func(ctx context.Context, memberID string, limit, offset int) ([]*domain.Contribution, error)
	SumContributionsFunc          func(ctx context.Context, cycleID string) (decimal.Decimal, int, error)
}

func NewMockCycleRepository() *MockCycleRepository {
	return &MockCycleRepository{
		cycles:        make(map[string]*domain.Cycle),
		contributions: make(map[string][]*domain.Contribution),
	}
}

func (m *MockCycleRepository) Create(ctx context.Context, cycle *domain.Cycle) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, cycle)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycles[cycle.ID] = cycle
	return nil
}

func (m *MockCycleRepository) GetByID(ctx context.Context, id string) (*domain.Cycle, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if cycle, ok := m.cycles[id]; ok {
		return cycle, nil
	}
	return nil, domain.ErrCycleNotFound
}

func (m *MockCycleRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Cycle, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockCycleRepository) Close(ctx context.Context, tx usecase.Transaction, id string, payoutMemberID *string, closedAt time.Time) error {
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx, tx, id, payoutMemberID, closedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cycle, ok := m.cycles[id]; ok {
		cycle.Status = domain.CycleClosed
		cycle.PayoutMemberID = payoutMemberID
		cycle.EndDate = &closedAt
		return nil
	}
	return domain.ErrCycleNotFound
}

func (m *MockCycleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Cycle, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	cycles := make([]*domain.Cycle, 0, len(m.cycles))
	for _, cycle := range m.cycles {
		cycles = append(cycles, cycle)
	}
	return cycles, nil
}

func (m *MockCycleRepository) CreateContribution(ctx context.Context, contribution *domain.Contribution) error {
	if m.CreateContributionFunc != nil {
		return m.CreateContributionFunc(ctx, contribution)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contributions[contribution.CycleID] = append(m.contributions[contribution.CycleID], contribution)
	return nil
}

func (m *MockCycleRepository) ListContributions(ctx context.Context, cycleID string) ([]*domain.Contribution, error) {
	if m.ListContributionsFunc != nil {
		return m.ListContributionsFunc(ctx, cycleID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.contributions[cycleID], nil
}

func (m *MockCycleRepository) ListContributionsByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.Contribution, error) {
	if m.ListContributionsByMemberFunc != nil {
		return m.ListContributionsByMemberFunc(ctx, memberID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Contribution
	for _, list := range m.contributions {
		for _, c := range list {
			if c.MemberID == memberID {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (m *MockCycleRepository) SumContributions(ctx context.Context, cycleID string) (decimal.Decimal, int, error) {
	if m.SumContributionsFunc != nil {
		return m.SumContributionsFunc(ctx, cycleID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, c := range m.contributions[cycleID] {
		total = total.Add(c.Amount)
	}
	return total, len(m.contributions[cycleID]), nil
}

// MockAuditRepository is a mock implementation of usecase.AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	Logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, log)
	return nil
}

func (m *MockAuditRepository) GetByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.AuditLog
	for _, log := range m.Logs {
		if log.ResourceType == resourceType && log.ResourceID == resourceID {
			out = append(out, log)
		}
	}
	return out, nil
}

// MockSavingsRepository is a mock implementation of usecase.SavingsRepository.
type MockSavingsRepository struct {
	mu       sync.RWMutex
	deposits map[string][]*domain.SavingsDeposit

	CreateDepositFunc   func(ctx context.Context, deposit *domain.SavingsDeposit) error
	ListByMemberFunc    func(ctx context.Context, memberID string, limit, offset int) ([]*domain.SavingsDeposit, error)
	BalanceByMemberFunc func(ctx context.Context, memberID string) (*domain.SavingsBalance, error)
	SumAllFunc          func(ctx context.Context) (decimal.Decimal, error)
}

func NewMockSavingsRepository() *MockSavingsRepository {
	return &MockSavingsRepository{deposits: make(map[string][]*domain.SavingsDeposit)}
}

func (m *MockSavingsRepository) CreateDeposit(ctx context.Context, deposit *domain.SavingsDeposit) error {
	if m.CreateDepositFunc != nil {
		return m.CreateDepositFunc(ctx, deposit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deposits[deposit.MemberID] = append(m.deposits[deposit.MemberID], deposit)
	return nil
}

func (m *MockSavingsRepository) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.SavingsDeposit, error) {
	if m.ListByMemberFunc != nil {
		return m.ListByMemberFunc(ctx, memberID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.deposits[memberID], nil
}

func (m *MockSavingsRepository) BalanceByMember(ctx context.Context, memberID string) (*domain.SavingsBalance, error) {
	if m.BalanceByMemberFunc != nil {
		return m.BalanceByMemberFunc(ctx, memberID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, d := range m.deposits[memberID] {
		total = total.Add(d.Amount)
	}
	return &domain.SavingsBalance{
		MemberID:     memberID,
		Total:        total,
		DepositCount: len(m.deposits[memberID]),
	}, nil
}

func (m *MockSavingsRepository) SumAll(ctx context.Context) (decimal.Decimal, error) {
	if m.SumAllFunc != nil {
		return m.SumAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, list := range m.deposits {
		for _, d := range list {
			total = total.Add(d.Amount)
		}
	}
	return total, nil
}

// MockCache is a mock implementation of usecase.Cache.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error

	SetCalls int
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	m.SetCalls++
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

