package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/domain"
)

// MemberRepository defines data access for members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	List(ctx context.Context, limit, offset int) ([]*domain.Member, error)
	CountByStatus(ctx context.Context, status domain.MemberStatus) (int, error)
}

// LoanRepository defines data access for loans.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Loan, error)
	// UpdateDerived writes the reconciler's output; it must only be called
	// inside the same transaction as the mutation that produced it.
	UpdateDerived(ctx context.Context, tx Transaction, id string, state domain.LoanDerivedState, updatedAt time.Time) error
	ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.Loan, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Loan, error)
	SumOutstanding(ctx context.Context) (decimal.Decimal, error)
}

// LoanTransactionRepository defines data access for loan repayments.
type LoanTransactionRepository interface {
	Create(ctx context.Context, tx Transaction, lt *domain.LoanTransaction) error
	GetByID(ctx context.Context, id string) (*domain.LoanTransaction, error)
	Delete(ctx context.Context, tx Transaction, id string) error
	// ListByLoan returns the loan's transactions ordered by month ascending.
	ListByLoan(ctx context.Context, tx Transaction, loanID string) ([]*domain.LoanTransaction, error)
}

// SavingsRepository defines data access for savings deposits.
type SavingsRepository interface {
	CreateDeposit(ctx context.Context, deposit *domain.SavingsDeposit) error
	ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.SavingsDeposit, error)
	BalanceByMember(ctx context.Context, memberID string) (*domain.SavingsBalance, error)
	SumAll(ctx context.Context) (decimal.Decimal, error)
}

// CycleRepository defines data access for cycles and contributions.
type CycleRepository interface {
	Create(ctx context.Context, cycle *domain.Cycle) error
	GetByID(ctx context.Context, id string) (*domain.Cycle, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Cycle, error)
	Close(ctx context.Context, tx Transaction, id string, payoutMemberID *string, closedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Cycle, error)
	CreateContribution(ctx context.Context, contribution *domain.Contribution) error
	ListContributions(ctx context.Context, cycleID string) ([]*domain.Contribution, error)
	ListContributionsByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.Contribution, error)
	SumContributions(ctx context.Context, cycleID string) (decimal.Decimal, int, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	GetByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation when it fails with a transient error, such
// as a deadlock or serialization failure.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// SessionStore handles server-side session storage. The cookie carries only
// the opaque token; everything else lives behind this interface.
type SessionStore interface {
	Create(ctx context.Context, token string, session *domain.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// Cache defines caching operations for read-mostly rollups.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
