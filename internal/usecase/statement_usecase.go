package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/domain"
)

// StatementUseCase assembles per-member statements.
type StatementUseCase struct {
	memberRepo  MemberRepository
	savingsRepo SavingsRepository
	cycleRepo   CycleRepository
	loanRepo    LoanRepository
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(
	memberRepo MemberRepository,
	savingsRepo SavingsRepository,
	cycleRepo CycleRepository,
	loanRepo LoanRepository,
) *StatementUseCase {
	return &StatementUseCase{
		memberRepo:  memberRepo,
		savingsRepo: savingsRepo,
		cycleRepo:   cycleRepo,
		loanRepo:    loanRepo,
	}
}

// MemberStatement is the rollup of a member's position in the group.
type MemberStatement struct {
	Member           *domain.Member
	Savings          *domain.SavingsBalance
	Contributions    []*domain.Contribution
	TotalContributed decimal.Decimal
	Loans            []*domain.Loan
	TotalOutstanding decimal.Decimal
	GeneratedAt      time.Time
}

// GetMemberStatement builds a statement for one member.
func (uc *StatementUseCase) GetMemberStatement(ctx context.Context, memberID string) (*MemberStatement, error) {
	member, err := uc.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	savings, err := uc.savingsRepo.BalanceByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	contributions, err := uc.cycleRepo.ListContributionsByMember(ctx, memberID, MaxPageSize, 0)
	if err != nil {
		return nil, err
	}

	totalContributed := decimal.Zero
	for _, c := range contributions {
		totalContributed = totalContributed.Add(c.Amount)
	}

	loans, err := uc.loanRepo.ListByMember(ctx, memberID, MaxPageSize, 0)
	if err != nil {
		return nil, err
	}

	totalOutstanding := decimal.Zero
	for _, l := range loans {
		if l.Status != domain.LoanCompleted {
			totalOutstanding = totalOutstanding.Add(l.Remaining)
		}
	}

	return &MemberStatement{
		Member:           member,
		Savings:          savings,
		Contributions:    contributions,
		TotalContributed: totalContributed,
		Loans:            loans,
		TotalOutstanding: totalOutstanding,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}
