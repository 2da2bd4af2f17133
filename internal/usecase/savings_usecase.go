package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/domain"
)

// SavingsUseCase handles savings deposits and balances.
type SavingsUseCase struct {
	savingsRepo SavingsRepository
	memberRepo  MemberRepository
	idGen       IDGenerator
}

// NewSavingsUseCase creates a new SavingsUseCase.
func NewSavingsUseCase(savingsRepo SavingsRepository, memberRepo MemberRepository, idGen IDGenerator) *SavingsUseCase {
	return &SavingsUseCase{
		savingsRepo: savingsRepo,
		memberRepo:  memberRepo,
		idGen:       idGen,
	}
}

// RecordDepositInput represents input for recording a savings deposit.
type RecordDepositInput struct {
	MemberID    string
	CycleID     *string
	Amount      decimal.Decimal
	Method      string
	Reference   string
	DepositedAt *time.Time
}

// RecordDeposit records a deposit into a member's savings.
func (uc *SavingsUseCase) RecordDeposit(ctx context.Context, input RecordDepositInput) (*domain.SavingsDeposit, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	member, err := uc.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}

	if !member.IsActive() {
		return nil, domain.ErrMemberInactive
	}

	now := time.Now().UTC()

	depositedAt := now
	if input.DepositedAt != nil {
		depositedAt = *input.DepositedAt
	}

	deposit := &domain.SavingsDeposit{
		ID:          uc.idGen.Generate(),
		MemberID:    input.MemberID,
		CycleID:     input.CycleID,
		Amount:      input.Amount,
		Method:      input.Method,
		Reference:   input.Reference,
		DepositedAt: depositedAt,
		CreatedAt:   now,
	}

	if err := uc.savingsRepo.CreateDeposit(ctx, deposit); err != nil {
		return nil, err
	}

	return deposit, nil
}

// ListDepositsInput represents input for listing a member's deposits.
type ListDepositsInput struct {
	MemberID string
	Limit    int
	Offset   int
}

// ListDeposits lists a member's deposits, newest first.
func (uc *SavingsUseCase) ListDeposits(ctx context.Context, input ListDepositsInput) ([]*domain.SavingsDeposit, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.savingsRepo.ListByMember(ctx, input.MemberID, limit, offset)
}

// GetBalance returns a member's savings rollup.
func (uc *SavingsUseCase) GetBalance(ctx context.Context, memberID string) (*domain.SavingsBalance, error) {
	if _, err := uc.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, err
	}

	return uc.savingsRepo.BalanceByMember(ctx, memberID)
}
