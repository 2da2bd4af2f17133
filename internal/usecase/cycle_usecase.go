package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/domain"
)

// CycleUseCase handles contribution cycles.
type CycleUseCase struct {
	txManager  TransactionManager
	cycleRepo  CycleRepository
	memberRepo MemberRepository
	idGen      IDGenerator
}

// NewCycleUseCase creates a new CycleUseCase.
func NewCycleUseCase(
	txManager TransactionManager,
	cycleRepo CycleRepository,
	memberRepo MemberRepository,
	idGen IDGenerator,
) *CycleUseCase {
	return &CycleUseCase{
		txManager:  txManager,
		cycleRepo:  cycleRepo,
		memberRepo: memberRepo,
		idGen:      idGen,
	}
}

// CreateCycleInput represents input for opening a cycle.
type CreateCycleInput struct {
	Name               string
	ContributionAmount decimal.Decimal
	StartDate          *time.Time
}

// CreateCycle opens a new contribution cycle.
func (uc *CycleUseCase) CreateCycle(ctx context.Context, input CreateCycleInput) (*domain.Cycle, error) {
	if err := domain.ValidateAmount(input.ContributionAmount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	startDate := now
	if input.StartDate != nil {
		startDate = *input.StartDate
	}

	cycle := &domain.Cycle{
		ID:                 uc.idGen.Generate(),
		Name:               input.Name,
		ContributionAmount: input.ContributionAmount,
		StartDate:          startDate,
		Status:             domain.CycleOpen,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := uc.cycleRepo.Create(ctx, cycle); err != nil {
		return nil, err
	}

	return cycle, nil
}

// CloseCycleInput represents input for closing a cycle.
type CloseCycleInput struct {
	CycleID        string
	PayoutMemberID *string
}

// CloseCycle closes an open cycle, optionally recording who received the
// payout. Closing an already-closed cycle is a conflict, not a no-op, so
// double submissions surface.
func (uc *CycleUseCase) CloseCycle(ctx context.Context, input CloseCycleInput) (*domain.Cycle, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cycle, err := uc.cycleRepo.GetByIDForUpdate(ctx, tx, input.CycleID)
	if err != nil {
		return nil, err
	}

	if !cycle.IsOpen() {
		return nil, domain.ErrCycleClosed
	}

	if input.PayoutMemberID != nil {
		if _, err := uc.memberRepo.GetByID(ctx, *input.PayoutMemberID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	if err := uc.cycleRepo.Close(ctx, tx, cycle.ID, input.PayoutMemberID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	cycle.Status = domain.CycleClosed
	cycle.PayoutMemberID = input.PayoutMemberID
	cycle.EndDate = &now
	cycle.UpdatedAt = now

	return cycle, nil
}

// RecordContributionInput represents input for recording a contribution.
type RecordContributionInput struct {
	CycleID  string
	MemberID string
	Amount   decimal.Decimal
	PaidAt   *time.Time
}

// RecordContribution records a member's payment into an open cycle.
func (uc *CycleUseCase) RecordContribution(ctx context.Context, input RecordContributionInput) (*domain.Contribution, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	cycle, err := uc.cycleRepo.GetByID(ctx, input.CycleID)
	if err != nil {
		return nil, err
	}

	if !cycle.IsOpen() {
		return nil, domain.ErrCycleClosed
	}

	member, err := uc.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}

	if !member.IsActive() {
		return nil, domain.ErrMemberInactive
	}

	now := time.Now().UTC()

	paidAt := now
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	contribution := &domain.Contribution{
		ID:        uc.idGen.Generate(),
		CycleID:   input.CycleID,
		MemberID:  input.MemberID,
		Amount:    input.Amount,
		PaidAt:    paidAt,
		CreatedAt: now,
	}

	if err := uc.cycleRepo.CreateContribution(ctx, contribution); err != nil {
		return nil, err
	}

	return contribution, nil
}

// GetCycle retrieves a cycle with its contribution rollup.
func (uc *CycleUseCase) GetCycle(ctx context.Context, id string) (*domain.CycleSummary, error) {
	cycle, err := uc.cycleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	total, contributors, err := uc.cycleRepo.SumContributions(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.CycleSummary{
		Cycle:        cycle,
		TotalPaid:    total,
		Contributors: contributors,
	}, nil
}

// ListCyclesInput represents input for listing cycles.
type ListCyclesInput struct {
	Limit  int
	Offset int
}

// ListCycles lists cycles, newest first.
func (uc *CycleUseCase) ListCycles(ctx context.Context, input ListCyclesInput) ([]*domain.Cycle, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.cycleRepo.List(ctx, limit, offset)
}

// ListContributions lists a cycle's contributions.
func (uc *CycleUseCase) ListContributions(ctx context.Context, cycleID string) ([]*domain.Contribution, error) {
	if _, err := uc.cycleRepo.GetByID(ctx, cycleID); err != nil {
		return nil, err
	}

	return uc.cycleRepo.ListContributions(ctx, cycleID)
}
