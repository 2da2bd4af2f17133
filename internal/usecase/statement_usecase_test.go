package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/usecase"
	"github.com/tindi/chamaledger/internal/usecase/mocks"
)

func TestStatementUseCase_GetMemberStatement(t *testing.T) {
	memberRepo := mocks.NewMockMemberRepository()
	savingsRepo := mocks.NewMockSavingsRepository()
	cycleRepo := mocks.NewMockCycleRepository()
	loanRepo := mocks.NewMockLoanRepository()

	ctx := context.Background()

	_ = memberRepo.Create(ctx, &domain.Member{ID: "mem-1", FullName: "Njeri Mwangi", Status: domain.MemberActive})

	_ = savingsRepo.CreateDeposit(ctx, &domain.SavingsDeposit{
		ID: "d-1", MemberID: "mem-1", Amount: decimal.RequireFromString("5000"),
	})

	_ = cycleRepo.CreateContribution(ctx, &domain.Contribution{
		ID: "c-1", CycleID: "cycle-1", MemberID: "mem-1", Amount: decimal.RequireFromString("2000"),
	})
	_ = cycleRepo.CreateContribution(ctx, &domain.Contribution{
		ID: "c-2", CycleID: "cycle-2", MemberID: "mem-1", Amount: decimal.RequireFromString("2000"),
	})

	// one active loan and one completed loan; only the active one counts
	// toward outstanding
	_ = loanRepo.Create(ctx, &domain.Loan{
		ID: "loan-1", MemberID: "mem-1",
		Principal: decimal.RequireFromString("10000"),
		Months:    10,
		Remaining: decimal.RequireFromString("4000"),
		Status:    domain.LoanActive,
	})
	_ = loanRepo.Create(ctx, &domain.Loan{
		ID: "loan-2", MemberID: "mem-1",
		Principal: decimal.RequireFromString("3000"),
		Months:    3,
		Remaining: decimal.Zero,
		Status:    domain.LoanCompleted,
	})

	uc := usecase.NewStatementUseCase(memberRepo, savingsRepo, cycleRepo, loanRepo)

	statement, err := uc.GetMemberStatement(ctx, "mem-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if statement.Member.ID != "mem-1" {
		t.Errorf("unexpected member %s", statement.Member.ID)
	}
	if !statement.Savings.Total.Equal(decimal.RequireFromString("5000")) {
		t.Errorf("expected savings 5000, got %s", statement.Savings.Total)
	}
	if !statement.TotalContributed.Equal(decimal.RequireFromString("4000")) {
		t.Errorf("expected contributions 4000, got %s", statement.TotalContributed)
	}
	if !statement.TotalOutstanding.Equal(decimal.RequireFromString("4000")) {
		t.Errorf("expected outstanding 4000, got %s", statement.TotalOutstanding)
	}
	if len(statement.Loans) != 2 {
		t.Errorf("expected 2 loans, got %d", len(statement.Loans))
	}
}

func TestStatementUseCase_GetMemberStatement_UnknownMember(t *testing.T) {
	uc := usecase.NewStatementUseCase(
		mocks.NewMockMemberRepository(),
		mocks.NewMockSavingsRepository(),
		mocks.NewMockCycleRepository(),
		mocks.NewMockLoanRepository(),
	)

	_, err := uc.GetMemberStatement(context.Background(), "missing")
	if !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}
