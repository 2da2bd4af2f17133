package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/usecase"
	"github.com/tindi/chamaledger/internal/usecase/mocks"
)

func TestDashboardUseCase_GetGroupSummary(t *testing.T) {
	memberRepo := mocks.NewMockMemberRepository()
	savingsRepo := mocks.NewMockSavingsRepository()
	loanRepo := mocks.NewMockLoanRepository()
	cache := mocks.NewMockCache()

	ctx := context.Background()

	_ = memberRepo.Create(ctx, &domain.Member{ID: "mem-1", Status: domain.MemberActive})
	_ = memberRepo.Create(ctx, &domain.Member{ID: "mem-2", Status: domain.MemberActive})
	_ = memberRepo.Create(ctx, &domain.Member{ID: "mem-3", Status: domain.MemberExited})

	_ = savingsRepo.CreateDeposit(ctx, &domain.SavingsDeposit{
		ID: "d-1", MemberID: "mem-1", Amount: decimal.RequireFromString("5000"),
	})

	_ = loanRepo.Create(ctx, &domain.Loan{
		ID: "loan-1", MemberID: "mem-1",
		Principal: decimal.RequireFromString("10000"),
		Months:    10,
		Remaining: decimal.RequireFromString("7000"),
		Status:    domain.LoanActive,
	})

	uc := usecase.NewDashboardUseCase(memberRepo, savingsRepo, loanRepo, cache)

	summary, err := uc.GetGroupSummary(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.ActiveMembers != 2 {
		t.Errorf("expected 2 active members, got %d", summary.ActiveMembers)
	}
	if !summary.TotalSavings.Equal(decimal.RequireFromString("5000")) {
		t.Errorf("expected savings 5000, got %s", summary.TotalSavings)
	}
	if !summary.OutstandingLoans.Equal(decimal.RequireFromString("7000")) {
		t.Errorf("expected outstanding 7000, got %s", summary.OutstandingLoans)
	}

	if cache.SetCalls != 1 {
		t.Errorf("expected summary to be cached, got %d set calls", cache.SetCalls)
	}
}

func TestDashboardUseCase_GetGroupSummary_ServedFromCache(t *testing.T) {
	memberRepo := mocks.NewMockMemberRepository()
	memberRepo.CountByStatusFunc = func(ctx context.Context, status domain.MemberStatus) (int, error) {
		t.Fatal("expected cached summary, repository was queried")
		return 0, nil
	}

	cache := mocks.NewMockCache()
	cached, _ := json.Marshal(usecase.GroupSummary{
		ActiveMembers:    5,
		TotalSavings:     decimal.RequireFromString("12000"),
		OutstandingLoans: decimal.RequireFromString("3000"),
		GeneratedAt:      time.Now().UTC(),
	})
	_ = cache.Set(context.Background(), "dashboard:group", string(cached), time.Minute)

	uc := usecase.NewDashboardUseCase(memberRepo, mocks.NewMockSavingsRepository(), mocks.NewMockLoanRepository(), cache)

	summary, err := uc.GetGroupSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.ActiveMembers != 5 {
		t.Errorf("expected cached summary, got %d active members", summary.ActiveMembers)
	}
}

func TestDashboardUseCase_GetGroupSummary_NilCache(t *testing.T) {
	uc := usecase.NewDashboardUseCase(
		mocks.NewMockMemberRepository(),
		mocks.NewMockSavingsRepository(),
		mocks.NewMockLoanRepository(),
		nil,
	)

	if _, err := uc.GetGroupSummary(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDashboardUseCase_GetMemberSummary(t *testing.T) {
	memberRepo := mocks.NewMockMemberRepository()
	savingsRepo := mocks.NewMockSavingsRepository()
	loanRepo := mocks.NewMockLoanRepository()

	ctx := context.Background()

	_ = memberRepo.Create(ctx, &domain.Member{ID: "mem-1", Status: domain.MemberActive})

	_ = savingsRepo.CreateDeposit(ctx, &domain.SavingsDeposit{
		ID: "d-1", MemberID: "mem-1", Amount: decimal.RequireFromString("2000"),
	})
	_ = savingsRepo.CreateDeposit(ctx, &domain.SavingsDeposit{
		ID: "d-2", MemberID: "mem-1", Amount: decimal.RequireFromString("1500"),
	})

	_ = loanRepo.Create(ctx, &domain.Loan{
		ID: "loan-1", MemberID: "mem-1",
		Principal: decimal.RequireFromString("6000"),
		Months:    6,
		Remaining: decimal.RequireFromString("4000"),
		Status:    domain.LoanActive,
	})
	_ = loanRepo.Create(ctx, &domain.Loan{
		ID: "loan-2", MemberID: "mem-1",
		Principal: decimal.RequireFromString("1000"),
		Months:    2,
		Remaining: decimal.Zero,
		Status:    domain.LoanCompleted,
	})

	uc := usecase.NewDashboardUseCase(memberRepo, savingsRepo, loanRepo, nil)

	summary, err := uc.GetMemberSummary(ctx, "mem-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.SavingsBalance.Equal(decimal.RequireFromString("3500")) {
		t.Errorf("expected balance 3500, got %s", summary.SavingsBalance)
	}
	if summary.DepositCount != 2 {
		t.Errorf("expected 2 deposits, got %d", summary.DepositCount)
	}
	if !summary.LoansOwed.Equal(decimal.RequireFromString("4000")) {
		t.Errorf("expected owed 4000, got %s", summary.LoansOwed)
	}
	if summary.OpenLoans != 1 {
		t.Errorf("expected 1 open loan, got %d", summary.OpenLoans)
	}
}

func TestDashboardUseCase_GetMemberSummary_UnknownMember(t *testing.T) {
	uc := usecase.NewDashboardUseCase(
		mocks.NewMockMemberRepository(),
		mocks.NewMockSavingsRepository(),
		mocks.NewMockLoanRepository(),
		nil,
	)

	if _, err := uc.GetMemberSummary(context.Background(), "nope"); err != domain.ErrMemberNotFound {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}
