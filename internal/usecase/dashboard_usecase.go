package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/domain"
)

const (
	dashboardCacheKey = "dashboard:group"
	dashboardCacheTTL = 30 * time.Second
)

// DashboardUseCase assembles role-shaped dashboard summaries.
type DashboardUseCase struct {
	memberRepo  MemberRepository
	savingsRepo SavingsRepository
	loanRepo    LoanRepository
	cache       Cache
}

// NewDashboardUseCase creates a new DashboardUseCase.
func NewDashboardUseCase(
	memberRepo MemberRepository,
	savingsRepo SavingsRepository,
	loanRepo LoanRepository,
	cache Cache,
) *DashboardUseCase {
	return &DashboardUseCase{
		memberRepo:  memberRepo,
		savingsRepo: savingsRepo,
		loanRepo:    loanRepo,
		cache:       cache,
	}
}

// GroupSummary is the admin/treasurer dashboard rollup.
type GroupSummary struct {
	ActiveMembers    int             `json:"active_members"`
	TotalSavings     decimal.Decimal `json:"total_savings"`
	OutstandingLoans decimal.Decimal `json:"outstanding_loans"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// GetGroupSummary builds the group-wide rollup, served from cache when
// fresh. A stale or missing cache entry falls through to the database.
func (uc *DashboardUseCase) GetGroupSummary(ctx context.Context) (*GroupSummary, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, dashboardCacheKey); err == nil && cached != "" {
			var summary GroupSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	activeMembers, err := uc.memberRepo.CountByStatus(ctx, domain.MemberActive)
	if err != nil {
		return nil, err
	}

	totalSavings, err := uc.savingsRepo.SumAll(ctx)
	if err != nil {
		return nil, err
	}

	outstanding, err := uc.loanRepo.SumOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	summary := &GroupSummary{
		ActiveMembers:    activeMembers,
		TotalSavings:     totalSavings,
		OutstandingLoans: outstanding,
		GeneratedAt:      time.Now().UTC(),
	}

	if uc.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			_ = uc.cache.Set(ctx, dashboardCacheKey, string(data), dashboardCacheTTL)
		}
	}

	return summary, nil
}

// MemberSummary is the dashboard rollup shown to a member account. It
// covers only that member's own records.
type MemberSummary struct {
	MemberID       string          `json:"member_id"`
	SavingsBalance decimal.Decimal `json:"savings_balance"`
	DepositCount   int             `json:"deposit_count"`
	LoansOwed      decimal.Decimal `json:"loans_owed"`
	OpenLoans      int             `json:"open_loans"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// GetMemberSummary builds a single member's rollup. Not cached; the per
// member read is cheap and members expect to see their own deposit
// immediately.
func (uc *DashboardUseCase) GetMemberSummary(ctx context.Context, memberID string) (*MemberSummary, error) {
	if _, err := uc.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, err
	}

	balance, err := uc.savingsRepo.BalanceByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	loans, err := uc.loanRepo.ListByMember(ctx, memberID, MaxPageSize, 0)
	if err != nil {
		return nil, err
	}

	owed := decimal.Zero
	open := 0
	for _, loan := range loans {
		if loan.Status != domain.LoanCompleted {
			owed = owed.Add(loan.Remaining)
			open++
		}
	}

	return &MemberSummary{
		MemberID:       memberID,
		SavingsBalance: balance.Total,
		DepositCount:   balance.DepositCount,
		LoansOwed:      owed,
		OpenLoans:      open,
		GeneratedAt:    time.Now().UTC(),
	}, nil
}
