package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsDeposit represents a single deposit into a member's savings.
type SavingsDeposit struct {
	ID          string
	MemberID    string
	CycleID     *string
	Amount      decimal.Decimal
	Method      string
	Reference   string
	DepositedAt time.Time
	CreatedAt   time.Time
}

// SavingsBalance is the rollup of a member's deposits.
type SavingsBalance struct {
	MemberID     string
	Total        decimal.Decimal
	DepositCount int
	LastDeposit  *time.Time
}
