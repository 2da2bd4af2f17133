package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CycleStatus represents the lifecycle of a contribution cycle.
type CycleStatus string

const (
	CycleOpen   CycleStatus = "open"
	CycleClosed CycleStatus = "closed"
)

// Cycle represents one contribution round of the group. Every active
// member is expected to pay ContributionAmount before the cycle closes;
// the payout member receives the pot.
type Cycle struct {
	ID                 string
	Name               string
	ContributionAmount decimal.Decimal
	StartDate          time.Time
	EndDate            *time.Time
	Status             CycleStatus
	PayoutMemberID     *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsOpen reports whether contributions may still be recorded.
func (c *Cycle) IsOpen() bool {
	return c.Status == CycleOpen
}

// Contribution represents one member's payment into a cycle.
type Contribution struct {
	ID        string
	CycleID   string
	MemberID  string
	Amount    decimal.Decimal
	PaidAt    time.Time
	CreatedAt time.Time
}

// CycleSummary is the rollup of a cycle's contributions.
type CycleSummary struct {
	Cycle        *Cycle
	TotalPaid    decimal.Decimal
	Contributors int
}
