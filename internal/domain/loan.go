package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus represents the lifecycle of a loan.
type LoanStatus string

const (
	// LoanPending means the loan has been issued but no repayment recorded.
	LoanPending LoanStatus = "PENDING"

	// LoanActive means at least one repayment has been recorded.
	LoanActive LoanStatus = "ACTIVE"

	// LoanCompleted means the term was reached or the balance exhausted.
	LoanCompleted LoanStatus = "COMPLETED"
)

// completionEpsilon absorbs rounding drift when deciding whether a loan's
// balance is exhausted. The stored remaining balance itself is kept exact;
// the tolerance applies to the completion check only.
var completionEpsilon = decimal.New(1, -2) // 0.01

// Loan represents a disbursed principal repaid over a fixed number of
// monthly periods. Remaining, CurrentMonth, TotalPrincipalPaid, Status and
// CompletedAt are derived from the loan's transaction set and must only be
// written as the output of Reconcile, never adjusted incrementally.
type Loan struct {
	ID                 string
	MemberID           string
	Principal          decimal.Decimal
	Months             int
	Remaining          decimal.Decimal
	CurrentMonth       int
	TotalPrincipalPaid decimal.Decimal
	Status             LoanStatus
	CompletedAt        *time.Time
	Purpose            string
	IssuedAt           time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// LoanTransaction represents a single recorded repayment applied to a
// loan's principal in a given period. Months are not required to be unique
// or contiguous.
type LoanTransaction struct {
	ID         string
	LoanID     string
	Month      int
	Amount     decimal.Decimal
	RecordedAt time.Time
	CreatedAt  time.Time
}

// LoanDerivedState holds the fields Reconcile computes. It is persisted
// atomically together with whatever transaction-set mutation produced it.
type LoanDerivedState struct {
	Remaining          decimal.Decimal
	CurrentMonth       int
	TotalPrincipalPaid decimal.Decimal
	Status             LoanStatus
	CompletedAt        *time.Time
}

// Reconcile derives the loan's balance and status from the complete set of
// surviving transactions. It is a pure fold: remaining = principal - sum,
// currentMonth = max month (0 if empty), totalPaid = sum. Sum and max are
// commutative, so the result does not depend on iteration order.
//
// A loan is complete when the term is reached (currentMonth >= Months, any
// leftover balance is forgiven) or the balance is exhausted within
// completionEpsilon. When complete, the loan's existing CompletedAt is
// carried through unchanged; this path never mints a timestamp (that is
// the repayment-recording path's job). When not complete, CompletedAt is
// cleared, since deleting a transaction can revert a completed loan.
func (l *Loan) Reconcile(txs []*LoanTransaction) LoanDerivedState {
	remaining := l.Principal
	totalPaid := decimal.Zero
	currentMonth := 0

	for _, t := range txs {
		remaining = remaining.Sub(t.Amount)
		totalPaid = totalPaid.Add(t.Amount)
		if t.Month > currentMonth {
			currentMonth = t.Month
		}
	}

	state := LoanDerivedState{
		Remaining:          remaining,
		CurrentMonth:       currentMonth,
		TotalPrincipalPaid: totalPaid,
	}

	complete := currentMonth >= l.Months || remaining.LessThanOrEqual(completionEpsilon)

	switch {
	case complete:
		state.Status = LoanCompleted
		state.CompletedAt = l.CompletedAt
	case currentMonth > 0:
		state.Status = LoanActive
	default:
		state.Status = LoanPending
	}

	return state
}

// Apply writes a derived state back onto the loan.
func (l *Loan) Apply(state LoanDerivedState, now time.Time) {
	l.Remaining = state.Remaining
	l.CurrentMonth = state.CurrentMonth
	l.TotalPrincipalPaid = state.TotalPrincipalPaid
	l.Status = state.Status
	l.CompletedAt = state.CompletedAt
	l.UpdatedAt = now
}

// Validate checks the loan's immutable fields.
func (l *Loan) Validate() error {
	if l.Principal.IsNegative() {
		return ErrInvalidPrincipal
	}
	if l.Months < 1 {
		return ErrInvalidTerm
	}
	return nil
}

// Validate checks a repayment before it is recorded.
func (t *LoanTransaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if t.Month < 1 {
		return ErrInvalidMonth
	}
	return nil
}
