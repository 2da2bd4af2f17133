package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/usecase"
)

// CreateMemberRequest represents a request to register a member.
type CreateMemberRequest struct {
	FullName   string     `json:"full_name"`
	Phone      string     `json:"phone"`
	NationalID string     `json:"national_id,omitempty"`
	JoinedAt   *time.Time `json:"joined_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateMemberRequest) ToUseCaseInput() usecase.CreateMemberInput {
	return usecase.CreateMemberInput{
		FullName:   r.FullName,
		Phone:      r.Phone,
		NationalID: r.NationalID,
		JoinedAt:   r.JoinedAt,
	}
}

// UpdateMemberRequest represents a partial member update.
type UpdateMemberRequest struct {
	FullName *string              `json:"full_name,omitempty"`
	Phone    *string              `json:"phone,omitempty"`
	Status   *domain.MemberStatus `json:"status,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateMemberRequest) ToUseCaseInput(id string) usecase.UpdateMemberInput {
	return usecase.UpdateMemberInput{
		ID:       id,
		FullName: r.FullName,
		Phone:    r.Phone,
		Status:   r.Status,
	}
}

// CreateDepositRequest represents a request to record a savings deposit.
type CreateDepositRequest struct {
	MemberID    string          `json:"member_id"`
	CycleID     *string         `json:"cycle_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	DepositedAt *time.Time      `json:"deposited_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDepositRequest) ToUseCaseInput() usecase.RecordDepositInput {
	return usecase.RecordDepositInput{
		MemberID:    r.MemberID,
		CycleID:     r.CycleID,
		Amount:      r.Amount,
		Method:      r.Method,
		Reference:   r.Reference,
		DepositedAt: r.DepositedAt,
	}
}

// CreateCycleRequest represents a request to open a contribution cycle.
type CreateCycleRequest struct {
	Name               string          `json:"name"`
	ContributionAmount decimal.Decimal `json:"contribution_amount"`
	StartDate          *time.Time      `json:"start_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCycleRequest) ToUseCaseInput() usecase.CreateCycleInput {
	return usecase.CreateCycleInput{
		Name:               r.Name,
		ContributionAmount: r.ContributionAmount,
		StartDate:          r.StartDate,
	}
}

// CloseCycleRequest represents a request to close a cycle.
type CloseCycleRequest struct {
	PayoutMemberID *string `json:"payout_member_id,omitempty"`
}

// CreateContributionRequest represents a request to record a contribution.
type CreateContributionRequest struct {
	MemberID string          `json:"member_id"`
	Amount   decimal.Decimal `json:"amount"`
	PaidAt   *time.Time      `json:"paid_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateContributionRequest) ToUseCaseInput(cycleID string) usecase.RecordContributionInput {
	return usecase.RecordContributionInput{
		CycleID:  cycleID,
		MemberID: r.MemberID,
		Amount:   r.Amount,
		PaidAt:   r.PaidAt,
	}
}

// CreateLoanRequest represents a request to issue a loan.
type CreateLoanRequest struct {
	MemberID  string          `json:"member_id"`
	Principal decimal.Decimal `json:"principal"`
	Months    int             `json:"months"`
	Purpose   string          `json:"purpose,omitempty"`
	IssuedAt  *time.Time      `json:"issued_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateLoanRequest) ToUseCaseInput() usecase.CreateLoanInput {
	return usecase.CreateLoanInput{
		MemberID:  r.MemberID,
		Principal: r.Principal,
		Months:    r.Months,
		Purpose:   r.Purpose,
		IssuedAt:  r.IssuedAt,
	}
}

// CreateRepaymentRequest represents a request to record a loan repayment.
type CreateRepaymentRequest struct {
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateRepaymentRequest) ToUseCaseInput(loanID, actor string) usecase.RecordRepaymentInput {
	return usecase.RecordRepaymentInput{
		LoanID: loanID,
		Month:  r.Month,
		Amount: r.Amount,
		Actor:  actor,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest represents a request to create a login account.
type CreateUserRequest struct {
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
	MemberID *string     `json:"member_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
		Role:     r.Role,
		MemberID: r.MemberID,
	}
}
