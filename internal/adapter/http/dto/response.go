package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/usecase"
)

// MemberResponse represents a member in API responses.
type MemberResponse struct {
	ID         string              `json:"id"`
	FullName   string              `json:"full_name"`
	Phone      string              `json:"phone"`
	NationalID string              `json:"national_id,omitempty"`
	Status     domain.MemberStatus `json:"status"`
	JoinedAt   time.Time           `json:"joined_at"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// MemberFromDomain converts a domain member to a response.
func MemberFromDomain(m *domain.Member) *MemberResponse {
	return &MemberResponse{
		ID:         m.ID,
		FullName:   m.FullName,
		Phone:      m.Phone,
		NationalID: m.NationalID,
		Status:     m.Status,
		JoinedAt:   m.JoinedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// MembersFromDomain converts domain members to responses.
func MembersFromDomain(members []*domain.Member) []*MemberResponse {
	result := make([]*MemberResponse, len(members))
	for i, m := range members {
		result[i] = MemberFromDomain(m)
	}
	return result
}

// ListMembersResponse wraps a member listing.
type ListMembersResponse struct {
	Members []*MemberResponse `json:"members"`
	Total   int64             `json:"total"`
}

// DepositResponse represents a savings deposit in API responses.
type DepositResponse struct {
	ID          string          `json:"id"`
	MemberID    string          `json:"member_id"`
	CycleID     *string         `json:"cycle_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	DepositedAt time.Time       `json:"deposited_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DepositFromDomain converts a domain deposit to a response.
func DepositFromDomain(d *domain.SavingsDeposit) *DepositResponse {
	return &DepositResponse{
		ID:          d.ID,
		MemberID:    d.MemberID,
		CycleID:     d.CycleID,
		Amount:      d.Amount,
		Method:      d.Method,
		Reference:   d.Reference,
		DepositedAt: d.DepositedAt,
		CreatedAt:   d.CreatedAt,
	}
}

// DepositsFromDomain converts domain deposits to responses.
func DepositsFromDomain(deposits []*domain.SavingsDeposit) []*DepositResponse {
	result := make([]*DepositResponse, len(deposits))
	for i, d := range deposits {
		result[i] = DepositFromDomain(d)
	}
	return result
}

// BalanceResponse represents a member's savings rollup.
type BalanceResponse struct {
	MemberID     string          `json:"member_id"`
	Total        decimal.Decimal `json:"total"`
	DepositCount int             `json:"deposit_count"`
	LastDeposit  *time.Time      `json:"last_deposit,omitempty"`
}

// BalanceFromDomain converts a domain balance to a response.
func BalanceFromDomain(b *domain.SavingsBalance) *BalanceResponse {
	return &BalanceResponse{
		MemberID:     b.MemberID,
		Total:        b.Total,
		DepositCount: b.DepositCount,
		LastDeposit:  b.LastDeposit,
	}
}

// CycleResponse represents a cycle in API responses.
type CycleResponse struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	ContributionAmount decimal.Decimal    `json:"contribution_amount"`
	StartDate          time.Time          `json:"start_date"`
	EndDate            *time.Time         `json:"end_date,omitempty"`
	Status             domain.CycleStatus `json:"status"`
	PayoutMemberID     *string            `json:"payout_member_id,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// CycleFromDomain converts a domain cycle to a response.
func CycleFromDomain(c *domain.Cycle) *CycleResponse {
	return &CycleResponse{
		ID:                 c.ID,
		Name:               c.Name,
		ContributionAmount: c.ContributionAmount,
		StartDate:          c.StartDate,
		EndDate:            c.EndDate,
		Status:             c.Status,
		PayoutMemberID:     c.PayoutMemberID,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// CyclesFromDomain converts domain cycles to responses.
func CyclesFromDomain(cycles []*domain.Cycle) []*CycleResponse {
	result := make([]*CycleResponse, len(cycles))
	for i, c := range cycles {
		result[i] = CycleFromDomain(c)
	}
	return result
}

// CycleSummaryResponse represents a cycle with its contribution rollup.
type CycleSummaryResponse struct {
	Cycle        *CycleResponse  `json:"cycle"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Contributors int             `json:"contributors"`
}

// CycleSummaryFromDomain converts a domain summary to a response.
func CycleSummaryFromDomain(s *domain.CycleSummary) *CycleSummaryResponse {
	return &CycleSummaryResponse{
		Cycle:        CycleFromDomain(s.Cycle),
		TotalPaid:    s.TotalPaid,
		Contributors: s.Contributors,
	}
}

// ContributionResponse represents a contribution in API responses.
type ContributionResponse struct {
	ID        string          `json:"id"`
	CycleID   string          `json:"cycle_id"`
	MemberID  string          `json:"member_id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// ContributionFromDomain converts a domain contribution to a response.
func ContributionFromDomain(c *domain.Contribution) *ContributionResponse {
	return &ContributionResponse{
		ID:        c.ID,
		CycleID:   c.CycleID,
		MemberID:  c.MemberID,
		Amount:    c.Amount,
		PaidAt:    c.PaidAt,
		CreatedAt: c.CreatedAt,
	}
}

// ContributionsFromDomain converts domain contributions to responses.
func ContributionsFromDomain(contributions []*domain.Contribution) []*ContributionResponse {
	result := make([]*ContributionResponse, len(contributions))
	for i, c := range contributions {
		result[i] = ContributionFromDomain(c)
	}
	return result
}

// LoanResponse represents a loan in API responses.
type LoanResponse struct {
	ID                 string            `json:"id"`
	MemberID           string            `json:"member_id"`
	Principal          decimal.Decimal   `json:"principal"`
	Months             int               `json:"months"`
	Remaining          decimal.Decimal   `json:"remaining"`
	CurrentMonth       int               `json:"current_month"`
	TotalPrincipalPaid decimal.Decimal   `json:"total_principal_paid"`
	Status             domain.LoanStatus `json:"status"`
	CompletedAt        *time.Time        `json:"completed_at,omitempty"`
	Purpose            string            `json:"purpose,omitempty"`
	IssuedAt           time.Time         `json:"issued_at"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// LoanFromDomain converts a domain loan to a response.
func LoanFromDomain(l *domain.Loan) *LoanResponse {
	return &LoanResponse{
		ID:                 l.ID,
		MemberID:           l.MemberID,
		Principal:          l.Principal,
		Months:             l.Months,
		Remaining:          l.Remaining,
		CurrentMonth:       l.CurrentMonth,
		TotalPrincipalPaid: l.TotalPrincipalPaid,
		Status:             l.Status,
		CompletedAt:        l.CompletedAt,
		Purpose:            l.Purpose,
		IssuedAt:           l.IssuedAt,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

// LoansFromDomain converts domain loans to responses.
func LoansFromDomain(loans []*domain.Loan) []*LoanResponse {
	result := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		result[i] = LoanFromDomain(l)
	}
	return result
}

// LoanTransactionResponse represents a repayment in API responses.
type LoanTransactionResponse struct {
	ID         string          `json:"id"`
	LoanID     string          `json:"loan_id"`
	Month      int             `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	RecordedAt time.Time       `json:"recorded_at"`
	CreatedAt  time.Time       `json:"created_at"`
}

// LoanTransactionFromDomain converts a domain repayment to a response.
func LoanTransactionFromDomain(t *domain.LoanTransaction) *LoanTransactionResponse {
	return &LoanTransactionResponse{
		ID:         t.ID,
		LoanID:     t.LoanID,
		Month:      t.Month,
		Amount:     t.Amount,
		RecordedAt: t.RecordedAt,
		CreatedAt:  t.CreatedAt,
	}
}

// LoanTransactionsFromDomain converts domain repayments to responses.
func LoanTransactionsFromDomain(txs []*domain.LoanTransaction) []*LoanTransactionResponse {
	result := make([]*LoanTransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = LoanTransactionFromDomain(t)
	}
	return result
}

// LoanDetailResponse represents a loan with its full transaction set.
type LoanDetailResponse struct {
	Loan         *LoanResponse              `json:"loan"`
	Transactions []*LoanTransactionResponse `json:"transactions"`
}

// UserResponse represents a user account in API responses.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	MemberID  *string     `json:"member_id,omitempty"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		MemberID:  u.MemberID,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// SessionResponse represents the authenticated session.
type SessionResponse struct {
	UserID   string      `json:"user_id"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	MemberID *string     `json:"member_id,omitempty"`
}

// SessionFromDomain converts a domain session to a response.
func SessionFromDomain(s *domain.Session) *SessionResponse {
	return &SessionResponse{
		UserID:   s.UserID,
		Email:    s.Email,
		Role:     s.Role,
		MemberID: s.MemberID,
	}
}

// StatementResponse represents a member statement.
type StatementResponse struct {
	Member           *MemberResponse         `json:"member"`
	Savings          *BalanceResponse        `json:"savings"`
	Contributions    []*ContributionResponse `json:"contributions"`
	TotalContributed decimal.Decimal         `json:"total_contributed"`
	Loans            []*LoanResponse         `json:"loans"`
	TotalOutstanding decimal.Decimal         `json:"total_outstanding"`
	GeneratedAt      time.Time               `json:"generated_at"`
}

// StatementFromUseCase converts a statement rollup to a response.
func StatementFromUseCase(s *usecase.MemberStatement) *StatementResponse {
	return &StatementResponse{
		Member:           MemberFromDomain(s.Member),
		Savings:          BalanceFromDomain(s.Savings),
		Contributions:    ContributionsFromDomain(s.Contributions),
		TotalContributed: s.TotalContributed,
		Loans:            LoansFromDomain(s.Loans),
		TotalOutstanding: s.TotalOutstanding,
		GeneratedAt:      s.GeneratedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
