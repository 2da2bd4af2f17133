package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/usecase"
)

// LoanRepository implements loan persistence.
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new loan repository.
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

const loanColumns = `id, member_id, principal, months, remaining, current_month,
	total_principal_paid, status, completed_at, purpose, issued_at, created_at, updated_at`

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var loan domain.Loan
	err := row.Scan(
		&loan.ID,
		&loan.MemberID,
		&loan.Principal,
		&loan.Months,
		&loan.Remaining,
		&loan.CurrentMonth,
		&loan.TotalPrincipalPaid,
		&loan.Status,
		&loan.CompletedAt,
		&loan.Purpose,
		&loan.IssuedAt,
		&loan.CreatedAt,
		&loan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Create inserts a new loan.
func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (id, member_id, principal, months, remaining, current_month,
			total_principal_paid, status, completed_at, purpose, issued_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		loan.ID,
		loan.MemberID,
		loan.Principal,
		loan.Months,
		loan.Remaining,
		loan.CurrentMonth,
		loan.TotalPrincipalPaid,
		loan.Status,
		loan.CompletedAt,
		loan.Purpose,
		loan.IssuedAt,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

// GetByID retrieves a loan by ID.
func (r *LoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	loan, err := scanLoan(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLoanNotFound
	}

	return loan, err
}

// GetByIDForUpdate retrieves a loan by ID with a row lock, blocking
// concurrent reconciliations of the same loan until the transaction ends.
func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 FOR UPDATE`

	loan, err := scanLoan(querierFor(tx, r.pool).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLoanNotFound
	}

	return loan, err
}

// UpdateDerived writes the derived balance fields computed from the loan's
// transaction set.
func (r *LoanRepository) UpdateDerived(ctx context.Context, tx usecase.Transaction, id string, state domain.LoanDerivedState, updatedAt time.Time) error {
	query := `
		UPDATE loans
		SET remaining = $2, current_month = $3, total_principal_paid = $4,
			status = $5, completed_at = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := querierFor(tx, r.pool).Exec(ctx, query,
		id,
		state.Remaining,
		state.CurrentMonth,
		state.TotalPrincipalPaid,
		state.Status,
		state.CompletedAt,
		updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}

	return nil
}

// ListByMember retrieves a member's loans with pagination, newest first.
func (r *LoanRepository) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE member_id = $1
		ORDER BY issued_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLoans(rows)
}

// List retrieves loans with pagination, newest first.
func (r *LoanRepository) List(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		ORDER BY issued_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLoans(rows)
}

// SumOutstanding sums the remaining balance across non-completed loans.
func (r *LoanRepository) SumOutstanding(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(remaining), 0)
		FROM loans
		WHERE status != $1
	`

	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, query, domain.LoanCompleted).Scan(&total)

	return total, err
}

func collectLoans(rows pgx.Rows) ([]*domain.Loan, error) {
	var loans []*domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}
