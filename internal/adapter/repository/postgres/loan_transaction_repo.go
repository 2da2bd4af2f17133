package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/usecase"
)

// LoanTransactionRepository implements loan repayment persistence.
type LoanTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewLoanTransactionRepository creates a new loan transaction repository.
func NewLoanTransactionRepository(pool *pgxpool.Pool) *LoanTransactionRepository {
	return &LoanTransactionRepository{pool: pool}
}

// Create inserts a new repayment inside the given transaction.
func (r *LoanTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, lt *domain.LoanTransaction) error {
	query := `
		INSERT INTO loan_transactions (id, loan_id, month, amount, recorded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := querierFor(tx, r.pool).Exec(ctx, query,
		lt.ID,
		lt.LoanID,
		lt.Month,
		lt.Amount,
		lt.RecordedAt,
		lt.CreatedAt,
	)

	return err
}

// GetByID retrieves a repayment by ID.
func (r *LoanTransactionRepository) GetByID(ctx context.Context, id string) (*domain.LoanTransaction, error) {
	query := `
		SELECT id, loan_id, month, amount, recorded_at, created_at
		FROM loan_transactions
		WHERE id = $1
	`

	var lt domain.LoanTransaction
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&lt.ID,
		&lt.LoanID,
		&lt.Month,
		&lt.Amount,
		&lt.RecordedAt,
		&lt.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLoanTransactionNotFound
	}

	return &lt, err
}

// Delete removes a repayment inside the given transaction.
func (r *LoanTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	query := `DELETE FROM loan_transactions WHERE id = $1`

	tag, err := querierFor(tx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoanTransactionNotFound
	}

	return nil
}

// ListByLoan retrieves a loan's repayments ordered by month ascending.
// When tx is non-nil the read sees the transaction's own uncommitted
// writes, which the balance recomputation depends on.
func (r *LoanTransactionRepository) ListByLoan(ctx context.Context, tx usecase.Transaction, loanID string) ([]*domain.LoanTransaction, error) {
	query := `
		SELECT id, loan_id, month, amount, recorded_at, created_at
		FROM loan_transactions
		WHERE loan_id = $1
		ORDER BY month ASC, recorded_at ASC
	`

	rows, err := querierFor(tx, r.pool).Query(ctx, query, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*domain.LoanTransaction
	for rows.Next() {
		var lt domain.LoanTransaction
		err := rows.Scan(
			&lt.ID,
			&lt.LoanID,
			&lt.Month,
			&lt.Amount,
			&lt.RecordedAt,
			&lt.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		txs = append(txs, &lt)
	}

	return txs, rows.Err()
}
