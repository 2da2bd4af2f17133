package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/domain"
)

// SavingsRepository implements savings deposit persistence.
type SavingsRepository struct {
	pool *pgxpool.Pool
}

// NewSavingsRepository creates a new savings repository.
func NewSavingsRepository(pool *pgxpool.Pool) *SavingsRepository {
	return &SavingsRepository{pool: pool}
}

// CreateDeposit inserts a new deposit.
func (r *SavingsRepository) CreateDeposit(ctx context.Context, deposit *domain.SavingsDeposit) error {
	query := `
		INSERT INTO savings_deposits (id, member_id, cycle_id, amount, method, reference, deposited_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		deposit.ID,
		deposit.MemberID,
		deposit.CycleID,
		deposit.Amount,
		deposit.Method,
		deposit.Reference,
		deposit.DepositedAt,
		deposit.CreatedAt,
	)

	return err
}

// ListByMember retrieves a member's deposits with pagination, newest first.
func (r *SavingsRepository) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.SavingsDeposit, error) {
	query := `
		SELECT id, member_id, cycle_id, amount, method, reference, deposited_at, created_at
		FROM savings_deposits
		WHERE member_id = $1
		ORDER BY deposited_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []*domain.SavingsDeposit
	for rows.Next() {
		var deposit domain.SavingsDeposit
		err := rows.Scan(
			&deposit.ID,
			&deposit.MemberID,
			&deposit.CycleID,
			&deposit.Amount,
			&deposit.Method,
			&deposit.Reference,
			&deposit.DepositedAt,
			&deposit.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, &deposit)
	}

	return deposits, rows.Err()
}

// BalanceByMember computes a member's deposit rollup.
func (r *SavingsRepository) BalanceByMember(ctx context.Context, memberID string) (*domain.SavingsBalance, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0), COUNT(*), MAX(deposited_at)
		FROM savings_deposits
		WHERE member_id = $1
	`

	balance := domain.SavingsBalance{MemberID: memberID}
	err := r.pool.QueryRow(ctx, query, memberID).Scan(
		&balance.Total,
		&balance.DepositCount,
		&balance.LastDeposit,
	)

	return &balance, err
}

// SumAll sums every deposit across all members.
func (r *SavingsRepository) SumAll(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM savings_deposits`

	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, query).Scan(&total)

	return total, err
}
