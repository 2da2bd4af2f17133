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

// CycleRepository implements cycle and contribution persistence.
type CycleRepository struct {
	pool *pgxpool.Pool
}

// NewCycleRepository creates a new cycle repository.
func NewCycleRepository(pool *pgxpool.Pool) *CycleRepository {
	return &CycleRepository{pool: pool}
}

const cycleColumns = `id, name, contribution_amount, start_date, end_date, status,
	payout_member_id, created_at, updated_at`

func scanCycle(row pgx.Row) (*domain.Cycle, error) {
	var cycle domain.Cycle
	err := row.Scan(
		&cycle.ID,
		&cycle.Name,
		&cycle.ContributionAmount,
		&cycle.StartDate,
		&cycle.EndDate,
		&cycle.Status,
		&cycle.PayoutMemberID,
		&cycle.CreatedAt,
		&cycle.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

// Create inserts a new cycle.
func (r *CycleRepository) Create(ctx context.Context, cycle *domain.Cycle) error {
	query := `
		INSERT INTO cycles (id, name, contribution_amount, start_date, end_date, status,
			payout_member_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		cycle.ID,
		cycle.Name,
		cycle.ContributionAmount,
		cycle.StartDate,
		cycle.EndDate,
		cycle.Status,
		cycle.PayoutMemberID,
		cycle.CreatedAt,
		cycle.UpdatedAt,
	)

	return err
}

// GetByID retrieves a cycle by ID.
func (r *CycleRepository) GetByID(ctx context.Context, id string) (*domain.Cycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM cycles WHERE id = $1`

	cycle, err := scanCycle(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCycleNotFound
	}

	return cycle, err
}

// GetByIDForUpdate retrieves a cycle by ID with a row lock so two closes
// cannot race.
func (r *CycleRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Cycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM cycles WHERE id = $1 FOR UPDATE`

	cycle, err := scanCycle(querierFor(tx, r.pool).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCycleNotFound
	}

	return cycle, err
}

// Close marks a cycle closed inside the given transaction.
func (r *CycleRepository) Close(ctx context.Context, tx usecase.Transaction, id string, payoutMemberID *string, closedAt time.Time) error {
	query := `
		UPDATE cycles
		SET status = $2, payout_member_id = $3, end_date = $4, updated_at = $4
		WHERE id = $1
	`

	tag, err := querierFor(tx, r.pool).Exec(ctx, query,
		id,
		domain.CycleClosed,
		payoutMemberID,
		closedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCycleNotFound
	}

	return nil
}

// List retrieves cycles with pagination, newest first.
func (r *CycleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Cycle, error) {
	query := `
		SELECT ` + cycleColumns + `
		FROM cycles
		ORDER BY start_date DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []*domain.Cycle
	for rows.Next() {
		cycle, err := scanCycle(rows)
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, cycle)
	}

	return cycles, rows.Err()
}

// CreateContribution inserts a new contribution.
func (r *CycleRepository) CreateContribution(ctx context.Context, contribution *domain.Contribution) error {
	query := `
		INSERT INTO contributions (id, cycle_id, member_id, amount, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		contribution.ID,
		contribution.CycleID,
		contribution.MemberID,
		contribution.Amount,
		contribution.PaidAt,
		contribution.CreatedAt,
	)

	return err
}

// ListContributions retrieves a cycle's contributions, oldest first.
func (r *CycleRepository) ListContributions(ctx context.Context, cycleID string) ([]*domain.Contribution, error) {
	query := `
		SELECT id, cycle_id, member_id, amount, paid_at, created_at
		FROM contributions
		WHERE cycle_id = $1
		ORDER BY paid_at ASC
	`

	rows, err := r.pool.Query(ctx, query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectContributions(rows)
}

// ListContributionsByMember retrieves a member's contributions across
// cycles with pagination, newest first.
func (r *CycleRepository) ListContributionsByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.Contribution, error) {
	query := `
		SELECT id, cycle_id, member_id, amount, paid_at, created_at
		FROM contributions
		WHERE member_id = $1
		ORDER BY paid_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectContributions(rows)
}

// SumContributions returns the total paid into a cycle and the number of
// distinct contributing members.
func (r *CycleRepository) SumContributions(ctx context.Context, cycleID string) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0), COUNT(DISTINCT member_id)
		FROM contributions
		WHERE cycle_id = $1
	`

	var total decimal.Decimal
	var contributors int
	err := r.pool.QueryRow(ctx, query, cycleID).Scan(&total, &contributors)

	return total, contributors, err
}

func collectContributions(rows pgx.Rows) ([]*domain.Contribution, error) {
	var contributions []*domain.Contribution
	for rows.Next() {
		var contribution domain.Contribution
		err := rows.Scan(
			&contribution.ID,
			&contribution.CycleID,
			&contribution.MemberID,
			&contribution.Amount,
			&contribution.PaidAt,
			&contribution.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, &contribution)
	}
	return contributions, rows.Err()
}
