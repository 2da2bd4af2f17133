package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tindi/chamaledger/internal/domain"
)

// MemberRepository implements member persistence.
type MemberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new member repository.
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// Create inserts a new member.
func (r *MemberRepository) Create(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO members (id, full_name, phone, national_id, status, joined_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		member.ID,
		member.FullName,
		member.Phone,
		member.NationalID,
		member.Status,
		member.JoinedAt,
		member.CreatedAt,
		member.UpdatedAt,
	)

	return err
}

// GetByID retrieves a member by ID.
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `
		SELECT id, full_name, phone, national_id, status, joined_at, created_at, updated_at
		FROM members
		WHERE id = $1
	`

	var member domain.Member
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.FullName,
		&member.Phone,
		&member.NationalID,
		&member.Status,
		&member.JoinedAt,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMemberNotFound
	}

	return &member, err
}

// Update updates a member's mutable fields.
func (r *MemberRepository) Update(ctx context.Context, member *domain.Member) error {
	query := `
		UPDATE members
		SET full_name = $2, phone = $3, national_id = $4, status = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		member.ID,
		member.FullName,
		member.Phone,
		member.NationalID,
		member.Status,
		member.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMemberNotFound
	}

	return nil
}

// List retrieves members with pagination, newest first.
func (r *MemberRepository) List(ctx context.Context, limit, offset int) ([]*domain.Member, error) {
	query := `
		SELECT id, full_name, phone, national_id, status, joined_at, created_at, updated_at
		FROM members
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		var member domain.Member
		err := rows.Scan(
			&member.ID,
			&member.FullName,
			&member.Phone,
			&member.NationalID,
			&member.Status,
			&member.JoinedAt,
			&member.CreatedAt,
			&member.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, &member)
	}

	return members, rows.Err()
}

// CountByStatus counts members in a given status.
func (r *MemberRepository) CountByStatus(ctx context.Context, status domain.MemberStatus) (int, error) {
	query := `SELECT COUNT(*) FROM members WHERE status = $1`

	var count int
	err := r.pool.QueryRow(ctx, query, status).Scan(&count)

	return count, err
}
