package usecase

import (
	"context"
	"time"

	"github.com/tindi/chamaledger/internal/domain"
)

// MemberUseCase handles member registry operations.
type MemberUseCase struct {
	memberRepo MemberRepository
	idGen      IDGenerator
}

// NewMemberUseCase creates a new MemberUseCase.
func NewMemberUseCase(memberRepo MemberRepository, idGen IDGenerator) *MemberUseCase {
	return &MemberUseCase{
		memberRepo: memberRepo,
		idGen:      idGen,
	}
}

// CreateMemberInput represents input for registering a member.
type CreateMemberInput struct {
	FullName   string
	Phone      string
	NationalID string
	JoinedAt   *time.Time
}

// CreateMember registers a new member.
func (uc *MemberUseCase) CreateMember(ctx context.Context, input CreateMemberInput) (*domain.Member, error) {
	if err := domain.ValidateMemberName(input.FullName); err != nil {
		return nil, err
	}

	if err := domain.ValidatePhone(input.Phone); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	joinedAt := now
	if input.JoinedAt != nil {
		joinedAt = *input.JoinedAt
	}

	member := &domain.Member{
		ID:         uc.idGen.Generate(),
		FullName:   input.FullName,
		Phone:      input.Phone,
		NationalID: input.NationalID,
		Status:     domain.MemberActive,
		JoinedAt:   joinedAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// GetMember retrieves a member by ID.
func (uc *MemberUseCase) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	return uc.memberRepo.GetByID(ctx, id)
}

// UpdateMemberInput represents input for updating a member.
type UpdateMemberInput struct {
	ID       string
	FullName *string
	Phone    *string
	Status   *domain.MemberStatus
}

// UpdateMember updates a member's profile or status.
func (uc *MemberUseCase) UpdateMember(ctx context.Context, input UpdateMemberInput) (*domain.Member, error) {
	member, err := uc.memberRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		if err := domain.ValidateMemberName(*input.FullName); err != nil {
			return nil, err
		}
		member.FullName = *input.FullName
	}

	if input.Phone != nil {
		if err := domain.ValidatePhone(*input.Phone); err != nil {
			return nil, err
		}
		member.Phone = *input.Phone
	}

	if input.Status != nil {
		member.Status = *input.Status
	}

	member.UpdatedAt = time.Now().UTC()

	if err := uc.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// ListMembersInput represents input for listing members.
type ListMembersInput struct {
	Limit  int
	Offset int
}

// ListMembers lists members with pagination.
func (uc *MemberUseCase) ListMembers(ctx context.Context, input ListMembersInput) ([]*domain.Member, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.memberRepo.List(ctx, limit, offset)
}
