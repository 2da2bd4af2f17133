package domain

import "time"

// User represents a login account for the group's web application.
// A user may be linked to a Member record; admin and treasurer accounts
// usually are not.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	MemberID       *string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role represents a user's access level.
type Role string

const (
	// RoleAdmin has full access, including destructive ledger corrections.
	RoleAdmin Role = "admin"

	// RoleTreasurer records deposits, contributions and repayments.
	RoleTreasurer Role = "treasurer"

	// RoleMember can only view their own records.
	RoleMember Role = "member"
)

var validRoles = map[Role]bool{
	RoleAdmin:     true,
	RoleTreasurer: true,
	RoleMember:    true,
}

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanRecord checks if the role can record money movements.
func (r Role) CanRecord() bool {
	return r == RoleAdmin || r == RoleTreasurer
}

// CanDelete checks if the role can delete ledger records.
func (r Role) CanDelete() bool {
	return r == RoleAdmin
}

// CanManageMembers checks if the role can create and edit member records.
func (r Role) CanManageMembers() bool {
	return r == RoleAdmin || r == RoleTreasurer
}
