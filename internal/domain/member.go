package domain

import "time"

// MemberStatus represents a member's standing in the group.
type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
	MemberExited   MemberStatus = "exited"
)

// Member represents a registered member of the savings group.
type Member struct {
	ID         string
	FullName   string
	Phone      string
	NationalID string
	Status     MemberStatus
	JoinedAt   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive reports whether the member may take part in cycles and loans.
func (m *Member) IsActive() bool {
	return m.Status == MemberActive
}
