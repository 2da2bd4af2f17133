package domain

import "time"

// Session represents a server-side login session. The browser holds only
// the opaque token in an HttpOnly cookie.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	MemberID  *string   `json:"member_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
