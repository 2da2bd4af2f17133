package domain

import (
	"encoding/json"
	"time"
)

// AuditLog represents an audit trail entry for administrative actions.
type AuditLog struct {
	ID           string
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	RequestID    string
	BeforeState  JSON
	AfterState   JSON
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data.
type JSON map[string]any

// AuditAction represents different types of auditable actions.
type AuditAction string

const (
	AuditActionMemberCreate AuditAction = "member.create"
	AuditActionMemberUpdate AuditAction = "member.update"

	AuditActionDepositRecord      AuditAction = "savings.deposit"
	AuditActionContributionRecord AuditAction = "cycle.contribution"
	AuditActionCycleClose         AuditAction = "cycle.close"

	AuditActionLoanCreate            AuditAction = "loan.create"
	AuditActionLoanRepaymentRecord   AuditAction = "loan.repayment"
	AuditActionLoanTransactionDelete AuditAction = "loan.transaction.delete"

	AuditActionUserLogin  AuditAction = "user.login"
	AuditActionUserLogout AuditAction = "user.logout"
)

// AuditStatus represents the status of an audited action.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a domain object to JSON for audit logging.
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}
