package domain

import "errors"

var (
	// Member errors
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberInactive = errors.New("member is not active")

	// Loan errors
	ErrLoanNotFound            = errors.New("loan not found")
	ErrLoanTransactionNotFound = errors.New("loan transaction not found")
	ErrLoanNotActive           = errors.New("loan is not active")
	ErrInvalidPrincipal        = errors.New("principal must not be negative")
	ErrInvalidTerm             = errors.New("term must be at least one month")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInvalidMonth            = errors.New("month must be positive")

	// Cycle errors
	ErrCycleNotFound = errors.New("cycle not found")
	ErrCycleClosed   = errors.New("cycle is already closed")

	// Savings errors
	ErrDepositNotFound = errors.New("deposit not found")

	// Auth errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
)
