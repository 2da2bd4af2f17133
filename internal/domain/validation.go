package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidMemberName = errors.New("invalid member name")
	ErrInvalidPhone      = errors.New("invalid phone number")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrPasswordTooWeak   = errors.New("password does not meet requirements")
	ErrAmountTooLarge    = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxMemberNameLength = 255
	MinMemberNameLength = 2
	MinPasswordLength   = 8
	MaxPasswordLength   = 128
	MaxAmount           = "100000000" // single-currency group, 100M cap
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// ValidateMemberName validates a member's full name.
func ValidateMemberName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinMemberNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidMemberName, MinMemberNameLength)
	}

	if len(name) > MaxMemberNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidMemberName, MaxMemberNameLength)
	}

	return nil
}

// ValidatePhone validates a phone number in loose E.164 form.
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateEmail validates an email address.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces minimum password requirements.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: minimum %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: maximum %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}
	return nil
}

// ValidateAmount checks a monetary amount is positive and within bounds.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return ErrAmountTooLarge
	}

	return nil
}

// ValidatePagination clamps pagination parameters to sane bounds.
func ValidatePagination(limit, offset int) (int, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset, nil
}
