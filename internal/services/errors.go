package services

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNotOwner            = errors.New("transaction belongs to another user")
	ErrDistributionLocked  = errors.New("distribution transactions cannot be modified directly; use the parent income transaction")
	ErrInvalidIdentifier   = errors.New("identifier could not be parsed")
	ErrExpiredToken        = errors.New("token has expired")
	ErrInvalidToken        = errors.New("token is invalid")
)

// ValidationError marks a business-rule violation in the request payload.
// It is distinct from ErrInvalidIdentifier so callers can tell "your input
// didn't parse" from "your input failed business rules".
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
