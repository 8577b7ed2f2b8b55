package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// BudgetExceededError is returned when an expense would push a project's
// spent total past its budget. Remaining is the headroom left before the
// attempted amount, Attempted the rejected amount. The project row is
// untouched when this is returned.
type BudgetExceededError struct {
	ProjectID uint
	Remaining float64
	Attempted float64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("expense %.2f exceeds remaining budget %.2f for project %d",
		e.Attempted, e.Remaining, e.ProjectID)
}
