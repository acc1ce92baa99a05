package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrUserNotFound        = errors.New("user not found")

	// ErrForbidden means the actor is not authorized for the transition.
	// Distinct from ErrInvalidState, which means a state precondition failed.
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid application state")

	ErrInvalidInput = errors.New("invalid input")

	ErrAlreadyApplied = errors.New("already applied")
	ErrAlreadyMember  = errors.New("already a member")

	// ErrPositionFull is returned when the transactional capacity re-check
	// rejects an accept for a position that filled up in the meantime.
	ErrPositionFull = errors.New("position is full")
)

// IneligibleError carries every reason the eligibility evaluator collected,
// not just the first one.
type IneligibleError struct {
	Reasons []string
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("not eligible to apply: %s", strings.Join(e.Reasons, "; "))
}
