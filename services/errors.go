package services

import (
	"errors"
	"fmt"

	"github.com/wanderlist/api-go/models"
)

var (
	// ErrUserNotFound is returned when the target of an operation does not
	// exist or has been soft-deleted.
	ErrUserNotFound = errors.New("user not found")
	// ErrFollowSelf is returned when a user attempts to follow themselves.
	ErrFollowSelf = errors.New("you cannot follow yourself")
	// ErrNoRelationship is returned when a status update targets an edge
	// that does not exist in the required direction.
	ErrNoRelationship = errors.New("no follow relationship found")
	// ErrInvalidCredentials is returned on a failed login attempt. It does
	// not distinguish unknown email from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRefreshToken is returned for unknown or expired refresh tokens.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// DuplicateFollowError is returned when a follow attempt hits an edge that
// is already live (accepted or pending). The attempt is rejected, not
// treated as an idempotent success.
type DuplicateFollowError struct {
	Status string
}

func (e *DuplicateFollowError) Error() string {
	if e.Status == models.FollowStatusPending {
		return "follow request already sent"
	}
	return "you already follow this user"
}

// InvalidActionError is returned when a status-update action finds the edge
// in a state other than the one the action requires.
type InvalidActionError struct {
	Action   string
	Expected string
	Actual   string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("cannot %s: relationship status is %q, expected %q", e.Action, e.Actual, e.Expected)
}
