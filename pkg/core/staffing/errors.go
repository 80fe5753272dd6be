package staffing

import (
	"errors"
	"fmt"

	"github.com/emberesports/crewdesk/pkg/core/model"
)

var (
	ErrRoleFull            = errors.New("ROLE_FULL")
	ErrDuplicateAssignment = errors.New("DUPLICATE_ASSIGNMENT")
	ErrLockedSignup        = errors.New("SIGNUP_LOCKED")
	ErrNotFound            = errors.New("NOT_FOUND")
	ErrStoreWrite          = errors.New("STORE_WRITE_FAILED")
)

// RoleFullError is returned when a role is already at capacity
type RoleFullError struct {
	EventID  string
	Role     model.Role
	Capacity int
}

func (e *RoleFullError) Error() string {
	return fmt.Sprintf("role %s on event %s is full (capacity %d)", e.Role, e.EventID, e.Capacity)
}

func (e *RoleFullError) Is(target error) bool { return target == ErrRoleFull }

// DuplicateAssignmentError is returned when a person already holds another role on the event
type DuplicateAssignmentError struct {
	EventID  string
	PersonID model.PersonID
	HeldRole model.Role
}

func (e *DuplicateAssignmentError) Error() string {
	return fmt.Sprintf("person %d is already assigned as %s on event %s", e.PersonID, e.HeldRole, e.EventID)
}

func (e *DuplicateAssignmentError) Is(target error) bool { return target == ErrDuplicateAssignment }

// LockedSignupError is returned when removing a signup backing a confirmed assignment
type LockedSignupError struct {
	EventID  string
	Role     model.Role
	PersonID model.PersonID
}

func (e *LockedSignupError) Error() string {
	return fmt.Sprintf("signup of person %d for %s on event %s is locked by an assignment; unassign first",
		e.PersonID, e.Role, e.EventID)
}

func (e *LockedSignupError) Is(target error) bool { return target == ErrLockedSignup }

// NotFoundError is returned for unknown events, people or occupants
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StoreWriteError wraps a persistence failure.
// NotApplied is true only when the mutation is known not to have been committed.
type StoreWriteError struct {
	Op         string
	EventID    string
	NotApplied bool
	Err        error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("failed to %s event %s: %v", e.Op, e.EventID, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

func (e *StoreWriteError) Is(target error) bool { return target == ErrStoreWrite }

// IsBusinessRule reports whether err is one of the user-presentable rule violations
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrRoleFull) ||
		errors.Is(err, ErrDuplicateAssignment) ||
		errors.Is(err, ErrLockedSignup) ||
		errors.Is(err, ErrNotFound)
}
