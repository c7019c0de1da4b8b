// Package apperrors defines the domain errors shared by the store, the
// tracker service and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness violation such as a taken username.
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials reports an unknown login or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidScope reports a login that requested none of the account's scopes.
	ErrInvalidScope = errors.New("invalid scope")
)

// EntityKind names the kind of row a lookup failed to find.
type EntityKind string

const (
	KindUser        EntityKind = "user"
	KindRole        EntityKind = "role"
	KindTechnology  EntityKind = "technology"
	KindUserProfile EntityKind = "user_profile"
	KindProject     EntityKind = "project"
	KindTaskStatus  EntityKind = "task_status"
	KindTask        EntityKind = "task"
)

// NotFoundError reports which referenced entity is missing.
type NotFoundError struct {
	Kind EntityKind
}

// NotFound returns a *NotFoundError for kind.
func NotFound(kind EntityKind) error {
	return &NotFoundError{Kind: kind}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Kind)
}

// Is makes errors.Is(err, ErrNotFound) true for any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// KindOf returns the entity kind carried by err, if any.
func KindOf(err error) (EntityKind, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Kind, true
	}
	return "", false
}

// ConflictError names the field whose value is already taken.
type ConflictError struct {
	Field string
}

// Conflict returns a *ConflictError for field.
func Conflict(field string) error {
	return &ConflictError{Field: field}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// Is makes errors.Is(err, ErrConflict) true for any ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
