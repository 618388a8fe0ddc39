// Package apperrors defines the error taxonomy shared by the store,
// repositories and orchestrator services. Every error carries a
// display-ready message; Storage and Origin errors wrap their cause.
package apperrors

import (
	"fmt"
	"net/http"
)

// ValidationError reports malformed input rejected before any store or
// origin call, e.g. empty credentials.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports an update whose target record does not exist.
// Callers must insert first.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// StorageError reports a local persistence failure with its underlying cause.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// OriginError reports a remote origin call failure. Status is the HTTP
// status of a completed response; it stays zero for transport failures
// that never produced one.
type OriginError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *OriginError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("origin %s failed: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("origin %s failed: %v", e.Op, e.Err)
}

func (e *OriginError) Unwrap() error { return e.Err }

// Rejected reports whether the origin understood the request and refused
// it on credential grounds, as opposed to a transport failure or a server
// fault.
func (e *OriginError) Rejected() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// Credential fields implicated by an authentication mismatch, so the
// consumer can highlight the right input.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// AuthMismatchError reports credentials that do not match any known account,
// local or remote.
type AuthMismatchError struct {
	Field   string
	Message string
}

func (e *AuthMismatchError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Field {
	case FieldPassword:
		return "the password does not match this account"
	default:
		return "no account exists for this email address"
	}
}
