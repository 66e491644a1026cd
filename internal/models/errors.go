// Error types shared across services and handlers. Handlers translate these
// into HTTP statuses; anything that is none of them becomes a 500 with a
// generic message.
package models

import (
	"net/http"
	"strings"
)

// ValidationError carries every violated constraint, not just the first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "invalid input"
	}
	return strings.Join(e.Violations, "; ")
}

func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// ConflictError signals a uniqueness violation (duplicate user_name, email
// or id).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AuthenticationError covers both credential mismatch and bad/expired tokens.
// The message is what the client sees, so credential failures must use the
// same generic text regardless of which field was wrong.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// AuthorizationError means the caller is authenticated but lacks the admin
// role.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// StatusCode maps a service error onto the HTTP status the response carries.
func StatusCode(err error) int {
	switch err.(type) {
	case *ValidationError, *ConflictError:
		return http.StatusBadRequest
	case *AuthenticationError:
		return http.StatusUnauthorized
	case *AuthorizationError:
		return http.StatusForbidden
	case *NotFoundError:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
