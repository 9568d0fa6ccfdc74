package errors

import "errors"

// Sentinel errors shared across usecases and handlers. Handlers translate
// these into the HTTP status taxonomy (401, 403, 404).
var (
	// ErrUnauthenticated means no valid session token accompanied the
	// request. A missing cookie and an unknown token are indistinguishable.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden means the session is valid but the identity lacks the
	// required permission.
	ErrForbidden = errors.New("permission denied")

	// ErrNotFound means a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials means the username/password pair did not match
	// an active user.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
