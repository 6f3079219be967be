package auth

import "errors"

var (
	// ErrValidation covers malformed or missing request input.
	ErrValidation = errors.New("auth: invalid input")
	// ErrInvalidCredential is returned for a failed login. The message is
	// identical for unknown usernames and wrong passwords so callers cannot
	// enumerate accounts.
	ErrInvalidCredential = errors.New("auth: invalid credentials")
	// ErrUnauthenticated covers missing, invalid or expired tokens.
	ErrUnauthenticated = errors.New("auth: unauthenticated")
	// ErrRevokedToken marks a refresh token that verifies but is no longer
	// registered.
	ErrRevokedToken = errors.New("auth: refresh token revoked")
	// ErrForbidden marks an authenticated caller whose current role is not
	// in the operation's allowed set.
	ErrForbidden = errors.New("auth: forbidden")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("auth: not found")
)
