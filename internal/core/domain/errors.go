package domain

import "errors"

// Registration and update validation failures. All are client-correctable.
var (
	ErrPasswordMismatch    = errors.New("password and confirmation do not match")
	ErrDuplicateUsername   = errors.New("username already taken")
	ErrDuplicateEmail      = errors.New("email already taken")
	ErrCompromisedPassword = errors.New("password found in compromised-password corpus")
)

// ErrBadCredentials is returned for every authentication failure, whether the
// username is unknown or the password is wrong. The two cases must stay
// indistinguishable to the caller.
var ErrBadCredentials = errors.New("bad credentials")

// Lookup failures. Never used for authentication, to avoid enumeration leaks.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRoleNotFound    = errors.New("role not found")
	ErrProfileNotFound = errors.New("profile not found")
)

// ErrProfileExists is returned by stores when the one-profile-per-user index
// rejects an insert.
var ErrProfileExists = errors.New("profile already exists")

// Token validation failures. All map to 401 at the boundary.
var (
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrWrongTokenType   = errors.New("wrong token type")
	ErrMalformedToken   = errors.New("malformed token")
)

// ErrServer marks an internal invariant violation, such as the default role
// missing from the store. Never caused by client input.
var ErrServer = errors.New("internal invariant violation")
