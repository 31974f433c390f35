package domain

import "errors"

// Registration conflicts — user-correctable.
var ErrUsernameTaken = errors.New("username already taken")
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is deliberately generic: it covers both
// unknown-username and wrong-password so login failures cannot be used to
// enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAccountDisabled is returned when a not-yet-activated account attempts
// to log in.
var ErrAccountDisabled = errors.New("account not activated")

// Token failures.
var ErrUnknownToken = errors.New("unknown refresh token")
var ErrTokenExpired = errors.New("token expired")
var ErrInvalidResetToken = errors.New("invalid password reset token")

var ErrUserNotFound = errors.New("user not found")

// ErrRoleNotFound indicates a misconfigured role catalogue. It is a startup
// invariant violation, not a user-facing condition.
var ErrRoleNotFound = errors.New("role not found")
