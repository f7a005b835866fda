package auth

import "errors"

var (
	// ErrInvalidCredentials indicates the email or password did not match.
	// The same error covers an unknown email and a wrong password so the
	// response never reveals whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail indicates the email is already registered
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUserNotFound indicates no account exists for the email
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidOtp covers every way a code submission can fail: wrong code,
	// expired code, already-used code, or no code issued at all
	ErrInvalidOtp = errors.New("invalid or expired verification code")
	// ErrInvalidToken indicates the token is invalid
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired indicates the token has expired
	ErrTokenExpired = errors.New("token expired")
)
