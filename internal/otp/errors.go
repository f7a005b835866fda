package otp

import "fmt"

// RateLimitError is returned when a (user, purpose) pair has exhausted its
// issuance allowance for the current request window. RetryAfterMinutes is
// the time until the oldest code in the window slides out of it.
type RateLimitError struct {
	MaxRequests       int
	WindowMinutes     int
	RetryAfterMinutes int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf(
		"maximum of %d OTP requests within %d minutes reached, wait %d minutes before requesting another code",
		e.MaxRequests, e.WindowMinutes, e.RetryAfterMinutes,
	)
}

// CooldownError is returned when a code was issued too recently for a resend.
type CooldownError struct {
	RetryAfterSeconds int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("wait %d seconds before requesting another code", e.RetryAfterSeconds)
}
