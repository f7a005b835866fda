package models

import (
	"time"

	"github.com/google/uuid"
)

// OtpPurpose scopes an OTP code to the flow it was issued for. A code issued
// for login cannot verify a registration and vice versa.
type OtpPurpose string

const (
	OtpPurposeLogin         OtpPurpose = "login"
	OtpPurposeRegister      OtpPurpose = "register"
	OtpPurposePasswordReset OtpPurpose = "password_reset"
)

// OtpCode is a single issued verification code. Codes are opaque strings so
// leading zeros are significant ("000123" != "123").
type OtpCode struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Code      string     `json:"-"`
	Purpose   OtpPurpose `json:"purpose"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsExpired reports whether the code's lifetime has passed at the given time.
func (o *OtpCode) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// IsUsed reports whether the code has already been consumed.
func (o *OtpCode) IsUsed() bool {
	return o.UsedAt != nil
}

// IsValid reports whether the code can still be redeemed: not used and not
// expired.
func (o *OtpCode) IsValid(now time.Time) bool {
	return !o.IsUsed() && !o.IsExpired(now)
}

// OtpStatus is the read-only issuance status for a (user, purpose) pair.
type OtpStatus struct {
	RemainingRequests       int  `json:"remaining_requests"`
	MaxRequests             int  `json:"max_requests"`
	RequestWindowMinutes    int  `json:"request_window_minutes"`
	NextRequestInMinutes    int  `json:"next_request_available_in_minutes"`
	ResendCooldownSeconds   int  `json:"resend_cooldown_seconds"`
	HasValidOtp             bool `json:"has_valid_otp"`
	RemainingLifetimeSecond *int `json:"otp_expires_in_seconds"`
}
