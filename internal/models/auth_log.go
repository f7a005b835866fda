package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthAction is the kind of authentication event recorded in the audit log.
type AuthAction string

const (
	AuthActionLogin       AuthAction = "login"
	AuthActionFailedLogin AuthAction = "failed_login"
	AuthActionRegister    AuthAction = "register"
	AuthActionLogout      AuthAction = "logout"
	AuthActionOtpVerified AuthAction = "otp_verified"
	AuthActionOtpFailed   AuthAction = "otp_failed"
)

// DeviceInfo is a coarse classification derived from the User-Agent string.
// Informational only.
type DeviceInfo struct {
	IsMobile  bool   `json:"is_mobile"`
	IsTablet  bool   `json:"is_tablet"`
	IsDesktop bool   `json:"is_desktop"`
	UserAgent string `json:"user_agent"`
}

// LocationInfo carries whatever network origin data is available. Country
// and city stay empty unless an IP geolocation source is wired in.
type LocationInfo struct {
	IPAddress string `json:"ip_address"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
}

// AuthLogMetadata is the structured context stored alongside each entry.
type AuthLogMetadata struct {
	Device    DeviceInfo   `json:"device"`
	Location  LocationInfo `json:"location"`
	Timestamp string       `json:"timestamp"`
}

// AuthLog is an immutable audit record of one authentication-relevant event.
// The email is kept even when no user matched (failed login with an unknown
// address). Entries are never mutated or deleted by the application.
type AuthLog struct {
	ID            uuid.UUID  `json:"id"`
	UserID        *uuid.UUID `json:"user_id"`
	Email         string     `json:"email"`
	Action        AuthAction `json:"action"`
	IPAddress     string     `json:"ip_address"`
	UserAgent     string     `json:"user_agent"`
	Metadata      string     `json:"metadata"`
	Success       bool       `json:"success"`
	FailureReason *string    `json:"failure_reason"`
	CreatedAt     time.Time  `json:"created_at"`
}

// AuthStats aggregates a user's auth activity over a period.
type AuthStats struct {
	TotalLogins      int `json:"total_logins"`
	FailedLogins     int `json:"failed_logins"`
	TotalLogouts     int `json:"total_logouts"`
	OtpVerifications int `json:"otp_verifications"`
	FailedOtp        int `json:"failed_otp"`
	PeriodDays       int `json:"period_days"`
}
