package models

// LoginResponse represents the response to a credential or registration
// submission. Authentication is not complete until the OTP is verified.
type LoginResponse struct {
	User        *User  `json:"user"`
	Message     string `json:"message"`
	RequiresOtp bool   `json:"requires_otp"`
	OtpSent     bool   `json:"otp_sent"`
}

// VerifyOtpResponse represents the response to a successful OTP verification
type VerifyOtpResponse struct {
	User          *User  `json:"user"`
	AccessToken   string `json:"access_token"`
	Message       string `json:"message"`
	EmailVerified bool   `json:"email_verified"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error             string `json:"error"`
	RetryAfterMinutes *int   `json:"retry_after_minutes,omitempty"`
	RetryAfterSeconds *int   `json:"retry_after_seconds,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}
