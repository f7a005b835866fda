package models

// LoginRequest represents the login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ann@example.com"`
	Password string `json:"password" binding:"required" example:"mypassword123"`
}

// RegisterRequest represents the request to create a new account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"Ann"`
	Email    string `json:"email" binding:"required,email" example:"ann@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"mypassword123"`
}

// VerifyOtpRequest represents an OTP submission
type VerifyOtpRequest struct {
	Email   string `json:"email" binding:"required,email" example:"ann@example.com"`
	Purpose string `json:"purpose" binding:"omitempty,oneof=login register" example:"login"`
	Code    string `json:"code" binding:"required,numericcode" example:"000042"`
}

// ResendOtpRequest represents a request to re-issue an OTP
type ResendOtpRequest struct {
	Email   string `json:"email" binding:"required,email" example:"ann@example.com"`
	Purpose string `json:"purpose" binding:"omitempty,oneof=login register" example:"login"`
}

// OtpStatusRequest asks for the issuance status of a (email, purpose) pair
type OtpStatusRequest struct {
	Email   string `json:"email" binding:"required,email" example:"ann@example.com"`
	Purpose string `json:"purpose" binding:"omitempty,oneof=login register" example:"login"`
}
