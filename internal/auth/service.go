// Package auth orchestrates the two-step authentication flow: credential or
// registration checks followed by OTP verification, with every attempt
// recorded in the audit trail.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wordvault/internal/audit"
	"wordvault/internal/config"
	"wordvault/internal/models"
	"wordvault/internal/otp"
	"wordvault/internal/repository"
)

// Service provides authentication functionality. Passwords alone never
// authenticate a session; every login and registration must be completed
// with a one-time code.
type Service struct {
	config   *config.Config
	userRepo repository.UserRepository
	otp      *otp.Service
	audit    *audit.Service
}

// NewService creates a new authentication service
func NewService(cfg *config.Config, userRepo repository.UserRepository, otpService *otp.Service, auditService *audit.Service) *Service {
	return &Service{
		config:   cfg,
		userRepo: userRepo,
		otp:      otpService,
		audit:    auditService,
	}
}

// Login checks credentials and, when they match, issues a login OTP. The
// caller is not authenticated until VerifyOtp succeeds. Unknown emails and
// wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, req models.LoginRequest, reqCtx audit.RequestContext) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.audit.LogFailedLogin(ctx, req.Email, "unknown email", reqCtx)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := ComparePasswords(user.Password, req.Password); err != nil {
		s.audit.LogFailedLogin(ctx, req.Email, "wrong password", reqCtx)
		return nil, ErrInvalidCredentials
	}

	// Credentials are good: the attempt is audited as a success even though
	// OTP issuance below may still be rate limited.
	s.audit.LogLogin(ctx, user, reqCtx)

	result, err := s.otp.Issue(ctx, user, models.OtpPurposeLogin)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		User:        user,
		Message:     "verification code sent to your email",
		RequiresOtp: true,
		OtpSent:     result.Delivered,
	}, nil
}

// Register creates an account and issues a registration OTP. The account
// starts unverified; the first successful OTP verification for the register
// purpose marks the email verified.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest, reqCtx audit.RequestContext) (*models.LoginResponse, error) {
	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.audit.LogRegistration(ctx, user, reqCtx)

	result, err := s.otp.Issue(ctx, user, models.OtpPurposeRegister)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		User:        user,
		Message:     "account created, verification code sent to your email",
		RequiresOtp: true,
		OtpSent:     result.Delivered,
	}, nil
}

// VerifyOtp completes authentication. On success the submitted code is
// consumed, the session token is issued and, for registration codes, the
// email is marked verified. Wrong, expired and used codes all collapse to
// ErrInvalidOtp; only an unknown email is reported as ErrUserNotFound.
func (s *Service) VerifyOtp(ctx context.Context, req models.VerifyOtpRequest, reqCtx audit.RequestContext) (*models.VerifyOtpResponse, error) {
	purpose := purposeFromString(req.Purpose)

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	valid, err := s.otp.Validate(ctx, user, purpose, req.Code)
	if err != nil {
		return nil, err
	}
	if !valid {
		reason := "invalid or expired code"
		s.audit.LogOtpVerification(ctx, user, false, &reason, reqCtx)
		return nil, ErrInvalidOtp
	}

	if purpose == models.OtpPurposeRegister && !user.IsEmailVerified() {
		now := time.Now()
		if err := s.userRepo.SetEmailVerified(ctx, user.ID, now); err != nil {
			return nil, err
		}
		user.EmailVerifiedAt = &now
	}

	s.audit.LogOtpVerification(ctx, user, true, nil, reqCtx)

	token, err := GenerateToken(s.config.Auth, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.VerifyOtpResponse{
		User:          user,
		AccessToken:   token,
		Message:       "authentication successful",
		EmailVerified: user.IsEmailVerified(),
	}, nil
}

// ResendOtp re-issues a code for an account, subject to the same cooldown
// and rate-limit gates as the original issuance.
func (s *Service) ResendOtp(ctx context.Context, req models.ResendOtpRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	result, err := s.otp.Issue(ctx, user, purposeFromString(req.Purpose))
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		User:        user,
		Message:     "verification code sent to your email",
		RequiresOtp: true,
		OtpSent:     result.Delivered,
	}, nil
}

// OtpStatus reports whether a valid code is outstanding and how long the
// caller must wait before requesting another.
func (s *Service) OtpStatus(ctx context.Context, req models.OtpStatusRequest) (*models.OtpStatus, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.otp.Status(ctx, user, purposeFromString(req.Purpose))
}

// Logout records the end of a session. Tokens are stateless, so there is
// nothing to revoke server side.
func (s *Service) Logout(ctx context.Context, user *models.User, reqCtx audit.RequestContext) {
	s.audit.LogLogout(ctx, user, reqCtx)
}

func purposeFromString(purpose string) models.OtpPurpose {
	switch purpose {
	case string(models.OtpPurposeRegister):
		return models.OtpPurposeRegister
	case string(models.OtpPurposePasswordReset):
		return models.OtpPurposePasswordReset
	default:
		return models.OtpPurposeLogin
	}
}
