// Package otp implements the one-time password ledger: issuance, rate
// limiting, resend cooldown, expiry and single-use validation of codes,
// scoped per (user, purpose) pair.
package otp

import (
	"context"
	"fmt"
	"time"
	"wordvault/internal/config"
	"wordvault/internal/models"
	"wordvault/internal/repository"
)

// Dispatcher delivers an issued code to the user out of band. Dispatch
// returns whether the delivery was accepted; actual delivery happens
// asynchronously and its failure never surfaces here.
type Dispatcher interface {
	Dispatch(user *models.User, code string, purpose models.OtpPurpose, expiresIn time.Duration) bool
}

// Service owns the lifecycle of verification codes. All policy (lifetime,
// request window, cooldown, code length) comes from the injected config.
type Service struct {
	cfg        config.OTPConfig
	repo       repository.OtpCodeRepository
	dispatcher Dispatcher
	now        func() time.Time
}

// NewService creates a new OTP service
func NewService(cfg config.OTPConfig, repo repository.OtpCodeRepository, dispatcher Dispatcher) *Service {
	return &Service{
		cfg:        cfg,
		repo:       repo,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// IssueResult reports an issuance. Delivered is false when the notification
// dispatch was not accepted; the code is still issued and valid.
type IssueResult struct {
	Code      *models.OtpCode
	Delivered bool
}

// Issue generates, persists and dispatches a new code for (user, purpose).
// The rate-limit gate, cooldown gate, invalidation of prior codes and the
// insert all run inside one locked transaction so concurrent issuance for
// the same pair cannot leave two valid codes outstanding or exceed the
// window. Both gates apply at issuance only, never at validation.
func (s *Service) Issue(ctx context.Context, user *models.User, purpose models.OtpPurpose) (*IssueResult, error) {
	code, err := GenerateCode(s.cfg.CodeLength)
	if err != nil {
		return nil, err
	}

	expiresIn := time.Duration(s.cfg.ExpiresInMinutes) * time.Minute

	var issued *models.OtpCode
	err = s.repo.Locked(ctx, user.ID, purpose, func(store repository.OtpCodeStore) error {
		now := s.now()

		if err := s.checkRequestLimit(ctx, store, user, purpose, now); err != nil {
			return err
		}
		if err := s.checkResendCooldown(ctx, store, user, purpose, now); err != nil {
			return err
		}

		// A new code supersedes every valid predecessor for this pair.
		if err := store.InvalidateValid(ctx, user.ID, purpose, now); err != nil {
			return fmt.Errorf("failed to invalidate previous codes: %w", err)
		}

		issued = &models.OtpCode{
			UserID:    user.ID,
			Code:      code,
			Purpose:   purpose,
			ExpiresAt: now.Add(expiresIn),
			CreatedAt: now,
		}
		return store.Insert(ctx, issued)
	})
	if err != nil {
		return nil, err
	}

	delivered := s.dispatcher.Dispatch(user, code, purpose, expiresIn)
	return &IssueResult{Code: issued, Delivered: delivered}, nil
}

func (s *Service) checkRequestLimit(ctx context.Context, store repository.OtpCodeStore, user *models.User, purpose models.OtpPurpose, now time.Time) error {
	window := time.Duration(s.cfg.RequestWindowMinutes) * time.Minute
	count, err := store.CountCreatedSince(ctx, user.ID, purpose, now.Add(-window))
	if err != nil {
		return err
	}
	if count < s.cfg.MaxRequests {
		return nil
	}

	retry, err := s.minutesUntilWindowFrees(ctx, store, user, purpose, now)
	if err != nil {
		return err
	}
	return &RateLimitError{
		MaxRequests:       s.cfg.MaxRequests,
		WindowMinutes:     s.cfg.RequestWindowMinutes,
		RetryAfterMinutes: retry,
	}
}

func (s *Service) checkResendCooldown(ctx context.Context, store repository.OtpCodeStore, user *models.User, purpose models.OtpPurpose, now time.Time) error {
	latest, err := store.LatestCreatedAt(ctx, user.ID, purpose)
	if err != nil {
		return err
	}
	if latest == nil {
		return nil
	}

	cooldownEnd := latest.Add(time.Duration(s.cfg.ResendCooldownSeconds) * time.Second)
	if !now.Before(cooldownEnd) {
		return nil
	}

	remaining := int(cooldownEnd.Sub(now).Seconds())
	if remaining < 1 {
		remaining = 1
	}
	return &CooldownError{RetryAfterSeconds: remaining}
}

// minutesUntilWindowFrees computes when the oldest issuance in the window
// slides out of it, freeing a slot.
func (s *Service) minutesUntilWindowFrees(ctx context.Context, store repository.OtpCodeStore, user *models.User, purpose models.OtpPurpose, now time.Time) (int, error) {
	window := time.Duration(s.cfg.RequestWindowMinutes) * time.Minute
	oldest, err := store.OldestCreatedSince(ctx, user.ID, purpose, now.Add(-window))
	if err != nil {
		return 0, err
	}
	if oldest == nil {
		return 0, nil
	}

	remaining := int(oldest.Add(window).Sub(now).Minutes())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Validate checks a submitted code and consumes it on match. Unknown,
// expired and already-used codes are all reported as a uniform false: the
// caller learns nothing about which case occurred.
func (s *Service) Validate(ctx context.Context, user *models.User, purpose models.OtpPurpose, code string) (bool, error) {
	return s.repo.ConsumeValid(ctx, user.ID, purpose, code, s.now())
}

// HasValidOtp reports whether a redeemable code is outstanding for the pair.
func (s *Service) HasValidOtp(ctx context.Context, user *models.User, purpose models.OtpPurpose) (bool, error) {
	return s.repo.HasValid(ctx, user.ID, purpose, s.now())
}

// RemainingLifetime returns the seconds until the latest valid code expires,
// or nil when none is outstanding.
func (s *Service) RemainingLifetime(ctx context.Context, user *models.User, purpose models.OtpPurpose) (*int, error) {
	now := s.now()
	expiry, err := s.repo.LatestValidExpiry(ctx, user.ID, purpose, now)
	if err != nil || expiry == nil {
		return nil, err
	}

	remaining := int(expiry.Sub(now).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return &remaining, nil
}

// ResendCooldownRemaining returns the seconds until a resend is allowed,
// zero when no cooldown is pending.
func (s *Service) ResendCooldownRemaining(ctx context.Context, user *models.User, purpose models.OtpPurpose) (int, error) {
	now := s.now()
	latest, err := s.repo.LatestCreatedAt(ctx, user.ID, purpose)
	if err != nil || latest == nil {
		return 0, err
	}

	cooldownEnd := latest.Add(time.Duration(s.cfg.ResendCooldownSeconds) * time.Second)
	if !now.Before(cooldownEnd) {
		return 0, nil
	}
	return int(cooldownEnd.Sub(now).Seconds()), nil
}

// Status derives the read-only issuance status from the same counting logic
// the issuance gates use.
func (s *Service) Status(ctx context.Context, user *models.User, purpose models.OtpPurpose) (*models.OtpStatus, error) {
	now := s.now()
	window := time.Duration(s.cfg.RequestWindowMinutes) * time.Minute

	count, err := s.repo.CountCreatedSince(ctx, user.ID, purpose, now.Add(-window))
	if err != nil {
		return nil, err
	}

	remaining := s.cfg.MaxRequests - count
	if remaining < 0 {
		remaining = 0
	}

	nextIn := 0
	if count >= s.cfg.MaxRequests {
		nextIn, err = s.minutesUntilWindowFrees(ctx, s.repo, user, purpose, now)
		if err != nil {
			return nil, err
		}
	}

	cooldown, err := s.ResendCooldownRemaining(ctx, user, purpose)
	if err != nil {
		return nil, err
	}

	hasValid, err := s.repo.HasValid(ctx, user.ID, purpose, now)
	if err != nil {
		return nil, err
	}

	lifetime, err := s.RemainingLifetime(ctx, user, purpose)
	if err != nil {
		return nil, err
	}

	return &models.OtpStatus{
		RemainingRequests:       remaining,
		MaxRequests:             s.cfg.MaxRequests,
		RequestWindowMinutes:    s.cfg.RequestWindowMinutes,
		NextRequestInMinutes:    nextIn,
		ResendCooldownSeconds:   cooldown,
		HasValidOtp:             hasValid,
		RemainingLifetimeSecond: lifetime,
	}, nil
}
