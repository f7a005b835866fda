// Package audit records authentication-relevant events in an append-only
// log, enriched with device and network context.
package audit

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"
	"wordvault/internal/models"
	"wordvault/internal/repository"
)

// RequestContext carries the network origin of the request being audited.
type RequestContext struct {
	IPAddress string
	UserAgent string
}

// Sink receives every recorded entry after it is persisted. Secondary
// consumers (alerting, shipping to a SIEM) hook in here; the call is
// explicit, not an implicit subscription.
type Sink interface {
	AuthEvent(entry *models.AuthLog)
}

// LogSink echoes recorded events to the application log.
type LogSink struct{}

func (LogSink) AuthEvent(entry *models.AuthLog) {
	log.Printf("auth event: action=%s email=%s success=%t ip=%s", entry.Action, entry.Email, entry.Success, entry.IPAddress)
}

// Service appends entries to the auth log. Recording never fails the
// calling flow: persistence errors are logged and swallowed.
type Service struct {
	repo repository.AuthLogRepository
	sink Sink
	now  func() time.Time
}

// NewService creates a new audit service. A nil sink disables the secondary
// notification.
func NewService(repo repository.AuthLogRepository, sink Sink) *Service {
	return &Service{
		repo: repo,
		sink: sink,
		now:  time.Now,
	}
}

// Record appends one entry. The email is stored even when no user matched,
// so failed logins with unknown addresses remain attributable.
func (s *Service) Record(ctx context.Context, action models.AuthAction, email string, user *models.User, success bool, failureReason *string, reqCtx RequestContext) *models.AuthLog {
	entry := &models.AuthLog{
		Email:         email,
		Action:        action,
		IPAddress:     reqCtx.IPAddress,
		UserAgent:     reqCtx.UserAgent,
		Metadata:      s.buildMetadata(reqCtx),
		Success:       success,
		FailureReason: failureReason,
		CreatedAt:     s.now(),
	}
	if user != nil {
		id := user.ID
		entry.UserID = &id
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("failed to record auth event %s for %s: %v", action, email, err)
		return entry
	}

	if s.sink != nil {
		s.sink.AuthEvent(entry)
	}
	return entry
}

// LogLogin records a successful credential check.
func (s *Service) LogLogin(ctx context.Context, user *models.User, reqCtx RequestContext) {
	s.Record(ctx, models.AuthActionLogin, user.Email, user, true, nil, reqCtx)
}

// LogFailedLogin records a rejected credential check. The user is nil when
// the email is unknown.
func (s *Service) LogFailedLogin(ctx context.Context, email string, reason string, reqCtx RequestContext) {
	s.Record(ctx, models.AuthActionFailedLogin, email, nil, false, &reason, reqCtx)
}

// LogRegistration records a successful account creation.
func (s *Service) LogRegistration(ctx context.Context, user *models.User, reqCtx RequestContext) {
	s.Record(ctx, models.AuthActionRegister, user.Email, user, true, nil, reqCtx)
}

// LogLogout records a logout.
func (s *Service) LogLogout(ctx context.Context, user *models.User, reqCtx RequestContext) {
	s.Record(ctx, models.AuthActionLogout, user.Email, user, true, nil, reqCtx)
}

// LogOtpVerification records an OTP submission outcome.
func (s *Service) LogOtpVerification(ctx context.Context, user *models.User, success bool, reason *string, reqCtx RequestContext) {
	action := models.AuthActionOtpVerified
	if !success {
		action = models.AuthActionOtpFailed
	}
	s.Record(ctx, action, user.Email, user, success, reason, reqCtx)
}

// Stats aggregates a user's auth activity over the past days.
func (s *Service) Stats(ctx context.Context, user *models.User, days int) (*models.AuthStats, error) {
	since := s.now().AddDate(0, 0, -days)
	counts, err := s.repo.CountByAction(ctx, user.ID, since)
	if err != nil {
		return nil, err
	}

	return &models.AuthStats{
		TotalLogins:      counts[models.AuthActionLogin].Succeeded,
		FailedLogins:     counts[models.AuthActionFailedLogin].Failed,
		TotalLogouts:     counts[models.AuthActionLogout].Succeeded,
		OtpVerifications: counts[models.AuthActionOtpVerified].Succeeded,
		FailedOtp:        counts[models.AuthActionOtpFailed].Failed,
		PeriodDays:       days,
	}, nil
}

func (s *Service) buildMetadata(reqCtx RequestContext) string {
	meta := models.AuthLogMetadata{
		Device:    ClassifyDevice(reqCtx.UserAgent),
		Location:  models.LocationInfo{IPAddress: reqCtx.IPAddress},
		Timestamp: s.now().Format(time.RFC3339),
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ClassifyDevice derives a coarse device class from the User-Agent string.
// Substring matching only; informational, not authoritative.
func ClassifyDevice(userAgent string) models.DeviceInfo {
	ua := strings.ToLower(userAgent)

	isTablet := strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet")
	isMobile := isTablet ||
		strings.Contains(ua, "android") ||
		strings.Contains(ua, "iphone") ||
		strings.Contains(ua, "mobile")

	return models.DeviceInfo{
		IsMobile:  isMobile,
		IsTablet:  isTablet,
		IsDesktop: !isMobile && !isTablet,
		UserAgent: userAgent,
	}
}
