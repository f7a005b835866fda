package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"wordvault/internal/audit"
	"wordvault/internal/config"
	"wordvault/internal/models"
	"wordvault/internal/otp"
	"wordvault/internal/testutil"

	"github.com/stretchr/testify/require"
)

type captureDispatcher struct {
	mu    sync.Mutex
	codes []string
}

func (d *captureDispatcher) Dispatch(user *models.User, code string, purpose models.OtpPurpose, expiresIn time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.codes = append(d.codes, code)
	return true
}

func (d *captureDispatcher) lastCode() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.codes) == 0 {
		return ""
	}
	return d.codes[len(d.codes)-1]
}

type fixture struct {
	svc        *Service
	users      *testutil.FakeUserRepository
	authLogs   *testutil.FakeAuthLogRepository
	dispatcher *captureDispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret",
			AccessTokenMinutes: 60,
		},
		OTP: config.OTPConfig{
			ExpiresInMinutes:     10,
			MaxRequests:          5,
			RequestWindowMinutes: 30,
			CodeLength:           6,
			// No cooldown so tests can issue codes back to back.
			ResendCooldownSeconds: 0,
		},
	}

	users := testutil.NewFakeUserRepository()
	authLogs := testutil.NewFakeAuthLogRepository()
	dispatcher := &captureDispatcher{}

	otpService := otp.NewService(cfg.OTP, testutil.NewFakeOtpCodeRepository(), dispatcher)
	auditService := audit.NewService(authLogs, audit.LogSink{})

	return &fixture{
		svc:        NewService(cfg, users, otpService, auditService),
		users:      users,
		authLogs:   authLogs,
		dispatcher: dispatcher,
	}
}

func (f *fixture) register(t *testing.T, email string) *models.User {
	t.Helper()

	resp, err := f.svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Ann",
		Email:    email,
		Password: "mypassword123",
	}, audit.RequestContext{})
	require.NoError(t, err)
	return resp.User
}

func TestRegisterAndVerifyOtp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, models.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "mypassword123",
	}, audit.RequestContext{})
	require.NoError(t, err)
	require.True(t, resp.RequiresOtp)
	require.True(t, resp.OtpSent)
	require.False(t, resp.User.IsEmailVerified())
	require.NotEqual(t, "mypassword123", resp.User.Password)

	verified, err := f.svc.VerifyOtp(ctx, models.VerifyOtpRequest{
		Email:   "ann@example.com",
		Purpose: "register",
		Code:    f.dispatcher.lastCode(),
	}, audit.RequestContext{})
	require.NoError(t, err)
	require.NotEmpty(t, verified.AccessToken)
	require.True(t, verified.EmailVerified)
	require.NotNil(t, verified.User.EmailVerifiedAt)

	stored, err := f.users.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.True(t, stored.IsEmailVerified())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.com")

	_, err := f.svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Other",
		Email:    "ann@example.com",
		Password: "otherpassword",
	}, audit.RequestContext{})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLoginWrongPasswordDoesNotDisclose(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.com")
	ctx := context.Background()

	_, wrongPassword := f.svc.Login(ctx, models.LoginRequest{
		Email:    "ann@example.com",
		Password: "not-the-password",
	}, audit.RequestContext{})
	_, unknownEmail := f.svc.Login(ctx, models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	}, audit.RequestContext{})

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	// Same opaque error either way; only the audit trail tells them apart.
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	failed := f.authLogs.ByAction(models.AuthActionFailedLogin)
	require.Len(t, failed, 2)
	for _, entry := range failed {
		require.False(t, entry.Success)
	}
}

func TestLoginIssuesOtpAndAuditsSuccess(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "ann@example.com")
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, models.LoginRequest{
		Email:    "ann@example.com",
		Password: "mypassword123",
	}, audit.RequestContext{IPAddress: "203.0.113.9", UserAgent: "iPhone Safari"})
	require.NoError(t, err)
	require.True(t, resp.RequiresOtp)
	require.Equal(t, user.ID, resp.User.ID)

	logins := f.authLogs.ByAction(models.AuthActionLogin)
	require.Len(t, logins, 1)
	require.True(t, logins[0].Success)

	verified, err := f.svc.VerifyOtp(ctx, models.VerifyOtpRequest{
		Email: "ann@example.com",
		Code:  f.dispatcher.lastCode(),
	}, audit.RequestContext{})
	require.NoError(t, err)
	require.NotEmpty(t, verified.AccessToken)
	// A login code never flips the email verified flag.
	require.False(t, verified.EmailVerified)
}

func TestLoginRateLimitStillAuditsCredentialSuccess(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.com")
	ctx := context.Background()

	req := models.LoginRequest{Email: "ann@example.com", Password: "mypassword123"}
	for i := 0; i < 5; i++ {
		_, err := f.svc.Login(ctx, req, audit.RequestContext{})
		require.NoError(t, err)
	}

	_, err := f.svc.Login(ctx, req, audit.RequestContext{})
	var rateErr *otp.RateLimitError
	require.ErrorAs(t, err, &rateErr)

	// All six credential checks passed; the rate limit only blocked issuance.
	logins := f.authLogs.ByAction(models.AuthActionLogin)
	require.Len(t, logins, 6)
	for _, entry := range logins {
		require.True(t, entry.Success)
	}
}

func TestVerifyOtpRejectsWrongCode(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.com")
	ctx := context.Background()

	_, err := f.svc.VerifyOtp(ctx, models.VerifyOtpRequest{
		Email:   "ann@example.com",
		Purpose: "register",
		Code:    "000000",
	}, audit.RequestContext{})
	require.ErrorIs(t, err, ErrInvalidOtp)

	failures := f.authLogs.ByAction(models.AuthActionOtpFailed)
	require.Len(t, failures, 1)
}

func TestVerifyOtpUnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.VerifyOtp(context.Background(), models.VerifyOtpRequest{
		Email: "nobody@example.com",
		Code:  "123456",
	}, audit.RequestContext{})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerifyOtpCodeIsSingleUse(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.com")
	ctx := context.Background()

	code := f.dispatcher.lastCode()
	req := models.VerifyOtpRequest{Email: "ann@example.com", Purpose: "register", Code: code}

	_, err := f.svc.VerifyOtp(ctx, req, audit.RequestContext{})
	require.NoError(t, err)

	_, err = f.svc.VerifyOtp(ctx, req, audit.RequestContext{})
	require.ErrorIs(t, err, ErrInvalidOtp)
}

func TestResendOtpInvalidatesPreviousCode(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.com")
	ctx := context.Background()

	first := f.dispatcher.lastCode()
	_, err := f.svc.ResendOtp(ctx, models.ResendOtpRequest{Email: "ann@example.com", Purpose: "register"})
	require.NoError(t, err)
	second := f.dispatcher.lastCode()

	_, err = f.svc.VerifyOtp(ctx, models.VerifyOtpRequest{
		Email:   "ann@example.com",
		Purpose: "register",
		Code:    first,
	}, audit.RequestContext{})
	require.ErrorIs(t, err, ErrInvalidOtp)

	_, err = f.svc.VerifyOtp(ctx, models.VerifyOtpRequest{
		Email:   "ann@example.com",
		Purpose: "register",
		Code:    second,
	}, audit.RequestContext{})
	require.NoError(t, err)
}

func TestResendOtpUnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ResendOtp(context.Background(), models.ResendOtpRequest{Email: "nobody@example.com"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestOtpStatus(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.com")

	status, err := f.svc.OtpStatus(context.Background(), models.OtpStatusRequest{
		Email:   "ann@example.com",
		Purpose: "register",
	})
	require.NoError(t, err)
	require.True(t, status.HasValidOtp)
	require.NotNil(t, status.RemainingLifetimeSecond)
}

func TestLogoutIsAudited(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "ann@example.com")

	f.svc.Logout(context.Background(), user, audit.RequestContext{})

	entries := f.authLogs.ByAction(models.AuthActionLogout)
	require.Len(t, entries, 1)
	require.True(t, entries[0].Success)
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenMinutes: 60}
	user := &models.User{Email: "ann@example.com"}

	token, err := GenerateToken(cfg, user)
	require.NoError(t, err)

	claims, err := ValidateToken(cfg, token)
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", (*claims)["email"])

	_, err = ValidateToken(config.AuthConfig{JWTSecret: "other-secret"}, token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
