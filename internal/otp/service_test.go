package otp

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"
	"wordvault/internal/config"
	"wordvault/internal/models"
	"wordvault/internal/repository"
	"wordvault/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubDispatcher struct {
	mu       sync.Mutex
	accept   bool
	sent     []string
	purposes []models.OtpPurpose
}

func (d *stubDispatcher) Dispatch(user *models.User, code string, purpose models.OtpPurpose, expiresIn time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, code)
	d.purposes = append(d.purposes, purpose)
	return d.accept
}

func testConfig() config.OTPConfig {
	return config.OTPConfig{
		ExpiresInMinutes:      10,
		MaxRequests:           5,
		RequestWindowMinutes:  30,
		CodeLength:            6,
		ResendCooldownSeconds: 60,
	}
}

func newTestService(t *testing.T, cfg config.OTPConfig) (*Service, *testutil.FakeOtpCodeRepository, *stubDispatcher, *time.Time) {
	t.Helper()

	repo := testutil.NewFakeOtpCodeRepository()
	dispatcher := &stubDispatcher{accept: true}
	svc := NewService(cfg, repo, dispatcher)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo, dispatcher, &now
}

func testUser() *models.User {
	return &models.User{ID: uuid.New(), Name: "Ann", Email: "ann@example.com"}
}

func TestGenerateCodeFormat(t *testing.T) {
	numeric := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 200; i++ {
		code, err := GenerateCode(6)
		require.NoError(t, err)
		require.Regexp(t, numeric, code, "codes are always exactly six digits, leading zeros included")
	}

	code, err := GenerateCode(8)
	require.NoError(t, err)
	require.Len(t, code, 8)

	_, err = GenerateCode(0)
	require.Error(t, err)
}

func TestIssueCreatesValidCode(t *testing.T) {
	svc, repo, dispatcher, now := newTestService(t, testConfig())
	user := testUser()

	result, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)
	require.True(t, result.Delivered)
	require.Len(t, result.Code.Code, 6)
	require.Equal(t, now.Add(10*time.Minute), result.Code.ExpiresAt)

	require.Equal(t, []string{result.Code.Code}, dispatcher.sent)

	valid, err := svc.HasValidOtp(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)
	require.True(t, valid)

	codes := repo.Codes()
	require.Len(t, codes, 1)
	require.Nil(t, codes[0].UsedAt)
}

func TestIssueInvalidatesPreviousCode(t *testing.T) {
	cfg := testConfig()
	cfg.ResendCooldownSeconds = 0
	svc, repo, _, _ := newTestService(t, cfg)
	user := testUser()

	first, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)

	second, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)

	// Only the newest code may validate.
	ok, err := svc.Validate(context.Background(), user, models.OtpPurposeLogin, first.Code.Code)
	require.NoError(t, err)
	require.False(t, ok, "superseded code must not validate")

	ok, err = svc.Validate(context.Background(), user, models.OtpPurposeLogin, second.Code.Code)
	require.NoError(t, err)
	require.True(t, ok)

	codes := repo.Codes()
	require.Len(t, codes, 2)
	require.NotNil(t, codes[0].UsedAt)
}

func TestIssueDoesNotInvalidateOtherPurpose(t *testing.T) {
	cfg := testConfig()
	cfg.ResendCooldownSeconds = 0
	svc, _, _, _ := newTestService(t, cfg)
	user := testUser()

	login, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)

	_, err = svc.Issue(context.Background(), user, models.OtpPurposeRegister)
	require.NoError(t, err)

	ok, err := svc.Validate(context.Background(), user, models.OtpPurposeLogin, login.Code.Code)
	require.NoError(t, err)
	require.True(t, ok, "a register issuance must not touch login codes")
}

func TestValidateRejectsReplay(t *testing.T) {
	svc, _, _, _ := newTestService(t, testConfig())
	user := testUser()

	result, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)

	ok, err := svc.Validate(context.Background(), user, models.OtpPurposeLogin, result.Code.Code)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Validate(context.Background(), user, models.OtpPurposeLogin, result.Code.Code)
	require.NoError(t, err)
	require.False(t, ok, "a consumed code must not validate twice")
}

func TestValidateRejectsExpiredCode(t *testing.T) {
	svc, _, _, now := newTestService(t, testConfig())
	user := testUser()

	result, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)

	*now = now.Add(10*time.Minute + time.Second)

	ok, err := svc.Validate(context.Background(), user, models.OtpPurposeLogin, result.Code.Code)
	require.NoError(t, err)
	require.False(t, ok, "an expired code must not validate")

	valid, err := svc.HasValidOtp(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)
	require.False(t, valid)
}

func TestValidateRejectsWrongCode(t *testing.T) {
	svc, _, _, _ := newTestService(t, testConfig())
	user := testUser()

	result, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)

	wrong := "000000"
	if result.Code.Code == wrong {
		wrong = "000001"
	}

	ok, err := svc.Validate(context.Background(), user, models.OtpPurposeLogin, wrong)
	require.NoError(t, err)
	require.False(t, ok)

	// The stored code is untouched by a failed attempt.
	ok, err = svc.Validate(context.Background(), user, models.OtpPurposeLogin, result.Code.Code)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestValidateComparesCodesAsStrings(t *testing.T) {
	svc, repo, _, now := newTestService(t, testConfig())
	user := testUser()

	stored := &models.OtpCode{
		UserID:    user.ID,
		Code:      "000123",
		Purpose:   models.OtpPurposeLogin,
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: *now,
	}
	require.NoError(t, repo.Insert(context.Background(), stored))

	ok, err := svc.Validate(context.Background(), user, models.OtpPurposeLogin, "123")
	require.NoError(t, err)
	require.False(t, ok, `"123" must not match "000123"`)

	ok, err = svc.Validate(context.Background(), user, models.OtpPurposeLogin, "000123")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIssueRateLimitBoundary(t *testing.T) {
	cfg := testConfig()
	cfg.ResendCooldownSeconds = 0
	svc, _, _, now := newTestService(t, cfg)
	user := testUser()

	// Exactly max_requests issuances succeed.
	for i := 0; i < cfg.MaxRequests; i++ {
		_, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
		require.NoError(t, err, "issuance %d within the limit", i+1)
		*now = now.Add(time.Minute)
	}

	// The next one fails with the remaining wait time.
	_, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	require.Equal(t, cfg.MaxRequests, rateErr.MaxRequests)
	require.Equal(t, cfg.RequestWindowMinutes, rateErr.WindowMinutes)
	// Oldest code was created 5 minutes ago in a 30 minute window.
	require.Equal(t, 25, rateErr.RetryAfterMinutes)
}

func TestIssueRateLimitWindowSlides(t *testing.T) {
	cfg := testConfig()
	cfg.ResendCooldownSeconds = 0
	svc, _, _, now := newTestService(t, cfg)
	user := testUser()

	for i := 0; i < cfg.MaxRequests; i++ {
		_, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
		require.NoError(t, err)
	}

	_, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)

	// Once the window has slid past the old issuances, a new one succeeds.
	*now = now.Add(time.Duration(cfg.RequestWindowMinutes)*time.Minute + time.Second)
	_, err = svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)
}

func TestIssueResendCooldown(t *testing.T) {
	svc, _, _, now := newTestService(t, testConfig())
	user := testUser()

	_, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)

	// Immediately after issuance the cooldown blocks a resend.
	_, err = svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	var cooldownErr *CooldownError
	require.ErrorAs(t, err, &cooldownErr)
	require.Equal(t, 60, cooldownErr.RetryAfterSeconds)

	// Halfway through the remaining wait shrinks.
	*now = now.Add(45 * time.Second)
	_, err = svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.ErrorAs(t, err, &cooldownErr)
	require.Equal(t, 15, cooldownErr.RetryAfterSeconds)

	// After the cooldown elapses the resend succeeds.
	*now = now.Add(15 * time.Second)
	_, err = svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)
}

func TestCooldownAndRateLimitAreIndependentGates(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRequests = 2
	svc, _, _, now := newTestService(t, cfg)
	user := testUser()

	_, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)

	// Inside the window but past the cooldown: allowed.
	*now = now.Add(61 * time.Second)
	_, err = svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)

	// Past the cooldown again, but the window limit now blocks.
	*now = now.Add(61 * time.Second)
	_, err = svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
}

func TestIssueReportsDispatchFailure(t *testing.T) {
	cfg := testConfig()
	repo := testutil.NewFakeOtpCodeRepository()
	dispatcher := &stubDispatcher{accept: false}
	svc := NewService(cfg, repo, dispatcher)

	user := testUser()
	result, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err, "dispatch failure must not fail issuance")
	require.False(t, result.Delivered)

	// The code is still valid and redeemable.
	ok, err := svc.Validate(context.Background(), user, models.OtpPurposeLogin, result.Code.Code)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStatus(t *testing.T) {
	cfg := testConfig()
	svc, _, _, now := newTestService(t, cfg)
	user := testUser()

	status, err := svc.Status(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)
	require.Equal(t, 5, status.RemainingRequests)
	require.Equal(t, 5, status.MaxRequests)
	require.Equal(t, 30, status.RequestWindowMinutes)
	require.Zero(t, status.NextRequestInMinutes)
	require.Zero(t, status.ResendCooldownSeconds)
	require.False(t, status.HasValidOtp)
	require.Nil(t, status.RemainingLifetimeSecond)

	_, err = svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)

	*now = now.Add(30 * time.Second)
	status, err = svc.Status(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)
	require.Equal(t, 4, status.RemainingRequests)
	require.Equal(t, 30, status.ResendCooldownSeconds)
	require.True(t, status.HasValidOtp)
	require.NotNil(t, status.RemainingLifetimeSecond)
	require.Equal(t, 570, *status.RemainingLifetimeSecond)
}

func TestConcurrentValidationConsumesOnce(t *testing.T) {
	svc, _, _, _ := newTestService(t, testConfig())
	user := testUser()

	result, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.NoError(t, err)

	const attempts = 16
	var wg sync.WaitGroup
	successes := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := svc.Validate(context.Background(), user, models.OtpPurposeLogin, result.Code.Code)
			if err == nil && ok {
				successes <- true
			}
		}()
	}
	wg.Wait()
	close(successes)

	count := 0
	for range successes {
		count++
	}
	require.Equal(t, 1, count, "exactly one concurrent validation may win")
}

func TestIssueRollsBackOnInsertFailure(t *testing.T) {
	cfg := testConfig()
	repo := &failingOtpRepo{FakeOtpCodeRepository: testutil.NewFakeOtpCodeRepository()}
	svc := NewService(cfg, repo, &stubDispatcher{accept: true})
	user := testUser()

	_, err := svc.Issue(context.Background(), user, models.OtpPurposeLogin)
	require.Error(t, err)

	var rateErr *RateLimitError
	require.False(t, errors.As(err, &rateErr))
}

type failingOtpRepo struct {
	*testutil.FakeOtpCodeRepository
}

func (f *failingOtpRepo) Locked(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, fn func(store repository.OtpCodeStore) error) error {
	return errors.New("storage unavailable")
}
