package audit

import (
	"context"
	"encoding/json"
	"testing"
	"wordvault/internal/models"
	"wordvault/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		isMobile  bool
		isTablet  bool
		isDesktop bool
	}{
		{
			name:      "iphone",
			userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148",
			isMobile:  true,
		},
		{
			name:      "android phone",
			userAgent: "Mozilla/5.0 (Linux; Android 14; Pixel 8) Mobile Safari/537.36",
			isMobile:  true,
		},
		{
			name:      "ipad",
			userAgent: "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) Safari/604.1",
			isMobile:  true,
			isTablet:  true,
		},
		{
			name:      "desktop chrome",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0",
			isDesktop: true,
		},
		{
			name:      "empty agent",
			userAgent: "",
			isDesktop: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device := ClassifyDevice(tt.userAgent)
			require.Equal(t, tt.isMobile, device.IsMobile)
			require.Equal(t, tt.isTablet, device.IsTablet)
			require.Equal(t, tt.isDesktop, device.IsDesktop)
			require.Equal(t, tt.userAgent, device.UserAgent)
		})
	}
}

func TestRecordBuildsMetadata(t *testing.T) {
	repo := testutil.NewFakeAuthLogRepository()
	svc := NewService(repo, nil)

	user := &models.User{ID: uuid.New(), Email: "ann@example.com"}
	reqCtx := RequestContext{
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0 (iPhone) Mobile/15E148",
	}

	entry := svc.Record(context.Background(), models.AuthActionLogin, user.Email, user, true, nil, reqCtx)
	require.NotNil(t, entry.UserID)
	require.Equal(t, user.ID, *entry.UserID)
	require.Equal(t, "203.0.113.7", entry.IPAddress)
	require.True(t, entry.Success)

	var meta models.AuthLogMetadata
	require.NoError(t, json.Unmarshal([]byte(entry.Metadata), &meta))
	require.True(t, meta.Device.IsMobile)
	require.Equal(t, "203.0.113.7", meta.Location.IPAddress)
	require.NotEmpty(t, meta.Timestamp)

	require.Len(t, repo.Entries(), 1)
}

func TestRecordKeepsEmailWithoutUser(t *testing.T) {
	repo := testutil.NewFakeAuthLogRepository()
	svc := NewService(repo, nil)

	reason := "Invalid credentials"
	entry := svc.Record(context.Background(), models.AuthActionFailedLogin, "ghost@example.com", nil, false, &reason, RequestContext{})
	require.Nil(t, entry.UserID)
	require.Equal(t, "ghost@example.com", entry.Email)
	require.False(t, entry.Success)
	require.Equal(t, "Invalid credentials", *entry.FailureReason)
}

type capturingSink struct {
	entries []*models.AuthLog
}

func (c *capturingSink) AuthEvent(entry *models.AuthLog) {
	c.entries = append(c.entries, entry)
}

func TestRecordNotifiesSink(t *testing.T) {
	repo := testutil.NewFakeAuthLogRepository()
	sink := &capturingSink{}
	svc := NewService(repo, sink)

	user := &models.User{ID: uuid.New(), Email: "ann@example.com"}
	svc.LogLogout(context.Background(), user, RequestContext{})

	require.Len(t, sink.entries, 1)
	require.Equal(t, models.AuthActionLogout, sink.entries[0].Action)
}

func TestStats(t *testing.T) {
	repo := testutil.NewFakeAuthLogRepository()
	svc := NewService(repo, nil)

	user := &models.User{ID: uuid.New(), Email: "ann@example.com"}
	reqCtx := RequestContext{IPAddress: "198.51.100.2"}

	svc.LogLogin(context.Background(), user, reqCtx)
	svc.LogLogin(context.Background(), user, reqCtx)
	svc.LogFailedLogin(context.Background(), user.Email, "Invalid credentials", reqCtx)
	svc.LogOtpVerification(context.Background(), user, true, nil, reqCtx)
	reason := "Invalid OTP"
	svc.LogOtpVerification(context.Background(), user, false, &reason, reqCtx)
	svc.LogLogout(context.Background(), user, reqCtx)

	stats, err := svc.Stats(context.Background(), user, 30)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalLogins)
	// The failed login carried no user id, so it is not attributed.
	require.Equal(t, 0, stats.FailedLogins)
	require.Equal(t, 1, stats.OtpVerifications)
	require.Equal(t, 1, stats.FailedOtp)
	require.Equal(t, 1, stats.TotalLogouts)
	require.Equal(t, 30, stats.PeriodDays)
}
