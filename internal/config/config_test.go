package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoadFromEnvDefaults tests that sensible defaults apply when only the
// required secret is set
func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret_key")

	cfg := &Config{}
	err := cfg.LoadFromEnv()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.API.Port)
	require.Equal(t, "localhost", cfg.Database.Host)
	require.Equal(t, 5432, cfg.Database.Port)
	require.Equal(t, "wordvault", cfg.Database.DBName)
	require.Equal(t, "disable", cfg.Database.SSLMode)
	require.Equal(t, "test_secret_key", cfg.Auth.JWTSecret)

	require.Equal(t, 10, cfg.OTP.ExpiresInMinutes)
	require.Equal(t, 5, cfg.OTP.MaxRequests)
	require.Equal(t, 30, cfg.OTP.RequestWindowMinutes)
	require.Equal(t, 6, cfg.OTP.CodeLength)
	require.Equal(t, 60, cfg.OTP.ResendCooldownSeconds)

	require.Equal(t, "https://api.dictionaryapi.dev/api/v2/entries", cfg.Dictionary.BaseURL)
	require.Equal(t, "0 3 * * *", cfg.Cleanup.Schedule)
	require.True(t, cfg.Cleanup.Enabled)
}

// TestLoadFromEnvOverrides tests that environment variables override defaults
func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret_key")
	t.Setenv("OTP_EXPIRES_IN", "5")
	t.Setenv("OTP_MAX_REQUESTS", "3")
	t.Setenv("OTP_REQUEST_WINDOW", "15")
	t.Setenv("OTP_LENGTH", "8")
	t.Setenv("OTP_RESEND_COOLDOWN", "120")
	t.Setenv("CLEANUP_ENABLED", "false")

	cfg := &Config{}
	err := cfg.LoadFromEnv()
	require.NoError(t, err)

	require.Equal(t, 5, cfg.OTP.ExpiresInMinutes)
	require.Equal(t, 3, cfg.OTP.MaxRequests)
	require.Equal(t, 15, cfg.OTP.RequestWindowMinutes)
	require.Equal(t, 8, cfg.OTP.CodeLength)
	require.Equal(t, 120, cfg.OTP.ResendCooldownSeconds)
	require.False(t, cfg.Cleanup.Enabled)
}

// TestLoadFromEnvRequiresSecret tests that a missing JWT secret is rejected
func TestLoadFromEnvRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg := &Config{}
	err := cfg.LoadFromEnv()
	require.Error(t, err)
}

// TestLoadFromEnvRejectsBadCodeLength tests the OTP length bounds
func TestLoadFromEnvRejectsBadCodeLength(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret_key")
	t.Setenv("OTP_LENGTH", "2")

	cfg := &Config{}
	err := cfg.LoadFromEnv()
	require.Error(t, err)
}
