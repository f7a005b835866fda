package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config represents the application configuration
type Config struct {
	// API contains API server configuration
	API APIConfig
	// Auth contains authentication configuration
	Auth AuthConfig
	// Database contains database configuration
	Database DatabaseConfig
	// Email contains email service configuration
	Email EmailConfig
	// OTP contains the one-time password policy
	OTP OTPConfig
	// Dictionary contains the dictionary proxy configuration
	Dictionary DictionaryConfig
	// Cleanup contains the favorites cleanup scheduler configuration
	Cleanup CleanupConfig

	// Rate Limiting Configuration
	RateLimit struct {
		Requests int // Number of requests allowed per window
		Window   int // Time window in seconds
		Burst    int // Maximum burst size
	}
}

// APIConfig contains API server settings
type APIConfig struct {
	// Port is the server port to listen on
	Port string
}

// AuthConfig contains authentication settings
type AuthConfig struct {
	// JWTSecret is the secret key used to sign JWT tokens
	JWTSecret string
	// AccessTokenMinutes is the access token lifetime in minutes
	AccessTokenMinutes int
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// MigrationsPath is the path to database migrations
	MigrationsPath string
}

// EmailConfig contains email service settings
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	// FromAddress is the email address used as sender
	FromAddress string
}

// OTPConfig is the one-time password policy. It is injected into the OTP
// service at construction; there is no ambient global policy.
type OTPConfig struct {
	// ExpiresInMinutes is the code lifetime
	ExpiresInMinutes int
	// MaxRequests is the issuance cap per (user, purpose) within the window
	MaxRequests int
	// RequestWindowMinutes is the sliding window for MaxRequests
	RequestWindowMinutes int
	// CodeLength is the number of digits in a code
	CodeLength int
	// ResendCooldownSeconds is the minimum spacing between issuances
	ResendCooldownSeconds int
}

// DictionaryConfig contains the upstream dictionary API and cache settings
type DictionaryConfig struct {
	BaseURL         string
	CacheTTLMinutes int
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
}

// CleanupConfig contains the favorites cleanup scheduler settings
type CleanupConfig struct {
	// Schedule in cron format (e.g. "0 3 * * *" for 03:00 daily)
	Schedule string
	// Enabled determines if the cleanup job runs on schedule
	Enabled bool
}

// LoadFromEnv retrieves configuration from environment variables
func (c *Config) LoadFromEnv() error {
	c.API = APIConfig{
		Port: getEnvOrDefault("API_PORT", "8080"),
	}
	c.Database = DatabaseConfig{
		Host:           getEnvOrDefault("DB_HOST", "localhost"),
		Port:           getEnvAsInt("DB_PORT", 5432),
		User:           getEnvOrDefault("DB_USER", "postgres"),
		Password:       getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:         getEnvOrDefault("DB_NAME", "wordvault"),
		SSLMode:        getEnvOrDefault("DB_SSL_MODE", "disable"),
		MigrationsPath: getEnvOrDefault("DB_MIGRATIONS_PATH", "migrations"),
	}
	c.Auth = AuthConfig{
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AccessTokenMinutes: getEnvAsInt("ACCESS_TOKEN_MINUTES", 60),
	}
	c.Email = EmailConfig{
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		FromAddress:  os.Getenv("SMTP_FROM"),
	}
	c.OTP = OTPConfig{
		ExpiresInMinutes:      getEnvAsInt("OTP_EXPIRES_IN", 10),
		MaxRequests:           getEnvAsInt("OTP_MAX_REQUESTS", 5),
		RequestWindowMinutes:  getEnvAsInt("OTP_REQUEST_WINDOW", 30),
		CodeLength:            getEnvAsInt("OTP_LENGTH", 6),
		ResendCooldownSeconds: getEnvAsInt("OTP_RESEND_COOLDOWN", 60),
	}
	c.Dictionary = DictionaryConfig{
		BaseURL:         getEnvOrDefault("DICTIONARY_BASE_URL", "https://api.dictionaryapi.dev/api/v2/entries"),
		CacheTTLMinutes: getEnvAsInt("DICTIONARY_CACHE_TTL", 60),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
	}
	c.Cleanup = CleanupConfig{
		Schedule: getEnvOrDefault("CLEANUP_SCHEDULE", "0 3 * * *"),
		Enabled:  getEnvAsBool("CLEANUP_ENABLED", true),
	}

	// Load rate limit configuration
	c.RateLimit.Requests = getEnvAsInt("RATE_LIMIT_REQUESTS", 1000)
	c.RateLimit.Window = getEnvAsInt("RATE_LIMIT_WINDOW", 60)
	c.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 50)

	// Validate required fields
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.OTP.CodeLength < 4 || c.OTP.CodeLength > 10 {
		return fmt.Errorf("OTP_LENGTH must be between 4 and 10")
	}

	return nil
}

// getEnvAsInt retrieves an environment variable and converts it to an integer
func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvAsBool retrieves an environment variable and converts it to a boolean
func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvOrDefault(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
