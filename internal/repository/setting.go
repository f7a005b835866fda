package repository

import "context"

// SettingRepository defines the interface for the key/value settings store
type SettingRepository interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
	// GetBool and GetInt parse the stored value, falling back to the default
	// when the key is absent or malformed.
	GetBool(ctx context.Context, key string, fallback bool) (bool, error)
	GetInt(ctx context.Context, key string, fallback int) (int, error)
}
