package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"wordvault/internal/repository"
)

type settingRepository struct {
	repository.BaseRepository
}

// NewSettingRepository creates a new PostgreSQL setting repository
func NewSettingRepository(db *sql.DB) repository.SettingRepository {
	return &settingRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *settingRepository) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB().QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = $1`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", repository.ErrSettingNotFound
	}
	return value, err
}

func (r *settingRepository) SetValue(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP`

	_, err := r.DB().ExecContext(ctx, query, key, value)
	return err
}

func (r *settingRepository) GetBool(ctx context.Context, key string, fallback bool) (bool, error) {
	value, err := r.GetValue(ctx, key)
	if err == repository.ErrSettingNotFound {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, nil
	}
	return b, nil
}

func (r *settingRepository) GetInt(ctx context.Context, key string, fallback int) (int, error) {
	value, err := r.GetValue(ctx, key)
	if err == repository.ErrSettingNotFound {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback, nil
	}
	return i, nil
}
