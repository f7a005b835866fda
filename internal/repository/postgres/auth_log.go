package postgres

import (
	"context"
	"database/sql"
	"time"
	"wordvault/internal/models"
	"wordvault/internal/repository"

	"github.com/google/uuid"
)

type authLogRepository struct {
	repository.BaseRepository
}

// NewAuthLogRepository creates a new PostgreSQL auth log repository
func NewAuthLogRepository(db *sql.DB) repository.AuthLogRepository {
	return &authLogRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *authLogRepository) Create(ctx context.Context, entry *models.AuthLog) error {
	query := `
		INSERT INTO auth_logs (
			id, user_id, email, action, ip_address, user_agent,
			metadata, success, failure_reason, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.DB().ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Email,
		entry.Action,
		entry.IPAddress,
		entry.UserAgent,
		entry.Metadata,
		entry.Success,
		entry.FailureReason,
		entry.CreatedAt,
	)
	return err
}

func (r *authLogRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.AuthLog, error) {
	query := `
		SELECT id, user_id, email, action, ip_address, user_agent,
		       metadata, success, failure_reason, created_at
		FROM auth_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	return r.list(ctx, query, userID, limit)
}

func (r *authLogRepository) GetByEmail(ctx context.Context, email string, limit int) ([]models.AuthLog, error) {
	query := `
		SELECT id, user_id, email, action, ip_address, user_agent,
		       metadata, success, failure_reason, created_at
		FROM auth_logs
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT $2`

	return r.list(ctx, query, email, limit)
}

func (r *authLogRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.AuthLog, error) {
	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuthLog
	for rows.Next() {
		var entry models.AuthLog
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Email,
			&entry.Action,
			&entry.IPAddress,
			&entry.UserAgent,
			&entry.Metadata,
			&entry.Success,
			&entry.FailureReason,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *authLogRepository) CountByAction(ctx context.Context, userID uuid.UUID, since time.Time) (map[models.AuthAction]repository.ActionCount, error) {
	query := `
		SELECT action, success, COUNT(*)
		FROM auth_logs
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY action, success`

	rows, err := r.DB().QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.AuthAction]repository.ActionCount)
	for rows.Next() {
		var action models.AuthAction
		var success bool
		var count int
		if err := rows.Scan(&action, &success, &count); err != nil {
			return nil, err
		}
		c := counts[action]
		if success {
			c.Succeeded += count
		} else {
			c.Failed += count
		}
		counts[action] = c
	}

	return counts, rows.Err()
}
