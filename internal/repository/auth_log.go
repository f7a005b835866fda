package repository

import (
	"context"
	"time"
	"wordvault/internal/models"

	"github.com/google/uuid"
)

// AuthLogRepository defines the interface for the append-only audit sink.
// Entries are never updated or deleted here; retention is an external job's
// concern.
type AuthLogRepository interface {
	Create(ctx context.Context, entry *models.AuthLog) error
	GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.AuthLog, error)
	GetByEmail(ctx context.Context, email string, limit int) ([]models.AuthLog, error)
	// CountByAction counts a user's entries per (action, success) since the
	// given instant, feeding the auth stats endpoint.
	CountByAction(ctx context.Context, userID uuid.UUID, since time.Time) (map[models.AuthAction]ActionCount, error)
}

// ActionCount splits an action's occurrences by outcome.
type ActionCount struct {
	Succeeded int
	Failed    int
}
