package repository

import (
	"context"
	"time"
	"wordvault/internal/models"

	"github.com/google/uuid"
)

// FavoriteRepository defines the interface for favorite word persistence
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Favorite, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountOlderThan and DeleteOlderThan back the scheduled cleanup job.
	CountOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
