package repository

import (
	"context"
	"time"
	"wordvault/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence. It is the
// credential store consumed by the auth service: lookups never reveal more
// than presence or absence of a record.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, fields models.UpdateUserFields) error
	SetEmailVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error
}
