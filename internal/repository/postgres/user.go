package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"
	"wordvault/internal/models"
	"wordvault/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type userRepository struct {
	repository.BaseRepository
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password, email_verified_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING created_at, updated_at`

	now := time.Now()
	user.ID = uuid.New()

	err := r.DB().QueryRowContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		user.EmailVerifiedAt,
		now,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return repository.ErrEmailExists
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email = $1", email)
}

func (r *userRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := `
		SELECT id, name, email, password, email_verified_at, created_at, updated_at
		FROM users
		WHERE ` + where

	var user models.User
	err := r.DB().QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.EmailVerifiedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, fields models.UpdateUserFields) error {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
		    password = COALESCE($3, password),
		    email_verified_at = COALESCE($4, email_verified_at),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.DB().ExecContext(ctx, query, id, fields.Name, fields.Password, fields.EmailVerifiedAt)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SetEmailVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error {
	query := `
		UPDATE users
		SET email_verified_at = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND email_verified_at IS NULL`

	_, err := r.DB().ExecContext(ctx, query, id, verifiedAt)
	return err
}
