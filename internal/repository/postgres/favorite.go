package postgres

import (
	"context"
	"database/sql"
	"time"
	"wordvault/internal/models"
	"wordvault/internal/repository"

	"github.com/google/uuid"
)

type favoriteRepository struct {
	repository.BaseRepository
}

// NewFavoriteRepository creates a new PostgreSQL favorite repository
func NewFavoriteRepository(db *sql.DB) repository.FavoriteRepository {
	return &favoriteRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, word, definition, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING created_at, updated_at`

	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}

	return r.DB().QueryRowContext(ctx, query,
		favorite.ID,
		favorite.UserID,
		favorite.Word,
		favorite.Definition,
		favorite.Notes,
		time.Now(),
	).Scan(&favorite.CreatedAt, &favorite.UpdatedAt)
}

func (r *favoriteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Favorite, error) {
	query := `
		SELECT id, user_id, word, definition, notes, created_at, updated_at
		FROM favorites
		WHERE id = $1`

	var fav models.Favorite
	err := r.DB().QueryRowContext(ctx, query, id).Scan(
		&fav.ID,
		&fav.UserID,
		&fav.Word,
		&fav.Definition,
		&fav.Notes,
		&fav.CreatedAt,
		&fav.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrFavoriteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (r *favoriteRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	query := `
		SELECT id, user_id, word, definition, notes, created_at, updated_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.DB().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var fav models.Favorite
		err := rows.Scan(
			&fav.ID,
			&fav.UserID,
			&fav.Word,
			&fav.Definition,
			&fav.Notes,
			&fav.CreatedAt,
			&fav.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, fav)
	}

	return favorites, rows.Err()
}

func (r *favoriteRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) error {
	query := `
		UPDATE favorites
		SET notes = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.DB().ExecContext(ctx, query, id, notes)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrFavoriteNotFound
	}
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB().ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrFavoriteNotFound
	}
	return nil
}

func (r *favoriteRepository) CountOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := r.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE created_at < $1`, cutoff,
	).Scan(&count)
	return count, err
}

func (r *favoriteRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := r.DB().ExecContext(ctx,
		`DELETE FROM favorites WHERE created_at < $1`, cutoff,
	)
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	return int(rows), err
}
