package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a word a user saved together with the definition they liked.
type Favorite struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Word       string    `json:"word"`
	Definition string    `json:"definition"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateFavoriteRequest represents the request to save a favorite
type CreateFavoriteRequest struct {
	Word       string  `json:"word" binding:"required"`
	Definition string  `json:"definition" binding:"required"`
	Notes      *string `json:"notes"`
}

// UpdateFavoriteRequest represents the request to update a favorite's notes
type UpdateFavoriteRequest struct {
	Notes *string `json:"notes"`
}
