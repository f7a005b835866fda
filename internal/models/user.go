package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Password        string     `json:"-"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsEmailVerified reports whether the user has confirmed ownership of their
// email address via OTP.
func (u *User) IsEmailVerified() bool {
	return u.EmailVerifiedAt != nil
}

// UpdateUserFields holds the mutable user attributes. Nil fields are left
// untouched.
type UpdateUserFields struct {
	Name            *string
	Password        *string
	EmailVerifiedAt *time.Time
}
