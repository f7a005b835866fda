package repository

import "errors"

var (
	// User errors
	ErrEmailExists  = errors.New("email already exists")
	ErrUserNotFound = errors.New("user not found")

	// Favorite errors
	ErrFavoriteNotFound = errors.New("favorite not found")

	// Setting errors
	ErrSettingNotFound = errors.New("setting not found")
)
