// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateKey is returned when a write would break the uniqueness of email or username.
	ErrDuplicateKey = errors.New("email or username already exists")

	// ErrInvalidCredentials is returned when a login password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrIncorrectPassword is returned when the current password given on a profile update does not match.
	ErrIncorrectPassword = errors.New("incorrect current password")

	// ErrValidation is wrapped by every input validation failure.
	ErrValidation = errors.New("validation failed")
)
