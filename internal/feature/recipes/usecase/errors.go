package usecase

import "errors"

var (
	// ErrRecipeNotFound is returned when no recipe has the requested ID.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrValidation is wrapped by every recipe input validation failure.
	ErrValidation = errors.New("validation failed")
)
