package auth

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("user with given email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid registration data")
)

// UserRepository abstracts persistence concerns from the domain layer.
type UserRepository interface {
	// Create stores a user with an empty CV; a taken e-mail yields
	// ErrUserAlreadyExists.
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
}
