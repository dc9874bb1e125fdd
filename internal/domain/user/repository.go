package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already taken")
)

type Repository interface {
	// CreateWithEmptyPreferences inserts the user and its initial empty
	// preferences row atomically; neither exists if the other insert fails.
	CreateWithEmptyPreferences(ctx context.Context, u User, preferencesID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}
