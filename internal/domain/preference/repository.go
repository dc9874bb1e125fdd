package preference

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("preferences not found")
	ErrAlreadyExists = errors.New("preferences already exist for user")
	ErrUserMissing   = errors.New("referenced user does not exist")
)

type Repository interface {
	Create(ctx context.Context, p Preferences) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (Preferences, error)
	// UpdateByUserID overwrites timezone and country on the row owned by
	// userID. A nil field clears the stored value.
	UpdateByUserID(ctx context.Context, userID uuid.UUID, timezone, country *string) error
}
