package preference

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/sebastupa/testAssist/internal/domain/preference"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

type CreateInput struct {
	UserID   string
	Timezone *string
	Country  *string
}

type UpdateInput struct {
	Timezone *string
	Country  *string
}

type Service struct {
	prefs preference.Repository
}

func NewService(prefs preference.Repository) *Service {
	return &Service{prefs: prefs}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (preference.Preferences, error) {
	userID, err := parseUserID(in.UserID)
	if err != nil {
		return preference.Preferences{}, ErrInvalidInput
	}

	p := preference.Preferences{
		ID:       uuid.New(),
		UserID:   userID,
		Timezone: in.Timezone,
		Country:  in.Country,
	}

	if err := s.prefs.Create(ctx, p); err != nil {
		if errors.Is(err, preference.ErrUserMissing) || errors.Is(err, preference.ErrAlreadyExists) {
			return preference.Preferences{}, err
		}
		return preference.Preferences{}, ErrInternal
	}

	created, err := s.prefs.GetByUserID(ctx, userID)
	if err != nil {
		return preference.Preferences{}, ErrInternal
	}
	return created, nil
}

// Update overwrites both fields on the row owned by the given user; an
// omitted field clears the stored value, matching the create/update contract.
func (s *Service) Update(ctx context.Context, rawUserID string, in UpdateInput) error {
	userID, err := parseUserID(rawUserID)
	if err != nil {
		return ErrInvalidInput
	}

	if err := s.prefs.UpdateByUserID(ctx, userID, in.Timezone, in.Country); err != nil {
		if errors.Is(err, preference.ErrNotFound) {
			return err
		}
		return ErrInternal
	}
	return nil
}

func parseUserID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, ErrInvalidInput
	}
	return uuid.Parse(raw)
}
