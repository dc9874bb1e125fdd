package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/sebastupa/testAssist/internal/domain/preference"
)

type PreferenceResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Timezone  *string   `json:"timezone"`
	Country   *string   `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPreferenceResponse(p preference.Preferences) PreferenceResponse {
	return PreferenceResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Timezone:  p.Timezone,
		Country:   p.Country,
		CreatedAt: p.CreatedAt,
	}
}
