package preference

import (
	"time"

	"github.com/google/uuid"
)

// Preferences holds per-user settings. Timezone and country are free-text and
// optional; a nil pointer means the value is unset.
type Preferences struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Timezone  *string
	Country   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
