package job

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID          uuid.UUID
	Title       string
	CompanyName string
	Location    string
	Remote      bool
	JobTypes    []string
	AddedBy     uuid.UUID
	CreatedAt   time.Time
}
