package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/sebastupa/testAssist/internal/domain/job"
)

type JobResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name"`
	Location    string    `json:"location"`
	Remote      bool      `json:"remote"`
	JobTypes    []string  `json:"job_types"`
	AddedBy     uuid.UUID `json:"added_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Title:       j.Title,
		CompanyName: j.CompanyName,
		Location:    j.Location,
		Remote:      j.Remote,
		JobTypes:    j.JobTypes,
		AddedBy:     j.AddedBy,
		CreatedAt:   j.CreatedAt,
	}
}

func NewJobListResponse(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}
