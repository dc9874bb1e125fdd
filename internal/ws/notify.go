package ws

import (
	"encoding/json"
	"time"

	"github.com/sebastupa/testAssist/internal/domain/job"
)

type JobCreatedEvent struct {
	Type        string   `json:"type"`
	JobID       string   `json:"job_id"`
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	Remote      bool     `json:"remote"`
	JobTypes    []string `json:"job_types"`
	Timestamp   string   `json:"timestamp"`
}

// Notifier adapts the hub to the job usecase's notification port.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyJobCreated(j job.Job) {
	if n == nil || n.hub == nil {
		return
	}

	evt := JobCreatedEvent{
		Type:        "job_created",
		JobID:       j.ID.String(),
		Title:       j.Title,
		CompanyName: j.CompanyName,
		Location:    j.Location,
		Remote:      j.Remote,
		JobTypes:    j.JobTypes,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
