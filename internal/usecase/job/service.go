package job

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sebastupa/testAssist/internal/domain/job"
	"github.com/sebastupa/testAssist/internal/domain/user"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrCreatorNotFound = errors.New("creator not found")
	ErrInternal        = errors.New("internal error")
)

const (
	listCacheKeyPrefix = "jobs:list"
	listCacheTTL       = 60 * time.Second
)

type AddInput struct {
	Title       string
	CompanyName string
	Location    string
	Remote      bool
	JobTypes    []string
	AddedBy     uuid.UUID
}

type ListParams struct {
	Limit  int
	Offset int
}

// Cache is the listing cache; implementations bypass silently when the
// backing store is unavailable.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Notifier fans job-created events out to subscribers.
type Notifier interface {
	NotifyJobCreated(j job.Job)
}

type Service struct {
	jobs     job.Repository
	users    user.Repository
	cache    Cache
	notifier Notifier
}

func NewService(jobs job.Repository, users user.Repository, cache Cache, notifier Notifier) *Service {
	return &Service{jobs: jobs, users: users, cache: cache, notifier: notifier}
}

func (s *Service) Add(ctx context.Context, in AddInput) (job.Job, error) {
	title := strings.TrimSpace(in.Title)
	company := strings.TrimSpace(in.CompanyName)
	location := strings.TrimSpace(in.Location)
	types := cleanJobTypes(in.JobTypes)
	if title == "" || company == "" || location == "" || len(types) == 0 {
		return job.Job{}, ErrInvalidInput
	}
	if in.AddedBy == uuid.Nil {
		return job.Job{}, ErrCreatorNotFound
	}

	exists, err := s.users.ExistsByID(ctx, in.AddedBy)
	if err != nil {
		return job.Job{}, ErrInternal
	}
	if !exists {
		return job.Job{}, ErrCreatorNotFound
	}

	j := job.Job{
		ID:          uuid.New(),
		Title:       title,
		CompanyName: company,
		Location:    location,
		Remote:      in.Remote,
		JobTypes:    types,
		AddedBy:     in.AddedBy,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		if errors.Is(err, job.ErrCreatorMissing) {
			return job.Job{}, ErrCreatorNotFound
		}
		return job.Job{}, ErrInternal
	}

	if s.cache != nil {
		_ = s.cache.DeleteByPrefix(ctx, listCacheKeyPrefix)
	}
	if s.notifier != nil {
		s.notifier.NotifyJobCreated(j)
	}

	return j, nil
}

func (s *Service) List(ctx context.Context, p ListParams) ([]job.Job, error) {
	if p.Limit < 0 || p.Offset < 0 {
		return nil, ErrInvalidInput
	}
	if p.Limit == 0 {
		p.Limit = 20
	}

	key := fmt.Sprintf("%s:%d:%d", listCacheKeyPrefix, p.Limit, p.Offset)
	if s.cache != nil {
		var cached []job.Job
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	items, err := s.jobs.List(ctx, p.Limit, p.Offset)
	if err != nil {
		return nil, ErrInternal
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, items, listCacheTTL)
	}
	return items, nil
}

func cleanJobTypes(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
