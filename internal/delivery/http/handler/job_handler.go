package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/sebastupa/testAssist/internal/delivery/http/dto"
	"github.com/sebastupa/testAssist/internal/delivery/http/middleware"
	"github.com/sebastupa/testAssist/internal/domain/job"
	"github.com/sebastupa/testAssist/internal/pkg/response"
	ucjob "github.com/sebastupa/testAssist/internal/usecase/job"
)

// legacyAuthHeader carries the self-reported creator id for clients not yet
// migrated to bearer tokens. The creator must still exist; a verified token
// takes precedence when both are present.
const legacyAuthHeader = "X-AUTH-USER"

type JobUsecase interface {
	Add(ctx context.Context, in ucjob.AddInput) (job.Job, error)
	List(ctx context.Context, p ucjob.ListParams) ([]job.Job, error)
}

type JobHandler struct {
	uc JobUsecase
}

type addJobRequest struct {
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	Remote      bool     `json:"remote"`
	JobTypes    []string `json:"job_types"`
}

func NewJobHandler(uc JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/add-job", h.Add)
	r.Get("/jobs", h.List)
}

func (h *JobHandler) Add(c fiber.Ctx) error {
	var req addJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	creator, err := creatorID(c)
	if err != nil {
		return err
	}

	created, err := h.uc.Add(c.Context(), ucjob.AddInput{
		Title:       req.Title,
		CompanyName: req.CompanyName,
		Location:    req.Location,
		Remote:      req.Remote,
		JobTypes:    req.JobTypes,
		AddedBy:     creator,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "job created", dto.NewJobResponse(created))
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryInt(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.List(c.Context(), ucjob.ListParams{Limit: limit, Offset: offset})
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(items))
}

func creatorID(c fiber.Ctx) (uuid.UUID, error) {
	if id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID); ok {
		return id, nil
	}

	raw := strings.TrimSpace(c.Get(legacyAuthHeader))
	if raw == "" {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Missing creator identity", nil, nil)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	}
	return id, nil
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucjob.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucjob.ErrCreatorNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
