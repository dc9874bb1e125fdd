package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/sebastupa/testAssist/internal/delivery/http/dto"
	"github.com/sebastupa/testAssist/internal/delivery/http/middleware"
	"github.com/sebastupa/testAssist/internal/domain/preference"
	"github.com/sebastupa/testAssist/internal/pkg/response"
	ucpref "github.com/sebastupa/testAssist/internal/usecase/preference"
)

type PreferenceUsecase interface {
	Create(ctx context.Context, in ucpref.CreateInput) (preference.Preferences, error)
	Update(ctx context.Context, rawUserID string, in ucpref.UpdateInput) error
}

type PreferenceHandler struct {
	uc PreferenceUsecase
}

type createPreferenceRequest struct {
	UserID   string  `json:"user_id"`
	Timezone *string `json:"timezone"`
	Country  *string `json:"country"`
}

type updatePreferenceRequest struct {
	Timezone *string `json:"timezone"`
	Country  *string `json:"country"`
}

func NewPreferenceHandler(uc PreferenceUsecase) *PreferenceHandler {
	return &PreferenceHandler{uc: uc}
}

func (h *PreferenceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/user-preferences", h.Create)
	r.Put("/update-preferences/:userId", h.Update)
}

func (h *PreferenceHandler) Create(c fiber.Ctx) error {
	var req createPreferenceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), ucpref.CreateInput{
		UserID:   req.UserID,
		Timezone: req.Timezone,
		Country:  req.Country,
	})
	if err != nil {
		return mapPreferenceUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "preferences created", dto.NewPreferenceResponse(created))
}

func (h *PreferenceHandler) Update(c fiber.Ctx) error {
	var req updatePreferenceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	err := h.uc.Update(c.Context(), c.Params("userId"), ucpref.UpdateInput{
		Timezone: req.Timezone,
		Country:  req.Country,
	})
	if err != nil {
		return mapPreferenceUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "preferences updated", nil)
}

func mapPreferenceUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucpref.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, preference.ErrUserMissing):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, preference.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Preferences not found", nil, err)
	case errors.Is(err, preference.ErrAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, "Preferences already exist", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
