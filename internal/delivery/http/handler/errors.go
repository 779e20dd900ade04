package handler

import (
	"errors"
	"strconv"
	"strings"

	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrProfileExists):
		return middleware.NewAppError(fiber.StatusBadRequest, "Profile already exists", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrSkillExists):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already exists", nil, err)
	case errors.Is(err, usecase.ErrSwapNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Swap not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidProficiencyLevel):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid proficiency level", nil, err)
	case errors.Is(err, usecase.ErrInvalidUrgencyLevel):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid urgency level", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid status transition", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func currentUserID(c fiber.Ctx) (string, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return "", middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, nil
}

func badRequest(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}

// queryInt reads an optional integer query parameter. Absent means 0.
func queryInt(c fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest(err)
	}
	return v, nil
}

func paramUUID(c fiber.Ctx, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(key)))
	if err != nil {
		return uuid.Nil, badRequest(err)
	}
	return id, nil
}
