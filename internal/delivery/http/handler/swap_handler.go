package handler

import (
	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SwapHandler struct {
	uc usecase.SwapUsecase
}

type createSwapRequest struct {
	ProviderID     string    `json:"provider_id"`
	OfferedSkillID uuid.UUID `json:"offered_skill_id"`
	WantedSkillID  uuid.UUID `json:"wanted_skill_id"`
	Message        *string   `json:"message"`
}

type updateSwapStatusRequest struct {
	Status          string  `json:"status"`
	ResponseMessage *string `json:"response_message"`
}

func NewSwapHandler(uc usecase.SwapUsecase) *SwapHandler {
	return &SwapHandler{uc: uc}
}

func (h *SwapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/swaps")
	grp.Post("/", h.Create)
	grp.Get("/", h.List)
	grp.Get("/pending", h.Pending)
	grp.Get("/stats", h.Stats)
	grp.Get("/:id", h.Get)
	grp.Put("/:id/status", h.UpdateStatus)
	grp.Delete("/:id", h.Delete)
}

func (h *SwapHandler) Create(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req createSwapRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.CreateSwap(c.Context(), userID, usecase.CreateSwapInput{
		ProviderID:     req.ProviderID,
		OfferedSkillID: req.OfferedSkillID,
		WantedSkillID:  req.WantedSkillID,
		Message:        req.Message,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Swap requested", created)
}

// List accepts ?status= and ?role=requester|provider.
func (h *SwapHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ListSwaps(c.Context(), userID, c.Query("status"), c.Query("role"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.SwapListResponse{Swaps: items, Total: len(items)})
}

func (h *SwapHandler) Pending(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ListPendingForProvider(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.SwapListResponse{Swaps: items, Total: len(items)})
}

func (h *SwapHandler) Stats(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	st, err := h.uc.Statistics(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, st)
}

func (h *SwapHandler) Get(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.uc.GetSwap(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, d)
}

func (h *SwapHandler) UpdateStatus(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateSwapStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	d, err := h.uc.UpdateStatus(c.Context(), userID, id, usecase.UpdateSwapStatusInput{
		Status:          req.Status,
		ResponseMessage: req.ResponseMessage,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Swap updated", d)
}

func (h *SwapHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteSwap(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Swap deleted", nil)
}
