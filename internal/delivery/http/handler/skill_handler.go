package handler

import (
	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type createSkillRequest struct {
	SkillName   string  `json:"skill_name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

// RegisterRoutes mounts the catalog. Listing is public; creating a skill requires auth.
func (h *SkillHandler) RegisterRoutes(public, protected fiber.Router) {
	if public != nil {
		public.Get("/skills", h.List)
	}
	if protected != nil {
		protected.Post("/skills", h.Create)
	}
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context(), c.Query("category"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.SkillListResponse{Skills: items, Total: len(items)})
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}

	var req createSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.CreateSkill(c.Context(), usecase.CreateSkillInput{
		Name:        req.SkillName,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill created", created)
}
