package handler

import (
	"errors"

	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profiles   usecase.ProfileUsecase
	userSkills usecase.UserSkillUsecase
	skills     usecase.SkillUsecase
}

type createProfileRequest struct {
	Name            *string  `json:"name"`
	Location        *string  `json:"location"`
	ProfilePhotoURL *string  `json:"profile_photo_url"`
	Availability    []string `json:"availability"`
	IsPublic        *bool    `json:"is_public"`
}

type updateProfileRequest struct {
	Name            *string   `json:"name"`
	Location        *string   `json:"location"`
	ProfilePhotoURL *string   `json:"profile_photo_url"`
	Availability    *[]string `json:"availability"`
	IsPublic        *bool     `json:"is_public"`
}

type addOfferedSkillRequest struct {
	SkillID          uuid.UUID `json:"skill_id"`
	SkillName        string    `json:"skill_name"`
	Category         *string   `json:"category"`
	ProficiencyLevel string    `json:"proficiency_level"`
	Description      *string   `json:"description"`
}

type addWantedSkillRequest struct {
	SkillID      uuid.UUID `json:"skill_id"`
	SkillName    string    `json:"skill_name"`
	Category     *string   `json:"category"`
	UrgencyLevel string    `json:"urgency_level"`
	Description  *string   `json:"description"`
}

func NewProfileHandler(profiles usecase.ProfileUsecase, userSkills usecase.UserSkillUsecase, skills usecase.SkillUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, userSkills: userSkills, skills: skills}
}

// RegisterRoutes mounts /profile. Skill search is public; everything else requires auth.
func (h *ProfileHandler) RegisterRoutes(public, protected fiber.Router) {
	if public != nil {
		public.Get("/profile/skills/search", h.SearchSkills)
	}
	if protected == nil {
		return
	}

	grp := protected.Group("/profile")
	grp.Get("/", h.Get)
	grp.Post("/", h.Create)
	grp.Put("/", h.Update)
	grp.Delete("/", h.Delete)
	grp.Get("/matches", h.Matches)
	grp.Post("/skills/offered", h.AddOffered)
	grp.Delete("/skills/offered/:skill_id", h.RemoveOffered)
	grp.Post("/skills/wanted", h.AddWanted)
	grp.Delete("/skills/wanted/:skill_id", h.RemoveWanted)
}

// Get returns the caller's profile, or null data when none exists yet.
func (h *ProfileHandler) Get(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	p, err := h.profiles.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrProfileNotFound) {
			return response.Success(c, fiber.StatusOK, "Profile not created yet", nil)
		}
		return mapUsecaseError(err)
	}
	return response.OK(c, p)
}

func (h *ProfileHandler) Create(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req createProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.profiles.CreateProfile(c.Context(), userID, usecase.CreateProfileInput{
		Name:            req.Name,
		Location:        req.Location,
		ProfilePhotoURL: req.ProfilePhotoURL,
		Availability:    req.Availability,
		IsPublic:        req.IsPublic,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Profile created", p)
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.profiles.UpdateProfile(c.Context(), userID, user.ProfileUpdate{
		Name:            req.Name,
		Location:        req.Location,
		ProfilePhotoURL: req.ProfilePhotoURL,
		Availability:    req.Availability,
		IsPublic:        req.IsPublic,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated", p)
}

func (h *ProfileHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := h.profiles.DeleteProfile(c.Context(), userID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile deleted", nil)
}

func (h *ProfileHandler) Matches(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.profiles.FindMatches(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.SkillMatchesResponse{Matches: items, Total: len(items)})
}

func (h *ProfileHandler) AddOffered(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req addOfferedSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	added, err := h.userSkills.AddOfferedSkill(c.Context(), userID, usecase.AddOfferedSkillInput{
		SkillID:          req.SkillID,
		SkillName:        req.SkillName,
		Category:         req.Category,
		ProficiencyLevel: req.ProficiencyLevel,
		Description:      req.Description,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill added successfully", added)
}

func (h *ProfileHandler) RemoveOffered(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	skillID, err := paramUUID(c, "skill_id")
	if err != nil {
		return err
	}
	if err := h.userSkills.RemoveOfferedSkill(c.Context(), userID, skillID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill removed successfully", nil)
}

func (h *ProfileHandler) AddWanted(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req addWantedSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	added, err := h.userSkills.AddWantedSkill(c.Context(), userID, usecase.AddWantedSkillInput{
		SkillID:      req.SkillID,
		SkillName:    req.SkillName,
		Category:     req.Category,
		UrgencyLevel: req.UrgencyLevel,
		Description:  req.Description,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill added successfully", added)
}

func (h *ProfileHandler) RemoveWanted(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	skillID, err := paramUUID(c, "skill_id")
	if err != nil {
		return err
	}
	if err := h.userSkills.RemoveWantedSkill(c.Context(), userID, skillID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill removed successfully", nil)
}

// SearchSkills is the autocomplete lookup over the catalog.
func (h *ProfileHandler) SearchSkills(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	items, err := h.skills.SearchSkills(c.Context(), c.Query("q"), limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.SkillSearchResponse{Skills: items, Total: len(items)})
}
