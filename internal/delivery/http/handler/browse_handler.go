package handler

import (
	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/domain/discovery"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type BrowseHandler struct {
	discovery usecase.DiscoveryUsecase
	profiles  usecase.ProfileUsecase
}

func NewBrowseHandler(discovery usecase.DiscoveryUsecase, profiles usecase.ProfileUsecase) *BrowseHandler {
	return &BrowseHandler{discovery: discovery, profiles: profiles}
}

func (h *BrowseHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users/browse", h.Browse)
	r.Get("/users/search", h.Search)
	r.Get("/users", h.List)
	r.Get("/skills/popular", h.PopularSkills)
}

func (h *BrowseHandler) Browse(c fiber.Ctx) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	pageSize, err := queryInt(c, "page_size")
	if err != nil {
		return err
	}

	res, err := h.discovery.Browse(c.Context(), discovery.BrowseParams{
		Page:           page,
		PageSize:       pageSize,
		SkillFilter:    c.Query("skill_filter"),
		LocationFilter: c.Query("location_filter"),
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, res)
}

func (h *BrowseHandler) Search(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	res, err := h.discovery.Search(c.Context(), discovery.SearchParams{
		Query: c.Query("q"),
		Limit: limit,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, res)
}

// List pages through public profiles filtered by name and location.
func (h *BrowseHandler) List(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return err
	}

	p := usecase.ListProfilesParams{
		Name:     c.Query("name"),
		Location: c.Query("location"),
		Limit:    limit,
		Offset:   offset,
	}
	items, err := h.profiles.ListPublicProfiles(c.Context(), p)
	if err != nil {
		return mapUsecaseError(err)
	}
	if p.Limit == 0 {
		p.Limit = usecase.DefaultListLimit
	}
	return response.OK(c, dto.ProfileListResponse{
		Users:  items,
		Total:  len(items),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
}

func (h *BrowseHandler) PopularSkills(c fiber.Ctx) error {
	res, err := h.discovery.PopularSkills(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, res)
}
