package handler

import (
	"context"
	"time"

	"skill-swap/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is any dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		// written directly so the error middleware does not fold 503 into 500
		if err := h.db.Ping(ctx); err != nil {
			return response.Error(c, fiber.StatusServiceUnavailable, "database unavailable", fiber.Map{"status": "unhealthy"})
		}
	}
	return response.OK(c, fiber.Map{"status": "healthy"})
}
