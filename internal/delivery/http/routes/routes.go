package routes

import (
	v1 "skill-swap/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	deps v1.Deps
}

func NewRegistry(deps v1.Deps) *Registry {
	return &Registry{deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerMetrics(app)
	r.registerAPI(app)
}

func (r *Registry) registerMetrics(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (r *Registry) registerAPI(app *fiber.App) {
	v1.Register(app.Group("/api/v1"), r.deps)
}
