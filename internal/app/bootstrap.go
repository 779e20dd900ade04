package app

import (
	"fmt"
	"strings"

	"skill-swap/internal/config"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/delivery/http/routes"
	v1 "skill-swap/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

type App struct {
	Fiber  *fiber.App
	Logger *logrus.Logger
}

// New builds the HTTP app around already opened resources.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c.Config, c.Logger)

	var revocations middleware.RevocationChecker
	if c.Tokens != nil {
		revocations = c.Tokens
	}
	routes.NewRegistry(v1.Deps{
		Config:      c.Config,
		DB:          c.DB,
		Revocations: revocations,
	}).Register(f)

	return &App{Fiber: f, Logger: c.Logger}
}

// Bootstrap opens every process resource and returns the app with a cleanup that
// releases them in reverse order.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := NewLogger(cfg)
	flush := initSentry(cfg, logger)

	c, err := NewContainer(cfg, logger)
	if err != nil {
		flush()
		return nil, nil, err
	}

	app := New(c)
	cleanup := func() error {
		defer flush()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *logrus.Logger) {
	if app == nil {
		return
	}

	// The access log wraps error rendering so it records the final status.
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(middleware.NewMetricsMiddleware().Middleware())
	app.Use(middleware.NewRateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
