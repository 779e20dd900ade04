package middleware

import (
	"strconv"
	"time"

	"skill-swap/internal/observability"

	"github.com/gofiber/fiber/v3"
)

// MetricsMiddleware records request counts and latency per matched route.
// Register it after the error middleware so failures are counted with their final status.
type MetricsMiddleware struct{}

func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{}
}

func (m *MetricsMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		status := c.Response().StatusCode()
		if err != nil {
			status, _, _ = normalizeError(err)
		}

		observability.HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		observability.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
