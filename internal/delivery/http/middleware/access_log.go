package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestIDKey = "request_id"
)

type AccessLogMiddleware struct {
	logger *logrus.Logger
}

func NewAccessLogMiddleware(logger *logrus.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AccessLogMiddleware{logger: logger}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(headerRequestID, rid)
		c.Locals(ctxRequestIDKey, rid)

		err := c.Next()

		if m != nil && m.logger != nil {
			m.logger.WithFields(logrus.Fields{
				"request_id": rid,
				"ip":         c.IP(),
				"host":       c.Hostname(),
				"method":     c.Method(),
				"path":       c.OriginalURL(),
				"status":     c.Response().StatusCode(),
				"latency":    time.Since(start).String(),
				"req_bytes":  c.Request().Header.ContentLength(),
				"resp_bytes": len(c.Response().Body()),
				"user_agent": c.Get("User-Agent"),
				"referer":    c.Get("Referer"),
			}).Info("http access")
		}

		return err
	}
}

func requestID(c fiber.Ctx) string {
	if v, ok := c.Locals(ctxRequestIDKey).(string); ok {
		return v
	}
	return c.Get(headerRequestID)
}
