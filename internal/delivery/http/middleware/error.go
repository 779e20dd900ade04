package middleware

import (
	"errors"
	"fmt"

	"skill-swap/internal/pkg/response"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       any
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

// ErrorMiddleware renders handler errors as the response envelope. Server errors are
// logged, reported to Sentry when a client is configured, and shown as a generic message.
type ErrorMiddleware struct {
	logger *logrus.Logger
}

func NewErrorMiddleware(logger *logrus.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				perr := fmt.Errorf("panic: %v", r)
				m.report(c, perr)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= fiber.StatusInternalServerError {
			m.report(c, err)
		}
		return response.Error(c, status, msg, data)
	}
}

func (m *ErrorMiddleware) report(c fiber.Ctx, err error) {
	m.logger.WithFields(logrus.Fields{
		"request_id": requestID(c),
		"method":     c.Method(),
		"path":       c.Path(),
	}).WithError(err).Error("request failed")

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		h := hub.Clone()
		h.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("method", c.Method())
			scope.SetTag("path", c.Path())
			scope.SetTag("request_id", requestID(c))
		})
		h.CaptureException(err)
	}
}

// normalizeError maps err to the status, message and data the client sees. Anything
// at or above 500 is reported as a bare internal error.
func normalizeError(err error) (int, string, any) {
	status, msg := fiber.StatusInternalServerError, ""
	var data any

	var appErr *AppError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		if appErr.StatusCode > 0 {
			status, msg, data = appErr.StatusCode, appErr.Message, appErr.Data
		}
	case errors.As(err, &fiberErr):
		if fiberErr.Code > 0 {
			status, msg = fiberErr.Code, fiberErr.Message
		}
	}

	if status >= fiber.StatusInternalServerError {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}
	if msg == "" {
		msg = response.DefaultMessage(status)
	}
	return status, msg, data
}
