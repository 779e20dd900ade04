package app

import (
	"strings"
	"time"

	"skill-swap/internal/config"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// initSentry configures the global hub when a DSN is set. The returned flush is always
// safe to call.
func initSentry(cfg config.Config, logger *logrus.Logger) func() {
	dsn := strings.TrimSpace(cfg.App.SentryDSN)
	if dsn == "" {
		return func() {}
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: cfg.App.Environment,
		ServerName:  cfg.App.AppName,
	})
	if err != nil {
		logger.WithError(err).Warn("sentry init failed, error reporting disabled")
		return func() {}
	}

	logger.Info("sentry error reporting enabled")
	return func() {
		sentry.Flush(2 * time.Second)
	}
}
