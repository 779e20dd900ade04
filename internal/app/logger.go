package app

import (
	"os"
	"strings"

	"skill-swap/internal/config"

	"github.com/sirupsen/logrus"
)

// NewLogger emits JSON in production and colored text elsewhere. Unknown levels fall
// back to info.
func NewLogger(cfg config.Config) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	if cfg.IsProduction() {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(cfg.App.LogLevel))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return l
}
