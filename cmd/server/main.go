// Command server runs the skill swap HTTP API.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skill-swap/internal/app"
	"skill-swap/internal/config"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	if err := run(cfg); err != nil {
		logrus.WithError(err).Error("server exited")
		os.Exit(1)
	}
}

func run(cfg config.Config) (err error) {
	a, cleanup, err := app.Bootstrap(cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, cleanup())
	}()
	log := a.Logger

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Fiber.Listen(addr)
	}()
	log.WithFields(logrus.Fields{"addr": addr, "env": cfg.App.Environment}).Info("http server starting")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Fiber.ShutdownWithContext(shutdownCtx)
}
