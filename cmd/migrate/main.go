package main

import (
	"context"
	"flag"
	"time"

	"skill-swap/internal/app"
	"skill-swap/internal/config"
	"skill-swap/internal/database/migration"
	"skill-swap/internal/database/seeder"

	"github.com/sirupsen/logrus"
)

func main() {
	seed := flag.Bool("seed", true, "run the default seeders after migrating")
	demo := flag.Bool("demo", false, "also seed sample public profiles")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := app.NewLogger(cfg)

	c, err := app.NewContainer(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to init container")
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	r := migration.Runner{Dir: cfg.App.MigrationsDir, Logger: log}
	if err := r.Run(migCtx, c.DB); err != nil {
		log.WithError(err).Error("migration failed")
		return
	}
	log.Info("migrations up to date")

	if !*seed {
		return
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer seedCancel()
	seeders := seeder.Runner{Seeders: seeder.Defaults(*demo), Logger: log}
	if err := seeders.Run(seedCtx, c.DB); err != nil {
		log.WithError(err).Error("seed failed")
		return
	}
	log.Info("seed complete")
}
