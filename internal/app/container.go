package app

import (
	"context"
	"errors"
	"time"

	"skill-swap/internal/config"
	"skill-swap/internal/database"
	dbpostgres "skill-swap/internal/database/postgres"
	"skill-swap/internal/infrastructure/tokenstore"

	"github.com/sirupsen/logrus"
)

type Container struct {
	Config config.Config
	Logger *logrus.Logger
	DB     database.DB
	Tokens *tokenstore.Redis
}

func NewContainer(cfg config.Config, logger *logrus.Logger) (*Container, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, dbpostgres.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.WithField("host", cfg.Database.DBHost).Info("database connected")

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Tokens: tokenstore.NewRedis(cfg.Redis, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Tokens != nil {
		errs = append(errs, c.Tokens.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
