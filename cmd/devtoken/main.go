// Command devtoken mints bearer tokens for local testing and revokes issued ones.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"skill-swap/internal/app"
	"skill-swap/internal/config"
	"skill-swap/internal/infrastructure/tokenstore"
	"skill-swap/internal/pkg/jwt"

	"github.com/sirupsen/logrus"
)

func main() {
	subject := flag.String("sub", "", "user id to mint a token for")
	email := flag.String("email", "", "email claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	revoke := flag.String("revoke", "", "token to revoke until it expires")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := app.NewLogger(cfg)
	svc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer)

	if *revoke != "" {
		claims, err := svc.ValidateToken(*revoke)
		if err != nil {
			log.WithError(err).Fatal("cannot revoke an invalid token")
		}
		store := tokenstore.NewRedis(cfg.Redis, log)
		defer func() {
			_ = store.Close()
		}()
		if !store.Enabled() {
			log.Fatal("redis is not configured")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			log.WithError(err).Error("revoke failed")
			return
		}
		log.WithField("jti", claims.ID).Info("token revoked")
		return
	}

	token, err := svc.GenerateToken(*subject, *email, *ttl)
	if err != nil {
		log.WithError(err).Fatal("failed to mint token")
	}
	fmt.Println(token)
}
