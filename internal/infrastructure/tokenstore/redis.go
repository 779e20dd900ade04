package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"skill-swap/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "revoked:jti:"

// Redis is the revocation list for bearer tokens, keyed by jti. With no Redis
// configured or reachable every token counts as not revoked.
type Redis struct {
	client *redis.Client
	logger *logrus.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, logger *logrus.Logger) *Redis {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		logger.Info("redis not configured, token revocation disabled")
		return &Redis{logger: logger}
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("redis unavailable, token revocation disabled")
		_ = client.Close()
		return &Redis{logger: logger}
	}

	return &Redis{client: client, logger: logger}
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, logger *logrus.Logger) *Redis {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Redis{client: client, logger: logger}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.WithError(err).Warn("redis unavailable, treating tokens as not revoked")
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

// Enabled reports whether a Redis client is attached.
func (r *Redis) Enabled() bool {
	return !r.isUnavailable()
}

// IsRevoked reports whether jti was revoked. Lookup failures fail open.
func (r *Redis) IsRevoked(ctx context.Context, jti string) (bool, error) {
	jti = strings.TrimSpace(jti)
	if r.isUnavailable() || jti == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		r.warnUnavailableOnce(err)
		return false, err
	}
	return n > 0, nil
}

// Revoke blocks jti until ttl elapses, which should cover the token's remaining life.
func (r *Redis) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	jti = strings.TrimSpace(jti)
	if r.isUnavailable() || jti == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := r.client.Set(ctx, keyPrefix+jti, "1", ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}
