package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App       AppConfig       `toml:"app"`
	Database  DatabaseConfig  `toml:"database"`
	JWT       JWTConfig       `toml:"jwt"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Swap      SwapConfig      `toml:"swap"`
}

type AppConfig struct {
	AppName       string `toml:"name"`
	Environment   string `toml:"env"`
	HTTPPort      string `toml:"http_port"`
	LogLevel      string `toml:"log_level"`
	SentryDSN     string `toml:"sentry_dsn"`
	MigrationsDir string `toml:"migrations_dir"`
}

type DatabaseConfig struct {
	DBHost     string `toml:"host"`
	DBPort     string `toml:"port"`
	DBName     string `toml:"name"`
	DBUser     string `toml:"user"`
	DBPassword string `toml:"password"`
	DBSSLMode  string `toml:"ssl_mode"`

	ConnectTimeout        time.Duration `toml:"connect_timeout"`
	PoolMaxConns          int32         `toml:"pool_max_conns"`
	PoolMinConns          int32         `toml:"pool_min_conns"`
	PoolMaxConnLifetime   time.Duration `toml:"pool_max_conn_lifetime"`
	PoolMaxConnIdleTime   time.Duration `toml:"pool_max_conn_idle_time"`
	PoolHealthCheckPeriod time.Duration `toml:"pool_health_check_period"`

	// SlowQueryThreshold enables a warning log for statements slower than it. Zero disables.
	SlowQueryThreshold time.Duration `toml:"slow_query_threshold"`
}

// JWTConfig holds the verification settings for tokens minted by the identity provider.
type JWTConfig struct {
	Secret string `toml:"secret"`
	Issuer string `toml:"issuer"`
}

type RedisConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Password string `toml:"password"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type SwapConfig struct {
	StrictTransitions bool `toml:"strict_transitions"`
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	var missing []string
	req := func(key, fallback string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			v = fallback
		}
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, fallback string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME", cfg.App.AppName),
		Environment:   req("APP_ENV", cfg.App.Environment),
		HTTPPort:      req("HTTP_PORT", cfg.App.HTTPPort),
		LogLevel:      opt("LOG_LEVEL", orDefault(cfg.App.LogLevel, "info")),
		SentryDSN:     opt("SENTRY_DSN", cfg.App.SentryDSN),
		MigrationsDir: opt("MIGRATIONS_DIR", orDefault(cfg.App.MigrationsDir, "migrations")),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", cfg.Database.DBHost),
		DBPort:     opt("DB_PORT", cfg.Database.DBPort),
		DBName:     opt("DB_NAME", cfg.Database.DBName),
		DBUser:     opt("DB_USER", cfg.Database.DBUser),
		DBPassword: opt("DB_PASSWORD", cfg.Database.DBPassword),
		DBSSLMode:  opt("DB_SSL_MODE", orDefault(cfg.Database.DBSSLMode, "disable")),

		ConnectTimeout:        durationEnv("DB_CONNECT_TIMEOUT", cfg.Database.ConnectTimeout),
		PoolMaxConns:          int32(intEnv("DB_POOL_MAX_CONNS", int(cfg.Database.PoolMaxConns))),
		PoolMinConns:          int32(intEnv("DB_POOL_MIN_CONNS", int(cfg.Database.PoolMinConns))),
		PoolMaxConnLifetime:   durationEnv("DB_POOL_MAX_CONN_LIFETIME", cfg.Database.PoolMaxConnLifetime),
		PoolMaxConnIdleTime:   durationEnv("DB_POOL_MAX_CONN_IDLE_TIME", cfg.Database.PoolMaxConnIdleTime),
		PoolHealthCheckPeriod: durationEnv("DB_POOL_HEALTH_CHECK_PERIOD", cfg.Database.PoolHealthCheckPeriod),
		SlowQueryThreshold:    durationEnv("DB_SLOW_QUERY_THRESHOLD", cfg.Database.SlowQueryThreshold),
	}

	cfg.JWT = JWTConfig{
		Secret: req("JWT_SECRET", cfg.JWT.Secret),
		Issuer: opt("JWT_ISSUER", cfg.JWT.Issuer),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", cfg.Redis.Host),
		Port:     opt("REDIS_PORT", orDefault(cfg.Redis.Port, "6379")),
		Password: opt("REDIS_PASSWORD", cfg.Redis.Password),
	}

	cfg.RateLimit = RateLimitConfig{
		RequestsPerSecond: floatEnv("RATE_LIMIT_RPS", orDefaultFloat(cfg.RateLimit.RequestsPerSecond, 10)),
		Burst:             intEnv("RATE_LIMIT_BURST", orDefaultInt(cfg.RateLimit.Burst, 30)),
	}

	cfg.Swap = SwapConfig{
		StrictTransitions: boolEnv("SWAP_STRICT_TRANSITIONS", cfg.Swap.StrictTransitions),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production") || strings.EqualFold(c.App.Environment, "prod")
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if _, err := toml.Decode(string(b), cfg); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func orDefaultInt(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

func orDefaultFloat(v, fallback float64) float64 {
	if v <= 0 {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func floatEnv(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func boolEnv(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

// durationEnv accepts Go duration strings ("30s") or bare seconds ("30").
func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
