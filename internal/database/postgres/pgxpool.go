package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skill-swap/internal/config"
	"skill-swap/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

var errNilDB = errors.New("nil db")

// Pool adapts a pgxpool.Pool to database.DB.
type Pool struct {
	querier
	pool *pgxpool.Pool
}

type Option func(*options)

type options struct {
	logger *logrus.Logger
}

// WithLogger enables slow query logging when the config sets a threshold.
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Connect opens a pgx pool and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DatabaseConfig, opts ...Option) (database.DB, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	pcfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, err
	}
	applyPoolConfig(pcfg, cfg)
	if o.logger != nil && cfg.SlowQueryThreshold > 0 {
		pcfg.ConnConfig.Tracer = newSlowQueryTracer(o.logger, cfg.SlowQueryThreshold)
	}

	p, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.Ping(pingCtx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping %s:%s: %w", cfg.DBHost, cfg.DBPort, err)
	}

	return &Pool{querier: querier{q: p}, pool: p}, nil
}

func applyPoolConfig(pcfg *pgxpool.Config, cfg config.DatabaseConfig) {
	if cfg.ConnectTimeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.PoolMaxConns > 0 {
		pcfg.MaxConns = cfg.PoolMaxConns
	}
	if cfg.PoolMinConns > 0 {
		pcfg.MinConns = cfg.PoolMinConns
	}
	if cfg.PoolMaxConnLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.PoolMaxConnLifetime
	}
	if cfg.PoolMaxConnIdleTime > 0 {
		pcfg.MaxConnIdleTime = cfg.PoolMaxConnIdleTime
	}
	if cfg.PoolHealthCheckPeriod > 0 {
		pcfg.HealthCheckPeriod = cfg.PoolHealthCheckPeriod
	}
}

// DSN renders the keyword/value connection string for cfg.
func DSN(cfg config.DatabaseConfig) string {
	parts := []string{
		"host=" + strings.TrimSpace(cfg.DBHost),
		"port=" + strings.TrimSpace(cfg.DBPort),
		"user=" + strings.TrimSpace(cfg.DBUser),
		"dbname=" + strings.TrimSpace(cfg.DBName),
		"sslmode=" + strings.TrimSpace(cfg.DBSSLMode),
	}
	if cfg.DBPassword != "" {
		parts = append(parts, "password="+quoteValue(cfg.DBPassword))
	}
	return strings.Join(parts, " ")
}

// quoteValue escapes a libpq keyword value that may contain spaces or quotes.
func quoteValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

func (p *Pool) Ping(ctx context.Context) error {
	if p == nil || p.pool == nil {
		return errNilDB
	}
	return p.pool.Ping(ctx)
}

func (p *Pool) Close() error {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Pool) Begin(ctx context.Context) (database.Tx, error) {
	if p == nil || p.pool == nil {
		return nil, errNilDB
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &Tx{querier: querier{q: tx}, tx: tx}, nil
}

// Tx adapts pgx.Tx to database.Tx.
type Tx struct {
	querier
	tx pgx.Tx
}

func (t *Tx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *Tx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

// pgxQuerier is the statement surface pgxpool.Pool and pgx.Tx have in common.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type querier struct {
	q pgxQuerier
}

func (q querier) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if q.q == nil {
		return 0, errNilDB
	}
	tag, err := q.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q querier) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	if q.q == nil {
		return nil, errNilDB
	}
	r, err := q.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows{Rows: r}, nil
}

func (q querier) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	if q.q == nil {
		return errRow{err: errNilDB}
	}
	return q.q.QueryRow(ctx, query, args...)
}

// rows adds FieldNames to pgx.Rows; everything else passes through.
type rows struct {
	pgx.Rows
}

func (r rows) FieldNames() []string {
	fds := r.Rows.FieldDescriptions()
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Name
	}
	return out
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
