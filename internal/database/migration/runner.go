package migration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"skill-swap/internal/database"

	"github.com/sirupsen/logrus"
)

// lockKey is the transaction-scoped advisory lock every apply step takes, so two
// processes migrating at once apply each version exactly once.
const lockKey int64 = 746295115

// Runner applies V<version>__<name>.sql files from Dir in version order. Applied files
// are recorded in schema_migrations with a checksum; editing one afterwards is an error.
type Runner struct {
	Dir    string
	Logger *logrus.Logger
}

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}

	dir, err := resolveDir(r.Dir)
	if err != nil {
		return err
	}
	migs, err := loadMigrations(dir)
	if err != nil {
		return err
	}
	if len(migs) == 0 {
		r.log().WithField("dir", dir).Warn("no migrations found")
		return nil
	}

	if _, err := db.Exec(ctx, createSchemaMigrations); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	known, err := appliedChecksums(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migs {
		if sum, ok := known[m.Version]; ok {
			if sum != m.Checksum {
				return fmt.Errorf("migration checksum mismatch: version=%d name=%s", m.Version, m.Name)
			}
			continue
		}

		start := time.Now()
		applied, err := apply(ctx, db, m)
		if err != nil {
			return err
		}
		fields := logrus.Fields{"version": m.Version, "name": m.Name}
		if !applied {
			r.log().WithFields(fields).Info("migration applied by another runner")
			continue
		}
		fields["took"] = time.Since(start).String()
		r.log().WithFields(fields).Info("migration applied")
	}
	return nil
}

func (r Runner) log() *logrus.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logrus.StandardLogger()
}

const createSchemaMigrations = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func appliedChecksums(ctx context.Context, db database.Querier) (map[int64]string, error) {
	rows, err := db.Query(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var v int64
		var sum string
		if err := rows.Scan(&v, &sum); err != nil {
			return nil, err
		}
		out[v] = sum
	}
	return out, rows.Err()
}

// apply runs m in its own transaction. It reports false when another runner recorded
// the version while this one waited for the lock.
func apply(ctx context.Context, db database.DB, m Migration) (bool, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, lockKey); err != nil {
		return false, fmt.Errorf("lock migrations: %w", err)
	}

	var n int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM schema_migrations WHERE version = $1`, m.Version).Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, tx.Commit(ctx)
	}

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return false, fmt.Errorf("apply migration failed: version=%d file=%s: %w", m.Version, m.Filename, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		m.Version, m.Name, m.Checksum,
	); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

// resolveDir defaults to a migrations directory next to the executable.
func resolveDir(dir string) (string, error) {
	if strings.TrimSpace(dir) != "" {
		return dir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), "migrations"), nil
}

func loadMigrations(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	migs := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m, ok, err := readMigration(dir, e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			migs = append(migs, m)
		}
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version: %d", migs[i].Version)
		}
	}
	return migs, nil
}

func readMigration(dir, filename string) (Migration, bool, error) {
	match := fileRe.FindStringSubmatch(filename)
	if match == nil {
		return Migration{}, false, nil
	}
	v, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return Migration{}, false, fmt.Errorf("invalid migration version: %s", filename)
	}

	b, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return Migration{}, false, err
	}
	body := strings.TrimSpace(string(b))
	if body == "" {
		return Migration{}, false, fmt.Errorf("empty migration file: %s", filename)
	}

	sum := sha256.Sum256([]byte(body))
	return Migration{
		Version:  v,
		Name:     match[2],
		Filename: filename,
		SQL:      body,
		Checksum: hex.EncodeToString(sum[:]),
	}, true, nil
}
