// Package seeder loads starter data into a migrated database.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-swap/internal/database"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
)

var errNilDB = errors.New("nil db")

var psql = sqrl.StatementBuilder.PlaceholderFormat(sqrl.Dollar)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Defaults returns the seeders for a fresh install. demo adds sample public profiles.
func Defaults(demo bool) []Seeder {
	out := []Seeder{SkillsSeeder{}}
	if demo {
		out = append(out, DemoProfilesSeeder{})
	}
	return out
}

type Runner struct {
	Seeders []Seeder
	Logger  *logrus.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errNilDB
	}
	log := r.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		log.WithFields(logrus.Fields{"seeder": s.Name(), "took": time.Since(start).String()}).Info("seeder done")
	}
	return nil
}

// inTx runs fn in one transaction and commits when it returns nil.
func inTx(ctx context.Context, db database.DB, fn func(tx database.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
