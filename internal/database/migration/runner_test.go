package migration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"skill-swap/internal/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadMigrations_OrdersByVersion(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"V10__add_index.sql":   "CREATE INDEX x ON t (c);",
		"V2__add_swaps.sql":    "CREATE TABLE swaps (id uuid);",
		"V1__init_schema.sql":  "CREATE TABLE t (c int);",
		"README.md":            "not a migration",
		"V3_missing_under.sql": "ignored",
	})

	migs, err := loadMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migs, 3)
	assert.Equal(t, []int64{1, 2, 10}, []int64{migs[0].Version, migs[1].Version, migs[2].Version})
	assert.Equal(t, "init_schema", migs[0].Name)
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoadMigrations_ChecksumIgnoresSurroundingWhitespace(t *testing.T) {
	a, err := loadMigrations(writeFiles(t, map[string]string{"V1__a.sql": "SELECT 1;"}))
	require.NoError(t, err)
	b, err := loadMigrations(writeFiles(t, map[string]string{"V1__a.sql": "\n  SELECT 1;\n\n"}))
	require.NoError(t, err)
	assert.Equal(t, a[0].Checksum, b[0].Checksum)
}

func TestLoadMigrations_Errors(t *testing.T) {
	_, err := loadMigrations(writeFiles(t, map[string]string{
		"V1__one.sql": "SELECT 1;",
		"V01__dup.sql": "SELECT 2;",
	}))
	assert.ErrorContains(t, err, "duplicate migration version: 1")

	_, err = loadMigrations(writeFiles(t, map[string]string{"V1__empty.sql": "  \n"}))
	assert.ErrorContains(t, err, "empty migration file")
}

func TestLoadMigrations_MissingDirIsEmpty(t *testing.T) {
	migs, err := loadMigrations(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, migs)
}

func TestRun_NilDB(t *testing.T) {
	assert.Error(t, Runner{}.Run(t.Context(), nil))
}

func twoMigrations(t *testing.T) (string, []Migration) {
	t.Helper()
	dir := writeFiles(t, map[string]string{
		"V1__init.sql":   "CREATE TABLE a (id int);",
		"V2__second.sql": "CREATE TABLE b (id int);",
	})
	migs, err := loadMigrations(dir)
	require.NoError(t, err)
	return dir, migs
}

func appliedRows(rows ...[]any) dbtest.Result {
	return dbtest.Result{Columns: []string{"version", "checksum"}, Rows: rows}
}

func TestRun_AppliesPendingOnly(t *testing.T) {
	dir, migs := twoMigrations(t)
	db := dbtest.New(
		dbtest.Result{},
		appliedRows([]any{int64(1), migs[0].Checksum}),
		dbtest.Result{},
		dbtest.Result{Rows: [][]any{{0}}},
		dbtest.Result{},
		dbtest.Result{Affected: 1},
	)

	require.NoError(t, Runner{Dir: dir}.Run(context.Background(), db))
	assert.Equal(t, 1, db.Begun)
	assert.Equal(t, 1, db.Committed)

	calls := db.Calls()
	require.Len(t, calls, 6)
	assert.Equal(t, []any{lockKey}, calls[2].Args)
	assert.Equal(t, "CREATE TABLE b (id int);", calls[4].Query)
	assert.Equal(t, []any{int64(2), "second", migs[1].Checksum}, calls[5].Args)
}

func TestRun_SkipsVersionRecordedWhileWaiting(t *testing.T) {
	dir, migs := twoMigrations(t)
	db := dbtest.New(
		dbtest.Result{},
		appliedRows([]any{int64(1), migs[0].Checksum}),
		dbtest.Result{},
		dbtest.Result{Rows: [][]any{{1}}},
	)

	require.NoError(t, Runner{Dir: dir}.Run(context.Background(), db))
	assert.Len(t, db.Calls(), 4)
	assert.Equal(t, 1, db.Committed)
}

func TestRun_ChecksumMismatch(t *testing.T) {
	dir, _ := twoMigrations(t)
	db := dbtest.New(
		dbtest.Result{},
		appliedRows([]any{int64(1), "edited"}),
	)

	err := Runner{Dir: dir}.Run(context.Background(), db)
	assert.ErrorContains(t, err, "checksum mismatch: version=1")
	assert.Equal(t, 0, db.Begun)
}

func TestRun_FailedMigrationRollsBack(t *testing.T) {
	dir, _ := twoMigrations(t)
	db := dbtest.New(
		dbtest.Result{},
		appliedRows(),
		dbtest.Result{},
		dbtest.Result{Rows: [][]any{{0}}},
		dbtest.Result{Err: assert.AnError},
	)

	err := Runner{Dir: dir}.Run(context.Background(), db)
	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorContains(t, err, "file=V1__init.sql")
	assert.Equal(t, 0, db.Committed)
	assert.Equal(t, 1, db.RolledBack)
}
