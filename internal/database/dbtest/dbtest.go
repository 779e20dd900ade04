// Package dbtest provides a scripted in-memory database.DB for repository tests.
package dbtest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"skill-swap/internal/database"

	"github.com/jackc/pgx/v5"
)

// ErrNoScript is returned when a statement runs with no queued result.
var ErrNoScript = errors.New("dbtest: no scripted result")

// Result is the scripted outcome of one statement.
type Result struct {
	Columns  []string
	Rows     [][]any
	Affected int64
	Err      error
}

// Call records one statement the code under test issued.
type Call struct {
	Query string
	Args  []any
}

// DB answers statements from a FIFO of scripted results, in issue order.
type DB struct {
	mu      sync.Mutex
	results []Result
	calls   []Call

	PingErr error

	Begun      int
	Committed  int
	RolledBack int
}

var _ database.DB = (*DB)(nil)

func New(results ...Result) *DB {
	return &DB{results: results}
}

// Push queues more results.
func (d *DB) Push(results ...Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.results = append(d.results, results...)
}

func (d *DB) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// LastCall returns the most recent statement, or a zero Call.
func (d *DB) LastCall() Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.calls) == 0 {
		return Call{}
	}
	return d.calls[len(d.calls)-1]
}

func (d *DB) next(query string, args []any) Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, Call{Query: query, Args: append([]any(nil), args...)})
	if len(d.results) == 0 {
		return Result{Err: ErrNoScript}
	}
	r := d.results[0]
	d.results = d.results[1:]
	return r
}

func (d *DB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	r := d.next(query, args)
	return r.Affected, r.Err
}

func (d *DB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	r := d.next(query, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return &Rows{columns: r.Columns, rows: r.Rows, pos: -1}, nil
}

func (d *DB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	r := d.next(query, args)
	return &Row{res: r}
}

func (d *DB) Ping(context.Context) error { return d.PingErr }

func (d *DB) Close() error { return nil }

func (d *DB) Begin(context.Context) (database.Tx, error) {
	d.mu.Lock()
	d.Begun++
	d.mu.Unlock()
	return &Tx{db: d}, nil
}

// Tx shares its parent's script. Rollback after Commit is a no-op, as with pgx.
type Tx struct {
	db   *DB
	done bool
}

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return t.db.Exec(ctx, query, args...)
}

func (t *Tx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, query, args...)
}

func (t *Tx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.db.QueryRow(ctx, query, args...)
}

func (t *Tx) Commit(context.Context) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.done = true
	t.db.Committed++
	return nil
}

func (t *Tx) Rollback(context.Context) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	if t.done {
		return nil
	}
	t.done = true
	t.db.RolledBack++
	return nil
}

type Rows struct {
	columns []string
	rows    [][]any
	pos     int
}

func (r *Rows) Close() {}

func (r *Rows) Next() bool {
	r.pos++
	return r.pos < len(r.rows)
}

func (r *Rows) Err() error { return nil }

func (r *Rows) FieldNames() []string { return r.columns }

func (r *Rows) Values() ([]any, error) {
	if r.pos < 0 || r.pos >= len(r.rows) {
		return nil, errors.New("dbtest: no current row")
	}
	return r.rows[r.pos], nil
}

func (r *Rows) Scan(dest ...any) error {
	values, err := r.Values()
	if err != nil {
		return err
	}
	return scan(values, dest)
}

type Row struct {
	res Result
}

func (r *Row) Scan(dest ...any) error {
	if r.res.Err != nil {
		return r.res.Err
	}
	if len(r.res.Rows) == 0 {
		return pgx.ErrNoRows
	}
	return scan(r.res.Rows[0], dest)
}

func scan(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("dbtest: scan %d values into %d targets", len(values), len(dest))
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *any:
			*d = v
		case *string:
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("dbtest: column %d is %T, not string", i, v)
			}
			*d = s
		case *int:
			n, ok := v.(int)
			if !ok {
				return fmt.Errorf("dbtest: column %d is %T, not int", i, v)
			}
			*d = n
		case *int64:
			n, ok := v.(int64)
			if !ok {
				return fmt.Errorf("dbtest: column %d is %T, not int64", i, v)
			}
			*d = n
		case *bool:
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("dbtest: column %d is %T, not bool", i, v)
			}
			*d = b
		default:
			return fmt.Errorf("dbtest: unsupported scan target %T", dest[i])
		}
	}
	return nil
}
