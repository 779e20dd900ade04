package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"skill-swap/internal/database"

	sqrl "github.com/Masterminds/squirrel"
)

var errEmptyFields = errors.New("no fields to write")

// psql is the statement builder shared by every repository.
var psql = sqrl.StatementBuilder.PlaceholderFormat(sqrl.Dollar)

// QueryExecutor runs parameterized statements and returns rows as column maps.
// It works over the pool or an open transaction.
type QueryExecutor struct {
	q database.Querier
}

func NewQueryExecutor(q database.Querier) *QueryExecutor {
	return &QueryExecutor{q: q}
}

// Execute runs query and collects every row.
func (e *QueryExecutor) Execute(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := e.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := rows.FieldNames()
	out := make([]Row, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(Row, len(names))
		for i, name := range names {
			if i < len(values) {
				row[name] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExecuteOne returns the first row, or ok=false when the query yields nothing.
func (e *QueryExecutor) ExecuteOne(ctx context.Context, query string, args ...any) (Row, bool, error) {
	rows, err := e.Execute(ctx, query, args...)
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return rows[0], true, nil
}

// Select renders a squirrel builder and runs it.
func (e *QueryExecutor) Select(ctx context.Context, b sqrl.Sqlizer) ([]Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return e.Execute(ctx, query, args...)
}

func (e *QueryExecutor) SelectOne(ctx context.Context, b sqrl.Sqlizer) (Row, bool, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build query: %w", err)
	}
	return e.ExecuteOne(ctx, query, args...)
}

// InsertReturning inserts fields into table and returns the stored row.
func (e *QueryExecutor) InsertReturning(ctx context.Context, table string, fields map[string]any) (Row, error) {
	if len(fields) == 0 {
		return nil, errEmptyFields
	}
	cols := sortedKeys(fields)
	vals := make([]any, 0, len(cols))
	for _, c := range cols {
		vals = append(vals, fields[c])
	}

	query, args, err := psql.Insert(table).Columns(cols...).Values(vals...).Suffix("RETURNING *").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert %s: %w", table, err)
	}
	row, ok, err := e.ExecuteOne(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("insert %s returned no row", table)
	}
	return row, nil
}

// UpdateReturning applies fields to the rows matching match and returns the first
// updated row, or ok=false when nothing matched.
func (e *QueryExecutor) UpdateReturning(ctx context.Context, table string, fields map[string]any, match sqrl.Sqlizer) (Row, bool, error) {
	if len(fields) == 0 {
		return nil, false, errEmptyFields
	}
	b := psql.Update(table)
	for _, c := range sortedKeys(fields) {
		b = b.Set(c, fields[c])
	}
	query, args, err := b.Where(match).Suffix("RETURNING *").ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build update %s: %w", table, err)
	}
	return e.ExecuteOne(ctx, query, args...)
}

// Exec runs a statement that returns no rows.
func (e *QueryExecutor) Exec(ctx context.Context, b sqrl.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build statement: %w", err)
	}
	return e.q.Exec(ctx, query, args...)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EncodeJSONField serializes v for a text column. nil stays NULL.
func EncodeJSONField(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// DecodeStringList parses a JSON text column holding a list of strings.
// NULL, blank and malformed values all read as absent.
func DecodeStringList(raw *string) []string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(*raw), &out); err != nil {
		return nil
	}
	return out
}
