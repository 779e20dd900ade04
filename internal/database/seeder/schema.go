package seeder

import (
	"context"
	"fmt"
	"strings"

	"skill-swap/internal/database"

	sqrl "github.com/Masterminds/squirrel"
)

// requireColumns fails with every column of table that the live schema lacks.
func requireColumns(ctx context.Context, db database.Querier, table string, columns ...string) error {
	if db == nil {
		return errNilDB
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}

	query, args, err := psql.Select("column_name").
		From("information_schema.columns").
		Where(sqrl.Eq{"table_schema": "public", "table_name": table}).
		ToSql()
	if err != nil {
		return err
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]bool{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column")
		}
		if !existing[col] {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: missing column %s", strings.Join(missing, ", "))
	}
	return nil
}
