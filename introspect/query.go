package introspect

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/lucasefe/schemadoc/schema"
)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queryStrings runs a single-column query and returns the trimmed,
// non-NULL values in row order.
func queryStrings(ctx context.Context, db queryer, q sq.Sqlizer) ([]string, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value sql.NullString
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		if value.Valid {
			values = append(values, strings.TrimSpace(value.String))
		}
	}

	return values, rows.Err()
}

// queryOptionalString returns the first column of the first row, trimmed.
// No rows and NULL both yield "".
func queryOptionalString(ctx context.Context, db queryer, q sq.Sqlizer) (string, error) {
	values, err := queryStrings(ctx, db, q)
	if err != nil || len(values) == 0 {
		return "", err
	}
	return values[0], nil
}

// queryComment is queryOptionalString with every failure swallowed.
func queryComment(ctx context.Context, db queryer, q sq.Sqlizer) string {
	query, args, err := q.ToSql()
	if err != nil {
		return ""
	}

	var comment sql.NullString
	if err := db.QueryRowContext(ctx, query, args...).Scan(&comment); err != nil {
		return ""
	}
	if !comment.Valid {
		return ""
	}
	return strings.TrimSpace(comment.String)
}

// queryForeignKeyRows scans the flat constraint/column rows consumed by
// AssembleForeignKeys. The query must select, in order: constraint name,
// source column, target table, target column, delete rule, update rule and
// key sequence.
func queryForeignKeyRows(ctx context.Context, db queryer, q sq.Sqlizer) ([]ForeignKeyRow, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ForeignKeyRow
	for rows.Next() {
		var row ForeignKeyRow
		err := rows.Scan(
			&row.Constraint,
			&row.SourceColumn,
			&row.TargetTable,
			&row.TargetColumn,
			&row.DeleteRule,
			&row.UpdateRule,
			&row.Sequence,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// queryColumns scans name, type, length, scale, nullable flag, default and
// comment, in that order. isNullable interprets the engine's nullable flag.
func queryColumns(ctx context.Context, db queryer, q sq.Sqlizer, isNullable func(string) bool) ([]schema.Column, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var col schema.Column
		var length, scale sql.NullInt64
		var nullable string
		var columnDefault, comment sql.NullString

		err := rows.Scan(
			&col.Name,
			&col.Type,
			&length,
			&scale,
			&nullable,
			&columnDefault,
			&comment,
		)
		if err != nil {
			return nil, err
		}

		col.Name = strings.TrimSpace(col.Name)
		col.Type = strings.TrimSpace(col.Type)
		col.Length = int(length.Int64)
		col.Scale = int(scale.Int64)
		col.Nullable = isNullable(strings.TrimSpace(nullable))
		if columnDefault.Valid {
			col.Default = &columnDefault.String
		}
		if comment.Valid {
			col.Comment = comment.String
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}
