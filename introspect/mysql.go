package introspect

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/lucasefe/schemadoc/schema"
)

// MySQL reads the MySQL/MariaDB information_schema. The schema name is the
// database name.
type MySQL struct {
	db      queryer
	builder sq.StatementBuilderType
	opts    *options
}

// NewMySQL returns an Extractor for MySQL.
func NewMySQL(db *sql.DB, opts ...Option) *MySQL {
	return newMySQL(db, opts...)
}

func newMySQL(db queryer, opts ...Option) *MySQL {
	return &MySQL{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		opts:    applyOptions(opts),
	}
}

func (e *MySQL) Tables(ctx context.Context, schemaName string) ([]string, error) {
	q := e.builder.
		Select("TABLE_NAME").
		From("information_schema.TABLES").
		Where("TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'", schemaName).
		OrderBy("TABLE_NAME")

	return queryStrings(ctx, e.db, q)
}

func (e *MySQL) TableComment(ctx context.Context, schemaName, tableName string) string {
	q := e.builder.
		Select("TABLE_COMMENT").
		From("information_schema.TABLES").
		Where("TABLE_SCHEMA = ? AND TABLE_NAME = ?", schemaName, tableName)

	return queryComment(ctx, e.db, q)
}

func (e *MySQL) Columns(ctx context.Context, schemaName, tableName string) ([]schema.Column, error) {
	q := e.builder.
		Select(
			"COLUMN_NAME",
			"DATA_TYPE",
			"COALESCE(CHARACTER_MAXIMUM_LENGTH, NUMERIC_PRECISION)",
			"NUMERIC_SCALE",
			"IS_NULLABLE",
			"COLUMN_DEFAULT",
			"COLUMN_COMMENT",
		).
		From("information_schema.COLUMNS").
		Where("TABLE_SCHEMA = ? AND TABLE_NAME = ?", schemaName, tableName).
		OrderBy("ORDINAL_POSITION")

	return queryColumns(ctx, e.db, q, func(nullable string) bool { return nullable == "YES" })
}

func (e *MySQL) PrimaryKeyColumns(ctx context.Context, schemaName, tableName string) ([]string, error) {
	q := e.builder.
		Select("COLUMN_NAME").
		From("information_schema.KEY_COLUMN_USAGE").
		Where("TABLE_SCHEMA = ? AND TABLE_NAME = ? AND CONSTRAINT_NAME = 'PRIMARY'", schemaName, tableName).
		OrderBy("ORDINAL_POSITION")

	return queryStrings(ctx, e.db, q)
}

func (e *MySQL) PrimaryKeyName(ctx context.Context, schemaName, tableName string) (string, error) {
	q := e.builder.
		Select("CONSTRAINT_NAME").
		From("information_schema.TABLE_CONSTRAINTS").
		Where("TABLE_SCHEMA = ? AND TABLE_NAME = ? AND CONSTRAINT_TYPE = 'PRIMARY KEY'", schemaName, tableName)

	return queryOptionalString(ctx, e.db, q)
}

func (e *MySQL) ForeignKeys(ctx context.Context, schemaName, tableName string) ([]schema.ForeignKey, error) {
	q := e.builder.
		Select(
			"k.CONSTRAINT_NAME",
			"k.COLUMN_NAME",
			"k.REFERENCED_TABLE_NAME",
			"k.REFERENCED_COLUMN_NAME",
			"r.DELETE_RULE",
			"r.UPDATE_RULE",
			"k.ORDINAL_POSITION",
		).
		From("information_schema.KEY_COLUMN_USAGE k").
		Join("information_schema.REFERENTIAL_CONSTRAINTS r" +
			" ON r.CONSTRAINT_SCHEMA = k.CONSTRAINT_SCHEMA" +
			" AND r.CONSTRAINT_NAME = k.CONSTRAINT_NAME" +
			" AND r.TABLE_NAME = k.TABLE_NAME").
		Where("k.TABLE_SCHEMA = ? AND k.TABLE_NAME = ?", schemaName, tableName).
		OrderBy("k.CONSTRAINT_NAME", "k.ORDINAL_POSITION")

	rows, err := queryForeignKeyRows(ctx, e.db, q)
	if err != nil {
		return nil, err
	}
	return AssembleForeignKeys(rows, WordRuleCodes), nil
}

func (e *MySQL) FormatType(col schema.Column) string {
	if mapped, ok := e.opts.mappedType(col.Type); ok {
		return mapped
	}
	return FormatMySQLType(col)
}

func (e *MySQL) FormatDefault(raw, typeName string) string {
	return FormatMySQLDefault(raw, typeName)
}
