package introspect

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/lucasefe/schemadoc/schema"
)

// Postgres reads information_schema, plus pg_catalog for comments and
// foreign keys.
type Postgres struct {
	db      queryer
	builder sq.StatementBuilderType
	opts    *options
}

// NewPostgres returns an Extractor for PostgreSQL.
func NewPostgres(db *sql.DB, opts ...Option) *Postgres {
	return newPostgres(db, opts...)
}

func newPostgres(db queryer, opts ...Option) *Postgres {
	return &Postgres{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		opts:    applyOptions(opts),
	}
}

func (e *Postgres) Tables(ctx context.Context, schemaName string) ([]string, error) {
	q := e.builder.
		Select("table_name").
		From("information_schema.tables").
		Where("table_schema = ? AND table_type = 'BASE TABLE'", schemaName).
		OrderBy("table_name")

	return queryStrings(ctx, e.db, q)
}

func (e *Postgres) TableComment(ctx context.Context, schemaName, tableName string) string {
	q := e.builder.
		Select("obj_description(c.oid, 'pg_class')").
		From("pg_catalog.pg_class c").
		Join("pg_catalog.pg_namespace n ON n.oid = c.relnamespace").
		Where("n.nspname = ? AND c.relname = ?", schemaName, tableName)

	return queryComment(ctx, e.db, q)
}

func (e *Postgres) Columns(ctx context.Context, schemaName, tableName string) ([]schema.Column, error) {
	q := e.builder.
		Select(
			"c.column_name",
			"c.data_type",
			"COALESCE(c.character_maximum_length, c.numeric_precision)",
			"c.numeric_scale",
			"c.is_nullable",
			"c.column_default",
			"col_description(pc.oid, c.ordinal_position::int)",
		).
		From("information_schema.columns c").
		Join("pg_catalog.pg_namespace pn ON pn.nspname = c.table_schema").
		Join("pg_catalog.pg_class pc ON pc.relname = c.table_name AND pc.relnamespace = pn.oid").
		Where("c.table_schema = ? AND c.table_name = ?", schemaName, tableName).
		OrderBy("c.ordinal_position")

	return queryColumns(ctx, e.db, q, func(nullable string) bool { return nullable == "YES" })
}

func (e *Postgres) PrimaryKeyColumns(ctx context.Context, schemaName, tableName string) ([]string, error) {
	q := e.builder.
		Select("kcu.column_name").
		From("information_schema.key_column_usage kcu").
		Join("information_schema.table_constraints tc" +
			" ON kcu.constraint_name = tc.constraint_name" +
			" AND kcu.table_schema = tc.table_schema" +
			" AND kcu.table_name = tc.table_name").
		Where("tc.constraint_type = 'PRIMARY KEY' AND kcu.table_schema = ? AND kcu.table_name = ?", schemaName, tableName).
		OrderBy("kcu.ordinal_position")

	return queryStrings(ctx, e.db, q)
}

func (e *Postgres) PrimaryKeyName(ctx context.Context, schemaName, tableName string) (string, error) {
	q := e.builder.
		Select("constraint_name").
		From("information_schema.table_constraints").
		Where("constraint_type = 'PRIMARY KEY' AND table_schema = ? AND table_name = ?", schemaName, tableName)

	return queryOptionalString(ctx, e.db, q)
}

// ForeignKeys reads pg_constraint rather than information_schema: constraint
// names are only unique per table, and conkey/confkey pair the columns by
// position.
func (e *Postgres) ForeignKeys(ctx context.Context, schemaName, tableName string) ([]schema.ForeignKey, error) {
	q := e.builder.
		Select(
			"con.conname",
			"src.attname",
			"ref.relname",
			"tgt.attname",
			"con.confdeltype::text",
			"con.confupdtype::text",
			"k.ord",
		).
		From("pg_catalog.pg_constraint con").
		Join("pg_catalog.pg_class rel ON rel.oid = con.conrelid").
		Join("pg_catalog.pg_namespace ns ON ns.oid = rel.relnamespace").
		Join("pg_catalog.pg_class ref ON ref.oid = con.confrelid").
		JoinClause("CROSS JOIN LATERAL unnest(con.conkey, con.confkey) WITH ORDINALITY AS k(src_attnum, tgt_attnum, ord)").
		Join("pg_catalog.pg_attribute src ON src.attrelid = con.conrelid AND src.attnum = k.src_attnum").
		Join("pg_catalog.pg_attribute tgt ON tgt.attrelid = con.confrelid AND tgt.attnum = k.tgt_attnum").
		Where("con.contype = 'f' AND ns.nspname = ? AND rel.relname = ?", schemaName, tableName).
		OrderBy("con.conname", "k.ord")

	rows, err := queryForeignKeyRows(ctx, e.db, q)
	if err != nil {
		return nil, err
	}
	return AssembleForeignKeys(rows, PostgresRuleCodes), nil
}

func (e *Postgres) FormatType(col schema.Column) string {
	if mapped, ok := e.opts.mappedType(col.Type); ok {
		return mapped
	}
	return FormatPostgresType(col)
}

func (e *Postgres) FormatDefault(raw, typeName string) string {
	return FormatPostgresDefault(raw, typeName)
}
