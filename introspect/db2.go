package introspect

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/lucasefe/schemadoc/schema"
)

// DB2 reads the DB2 LUW SYSCAT catalog views. Schema names are upper-cased
// before querying, following the catalog's convention.
type DB2 struct {
	db      queryer
	builder sq.StatementBuilderType
	opts    *options
}

// NewDB2 returns an Extractor for DB2.
func NewDB2(db *sql.DB, opts ...Option) *DB2 {
	return newDB2(db, opts...)
}

func newDB2(db queryer, opts ...Option) *DB2 {
	return &DB2{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		opts:    applyOptions(opts),
	}
}

func (e *DB2) Tables(ctx context.Context, schemaName string) ([]string, error) {
	q := e.builder.
		Select("TABNAME").
		From("SYSCAT.TABLES").
		Where("TABSCHEMA = ? AND TYPE = 'T'", strings.ToUpper(schemaName)).
		OrderBy("TABNAME")

	return queryStrings(ctx, e.db, q)
}

func (e *DB2) TableComment(ctx context.Context, schemaName, tableName string) string {
	q := e.builder.
		Select("REMARKS").
		From("SYSCAT.TABLES").
		Where("TABSCHEMA = ? AND TABNAME = ?", strings.ToUpper(schemaName), strings.ToUpper(tableName))

	return queryComment(ctx, e.db, q)
}

func (e *DB2) Columns(ctx context.Context, schemaName, tableName string) ([]schema.Column, error) {
	q := e.builder.
		Select("COLNAME", "TYPENAME", "LENGTH", "SCALE", "NULLS", "DEFAULT", "REMARKS").
		From("SYSCAT.COLUMNS").
		Where("TABSCHEMA = ? AND TABNAME = ?", strings.ToUpper(schemaName), tableName).
		OrderBy("COLNO")

	return queryColumns(ctx, e.db, q, func(nulls string) bool { return nulls == "Y" })
}

func (e *DB2) PrimaryKeyColumns(ctx context.Context, schemaName, tableName string) ([]string, error) {
	q := e.builder.
		Select("KC.COLNAME").
		From("SYSCAT.KEYCOLUSE KC").
		Join("SYSCAT.TABCONST C ON KC.CONSTNAME = C.CONSTNAME" +
			" AND KC.TABSCHEMA = C.TABSCHEMA" +
			" AND KC.TABNAME = C.TABNAME").
		Where("C.TABSCHEMA = ? AND C.TABNAME = ? AND C.TYPE = 'P'", strings.ToUpper(schemaName), tableName).
		OrderBy("KC.COLSEQ")

	return queryStrings(ctx, e.db, q)
}

func (e *DB2) PrimaryKeyName(ctx context.Context, schemaName, tableName string) (string, error) {
	q := e.builder.
		Select("CONSTNAME").
		From("SYSCAT.TABCONST").
		Where("TABSCHEMA = ? AND TABNAME = ? AND TYPE = 'P'", strings.ToUpper(schemaName), tableName)

	return queryOptionalString(ctx, e.db, q)
}

func (e *DB2) ForeignKeys(ctx context.Context, schemaName, tableName string) ([]schema.ForeignKey, error) {
	q := e.builder.
		Select(
			"R.CONSTNAME",
			"KC1.COLNAME AS FK_COLUMN",
			"R.REFTABNAME",
			"KC2.COLNAME AS REF_COLUMN",
			"R.DELETERULE",
			"R.UPDATERULE",
			"KC1.COLSEQ",
		).
		From("SYSCAT.REFERENCES R").
		Join("SYSCAT.KEYCOLUSE KC1 ON R.CONSTNAME = KC1.CONSTNAME" +
			" AND R.TABSCHEMA = KC1.TABSCHEMA" +
			" AND R.TABNAME = KC1.TABNAME").
		Join("SYSCAT.KEYCOLUSE KC2 ON R.REFKEYNAME = KC2.CONSTNAME" +
			" AND R.REFTABSCHEMA = KC2.TABSCHEMA" +
			" AND R.REFTABNAME = KC2.TABNAME" +
			" AND KC1.COLSEQ = KC2.COLSEQ").
		Where("R.TABSCHEMA = ? AND R.TABNAME = ?", strings.ToUpper(schemaName), tableName).
		OrderBy("R.CONSTNAME", "KC1.COLSEQ")

	rows, err := queryForeignKeyRows(ctx, e.db, q)
	if err != nil {
		return nil, err
	}
	return AssembleForeignKeys(rows, DB2RuleCodes), nil
}

func (e *DB2) FormatType(col schema.Column) string {
	if mapped, ok := e.opts.mappedType(col.Type); ok {
		return mapped
	}
	return FormatDB2Type(col)
}

func (e *DB2) FormatDefault(raw, typeName string) string {
	return FormatDB2Default(raw, typeName)
}
