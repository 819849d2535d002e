// Package introspect extracts structural facts from a database catalog.
// It provides one Extractor per supported engine, the foreign key assembler
// and the Describer that turns catalog lookups into a schema.Table.
//
// Basic usage:
//
//	ex, err := introspect.New("db2", db,
//	    introspect.WithTypeMappings(map[string]string{"CLOB": "TEXT"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table, err := introspect.NewDescriber(ex).Describe(ctx, "APP", "CUSTOMER")
package introspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lucasefe/schemadoc/schema"
)

// ErrUnknownEngine is returned by New for an engine without an Extractor.
var ErrUnknownEngine = errors.New("unknown database engine")

const (
	EngineDB2      = "db2"
	EnginePostgres = "postgres"
	EngineMySQL    = "mysql"
)

// Extractor reads structural metadata for one database engine.
//
// Catalog lookups return an error on failure, except TableComment which
// degrades to an empty string. FormatType and FormatDefault never fail:
// values they do not recognize are returned as-is.
type Extractor interface {
	// Tables lists the base tables of a schema in alphabetical order.
	Tables(ctx context.Context, schemaName string) ([]string, error)
	// TableComment returns the table description, or "" when there is none
	// or the lookup fails.
	TableComment(ctx context.Context, schemaName, tableName string) string
	// Columns returns the table columns ordered by physical position.
	Columns(ctx context.Context, schemaName, tableName string) ([]schema.Column, error)
	// PrimaryKeyColumns returns the primary key columns in key-sequence order.
	PrimaryKeyColumns(ctx context.Context, schemaName, tableName string) ([]string, error)
	// PrimaryKeyName returns the primary key constraint name, or "" when the
	// table has no primary key.
	PrimaryKeyName(ctx context.Context, schemaName, tableName string) (string, error)
	// ForeignKeys returns the constraints where the table is the referencer.
	ForeignKeys(ctx context.Context, schemaName, tableName string) ([]schema.ForeignKey, error)
	// FormatType renders the column type for display.
	FormatType(col schema.Column) string
	// FormatDefault normalizes an engine default expression for display.
	FormatDefault(raw, typeName string) string
}

var (
	_ Extractor = (*DB2)(nil)
	_ Extractor = (*Postgres)(nil)
	_ Extractor = (*MySQL)(nil)
)

// New returns the Extractor for engine.
func New(engine string, db *sql.DB, opts ...Option) (Extractor, error) {
	switch normalizeEngine(engine) {
	case EngineDB2:
		return NewDB2(db, opts...), nil
	case EnginePostgres:
		return NewPostgres(db, opts...), nil
	case EngineMySQL:
		return NewMySQL(db, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// Supported reports whether New accepts engine.
func Supported(engine string) bool {
	switch normalizeEngine(engine) {
	case EngineDB2, EnginePostgres, EngineMySQL:
		return true
	}
	return false
}

func normalizeEngine(engine string) string {
	e := strings.ToLower(strings.TrimSpace(engine))
	if e == "postgresql" {
		return EnginePostgres
	}
	return e
}
