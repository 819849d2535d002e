package introspect

import (
	"context"
	"fmt"

	"github.com/lucasefe/schemadoc/schema"
)

// Describer assembles one schema.Table from an Extractor's catalog lookups.
type Describer struct {
	extractor Extractor
	opts      *options
}

// NewDescriber returns a Describer backed by ex. Only WithForeignKeys
// affects the Describer; type mappings belong to the Extractor.
func NewDescriber(ex Extractor, opts ...Option) *Describer {
	return &Describer{
		extractor: ex,
		opts:      applyOptions(opts),
	}
}

// Describe builds the structural record of one table. Any failing lookup
// fails the whole table; there are no partial results.
func (d *Describer) Describe(ctx context.Context, schemaName, tableName string) (*schema.Table, error) {
	columns, err := d.extractor.Columns(ctx, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s.%s: %w", schemaName, tableName, err)
	}
	for i := range columns {
		columns[i] = d.normalizeColumn(columns[i])
	}

	primaryKey, err := d.extractor.PrimaryKeyColumns(ctx, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get primary key for table %s.%s: %w", schemaName, tableName, err)
	}

	primaryKeyName, err := d.extractor.PrimaryKeyName(ctx, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get primary key name for table %s.%s: %w", schemaName, tableName, err)
	}

	foreignKeys := []schema.ForeignKey{}
	if d.opts.includeForeignKeys {
		foreignKeys, err = d.extractor.ForeignKeys(ctx, schemaName, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to get foreign keys for table %s.%s: %w", schemaName, tableName, err)
		}
	}

	return &schema.Table{
		Name:           tableName,
		Schema:         schemaName,
		Comment:        d.extractor.TableComment(ctx, schemaName, tableName),
		Columns:        columns,
		PrimaryKey:     primaryKey,
		PrimaryKeyName: primaryKeyName,
		ForeignKeys:    foreignKeys,
	}, nil
}

func (d *Describer) normalizeColumn(col schema.Column) schema.Column {
	col.DisplayType = d.extractor.FormatType(col)
	if col.HasDefault() {
		value := d.extractor.FormatDefault(*col.Default, col.Type)
		col.Default = &value
	}
	return col
}
