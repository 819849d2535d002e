// Package schema defines the structural records extracted from a database
// catalog. A Table is built once per export, rendered, and discarded.
package schema

import "strings"

// Rule is a referential action enforced by a foreign key.
type Rule string

const (
	RuleCascade  Rule = "CASCADE"
	RuleRestrict Rule = "RESTRICT"
	RuleSetNull  Rule = "SET NULL"
	RuleNoAction Rule = "NO ACTION"
)

// IsDefault reports whether r is the implicit NO ACTION rule. An empty rule
// counts as NO ACTION.
func (r Rule) IsDefault() bool {
	return r == "" || r == RuleNoAction
}

// Table represents a database table with its columns, primary key and
// foreign key references.
type Table struct {
	// Name is the table name without schema qualification.
	Name string
	// Schema is the database schema containing this table, if known.
	Schema string
	// Comment is the table description from the catalog, or empty.
	Comment string
	// Columns contains all columns in the table, ordered by ordinal position.
	Columns []Column
	// PrimaryKey lists the primary key columns in key-sequence order.
	PrimaryKey []string
	// PrimaryKeyName is the primary key constraint name, or empty.
	PrimaryKeyName string
	// ForeignKeys contains the constraints where this table is the referencer.
	ForeignKeys []ForeignKey
}

// Column represents a database column within a table.
type Column struct {
	// Name is the column name.
	Name string
	// Type is the declared type name as stored in the catalog.
	Type string
	// Length is the declared length or precision, zero when not applicable.
	Length int
	// Scale is the declared scale, zero when not applicable.
	Scale int
	// Nullable indicates whether the column allows NULL values.
	Nullable bool
	// Default is the column's default value text, or nil if none.
	Default *string
	// Comment is the column description from the catalog, or empty.
	Comment string
	// DisplayType is the engine-formatted type (e.g. "VARCHAR(50)").
	DisplayType string
}

// ForeignKey represents a foreign key constraint. SourceColumns[i] references
// TargetColumns[i].
type ForeignKey struct {
	Name          string
	SourceColumns []string
	TargetTable   string
	TargetColumns []string
	OnDelete      Rule
	OnUpdate      Rule
}

// TypeLabel returns the formatted type, falling back to the declared type.
func (c Column) TypeLabel() string {
	if c.DisplayType != "" {
		return c.DisplayType
	}
	return c.Type
}

// HasDefault reports whether the column has a non-blank default value.
func (c Column) HasDefault() bool {
	return c.Default != nil && strings.TrimSpace(*c.Default) != ""
}

// TargetsFor returns the target columns paired with every occurrence of
// column in the source columns.
func (fk ForeignKey) TargetsFor(column string) []string {
	var targets []string
	for i, src := range fk.SourceColumns {
		if src == column && i < len(fk.TargetColumns) {
			targets = append(targets, fk.TargetColumns[i])
		}
	}
	return targets
}

// HasPrimaryKey reports whether the table declares a primary key.
func (t *Table) HasPrimaryKey() bool {
	return len(t.PrimaryKey) > 0
}

// HasCompositeKey reports whether the primary key spans more than one column.
func (t *Table) HasCompositeKey() bool {
	return len(t.PrimaryKey) > 1
}

// IsPrimaryKeyColumn reports whether name is part of the primary key.
func (t *Table) IsPrimaryKeyColumn(name string) bool {
	for _, pk := range t.PrimaryKey {
		if pk == name {
			return true
		}
	}
	return false
}

// RequiredColumns counts the columns declared NOT NULL.
func (t *Table) RequiredColumns() int {
	n := 0
	for _, c := range t.Columns {
		if !c.Nullable {
			n++
		}
	}
	return n
}

// ColumnsWithDefaults counts the columns with a non-blank default value.
func (t *Table) ColumnsWithDefaults() int {
	n := 0
	for _, c := range t.Columns {
		if c.HasDefault() {
			n++
		}
	}
	return n
}
