// Package generator renders a schema.Table as a plain-text report meant for
// humans and language-model ingestion.
//
// Basic usage:
//
//	output, err := generator.Generate(table)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(table.Name+".txt", output, 0644)
package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasefe/schemadoc/schema"
)

const (
	banner    = "=============================================="
	underline = "------------------"
)

// ErrNilTable is returned when Generate is called without a table.
var ErrNilTable = errors.New("generator: nil table")

// Generate renders the report for one table. The output depends only on the
// table, so rendering the same table twice yields identical bytes.
func Generate(t *schema.Table) ([]byte, error) {
	if t == nil {
		return nil, ErrNilTable
	}

	var builder strings.Builder

	generateHeader(&builder, t)
	generateColumns(&builder, t)
	if t.HasPrimaryKey() {
		generatePrimaryKey(&builder, t)
	}
	if len(t.ForeignKeys) > 0 {
		generateForeignKeys(&builder, t.ForeignKeys)
	}
	generateSummary(&builder, t)

	return []byte(builder.String()), nil
}

// GenerateString is a convenience wrapper that returns the report as a string.
func GenerateString(t *schema.Table) (string, error) {
	result, err := Generate(t)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

func generateHeader(builder *strings.Builder, t *schema.Table) {
	builder.WriteString(banner + "\n")
	builder.WriteString(fmt.Sprintf("TABLE: %s\n", t.Name))
	builder.WriteString(banner + "\n\n")

	if comment := strings.TrimSpace(t.Comment); comment != "" {
		builder.WriteString("TABLE DESCRIPTION:\n")
		builder.WriteString(comment + "\n\n")
	}
}

func generateColumns(builder *strings.Builder, t *schema.Table) {
	builder.WriteString("COLUMNS:\n")
	builder.WriteString(underline + "\n")

	for i, column := range t.Columns {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, column.Name))
		builder.WriteString(fmt.Sprintf("   - Type: %s\n", column.TypeLabel()))
		builder.WriteString(fmt.Sprintf("   - Nullable: %s\n", yesNo(column.Nullable)))

		if column.HasDefault() {
			builder.WriteString(fmt.Sprintf("   - Default value: %s\n", displayDefault(*column.Default)))
		}

		if t.IsPrimaryKeyColumn(column.Name) {
			builder.WriteString("   - Constraint: PRIMARY KEY")
			if t.HasCompositeKey() {
				builder.WriteString(" (part of composite key)")
			}
			builder.WriteString("\n")
		}

		for _, fk := range t.ForeignKeys {
			for _, target := range fk.TargetsFor(column.Name) {
				builder.WriteString(fmt.Sprintf("   - Foreign Key: references %s.%s", fk.TargetTable, target))
				if !fk.OnDelete.IsDefault() {
					builder.WriteString(fmt.Sprintf(" (ON DELETE %s)", fk.OnDelete))
				}
				builder.WriteString("\n")
			}
		}

		if comment := strings.TrimSpace(column.Comment); comment != "" {
			builder.WriteString(fmt.Sprintf("   - Description: %s\n", comment))
		}

		builder.WriteString("\n")
	}
}

func generatePrimaryKey(builder *strings.Builder, t *schema.Table) {
	name := t.PrimaryKeyName
	if name == "" {
		name = "[Unnamed]"
	}

	builder.WriteString("PRIMARY KEY:\n")
	builder.WriteString(underline + "\n")
	builder.WriteString(fmt.Sprintf("- Constraint name: %s\n", name))
	builder.WriteString(fmt.Sprintf("- Columns: %s\n", strings.Join(t.PrimaryKey, ", ")))
	if t.HasCompositeKey() {
		builder.WriteString("- Type: Composite key\n\n")
	} else {
		builder.WriteString("- Type: Simple key\n\n")
	}
}

func generateForeignKeys(builder *strings.Builder, foreignKeys []schema.ForeignKey) {
	builder.WriteString("FOREIGN KEYS:\n")
	builder.WriteString(underline + "\n")

	for i, fk := range foreignKeys {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, fk.Name))
		builder.WriteString(fmt.Sprintf("   - Source columns: %s\n", strings.Join(fk.SourceColumns, ", ")))
		builder.WriteString(fmt.Sprintf("   - Target table: %s\n", fk.TargetTable))
		builder.WriteString(fmt.Sprintf("   - Target columns: %s\n", strings.Join(fk.TargetColumns, ", ")))

		var rules []string
		if !fk.OnDelete.IsDefault() {
			rules = append(rules, fmt.Sprintf("ON DELETE %s", fk.OnDelete))
		}
		if !fk.OnUpdate.IsDefault() {
			rules = append(rules, fmt.Sprintf("ON UPDATE %s", fk.OnUpdate))
		}
		if len(rules) > 0 {
			builder.WriteString(fmt.Sprintf("   - Rules: %s\n", strings.Join(rules, ", ")))
		}

		builder.WriteString("\n")
	}
}

func generateSummary(builder *strings.Builder, t *schema.Table) {
	builder.WriteString("SUMMARY:\n")
	builder.WriteString(underline + "\n")
	builder.WriteString(fmt.Sprintf("- Total columns: %d\n", len(t.Columns)))
	builder.WriteString(fmt.Sprintf("- Has primary key: %s\n", yesNo(t.HasPrimaryKey())))

	if t.HasPrimaryKey() {
		keyType := "Simple"
		if t.HasCompositeKey() {
			keyType = "Composite"
		}
		builder.WriteString(fmt.Sprintf("- Primary key type: %s\n", keyType))
	}

	builder.WriteString(fmt.Sprintf("- Number of foreign keys: %d\n", len(t.ForeignKeys)))
	builder.WriteString(fmt.Sprintf("- Required columns (NOT NULL): %d\n", t.RequiredColumns()))
	builder.WriteString(fmt.Sprintf("- Columns with default values: %d\n", t.ColumnsWithDefaults()))
}

// displayDefault trims the value and drops one pair of surrounding single
// quotes.
func displayDefault(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'") {
		return value[1 : len(value)-1]
	}
	return value
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
