//go:build ignore

// This file demonstrates the subpackages without a database connection.
// Run with: go run library.go
package main

import (
	"fmt"
	"log"

	"github.com/lucasefe/schemadoc/generator"
	"github.com/lucasefe/schemadoc/introspect"
	"github.com/lucasefe/schemadoc/schema"
)

func main() {
	fmt.Println("=== Example 1: Rendering a Table ===")
	renderTable()

	fmt.Println("\n=== Example 2: Assembling Foreign Keys ===")
	assembleForeignKeys()

	fmt.Println("\n=== Example 3: Formatting Catalog Values ===")
	formatValues()
}

// renderTable builds a table by hand and prints its report
func renderTable() {
	active := "'A'"
	table := &schema.Table{
		Name:    "CUSTOMER",
		Schema:  "APP",
		Comment: "Customers of the store",
		Columns: []schema.Column{
			{Name: "ID", Type: "INTEGER", DisplayType: "INTEGER"},
			{Name: "NAME", Type: "VARCHAR", Length: 50, DisplayType: "VARCHAR(50)", Comment: "Full name"},
			{Name: "STATUS", Type: "CHARACTER", Length: 1, DisplayType: "CHARACTER(1)", Default: &active},
			{Name: "REGION_ID", Type: "INTEGER", Nullable: true, DisplayType: "INTEGER"},
		},
		PrimaryKey:     []string{"ID"},
		PrimaryKeyName: "PK_CUSTOMER",
		ForeignKeys: []schema.ForeignKey{{
			Name:          "FK_CUSTOMER_REGION",
			SourceColumns: []string{"REGION_ID"},
			TargetTable:   "REGION",
			TargetColumns: []string{"ID"},
			OnDelete:      schema.RuleCascade,
			OnUpdate:      schema.RuleNoAction,
		}},
	}

	report, err := generator.GenerateString(table)
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	fmt.Print(report)
}

// assembleForeignKeys groups DB2 catalog rows into constraints
func assembleForeignKeys() {
	rows := []introspect.ForeignKeyRow{
		{Constraint: "FK_LINE_ORDER", SourceColumn: "ORDER_ID", TargetTable: "ORDERS", TargetColumn: "ID", DeleteRule: "C", UpdateRule: "A", Sequence: 1},
		{Constraint: "FK_LINE_ORDER", SourceColumn: "ORDER_YEAR", TargetTable: "ORDERS", TargetColumn: "YEAR", DeleteRule: "C", UpdateRule: "A", Sequence: 2},
		{Constraint: "FK_LINE_PRODUCT", SourceColumn: "PRODUCT_ID", TargetTable: "PRODUCT", TargetColumn: "ID", DeleteRule: "N", UpdateRule: "R", Sequence: 1},
	}

	for _, fk := range introspect.AssembleForeignKeys(rows, introspect.DB2RuleCodes) {
		fmt.Printf("%s: %v -> %s%v (ON DELETE %s, ON UPDATE %s)\n",
			fk.Name, fk.SourceColumns, fk.TargetTable, fk.TargetColumns, fk.OnDelete, fk.OnUpdate)
	}
}

// formatValues shows the DB2 type and default formatting, and a type override
func formatValues() {
	amount := schema.Column{Name: "AMOUNT", Type: "DECIMAL", Length: 10, Scale: 2}
	fmt.Println(introspect.FormatDB2Type(amount))
	fmt.Println(introspect.FormatDB2Default("current timestamp", "TIMESTAMP"))
	fmt.Println(introspect.FormatDB2Default("ACTIVE", "VARCHAR"))

	ex := introspect.NewDB2(nil, introspect.WithTypeMappings(map[string]string{
		"CLOB": "TEXT",
	}))
	fmt.Println(ex.FormatType(schema.Column{Name: "NOTES", Type: "CLOB"}))
}
