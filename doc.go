// Package schemadoc generates one plain-text description per table of a
// database schema, written for people and language models that need to
// understand the structure of a database without querying its catalog.
//
// Each report lists the table comment, its columns with type, nullability,
// default value and description, the primary key, the foreign keys with
// their referential rules, and a short summary.
//
// # Basic Usage
//
// Load the configuration, then run the export:
//
//	cfg, err := config.Load("schemadoc.yaml", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Normalize()
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := schemadoc.Run(ctx, cfg, logrus.New())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d tables written to %s\n", len(result.Exported), result.OutputDir)
//
// # Engines
//
// The engine selects the catalog queries; the driver selects the database/sql
// driver used to open the connection:
//
//   - db2 uses the SYSCAT views (driver go_ibm_db, build with -tags db2)
//   - postgres uses information_schema and pg_catalog (driver postgres or pgx)
//   - mysql uses information_schema (driver mysql)
//
// # Subpackages
//
// For more control, use the subpackages directly:
//
//   - github.com/lucasefe/schemadoc/schema - Table, Column and ForeignKey types
//   - github.com/lucasefe/schemadoc/introspect - Catalog extractors and the table Describer
//   - github.com/lucasefe/schemadoc/generator - Report rendering with []byte output
//   - github.com/lucasefe/schemadoc/export - One file per table with per-table error recovery
//   - github.com/lucasefe/schemadoc/config - YAML, .env and environment configuration
//
// # Custom Type Display
//
// Declared types can be displayed differently per engine:
//
//	ex, err := introspect.New("db2", db,
//	    introspect.WithTypeMappings(map[string]string{"CLOB": "TEXT"}),
//	)
package schemadoc
