//go:build integration

package schemadoc

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/lucasefe/schemadoc/config"
)

const shopDDL = `
CREATE TABLE region (
	id   integer PRIMARY KEY,
	name varchar(40) NOT NULL
);
COMMENT ON TABLE region IS 'Sales regions';

CREATE TABLE customer (
	id        integer NOT NULL,
	name      varchar(50) NOT NULL DEFAULT 'anonymous',
	region_id integer,
	CONSTRAINT customer_pk PRIMARY KEY (id),
	CONSTRAINT fk_region FOREIGN KEY (region_id) REFERENCES region (id) ON DELETE CASCADE
);
COMMENT ON COLUMN customer.name IS 'Full name';

CREATE TABLE supplier (
	id        integer PRIMARY KEY,
	region_id integer,
	CONSTRAINT fk_region FOREIGN KEY (region_id) REFERENCES region (id) ON DELETE SET NULL
);

CREATE TABLE audit_log (message text);
`

func TestPostgresEndToEnd(t *testing.T) {
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("shop"),
		postgres.WithUsername("shop"),
		postgres.WithPassword("secret"),
		postgres.BasicWaitStrategies(),
	)
	defer func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()
	if err != nil {
		t.Fatalf("failed to start postgres: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatal(err)
	}

	for _, driver := range []string{"postgres", "pgx"} {
		t.Run(driver, func(t *testing.T) {
			cfg := &config.Config{
				Database: config.DatabaseConfig{Engine: "postgres", Driver: driver, DSN: dsn, Schema: "public"},
				Export:   config.ExportConfig{OutputDir: filepath.Join(t.TempDir(), "output")},
			}
			cfg.Normalize()

			db, err := Open(ctx, cfg.Database)
			if err != nil {
				t.Fatal(err)
			}
			defer db.Close()
			if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS customer, supplier, region, audit_log"); err != nil {
				t.Fatal(err)
			}
			if _, err := db.ExecContext(ctx, shopDDL); err != nil {
				t.Fatalf("failed to create tables: %v", err)
			}

			logger, _ := test.NewNullLogger()
			result, err := Run(ctx, cfg, logger)
			if err != nil {
				t.Fatalf("Run returned error: %v", err)
			}
			if strings.Join(result.Exported, ",") != "audit_log,customer,region,supplier" {
				t.Errorf("Unexpected exported tables: %v", result.Exported)
			}

			content, err := os.ReadFile(filepath.Join(cfg.Export.OutputDir, "customer.txt"))
			if err != nil {
				t.Fatal(err)
			}
			report := string(content)

			expectedContains := []string{
				"2. name\n   - Type: varchar(50)\n   - Nullable: NO\n   - Default value: anonymous\n   - Description: Full name\n",
				"   - Foreign Key: references region.id (ON DELETE CASCADE)\n",
				"- Constraint name: customer_pk\n",
				"- Total columns: 3\n",
				"- Number of foreign keys: 1\n",
				"- Required columns (NOT NULL): 2\n",
				"- Columns with default values: 1\n",
				"1. fk_region\n   - Source columns: region_id\n   - Target table: region\n   - Target columns: id\n   - Rules: ON DELETE CASCADE\n",
			}
			for _, expected := range expectedContains {
				if !strings.Contains(report, expected) {
					t.Errorf("Report does not contain %q:\n%s", expected, report)
				}
			}

			if n := strings.Count(report, "Foreign Key: references"); n != 1 {
				t.Errorf("Expected 1 foreign key reference in customer, got %d:\n%s", n, report)
			}

			supplier, err := os.ReadFile(filepath.Join(cfg.Export.OutputDir, "supplier.txt"))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(supplier), "   - Foreign Key: references region.id (ON DELETE SET NULL)\n") {
				t.Errorf("supplier should keep its own delete rule:\n%s", supplier)
			}
			if strings.Contains(string(supplier), "CASCADE") {
				t.Errorf("supplier should not pick up customer's rules:\n%s", supplier)
			}

			bare, err := os.ReadFile(filepath.Join(cfg.Export.OutputDir, "audit_log.txt"))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(bare), "- Has primary key: NO\n") {
				t.Errorf("audit_log should have no primary key:\n%s", bare)
			}
		})
	}
}
