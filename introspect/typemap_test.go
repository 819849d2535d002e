package introspect

import (
	"testing"

	"github.com/lucasefe/schemadoc/schema"
)

func TestFormatDB2Type(t *testing.T) {
	tests := []struct {
		name     string
		column   schema.Column
		expected string
	}{
		{"character", schema.Column{Type: "CHARACTER", Length: 1}, "CHARACTER(1)"},
		{"varchar", schema.Column{Type: "VARCHAR", Length: 50}, "VARCHAR(50)"},
		{"decimal with scale", schema.Column{Type: "DECIMAL", Length: 10, Scale: 2}, "DECIMAL(10,2)"},
		{"decimal without scale", schema.Column{Type: "DECIMAL", Length: 7}, "DECIMAL(7,0)"},
		{"integer", schema.Column{Type: "INTEGER", Length: 4}, "INTEGER"},
		{"timestamp", schema.Column{Type: "TIMESTAMP", Length: 10, Scale: 6}, "TIMESTAMP"},
		{"unknown type", schema.Column{Type: "XML"}, "XML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDB2Type(tt.column); got != tt.expected {
				t.Errorf("FormatDB2Type() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFormatDB2Default(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		typeName string
		expected string
	}{
		{"current date lower case", "current date", "DATE", "CURRENT DATE"},
		{"current timestamp", " CURRENT TIMESTAMP ", "TIMESTAMP", "CURRENT TIMESTAMP"},
		{"current time", "Current Time", "TIME", "CURRENT TIME"},
		{"empty string", "''", "VARCHAR", "''"},
		{"empty char", "''", "CHARACTER", "''"},
		{"integer", "0", "INTEGER", "0"},
		{"decimal", "1.50", "DECIMAL", "1.50"},
		{"quoted literal", "'N'", "CHARACTER", "'N'"},
		{"unknown expression", "NEXT VALUE FOR SEQ", "BIGINT", "NEXT VALUE FOR SEQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDB2Default(tt.raw, tt.typeName); got != tt.expected {
				t.Errorf("FormatDB2Default(%q, %q) = %q, want %q", tt.raw, tt.typeName, got, tt.expected)
			}
		})
	}
}

func TestFormatPostgresType(t *testing.T) {
	tests := []struct {
		name     string
		column   schema.Column
		expected string
	}{
		{"varchar with length", schema.Column{Type: "character varying", Length: 255}, "varchar(255)"},
		{"varchar without length", schema.Column{Type: "character varying"}, "varchar"},
		{"char", schema.Column{Type: "character", Length: 10}, "char(10)"},
		{"numeric", schema.Column{Type: "numeric", Length: 10, Scale: 2}, "numeric(10,2)"},
		{"numeric without precision", schema.Column{Type: "numeric"}, "numeric"},
		{"timestamp", schema.Column{Type: "timestamp without time zone"}, "timestamp"},
		{"timestamptz", schema.Column{Type: "timestamp with time zone"}, "timestamptz"},
		{"integer", schema.Column{Type: "integer", Length: 32}, "integer"},
		{"unknown type", schema.Column{Type: "USER-DEFINED"}, "USER-DEFINED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPostgresType(tt.column); got != tt.expected {
				t.Errorf("FormatPostgresType() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFormatPostgresDefault(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"text cast", "'active'::character varying", "'active'"},
		{"empty text cast", "''::text", "''"},
		{"escaped quote", "'it''s'::text", "'it''s'"},
		{"numeric cast", "(-1)::integer", "-1"},
		{"plain number", "42", "42"},
		{"current timestamp", "CURRENT_TIMESTAMP", "CURRENT_TIMESTAMP"},
		{"current date lower case", "current_date", "CURRENT_DATE"},
		{"now", "now()", "now()"},
		{"sequence", "nextval('users_id_seq'::regclass)", "nextval('users_id_seq'::regclass)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPostgresDefault(tt.raw, ""); got != tt.expected {
				t.Errorf("FormatPostgresDefault(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestFormatMySQLType(t *testing.T) {
	tests := []struct {
		column   schema.Column
		expected string
	}{
		{schema.Column{Type: "varchar", Length: 100}, "varchar(100)"},
		{schema.Column{Type: "char", Length: 2}, "char(2)"},
		{schema.Column{Type: "decimal", Length: 12, Scale: 4}, "decimal(12,4)"},
		{schema.Column{Type: "int", Length: 10}, "int"},
	}

	for _, tt := range tests {
		if got := FormatMySQLType(tt.column); got != tt.expected {
			t.Errorf("FormatMySQLType(%v) = %v, want %v", tt.column, got, tt.expected)
		}
	}
}

func TestFormatMySQLDefault(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		typeName string
		expected string
	}{
		{"bare string", "active", "varchar", "'active'"},
		{"empty string", "", "varchar", "''"},
		{"already quoted", "'x'", "char", "'x'"},
		{"apostrophe is not escaped", "it's", "varchar", "'it's'"},
		{"surrounding blanks trimmed", "  active ", "varchar", "'active'"},
		{"current timestamp", "current_timestamp", "timestamp", "CURRENT_TIMESTAMP"},
		{"current timestamp precision", "CURRENT_TIMESTAMP(3)", "datetime", "CURRENT_TIMESTAMP(3)"},
		{"number", "0", "int", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMySQLDefault(tt.raw, tt.typeName); got != tt.expected {
				t.Errorf("FormatMySQLDefault(%q, %q) = %q, want %q", tt.raw, tt.typeName, got, tt.expected)
			}
		})
	}
}

func TestTypeMappingsOverride(t *testing.T) {
	ex := NewDB2(nil, WithTypeMappings(map[string]string{"clob": "TEXT"}))

	if got := ex.FormatType(schema.Column{Type: "CLOB", Length: 1048576}); got != "TEXT" {
		t.Errorf("Expected mapped type TEXT, got %s", got)
	}
	if got := ex.FormatType(schema.Column{Type: "VARCHAR", Length: 5}); got != "VARCHAR(5)" {
		t.Errorf("Expected fallback VARCHAR(5), got %s", got)
	}
}
