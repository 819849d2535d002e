package introspect

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasefe/schemadoc/schema"
)

var (
	db2CurrentRegister = regexp.MustCompile(`^CURRENT (DATE|TIMESTAMP|TIME)$`)
	sqlCurrentKeyword  = regexp.MustCompile(`^(CURRENT_DATE|CURRENT_TIMESTAMP|CURRENT_TIME|LOCALTIMESTAMP|LOCALTIME)(\(\d*\))?$`)
	pgLiteralCast      = regexp.MustCompile(`^('(?:[^']|'')*')::[a-zA-Z_][a-zA-Z0-9_ ]*(\[\])?$`)
	pgNumericCast      = regexp.MustCompile(`^\(?(-?[0-9.]+)\)?::[a-zA-Z_][a-zA-Z0-9_ ]*$`)
)

// PostgresTypeAliases shortens the verbose SQL-standard type names that
// information_schema reports.
var PostgresTypeAliases = map[string]string{
	"timestamp without time zone": "timestamp",
	"timestamp with time zone":    "timestamptz",
	"time without time zone":      "time",
	"time with time zone":         "timetz",
}

// FormatDB2Type renders a DB2 column type: fixed and variable character
// types carry their length, DECIMAL carries precision and scale.
func FormatDB2Type(col schema.Column) string {
	switch strings.ToUpper(col.Type) {
	case "CHARACTER":
		return fmt.Sprintf("CHARACTER(%d)", col.Length)
	case "VARCHAR":
		return fmt.Sprintf("VARCHAR(%d)", col.Length)
	case "DECIMAL":
		// Scale 0 is written explicitly.
		return fmt.Sprintf("DECIMAL(%d,%d)", col.Length, max(col.Scale, 0))
	default:
		return col.Type
	}
}

// FormatDB2Default normalizes a SYSCAT.COLUMNS DEFAULT expression. Only the
// CURRENT DATE/TIME/TIMESTAMP registers are rewritten; everything else is
// returned trimmed.
func FormatDB2Default(raw, typeName string) string {
	value := strings.TrimSpace(raw)
	if upper := strings.ToUpper(value); db2CurrentRegister.MatchString(upper) {
		return upper
	}
	return value
}

// FormatPostgresType renders a PostgreSQL column type from its
// information_schema data_type.
func FormatPostgresType(col schema.Column) string {
	dataType := strings.ToLower(strings.TrimSpace(col.Type))

	switch dataType {
	case "character varying", "varchar":
		if col.Length > 0 {
			return fmt.Sprintf("varchar(%d)", col.Length)
		}
		return "varchar"
	case "character", "char", "bpchar":
		if col.Length > 0 {
			return fmt.Sprintf("char(%d)", col.Length)
		}
		return "char"
	case "numeric", "decimal":
		if col.Length > 0 {
			return fmt.Sprintf("numeric(%d,%d)", col.Length, col.Scale)
		}
		return "numeric"
	}

	if alias, ok := PostgresTypeAliases[dataType]; ok {
		return alias
	}
	return col.Type
}

// FormatPostgresDefault normalizes a PostgreSQL column_default expression.
// Literal casts such as 'x'::character varying are reduced to the literal;
// function calls like now() and nextval(...) are kept verbatim.
func FormatPostgresDefault(raw, typeName string) string {
	value := strings.TrimSpace(raw)

	if m := pgLiteralCast.FindStringSubmatch(value); m != nil {
		return m[1]
	}
	if m := pgNumericCast.FindStringSubmatch(value); m != nil && isNumeric(m[1]) {
		return m[1]
	}
	if upper := strings.ToUpper(value); sqlCurrentKeyword.MatchString(upper) {
		return upper
	}
	return value
}

// FormatMySQLType renders a MySQL column type from its DATA_TYPE.
func FormatMySQLType(col schema.Column) string {
	switch strings.ToLower(strings.TrimSpace(col.Type)) {
	case "char":
		return fmt.Sprintf("char(%d)", col.Length)
	case "varchar":
		return fmt.Sprintf("varchar(%d)", col.Length)
	case "decimal", "numeric":
		return fmt.Sprintf("decimal(%d,%d)", col.Length, col.Scale)
	default:
		return col.Type
	}
}

// FormatMySQLDefault normalizes a MySQL COLUMN_DEFAULT. MySQL reports
// character literals without quotes, so they are quoted here. The text inside
// the quotes is the display value and is not SQL-escaped.
func FormatMySQLDefault(raw, typeName string) string {
	value := strings.TrimSpace(raw)
	upper := strings.ToUpper(value)

	switch {
	case sqlCurrentKeyword.MatchString(upper):
		return upper
	case isMySQLCharType(typeName):
		if strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'") && len(value) >= 2 {
			return value
		}
		return "'" + value + "'"
	default:
		return value
	}
}

func isMySQLCharType(typeName string) bool {
	switch strings.ToLower(strings.TrimSpace(typeName)) {
	case "char", "varchar", "tinytext", "text", "mediumtext", "longtext", "enum", "set":
		return true
	}
	return false
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
