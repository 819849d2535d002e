package introspect

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/lucasefe/schemadoc/schema"
)

func newMockDB2(t *testing.T) (*DB2, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewDB2(db), mock
}

func expectDone(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDB2Tables(t *testing.T) {
	ex, mock := newMockDB2(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT TABNAME FROM SYSCAT.TABLES")).
		WithArgs("APP").
		WillReturnRows(sqlmock.NewRows([]string{"TABNAME"}).
			AddRow("CUSTOMER  ").
			AddRow("REGION"))

	tables, err := ex.Tables(context.Background(), "app")
	if err != nil {
		t.Fatalf("Tables returned error: %v", err)
	}

	if len(tables) != 2 || tables[0] != "CUSTOMER" || tables[1] != "REGION" {
		t.Errorf("Unexpected tables: %q", tables)
	}
	expectDone(t, mock)
}

func TestDB2TableComment(t *testing.T) {
	ex, mock := newMockDB2(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT REMARKS FROM SYSCAT.TABLES")).
		WithArgs("APP", "CUSTOMER").
		WillReturnRows(sqlmock.NewRows([]string{"REMARKS"}).AddRow("  Customers of the store  "))

	if got := ex.TableComment(context.Background(), "app", "customer"); got != "Customers of the store" {
		t.Errorf("TableComment() = %q", got)
	}
	expectDone(t, mock)
}

func TestDB2TableCommentDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name   string
		expect func(sqlmock.Sqlmock)
	}{
		{"query error", func(m sqlmock.Sqlmock) {
			m.ExpectQuery("SYSCAT.TABLES").WillReturnError(errors.New("SQL0204N"))
		}},
		{"no rows", func(m sqlmock.Sqlmock) {
			m.ExpectQuery("SYSCAT.TABLES").WillReturnRows(sqlmock.NewRows([]string{"REMARKS"}))
		}},
		{"null remarks", func(m sqlmock.Sqlmock) {
			m.ExpectQuery("SYSCAT.TABLES").WillReturnRows(sqlmock.NewRows([]string{"REMARKS"}).AddRow(nil))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, mock := newMockDB2(t)
			tt.expect(mock)

			if got := ex.TableComment(context.Background(), "APP", "CUSTOMER"); got != "" {
				t.Errorf("Expected empty comment, got %q", got)
			}
		})
	}
}

func TestDB2Columns(t *testing.T) {
	ex, mock := newMockDB2(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM SYSCAT.COLUMNS")).
		WithArgs("APP", "CUSTOMER").
		WillReturnRows(sqlmock.NewRows([]string{"COLNAME", "TYPENAME", "LENGTH", "SCALE", "NULLS", "DEFAULT", "REMARKS"}).
			AddRow("ID", "INTEGER  ", 4, 0, "N", nil, nil).
			AddRow("NAME", "VARCHAR", 50, 0, "N", "''", "Display name").
			AddRow("BALANCE", "DECIMAL", 12, 2, "Y", "0", nil))

	columns, err := ex.Columns(context.Background(), "APP", "CUSTOMER")
	if err != nil {
		t.Fatalf("Columns returned error: %v", err)
	}

	if len(columns) != 3 {
		t.Fatalf("Expected 3 columns, got %d", len(columns))
	}

	id := columns[0]
	if id.Name != "ID" || id.Type != "INTEGER" || id.Nullable || id.Default != nil {
		t.Errorf("Unexpected ID column: %+v", id)
	}

	name := columns[1]
	if name.Length != 50 || name.Default == nil || *name.Default != "''" || name.Comment != "Display name" {
		t.Errorf("Unexpected NAME column: %+v", name)
	}

	balance := columns[2]
	if !balance.Nullable || balance.Scale != 2 || balance.Length != 12 {
		t.Errorf("Unexpected BALANCE column: %+v", balance)
	}
	expectDone(t, mock)
}

func TestDB2PrimaryKey(t *testing.T) {
	ex, mock := newMockDB2(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM SYSCAT.KEYCOLUSE KC JOIN SYSCAT.TABCONST C")).
		WithArgs("APP", "ORDER_LINE").
		WillReturnRows(sqlmock.NewRows([]string{"COLNAME"}).AddRow("ORDER_ID").AddRow("LINE_NO"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT CONSTNAME FROM SYSCAT.TABCONST")).
		WithArgs("APP", "ORDER_LINE").
		WillReturnRows(sqlmock.NewRows([]string{"CONSTNAME"}).AddRow("PK_ORDER_LINE "))

	columns, err := ex.PrimaryKeyColumns(context.Background(), "APP", "ORDER_LINE")
	if err != nil {
		t.Fatalf("PrimaryKeyColumns returned error: %v", err)
	}
	if len(columns) != 2 || columns[0] != "ORDER_ID" || columns[1] != "LINE_NO" {
		t.Errorf("Expected key-sequence order [ORDER_ID LINE_NO], got %v", columns)
	}

	name, err := ex.PrimaryKeyName(context.Background(), "APP", "ORDER_LINE")
	if err != nil {
		t.Fatalf("PrimaryKeyName returned error: %v", err)
	}
	if name != "PK_ORDER_LINE" {
		t.Errorf("PrimaryKeyName() = %q", name)
	}
	expectDone(t, mock)
}

func TestDB2PrimaryKeyNameAbsent(t *testing.T) {
	ex, mock := newMockDB2(t)
	mock.ExpectQuery("SYSCAT.TABCONST").
		WillReturnRows(sqlmock.NewRows([]string{"CONSTNAME"}))

	name, err := ex.PrimaryKeyName(context.Background(), "APP", "AUDIT_LOG")
	if err != nil {
		t.Fatalf("PrimaryKeyName returned error: %v", err)
	}
	if name != "" {
		t.Errorf("Expected no primary key name, got %q", name)
	}
}

func TestDB2ForeignKeys(t *testing.T) {
	ex, mock := newMockDB2(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM SYSCAT.REFERENCES R")).
		WithArgs("APP", "CUSTOMER").
		WillReturnRows(sqlmock.NewRows([]string{"CONSTNAME", "FK_COLUMN", "REFTABNAME", "REF_COLUMN", "DELETERULE", "UPDATERULE", "COLSEQ"}).
			AddRow("FK_CUSTOMER_REGION", "REGION_ID", "REGION", "ID", "C", "A", 1))

	fks, err := ex.ForeignKeys(context.Background(), "APP", "CUSTOMER")
	if err != nil {
		t.Fatalf("ForeignKeys returned error: %v", err)
	}

	if len(fks) != 1 {
		t.Fatalf("Expected 1 foreign key, got %d", len(fks))
	}
	fk := fks[0]
	if fk.Name != "FK_CUSTOMER_REGION" || fk.TargetTable != "REGION" {
		t.Errorf("Unexpected foreign key: %+v", fk)
	}
	if fk.OnDelete != schema.RuleCascade || fk.OnUpdate != schema.RuleNoAction {
		t.Errorf("Unexpected rules: %s / %s", fk.OnDelete, fk.OnUpdate)
	}
	expectDone(t, mock)
}

func TestDB2ForeignKeysError(t *testing.T) {
	ex, mock := newMockDB2(t)
	mock.ExpectQuery("SYSCAT.REFERENCES").WillReturnError(errors.New("connection reset"))

	if _, err := ex.ForeignKeys(context.Background(), "APP", "CUSTOMER"); err == nil {
		t.Fatal("Expected error, got nil")
	}
}
