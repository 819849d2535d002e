package introspect

import (
	"strings"

	"github.com/lucasefe/schemadoc/schema"
)

// ForeignKeyRow is one (constraint, column pair) row of a foreign key
// catalog join. Rows of one constraint are expected in Sequence order.
type ForeignKeyRow struct {
	Constraint   string
	SourceColumn string
	TargetTable  string
	TargetColumn string
	DeleteRule   string
	UpdateRule   string
	Sequence     int
}

// RuleCodes maps an engine's referential action codes to schema rules.
// Codes missing from a map resolve to NO ACTION.
type RuleCodes struct {
	OnDelete map[string]schema.Rule
	OnUpdate map[string]schema.Rule
}

// DB2RuleCodes decodes SYSCAT.REFERENCES DELETERULE and UPDATERULE.
var DB2RuleCodes = RuleCodes{
	OnDelete: map[string]schema.Rule{
		"C": schema.RuleCascade,
		"N": schema.RuleNoAction,
		"R": schema.RuleRestrict,
		"A": schema.RuleSetNull,
	},
	OnUpdate: map[string]schema.Rule{
		"A": schema.RuleNoAction,
		"R": schema.RuleRestrict,
	},
}

// PostgresRuleCodes decodes pg_constraint confdeltype and confupdtype.
// SET DEFAULT ('d') has no Rule and falls back to NO ACTION.
var PostgresRuleCodes = RuleCodes{
	OnDelete: pgRules(),
	OnUpdate: pgRules(),
}

func pgRules() map[string]schema.Rule {
	return map[string]schema.Rule{
		"a": schema.RuleNoAction,
		"r": schema.RuleRestrict,
		"c": schema.RuleCascade,
		"n": schema.RuleSetNull,
	}
}

// WordRuleCodes decodes the spelled-out rules of
// information_schema.REFERENTIAL_CONSTRAINTS.
var WordRuleCodes = RuleCodes{
	OnDelete: wordRules(),
	OnUpdate: wordRules(),
}

func wordRules() map[string]schema.Rule {
	return map[string]schema.Rule{
		"CASCADE":   schema.RuleCascade,
		"RESTRICT":  schema.RuleRestrict,
		"SET NULL":  schema.RuleSetNull,
		"NO ACTION": schema.RuleNoAction,
	}
}

// DeleteRule maps a delete rule code.
func (rc RuleCodes) DeleteRule(code string) schema.Rule {
	return lookupRule(rc.OnDelete, code)
}

// UpdateRule maps an update rule code.
func (rc RuleCodes) UpdateRule(code string) schema.Rule {
	return lookupRule(rc.OnUpdate, code)
}

func lookupRule(codes map[string]schema.Rule, code string) schema.Rule {
	if rule, ok := codes[strings.TrimSpace(code)]; ok {
		return rule
	}
	return schema.RuleNoAction
}

// AssembleForeignKeys groups flat rows into one ForeignKey per constraint
// name. Column pairs keep row order, so SourceColumns[i] and
// TargetColumns[i] come from the same row. Constraints are returned in the
// order they are first seen. When rules differ between rows of one
// constraint, the last row wins.
func AssembleForeignKeys(rows []ForeignKeyRow, codes RuleCodes) []schema.ForeignKey {
	groups := make(map[string]*schema.ForeignKey)
	var order []string

	for _, row := range rows {
		name := strings.TrimSpace(row.Constraint)

		fk, ok := groups[name]
		if !ok {
			fk = &schema.ForeignKey{Name: name}
			groups[name] = fk
			order = append(order, name)
		}

		fk.TargetTable = strings.TrimSpace(row.TargetTable)
		fk.OnDelete = codes.DeleteRule(row.DeleteRule)
		fk.OnUpdate = codes.UpdateRule(row.UpdateRule)
		fk.SourceColumns = append(fk.SourceColumns, strings.TrimSpace(row.SourceColumn))
		fk.TargetColumns = append(fk.TargetColumns, strings.TrimSpace(row.TargetColumn))
	}

	foreignKeys := make([]schema.ForeignKey, 0, len(order))
	for _, name := range order {
		foreignKeys = append(foreignKeys, *groups[name])
	}

	return foreignKeys
}
