package querybuilder

import (
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// Condition renders a WHERE fragment using ?-placeholders; the builders
// rewrite those into positional $N placeholders for Postgres.
type Condition struct {
	fragment string
	args     []any
}

func Eq(column string, value any) Condition {
	return Condition{fragment: column + " = ?", args: []any{value}}
}

func In(column string, values []any) Condition {
	if len(values) == 0 {
		return Condition{fragment: "1=0"}
	}

	var sb strings.Builder
	sb.WriteString(column)
	sb.WriteString(" IN (")
	for i := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('?')
	}
	sb.WriteByte(')')

	return Condition{fragment: sb.String(), args: append([]any(nil), values...)}
}

func Expr(fragment string, args ...any) Condition {
	return Condition{fragment: fragment, args: args}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, crerr.New("querybuilder: select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, crerr.New("querybuilder: select table is required")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	args := appendWhere(&sb, b.where, nil)

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(b.limit))
	}

	return numberPlaceholders(sb.String()), args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends raw SQL after the VALUES list, typically an
// ON CONFLICT upsert clause. Placeholders are not supported here.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, crerr.New("querybuilder: insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, crerr.New("querybuilder: insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, crerr.New("querybuilder: insert values are required")
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, crerr.Newf("querybuilder: insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for colIdx := range row {
			if colIdx > 0 {
				sb.WriteString(", ")
			}
			sb.WriteByte('?')
		}
		sb.WriteByte(')')
		args = append(args, row...)
	}

	if b.suffix != "" {
		sb.WriteByte(' ')
		sb.WriteString(b.suffix)
	}

	return numberPlaceholders(sb.String()), args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, crerr.New("querybuilder: delete table is required")
	}

	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(b.table)
	args := appendWhere(&sb, b.where, nil)

	return numberPlaceholders(sb.String()), args, nil
}

func appendWhere(sb *strings.Builder, conditions []Condition, args []any) []any {
	if len(conditions) == 0 {
		return args
	}
	sb.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(c.fragment)
		args = append(args, c.args...)
	}
	return args
}

// numberPlaceholders turns each ? into the next $N placeholder.
func numberPlaceholders(sql string) string {
	if !strings.ContainsRune(sql, '?') {
		return sql
	}

	var sb strings.Builder
	sb.Grow(len(sql) + 8)
	n := 1
	for i := 0; i < len(sql); i++ {
		if sql[i] != '?' {
			sb.WriteByte(sql[i])
			continue
		}
		sb.WriteByte('$')
		sb.WriteString(strconv.Itoa(n))
		n++
	}
	return sb.String()
}
