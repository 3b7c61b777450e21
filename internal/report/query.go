package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/johnwards/retail/internal/database"
)

// Kind is the Go type a result column is scanned into.
type Kind int

const (
	KindInt     Kind = iota // int64
	KindText                // string
	KindDate                // time.Time, UTC midnight
	KindDecimal             // decimal.Decimal
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindText:
		return "text"
	case KindDate:
		return "date"
	case KindDecimal:
		return "decimal"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Column is one projected value. MonthOf, when set, replaces Expr with the
// dialect's YYYY-MM bucket of that date column.
type Column struct {
	Name    string
	Expr    string
	MonthOf string
	Kind    Kind
}

func (c Column) expr(d database.Dialect) string {
	if c.MonthOf != "" {
		return d.MonthExpr(c.MonthOf)
	}
	return c.Expr
}

// Join is an inner join onto Table using the On predicate.
type Join struct {
	Table string
	On    string
}

// Query describes a read-only report over the retail tables. Where and
// Having may contain ? placeholders, bound from Args in order.
type Query struct {
	Columns []Column
	From    string
	Joins   []Join
	Where   string
	GroupBy []string
	Having  string
	OrderBy []string
	Limit   int
	Args    []any
}

// Validate checks that q is complete enough to render.
func (q Query) Validate() error {
	var problems []error

	if len(q.Columns) == 0 {
		problems = append(problems, errors.New("no columns"))
	}
	if q.From == "" {
		problems = append(problems, errors.New("no source table"))
	}
	seen := make(map[string]bool, len(q.Columns))
	for i, c := range q.Columns {
		switch {
		case c.Name == "":
			problems = append(problems, fmt.Errorf("column %d has no name", i))
		case seen[c.Name]:
			problems = append(problems, fmt.Errorf("duplicate column %q", c.Name))
		}
		seen[c.Name] = true
		if (c.Expr == "") == (c.MonthOf == "") {
			problems = append(problems, fmt.Errorf("column %q needs exactly one of Expr or MonthOf", c.Name))
		}
		if c.Kind < KindInt || c.Kind > KindDecimal {
			problems = append(problems, fmt.Errorf("column %q has unknown kind %s", c.Name, c.Kind))
		}
	}
	for _, j := range q.Joins {
		if j.Table == "" || j.On == "" {
			problems = append(problems, fmt.Errorf("incomplete join %q", j.Table))
		}
	}
	if q.Having != "" && len(q.GroupBy) == 0 {
		problems = append(problems, errors.New("having without group by"))
	}
	if q.Limit < 0 {
		problems = append(problems, fmt.Errorf("negative limit %d", q.Limit))
	}
	if want := strings.Count(q.Where, "?") + strings.Count(q.Having, "?"); want != len(q.Args) {
		problems = append(problems, fmt.Errorf("query has %d placeholders but %d args", want, len(q.Args)))
	}

	return errors.Join(problems...)
}

// ColumnNames returns the output column names in order.
func (q Query) ColumnNames() []string {
	names := make([]string, len(q.Columns))
	for i, c := range q.Columns {
		names[i] = c.Name
	}
	return names
}

// SQL renders q for dialect d.
func (q Query) SQL(d database.Dialect) string {
	var b strings.Builder

	b.WriteString("SELECT ")
	for i, c := range q.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.expr(d))
		b.WriteString(" AS ")
		b.WriteString(c.Name)
	}

	b.WriteString(" FROM ")
	b.WriteString(q.From)
	for _, j := range q.Joins {
		b.WriteString(" JOIN ")
		b.WriteString(j.Table)
		b.WriteString(" ON ")
		b.WriteString(j.On)
	}

	if q.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(q.Where)
	}
	if len(q.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(q.GroupBy, ", "))
	}
	if q.Having != "" {
		b.WriteString(" HAVING ")
		b.WriteString(q.Having)
	}
	if len(q.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.OrderBy, ", "))
	}
	if q.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(q.Limit))
	}

	return d.Rebind(b.String())
}
