package eventstore

import (
	"fmt"
	"strings"
	"time"
)

// eventsTable is the fixed table name event rows live in.
const eventsTable = "events"

// Query assembles a SELECT over the events table from view state. Columns
// holding dots in their names (user.email, project.id) are double-quoted so
// DuckDB treats them as plain identifiers.
type Query struct {
	columns []string
	wheres  []string
	args    []any
	order   string
	desc    bool
	limit   int
}

// NewQuery returns an empty events query; with no columns it selects *.
func NewQuery() *Query {
	return &Query{}
}

// Columns sets the projected columns.
func (q *Query) Columns(names ...string) *Query {
	q.columns = append(q.columns, names...)
	return q
}

// Match constrains a column to any of the given values.
func (q *Query) Match(column string, values ...string) *Query {
	if len(values) == 0 {
		return q
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	q.wheres = append(q.wheres, fmt.Sprintf("%s IN (%s)", quoteIdent(column), placeholders))
	for _, v := range values {
		q.args = append(q.args, v)
	}
	return q
}

// Since constrains the timestamp column to rows at or after t.
func (q *Query) Since(t time.Time) *Query {
	q.wheres = append(q.wheres, `"timestamp" >= ?`)
	q.args = append(q.args, t)
	return q
}

// OrderBy sets the sort column; a "-" prefix means descending.
func (q *Query) OrderBy(column string) *Query {
	if strings.HasPrefix(column, "-") {
		q.desc = true
		column = column[1:]
	}
	q.order = column
	return q
}

// Limit caps the number of returned rows; zero means no cap.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// SQL renders the query and its bind arguments.
func (q *Query) SQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	if len(q.columns) == 0 {
		b.WriteString("*")
	} else {
		quoted := make([]string, len(q.columns))
		for i, c := range q.columns {
			quoted[i] = quoteIdent(c)
		}
		b.WriteString(strings.Join(quoted, ", "))
	}
	b.WriteString(" FROM ")
	b.WriteString(eventsTable)
	if len(q.wheres) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.wheres, " AND "))
	}
	if q.order != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(quoteIdent(q.order))
		if q.desc {
			b.WriteString(" DESC")
		}
	}
	args := q.args
	if q.limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, q.limit)
	}
	return b.String(), args
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Interpolate substitutes bind arguments into a rendered query for logging.
// The output is valid SQL that can be pasted into a DuckDB shell.
func Interpolate(query string, args []any) string {
	for _, arg := range args {
		var repl string
		switch v := arg.(type) {
		case string:
			repl = "'" + strings.ReplaceAll(v, "'", "''") + "'"
		case time.Time:
			repl = "'" + v.Format(time.RFC3339Nano) + "'"
		case nil:
			repl = "NULL"
		default:
			repl = fmt.Sprint(v)
		}
		query = strings.Replace(query, "?", repl, 1)
	}
	return query
}
