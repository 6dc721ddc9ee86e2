// Package eventview models the Discover query state: a list of selected
// columns (bare attributes or aggregate functions), a search filter, and
// project/environment scoping. Views are value types; every transformation
// returns a fresh copy.
package eventview

import (
	"regexp"
	"strings"
)

// ColumnKind discriminates the two column forms.
type ColumnKind int

const (
	// KindField is a bare attribute reference, e.g. "transaction".
	KindField ColumnKind = iota
	// KindFunction is an aggregate application, e.g. "p75(transaction.duration)".
	KindFunction
)

// Column is the decoded form of a field string.
type Column struct {
	Kind     ColumnKind
	Name     string   // attribute name when Kind == KindField
	Function string   // aggregate name when Kind == KindFunction
	Args     []string // aggregate arguments, possibly empty
}

// Field is one selected projection of a view, kept in its raw string form
// alongside an optional display width (-1 means unset).
type Field struct {
	Field string `json:"field"`
	Width int    `json:"width,omitempty"`
}

// WidthUnset marks a field with no explicit display width.
const WidthUnset = -1

var functionRe = regexp.MustCompile(`^([^(]+)\((.*)\)$`)

// ParseField decodes a raw field string into a Column. Strings that do not
// look like a function call decode as bare attribute references, so malformed
// input degrades to an opaque field name instead of failing.
func ParseField(field string) Column {
	m := functionRe.FindStringSubmatch(strings.TrimSpace(field))
	if m == nil {
		return Column{Kind: KindField, Name: strings.TrimSpace(field)}
	}
	col := Column{Kind: KindFunction, Function: strings.TrimSpace(m[1])}
	if args := strings.TrimSpace(m[2]); args != "" {
		for _, a := range strings.Split(args, ",") {
			col.Args = append(col.Args, strings.TrimSpace(a))
		}
	}
	return col
}

// String re-encodes the column as a field string.
func (c Column) String() string {
	switch c.Kind {
	case KindFunction:
		return c.Function + "(" + strings.Join(c.Args, ",") + ")"
	default:
		return c.Name
	}
}

// IsAggregateField reports whether the raw field string parses as an
// aggregate function reference.
func IsAggregateField(field string) bool {
	return ParseField(field).Kind == KindFunction
}

var aliasRe = regexp.MustCompile(`[^\w]`)

// AggregateAlias returns the externally visible key for a field: bare fields
// keep their name, aggregate fields collapse to a word-character alias the
// result row keys use ("p75(duration)" -> "p75_duration").
func AggregateAlias(field string) string {
	col := ParseField(field)
	if col.Kind == KindField {
		return col.Name
	}
	alias := col.Function
	if len(col.Args) > 0 {
		alias += "_" + strings.Join(col.Args, "_")
	}
	alias = aliasRe.ReplaceAllString(alias, "_")
	return strings.Trim(alias, "_")
}
