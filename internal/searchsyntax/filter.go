// Package searchsyntax parses and serializes the Discover filter string: a
// whitespace-separated sequence of key:value tokens where values may be
// double-quoted to preserve embedded whitespace. Repeated keys accumulate
// into multi-valued entries. Parsing is best-effort and never fails; tokens
// that do not look like key:value pairs are ignored.
package searchsyntax

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Filter is an insertion-ordered mapping of filter key to allowed values.
// Iteration order is the order keys were first set, which keeps
// re-serialization and downstream merging deterministic.
type Filter struct {
	pairs *orderedmap.OrderedMap[string, []string]
}

// NewFilter returns an empty filter.
func NewFilter() *Filter {
	return &Filter{pairs: orderedmap.New[string, []string]()}
}

// Get returns the values for key and whether the key is present.
func (f *Filter) Get(key string) ([]string, bool) {
	return f.pairs.Get(key)
}

// Set replaces the values for key, preserving its original position if the
// key already exists.
func (f *Filter) Set(key string, values []string) {
	f.pairs.Set(key, values)
}

// Add appends one value to the key's list, creating the entry if needed.
func (f *Filter) Add(key, value string) {
	existing, _ := f.pairs.Get(key)
	f.pairs.Set(key, append(existing, value))
}

// Delete removes the key. Deleting an absent key is a no-op.
func (f *Filter) Delete(key string) {
	f.pairs.Delete(key)
}

// Len returns the number of distinct keys.
func (f *Filter) Len() int {
	return f.pairs.Len()
}

// Keys returns the keys in insertion order.
func (f *Filter) Keys() []string {
	keys := make([]string, 0, f.pairs.Len())
	for pair := f.pairs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Parse tokenizes a filter string. Malformed input degrades gracefully:
// unbalanced quotes run to the end of the string and bare words without a
// colon are dropped.
func Parse(query string) *Filter {
	f := NewFilter()
	for _, token := range tokenize(query) {
		idx := strings.Index(token, ":")
		if idx <= 0 {
			continue
		}
		key := token[:idx]
		f.Add(key, unquote(token[idx+1:]))
	}
	return f
}

// Stringify serializes the filter back to the canonical string form.
// Values needing protection (embedded whitespace, quotes, or empty) are
// double-quoted with backslash escaping, so Parse(Stringify(f)) recovers f.
func Stringify(f *Filter) string {
	var b strings.Builder
	for pair := f.pairs.Oldest(); pair != nil; pair = pair.Next() {
		for _, value := range pair.Value {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(pair.Key)
			b.WriteByte(':')
			b.WriteString(quote(value))
		}
	}
	return b.String()
}

func tokenize(query string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	escaped := false
	for _, r := range query {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && inQuotes:
			current.WriteRune(r)
			escaped = true
		case r == '"':
			current.WriteRune(r)
			inQuotes = !inQuotes
		case !inQuotes && (r == ' ' || r == '\t' || r == '\n'):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

func unquote(value string) string {
	if len(value) < 2 || !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) {
		return value
	}
	inner := value[1 : len(value)-1]
	var b strings.Builder
	escaped := false
	for _, r := range inner {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}

func needsQuotes(value string) bool {
	return value == "" || strings.ContainsAny(value, " \t\n\"")
}

func quote(value string) string {
	if !needsQuotes(value) {
		return value
	}
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
