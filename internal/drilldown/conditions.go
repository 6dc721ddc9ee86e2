package drilldown

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/evertrail/discover/internal/eventview"
)

// timestampLayout is the canonical UTC form drill-down filters use for the
// timestamp attribute.
const timestampLayout = "2006-01-02T15:04:05"

// reservedScopeParams are names handled outside the generic filter syntax;
// tag keys colliding with them get wrapped in tags[...] to stay addressable.
var reservedScopeParams = map[string]struct{}{
	"project":     {},
	"project.id":  {},
	"environment": {},
	"issue":       {},
	"start":       {},
	"end":         {},
	"statsPeriod": {},
}

// GenerateConditions derives drill-down filter conditions from a concrete
// event row. For every bare field present in the row, the attribute value
// becomes a condition under the field's key; tag values for the same key are
// applied afterwards and take precedence. A nil row yields an empty map.
func GenerateConditions(fields []eventview.Field, row *DataRow) *Conditions {
	conditions := NewConditions()
	if row == nil {
		return conditions
	}
	for _, f := range fields {
		col := eventview.ParseField(f.Field)
		if col.Kind != eventview.KindField {
			continue
		}
		key := eventview.AggregateAlias(f.Field)

		attrKey := ""
		if raw, ok := row.Attributes[key]; ok {
			value := normalizeValue(key, raw)
			attrKey = key
			if key == "user" {
				attrKey, value = SplitUserValue(value)
			}
			conditions.Set(attrKey, value)
		}

		if tag, ok := row.Tag(key); ok {
			tagKey := tag.Key
			if _, reserved := reservedScopeParams[tagKey]; reserved {
				tagKey = "tags[" + tagKey + "]"
			}
			if tagKey == "user" {
				// The tag wins: drop whatever the attribute branch set,
				// including a split user.<sub> key.
				conditions.Delete("user")
				if attrKey != "" {
					conditions.Delete(attrKey)
				}
				userKey, userValue := SplitUserValue(tag.Value)
				conditions.Set(userKey, userValue)
				continue
			}
			conditions.Set(tagKey, tag.Value)
		}
	}
	return conditions
}

// SplitUserValue splits a composite user value on its first colon into a
// sub-keyed condition: "id:42" becomes ("user.id", "42"). Values without a
// colon stay under the bare user key.
func SplitUserValue(value string) (key, val string) {
	if idx := strings.Index(value, ":"); idx >= 0 {
		return "user." + value[:idx], value[idx+1:]
	}
	return "user", value
}

// normalizeValue renders a row attribute as a condition value. Nil becomes
// the empty string; plain values are whitespace-trimmed, but values that the
// filter syntax would need to quote are passed through untouched so their
// meaning survives the round trip. Timestamps are canonicalized to UTC.
func normalizeValue(key string, raw any) string {
	if raw == nil {
		return ""
	}
	if key == "timestamp" {
		return canonicalTimestamp(raw)
	}
	value := fmt.Sprint(raw)
	if needsQuoting(value) {
		return value
	}
	return strings.TrimSpace(value)
}

// needsQuoting reports values the filter stringifier would have to quote;
// trimming those would change their meaning.
func needsQuoting(value string) bool {
	return strings.ContainsAny(value, " \t\n()\\\"")
}

// canonicalTimestamp formats a timestamp attribute as a canonical UTC
// date-time string. String inputs are parsed leniently; anything
// unparseable falls back to its trimmed raw form.
func canonicalTimestamp(raw any) string {
	switch v := raw.(type) {
	case time.Time:
		return v.UTC().Format(timestampLayout)
	case string:
		t, err := dateparse.ParseIn(strings.TrimSpace(v), time.UTC)
		if err != nil {
			return strings.TrimSpace(v)
		}
		return t.UTC().Format(timestampLayout)
	default:
		return strings.TrimSpace(fmt.Sprint(raw))
	}
}
