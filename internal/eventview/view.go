package eventview

import (
	"net/url"
	"strconv"
)

// EventView is the query state of one Discover table: ordered columns, a
// search filter string, and project/environment scoping applied outside the
// filter syntax. Field order is significant; it drives display order and the
// implicit first-field semantics of consumers.
type EventView struct {
	Name         string   `json:"name,omitempty"`
	Fields       []Field  `json:"fields"`
	Query        string   `json:"query,omitempty"`
	ProjectIDs   []int64  `json:"projects,omitempty"`
	Environments []string `json:"environments,omitempty"`
	Sort         string   `json:"sort,omitempty"`
}

// Clone returns a deep copy. Transformations operate on clones so the
// original view is never mutated and retries are safe.
func (v EventView) Clone() EventView {
	next := v
	next.Fields = append([]Field(nil), v.Fields...)
	next.ProjectIDs = append([]int64(nil), v.ProjectIDs...)
	next.Environments = append([]string(nil), v.Environments...)
	return next
}

// FromURLValues decodes a view from its URL query-string representation.
// Decoding is tolerant: missing keys become zero values and unparseable
// project ids are dropped.
func FromURLValues(values url.Values) EventView {
	v := EventView{
		Name:  values.Get("name"),
		Query: values.Get("query"),
		Sort:  values.Get("sort"),
	}
	widths := values["fieldWidth"]
	for i, f := range values["field"] {
		width := WidthUnset
		if i < len(widths) {
			if w, err := strconv.Atoi(widths[i]); err == nil {
				width = w
			}
		}
		v.Fields = append(v.Fields, Field{Field: f, Width: width})
	}
	for _, p := range values["project"] {
		if id, err := strconv.ParseInt(p, 10, 64); err == nil {
			v.ProjectIDs = append(v.ProjectIDs, id)
		}
	}
	v.Environments = append(v.Environments, values["environment"]...)
	return v
}

// URLValues encodes the view back to its URL query-string representation.
// FromURLValues(v.URLValues()) reproduces the view, modulo project ids that
// never parsed.
func (v EventView) URLValues() url.Values {
	values := url.Values{}
	if v.Name != "" {
		values.Set("name", v.Name)
	}
	for _, f := range v.Fields {
		values.Add("field", f.Field)
		values.Add("fieldWidth", strconv.Itoa(f.Width))
	}
	if v.Query != "" {
		values.Set("query", v.Query)
	}
	for _, id := range v.ProjectIDs {
		values.Add("project", strconv.FormatInt(id, 10))
	}
	for _, env := range v.Environments {
		values.Add("environment", env)
	}
	if v.Sort != "" {
		values.Set("sort", v.Sort)
	}
	return values
}
