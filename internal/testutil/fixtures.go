package testutil

import (
	"github.com/google/uuid"

	"github.com/evertrail/discover/internal/drilldown"
	"github.com/evertrail/discover/internal/eventview"
)

// NewView builds a view from raw field strings with no explicit widths.
func NewView(fields ...string) eventview.EventView {
	v := eventview.EventView{}
	for _, f := range fields {
		v.Fields = append(v.Fields, eventview.Field{Field: f, Width: eventview.WidthUnset})
	}
	return v
}

// NewRow builds a data row with a fresh event id plus the given attributes.
func NewRow(attributes map[string]any, tags ...drilldown.Tag) *drilldown.DataRow {
	attrs := map[string]any{"id": uuid.NewString()}
	for k, v := range attributes {
		attrs[k] = v
	}
	return &drilldown.DataRow{Attributes: attrs, Tags: tags}
}
