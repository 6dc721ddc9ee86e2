package drilldown

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/evertrail/discover/internal/eventview"
	"github.com/evertrail/discover/internal/searchsyntax"
)

// Expander rewrites aggregated views into row-level drill-down views.
// It is stateless apart from its logger and safe for concurrent use.
type Expander struct {
	log zerolog.Logger
}

// NewExpander returns an Expander logging through the given logger.
func NewExpander(log zerolog.Logger) *Expander {
	return &Expander{log: log}
}

// Expand produces the drill-down view for one aggregated view: aggregate
// columns are replaced by their source attributes, and the filter is
// augmented with the caller's conditions plus conditions derived from the
// optional row (row-derived values win on collision). The input view is
// left untouched; callers always get a fresh copy.
func (e *Expander) Expand(view eventview.EventView, caller *Conditions, row *DataRow) eventview.EventView {
	next := view.Clone()

	fields, _ := TransformFields(view.Fields)
	next.Fields = fields

	merged := NewConditions()
	merged.merge(caller)
	merged.merge(GenerateConditions(fields, row))

	filter := searchsyntax.Parse(next.Query)
	for _, key := range filter.Keys() {
		// Aggregate references are invalid row-level filters.
		if eventview.IsAggregateField(key) {
			filter.Delete(key)
		}
	}

	merged.Each(func(key, value string) {
		switch {
		case key == "project.id":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				e.log.Debug().Str("value", value).Msg("skipping unparseable project id condition")
				return
			}
			// Duplicates are allowed here; environment below is set-like.
			next.ProjectIDs = append(next.ProjectIDs, id)
		case key == "environment":
			if !containsString(next.Environments, value) {
				next.Environments = append(next.Environments, value)
			}
		case key == "user":
			userKey, userValue := SplitUserValue(value)
			filter.Set(userKey, []string{userValue})
		case eventview.IsAggregateField(key):
			// Cannot filter on aggregates.
		default:
			filter.Set(key, []string{value})
		}
	})

	next.Query = searchsyntax.Stringify(filter)
	return next
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
