package drilldown

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evertrail/discover/internal/eventview"
	"github.com/evertrail/discover/internal/searchsyntax"
)

func newTestExpander() *Expander {
	return NewExpander(zerolog.Nop())
}

func conditionsOf(entries ...string) *Conditions {
	c := NewConditions()
	for i := 0; i+1 < len(entries); i += 2 {
		c.Set(entries[i], entries[i+1])
	}
	return c
}

func TestExpand_BareViewIsIdempotent(t *testing.T) {
	view := eventview.EventView{
		Fields: fields("transaction", "title"),
		Query:  "release:1.0",
	}

	expanded := newTestExpander().Expand(view, nil, nil)

	assert.Equal(t, view.Fields, expanded.Fields)
	assert.Equal(t, "release:1.0", expanded.Query)
	assert.NotSame(t, &view.Fields[0], &expanded.Fields[0])
}

func TestExpand_InputViewUntouched(t *testing.T) {
	view := eventview.EventView{
		Fields: fields("p75()", "count()"),
		Query:  "count():>10",
	}

	newTestExpander().Expand(view, conditionsOf("release", "1.0"), nil)

	assert.Equal(t, []string{"p75()", "count()"}, rawFields(view.Fields))
	assert.Equal(t, "count():>10", view.Query)
}

func TestExpand_AggregateFilterKeysRemoved(t *testing.T) {
	view := eventview.EventView{
		Fields: fields("title"),
		Query:  `count():>10 release:1.0 p95():">200"`,
	}

	expanded := newTestExpander().Expand(view, nil, nil)

	assert.Equal(t, "release:1.0", expanded.Query)
}

func TestExpand_CallerConditionsApplied(t *testing.T) {
	view := eventview.EventView{Fields: fields("title")}

	expanded := newTestExpander().Expand(view, conditionsOf("release", "1.0"), nil)

	assert.Equal(t, "release:1.0", expanded.Query)
}

func TestExpand_GeneratedWinsOverCaller(t *testing.T) {
	view := eventview.EventView{Fields: fields("title")}
	row := &DataRow{Attributes: map[string]any{"title": "from-row"}}

	expanded := newTestExpander().Expand(view, conditionsOf("title", "from-caller"), row)

	assert.Equal(t, "title:from-row", expanded.Query)
}

func TestExpand_ProjectIDAppended(t *testing.T) {
	view := eventview.EventView{
		Fields:     fields("title"),
		ProjectIDs: []int64{1},
	}

	expanded := newTestExpander().Expand(view, conditionsOf("project.id", "1"), nil)

	// Duplicates are allowed for the project scope.
	assert.Equal(t, []int64{1, 1}, expanded.ProjectIDs)
	assert.Empty(t, expanded.Query)
}

func TestExpand_BadProjectIDSkipped(t *testing.T) {
	view := eventview.EventView{Fields: fields("title")}

	expanded := newTestExpander().Expand(view, conditionsOf("project.id", "not-a-number"), nil)

	assert.Empty(t, expanded.ProjectIDs)
	assert.Empty(t, expanded.Query)
}

func TestExpand_EnvironmentAppendedUniquely(t *testing.T) {
	view := eventview.EventView{
		Fields:       fields("title"),
		Environments: []string{"prod"},
	}

	expanded := newTestExpander().Expand(view, conditionsOf("environment", "prod"), nil)
	assert.Equal(t, []string{"prod"}, expanded.Environments)

	expanded = newTestExpander().Expand(view, conditionsOf("environment", "staging"), nil)
	assert.Equal(t, []string{"prod", "staging"}, expanded.Environments)
}

func TestExpand_UserConditionSplit(t *testing.T) {
	view := eventview.EventView{Fields: fields("title")}

	expanded := newTestExpander().Expand(view, conditionsOf("user", "id:42"), nil)

	assert.Equal(t, "user.id:42", expanded.Query)
}

func TestExpand_AggregateConditionKeysSkipped(t *testing.T) {
	view := eventview.EventView{Fields: fields("title")}

	expanded := newTestExpander().Expand(view, conditionsOf("count()", "10"), nil)

	assert.Empty(t, expanded.Query)
}

func TestExpand_RowPinsDrilldown(t *testing.T) {
	view := eventview.EventView{
		Fields: fields("transaction", "count()"),
		Query:  "release:1.0",
	}
	row := &DataRow{
		Attributes: map[string]any{"transaction": "/checkout"},
		Tags:       []Tag{{Key: "user", Value: "id:42"}},
	}

	expanded := newTestExpander().Expand(view, nil, row)

	// count() is dropped; transaction survives.
	assert.Equal(t, []string{"transaction"}, rawFields(expanded.Fields))

	filter := searchsyntax.Parse(expanded.Query)
	release, _ := filter.Get("release")
	assert.Equal(t, []string{"1.0"}, release)
	transaction, _ := filter.Get("transaction")
	assert.Equal(t, []string{"/checkout"}, transaction)
}

func TestExpand_FilterRoundTrip(t *testing.T) {
	view := eventview.EventView{Fields: fields("title")}
	caller := conditionsOf("title", "foo (bar)", "release", "1.0")

	expanded := newTestExpander().Expand(view, caller, nil)

	parsed := searchsyntax.Parse(expanded.Query)
	require.Equal(t, 2, parsed.Len())
	title, ok := parsed.Get("title")
	require.True(t, ok)
	assert.Equal(t, []string{"foo (bar)"}, title)
	release, ok := parsed.Get("release")
	require.True(t, ok)
	assert.Equal(t, []string{"1.0"}, release)
}

func TestExpand_ConditionOverwritesExistingFilterList(t *testing.T) {
	view := eventview.EventView{
		Fields: fields("title"),
		Query:  "release:1.0 release:2.0",
	}

	expanded := newTestExpander().Expand(view, conditionsOf("release", "3.0"), nil)

	parsed := searchsyntax.Parse(expanded.Query)
	release, _ := parsed.Get("release")
	assert.Equal(t, []string{"3.0"}, release)
}
