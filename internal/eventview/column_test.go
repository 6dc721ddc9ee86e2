package eventview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseField_Bare(t *testing.T) {
	col := ParseField("transaction")

	assert.Equal(t, KindField, col.Kind)
	assert.Equal(t, "transaction", col.Name)
	assert.Empty(t, col.Args)
}

func TestParseField_Function(t *testing.T) {
	col := ParseField("percentile(transaction.duration, 0.75)")

	assert.Equal(t, KindFunction, col.Kind)
	assert.Equal(t, "percentile", col.Function)
	assert.Equal(t, []string{"transaction.duration", "0.75"}, col.Args)
}

func TestParseField_NoArgs(t *testing.T) {
	col := ParseField("count()")

	assert.Equal(t, KindFunction, col.Kind)
	assert.Equal(t, "count", col.Function)
	assert.Empty(t, col.Args)
}

func TestParseField_MalformedDegradesToBare(t *testing.T) {
	col := ParseField("count(")

	assert.Equal(t, KindField, col.Kind)
	assert.Equal(t, "count(", col.Name)
}

func TestColumn_StringRoundTrip(t *testing.T) {
	for _, field := range []string{"transaction", "count()", "count_unique(user)"} {
		assert.Equal(t, field, ParseField(field).String())
	}
}

func TestIsAggregateField(t *testing.T) {
	assert.True(t, IsAggregateField("count()"))
	assert.True(t, IsAggregateField("p75(transaction.duration)"))
	assert.False(t, IsAggregateField("transaction"))
	assert.False(t, IsAggregateField("tags[foo]"))
}

func TestAggregateAlias(t *testing.T) {
	assert.Equal(t, "transaction", AggregateAlias("transaction"))
	assert.Equal(t, "count", AggregateAlias("count()"))
	assert.Equal(t, "count_unique_user", AggregateAlias("count_unique(user)"))
	assert.Equal(t, "p75_transaction_duration", AggregateAlias("p75(transaction.duration)"))
}

func TestSourceField(t *testing.T) {
	src, ok := SourceField("last_seen")
	assert.True(t, ok)
	assert.Equal(t, "timestamp", src)

	// Shorthand percentiles resolve through the regex rule.
	src, ok = SourceField("p999")
	assert.True(t, ok)
	assert.Equal(t, "transaction.duration", src)

	// Known but not expandable.
	src, ok = SourceField("apdex")
	assert.True(t, ok)
	assert.Empty(t, src)

	_, ok = SourceField("count_unique")
	assert.False(t, ok)

	// percentile resolves through its column argument, not the alias table.
	_, ok = SourceField("percentile")
	assert.False(t, ok)
}
