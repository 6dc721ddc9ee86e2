package eventview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionValues(options []FieldOption) []string {
	values := make([]string, len(options))
	for i, o := range options {
		values[i] = o.Value
	}
	return values
}

func TestFieldOptions_GatedNamesHidden(t *testing.T) {
	values := optionValues(FieldOptions(nil, nil))

	assert.NotContains(t, values, "trace")
	assert.NotContains(t, values, "eps()")
	assert.Contains(t, values, "count()")
	assert.Contains(t, values, "transaction")
}

func TestFieldOptions_FlagsEnableGatedNames(t *testing.T) {
	flags := FeatureFlags{"discover-tracing": true, "discover-throughput": true}

	values := optionValues(FieldOptions(nil, flags))

	assert.Contains(t, values, "trace")
	assert.Contains(t, values, "trace.span")
	assert.Contains(t, values, "eps()")
	assert.Contains(t, values, "epm()")
	// Still gated behind a different flag.
	assert.NotContains(t, values, "user_misery(threshold)")
}

func TestFieldOptions_TagsShadowingFieldsAreWrapped(t *testing.T) {
	options := FieldOptions([]string{"browser", "environment"}, nil)

	values := optionValues(options)
	assert.Contains(t, values, "browser")
	assert.Contains(t, values, "tags[environment]")
}

func TestFieldOptions_Deterministic(t *testing.T) {
	first := FieldOptions([]string{"browser"}, nil)
	second := FieldOptions([]string{"browser"}, nil)

	require.Equal(t, first, second)

	// Aggregates come before fields, fields before tags.
	assert.Equal(t, OptionAggregate, first[0].Kind)
	assert.Equal(t, OptionTag, first[len(first)-1].Kind)
}
