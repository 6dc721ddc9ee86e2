package searchsyntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Simple(t *testing.T) {
	f := Parse("release:1.0 environment:prod")

	values, ok := f.Get("release")
	require.True(t, ok)
	assert.Equal(t, []string{"1.0"}, values)

	values, ok = f.Get("environment")
	require.True(t, ok)
	assert.Equal(t, []string{"prod"}, values)
}

func TestParse_RepeatedKeysAccumulate(t *testing.T) {
	f := Parse("release:1.0 release:2.0")

	values, ok := f.Get("release")
	require.True(t, ok)
	assert.Equal(t, []string{"1.0", "2.0"}, values)
	assert.Equal(t, 1, f.Len())
}

func TestParse_QuotedValuesKeepWhitespace(t *testing.T) {
	f := Parse(`title:"foo (bar)" release:1.0`)

	values, ok := f.Get("title")
	require.True(t, ok)
	assert.Equal(t, []string{"foo (bar)"}, values)
}

func TestParse_ValueWithColonSplitsOnFirst(t *testing.T) {
	f := Parse("timestamp:2020-01-01T00:00:00")

	values, ok := f.Get("timestamp")
	require.True(t, ok)
	assert.Equal(t, []string{"2020-01-01T00:00:00"}, values)
}

func TestParse_MalformedTokensIgnored(t *testing.T) {
	f := Parse(`bareword :leadingcolon release:1.0`)

	assert.Equal(t, 1, f.Len())
	values, _ := f.Get("release")
	assert.Equal(t, []string{"1.0"}, values)
}

func TestParse_UnbalancedQuoteRunsToEnd(t *testing.T) {
	f := Parse(`title:"foo bar`)

	assert.Equal(t, 1, f.Len())
	assert.Equal(t, []string{"title"}, f.Keys())
}

func TestKeys_InsertionOrder(t *testing.T) {
	f := Parse("b:1 a:2 c:3 a:4")

	assert.Equal(t, []string{"b", "a", "c"}, f.Keys())
}

func TestStringify_QuotesWhenNeeded(t *testing.T) {
	f := NewFilter()
	f.Add("title", "foo (bar)")
	f.Add("release", "1.0")
	f.Add("message", `say "hi"`)

	assert.Equal(t, `title:"foo (bar)" release:1.0 message:"say \"hi\""`, Stringify(f))
}

func TestStringify_EmptyValueQuoted(t *testing.T) {
	f := NewFilter()
	f.Add("user", "")

	assert.Equal(t, `user:""`, Stringify(f))
}

func TestRoundTrip(t *testing.T) {
	cases := []map[string][]string{
		{"release": {"1.0"}},
		{"title": {"foo (bar)", "plain"}},
		{"message": {`with "quotes"`, `back\slash`}},
		{"environment": {"prod"}, "user.id": {"42"}},
	}
	for _, entries := range cases {
		f := NewFilter()
		for key, values := range entries {
			f.Set(key, values)
		}
		parsed := Parse(Stringify(f))
		require.Equal(t, f.Len(), parsed.Len())
		for key, values := range entries {
			got, ok := parsed.Get(key)
			require.True(t, ok, "missing key %q", key)
			assert.Equal(t, values, got)
		}
	}
}

func TestSetPreservesPosition(t *testing.T) {
	f := Parse("a:1 b:2")
	f.Set("a", []string{"9"})

	assert.Equal(t, []string{"a", "b"}, f.Keys())
	values, _ := f.Get("a")
	assert.Equal(t, []string{"9"}, values)
}
