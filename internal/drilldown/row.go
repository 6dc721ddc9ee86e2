// Package drilldown expands an aggregated event view into a row-level view:
// aggregate columns are replaced by their underlying attributes and the
// filter is pinned to one concrete event row.
package drilldown

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Tag is one dynamic key/value attribute attached to an event row, distinct
// from the fixed schema attributes.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DataRow is one concrete event record used to seed drill-down conditions.
// Attributes map result keys (aggregate-alias form) to scalar values; Tags
// preserve the row's tag order.
type DataRow struct {
	Attributes map[string]any `json:"attributes"`
	Tags       []Tag          `json:"tags,omitempty"`
}

// Tag returns the row's tag with the given key, if any.
func (r *DataRow) Tag(key string) (Tag, bool) {
	for _, t := range r.Tags {
		if t.Key == key {
			return t, true
		}
	}
	return Tag{}, false
}

// Conditions is an insertion-ordered mapping of filter key to one value.
// Order matters: later writers win on collision and the assemble step
// iterates entries in insertion order.
type Conditions struct {
	pairs *orderedmap.OrderedMap[string, string]
}

// NewConditions returns an empty conditions map.
func NewConditions() *Conditions {
	return &Conditions{pairs: orderedmap.New[string, string]()}
}

// Set adds or overwrites the value for key, preserving its original position
// on overwrite.
func (c *Conditions) Set(key, value string) {
	c.pairs.Set(key, value)
}

// Get returns the value for key and whether it is present.
func (c *Conditions) Get(key string) (string, bool) {
	return c.pairs.Get(key)
}

// Delete removes key; absent keys are a no-op.
func (c *Conditions) Delete(key string) {
	c.pairs.Delete(key)
}

// Len returns the number of entries.
func (c *Conditions) Len() int {
	if c == nil {
		return 0
	}
	return c.pairs.Len()
}

// Each calls fn for every entry in insertion order.
func (c *Conditions) Each(fn func(key, value string)) {
	if c == nil {
		return
	}
	for pair := c.pairs.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// merge copies src entries into c in src order, overwriting on collision.
func (c *Conditions) merge(src *Conditions) {
	src.Each(func(key, value string) {
		c.Set(key, value)
	})
}
