package drilldown

import (
	"github.com/evertrail/discover/internal/eventview"
)

// orderedSet tracks attribute names already produced by the current pass,
// in insertion order. Map iteration order is unspecified in Go, so the
// ordering guarantee has to be explicit.
type orderedSet struct {
	names   []string
	present map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{present: make(map[string]struct{})}
}

func (s *orderedSet) add(name string) {
	if _, ok := s.present[name]; ok {
		return
	}
	s.present[name] = struct{}{}
	s.names = append(s.names, name)
}

func (s *orderedSet) has(name string) bool {
	_, ok := s.present[name]
	return ok
}

// TransformFields rewrites an aggregated column list into its row-level
// counterpart. Aggregates with a known source attribute become bare
// references to it; aggregates with no row-level meaning (count, aggregates
// over id, all-literal parameter lists) are dropped, as are columns whose
// attribute was already produced earlier in the pass. The input slice is
// never mutated.
//
// The returned deleted slice holds the original indices of removed fields in
// ascending order; removal itself is applied in descending index order so
// earlier indices stay valid while splicing.
func TransformFields(fields []eventview.Field) (updated []eventview.Field, deleted []int) {
	work := append([]eventview.Field(nil), fields...)
	produced := newOrderedSet()

	for i, f := range work {
		col := eventview.ParseField(f.Field)

		if col.Kind == eventview.KindField {
			if col.Name == "id" {
				// id is implicit in row-level results.
				deleted = append(deleted, i)
				continue
			}
			if produced.has(col.Name) {
				deleted = append(deleted, i)
			}
			// Bare fields pass through without populating the produced
			// set; only replacements claim attributes during this pass.
			continue
		}

		alias := aggregateSourceAlias(col)
		if src, known := eventview.SourceField(alias); known {
			if src == "" || produced.has(src) {
				deleted = append(deleted, i)
				continue
			}
			work[i] = eventview.Field{Field: src, Width: eventview.WidthUnset}
			produced.add(src)
			continue
		}

		if len(col.Args) > 0 && produced.has(col.Args[0]) {
			deleted = append(deleted, i)
			continue
		}

		if isIdentityAggregate(col) {
			deleted = append(deleted, i)
			continue
		}

		arg, ok := columnArgument(col)
		if !ok {
			// Only literal parameters; nothing row-level to select.
			deleted = append(deleted, i)
			continue
		}

		work[i] = eventview.Field{Field: arg, Width: eventview.WidthUnset}
		produced.add(arg)
	}

	updated = spliceDescending(work, deleted)
	return updated, deleted
}

// aggregateSourceAlias picks the name used to resolve an aggregate's source
// attribute: the function name when it is itself a known alias, otherwise
// the first argument when present.
func aggregateSourceAlias(col eventview.Column) string {
	if _, known := eventview.SourceField(col.Function); known {
		return col.Function
	}
	if len(col.Args) > 0 && col.Args[0] != "" {
		return col.Args[0]
	}
	return col.Function
}

// isIdentityAggregate reports aggregates whose expansion carries no
// information: anything over the synthetic id attribute, and count with no
// meaningful field argument.
func isIdentityAggregate(col eventview.Column) bool {
	if len(col.Args) > 0 && col.Args[0] == "id" {
		return true
	}
	if col.Function == "count" {
		return len(col.Args) == 0 || col.Args[0] == "" || col.Args[0] == "id"
	}
	return false
}

// columnArgument returns the argument bound to the aggregate's first
// column-kind formal parameter. Missing definitions fall back to treating
// the first argument as a column, matching the graceful-lookup policy.
func columnArgument(col eventview.Column) (string, bool) {
	def, known := eventview.Aggregations[col.Function]
	if !known {
		if len(col.Args) > 0 && col.Args[0] != "" {
			return col.Args[0], true
		}
		return "", false
	}
	for i, p := range def.Parameters {
		if p.Kind != eventview.ParamColumn {
			continue
		}
		if i < len(col.Args) && col.Args[i] != "" {
			return col.Args[i], true
		}
		return "", false
	}
	return "", false
}

// spliceDescending removes the given indices from a copy of fields,
// highest index first so earlier positions are unaffected mid-removal.
func spliceDescending(fields []eventview.Field, deleted []int) []eventview.Field {
	out := append([]eventview.Field(nil), fields...)
	for i := len(deleted) - 1; i >= 0; i-- {
		idx := deleted[i]
		out = append(out[:idx], out[idx+1:]...)
	}
	return out
}
