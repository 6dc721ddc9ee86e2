package eventview

import "strings"

// OptionKind discriminates the source of a field-picker option.
type OptionKind int

const (
	OptionField OptionKind = iota
	OptionAggregate
	OptionTag
)

// FieldOption is one entry of the UI field picker.
type FieldOption struct {
	Label string
	Value string
	Kind  OptionKind
}

// FeatureFlags reports which gated names are available. A nil map disables
// every gated name.
type FeatureFlags map[string]bool

// Enabled reports whether the named flag is on.
func (f FeatureFlags) Enabled(flag string) bool {
	return f != nil && f[flag]
}

func gateOpen(name string, flags FeatureFlags) bool {
	flag, gated := GatedNames[name]
	return !gated || flags.Enabled(flag)
}

// FieldOptions derives the field-picker option list from the static schema
// tables plus the dynamic tag keys of the current dataset. Aggregates come
// first in table order, then known fields, then tags; gated names are
// omitted unless their feature flag is enabled. Tag keys that shadow a known
// field are wrapped in tags[...] so both remain selectable.
func FieldOptions(tagKeys []string, flags FeatureFlags) []FieldOption {
	options := make([]FieldOption, 0, len(AggregationNames)+len(FieldNames)+len(tagKeys))
	for _, name := range AggregationNames {
		if !gateOpen(name, flags) {
			continue
		}
		def := Aggregations[name]
		params := make([]string, 0, len(def.Parameters))
		for _, p := range def.Parameters {
			params = append(params, p.Name)
		}
		options = append(options, FieldOption{
			Label: name + "(" + strings.Join(params, ",") + ")",
			Value: name + "(" + strings.Join(params, ",") + ")",
			Kind:  OptionAggregate,
		})
	}
	for _, name := range FieldNames {
		if !gateOpen(name, flags) {
			continue
		}
		options = append(options, FieldOption{Label: name, Value: name, Kind: OptionField})
	}
	for _, key := range tagKeys {
		value := key
		if _, known := FieldTypes[key]; known {
			value = "tags[" + key + "]"
		}
		options = append(options, FieldOption{Label: value, Value: value, Kind: OptionTag})
	}
	return options
}
