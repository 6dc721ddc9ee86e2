package eventview

import "regexp"

// FieldType is the declared output type of a field or aggregate.
type FieldType string

const (
	TypeString     FieldType = "string"
	TypeInteger    FieldType = "integer"
	TypeNumber     FieldType = "number"
	TypeDuration   FieldType = "duration"
	TypePercentage FieldType = "percentage"
	TypeDate       FieldType = "date"
	TypeBoolean    FieldType = "boolean"
)

// ParamKind tags a formal aggregate parameter as accepting a column
// reference or a literal value.
type ParamKind int

const (
	ParamColumn ParamKind = iota
	ParamLiteral
)

// AggregateParam is one formal parameter of an aggregate function.
type AggregateParam struct {
	Name     string
	Kind     ParamKind
	Required bool
}

// AggregateDefinition is the static metadata for one aggregate function.
type AggregateDefinition struct {
	Parameters []AggregateParam
	OutputType FieldType
	Sortable   bool
}

// AggregationNames fixes the presentation order of the aggregate table for
// field-picker options and other deterministic listings.
var AggregationNames = []string{
	"count",
	"count_unique",
	"min",
	"max",
	"avg",
	"sum",
	"p50",
	"p75",
	"p95",
	"p99",
	"p100",
	"percentile",
	"failure_rate",
	"apdex",
	"user_misery",
	"eps",
	"epm",
	"last_seen",
	"latest_event",
}

// Aggregations maps aggregate function names to their definitions. Lookups
// for unknown names should fall back to the zero value (no parameters, no
// output type) rather than fail.
var Aggregations = map[string]AggregateDefinition{
	"count": {
		OutputType: TypeInteger,
		Sortable:   true,
	},
	"count_unique": {
		Parameters: []AggregateParam{{Name: "column", Kind: ParamColumn, Required: true}},
		OutputType: TypeInteger,
		Sortable:   true,
	},
	"min": {
		Parameters: []AggregateParam{{Name: "column", Kind: ParamColumn, Required: true}},
		Sortable:   true,
	},
	"max": {
		Parameters: []AggregateParam{{Name: "column", Kind: ParamColumn, Required: true}},
		Sortable:   true,
	},
	"avg": {
		Parameters: []AggregateParam{{Name: "column", Kind: ParamColumn, Required: true}},
		Sortable:   true,
	},
	"sum": {
		Parameters: []AggregateParam{{Name: "column", Kind: ParamColumn, Required: true}},
		Sortable:   true,
	},
	"p50": {
		OutputType: TypeDuration,
		Sortable:   true,
	},
	"p75": {
		OutputType: TypeDuration,
		Sortable:   true,
	},
	"p95": {
		OutputType: TypeDuration,
		Sortable:   true,
	},
	"p99": {
		OutputType: TypeDuration,
		Sortable:   true,
	},
	"p100": {
		OutputType: TypeDuration,
		Sortable:   true,
	},
	"percentile": {
		Parameters: []AggregateParam{
			{Name: "column", Kind: ParamColumn, Required: true},
			{Name: "percentile", Kind: ParamLiteral, Required: true},
		},
		OutputType: TypeNumber,
		Sortable:   true,
	},
	"failure_rate": {
		OutputType: TypePercentage,
		Sortable:   true,
	},
	"apdex": {
		Parameters: []AggregateParam{{Name: "threshold", Kind: ParamLiteral, Required: false}},
		OutputType: TypeNumber,
		Sortable:   true,
	},
	"user_misery": {
		Parameters: []AggregateParam{{Name: "threshold", Kind: ParamLiteral, Required: false}},
		OutputType: TypeNumber,
		Sortable:   true,
	},
	"eps": {
		OutputType: TypeNumber,
		Sortable:   true,
	},
	"epm": {
		OutputType: TypeNumber,
		Sortable:   true,
	},
	"last_seen": {
		OutputType: TypeDate,
		Sortable:   true,
	},
	"latest_event": {
		OutputType: TypeString,
		Sortable:   false,
	},
}

// FieldNames fixes the presentation order of the known bare fields.
var FieldNames = []string{
	"id",
	"title",
	"message",
	"timestamp",
	"transaction",
	"transaction.duration",
	"transaction.op",
	"transaction.status",
	"project.id",
	"release",
	"environment",
	"platform.name",
	"user",
	"user.id",
	"user.email",
	"user.username",
	"user.ip",
	"http.method",
	"http.url",
	"sdk.name",
	"sdk.version",
	"trace",
	"trace.span",
	"error.type",
	"error.value",
}

// FieldTypes maps known bare attribute names to their declared types.
// Unknown names are simply absent; callers treat that as "untyped" and pass
// the value through as an opaque string.
var FieldTypes = map[string]FieldType{
	"id":                   TypeString,
	"title":                TypeString,
	"message":              TypeString,
	"timestamp":            TypeDate,
	"transaction":          TypeString,
	"transaction.duration": TypeDuration,
	"transaction.op":       TypeString,
	"transaction.status":   TypeString,
	"project.id":           TypeInteger,
	"release":              TypeString,
	"environment":          TypeString,
	"platform.name":        TypeString,
	"user":                 TypeString,
	"user.id":              TypeString,
	"user.email":           TypeString,
	"user.username":        TypeString,
	"user.ip":              TypeString,
	"http.method":          TypeString,
	"http.url":             TypeString,
	"sdk.name":             TypeString,
	"sdk.version":          TypeString,
	"trace":                TypeString,
	"trace.span":           TypeString,
	"error.type":           TypeString,
	"error.value":          TypeString,
}

// SourceFields maps aggregate names to the bare attribute a drill-down query
// selects in their place. An empty value means the aggregate has no row-level
// counterpart and its column is dropped when expanding.
var SourceFields = map[string]string{
	"last_seen":    "timestamp",
	"latest_event": "id",
	"apdex":        "",
	"user_misery":  "",
	"failure_rate": "",
	"eps":          "",
	"epm":          "",
	"p50":          "transaction.duration",
	"p75":          "transaction.duration",
	"p95":          "transaction.duration",
	"p99":          "transaction.duration",
	"p100":         "transaction.duration",
}

// percentileNameRe matches shorthand percentile aggregates such as p50 or
// p999 that may not appear in SourceFields explicitly.
var percentileNameRe = regexp.MustCompile(`^p\d+$`)

// SourceField resolves the row-level attribute behind an aggregate name.
// The second return reports whether the name is a known aggregate alias at
// all; a true result with an empty field means "known, but not expandable".
func SourceField(name string) (string, bool) {
	if src, ok := SourceFields[name]; ok {
		return src, true
	}
	if percentileNameRe.MatchString(name) {
		return "transaction.duration", true
	}
	return "", false
}

// GatedNames lists field or aggregate names that are only offered when the
// named feature flag is enabled.
var GatedNames = map[string]string{
	"user_misery":  "discover-user-misery",
	"eps":          "discover-throughput",
	"epm":          "discover-throughput",
	"trace":        "discover-tracing",
	"trace.span":   "discover-tracing",
	"latest_event": "discover-latest-event",
}
