// Package export serializes Discover result rows to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/evertrail/discover/internal/eventview"
)

// Column describes one CSV column: the view's field key and its display
// label used as the header cell.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// userKeys are probed in order when a synthetic user column has no direct
// value; the first present sub-attribute wins.
var userKeys = []string{"user", "user.name", "user.email", "user.username", "user.ip"}

// WriteCSV writes rows as CSV. Column keys resolve through their aggregate
// alias to row keys; missing values serialize as empty cells. Every cell is
// sanitized against spreadsheet formula injection before writing.
func WriteCSV(w io.Writer, columns []Column, rows []map[string]any) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = sanitizeCell(col.Label)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = sanitizeCell(resolveCell(col.Key, row))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// resolveCell extracts the value for one column from a row.
func resolveCell(key string, row map[string]any) string {
	alias := eventview.AggregateAlias(key)
	if alias == "user" {
		for _, k := range userKeys {
			if v, ok := row[k]; ok && v != nil && fmt.Sprint(v) != "" {
				return fmt.Sprint(v)
			}
		}
		return ""
	}
	v, ok := row[alias]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// sanitizeCell neutralizes content a spreadsheet application would execute
// as a formula by prefixing it with a single quote.
func sanitizeCell(value string) string {
	if value == "" {
		return value
	}
	switch value[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + value
	}
	return value
}
