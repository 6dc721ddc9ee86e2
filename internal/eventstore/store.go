package eventstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/evertrail/discover/internal/eventview"
	"github.com/evertrail/discover/internal/searchsyntax"
)

// Store wraps a DuckDB events database.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens the events database at path.
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, fmt.Errorf("open event store %q: %w", path, err)
	}
	return &Store{db: db, log: log}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// QueryView fetches up to limit rows matching the view: bare fields become
// projected columns and the view's filter plus scope lists become WHERE
// constraints. A non-zero since bounds the timestamp column. Aggregate
// fields and tags[...] filter keys have no backing column in the events
// table and are skipped with a debug log.
func (s *Store) QueryView(ctx context.Context, view eventview.EventView, since time.Time, limit int) ([]map[string]any, error) {
	q := NewQuery().Limit(limit)
	if !since.IsZero() {
		q.Since(since)
	}

	for _, f := range view.Fields {
		col := eventview.ParseField(f.Field)
		if col.Kind != eventview.KindField {
			s.log.Debug().Str("field", f.Field).Msg("skipping aggregate field in row query")
			continue
		}
		q.Columns(col.Name)
	}

	filter := searchsyntax.Parse(view.Query)
	for _, key := range filter.Keys() {
		if eventview.IsAggregateField(key) || strings.HasPrefix(key, "tags[") {
			s.log.Debug().Str("key", key).Msg("skipping filter key without a backing column")
			continue
		}
		values, _ := filter.Get(key)
		q.Match(key, values...)
	}

	if len(view.ProjectIDs) > 0 {
		ids := make([]string, len(view.ProjectIDs))
		for i, id := range view.ProjectIDs {
			ids[i] = fmt.Sprint(id)
		}
		q.Match("project.id", ids...)
	}
	if len(view.Environments) > 0 {
		q.Match("environment", view.Environments...)
	}
	if view.Sort != "" {
		q.OrderBy(view.Sort)
	}

	query, args := q.SQL()
	s.log.Debug().Str("query", Interpolate(query, args)).Msg("querying events")

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.log.Warn().Err(cerr).Msg("closing event rows")
		}
	}()

	return scanRows(rows)
}

// scanRows materializes sql rows as attribute maps keyed by column name.
func scanRows(rows *sql.Rows) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read result columns: %w", err)
	}
	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, name := range columns {
			row[name] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
