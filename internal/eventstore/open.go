// Package eventstore reads Discover event rows from a local DuckDB file.
// It is the CLI's row source; the core drill-down logic never touches it.
package eventstore

import (
	"database/sql"

	duckdbDriver "github.com/marcboeker/go-duckdb"
)

// OpenDB opens a DuckDB database at path. An empty path opens an in-memory
// database, which tests use.
func OpenDB(path string) (*sql.DB, error) {
	connector, err := duckdbDriver.NewConnector(path, nil)
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(connector), nil
}
