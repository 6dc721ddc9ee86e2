package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/araddon/dateparse"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/evertrail/discover/internal/config"
	"github.com/evertrail/discover/internal/errors"
	"github.com/evertrail/discover/internal/eventstore"
	"github.com/evertrail/discover/internal/eventview"
	"github.com/evertrail/discover/internal/export"
)

// NewExportCmd creates the export subcommand.
func NewExportCmd() *cobra.Command {
	var dbPath string
	var rowsPath string
	var outPath string
	var since string
	var limit int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export matching event rows as CSV",
		Long: `Fetches rows for a view and writes them as CSV with formula-injection
sanitization applied to every cell.

Rows come from a DuckDB events database (--db, or store_path in the config)
or from a JSON file of row objects (--rows).

Examples:
  # Export from the configured events database
  discover export --field title --field 'user' --query 'release:1.0' --limit 500

  # Export pre-fetched rows
  discover export --field title --rows rows.json --out report.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, "export")
			if err != nil {
				return err
			}
			view, err := viewFromFlags(cmd, cfg)
			if err != nil {
				return err
			}
			if len(view.Fields) == 0 {
				return fmt.Errorf("export needs at least one --field")
			}

			var sinceTime time.Time
			if since != "" {
				sinceTime, err = dateparse.ParseIn(since, time.UTC)
				if err != nil {
					return fmt.Errorf("parse --since %q: %w", since, err)
				}
			}

			rows, err := fetchRows(cmd, cfg, view, dbPath, rowsPath, sinceTime, limit, log)
			if err != nil {
				return err
			}

			columns := make([]export.Column, len(view.Fields))
			for i, f := range view.Fields {
				columns[i] = export.Column{Key: f.Field, Label: f.Field}
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %q: %w", outPath, err)
				}
				defer errors.DeferClose(log, f, "closing csv output")
				out = f
			}

			if err := export.WriteCSV(out, columns, rows); err != nil {
				return err
			}
			log.Info().Int("rows", len(rows)).Msg("export complete")
			return nil
		},
	}

	addViewFlags(cmd)
	cmd.Flags().StringVar(&dbPath, "db", "", "DuckDB events database path (defaults to store_path from config)")
	cmd.Flags().StringVar(&rowsPath, "rows", "", "JSON file with an array of row objects instead of a database")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (defaults to stdout)")
	cmd.Flags().StringVar(&since, "since", "", "only export rows at or after this time, e.g. '2024-01-01' (database source only)")
	cmd.Flags().IntVar(&limit, "limit", 1000, "maximum number of rows to export")
	return cmd
}

// fetchRows loads rows from the JSON file when given, otherwise from the
// events database.
func fetchRows(cmd *cobra.Command, cfg *config.Config, view eventview.EventView, dbPath, rowsPath string, since time.Time, limit int, log zerolog.Logger) ([]map[string]any, error) {
	if rowsPath != "" {
		data, err := os.ReadFile(rowsPath)
		if err != nil {
			return nil, fmt.Errorf("read rows: %w", err)
		}
		var rows []map[string]any
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("parse rows JSON: %w", err)
		}
		return rows, nil
	}

	if dbPath == "" {
		dbPath = cfg.StorePath
	}
	if dbPath == "" {
		return nil, fmt.Errorf("no row source: pass --db, --rows, or set store_path in the config")
	}

	store, err := eventstore.Open(dbPath, log)
	if err != nil {
		return nil, err
	}
	defer errors.DeferClose(log, store, "closing event store")

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()
	return store.QueryView(ctx, view, since, limit)
}
