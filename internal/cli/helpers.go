package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/evertrail/discover/internal/config"
	"github.com/evertrail/discover/internal/drilldown"
	"github.com/evertrail/discover/internal/eventview"
	"github.com/evertrail/discover/internal/logging"
)

// setup loads the config and builds the command logger from persistent
// flags, with flag values overriding the config file.
func setup(cmd *cobra.Command, component string) (*config.Config, zerolog.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		logCfg.Level = level
	}
	logCfg.Pretty, _ = cmd.Flags().GetBool("pretty")

	return cfg, logging.NewWithComponent(logCfg, component), nil
}

// viewFromFlags assembles an event view from the shared view flags,
// applying the config's default scope when none is given.
func viewFromFlags(cmd *cobra.Command, cfg *config.Config) (eventview.EventView, error) {
	if encoded, _ := cmd.Flags().GetString("view"); encoded != "" {
		values, err := url.ParseQuery(encoded)
		if err != nil {
			return eventview.EventView{}, fmt.Errorf("parse --view: %w", err)
		}
		return eventview.FromURLValues(values), nil
	}

	v := eventview.EventView{}
	fields, _ := cmd.Flags().GetStringArray("field")
	for _, f := range fields {
		v.Fields = append(v.Fields, eventview.Field{Field: f, Width: eventview.WidthUnset})
	}
	v.Query, _ = cmd.Flags().GetString("query")
	v.ProjectIDs, _ = cmd.Flags().GetInt64Slice("project")
	v.Environments, _ = cmd.Flags().GetStringSlice("environment")
	v.Sort, _ = cmd.Flags().GetString("sort")

	if len(v.ProjectIDs) == 0 {
		v.ProjectIDs = append(v.ProjectIDs, cfg.Projects...)
	}
	if len(v.Environments) == 0 {
		v.Environments = append(v.Environments, cfg.Environments...)
	}
	return v, nil
}

// addViewFlags registers the flags viewFromFlags consumes.
func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().String("view", "", "event view as a URL query string (overrides the flags below)")
	cmd.Flags().StringArray("field", nil, "view column, e.g. 'transaction' or 'p75(transaction.duration)' (repeatable)")
	cmd.Flags().String("query", "", "filter string of key:value pairs")
	cmd.Flags().Int64Slice("project", nil, "project id scope (repeatable)")
	cmd.Flags().StringSlice("environment", nil, "environment scope (repeatable)")
	cmd.Flags().String("sort", "", "sort column, '-' prefix for descending")
}

// loadRow reads a data row from a JSON file, or stdin when path is "-".
func loadRow(path string) (*drilldown.DataRow, error) {
	if path == "" {
		return nil, nil
	}
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read row: %w", err)
	}
	var row drilldown.DataRow
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("parse row JSON: %w", err)
	}
	return &row, nil
}

// parseConditions turns key=value flag values into an ordered conditions
// map, keeping flag order.
func parseConditions(raw []string) (*drilldown.Conditions, error) {
	conditions := drilldown.NewConditions()
	for _, entry := range raw {
		idx := strings.Index(entry, "=")
		if idx <= 0 {
			return nil, fmt.Errorf("invalid condition %q, want key=value", entry)
		}
		conditions.Set(entry[:idx], entry[idx+1:])
	}
	return conditions, nil
}
