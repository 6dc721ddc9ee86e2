package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evertrail/discover/internal/drilldown"
)

// NewExpandCmd creates the expand subcommand.
func NewExpandCmd() *cobra.Command {
	var rowPath string
	var conditionFlags []string
	var output string

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Rewrite an aggregated view as a row-level drill-down view",
		Long: `Replaces aggregate columns with their underlying attributes and pins the
filter to a concrete event row.

Examples:
  # Expand an aggregated view, no row pinning
  discover expand --field 'transaction' --field 'p75(transaction.duration)' --field 'count()'

  # Pin to a row read from a JSON file
  discover expand --view 'field=transaction&field=count()&query=release:1.0' --row event.json

  # Extra caller conditions
  discover expand --field 'count()' --condition 'release=2.1' --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, "expand")
			if err != nil {
				return err
			}
			view, err := viewFromFlags(cmd, cfg)
			if err != nil {
				return err
			}
			row, err := loadRow(rowPath)
			if err != nil {
				return err
			}
			conditions, err := parseConditions(conditionFlags)
			if err != nil {
				return err
			}

			expanded := drilldown.NewExpander(log).Expand(view, conditions, row)

			switch output {
			case "json":
				data, err := json.MarshalIndent(expanded, "", "  ")
				if err != nil {
					return fmt.Errorf("encode view: %w", err)
				}
				cmd.Println(string(data))
			case "url":
				cmd.Println(expanded.URLValues().Encode())
			default:
				return fmt.Errorf("unknown output format %q, want url or json", output)
			}
			return nil
		},
	}

	addViewFlags(cmd)
	cmd.Flags().StringVar(&rowPath, "row", "", "JSON file with the event row to pin to ('-' for stdin)")
	cmd.Flags().StringArrayVar(&conditionFlags, "condition", nil, "extra filter condition as key=value (repeatable)")
	cmd.Flags().StringVar(&output, "output", "url", "output format: url or json")
	return cmd
}
