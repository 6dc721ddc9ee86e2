package cli

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/evertrail/discover/internal/eventview"
)

// NewFieldsCmd creates the fields subcommand.
func NewFieldsCmd() *cobra.Command {
	var tagKeys []string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the selectable view columns",
		Long: `Prints the field-picker option list: aggregate functions, known fields,
and any dataset tag keys passed with --tag. Names gated behind a feature
flag only appear when the flag is enabled in the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(cmd, "fields")
			if err != nil {
				return err
			}

			options := eventview.FieldOptions(tagKeys, cfg.FeatureFlags())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, opt := range options {
				kind := "field"
				switch opt.Kind {
				case eventview.OptionAggregate:
					kind = "aggregate"
				case eventview.OptionTag:
					kind = "tag"
				}
				if _, err := w.Write([]byte(opt.Value + "\t" + kind + "\n")); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringSliceVar(&tagKeys, "tag", nil, "dataset tag key to include (repeatable)")
	return cmd
}
