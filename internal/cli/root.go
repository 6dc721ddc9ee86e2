// Package cli implements the discover command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/evertrail/discover/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover - event exploration queries from the command line",
	Long: `Build, drill into, and export Discover event views.

An event view is an ordered list of columns (bare attributes or aggregate
functions), a key:value filter string, and project/environment scoping.
The expand command rewrites an aggregated view into a row-level drill-down
view; export writes matching rows as CSV; fields lists the selectable
columns.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default ~/.discover/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("pretty", false, "human-readable log output")

	rootCmd.AddCommand(NewExpandCmd())
	rootCmd.AddCommand(NewExportCmd())
	rootCmd.AddCommand(NewFieldsCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("discover version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
