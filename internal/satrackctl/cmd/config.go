package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrale/wrale-analytics/internal/satrackctl/config"
	"github.com/wrale/wrale-analytics/internal/satrackctl/util"
)

// newConfigCmd creates the config command for viewing and changing CLI settings
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "view",
			Short: "Display the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", cfg.Path())
				return util.PrintJSON(cmd.OutOrStdout(), cfg)
			},
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Set a configuration value",
			Example: `  satrackctl config set hostname example.com
  satrackctl config set endpoint http://localhost:8080/events`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.Set(cfg.Path(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], cfg.Path())
				return nil
			},
		},
	)

	return cmd
}
