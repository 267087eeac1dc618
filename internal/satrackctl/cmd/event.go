package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wrale/wrale-analytics/internal/satrackctl/util"
	"github.com/wrale/wrale-analytics/pkg/analytics/request"
)

func newEventCmd() *cobra.Command {
	var (
		flags trackFlags
		meta  []string
	)

	cmd := &cobra.Command{
		Use:   "event NAME",
		Short: "Send a custom event",
		Long: `Send a custom event. Signals such as the user agent and language are
taken from the headers given with --header, the same way the server-side
tracker reads them from an incoming request.`,
		Example: `  # Record a signup with metadata
  satrackctl event signup --hostname example.com --meta plan=pro --meta seats=3

  # Inspect the payload without sending it
  satrackctl event signup -H "User-Agent=Mozilla/5.0" -H "Sec-CH-Lang=en" --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := util.ParseHeaders(flags.headers)
			if err != nil {
				return err
			}
			metadata, err := util.ParseMetadata(meta)
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, cfg)
			if err != nil {
				return err
			}
			opts.Metadata = metadata

			tracker, err := flags.newTracker(cfg, cmd.OutOrStdout(), logger)
			if err != nil {
				return err
			}

			src := request.FromHeaders{Headers: h}
			return tracker.TrackEvent(cmd.Context(), args[0], src, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringArrayVar(&meta, "meta", nil, "metadata as key=value (repeatable)")

	return cmd
}
