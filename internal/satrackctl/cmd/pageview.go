package cmd

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/wrale/wrale-analytics/internal/satrackctl/util"
)

func newPageviewCmd() *cobra.Command {
	var (
		flags  trackFlags
		method string
	)

	cmd := &cobra.Command{
		Use:   "pageview URL",
		Short: "Send a pageview for a URL",
		Long: `Send a pageview as if URL had been requested. The path and utm_*
query parameters come from URL; other signals come from --header.
Non-GET methods and internal script paths are not recorded.`,
		Example: `  # Record a campaign visit
  satrackctl pageview "https://example.com/blog/post-1?utm_source=newsletter" \
    --hostname example.com -H "User-Agent=Mozilla/5.0"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid URL: %w", err)
			}
			if u.Path == "" {
				u.Path = "/"
			}

			h, err := util.ParseHeaders(flags.headers)
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, cfg)
			if err != nil {
				return err
			}

			req, err := http.NewRequestWithContext(cmd.Context(), method, u.String(), nil)
			if err != nil {
				return fmt.Errorf("error creating request: %w", err)
			}
			req.Header = h

			tracker, err := flags.newTracker(cfg, cmd.OutOrStdout(), logger)
			if err != nil {
				return err
			}
			return tracker.TrackPageview(cmd.Context(), req, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&method, "method", http.MethodGet, "HTTP method of the simulated request")

	return cmd
}
