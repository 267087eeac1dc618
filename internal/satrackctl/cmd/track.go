package cmd

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
	"github.com/wrale/wrale-analytics/internal/satrackctl/config"
	"github.com/wrale/wrale-analytics/internal/satrackctl/util"
	"github.com/wrale/wrale-analytics/pkg/analytics"
	"github.com/wrale/wrale-analytics/pkg/analytics/client"
)

// trackFlags are shared by the event and pageview commands
type trackFlags struct {
	hostname   string
	headers    []string
	ignore     []string
	collectDNT bool
	strictUTM  bool
	dryRun     bool
}

func (f *trackFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.hostname, "hostname", "", "tracked site hostname (default from config or SIMPLE_ANALYTICS_HOSTNAME)")
	cmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, "request header as Name=value (repeatable)")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "metrics to suppress: ua, viewport, language, timezone, utm")
	cmd.Flags().BoolVar(&f.collectDNT, "collect-dnt", false, "track even when a DNT header is present")
	cmd.Flags().BoolVar(&f.strictUTM, "strict-utm", true, "drop malformed utm_* values")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the payload instead of sending it")
}

// options merges flags over the loaded configuration
func (f *trackFlags) options(cmd *cobra.Command, c *config.Config) (analytics.Options, error) {
	ignore, err := util.ParseIgnore(f.ignore, c.IgnoreMetrics)
	if err != nil {
		return analytics.Options{}, err
	}

	strict := c.StrictUTM
	if cmd.Flags().Changed("strict-utm") {
		strict = f.strictUTM
	}

	return analytics.Options{
		Hostname:      f.hostname,
		IgnoreMetrics: ignore,
		CollectDNT:    f.collectDNT || c.CollectDNT,
		StrictUTM:     &strict,
	}, nil
}

// newTracker builds a tracker that either posts to the endpoint or prints to out
func (f *trackFlags) newTracker(c *config.Config, out io.Writer, log zerolog.Logger) (*analytics.Tracker, error) {
	var d analytics.Dispatcher
	if f.dryRun {
		d = printDispatcher{out: out}
	} else {
		cl, err := client.NewClient(
			client.WithEndpoint(c.Endpoint),
			client.WithTimeout(c.Timeout),
			client.WithLogger(log),
		)
		if err != nil {
			return nil, err
		}
		d = cl
	}

	return analytics.New(analytics.Config{Hostname: c.Hostname}, d, log)
}

// printDispatcher writes payloads as indented JSON
type printDispatcher struct {
	out io.Writer
}

func (p printDispatcher) Send(_ context.Context, payload v1alpha1.Payload) error {
	return util.PrintJSON(p.out, payload)
}
