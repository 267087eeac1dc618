// Package cmd implements the satrackctl commands
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wrale/wrale-analytics/internal/satrackctl/config"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
	logger  zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "satrackctl",
	Short: "Send Simple Analytics events from the command line",
	Long: `satrackctl builds pageview and event payloads exactly as the server-side
tracker does and posts them to the Simple Analytics collection endpoint.
It is useful for verifying a site setup, backfilling events from scripts
and inspecting payloads with --dry-run.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.satrackctl/config.yaml)")
	rootCmd.PersistentFlags().String("endpoint", "", "collection endpoint URL")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(newEventCmd())
	rootCmd.AddCommand(newPageviewCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	// Allow command line flags to override config file
	if endpoint, _ := rootCmd.PersistentFlags().GetString("endpoint"); endpoint != "" {
		cfg.Endpoint = endpoint
	}
}
