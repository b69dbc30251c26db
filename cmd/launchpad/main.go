// Command launchpad prepares and serves an HTTP application assembled from
// startup steps: database and storage clients, health and metrics endpoints,
// and automatic TLS.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "launchpad",
		Short: "Prepare and serve an HTTP application",
		Long: `launchpad runs a sequence of startup steps, some of them concurrently,
combines what they contribute (routes, request context values, server
settings and a shutdown trigger) and serves the result.

Configuration comes from the environment (and .env), optionally layered
over a YAML file given with --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML configuration file")

	rootCmd.AddCommand(
		serveCmd(&configPath),
		routesCmd(&configPath),
		versionCmd(),
	)

	return rootCmd
}
