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
	rootCmd := &cobra.Command{
		Use:   "prop",
		Short: "Observable property playground",
		Long: `prop serves observable containers over WebSocket for development
and debugging.

The serve command exposes a set of demo containers through the bridge
protocol, together with a Prometheus /metrics endpoint, so clients and
dashboards can be exercised without writing an application first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
