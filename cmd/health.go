package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const clientVersion = "0.1.0"

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check API connectivity",
	Long: `Check that the inventory API is reachable and answering.

Examples:
  invctl health                    # Check the configured server
  invctl health --timeout 10s      # Set custom timeout
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
		defer cancel()

		start := time.Now()
		version, err := app.API.Version(ctx)
		if err != nil {
			fail("API health check failed: %v", err)
		}
		fmt.Println("✅ API is healthy and accessible")
		fmt.Printf("🌐 %s\n", app.Config.APIURL)
		fmt.Printf("📦 Server version %s (%s)\n", version, time.Since(start).Round(time.Millisecond))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print client and server versions",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("invctl %s\n", clientVersion)
		ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
		defer cancel()
		if v, err := app.API.Version(ctx); err == nil {
			fmt.Printf("server %s\n", v)
		} else {
			fmt.Printf("server unreachable: %v\n", err)
		}
	},
}

var healthTimeout time.Duration

func init() {
	healthCmd.Flags().DurationVarP(&healthTimeout, "timeout", "t", 5*time.Second, "Timeout for health check")
	versionCmd.Flags().DurationVarP(&healthTimeout, "timeout", "t", 5*time.Second, "Timeout for the server query")
}
