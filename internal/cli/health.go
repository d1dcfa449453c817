/*
PURPOSE:
  Defines the 'health' subcommand.
  Helps debug connectivity before running a long benchmark.

REQUIREMENTS:
  User-specified:
  - Check the cuOpt endpoint is reachable.

  Implementation-discovered:
  - Useful validation step before the full run; same preflight the
    runner performs.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Client.CheckHealth()

ERROR HANDLING:
  - Returns the connectivity error so the exit code reflects it.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  fleet-bench health --endpoint http://cuopt-service:8000

RELATED FILES:
  - internal/engine/client.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuopt-oci/fleet-bench/internal/config"
	"github.com/cuopt-oci/fleet-bench/internal/engine"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check cuOpt endpoint connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if endpointOverride != "" {
			cfg.Endpoint = endpointOverride
		}

		client := engine.NewClient(cfg.Endpoint, 1)

		fmt.Printf("Querying %s...\n", client.Endpoint())
		health, err := client.CheckHealth(context.Background())
		if err != nil {
			return &engine.ConnectivityError{Endpoint: client.Endpoint(), Err: err}
		}

		fmt.Printf("Status:  %s\n", health.Status)
		fmt.Printf("Version: %s\n", health.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
	healthCmd.Flags().StringVar(&endpointOverride, "endpoint", "", "cuOpt service base URL")
}
