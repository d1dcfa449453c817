/*
PURPOSE:
  Defines the 'scenarios' subcommand.
  Prints the configured scenario set without running anything.

REQUIREMENTS:
  User-specified:
  - Inspect what a run would execute.

  Implementation-discovered:
  - Helps sanity-check a YAML file before an hours-long ladder run.

ARCHITECTURE INTEGRATION:
  - Uses: internal/config

ERROR HANDLING:
  - Propagates config load/validation errors.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  fleet-bench scenarios --config ./fleet_bench.yaml

RELATED FILES:
  - internal/config/config.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuopt-oci/fleet-bench/internal/config"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the configured benchmark scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		fmt.Printf("%-16s %9s %10s %6s %11s %12s\n",
			"NAME", "VEHICLES", "LOCATIONS", "TASKS", "TIME LIMIT", "REPETITIONS")
		for _, s := range cfg.Scenarios {
			fmt.Printf("%-16s %9d %10d %6d %10ds %12d\n",
				s.Name, s.Vehicles, s.Locations, s.Tasks(), s.TimeLimitSeconds, s.Repetitions)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}
