/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the full benchmark suite.

REQUIREMENTS:
  User-specified:
  - Run the benchmarks.
  - Specific flags for overrides.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config, then re-validate: a flag can break
    an otherwise valid config (e.g. --concurrency 0).

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or engine run fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Validate -> Engine.Run.

USAGE:
  fleet-bench run --endpoint http://cuopt-service:8000

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cuopt-oci/fleet-bench/internal/config"
	"github.com/cuopt-oci/fleet-bench/internal/engine"
)

var (
	endpointOverride    string
	outputOverride      string
	concurrencyOverride int
	scenarioFilter      []string
	runTimeoutOverride  time.Duration
	seedOverride        int64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark suite",
	Long: `Executes the full benchmark suite against a cuOpt endpoint.
The process follows a strict protocol:
1. Preflight: Checks /cuopt/health; an unreachable endpoint aborts before any scenario runs.
2. Execution: Runs each scenario strictly in sequence, issuing the configured
   repetitions through a bounded worker pool. Call failures are recorded, never fatal.
3. Reporting: Writes per-call samples (CSV + JSONL) and a run-level JSON report
   whose shape is stable for downstream chart generation.`,
	Example: `  # Run with defaults (uses fleet_bench.yaml)
  fleet-bench run

  # Override the endpoint and output directory
  fleet-bench run --endpoint http://cuopt-service:8000 -o ./results

  # Run only specific scenarios with bounded parallelism
  fleet-bench run --scenarios EV-Fleet-10v,EV-Fleet-50v --concurrency 4

  # Cap the whole run
  fleet-bench run --run-timeout 2h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// 2. Overrides
		if endpointOverride != "" {
			cfg.Endpoint = endpointOverride
		}
		if outputOverride != "" {
			cfg.OutputDir = outputOverride
		}
		if cmd.Flags().Changed("concurrency") {
			cfg.Concurrency = concurrencyOverride
		}
		if cmd.Flags().Changed("run-timeout") {
			cfg.RunTimeout = runTimeoutOverride
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seedOverride
		}
		if err := cfg.FilterScenarios(scenarioFilter); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// 3. Execution
		_, err = engine.Run(cfg)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&endpointOverride, "endpoint", "", "cuOpt service base URL")
	runCmd.Flags().StringVarP(&outputOverride, "output-dir", "o", "", "Output directory for results (CSV/JSONL/report)")
	runCmd.Flags().IntVarP(&concurrencyOverride, "concurrency", "c", 1, "Max in-flight solver calls within a scenario")
	runCmd.Flags().StringSliceVar(&scenarioFilter, "scenarios", nil, "Comma-separated list of scenario names to run (default: all)")
	runCmd.Flags().DurationVar(&runTimeoutOverride, "run-timeout", 0, "Global deadline for the whole run (0 = unlimited)")
	runCmd.Flags().Int64Var(&seedOverride, "seed", 0, "Seed for randomized payloads (0 = deterministic)")
}
