/*
PURPOSE:
  High-level runner that orchestrates the benchmarking process.
  Preflight -> scenarios in strict sequence -> bounded worker pool per
  scenario -> summaries -> run report.

REQUIREMENTS:
  User-specified:
  - Scenarios never overlap (one scenario's tail must not pollute the
    next one's ramp-up).
  - Individual call failures never abort the run; only a failed
    preflight does.
  - A global run timeout stops dispatching new attempts; in-flight
    calls finish or time out on their own deadline.

  Implementation-discovered:
  - Results must flow through a single collector. Workers write to a
    channel, one loop appends; no shared mutable slice.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/engine/client.go, internal/payload, internal/stats,
    internal/output

ERROR HANDLING:
  - Logs per-call failures and continues (resilience).
  - Artifact write failures are logged, not fatal: losing one CSV row
    must not kill an hours-long run.

IMPLEMENTATION RULES:
  - One attempt channel + N workers + one collector per scenario.
  - Build the payload fresh per attempt.
  - Summaries are computed only after the scenario's result channel
    drains, which happens-before the next scenario starts.

USAGE:
  report, err := engine.Run(cfg)

RELATED FILES:
  - internal/engine/client.go
  - internal/stats/stats.go

MAINTENANCE:
  - Update iteration logic if cross-scenario parallelism is ever wanted
    (it is deliberately absent today).
*/

package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cuopt-oci/fleet-bench/internal/config"
	"github.com/cuopt-oci/fleet-bench/internal/model"
	"github.com/cuopt-oci/fleet-bench/internal/output"
	"github.com/cuopt-oci/fleet-bench/internal/payload"
	"github.com/cuopt-oci/fleet-bench/internal/stats"
)

// Run executes the full benchmark suite and writes the report artifacts.
func Run(cfg *config.Config) (*model.RunReport, error) {
	client := NewClient(cfg.Endpoint, cfg.Concurrency)

	ctx := context.Background()
	var cancel context.CancelFunc
	if cfg.RunTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.RunTimeout)
		defer cancel()
	}

	// 1. Preflight. Fatal on failure: no scenario may produce samples
	// against an unreachable endpoint.
	output.Logger.Info("Preflight health check...", "endpoint", client.Endpoint())
	health, err := client.CheckHealth(ctx)
	if err != nil {
		return nil, &ConnectivityError{Endpoint: client.Endpoint(), Err: err}
	}
	output.Logger.Info("Preflight OK", "status", health.Status, "version", health.Version)

	// Ensure output directory exists
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	// Setup Outputs
	csvPath := filepath.Join(cfg.OutputDir, "samples.csv")
	csvWriter, err := output.NewCSVWriter(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init CSV writer at %s: %w", csvPath, err)
	}
	defer csvWriter.Close()

	jsonPath := filepath.Join(cfg.OutputDir, "samples.jsonl")
	jsonWriter, err := output.NewJSONWriter(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init JSON writer at %s: %w", jsonPath, err)
	}
	defer jsonWriter.Close()

	report := &model.RunReport{
		RunID:         uuid.NewString(),
		Timestamp:     time.Now(),
		Endpoint:      client.Endpoint(),
		SolverVersion: health.Version,
	}

	// 2. Execution Phase: scenarios strictly in sequence.
	runStart := time.Now()
	for _, scenario := range cfg.Scenarios {
		if ctx.Err() != nil {
			output.Logger.Warn("Run timeout reached, skipping remaining scenarios", "scenario", scenario.Name)
			report.Scenarios = append(report.Scenarios, stats.Summarize(scenario, nil, 0))
			continue
		}

		output.Logger.Info("Running scenario",
			"scenario", scenario.Name,
			"vehicles", scenario.Vehicles,
			"locations", scenario.Locations,
			"repetitions", scenario.Repetitions,
		)

		summary := runScenario(ctx, client, cfg, scenario, csvWriter, jsonWriter)
		report.Scenarios = append(report.Scenarios, summary)

		output.Logger.Info("Scenario complete",
			"scenario", summary.Name,
			"requests", summary.Requests,
			"success_rate", fmt.Sprintf("%.2f", summary.SuccessRate),
			"avg_ms", fmt.Sprintf("%.1f", summary.AvgResponseMS),
			"p95_ms", fmt.Sprintf("%.1f", summary.P95ResponseMS),
		)
	}

	report.ElapsedSeconds = time.Since(runStart).Seconds()
	stats.Totals(report)

	// 3. Report artifact (stable input for chart generation).
	reportPath := filepath.Join(cfg.OutputDir, cfg.ReportFile)
	if err := output.WriteReport(reportPath, report); err != nil {
		return report, fmt.Errorf("failed to write report to %s: %w", reportPath, err)
	}
	output.Logger.Info("Benchmark complete",
		"report", reportPath,
		"total_requests", report.TotalRequests,
		"overall_success_rate", fmt.Sprintf("%.2f", report.OverallSuccessRate),
	)

	return report, nil
}

// runScenario drains one scenario's repetitions through a bounded worker
// pool and returns its summary. It returns only after every dispatched
// attempt has produced a sample.
func runScenario(ctx context.Context, client *Client, cfg *config.Config, scenario model.Scenario, csvWriter *output.CSVWriter, jsonWriter *output.JSONWriter) model.ScenarioSummary {
	timeout := time.Duration(scenario.TimeLimitSeconds)*time.Second + cfg.GracePeriod

	attempts := make(chan int)
	results := make(chan model.Sample)

	var wg sync.WaitGroup
	for w := 0; w < cfg.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for attempt := range attempts {
				// Fresh payload per call; no shared mutable state.
				p := payload.Build(scenario, cfg.Seed)

				started := time.Now()
				// Deliberately not the run context: on global expiry an
				// in-flight call finishes or times out naturally.
				res := client.Solve(context.Background(), p, timeout)

				results <- model.Sample{
					ScenarioName: scenario.Name,
					Attempt:      attempt,
					Timestamp:    started,
					Duration:     res.Duration,
					StatusCode:   res.StatusCode,
					Success:      res.Err == "",
					Error:        res.Err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(attempts)
		for i := 1; i <= scenario.Repetitions; i++ {
			select {
			case <-ctx.Done():
				return
			case attempts <- i:
			}
		}
	}()

	// Single collector: the only writer to the sample slice.
	start := time.Now()
	var samples []model.Sample
	for sample := range results {
		samples = append(samples, sample)

		if sample.Error != "" {
			output.Logger.Error("Solve call failed",
				"scenario", sample.ScenarioName,
				"attempt", sample.Attempt,
				"error", sample.Error,
			)
		} else {
			output.Logger.Info("Solve call finished",
				"scenario", sample.ScenarioName,
				"attempt", sample.Attempt,
				"duration", sample.Duration,
			)
		}

		if err := csvWriter.Write(sample); err != nil {
			output.Logger.Error("Failed to write sample to CSV", "error", err)
		}
		if err := jsonWriter.Write(sample); err != nil {
			output.Logger.Error("Failed to write sample to JSON", "error", err)
		}
	}
	elapsed := time.Since(start)

	return stats.Summarize(scenario, samples, elapsed)
}
