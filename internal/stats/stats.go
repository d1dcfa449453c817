/*
PURPOSE:
  Latency aggregation for benchmark samples: averages, nearest-rank
  percentiles, throughput and the per-scenario / run-level summaries.

REQUIREMENTS:
  User-specified:
  - success_rate must be exact: successes / total samples.
  - P95 must be >= median and <= max of the recorded response times.
  - Zero repetitions must yield an empty summary, never a divide-by-zero.

  Implementation-discovered:
  - Latency aggregates only make sense over successful samples; a timed-out
    call's duration is its deadline, not a latency measurement.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.Sample
  - Produces: internal/model.ScenarioSummary

ERROR HANDLING:
  - None. Degenerate inputs (no samples, no successes) produce zeroed
    summaries.

IMPLEMENTATION RULES:
  - Percentile method is nearest-rank: the ceil(p/100 * n)-th smallest
    value. Chosen over interpolation for simplicity; it always returns an
    observed value, which keeps median <= P95 <= max by construction.
  - Never mutate the caller's sample slice.

USAGE:
  summary := stats.Summarize(scenario, samples, elapsed)

RELATED FILES:
  - internal/model/types.go
  - internal/engine/runner.go

MAINTENANCE:
  - Update if the report grows new aggregate fields.
*/

package stats

import (
	"math"
	"sort"
	"time"

	"github.com/cuopt-oci/fleet-bench/internal/model"
)

// Percentile returns the nearest-rank p-th percentile of durations
// (p in (0, 100]). Returns 0 for an empty input.
func Percentile(durations []time.Duration, p float64) time.Duration {
	n := len(durations)
	if n == 0 {
		return 0
	}

	sorted := make([]time.Duration, n)
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	// Nearest rank: smallest k such that k/n >= p/100.
	rank := int(math.Ceil(float64(n) * p / 100.0))
	if rank < 1 {
		rank = 1
	}
	if rank > n {
		rank = n
	}
	return sorted[rank-1]
}

// Summarize aggregates all samples of one scenario. The elapsed duration
// is the scenario's wall-clock time (pool start to last sample), used for
// throughput.
func Summarize(s model.Scenario, samples []model.Sample, elapsed time.Duration) model.ScenarioSummary {
	summary := model.ScenarioSummary{
		Name:           s.Name,
		Vehicles:       s.Vehicles,
		Locations:      s.Locations,
		Requests:       len(samples),
		ElapsedSeconds: elapsed.Seconds(),
	}

	if len(samples) == 0 {
		return summary
	}

	var successDurations []time.Duration
	var total time.Duration
	for _, sample := range samples {
		if !sample.Success {
			continue
		}
		summary.Successes++
		successDurations = append(successDurations, sample.Duration)
		total += sample.Duration
	}
	summary.SuccessRate = float64(summary.Successes) / float64(summary.Requests)

	if len(successDurations) == 0 {
		return summary
	}

	min, max := successDurations[0], successDurations[0]
	for _, d := range successDurations[1:] {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}

	summary.AvgResponseMS = toMS(total / time.Duration(len(successDurations)))
	summary.P95ResponseMS = toMS(Percentile(successDurations, 95))
	summary.MinResponseMS = toMS(min)
	summary.MaxResponseMS = toMS(max)

	if elapsed > 0 {
		summary.ThroughputPerMinute = float64(summary.Successes) / elapsed.Minutes()
	}

	return summary
}

// Totals fills the run-level aggregate fields of a report from its
// scenario summaries.
func Totals(report *model.RunReport) {
	report.TotalRequests = 0
	report.TotalSuccesses = 0
	for _, s := range report.Scenarios {
		report.TotalRequests += s.Requests
		report.TotalSuccesses += s.Successes
	}
	if report.TotalRequests > 0 {
		report.OverallSuccessRate = float64(report.TotalSuccesses) / float64(report.TotalRequests)
	} else {
		report.OverallSuccessRate = 0
	}
}

func toMS(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
