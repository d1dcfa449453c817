package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuopt-oci/fleet-bench/internal/model"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func testScenario() model.Scenario {
	return model.Scenario{
		Name:             "EV-Fleet-10v",
		Vehicles:         10,
		Locations:        15,
		TimeLimitSeconds: 10,
	}
}

func successSample(attempt int, d time.Duration) model.Sample {
	return model.Sample{
		ScenarioName: "EV-Fleet-10v",
		Attempt:      attempt,
		Duration:     d,
		StatusCode:   200,
		Success:      true,
	}
}

func TestPercentileNearestRank(t *testing.T) {
	durations := []time.Duration{ms(10), ms(10), ms(10), ms(10), ms(100)}

	p50 := Percentile(durations, 50)
	p95 := Percentile(durations, 95)
	max := ms(100)

	assert.Equal(t, ms(10), p50)
	assert.Equal(t, ms(100), p95)

	// Nearest-rank keeps P95 within [median, max] by construction.
	assert.GreaterOrEqual(t, p95, p50)
	assert.LessOrEqual(t, p95, max)
}

func TestPercentileSingleSample(t *testing.T) {
	assert.Equal(t, ms(42), Percentile([]time.Duration{ms(42)}, 95))
}

func TestPercentileEmpty(t *testing.T) {
	assert.Equal(t, time.Duration(0), Percentile(nil, 95))
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	durations := []time.Duration{ms(100), ms(10), ms(50)}
	Percentile(durations, 95)
	assert.Equal(t, []time.Duration{ms(100), ms(10), ms(50)}, durations)
}

func TestSummarizeAllSuccess(t *testing.T) {
	samples := []model.Sample{
		successSample(1, ms(1000)),
		successSample(2, ms(1000)),
		successSample(3, ms(1000)),
	}

	summary := Summarize(testScenario(), samples, 3*time.Second)

	assert.Equal(t, "EV-Fleet-10v", summary.Name)
	assert.Equal(t, 10, summary.Vehicles)
	assert.Equal(t, 15, summary.Locations)
	assert.Equal(t, 3, summary.Requests)
	assert.Equal(t, 3, summary.Successes)
	assert.InDelta(t, 1.0, summary.SuccessRate, 1e-9)
	assert.InDelta(t, 1000, summary.AvgResponseMS, 0.01)
	assert.InDelta(t, 1000, summary.P95ResponseMS, 0.01)
	assert.InDelta(t, 60.0, summary.ThroughputPerMinute, 0.01)
}

func TestSummarizeWithTimeout(t *testing.T) {
	samples := []model.Sample{
		successSample(1, ms(900)),
		successSample(2, ms(1100)),
		{ScenarioName: "EV-Fleet-10v", Attempt: 3, Duration: ms(40000), Success: false, Error: "timeout"},
		successSample(4, ms(1000)),
		successSample(5, ms(1000)),
	}

	summary := Summarize(testScenario(), samples, 45*time.Second)

	assert.Equal(t, 5, summary.Requests)
	assert.Equal(t, 4, summary.Successes)
	assert.InDelta(t, 0.8, summary.SuccessRate, 1e-9)
	// The timed-out call must not skew latency aggregates.
	assert.InDelta(t, 1000, summary.AvgResponseMS, 0.01)
	assert.InDelta(t, 1100, summary.MaxResponseMS, 0.01)
	assert.InDelta(t, 900, summary.MinResponseMS, 0.01)
}

func TestSummarizeZeroRepetitions(t *testing.T) {
	summary := Summarize(testScenario(), nil, 0)

	assert.Equal(t, 0, summary.Requests)
	assert.Zero(t, summary.SuccessRate)
	assert.Zero(t, summary.AvgResponseMS)
	assert.Zero(t, summary.P95ResponseMS)
	assert.Zero(t, summary.ThroughputPerMinute)
}

func TestSummarizeNoSuccesses(t *testing.T) {
	samples := []model.Sample{
		{ScenarioName: "EV-Fleet-10v", Attempt: 1, Success: false, Error: "http 500: boom"},
		{ScenarioName: "EV-Fleet-10v", Attempt: 2, Success: false, Error: "timeout"},
	}

	summary := Summarize(testScenario(), samples, time.Second)

	assert.Equal(t, 2, summary.Requests)
	assert.Zero(t, summary.Successes)
	assert.Zero(t, summary.SuccessRate)
	assert.Zero(t, summary.AvgResponseMS)
	assert.Zero(t, summary.P95ResponseMS)
}

func TestTotals(t *testing.T) {
	report := &model.RunReport{
		Scenarios: []model.ScenarioSummary{
			{Requests: 5, Successes: 4},
			{Requests: 3, Successes: 3},
			{Requests: 0, Successes: 0},
		},
	}

	Totals(report)

	require.Equal(t, 8, report.TotalRequests)
	require.Equal(t, 7, report.TotalSuccesses)
	assert.InDelta(t, 7.0/8.0, report.OverallSuccessRate, 1e-9)
}

func TestTotalsEmptyRun(t *testing.T) {
	report := &model.RunReport{}
	Totals(report)
	assert.Zero(t, report.OverallSuccessRate)
}
