/*
PURPOSE:
  Defines the core data structures used throughout Fleet Bench.
  These models represent benchmark scenarios, per-call samples and
  the aggregated reports.

REQUIREMENTS:
  User-specified:
  - Record response time, HTTP status and success per solver call.
  - Track scenario name, fleet size and location count.

  Implementation-discovered:
  - Need JSON tags for the report artifact (chart generation consumes it).
  - Scenario needs YAML tags too since it is embedded in the config file.

ARCHITECTURE INTEGRATION:
  - Used by: internal/config, internal/payload, internal/engine,
    internal/stats, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Use time.Time and time.Duration for high precision; report fields
    are float64 milliseconds for downstream tooling.

USAGE:
  s := model.Sample{...}

RELATED FILES:
  - internal/output/csv.go
  - internal/output/json.go
  - internal/stats/stats.go

MAINTENANCE:
  - Update when adding new metrics to capture.
*/

package model

import (
	"time"
)

// Scenario is a named benchmark configuration. A scenario is immutable
// once loaded; everything the payload builder and runner need is here.
type Scenario struct {
	Name string `yaml:"name" json:"name"`
	// Vehicles is the fleet size sent in fleet_data.
	Vehicles int `yaml:"vehicles" json:"vehicles"`
	// Locations is the total location count including the depot. The cost
	// matrix is always Locations x Locations.
	Locations int `yaml:"locations" json:"locations"`
	// ChargingStations are locations that are routable but carry no task.
	// They come out of Locations, so tasks = Locations - 1 - ChargingStations.
	ChargingStations int `yaml:"charging_stations,omitempty" json:"charging_stations,omitempty"`
	// VehicleCapacity is the uniform capacity per vehicle (packages).
	VehicleCapacity int `yaml:"vehicle_capacity,omitempty" json:"vehicle_capacity,omitempty"`
	// IterationLimit bounds solver iterations; 0 means solver default.
	IterationLimit int `yaml:"iteration_limit,omitempty" json:"iteration_limit,omitempty"`
	// TimeLimitSeconds is passed to solver_config.time_limit and also
	// drives the per-call HTTP deadline (plus the grace period).
	TimeLimitSeconds int `yaml:"time_limit_seconds" json:"time_limit_seconds"`
	Repetitions      int `yaml:"repetitions" json:"repetitions"`
}

// Tasks returns the number of delivery tasks a scenario generates.
func (s Scenario) Tasks() int {
	return s.Locations - 1 - s.ChargingStations
}

// Sample is the outcome of a single solver call.
type Sample struct {
	ScenarioName string        `json:"scenario"`
	Attempt      int           `json:"attempt"`
	Timestamp    time.Time     `json:"timestamp"`
	Duration     time.Duration `json:"duration"`
	StatusCode   int           `json:"status_code,omitempty"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
}

// ResponseTimeMS is the wall-clock response time in milliseconds.
func (s Sample) ResponseTimeMS() float64 {
	return float64(s.Duration) / float64(time.Millisecond)
}

// ScenarioSummary aggregates all samples of one scenario. Latency fields
// cover successful samples only; SuccessRate covers every sample.
type ScenarioSummary struct {
	Name                string  `json:"name"`
	Vehicles            int     `json:"vehicles"`
	Locations           int     `json:"locations"`
	Requests            int     `json:"requests"`
	Successes           int     `json:"successes"`
	SuccessRate         float64 `json:"success_rate"`
	AvgResponseMS       float64 `json:"avg_response_ms"`
	P95ResponseMS       float64 `json:"p95_response_ms"`
	MinResponseMS       float64 `json:"min_response_ms"`
	MaxResponseMS       float64 `json:"max_response_ms"`
	ThroughputPerMinute float64 `json:"throughput_per_minute"`
	ElapsedSeconds      float64 `json:"elapsed_seconds"`
}

// RunReport is the run-level artifact. Its shape is stable: downstream
// chart generation parses it.
type RunReport struct {
	RunID              string            `json:"run_id"`
	Timestamp          time.Time         `json:"timestamp"`
	Endpoint           string            `json:"endpoint"`
	SolverVersion      string            `json:"solver_version,omitempty"`
	TotalRequests      int               `json:"total_requests"`
	TotalSuccesses     int               `json:"total_successes"`
	OverallSuccessRate float64           `json:"overall_success_rate"`
	ElapsedSeconds     float64           `json:"elapsed_seconds"`
	Scenarios          []ScenarioSummary `json:"scenarios"`
}
