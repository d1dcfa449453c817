/*
PURPOSE:
  Defines the configuration structure and loading logic for Fleet Bench.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of the cuOpt endpoint, scenario list, concurrency,
    timeouts and output locations.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Scenario validation must reject shapes the solver API cannot accept
    (a scenario with zero tasks produces an empty task_data block).

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine, internal/payload
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing config file falls back to defaults (the fleet-scaling ladder).

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults should be sensible (30s grace, sequential by default).

USAGE:
  cfg, err := config.Load("fleet_bench.yaml")

RELATED FILES:
  - internal/cli/root.go
  - internal/model/types.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cuopt-oci/fleet-bench/internal/model"
)

// Config represents the full configuration for Fleet Bench.
type Config struct {
	// Endpoint is the cuOpt service base URL (no trailing slash needed).
	Endpoint  string `yaml:"endpoint"`
	OutputDir string `yaml:"output_dir"`
	// ReportFile is the filename of the run-level JSON report.
	ReportFile string `yaml:"report_file"`
	// Concurrency bounds in-flight solver calls within a scenario.
	// 1 means fully sequential.
	Concurrency int `yaml:"concurrency"`
	// GracePeriod is added to each scenario's time limit to form the
	// per-call HTTP deadline (network/queueing overhead beyond solver time).
	GracePeriod time.Duration `yaml:"grace_period"`
	// RunTimeout caps the whole run; zero means unlimited. On expiry no
	// further attempts are dispatched, in-flight calls finish naturally.
	RunTimeout time.Duration `yaml:"run_timeout"`
	// Seed switches payload generation to a seeded random stream.
	// Zero keeps payloads fully deterministic.
	Seed      int64            `yaml:"seed"`
	Scenarios []model.Scenario `yaml:"scenarios"`
}

// DefaultConfig returns the default configuration: the EV fleet-scaling
// ladder against an in-cluster cuOpt service.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:    "http://cuopt-service:8000",
		OutputDir:   ".",
		ReportFile:  "report.json",
		Concurrency: 1,
		GracePeriod: 30 * time.Second,
		Scenarios: []model.Scenario{
			{Name: "EV-Fleet-10v", Vehicles: 10, Locations: 15, VehicleCapacity: 50, TimeLimitSeconds: 10, Repetitions: 5},
			{Name: "EV-Fleet-25v", Vehicles: 25, Locations: 40, VehicleCapacity: 50, TimeLimitSeconds: 10, Repetitions: 5},
			{Name: "EV-Fleet-50v", Vehicles: 50, Locations: 75, VehicleCapacity: 50, TimeLimitSeconds: 20, Repetitions: 5},
			{Name: "EV-Fleet-100v", Vehicles: 100, Locations: 150, VehicleCapacity: 50, TimeLimitSeconds: 30, Repetitions: 5},
			{Name: "EV-Fleet-200v", Vehicles: 200, Locations: 300, VehicleCapacity: 50, TimeLimitSeconds: 60, Repetitions: 3},
			{Name: "EV-Fleet-500v", Vehicles: 500, Locations: 750, VehicleCapacity: 50, TimeLimitSeconds: 120, Repetitions: 3},
		},
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		// Search for defaults
		defaults := []string{"fleet_bench.yaml", "fleet_bench.yml", "benchmark.yaml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name // record which file we loaded
				found = true
				break
			}
		}
		if !found {
			// No config file found, return default
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the config for shapes the benchmark cannot run.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", c.Concurrency)
	}
	if c.GracePeriod < 0 {
		return fmt.Errorf("grace_period must not be negative")
	}
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario is required")
	}
	seen := make(map[string]bool, len(c.Scenarios))
	for i, s := range c.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenario %d: name must not be empty", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("scenario %q: duplicate name", s.Name)
		}
		seen[s.Name] = true
		if s.Vehicles < 1 {
			return fmt.Errorf("scenario %q: vehicles must be >= 1", s.Name)
		}
		if s.Locations < 2 {
			return fmt.Errorf("scenario %q: locations must be >= 2", s.Name)
		}
		if s.ChargingStations < 0 {
			return fmt.Errorf("scenario %q: charging_stations must not be negative", s.Name)
		}
		if s.Tasks() < 1 {
			return fmt.Errorf("scenario %q: locations must leave at least one task (locations - 1 - charging_stations >= 1)", s.Name)
		}
		if s.TimeLimitSeconds < 1 {
			return fmt.Errorf("scenario %q: time_limit_seconds must be >= 1", s.Name)
		}
		if s.Repetitions < 0 {
			return fmt.Errorf("scenario %q: repetitions must not be negative", s.Name)
		}
		if s.IterationLimit < 0 {
			return fmt.Errorf("scenario %q: iteration_limit must not be negative", s.Name)
		}
	}
	return nil
}

// FilterScenarios narrows the scenario set to the given names, in the
// order given. Unknown names are an error so typos fail loudly.
func (c *Config) FilterScenarios(names []string) error {
	if len(names) == 0 {
		return nil
	}
	byName := make(map[string]model.Scenario, len(c.Scenarios))
	for _, s := range c.Scenarios {
		byName[s.Name] = s
	}
	var filtered []model.Scenario
	for _, name := range names {
		s, ok := byName[name]
		if !ok {
			return fmt.Errorf("unknown scenario %q", name)
		}
		filtered = append(filtered, s)
	}
	c.Scenarios = filtered
	return nil
}
