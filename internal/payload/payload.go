/*
PURPOSE:
  Builds cuOpt optimization request payloads from benchmark scenarios.
  Pure functions: the same scenario and seed always produce the same bytes,
  so payload construction is unit-testable without network access.

REQUIREMENTS:
  User-specified:
  - Cost matrix must be square (Locations x Locations), symmetric,
    zero-diagonal, non-negative, with distances scaled by location count.
  - No randomness unless a seed is explicitly configured.

  Implementation-discovered:
  - The cuOpt API wraps the matrix under cost_matrix_data.data keyed by
    vehicle type ("0" for a homogeneous fleet).
  - Demands, service times and time windows are per task, where
    tasks = Locations - 1 - ChargingStations (depot and charging
    stations carry no task).

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (runner builds one payload per attempt)
  - Consumes: internal/model.Scenario

ERROR HANDLING:
  - None. Scenario validation happens at config load; Build assumes a
    valid scenario.

IMPLEMENTATION RULES:
  - Typed structs with JSON tags; the wire schema is a fixed external
    contract, do not rename fields.
  - Seed 0 uses arithmetic generation; a non-zero seed switches to a
    seeded math/rand stream (still symmetric, still zero-diagonal).

USAGE:
  p := payload.Build(scenario, 0)
  body, _ := json.Marshal(p)

RELATED FILES:
  - internal/engine/client.go
  - internal/model/types.go

MAINTENANCE:
  - Update when cuOpt extends the request schema.
*/

package payload

import (
	"hash/fnv"
	"math/rand"

	"github.com/cuopt-oci/fleet-bench/internal/model"
)

// Wire schema for POST /cuopt/cuopt. Field names are a fixed external
// contract.
type Request struct {
	CostMatrixData CostMatrixData `json:"cost_matrix_data"`
	FleetData      FleetData      `json:"fleet_data"`
	TaskData       TaskData       `json:"task_data"`
	SolverConfig   SolverConfig   `json:"solver_config"`
}

type CostMatrixData struct {
	// Data maps vehicle type to its cost matrix. We run a homogeneous
	// fleet, so the only key is "0".
	Data map[string][][]int `json:"data"`
}

type FleetData struct {
	VehicleLocations   [][]int `json:"vehicle_locations"`
	Capacities         [][]int `json:"capacities"`
	VehicleTimeWindows [][]int `json:"vehicle_time_windows,omitempty"`
}

type TaskData struct {
	TaskLocations   []int   `json:"task_locations"`
	Demand          [][]int `json:"demand"`
	TaskTimeWindows [][]int `json:"task_time_windows,omitempty"`
	ServiceTimes    []int   `json:"service_times,omitempty"`
}

type SolverConfig struct {
	TimeLimit      int `json:"time_limit"`
	IterationLimit int `json:"iteration_limit,omitempty"`
}

const (
	minDistance = 5
	// defaultCapacity matches the historical benchmark default when a
	// scenario does not set vehicle_capacity.
	defaultCapacity = 100

	// Working day in minutes from midnight: 08:00 - 18:00.
	dayStart = 480
	dayEnd   = 1080
)

// Build constructs the full optimization request for a scenario.
// Deterministic for a given (scenario, seed) pair.
func Build(s model.Scenario, seed int64) Request {
	capacity := s.VehicleCapacity
	if capacity == 0 {
		capacity = defaultCapacity
	}

	var rng *rand.Rand
	if seed != 0 {
		// Scenario name folded into the seed so two scenarios in the
		// same run do not see identical streams.
		rng = rand.New(rand.NewSource(seed ^ int64(nameHash(s.Name))))
	}

	tasks := s.Tasks()

	vehicleLocations := make([][]int, s.Vehicles)
	capacities := make([]int, s.Vehicles)
	vehicleWindows := make([][]int, s.Vehicles)
	for v := 0; v < s.Vehicles; v++ {
		vehicleLocations[v] = []int{0, 0} // all vehicles start and end at the depot
		capacities[v] = capacity
		vehicleWindows[v] = []int{dayStart, dayEnd}
	}

	taskLocations := make([]int, tasks)
	demands := make([]int, tasks)
	serviceTimes := make([]int, tasks)
	taskWindows := make([][]int, tasks)
	for t := 0; t < tasks; t++ {
		taskLocations[t] = t + 1 // depot is 0; charging stations occupy the tail indices
		if rng != nil {
			demands[t] = 1 + rng.Intn(10)
			serviceTimes[t] = 5 + rng.Intn(11)
			start := dayStart + rng.Intn(421)
			end := start + 60 + rng.Intn(121)
			if end > dayEnd {
				end = dayEnd
			}
			taskWindows[t] = []int{start, end}
		} else {
			demands[t] = 1 + t%10
			serviceTimes[t] = 5 + t%11
			taskWindows[t] = []int{dayStart, dayEnd}
		}
	}

	return Request{
		CostMatrixData: CostMatrixData{
			Data: map[string][][]int{"0": CostMatrix(s.Locations, rng)},
		},
		FleetData: FleetData{
			VehicleLocations:   vehicleLocations,
			Capacities:         [][]int{capacities},
			VehicleTimeWindows: vehicleWindows,
		},
		TaskData: TaskData{
			TaskLocations:   taskLocations,
			Demand:          [][]int{demands},
			TaskTimeWindows: taskWindows,
			ServiceTimes:    serviceTimes,
		},
		SolverConfig: SolverConfig{
			TimeLimit:      s.TimeLimitSeconds,
			IterationLimit: s.IterationLimit,
		},
	}
}

// CostMatrix synthesizes a symmetric zero-diagonal distance matrix.
// The distance span grows with the location count, so larger scenarios
// cover a wider metro area. A nil rng keeps generation fully arithmetic.
func CostMatrix(locations int, rng *rand.Rand) [][]int {
	span := locations // distances in [minDistance, minDistance+span]

	matrix := make([][]int, locations)
	for i := range matrix {
		matrix[i] = make([]int, locations)
	}
	for i := 0; i < locations; i++ {
		for j := i + 1; j < locations; j++ {
			var d int
			if rng != nil {
				d = minDistance + rng.Intn(span+1)
			} else {
				d = minDistance + (i*31+j*17)%(span+1)
			}
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}
	return matrix
}

func nameHash(name string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return h.Sum32()
}
