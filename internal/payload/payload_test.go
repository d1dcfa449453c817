package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuopt-oci/fleet-bench/internal/model"
)

func testScenario() model.Scenario {
	return model.Scenario{
		Name:             "EV-Fleet-10v",
		Vehicles:         10,
		Locations:        15,
		VehicleCapacity:  50,
		TimeLimitSeconds: 10,
		Repetitions:      3,
	}
}

func TestCostMatrixShape(t *testing.T) {
	matrix := CostMatrix(15, nil)

	require.Len(t, matrix, 15)
	for i, row := range matrix {
		require.Len(t, row, 15)
		assert.Zero(t, matrix[i][i], "diagonal must be zero")
		for j, d := range row {
			assert.GreaterOrEqual(t, d, 0, "entry [%d][%d] must be non-negative", i, j)
			assert.Equal(t, matrix[j][i], d, "matrix must be symmetric at [%d][%d]", i, j)
			if i != j {
				assert.GreaterOrEqual(t, d, minDistance)
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	s := testScenario()

	first := Build(s, 0)
	second := Build(s, 0)
	assert.Equal(t, first, second, "unseeded payloads must be identical across calls")

	seededA := Build(s, 42)
	seededB := Build(s, 42)
	assert.Equal(t, seededA, seededB, "same seed must reproduce the same payload")

	assert.NotEqual(t, first.CostMatrixData, seededA.CostMatrixData,
		"a seed should change the generated matrix")
}

func TestBuildSeededMatrixStaysWellFormed(t *testing.T) {
	matrix := Build(testScenario(), 7).CostMatrixData.Data["0"]

	require.Len(t, matrix, 15)
	for i := range matrix {
		assert.Zero(t, matrix[i][i])
		for j := range matrix[i] {
			assert.Equal(t, matrix[j][i], matrix[i][j])
			assert.GreaterOrEqual(t, matrix[i][j], 0)
		}
	}
}

func TestBuildFleetAndTasks(t *testing.T) {
	s := testScenario()
	p := Build(s, 0)

	require.Contains(t, p.CostMatrixData.Data, "0")

	require.Len(t, p.FleetData.VehicleLocations, s.Vehicles)
	for _, loc := range p.FleetData.VehicleLocations {
		assert.Equal(t, []int{0, 0}, loc, "all vehicles start at the depot")
	}
	require.Len(t, p.FleetData.Capacities, 1)
	require.Len(t, p.FleetData.Capacities[0], s.Vehicles)
	for _, c := range p.FleetData.Capacities[0] {
		assert.Equal(t, s.VehicleCapacity, c)
	}
	require.Len(t, p.FleetData.VehicleTimeWindows, s.Vehicles)

	wantTasks := s.Locations - 1
	require.Len(t, p.TaskData.TaskLocations, wantTasks)
	for i, loc := range p.TaskData.TaskLocations {
		assert.Equal(t, i+1, loc, "tasks start after the depot")
	}
	require.Len(t, p.TaskData.Demand, 1)
	require.Len(t, p.TaskData.Demand[0], wantTasks)
	for _, d := range p.TaskData.Demand[0] {
		assert.Positive(t, d)
	}
	require.Len(t, p.TaskData.ServiceTimes, wantTasks)
	require.Len(t, p.TaskData.TaskTimeWindows, wantTasks)

	assert.Equal(t, s.TimeLimitSeconds, p.SolverConfig.TimeLimit)
}

func TestBuildChargingStationsCarryNoTasks(t *testing.T) {
	s := testScenario()
	s.ChargingStations = 4

	p := Build(s, 0)

	// Matrix still covers every location including charging stations.
	require.Len(t, p.CostMatrixData.Data["0"], s.Locations)

	wantTasks := s.Locations - 1 - s.ChargingStations
	assert.Len(t, p.TaskData.TaskLocations, wantTasks)
	assert.Len(t, p.TaskData.Demand[0], wantTasks)

	// Charging stations occupy the tail indices and are never tasked.
	for _, loc := range p.TaskData.TaskLocations {
		assert.Less(t, loc, s.Locations-s.ChargingStations)
	}
}

// The request field names are a fixed external contract; renaming any of
// them breaks the solver API.
func TestRequestWireFormat(t *testing.T) {
	body, err := json.Marshal(Build(testScenario(), 0))
	require.NoError(t, err)

	for _, key := range []string{
		`"cost_matrix_data"`, `"data"`, `"fleet_data"`, `"vehicle_locations"`,
		`"capacities"`, `"task_data"`, `"task_locations"`, `"demand"`,
		`"solver_config"`, `"time_limit"`,
	} {
		assert.Contains(t, string(body), key)
	}
}

func TestBuildDefaultCapacity(t *testing.T) {
	s := testScenario()
	s.VehicleCapacity = 0

	p := Build(s, 0)
	for _, c := range p.FleetData.Capacities[0] {
		assert.Equal(t, defaultCapacity, c)
	}
}
