package solver

import (
	"testing"

	"delivery-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHub() domain.HubInfo {
	return domain.HubInfo{ID: "hub", Name: "Main Hub", Lat: 41.0, Lon: 29.0}
}

func sampleStations() []domain.StationInput {
	return []domain.StationInput{
		{
			ID: "st-1", Name: "Station 1", Code: "S1", Lat: 41.01, Lon: 29.01,
			CargoCount: 2, TotalWeightKg: 120,
			Cargos: []domain.Cargo{
				{ID: "c1", UserID: "u1", WeightKg: 80},
				{ID: "c2", UserID: "u2", WeightKg: 40},
			},
		},
		{
			ID: "st-2", Name: "Station 2", Code: "S2", Lat: 41.05, Lon: 29.08,
			CargoCount: 1, TotalWeightKg: 300,
			Cargos: []domain.Cargo{
				{ID: "c3", UserID: "u3", WeightKg: 300},
			},
		},
		{
			ID: "st-3", Name: "Station 3", Code: "S3", Lat: 40.95, Lon: 28.9,
			CargoCount: 0, TotalWeightKg: 0,
		},
	}
}

func sampleProblem(problemType string, vehicles []domain.VehicleInput) *domain.Problem {
	return &domain.Problem{
		PlanDate:    "2026-07-29",
		ProblemType: problemType,
		Hub:         sampleHub(),
		Stations:    sampleStations(),
		Vehicles:    vehicles,
		Parameters: domain.Parameters{
			CostPerKm:        1.0,
			RentalCost:       200,
			RentalCapacityKg: 500,
		},
		DistanceMatrix: map[string]domain.DistanceMatrixEntry{},
	}
}

func TestOracleIdentityAndFallback(t *testing.T) {
	hub := sampleHub()
	stations := sampleStations()
	o := NewOracle(map[string]domain.DistanceMatrixEntry{}, hub, stations)

	assert.Equal(t, 0.0, o.Distance("st-1", "st-1"))
	assert.Greater(t, o.Distance("hub", "st-1"), 0.0)
	assert.Equal(t, unknownDistanceKm, o.Distance("hub", "does-not-exist"))
}

func TestOracleDirectAndReverseKey(t *testing.T) {
	hub := sampleHub()
	stations := sampleStations()
	matrix := map[string]domain.DistanceMatrixEntry{
		"hub_st-1": {DistanceKm: 12.5, DurationMinutes: 20, Polyline: "abc"},
	}
	o := NewOracle(matrix, hub, stations)

	assert.Equal(t, 12.5, o.Distance("hub", "st-1"))
	assert.Equal(t, 12.5, o.Distance("st-1", "hub"), "reverse lookup should fall back to the direct key")
}

func TestBuildGreedyRouteRespectsCapacity(t *testing.T) {
	hub := sampleHub()
	stations := sampleStations()
	o := NewOracle(map[string]domain.DistanceMatrixEntry{}, hub, stations)

	pool := []*domain.Station{
		domain.CloneStations([]*domain.Station{stationFromInput(stations[0])})[0],
		domain.CloneStations([]*domain.Station{stationFromInput(stations[1])})[0],
	}

	route := BuildGreedyRoute(o, "hub", pool, 150, ObjectiveNone, nil)

	totalWeight := RouteWeightKg(route)
	assert.LessOrEqual(t, totalWeight, 150.0+domain.Epsilon)
}

func TestBuildGreedyRouteSplitsCargoAcrossVehicles(t *testing.T) {
	hub := sampleHub()
	stations := sampleStations()
	o := NewOracle(map[string]domain.DistanceMatrixEntry{}, hub, stations)

	station := stationFromInput(stations[0])
	pool := []*domain.Station{station}

	first := BuildGreedyRoute(o, "hub", pool, 80, ObjectiveNone, nil)
	require.Equal(t, 80.0, RouteWeightKg(first))

	remaining := activeStations(pool)
	require.Len(t, remaining, 1)
	second := BuildGreedyRoute(o, "hub", remaining, 80, ObjectiveNone, nil)
	require.Equal(t, 40.0, RouteWeightKg(second))
}

func TestTwoOptNeverWorsensDistance(t *testing.T) {
	hub := sampleHub()
	stations := sampleStations()
	o := NewOracle(map[string]domain.DistanceMatrixEntry{}, hub, stations)

	pool := stationsFromInputs(stations)
	route := BuildGreedyRoute(o, "hub", pool, 1000, ObjectiveNone, nil)
	before := RouteDistanceKm(o, route, "hub")

	improved, _ := TwoOpt(o, route, "hub")
	after := RouteDistanceKm(o, improved, "hub")

	assert.LessOrEqual(t, after, before+domain.Epsilon)
}

func TestSolveUnlimitedCoversAllCargo(t *testing.T) {
	problem := sampleProblem("unlimited_vehicles", []domain.VehicleInput{
		{ID: "v1", Name: "Truck 1", CapacityKg: 200, Ownership: "owned"},
	})

	result := Solve(problem)

	require.True(t, result.Success)
	assert.Empty(t, result.Unassigned)
	assert.Equal(t, 3, result.Summary.TotalCargos)
}

func TestSolveLimitedMayLeaveCargoUnassigned(t *testing.T) {
	problem := sampleProblem("limited_vehicles_max_count", []domain.VehicleInput{
		{ID: "v1", Name: "Small Van", CapacityKg: 100, Ownership: "owned"},
	})

	result := Solve(problem)

	require.True(t, result.Success)
	assert.LessOrEqual(t, result.Summary.TotalCargos, 3)
}

func TestLimitedObjectiveSuffixMatching(t *testing.T) {
	assert.Equal(t, ObjectiveMaxWeight, limitedObjective("limited_vehicles_max_weight"))
	assert.Equal(t, ObjectiveMaxWeight, limitedObjective("limited_vehicles_total_weight"))
	assert.Equal(t, ObjectiveMaxWeight, limitedObjective("limited_vehicles_total_kg"))
	assert.Equal(t, ObjectiveMaxCount, limitedObjective("limited_vehicles_max_count"))
	assert.Equal(t, ObjectiveMaxCount, limitedObjective("limited_vehicles"))
}

func TestSolveNoCargo(t *testing.T) {
	problem := sampleProblem("unlimited_vehicles", []domain.VehicleInput{
		{ID: "v1", Name: "Truck 1", CapacityKg: 200, Ownership: "owned"},
	})
	problem.Stations = []domain.StationInput{{ID: "st-1", Name: "Empty", CargoCount: 0}}

	result := Solve(problem)

	require.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Equal(t, domain.ErrNoCargo, result.Error.Code)
}

func TestSolveNoVehicles(t *testing.T) {
	problem := sampleProblem("limited_vehicles", nil)

	result := Solve(problem)

	require.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Equal(t, domain.ErrNoVehicles, result.Error.Code)
}

func TestSeededRNGDeterministic(t *testing.T) {
	a := SeededRNG("2026-07-29", "unlimited", 2, 1, 0)
	b := SeededRNG("2026-07-29", "unlimited", 2, 1, 0)

	assert.Equal(t, a.Int63(), b.Int63())
}

func TestResultRoundingPrecision(t *testing.T) {
	problem := sampleProblem("unlimited_vehicles", []domain.VehicleInput{
		{ID: "v1", Name: "Truck 1", CapacityKg: 500, Ownership: "owned"},
	})

	result := Solve(problem)

	require.True(t, result.Success)
	for _, route := range result.Routes {
		assert.Equal(t, round3(route.TotalDistanceKm), route.TotalDistanceKm)
		assert.Equal(t, round2(route.TotalCost), route.TotalCost)
		assert.Equal(t, round1(route.CapacityUtilization), route.CapacityUtilization)
	}
}

func stationFromInput(in domain.StationInput) *domain.Station {
	s := &domain.Station{
		ID:     in.ID,
		Name:   in.Name,
		Code:   in.Code,
		Lat:    in.Lat,
		Lon:    in.Lon,
		Cargos: append([]domain.Cargo(nil), in.Cargos...),
	}
	s.RefreshTotals()
	return s
}

func stationsFromInputs(inputs []domain.StationInput) []*domain.Station {
	var out []*domain.Station
	for _, in := range inputs {
		if in.CargoCount == 0 {
			continue
		}
		out = append(out, stationFromInput(in))
	}
	return out
}
