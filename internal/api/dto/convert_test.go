package dto

import (
	"testing"

	"delivery-route-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestOptimizerInputToDomain(t *testing.T) {
	in := OptimizerInput{
		PlanDate:    "2026-07-29",
		ProblemType: "unlimited_vehicles",
		Hub:         HubInfo{ID: "HUB", Name: "Depot", Latitude: 1, Longitude: 2},
		Stations: []StationInfo{
			{ID: "s1", Name: "Station 1", Code: "S1", Latitude: 3, Longitude: 4, CargoCount: 1, TotalWeightKg: 10,
				Cargos: []CargoInfo{{ID: "c1", WeightKg: 10, UserID: "u1"}}},
		},
		Vehicles:   []VehicleInfo{{ID: "v1", Name: "Van", CapacityKg: 100, Ownership: "owned"}},
		Parameters: Parameters{CostPerKm: 1.5},
		DistanceMatrix: map[string]DistanceInfo{
			"HUB_s1": {DistanceKm: 5, DurationMinutes: 10},
		},
	}

	problem := in.ToDomain()

	require.Equal(t, "2026-07-29", problem.PlanDate)
	require.Equal(t, "HUB", problem.Hub.ID)
	require.Len(t, problem.Stations, 1)
	require.Equal(t, "c1", problem.Stations[0].Cargos[0].ID)
	require.Equal(t, 1.5, problem.Parameters.CostPerKm)
	require.Equal(t, 5.0, problem.DistanceMatrix["HUB_s1"].DistanceKm)
}

func TestFromDomainMapsErrorAndSummary(t *testing.T) {
	res := &domain.Result{
		Success:     false,
		ProblemType: "unlimited_vehicles",
		Error:       &domain.ErrorInfo{Code: domain.ErrNoCargo, Message: "no cargo to deliver"},
		AlgorithmInfo: domain.AlgorithmInfo{
			Name: "Greedy + 2-opt",
		},
	}

	out := FromDomain(res, 12.5)

	require.False(t, out.Success)
	require.NotNil(t, out.Error)
	require.Equal(t, domain.ErrNoCargo, out.Error.Code)
	require.Nil(t, out.Summary)
	require.Equal(t, 12.5, out.AlgorithmInfo["execution_time_ms"])
}
