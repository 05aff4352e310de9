package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"delivery-route-service/internal/api/dto"

	"github.com/stretchr/testify/require"
)

func sampleOptimizeBody() dto.OptimizerInput {
	return dto.OptimizerInput{
		PlanDate:    "2026-07-29",
		ProblemType: "unlimited_vehicles",
		Hub:         dto.HubInfo{ID: "HUB", Name: "Depot", Latitude: 33.45, Longitude: -112.07},
		Stations: []dto.StationInfo{
			{
				ID: "s1", Name: "Station 1", Code: "S1", Latitude: 33.46, Longitude: -112.06,
				CargoCount: 1, TotalWeightKg: 10,
				Cargos: []dto.CargoInfo{{ID: "c1", WeightKg: 10, UserID: "u1"}},
			},
		},
		Vehicles: []dto.VehicleInfo{
			{ID: "v1", Name: "Van 1", PlateNumber: "AZ-1", CapacityKg: 100, Ownership: "owned"},
		},
		Parameters: dto.Parameters{CostPerKm: 1, RentalCost: 200, RentalCapacityKg: 500},
		DistanceMatrix: map[string]dto.DistanceInfo{
			"HUB_s1": {DistanceKm: 5, DurationMinutes: 10},
			"s1_HUB": {DistanceKm: 5, DurationMinutes: 10},
		},
	}
}

func TestOptimizeHandlerSolvesInlineProblem(t *testing.T) {
	h := &OptimizeHandler{}

	body, err := json.Marshal(sampleOptimizeBody())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/optimize", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Optimize(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.OptimizerOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.True(t, out.Success)
	require.Len(t, out.Routes, 1)
	require.Equal(t, 1, out.Routes[0].CargoCount)
}

func TestOptimizeHandlerRejectsMissingProblemType(t *testing.T) {
	h := &OptimizeHandler{}

	in := sampleOptimizeBody()
	in.ProblemType = ""
	body, err := json.Marshal(in)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/optimize", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Optimize(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptimizeHandlerRejectsWrongMethod(t *testing.T) {
	h := &OptimizeHandler{}

	req := httptest.NewRequest(http.MethodGet, "/optimize", nil)
	rec := httptest.NewRecorder()

	h.Optimize(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
