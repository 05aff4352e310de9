package handlers

import (
	"net/http"

	"delivery-route-service/internal/api/dto"
	"delivery-route-service/internal/ports"
)

// ValidateHandler performs a dry-run construction of a problem without
// solving it. It always answers HTTP 200 with a valid flag, matching
// original_source/main.py's validate_input, which never raises an HTTP
// error.
type ValidateHandler struct {
	Repo             ports.ProblemRepository
	DistanceProvider ports.DistanceMatrixProvider
}

// Validate handles POST /validate.
func (h *ValidateHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	opt := &OptimizeHandler{Repo: h.Repo, DistanceProvider: h.DistanceProvider}
	problem, err := opt.decodeProblem(r)
	if err != nil {
		writeJSON(w, r, http.StatusOK, dto.ValidateOutput{Valid: false, Error: err.Error()})
		return
	}

	totalCargoWeight := 0.0
	for _, s := range problem.Stations {
		totalCargoWeight += s.TotalWeightKg
	}
	totalCapacity := 0.0
	for _, v := range problem.Vehicles {
		totalCapacity += v.CapacityKg
	}

	writeJSON(w, r, http.StatusOK, dto.ValidateOutput{
		Valid:                true,
		StationCount:         len(problem.Stations),
		VehicleCount:         len(problem.Vehicles),
		TotalCargoWeight:     totalCargoWeight,
		TotalVehicleCapacity: totalCapacity,
	})
}
