package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"delivery-route-service/internal/api/dto"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/ports"
	"delivery-route-service/internal/solver"
)

// OptimizeHandler runs the VRP solver against an inbound problem, either
// supplied inline in the request body or assembled from the configured
// ProblemRepository when the body only carries plan_date/problem_type/
// parameters.
type OptimizeHandler struct {
	Repo             ports.ProblemRepository
	DistanceProvider ports.DistanceMatrixProvider
	DefaultParams    domain.Parameters
}

// Optimize handles POST /optimize.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	problem, err := h.decodeProblem(r)
	if err != nil {
		if errors.Is(err, errCatalogUnavailable) {
			log.Printf("optimize: %v", err)
			writeError(w, r, http.StatusInternalServerError, err.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	result := solver.Solve(problem)
	elapsedMs := float64(time.Since(start).Microseconds()) / 1000.0

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, r, status, dto.FromDomain(result, elapsedMs))
}

// decodeProblem reads the request body and, when it carries a full problem
// (stations/vehicles present), converts it directly; otherwise it falls
// back to the configured repository for the hub/stations/vehicles catalog.
func (h *OptimizeHandler) decodeProblem(r *http.Request) (*domain.Problem, error) {
	var in dto.OptimizerInput

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&in); err != nil {
		return nil, errInvalidBody
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errMultipleBodies
	}

	if in.PlanDate == "" {
		return nil, errMissingPlanDate
	}
	if in.ProblemType == "" {
		return nil, errMissingProblemType
	}

	problem := in.ToDomain()

	if len(problem.Stations) == 0 || len(problem.Vehicles) == 0 {
		if h.Repo == nil {
			return nil, errNoCatalog
		}
		if err := h.fillFromRepo(r.Context(), problem); err != nil {
			return nil, err
		}
	}

	applyParameterDefaults(&problem.Parameters, h.DefaultParams)

	if h.DistanceProvider != nil {
		if err := backfillDistanceMatrix(r.Context(), h.DistanceProvider, problem); err != nil {
			log.Printf("distance matrix backfill failed: %v", err)
		}
	}

	return problem, nil
}

func (h *OptimizeHandler) fillFromRepo(ctx context.Context, problem *domain.Problem) error {
	hub, err := h.Repo.GetHub(ctx)
	if err != nil {
		return errCatalogUnavailable
	}
	stations, err := h.Repo.ListStations(ctx)
	if err != nil {
		return errCatalogUnavailable
	}
	vehicles, err := h.Repo.ListVehicles(ctx)
	if err != nil {
		return errCatalogUnavailable
	}

	problem.Hub = hub
	problem.Stations = stations
	problem.Vehicles = vehicles
	return nil
}
