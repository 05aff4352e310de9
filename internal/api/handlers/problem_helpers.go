package handlers

import (
	"context"
	"errors"

	"delivery-route-service/internal/adapters/distance"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/ports"
)

var (
	errInvalidBody        = errors.New("invalid json body")
	errMultipleBodies     = errors.New("body must contain only one JSON object")
	errMissingPlanDate    = errors.New("plan_date is required")
	errMissingProblemType = errors.New("problem_type is required")
	errNoCatalog          = errors.New("stations/vehicles omitted and no catalog repository is configured")
	errCatalogUnavailable = errors.New("failed to load problem catalog")
)

// applyParameterDefaults fills zero-valued request parameters with the
// service's configured defaults (COST_PER_KM, RENTAL_COST,
// RENTAL_CAPACITY_KG env vars), matching the original service's Pydantic
// field defaults.
func applyParameterDefaults(p *domain.Parameters, defaults domain.Parameters) {
	if p.CostPerKm == 0 {
		p.CostPerKm = defaults.CostPerKm
	}
	if p.RentalCost == 0 {
		p.RentalCost = defaults.RentalCost
	}
	if p.RentalCapacityKg == 0 {
		p.RentalCapacityKg = defaults.RentalCapacityKg
	}
}

// backfillDistanceMatrix fills any hub/station pair missing from the
// problem's distance matrix using the configured external provider.
func backfillDistanceMatrix(ctx context.Context, provider ports.DistanceMatrixProvider, problem *domain.Problem) error {
	if problem.DistanceMatrix == nil {
		problem.DistanceMatrix = make(map[string]domain.DistanceMatrixEntry)
	}
	return distance.BackfillMatrix(ctx, provider, problem.Hub, problem.ActiveStations(), problem.DistanceMatrix)
}
