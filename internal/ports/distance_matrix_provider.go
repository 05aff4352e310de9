package ports

import (
	"context"

	"delivery-route-service/internal/domain"
)

// DistanceMatrixProvider is the batched extension of DistanceProvider used
// to backfill every missing pair in a domain.Problem's distance matrix in as
// few round trips as possible.
type DistanceMatrixProvider interface {
	DistanceProvider
	// GetDistances returns distances from one origin to many destinations,
	// keyed by destination id.
	GetDistances(ctx context.Context, origin Location, destinations []Location) (map[string]DistanceResult, error)
}

// DistanceCache stores and retrieves previously computed distance-matrix
// entries so that repeat solves against the same station set never need to
// call the external backend twice for the same pair.
type DistanceCache interface {
	Get(ctx context.Context, fromID, toID string) (domain.DistanceMatrixEntry, bool, error)
	Set(ctx context.Context, fromID, toID string, entry domain.DistanceMatrixEntry) error
}

// GeocodeCache stores and retrieves resolved coordinates for a station or
// hub identifier, avoiding a repeat geocoding lookup for the same address.
type GeocodeCache interface {
	Get(ctx context.Context, locationID string) (domain.Coordinates, bool, error)
	Set(ctx context.Context, locationID string, coords domain.Coordinates) error
}
