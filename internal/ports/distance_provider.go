package ports

import (
	"context"

	"delivery-route-service/internal/domain"
)

// DistanceResult is one edge's distance, duration, and (optionally) polyline
// between two locations, as returned by an external routing backend.
type DistanceResult struct {
	DistanceKm      float64
	DurationMinutes float64
	Polyline        string
}

// Location is an addressable point the distance backend can route between:
// a stable id (used for caching) paired with its resolved coordinates. The
// id may be an address string awaiting geocoding or a station/hub id whose
// coordinates are already known.
type Location struct {
	ID     string
	Coords domain.Coordinates
}

// DistanceProvider is the contract for retrieving travel distance and
// duration between two locations from an external routing backend. It backs
// the distance-matrix gap-filling adapter: the solver itself only ever reads
// a fully precomputed domain.Problem.DistanceMatrix and never calls out.
type DistanceProvider interface {
	GetDistance(ctx context.Context, origin, destination Location) (DistanceResult, error)
}
