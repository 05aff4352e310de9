package ports

import (
	"context"

	"delivery-route-service/internal/domain"
)

// Port: a boundary for retrieving a routing problem's catalog data (hub,
// stations, vehicles) from a data source. Distinct from plan storage: this
// repository only ever reads and writes problem *input*, never a solved
// domain.Result.
type ProblemRepository interface {
	// GetHub returns the single depot every route must terminate at.
	GetHub(ctx context.Context) (domain.HubInfo, error)
	// ListStations returns every station known to the catalog, including
	// ones currently carrying no cargo.
	ListStations(ctx context.Context) ([]domain.StationInput, error)
	// ListVehicles returns every vehicle in the catalog, owned or rented.
	ListVehicles(ctx context.Context) ([]domain.VehicleInput, error)
}
