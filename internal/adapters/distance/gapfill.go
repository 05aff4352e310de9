package distance

import (
	"context"
	"fmt"

	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/ports"
)

// BackfillMatrix fills every missing hub<->station and station<->station
// pair in matrix using provider, one batched GetDistances call per origin.
// The solver's Distance Oracle never calls out on its own behalf (spec.md
// section 5's purity requirement for the core); this is the one place in
// the service that may.
func BackfillMatrix(
	ctx context.Context,
	provider ports.DistanceMatrixProvider,
	hub domain.HubInfo,
	stations []domain.StationInput,
	matrix map[string]domain.DistanceMatrixEntry,
) error {
	if provider == nil {
		return nil
	}

	locations := make([]ports.Location, 0, len(stations)+1)
	locations = append(locations, ports.Location{ID: hub.ID, Coords: domain.Coordinates{Lon: hub.Lon, Lat: hub.Lat}})
	for _, s := range stations {
		locations = append(locations, ports.Location{ID: s.ID, Coords: domain.Coordinates{Lon: s.Lon, Lat: s.Lat}})
	}

	for _, origin := range locations {
		var missing []ports.Location
		for _, dest := range locations {
			if dest.ID == origin.ID {
				continue
			}
			key := origin.ID + "_" + dest.ID
			if _, ok := matrix[key]; ok {
				continue
			}
			missing = append(missing, dest)
		}
		if len(missing) == 0 {
			continue
		}

		results, err := provider.GetDistances(ctx, origin, missing)
		if err != nil {
			return fmt.Errorf("backfill matrix: fetch distances from %q: %w", origin.ID, err)
		}
		for destID, r := range results {
			matrix[origin.ID+"_"+destID] = domain.DistanceMatrixEntry{
				DistanceKm:      r.DistanceKm,
				DurationMinutes: r.DurationMinutes,
				Polyline:        r.Polyline,
			}
		}
	}

	return nil
}
