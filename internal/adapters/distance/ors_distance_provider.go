package distance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"
	"delivery-route-service/internal/ports"
)

// ORSDistanceProvider implements ports.DistanceMatrixProvider using
// OpenRouteService. It backfills gaps in a domain.Problem's distance matrix
// (stations the precomputed matrix didn't cover) by geocoding any
// address-only locations, then fetching one matrix row per origin.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - Persistent distance matrix caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSDistanceProvider struct {
	session       *http.Client
	apiKey        string
	baseURL       string
	profile       string
	distanceCache ports.DistanceCache
	geocodeCache  ports.GeocodeCache
}

func NewORSDistanceProvider(
	apiKey string,
	distanceCache ports.DistanceCache,
	geocodeCache ports.GeocodeCache,
) (*ORSDistanceProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSDistanceProvider{
		session:       &http.Client{Timeout: 10 * time.Second},
		apiKey:        apiKey,
		baseURL:       "https://api.openrouteservice.org",
		profile:       "driving-car",
		distanceCache: distanceCache,
		geocodeCache:  geocodeCache,
	}, nil
}

// normalize collapses whitespace in an address; it shapes the geocode query
// text and the keys of geocodeMany's result map (cache keys use the raw id).
func (o *ORSDistanceProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// GetDistance delegates to the batched path to reuse caching and matrix logic.
func (o *ORSDistanceProvider) GetDistance(ctx context.Context, origin, destination ports.Location) (ports.DistanceResult, error) {
	results, err := o.GetDistances(ctx, origin, []ports.Location{destination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get distance %q -> %q: %w", origin.ID, destination.ID, err)
	}

	result, ok := results[destination.ID]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("no distance result for %q -> %q", origin.ID, destination.ID)
	}
	return result, nil
}

// GetDistances computes distances from a single origin to many destinations,
// consulting the distance and geocode caches before calling out to ORS.
func (o *ORSDistanceProvider) GetDistances(ctx context.Context, origin ports.Location, destinations []ports.Location) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetDistances")(&err)

	if origin.ID == "" {
		return nil, errors.New("origin must be non-empty")
	}
	if len(destinations) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	destByID := make(map[string]ports.Location, len(destinations))
	for _, d := range destinations {
		if d.ID == "" || d.ID == origin.ID {
			continue
		}
		destByID[d.ID] = d
	}
	if len(destByID) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	hits := make(map[string]ports.DistanceResult)
	var misses []ports.Location
	for id, loc := range destByID {
		if o.distanceCache == nil {
			misses = append(misses, loc)
			continue
		}
		entry, ok, err := o.distanceCache.Get(ctx, origin.ID, id)
		if err != nil {
			return nil, fmt.Errorf("ORS get distance cache: %w", err)
		}
		if ok {
			hits[id] = ports.DistanceResult{DistanceKm: entry.DistanceKm, DurationMinutes: entry.DurationMinutes, Polyline: entry.Polyline}
			continue
		}
		misses = append(misses, loc)
	}

	if len(misses) == 0 {
		return hits, nil
	}

	originCoord, err := o.resolveCoords(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("resolve origin coordinates: %w", err)
	}

	missIDs := make([]string, 0, len(misses))
	missCoords := make([]domain.Coordinates, 0, len(misses))
	for _, m := range misses {
		coord, err := o.resolveCoords(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("resolve destination %q coordinates: %w", m.ID, err)
		}
		missIDs = append(missIDs, m.ID)
		missCoords = append(missCoords, coord)
	}

	fetched, err := o.fetchMatrixRow(ctx, originCoord, missIDs, missCoords)
	if err != nil {
		return nil, fmt.Errorf("fetching matrix row: %w", err)
	}

	if o.distanceCache != nil {
		for id, r := range fetched {
			entry := domain.DistanceMatrixEntry{DistanceKm: r.DistanceKm, DurationMinutes: r.DurationMinutes, Polyline: r.Polyline}
			if err := o.distanceCache.Set(ctx, origin.ID, id, entry); err != nil {
				log.Printf("distance cache write failed for %q -> %q: %v", origin.ID, id, err)
			}
		}
	}

	out := make(map[string]ports.DistanceResult, len(hits)+len(fetched))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fetched {
		out[k] = v
	}
	return out, nil
}

// resolveCoords returns loc's coordinates directly if known, otherwise
// treats loc.ID as an address and geocodes it (through the geocode cache).
func (o *ORSDistanceProvider) resolveCoords(ctx context.Context, loc ports.Location) (domain.Coordinates, error) {
	if loc.Coords != (domain.Coordinates{}) {
		return loc.Coords, nil
	}

	if o.geocodeCache != nil {
		if coords, ok, err := o.geocodeCache.Get(ctx, loc.ID); err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode cache: %w", err)
		} else if ok {
			return coords, nil
		}
	}

	resolved, err := o.geocodeMany(ctx, []string{loc.ID})
	if err != nil {
		return domain.Coordinates{}, err
	}
	coords, ok := resolved[o.normalize(loc.ID)]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("no coordinates resolved for %q", loc.ID)
	}

	if o.geocodeCache != nil {
		if err := o.geocodeCache.Set(ctx, loc.ID, coords); err != nil {
			log.Printf("geocode cache write failed for %q: %v", loc.ID, err)
		}
	}
	return coords, nil
}
