package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

const geocodeConcurrency = 5

// geocodeMany resolves addresses individually using OpenRouteService
// (/geocode/search). Lookups run concurrently, capped at
// geocodeConcurrency in flight, via errgroup rather than a hand-rolled
// semaphore+WaitGroup pair.
func (o *ORSDistanceProvider) geocodeMany(ctx context.Context, addresses []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.geocodeMany")(&err)

	endpoint := o.baseURL + "/geocode/search"

	seen := make(map[string]struct{}, len(addresses))
	unique := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		unique = append(unique, a)
	}

	resolved := atomic.NewInt64(0)
	out := make(map[string]domain.Coordinates, len(unique))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(geocodeConcurrency)

	for _, address := range unique {
		address := address
		group.Go(func() error {
			coords, err := o.geocodeOne(groupCtx, endpoint, address)
			if err != nil {
				return fmt.Errorf("geocode %q: %w", address, err)
			}
			mu.Lock()
			out[o.normalize(address)] = coords
			mu.Unlock()
			resolved.Inc()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	log.Printf("ors geocode: resolved %d/%d addresses", resolved.Load(), len(unique))
	return out, nil
}

func (o *ORSDistanceProvider) geocodeOne(ctx context.Context, endpoint, address string) (domain.Coordinates, error) {
	norm := o.normalize(address)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("boundary.country", "US")
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", address)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", address)
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}
