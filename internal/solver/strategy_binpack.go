package solver

import (
	"sort"

	"delivery-route-service/internal/domain"
)

// BuildBinpackCandidate packs whole stations into vehicle buckets using
// best-fit-decreasing: stations are placed heaviest first, each into the
// bucket whose remaining capacity is smallest while still fitting the
// station's weight, or (if none fits) into the bucket with the most
// remaining capacity. Each bucket is then routed independently. Packing
// order is fully deterministic; no RNG is needed.
func BuildBinpackCandidate(o *Oracle, hubID string, stations []*domain.Station, vehicles []domain.Vehicle, costPerKm float64, objective Objective) *Candidate {
	pool := domain.CloneStations(stations)

	ordered := make([]*domain.Station, len(pool))
	copy(ordered, pool)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].WeightKg > ordered[j].WeightKg })

	fleet := make([]domain.Vehicle, len(vehicles))
	copy(fleet, vehicles)
	sort.Slice(fleet, func(i, j int) bool { return fleet[i].CapacityKg > fleet[j].CapacityKg })

	buckets := make([][]*domain.Station, len(fleet))
	remaining := make([]float64, len(fleet))
	for i, v := range fleet {
		remaining[i] = v.CapacityKg
	}

	for _, station := range ordered {
		if len(fleet) == 0 {
			break
		}
		bestIdx := -1
		bestRemaining := -1.0
		for i := range fleet {
			if station.WeightKg <= remaining[i]+domain.Epsilon {
				if bestIdx == -1 || remaining[i] < bestRemaining {
					bestIdx = i
					bestRemaining = remaining[i]
				}
			}
		}
		if bestIdx == -1 {
			// Nothing fits outright; defer to the bucket with the most
			// room and let the greedy builder split the station's cargo.
			maxIdx := 0
			for i := range remaining {
				if remaining[i] > remaining[maxIdx] {
					maxIdx = i
				}
			}
			bestIdx = maxIdx
		}
		buckets[bestIdx] = append(buckets[bestIdx], station)
		remaining[bestIdx] -= station.WeightKg
	}

	var vehicleRoutes []VehicleRoute
	twoOptIterations := 0
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		vehicle := fleet[i]
		route := BuildGreedyRoute(o, hubID, bucket, vehicle.CapacityKg, objective, nil)
		var it int
		route, it = TwoOpt(o, route, hubID)
		twoOptIterations += it
		vehicleRoutes = append(vehicleRoutes, VehicleRoute{Vehicle: vehicle, Route: route})
	}

	c := BuildCandidate(o, hubID, costPerKm, vehicleRoutes, pool)
	c.Strategy = "binpack"
	c.TwoOptIterations = twoOptIterations
	return c
}
