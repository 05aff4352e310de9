package solver

import (
	"sort"

	"delivery-route-service/internal/domain"
)

// BuildSequentialCandidate routes vehicles one at a time, largest capacity
// first, each building a greedy route against whatever remains of the
// shared station pool. Unlike the cluster and binpack strategies, a station
// may be split across more than one vehicle here since the pool is shared
// rather than partitioned up front.
func BuildSequentialCandidate(o *Oracle, hubID string, stations []*domain.Station, vehicles []domain.Vehicle, costPerKm float64, objective Objective) *Candidate {
	pool := domain.CloneStations(stations)

	fleet := make([]domain.Vehicle, len(vehicles))
	copy(fleet, vehicles)
	sort.Slice(fleet, func(i, j int) bool { return fleet[i].CapacityKg > fleet[j].CapacityKg })

	var vehicleRoutes []VehicleRoute
	twoOptIterations := 0
	for _, vehicle := range fleet {
		active := activeStations(pool)
		if len(active) == 0 {
			break
		}
		route := BuildGreedyRoute(o, hubID, active, vehicle.CapacityKg, objective, nil)
		if len(route) == 0 {
			continue
		}
		var it int
		route, it = TwoOpt(o, route, hubID)
		twoOptIterations += it
		vehicleRoutes = append(vehicleRoutes, VehicleRoute{Vehicle: vehicle, Route: route})
	}

	c := BuildCandidate(o, hubID, costPerKm, vehicleRoutes, pool)
	c.Strategy = "sequential"
	c.TwoOptIterations = twoOptIterations
	return c
}

func activeStations(pool []*domain.Station) []*domain.Station {
	out := make([]*domain.Station, 0, len(pool))
	for _, s := range pool {
		if len(s.Cargos) > 0 {
			out = append(out, s)
		}
	}
	return out
}
