package solver

import (
	"sort"

	"delivery-route-service/internal/domain"
)

type cargoItem struct {
	cargoID   string
	stationID string
	weightKg  float64
}

// BuildPackCandidate flattens every station's cargo into individual items,
// sorts them by the objective (lightest first for max_count, heaviest first
// for max_weight), and best-fit-decreases them into per-vehicle allow-lists
// before routing. It is the only strategy that operates below station
// granularity, which is what lets a limited fleet take the single heaviest
// or most numerous cargos out of a station without taking the whole stop.
func BuildPackCandidate(o *Oracle, hubID string, stations []*domain.Station, vehicles []domain.Vehicle, costPerKm float64, objective Objective) *Candidate {
	pool := domain.CloneStations(stations)

	var items []cargoItem
	for _, s := range pool {
		for _, c := range s.Cargos {
			items = append(items, cargoItem{cargoID: c.ID, stationID: s.ID, weightKg: c.WeightKg})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if objective == ObjectiveMaxWeight {
			return items[i].weightKg > items[j].weightKg
		}
		return items[i].weightKg < items[j].weightKg
	})

	fleet := make([]domain.Vehicle, len(vehicles))
	copy(fleet, vehicles)
	sort.Slice(fleet, func(i, j int) bool { return fleet[i].CapacityKg > fleet[j].CapacityKg })

	allowed := make([]map[string]struct{}, len(fleet))
	remaining := make([]float64, len(fleet))
	for i, v := range fleet {
		allowed[i] = make(map[string]struct{})
		remaining[i] = v.CapacityKg
	}

	for _, item := range items {
		if len(fleet) == 0 {
			break
		}
		bestIdx := -1
		bestRemaining := -1.0
		for i := range fleet {
			if item.weightKg <= remaining[i]+domain.Epsilon {
				if bestIdx == -1 || remaining[i] < bestRemaining {
					bestIdx = i
					bestRemaining = remaining[i]
				}
			}
		}
		if bestIdx == -1 {
			continue
		}
		allowed[bestIdx][item.cargoID] = struct{}{}
		remaining[bestIdx] -= item.weightKg
	}

	var vehicleRoutes []VehicleRoute
	twoOptIterations := 0
	for i, vehicle := range fleet {
		if len(allowed[i]) == 0 {
			continue
		}
		route := BuildGreedyRoute(o, hubID, activeStations(pool), vehicle.CapacityKg, objective, allowed[i])
		if len(route) == 0 {
			continue
		}
		var it int
		route, it = TwoOpt(o, route, hubID)
		twoOptIterations += it
		vehicleRoutes = append(vehicleRoutes, VehicleRoute{Vehicle: vehicle, Route: route})
	}

	c := BuildCandidate(o, hubID, costPerKm, vehicleRoutes, pool)
	c.Strategy = "pack"
	c.TwoOptIterations = twoOptIterations
	return c
}
