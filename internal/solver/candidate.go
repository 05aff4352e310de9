package solver

import "delivery-route-service/internal/domain"

// VehicleRoute pairs a vehicle with the route built for it.
type VehicleRoute struct {
	Vehicle domain.Vehicle
	Route   domain.Route
}

// Candidate is one complete attempt at solving a problem: a route per
// vehicle used, plus the stations left with cargo after every vehicle was
// routed.
type Candidate struct {
	VehicleRoutes []VehicleRoute
	Unassigned    []*domain.Station

	TotalDistanceKm     float64
	TotalCost           float64
	AssignedCargoCount  int
	AssignedWeightKg    float64
	RentedCount         int
	VehicleCount        int
	TwoOptIterations    int

	// Strategy names which constructive strategy produced this candidate
	// (cluster, binpack, sequential, pack). Stamped by the strategy
	// constructors, surfaced in the result's algorithm_info.selected.
	Strategy string
}

// BuildCandidate aggregates per-vehicle routes into a Candidate, computing
// the totals every fleet-search comparator reads.
func BuildCandidate(o *Oracle, hubID string, costPerKm float64, vehicleRoutes []VehicleRoute, stationPool []*domain.Station) *Candidate {
	c := &Candidate{VehicleRoutes: vehicleRoutes}

	for _, vr := range vehicleRoutes {
		if len(vr.Route) == 0 {
			continue
		}
		c.VehicleCount++
		if vr.Vehicle.IsRented {
			c.RentedCount++
		}
		c.TotalDistanceKm += RouteDistanceKm(o, vr.Route, hubID)
		c.TotalCost += RouteCost(o, vr.Route, hubID, vr.Vehicle, costPerKm)
		c.AssignedCargoCount += vr.Route.TotalCargoCount()
		c.AssignedWeightKg += RouteWeightKg(vr.Route)
	}

	for _, s := range stationPool {
		if len(s.Cargos) > 0 {
			c.Unassigned = append(c.Unassigned, s)
		}
	}

	return c
}

// Feasible reports whether every cargo in the pool ended up assigned.
func (c *Candidate) Feasible() bool {
	return len(c.Unassigned) == 0
}
