package solver

import (
	"math/rand"
	"sort"

	"delivery-route-service/internal/domain"
)

// pickFarthestSeeds chooses k stations to act as cluster centers using
// farthest-first traversal: the first seed is drawn (with an RNG tie-break)
// from the three stations farthest from the hub, and each subsequent seed is
// the station maximizing its minimum distance to the seeds already chosen.
func pickFarthestSeeds(o *Oracle, pool []*domain.Station, k int, hubID string, rng *rand.Rand) []*domain.Station {
	if k <= 0 || len(pool) == 0 {
		return nil
	}
	if k > len(pool) {
		k = len(pool)
	}

	byHubDist := make([]*domain.Station, len(pool))
	copy(byHubDist, pool)
	sort.Slice(byHubDist, func(i, j int) bool {
		return o.Distance(hubID, byHubDist[i].ID) > o.Distance(hubID, byHubDist[j].ID)
	})

	topN := 3
	if topN > len(byHubDist) {
		topN = len(byHubDist)
	}
	seeds := []*domain.Station{byHubDist[rng.Intn(topN)]}

	isSeed := func(s *domain.Station) bool {
		for _, seed := range seeds {
			if seed.ID == s.ID {
				return true
			}
		}
		return false
	}

	for len(seeds) < k {
		var best []*domain.Station
		bestMinDist := -1.0
		for _, station := range pool {
			if isSeed(station) {
				continue
			}
			minDist := minDistanceToSeeds(o, station, seeds)
			switch {
			case minDist > bestMinDist+domain.Epsilon:
				best = []*domain.Station{station}
				bestMinDist = minDist
			case abs(minDist-bestMinDist) <= domain.Epsilon:
				best = append(best, station)
			}
		}
		if len(best) == 0 {
			break
		}
		seeds = append(seeds, best[rng.Intn(len(best))])
	}

	return seeds
}

func minDistanceToSeeds(o *Oracle, station *domain.Station, seeds []*domain.Station) float64 {
	min := -1.0
	for _, seed := range seeds {
		d := o.Distance(station.ID, seed.ID)
		if min < 0 || d < min {
			min = d
		}
	}
	return min
}

// clusterBySeeds assigns every pool station to its nearest seed, breaking
// ties uniformly at random among equally near seeds.
func clusterBySeeds(o *Oracle, pool []*domain.Station, seeds []*domain.Station, rng *rand.Rand) map[string][]*domain.Station {
	clusters := make(map[string][]*domain.Station, len(seeds))
	for _, seed := range seeds {
		clusters[seed.ID] = nil
	}

	for _, station := range pool {
		var nearest []*domain.Station
		bestDist := -1.0
		for _, seed := range seeds {
			d := o.Distance(station.ID, seed.ID)
			switch {
			case bestDist < 0 || d < bestDist-domain.Epsilon:
				nearest = []*domain.Station{seed}
				bestDist = d
			case abs(d-bestDist) <= domain.Epsilon:
				nearest = append(nearest, seed)
			}
		}
		chosen := nearest[rng.Intn(len(nearest))]
		clusters[chosen.ID] = append(clusters[chosen.ID], station)
	}

	return clusters
}

// BuildClusterCandidate pairs farthest-first clusters (heaviest first) with
// vehicles (largest capacity first), building and 2-opt-improving a route
// per pair.
func BuildClusterCandidate(o *Oracle, hubID string, stations []*domain.Station, vehicles []domain.Vehicle, costPerKm float64, objective Objective, rng *rand.Rand) *Candidate {
	pool := domain.CloneStations(stations)

	seeds := pickFarthestSeeds(o, pool, len(vehicles), hubID, rng)
	clusterMap := clusterBySeeds(o, pool, seeds, rng)

	type cluster struct {
		stations []*domain.Station
		weight   float64
	}
	clusters := make([]cluster, 0, len(seeds))
	for _, seed := range seeds {
		members := clusterMap[seed.ID]
		weight := 0.0
		for _, s := range members {
			weight += s.WeightKg
		}
		clusters = append(clusters, cluster{stations: members, weight: weight})
	}
	sort.Slice(clusters, func(i, j int) bool { return clusters[i].weight > clusters[j].weight })

	fleet := make([]domain.Vehicle, len(vehicles))
	copy(fleet, vehicles)
	sort.Slice(fleet, func(i, j int) bool { return fleet[i].CapacityKg > fleet[j].CapacityKg })

	var vehicleRoutes []VehicleRoute
	twoOptIterations := 0
	for i, cl := range clusters {
		if i >= len(fleet) || len(cl.stations) == 0 {
			continue
		}
		vehicle := fleet[i]
		route := BuildGreedyRoute(o, hubID, cl.stations, vehicle.CapacityKg, objective, nil)
		var it int
		route, it = TwoOpt(o, route, hubID)
		twoOptIterations += it
		vehicleRoutes = append(vehicleRoutes, VehicleRoute{Vehicle: vehicle, Route: route})
	}

	c := BuildCandidate(o, hubID, costPerKm, vehicleRoutes, pool)
	c.Strategy = "cluster"
	c.TwoOptIterations = twoOptIterations
	return c
}
