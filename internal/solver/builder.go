package solver

import (
	"math"
	"sort"

	"delivery-route-service/internal/domain"
)

// Objective selects the tie-breaking and cargo-ordering behavior of the
// Greedy Route Builder. The zero value (ObjectiveNone) disables both.
type Objective string

const (
	ObjectiveNone      Objective = ""
	ObjectiveMaxCount  Objective = "max_count"
	ObjectiveMaxWeight Objective = "max_weight"
)

// BuildGreedyRoute constructs one vehicle's route by reverse nearest-neighbor
// starting from the hub and working outward: the first station chosen is the
// one closest to the hub (the last pickup in travel order), and so on. The
// returned route is in actual travel order (reverse of the selection order).
//
// available stations are mutated in place (cargos are popped off as they are
// assigned) — callers must pass a private copy per candidate attempt.
// allowedCargoIDs, if non-nil, restricts which cargos may be picked up.
func BuildGreedyRoute(o *Oracle, hubID string, available []*domain.Station, capacityKg float64, objective Objective, allowedCargoIDs map[string]struct{}) domain.Route {
	candidates := make([]*domain.Station, len(available))
	copy(candidates, available)
	for _, st := range candidates {
		st.RefreshTotals()
	}

	var routeRev []domain.StopAssignment
	currentWeight := 0.0
	currentPos := hubID

	for len(candidates) > 0 {
		remainingCap := capacityKg - currentWeight
		if remainingCap <= domain.Epsilon {
			break
		}

		best, bestCargoOrder := pickNextStation(o, currentPos, candidates, remainingCap, objective, allowedCargoIDs)
		if best == nil {
			break
		}

		sortStationCargos(best, bestCargoOrder)

		assigned, assignedWeight := popFittingCargos(best, remainingCap, allowedCargoIDs)
		if len(assigned) == 0 {
			// Defensive: should be rare since pickNextStation already filtered
			// by fit, but guards against an inconsistent allow-list.
			candidates = removeStation(candidates, best)
			continue
		}

		best.RefreshTotals()
		routeRev = append(routeRev, domain.StopAssignment{
			Station:  best,
			Cargos:   assigned,
			WeightKg: round2(assignedWeight),
		})
		currentWeight += assignedWeight
		currentPos = best.ID

		if len(best.Cargos) == 0 {
			candidates = removeStation(candidates, best)
		}
	}

	route := make(domain.Route, len(routeRev))
	for i, stop := range routeRev {
		route[len(routeRev)-1-i] = stop
	}
	return route
}

// pickNextStation finds the candidate station minimizing distance to
// currentPos among those with at least one allowed cargo that fits
// remainingCap, tie-breaking by simulated greedy-fill benefit under the
// given objective.
func pickNextStation(o *Oracle, currentPos string, candidates []*domain.Station, remainingCap float64, objective Objective, allowedCargoIDs map[string]struct{}) (*domain.Station, Objective) {
	var best *domain.Station
	bestDist := -1.0
	bestPrimary := -1.0
	bestSecondary := -1.0
	found := false

	for _, station := range candidates {
		if len(station.Cargos) == 0 {
			continue
		}
		allowed := allowedCargos(station, allowedCargoIDs)
		if len(allowed) == 0 {
			continue
		}

		fitWeights := make([]float64, 0, len(allowed))
		for _, c := range allowed {
			if c.WeightKg <= remainingCap+domain.Epsilon {
				fitWeights = append(fitWeights, c.WeightKg)
			}
		}
		if len(fitWeights) == 0 {
			continue
		}

		dist := o.Distance(currentPos, station.ID)
		primary, secondary := simulateBenefit(fitWeights, remainingCap, objective)

		switch {
		case !found || dist < bestDist-1e-9:
			best = station
			bestDist = dist
			bestPrimary = primary
			bestSecondary = secondary
			found = true
		case abs(dist-bestDist) <= 1e-9 && objective != ObjectiveNone:
			if primary > bestPrimary+1e-9 || (abs(primary-bestPrimary) <= 1e-9 && secondary > bestSecondary+1e-9) {
				best = station
				bestPrimary = primary
				bestSecondary = secondary
			}
		}
	}

	return best, objective
}

// simulateBenefit greedily fills remainingCap from fitWeights (heaviest first
// for max_weight, lightest first for max_count) and returns (primary,
// secondary) in the objective's preferred order.
func simulateBenefit(fitWeights []float64, remainingCap float64, objective Objective) (float64, float64) {
	if objective == ObjectiveNone {
		return 0, 0
	}
	ws := make([]float64, len(fitWeights))
	copy(ws, fitWeights)
	sort.Slice(ws, func(i, j int) bool {
		if objective == ObjectiveMaxWeight {
			return ws[i] > ws[j]
		}
		return ws[i] < ws[j]
	})

	count, weight := 0.0, 0.0
	capLeft := remainingCap
	for _, w := range ws {
		if w <= capLeft+domain.Epsilon {
			count++
			weight += w
			capLeft -= w
		}
	}

	if objective == ObjectiveMaxWeight {
		return weight, count
	}
	return count, weight
}

func allowedCargos(station *domain.Station, allowedCargoIDs map[string]struct{}) []domain.Cargo {
	if allowedCargoIDs == nil {
		return station.Cargos
	}
	out := make([]domain.Cargo, 0, len(station.Cargos))
	for _, c := range station.Cargos {
		if _, ok := allowedCargoIDs[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// sortStationCargos sorts the station's cargo list in place ahead of the
// greedy pop: lightest-first for max_count, heaviest-first for max_weight.
func sortStationCargos(station *domain.Station, objective Objective) {
	switch objective {
	case ObjectiveMaxCount:
		sort.Slice(station.Cargos, func(i, j int) bool { return station.Cargos[i].WeightKg < station.Cargos[j].WeightKg })
	case ObjectiveMaxWeight:
		sort.Slice(station.Cargos, func(i, j int) bool { return station.Cargos[i].WeightKg > station.Cargos[j].WeightKg })
	}
}

// popFittingCargos greedily removes cargos from the front of station.Cargos
// while each fits remainingCap, skipping (without removing) cargos excluded
// by allowedCargoIDs.
func popFittingCargos(station *domain.Station, remainingCap float64, allowedCargoIDs map[string]struct{}) ([]domain.Cargo, float64) {
	var assigned []domain.Cargo
	assignedWeight := 0.0

	i := 0
	for i < len(station.Cargos) {
		cargo := station.Cargos[i]
		if allowedCargoIDs != nil {
			if _, ok := allowedCargoIDs[cargo.ID]; !ok {
				i++
				continue
			}
		}
		if cargo.WeightKg <= remainingCap+domain.Epsilon {
			assigned = append(assigned, cargo)
			assignedWeight += cargo.WeightKg
			remainingCap -= cargo.WeightKg
			station.Cargos = append(station.Cargos[:i], station.Cargos[i+1:]...)
			continue
		}
		i++
	}

	return assigned, assignedWeight
}

func removeStation(stations []*domain.Station, target *domain.Station) []*domain.Station {
	out := stations[:0]
	for _, s := range stations {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
