package solver

import (
	"math"
	"math/rand"

	"delivery-route-service/internal/domain"

	"github.com/google/uuid"
)

const (
	attemptsPerScenarioUnlimited = 8
	attemptsPerScenarioLimited   = 6
	maxExtraRentals              = 100
)

// allNonEmptySubsets returns every non-empty subset of vehicles, in the
// order itertools.combinations would produce them: by increasing size, and
// within a size in index order.
func allNonEmptySubsets(vehicles []domain.Vehicle) [][]domain.Vehicle {
	var out [][]domain.Vehicle
	for size := 1; size <= len(vehicles); size++ {
		out = append(out, subsetsOfSize(vehicles, size)...)
	}
	return out
}

// ownedSubsetsForUnlimited returns the owned-vehicle subsets the unlimited
// search tries. With no owned vehicles it still yields the single empty
// subset, so a rent-everything fleet remains reachable instead of the
// search silently trying zero fleets.
func ownedSubsetsForUnlimited(vehicles []domain.Vehicle) [][]domain.Vehicle {
	if len(vehicles) == 0 {
		return [][]domain.Vehicle{{}}
	}
	return allNonEmptySubsets(vehicles)
}

func subsetsOfSize(vehicles []domain.Vehicle, size int) [][]domain.Vehicle {
	n := len(vehicles)
	if size <= 0 || size > n {
		return nil
	}
	var out [][]domain.Vehicle
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	for {
		subset := make([]domain.Vehicle, size)
		for i, v := range idx {
			subset[i] = vehicles[v]
		}
		out = append(out, subset)

		i := size - 1
		for i >= 0 && idx[i] == n-size+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < size; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}

// buildRentalVehicle synthesizes a rental vehicle with a fresh unique id, the
// parameterized rental capacity and cost.
func buildRentalVehicle(rentalCapacityKg, rentalCost float64) domain.Vehicle {
	return domain.Vehicle{
		ID:         "rental_" + uuid.New().String(),
		Name:       "Rental Vehicle",
		CapacityKg: rentalCapacityKg,
		IsRented:   true,
		RentalCost: rentalCost,
	}
}

// buildCandidateUnlimited tries the cluster, binpack, and sequential
// strategies against the given fleet and keeps whichever feasible (no
// leftover cargo) candidate is cheapest, tie-breaking toward fewer rented
// vehicles.
func buildCandidateUnlimited(o *Oracle, hubID string, stations []*domain.Station, vehicles []domain.Vehicle, costPerKm float64, rng *rand.Rand) *Candidate {
	attempts := []*Candidate{
		BuildClusterCandidate(o, hubID, stations, vehicles, costPerKm, ObjectiveNone, rng),
		BuildBinpackCandidate(o, hubID, stations, vehicles, costPerKm, ObjectiveNone),
		BuildSequentialCandidate(o, hubID, stations, vehicles, costPerKm, ObjectiveNone),
	}

	var best *Candidate
	for _, c := range attempts {
		if !c.Feasible() {
			continue
		}
		if best == nil || betterUnlimited(c, best) {
			best = c
		}
	}
	return best
}

// betterUnlimited reports whether a beats b: cheaper first, then fewer
// rented vehicles, then fewer vehicles overall.
func betterUnlimited(a, b *Candidate) bool {
	if math.Abs(a.TotalCost-b.TotalCost) > domain.Epsilon {
		return a.TotalCost < b.TotalCost
	}
	if a.RentedCount != b.RentedCount {
		return a.RentedCount < b.RentedCount
	}
	return a.VehicleCount < b.VehicleCount
}

// SolveUnlimited searches over owned-vehicle subsets and rental counts for
// the cheapest feasible way to cover every active station's cargo.
func SolveUnlimited(o *Oracle, planDate string, hubID string, stations []*domain.Station, owned []domain.Vehicle, costPerKm, rentalCapacityKg, rentalCost float64) *Candidate {
	totalWeight := 0.0
	for _, s := range stations {
		totalWeight += s.WeightKg
	}

	var best *Candidate
	for _, subset := range ownedSubsetsForUnlimited(owned) {
		subsetCapacity := domain.TotalCapacityKg(subset)
		shortfall := totalWeight - subsetCapacity
		minRentals := 0
		if shortfall > domain.Epsilon && rentalCapacityKg > domain.Epsilon {
			minRentals = int(math.Ceil(shortfall / rentalCapacityKg))
		}

		for extra := 0; extra <= maxExtraRentals; extra++ {
			rentalCount := minRentals + extra
			fleet := make([]domain.Vehicle, len(subset))
			copy(fleet, subset)
			for i := 0; i < rentalCount; i++ {
				fleet = append(fleet, buildRentalVehicle(rentalCapacityKg, rentalCost))
			}

			for attempt := 0; attempt < attemptsPerScenarioUnlimited; attempt++ {
				rng := SeededRNG(planDate, "unlimited", len(subset), rentalCount, attempt)
				candidate := buildCandidateUnlimited(o, hubID, domain.CloneStations(stations), fleet, costPerKm, rng)
				if candidate == nil {
					continue
				}
				if best == nil || betterUnlimited(candidate, best) {
					best = candidate
				}
			}
		}
	}

	return best
}

// buildCandidateLimited draws one strategy per attempt by RNG roll, matching
// the original's weighting toward the cargo-level pack strategy.
func buildCandidateLimited(o *Oracle, hubID string, stations []*domain.Station, vehicles []domain.Vehicle, costPerKm float64, objective Objective, rng *rand.Rand) *Candidate {
	roll := rng.Float64()
	switch {
	case roll < 0.45:
		return BuildPackCandidate(o, hubID, stations, vehicles, costPerKm, objective)
	case roll < 0.75:
		return BuildClusterCandidate(o, hubID, stations, vehicles, costPerKm, objective, rng)
	case roll < 0.90:
		return BuildBinpackCandidate(o, hubID, stations, vehicles, costPerKm, objective)
	default:
		return BuildSequentialCandidate(o, hubID, stations, vehicles, costPerKm, objective)
	}
}

// betterLimited reports whether a beats b under the given objective's
// lexicographic preference order.
func betterLimited(a, b *Candidate, objective Objective) bool {
	if objective == ObjectiveMaxWeight {
		if math.Abs(a.AssignedWeightKg-b.AssignedWeightKg) > domain.Epsilon {
			return a.AssignedWeightKg > b.AssignedWeightKg
		}
		if math.Abs(a.TotalCost-b.TotalCost) > domain.Epsilon {
			return a.TotalCost < b.TotalCost
		}
		if a.AssignedCargoCount != b.AssignedCargoCount {
			return a.AssignedCargoCount > b.AssignedCargoCount
		}
		return a.VehicleCount < b.VehicleCount
	}

	if a.AssignedCargoCount != b.AssignedCargoCount {
		return a.AssignedCargoCount > b.AssignedCargoCount
	}
	if math.Abs(a.TotalCost-b.TotalCost) > domain.Epsilon {
		return a.TotalCost < b.TotalCost
	}
	if math.Abs(a.AssignedWeightKg-b.AssignedWeightKg) > domain.Epsilon {
		return a.AssignedWeightKg > b.AssignedWeightKg
	}
	return a.VehicleCount < b.VehicleCount
}

// SolveLimited searches over fixed-fleet subsets (no rental synthesis) for
// the best candidate under the given objective, allowing leftover cargo.
func SolveLimited(o *Oracle, planDate string, hubID string, stations []*domain.Station, owned []domain.Vehicle, costPerKm float64, objective Objective) *Candidate {
	fleet := make([]domain.Vehicle, len(owned))
	copy(fleet, owned)
	sortVehiclesByCapacityDesc(fleet)

	var best *Candidate
	for r := 1; r <= len(fleet); r++ {
		for _, subset := range subsetsOfSize(fleet, r) {
			for attempt := 0; attempt < attemptsPerScenarioLimited; attempt++ {
				rng := SeededRNG(planDate, "limited", string(objective), r, attempt)
				candidate := buildCandidateLimited(o, hubID, domain.CloneStations(stations), subset, costPerKm, objective, rng)
				if candidate == nil {
					continue
				}
				if best == nil || betterLimited(candidate, best, objective) {
					best = candidate
				}
			}
		}
	}

	return best
}

func sortVehiclesByCapacityDesc(vehicles []domain.Vehicle) {
	for i := 1; i < len(vehicles); i++ {
		for j := i; j > 0 && vehicles[j].CapacityKg > vehicles[j-1].CapacityKg; j-- {
			vehicles[j], vehicles[j-1] = vehicles[j-1], vehicles[j]
		}
	}
}
