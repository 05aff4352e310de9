package solver

import (
	"strings"

	"delivery-route-service/internal/domain"
)

// Solve dispatches a validated Problem to the unlimited or limited fleet
// search and assembles the presented Result. It never returns a Go error for
// business-rule failures (empty cargo, empty fleet, infeasible limited
// search) — those are reported as a structured domain.ErrorInfo inside a
// domain.Result with Success=false, matching the HTTP layer's contract.
func Solve(problem *domain.Problem) *domain.Result {
	hub := domain.NewHub(problem.Hub.ID, problem.Hub.Name, problem.Hub.Lat, problem.Hub.Lon)

	activeInputs := problem.ActiveStations()
	if len(activeInputs) == 0 {
		return errorResult(problem.ProblemType, domain.ErrNoCargo, "no cargo to deliver", nil)
	}

	stations := toDomainStations(activeInputs)
	owned := ownedVehicles(toDomainVehicles(problem.Vehicles))
	oracle := NewOracle(problem.DistanceMatrix, problem.Hub, problem.Stations)

	if problem.ProblemType == "unlimited_vehicles" {
		candidate := SolveUnlimited(oracle, problem.PlanDate, hub.ID, stations, owned,
			problem.Parameters.CostPerKm, problem.Parameters.RentalCapacityKg, problem.Parameters.RentalCost)
		if candidate == nil || !candidate.Feasible() {
			return errorResult(problem.ProblemType, domain.ErrInfeasibleSolution, "no feasible solution covering all cargo was found", nil)
		}
		return BuildResult(problem, oracle, hub, candidate)
	}

	if len(owned) == 0 {
		return errorResult(problem.ProblemType, domain.ErrNoVehicles, "no vehicles available", nil)
	}

	objective := limitedObjective(problem.ProblemType)
	candidate := SolveLimited(oracle, problem.PlanDate, hub.ID, stations, owned, problem.Parameters.CostPerKm, objective)
	if candidate == nil {
		return errorResult(problem.ProblemType, domain.ErrInfeasibleSolution, "no feasible solution was found", nil)
	}
	return BuildResult(problem, oracle, hub, candidate)
}

// limitedObjective maps a limited_vehicles* problem_type suffix to the
// ranking objective it selects: any mention of "max_weight", or a type
// ending in "_weight" or "_kg", ranks by weight; everything else ranks by
// cargo count.
func limitedObjective(problemType string) Objective {
	pt := strings.ToLower(problemType)
	if strings.Contains(pt, "max_weight") || strings.HasSuffix(pt, "_weight") || strings.HasSuffix(pt, "_kg") {
		return ObjectiveMaxWeight
	}
	return ObjectiveMaxCount
}

func errorResult(problemType, code, message string, details map[string]any) *domain.Result {
	return &domain.Result{
		Success:     false,
		ProblemType: problemType,
		Error: &domain.ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
		AlgorithmInfo: domain.AlgorithmInfo{Name: "Greedy + 2-opt"},
	}
}

func toDomainStations(inputs []domain.StationInput) []*domain.Station {
	out := make([]*domain.Station, len(inputs))
	for i, in := range inputs {
		s := &domain.Station{
			ID:     in.ID,
			Name:   in.Name,
			Code:   in.Code,
			Lat:    in.Lat,
			Lon:    in.Lon,
			Cargos: append([]domain.Cargo(nil), in.Cargos...),
		}
		s.RefreshTotals()
		out[i] = s
	}
	return out
}

// ownedVehicles filters out any input vehicle already flagged rented, since
// the fleet search treats "owned" as the fixed subset it chooses from before
// ever synthesizing rentals of its own.
func ownedVehicles(vehicles []domain.Vehicle) []domain.Vehicle {
	out := make([]domain.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if !v.IsRented {
			out = append(out, v)
		}
	}
	return out
}

func toDomainVehicles(inputs []domain.VehicleInput) []domain.Vehicle {
	out := make([]domain.Vehicle, len(inputs))
	for i, in := range inputs {
		out[i] = domain.Vehicle{
			ID:         in.ID,
			Name:       in.Name,
			CapacityKg: in.CapacityKg,
			IsRented:   strings.EqualFold(in.Ownership, "rented"),
			RentalCost: in.RentalCost,
		}
	}
	return out
}
