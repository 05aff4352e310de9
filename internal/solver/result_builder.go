package solver

import (
	"math"
	"sort"
	"strings"

	"delivery-route-service/internal/domain"
)

// BuildResult assembles the presented domain.Result from a winning
// Candidate: per-route stop sequences (with a synthetic terminal hub stop),
// assigned-cargo pickup ordering, polylines, and the run summary.
func BuildResult(problem *domain.Problem, o *Oracle, hub *domain.Station, candidate *Candidate) *domain.Result {
	selected := map[string]any{
		"strategy":    candidate.Strategy,
		"owned_used":  candidate.VehicleCount - candidate.RentedCount,
		"rented_used": candidate.RentedCount,
		"fleet_size":  candidate.VehicleCount,
	}
	if problem.ProblemType != "unlimited_vehicles" {
		selected["objective"] = string(limitedObjective(problem.ProblemType))
	}
	routes := make([]domain.RouteResult, 0, len(candidate.VehicleRoutes))
	for i, vr := range candidate.VehicleRoutes {
		routes = append(routes, buildRouteResult(o, hub, problem.Parameters.CostPerKm, i, vr))
	}

	unassigned := buildUnassigned(candidate.Unassigned)

	summary := &domain.Summary{
		TotalDistanceKm:    round3(candidate.TotalDistanceKm),
		TotalCost:          round2(candidate.TotalCost),
		TotalCargos:        candidate.AssignedCargoCount,
		TotalWeightKg:      round2(candidate.AssignedWeightKg),
		VehiclesUsed:       candidate.VehicleCount,
		VehiclesRented:     candidate.RentedCount,
		UnassignedCargos:   len(unassigned),
		UnassignedWeightKg: round2(sumUnassignedWeight(unassigned)),
	}

	return &domain.Result{
		Success:     true,
		ProblemType: problem.ProblemType,
		Summary:     summary,
		Routes:      routes,
		Unassigned:  unassigned,
		AlgorithmInfo: domain.AlgorithmInfo{
			Name:       "Greedy + 2-opt",
			Iterations: candidate.TwoOptIterations,
			Selected:   selected,
		},
	}
}

func buildRouteResult(o *Oracle, hub *domain.Station, costPerKm float64, routeOrder int, vr VehicleRoute) domain.RouteResult {
	route := vr.Route
	vehicle := vr.Vehicle

	sequence := make([]domain.RouteStop, 0, len(route)+1)
	for i, stop := range route {
		sequence = append(sequence, domain.RouteStop{
			Order:       i,
			StationID:   stop.Station.ID,
			StationName: stop.Station.Name,
			StationCode: stop.Station.Code,
			Lat:         stop.Station.Lat,
			Lon:         stop.Station.Lon,
			IsHub:       false,
			Action:      "pickup",
			CargoCount:  len(stop.Cargos),
			WeightKg:    round2(stop.WeightKg),
		})
	}
	sequence = append(sequence, domain.RouteStop{
		Order:       len(route),
		StationID:   hub.ID,
		StationName: hub.Name,
		StationCode: hub.Code,
		Lat:         hub.Lat,
		Lon:         hub.Lon,
		IsHub:       true,
		Action:      "end",
		CargoCount:  0,
		WeightKg:    0,
	})

	assignedCargos := make([]domain.AssignedCargo, 0)
	userCounts := make(map[string]int)
	pickupOrder := 0
	for _, stop := range route {
		for _, cargo := range stop.Cargos {
			assignedCargos = append(assignedCargos, domain.AssignedCargo{
				CargoID:     cargo.ID,
				UserID:      cargo.UserID,
				StationID:   stop.Station.ID,
				WeightKg:    round2(cargo.WeightKg),
				PickupOrder: pickupOrder,
			})
			userCounts[cargo.UserID]++
			pickupOrder++
		}
	}

	users := make([]domain.UserSummary, 0, len(userCounts))
	for userID, count := range userCounts {
		users = append(users, domain.UserSummary{UserID: userID, CargoCount: count})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })

	distance := RouteDistanceKm(o, route, hub.ID)
	duration := RouteDurationMinutes(o, route, hub.ID)
	distanceCost := distance * costPerKm
	rentalCost := 0.0
	if vehicle.IsRented {
		rentalCost = vehicle.RentalCost
	}
	weight := RouteWeightKg(route)
	utilization := 0.0
	if vehicle.CapacityKg > domain.Epsilon {
		utilization = weight / vehicle.CapacityKg * 100
	}

	return domain.RouteResult{
		VehicleID:            vehicle.ID,
		VehicleName:          vehicle.Name,
		IsRented:             vehicle.IsRented,
		RouteOrder:           routeOrder,
		TotalDistanceKm:      round3(distance),
		TotalDurationMinutes: round3(duration),
		DistanceCost:         round2(distanceCost),
		RentalCost:           round2(rentalCost),
		TotalCost:            round2(distanceCost + rentalCost),
		TotalWeightKg:        round2(weight),
		CargoCount:           route.TotalCargoCount(),
		CapacityUtilization:  round1(utilization),
		RouteSequence:        sequence,
		Polyline:             joinPolyline(o, route, hub.ID),
		AssignedCargos:       assignedCargos,
		Users:                users,
	}
}

func joinPolyline(o *Oracle, route domain.Route, hubID string) string {
	if len(route) == 0 {
		return ""
	}
	var segments []string
	for i := 0; i < len(route)-1; i++ {
		if p := o.Polyline(route[i].Station.ID, route[i+1].Station.ID); p != "" {
			segments = append(segments, p)
		}
	}
	if p := o.Polyline(route[len(route)-1].Station.ID, hubID); p != "" {
		segments = append(segments, p)
	}
	return strings.Join(segments, ";")
}

func buildUnassigned(stations []*domain.Station) []domain.UnassignedCargo {
	var out []domain.UnassignedCargo
	for _, s := range stations {
		for _, c := range s.Cargos {
			out = append(out, domain.UnassignedCargo{
				CargoID:   c.ID,
				StationID: s.ID,
				WeightKg:  round2(c.WeightKg),
				Reason:    "insufficient fleet capacity",
			})
		}
	}
	return out
}

func sumUnassignedWeight(unassigned []domain.UnassignedCargo) float64 {
	total := 0.0
	for _, u := range unassigned {
		total += u.WeightKg
	}
	return total
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
