package dto

import "delivery-route-service/internal/domain"

// ToDomain converts a request body into the solver's internal Problem
// representation.
func (in OptimizerInput) ToDomain() *domain.Problem {
	stations := make([]domain.StationInput, 0, len(in.Stations))
	for _, s := range in.Stations {
		cargos := make([]domain.Cargo, 0, len(s.Cargos))
		for _, c := range s.Cargos {
			cargos = append(cargos, domain.Cargo{ID: c.ID, UserID: c.UserID, WeightKg: c.WeightKg})
		}
		stations = append(stations, domain.StationInput{
			ID:            s.ID,
			Name:          s.Name,
			Code:          s.Code,
			Lat:           s.Latitude,
			Lon:           s.Longitude,
			CargoCount:    s.CargoCount,
			TotalWeightKg: s.TotalWeightKg,
			Cargos:        cargos,
		})
	}

	vehicles := make([]domain.VehicleInput, 0, len(in.Vehicles))
	for _, v := range in.Vehicles {
		vehicles = append(vehicles, domain.VehicleInput{
			ID:          v.ID,
			Name:        v.Name,
			PlateNumber: v.PlateNumber,
			CapacityKg:  v.CapacityKg,
			Ownership:   v.Ownership,
			RentalCost:  v.RentalCost,
		})
	}

	matrix := make(map[string]domain.DistanceMatrixEntry, len(in.DistanceMatrix))
	for key, d := range in.DistanceMatrix {
		matrix[key] = domain.DistanceMatrixEntry{
			DistanceKm:      d.DistanceKm,
			DurationMinutes: d.DurationMinutes,
			Polyline:        d.Polyline,
		}
	}

	return &domain.Problem{
		PlanDate:    in.PlanDate,
		ProblemType: in.ProblemType,
		Hub: domain.HubInfo{
			ID:   in.Hub.ID,
			Name: in.Hub.Name,
			Lat:  in.Hub.Latitude,
			Lon:  in.Hub.Longitude,
		},
		Stations: stations,
		Vehicles: vehicles,
		Parameters: domain.Parameters{
			CostPerKm:        in.Parameters.CostPerKm,
			RentalCost:       in.Parameters.RentalCost,
			RentalCapacityKg: in.Parameters.RentalCapacityKg,
		},
		DistanceMatrix: matrix,
	}
}

// FromDomain converts a solved Result into the wire-format response body.
// executionTimeMs is stamped by the caller (the HTTP handler times the
// Solve call itself; the solver package stays wall-clock-unaware).
func FromDomain(res *domain.Result, executionTimeMs float64) OptimizerOutput {
	out := OptimizerOutput{
		Success:     res.Success,
		ProblemType: res.ProblemType,
		Routes:      make([]RouteResult, 0, len(res.Routes)),
		Unassigned:  make([]UnassignedCargo, 0, len(res.Unassigned)),
	}

	if res.Error != nil {
		out.Error = &ErrorInfo{Code: res.Error.Code, Message: res.Error.Message, Details: res.Error.Details}
	}

	if res.Summary != nil {
		out.Summary = &Summary{
			TotalDistanceKm:    res.Summary.TotalDistanceKm,
			TotalCost:          res.Summary.TotalCost,
			TotalCargos:        res.Summary.TotalCargos,
			TotalWeightKg:      res.Summary.TotalWeightKg,
			VehiclesUsed:       res.Summary.VehiclesUsed,
			VehiclesRented:     res.Summary.VehiclesRented,
			UnassignedCargos:   res.Summary.UnassignedCargos,
			UnassignedWeightKg: res.Summary.UnassignedWeightKg,
		}
	}

	for _, r := range res.Routes {
		sequence := make([]RouteStop, 0, len(r.RouteSequence))
		for _, s := range r.RouteSequence {
			sequence = append(sequence, RouteStop{
				Order:       s.Order,
				StationID:   s.StationID,
				StationName: s.StationName,
				StationCode: s.StationCode,
				Latitude:    s.Lat,
				Longitude:   s.Lon,
				IsHub:       s.IsHub,
				Action:      s.Action,
				CargoCount:  s.CargoCount,
				WeightKg:    s.WeightKg,
			})
		}

		assigned := make([]AssignedCargo, 0, len(r.AssignedCargos))
		for _, a := range r.AssignedCargos {
			assigned = append(assigned, AssignedCargo{
				CargoID:     a.CargoID,
				UserID:      a.UserID,
				StationID:   a.StationID,
				WeightKg:    a.WeightKg,
				PickupOrder: a.PickupOrder,
			})
		}

		users := make([]UserInfo, 0, len(r.Users))
		for _, u := range r.Users {
			users = append(users, UserInfo{UserID: u.UserID, CargoCount: u.CargoCount})
		}

		out.Routes = append(out.Routes, RouteResult{
			VehicleID:            r.VehicleID,
			VehicleName:          r.VehicleName,
			IsRented:             r.IsRented,
			RouteOrder:           r.RouteOrder,
			TotalDistanceKm:      r.TotalDistanceKm,
			TotalDurationMinutes: r.TotalDurationMinutes,
			DistanceCost:         r.DistanceCost,
			RentalCost:           r.RentalCost,
			TotalCost:            r.TotalCost,
			TotalWeightKg:        r.TotalWeightKg,
			CargoCount:           r.CargoCount,
			CapacityUtilization:  r.CapacityUtilization,
			RouteSequence:        sequence,
			Polyline:             r.Polyline,
			AssignedCargos:       assigned,
			Users:                users,
		})
	}

	for _, u := range res.Unassigned {
		out.Unassigned = append(out.Unassigned, UnassignedCargo{
			CargoID:   u.CargoID,
			StationID: u.StationID,
			WeightKg:  u.WeightKg,
			Reason:    u.Reason,
		})
	}

	out.AlgorithmInfo = map[string]any{
		"name":                   res.AlgorithmInfo.Name,
		"iterations":             res.AlgorithmInfo.Iterations,
		"execution_time_ms":      executionTimeMs,
		"improvement_percentage": res.AlgorithmInfo.ImprovementPercentage,
	}
	if res.AlgorithmInfo.Selected != nil {
		out.AlgorithmInfo["selected"] = res.AlgorithmInfo.Selected
	}

	return out
}
