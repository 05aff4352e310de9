// Package dto holds the wire-format request/response shapes for the
// optimizer HTTP API, field-for-field with the original service's Pydantic
// models.
package dto

// HubInfo is the single depot every route must terminate at.
type HubInfo struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CargoInfo is one unit of freight at a station.
type CargoInfo struct {
	ID       string  `json:"id"`
	WeightKg float64 `json:"weight_kg"`
	UserID   string  `json:"user_id"`
}

// StationInfo is a pickup location and the cargos waiting there.
type StationInfo struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Code          string      `json:"code"`
	Latitude      float64     `json:"latitude"`
	Longitude     float64     `json:"longitude"`
	CargoCount    int         `json:"cargo_count"`
	TotalWeightKg float64     `json:"total_weight_kg"`
	Cargos        []CargoInfo `json:"cargos"`
}

// VehicleInfo is one vehicle in the fleet, owned or rented.
type VehicleInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PlateNumber string  `json:"plate_number"`
	CapacityKg  float64 `json:"capacity_kg"`
	Ownership   string  `json:"ownership"`
	RentalCost  float64 `json:"rental_cost"`
}

// Parameters are the cost/rental knobs controlling fleet search. Zero
// values are replaced with the service's configured defaults before solve.
type Parameters struct {
	CostPerKm        float64 `json:"cost_per_km"`
	RentalCost       float64 `json:"rental_cost"`
	RentalCapacityKg float64 `json:"rental_capacity_kg"`
}

// DistanceInfo is one precomputed directed edge in the inbound distance
// matrix, keyed "<from_id>_<to_id>" in the enclosing map.
type DistanceInfo struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	Polyline        string  `json:"polyline"`
}

// OptimizerInput is the full /optimize and /validate request body.
type OptimizerInput struct {
	PlanDate      string                  `json:"plan_date"`
	ProblemType   string                  `json:"problem_type"`
	Hub           HubInfo                 `json:"hub"`
	Stations      []StationInfo           `json:"stations"`
	Vehicles      []VehicleInfo           `json:"vehicles"`
	Parameters    Parameters              `json:"parameters"`
	DistanceMatrix map[string]DistanceInfo `json:"distance_matrix"`
}
