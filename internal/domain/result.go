package domain

// RouteStop is one entry in a route's presented, ordered stop sequence.
// Pickups carry order 0..n-1; a synthetic terminal hub stop always follows
// at order n with action "end" — there is never a leading "start" stop,
// matching the asymmetric edge policy (the hub->first-pickup leg is free
// and therefore not modeled as a stop).
type RouteStop struct {
	Order       int
	StationID   string
	StationName string
	StationCode string
	Lat         float64
	Lon         float64
	IsHub       bool
	Action      string // "pickup" | "end"
	CargoCount  int
	WeightKg    float64
}

// AssignedCargo records where and when (in pickup order) a cargo was picked up.
type AssignedCargo struct {
	CargoID     string
	UserID      string
	StationID   string
	WeightKg    float64
	PickupOrder int
}

// UserSummary aggregates how many cargos a user had picked up on a route.
type UserSummary struct {
	UserID     string
	CargoCount int
}

// UnassignedCargo records a cargo that could not be placed on any route.
type UnassignedCargo struct {
	CargoID   string
	StationID string
	WeightKg  float64
	Reason    string
}

// RouteResult is the user-facing description of a single vehicle's route.
type RouteResult struct {
	VehicleID            string
	VehicleName          string
	IsRented             bool
	RouteOrder           int
	TotalDistanceKm       float64
	TotalDurationMinutes  float64
	DistanceCost          float64
	RentalCost            float64
	TotalCost             float64
	TotalWeightKg         float64
	CargoCount            int
	CapacityUtilization   float64
	RouteSequence         []RouteStop
	Polyline              string
	AssignedCargos        []AssignedCargo
	Users                 []UserSummary
}

// Summary aggregates totals across all routes in a solved result.
type Summary struct {
	TotalDistanceKm     float64
	TotalCost           float64
	TotalCargos         int
	TotalWeightKg       float64
	VehiclesUsed        int
	VehiclesRented      int
	UnassignedCargos    int
	UnassignedWeightKg  float64
}

// AlgorithmInfo describes which meta-heuristic search produced the result.
type AlgorithmInfo struct {
	Name                  string
	Iterations            int
	ExecutionTimeMs       float64
	ImprovementPercentage float64
	Selected              map[string]any
}

// ErrorInfo is the structured error payload for input-semantic and
// search-infeasible failures (NO_CARGO, NO_VEHICLES, INFEASIBLE_SOLUTION).
type ErrorInfo struct {
	Code    string
	Message string
	Details map[string]any
}

// Result is the top-level output of a solve call.
type Result struct {
	Success       bool
	ProblemType   string
	Summary       *Summary
	Routes        []RouteResult
	Unassigned    []UnassignedCargo
	AlgorithmInfo AlgorithmInfo
	Error         *ErrorInfo
}

const (
	ErrNoCargo            = "NO_CARGO"
	ErrNoVehicles         = "NO_VEHICLES"
	ErrInfeasibleSolution = "INFEASIBLE_SOLUTION"
)
