package domain

// HubInfo describes the single depot every route must terminate at.
type HubInfo struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64
}

// StationInput is a station as it arrives on the wire: CargoCount/TotalWeightKg
// are supplied by the caller (and re-derived internally once converted to a
// working Station).
type StationInput struct {
	ID            string
	Name          string
	Code          string
	Lat           float64
	Lon           float64
	CargoCount    int
	TotalWeightKg float64
	Cargos        []Cargo
}

// VehicleInput is a vehicle as it arrives on the wire. Ownership is "owned"
// or "rented"; the solver drops vehicles marked "rented" before fleet search,
// which draws only from owned vehicles and the rentals it synthesizes itself.
type VehicleInput struct {
	ID          string
	Name        string
	PlateNumber string
	CapacityKg  float64
	Ownership   string
	RentalCost  float64
}

// Parameters are the cost/rental knobs controlling fleet search.
type Parameters struct {
	CostPerKm        float64
	RentalCost       float64
	RentalCapacityKg float64
}

// DistanceMatrixEntry is one precomputed edge in the distance matrix.
type DistanceMatrixEntry struct {
	DistanceKm      float64
	DurationMinutes float64
	Polyline        string
}

// Problem is the full validated input to a solve call: a hub, a set of
// pickup stations each holding weighted cargos, a fleet of owned vehicles,
// tunable rental economics, and a directional distance matrix.
type Problem struct {
	PlanDate       string
	ProblemType    string
	Hub            HubInfo
	Stations       []StationInput
	Vehicles       []VehicleInput
	Parameters     Parameters
	DistanceMatrix map[string]DistanceMatrixEntry
}

// ActiveStations returns the stations carrying at least one cargo, since the
// solver filters out empty stations up front.
func (p *Problem) ActiveStations() []StationInput {
	out := make([]StationInput, 0, len(p.Stations))
	for _, s := range p.Stations {
		if len(s.Cargos) > 0 {
			out = append(out, s)
		}
	}
	return out
}
