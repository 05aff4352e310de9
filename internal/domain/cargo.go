package domain

// Tolerance used throughout the solver for float weight/cost comparisons.
const Epsilon = 1e-6

// Cargo is an indivisible unit of freight owned by a single user.
// Identity is immutable; a Cargo is consumed (moved out of its Station) the
// moment it is assigned to a route, and it never appears on more than one
// route.
type Cargo struct {
	ID       string
	UserID   string
	WeightKg float64
}
