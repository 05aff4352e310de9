// Package solver implements the VRP meta-heuristic: fleet search over
// multiple constructive strategies, a greedy per-vehicle route builder with
// cargo-level splitting, and a 2-opt local-search improver.
package solver

import (
	"fmt"

	"delivery-route-service/internal/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// locationKind lets the oracle resolve a location id back to coordinates for
// the Haversine fallback without a separate lookup table.
type locationKind struct {
	coords domain.Coordinates
	known  bool
}

// Oracle answers directional distance/duration/polyline queries between
// location ids. It never recomputes geometry on its own behalf; every route
// distance and 2-opt decision in this package goes through it.
type Oracle struct {
	matrix    map[string]domain.DistanceMatrixEntry
	locations map[string]locationKind
	titleCase cases.Caser
}

// NewOracle builds an Oracle over the given distance matrix and the set of
// known locations (hub + stations), used for the Haversine fallback and for
// the "unknown endpoint" sentinel. Matrix keys are normalized with the same
// rules as lookup keys.
func NewOracle(matrix map[string]domain.DistanceMatrixEntry, hub domain.HubInfo, stations []domain.StationInput) *Oracle {
	locations := make(map[string]locationKind, len(stations)+1)
	locations[hub.ID] = locationKind{coords: domain.Coordinates{Lon: hub.Lon, Lat: hub.Lat}, known: true}
	for _, s := range stations {
		locations[s.ID] = locationKind{coords: domain.Coordinates{Lon: s.Lon, Lat: s.Lat}, known: true}
	}

	o := &Oracle{
		matrix:    make(map[string]domain.DistanceMatrixEntry, len(matrix)),
		locations: locations,
		titleCase: cases.Fold(),
	}
	for k, e := range matrix {
		o.matrix[o.normalizeKey(k)] = e
	}
	return o
}

// normalizeKey folds case and applies NFC normalization so that ids that
// differ only in casing or combining-character representation still resolve
// to the same matrix/cache key.
func (o *Oracle) normalizeKey(id string) string {
	return norm.NFC.String(o.titleCase.String(id))
}

func (o *Oracle) key(from, to string) string {
	return fmt.Sprintf("%s_%s", o.normalizeKey(from), o.normalizeKey(to))
}

// unknownDistanceKm is the sentinel distance returned when either endpoint
// is not a known location.
const unknownDistanceKm = 100.0

// Distance returns the distance in km from "from" to "to" following the
// lookup policy: identity, direct key, reverse key, Haversine fallback, and
// finally the unknown-endpoint sentinel.
func (o *Oracle) Distance(from, to string) float64 {
	if from == to {
		return 0
	}
	if !o.locationKnown(from) || !o.locationKnown(to) {
		return unknownDistanceKm
	}

	if e, ok := o.matrix[o.key(from, to)]; ok {
		return e.DistanceKm
	}
	if e, ok := o.matrix[o.key(to, from)]; ok {
		return e.DistanceKm
	}
	return o.haversineFallback(from, to)
}

// Duration returns the travel duration in minutes from "from" to "to".
func (o *Oracle) Duration(from, to string) float64 {
	if from == to {
		return 0
	}
	if e, ok := o.matrix[o.key(from, to)]; ok {
		return e.DurationMinutes
	}
	if e, ok := o.matrix[o.key(to, from)]; ok {
		return e.DurationMinutes
	}
	// 50 km/h assumed when duration must be derived from the distance fallback.
	return o.Distance(from, to) / 50 * 60
}

// Polyline returns the polyline string for the from->to edge, or "" if none
// is known (the Haversine fallback never has a polyline).
func (o *Oracle) Polyline(from, to string) string {
	if e, ok := o.matrix[o.key(from, to)]; ok {
		return e.Polyline
	}
	return ""
}

func (o *Oracle) locationKnown(id string) bool {
	_, ok := o.locations[id]
	return ok
}

func (o *Oracle) haversineFallback(from, to string) float64 {
	fromLoc, fromOK := o.locations[from]
	toLoc, toOK := o.locations[to]
	if !fromOK || !toOK {
		return unknownDistanceKm
	}
	return domain.HaversineKm(fromLoc.coords, toLoc.coords)
}
