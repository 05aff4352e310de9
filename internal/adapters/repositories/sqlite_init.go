package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// InitSchema creates the SQLite schema for the problem catalog (hub,
// stations, cargos, vehicles) and the distance/geocode caches.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS hub (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			lat  REAL NOT NULL,
			lon  REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS stations (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			code TEXT NOT NULL,
			lat  REAL NOT NULL,
			lon  REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS cargos (
			id         TEXT PRIMARY KEY,
			station_id TEXT NOT NULL REFERENCES stations(id),
			user_id    TEXT NOT NULL,
			weight_kg  REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS vehicles (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			plate_number TEXT NOT NULL,
			capacity_kg  REAL NOT NULL,
			ownership    TEXT NOT NULL,
			rental_cost  REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS distance_cache (
			from_id          TEXT NOT NULL,
			to_id            TEXT NOT NULL,
			distance_km      REAL NOT NULL,
			duration_minutes REAL NOT NULL,
			polyline         TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (from_id, to_id)
		);`,
		`CREATE TABLE IF NOT EXISTS geocode_cache (
			location_id TEXT PRIMARY KEY,
			lon         REAL NOT NULL,
			lat         REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_cargos_station ON cargos(station_id);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// CargoSeed is one cargo entry in a seed fixture.
type CargoSeed struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	WeightKg float64 `json:"weight_kg"`
}

// StationSeed is one station entry in a seed fixture.
type StationSeed struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Code   string      `json:"code"`
	Lat    float64     `json:"lat"`
	Lon    float64     `json:"lon"`
	Cargos []CargoSeed `json:"cargos"`
}

// VehicleSeed is one vehicle entry in a seed fixture.
type VehicleSeed struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PlateNumber string  `json:"plate_number"`
	CapacityKg  float64 `json:"capacity_kg"`
	Ownership   string  `json:"ownership"`
	RentalCost  float64 `json:"rental_cost"`
}

// HubSeed is the single depot entry in a seed fixture.
type HubSeed struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// ProblemSeed is the shape of the JSON fixture loaded by SeedFromJSON.
type ProblemSeed struct {
	Hub      HubSeed       `json:"hub"`
	Stations []StationSeed `json:"stations"`
	Vehicles []VehicleSeed `json:"vehicles"`
}

// loadProblemSeed reads and validates a JSON fixture file, shared by both
// the SQLite and Postgres seed paths.
func loadProblemSeed(jsonPath string) (ProblemSeed, error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return ProblemSeed{}, fmt.Errorf("seed problem: read %q: %w", jsonPath, err)
	}

	var seed ProblemSeed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return ProblemSeed{}, fmt.Errorf("seed problem: parse json: %w", err)
	}

	if strings.TrimSpace(seed.Hub.ID) == "" {
		return ProblemSeed{}, errors.New("seed problem: hub id must not be empty")
	}
	for _, station := range seed.Stations {
		if strings.TrimSpace(station.ID) == "" {
			return ProblemSeed{}, errors.New("seed problem: station id must not be empty")
		}
	}
	for _, vehicle := range seed.Vehicles {
		if strings.TrimSpace(vehicle.ID) == "" {
			return ProblemSeed{}, errors.New("seed problem: vehicle id must not be empty")
		}
	}

	return seed, nil
}

// SeedFromJSON populates the hub, stations, cargos, and vehicles tables from
// a JSON fixture file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	seed, err := loadProblemSeed(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed problem: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO hub (id, name, lat, lon) VALUES (?, ?, ?, ?);`,
		seed.Hub.ID, seed.Hub.Name, seed.Hub.Lat, seed.Hub.Lon,
	); err != nil {
		return fmt.Errorf("seed problem: insert hub: %w", err)
	}

	stationStmt, err := tx.Prepare(`INSERT OR REPLACE INTO stations (id, name, code, lat, lon) VALUES (?, ?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("seed problem: prepare station insert: %w", err)
	}
	defer stationStmt.Close()

	cargoStmt, err := tx.Prepare(`INSERT OR REPLACE INTO cargos (id, station_id, user_id, weight_kg) VALUES (?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("seed problem: prepare cargo insert: %w", err)
	}
	defer cargoStmt.Close()

	for _, station := range seed.Stations {
		if strings.TrimSpace(station.ID) == "" {
			return errors.New("seed problem: station id must not be empty")
		}
		if _, err := stationStmt.Exec(station.ID, station.Name, station.Code, station.Lat, station.Lon); err != nil {
			return fmt.Errorf("seed problem: insert station %q: %w", station.ID, err)
		}
		for _, cargo := range station.Cargos {
			if _, err := cargoStmt.Exec(cargo.ID, station.ID, cargo.UserID, cargo.WeightKg); err != nil {
				return fmt.Errorf("seed problem: insert cargo %q: %w", cargo.ID, err)
			}
		}
	}

	vehicleStmt, err := tx.Prepare(`INSERT OR REPLACE INTO vehicles (id, name, plate_number, capacity_kg, ownership, rental_cost) VALUES (?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("seed problem: prepare vehicle insert: %w", err)
	}
	defer vehicleStmt.Close()

	for _, vehicle := range seed.Vehicles {
		if strings.TrimSpace(vehicle.ID) == "" {
			return errors.New("seed problem: vehicle id must not be empty")
		}
		if _, err := vehicleStmt.Exec(vehicle.ID, vehicle.Name, vehicle.PlateNumber, vehicle.CapacityKg, vehicle.Ownership, vehicle.RentalCost); err != nil {
			return fmt.Errorf("seed problem: insert vehicle %q: %w", vehicle.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed problem: commit tx: %w", err)
	}

	return nil
}
