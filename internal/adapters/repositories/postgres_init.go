package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchemaPostgres creates the Postgres schema for the problem catalog and
// the distance/geocode caches, mirroring InitSchema's SQLite schema with
// Postgres-flavored types and upsert syntax.
func InitSchemaPostgres(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS hub (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			lat  DOUBLE PRECISION NOT NULL,
			lon  DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS stations (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			code TEXT NOT NULL,
			lat  DOUBLE PRECISION NOT NULL,
			lon  DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS cargos (
			id         TEXT PRIMARY KEY,
			station_id TEXT NOT NULL REFERENCES stations(id),
			user_id    TEXT NOT NULL,
			weight_kg  DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS vehicles (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			plate_number TEXT NOT NULL,
			capacity_kg  DOUBLE PRECISION NOT NULL,
			ownership    TEXT NOT NULL,
			rental_cost  DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS distance_cache (
			from_id          TEXT NOT NULL,
			to_id            TEXT NOT NULL,
			distance_km      DOUBLE PRECISION NOT NULL,
			duration_minutes DOUBLE PRECISION NOT NULL,
			polyline         TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (from_id, to_id)
		);`,
		`CREATE TABLE IF NOT EXISTS geocode_cache (
			location_id TEXT PRIMARY KEY,
			lon         DOUBLE PRECISION NOT NULL,
			lat         DOUBLE PRECISION NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_cargos_station ON cargos(station_id);`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedFromJSONPostgres populates the Postgres hub/stations/cargos/vehicles
// tables from the same JSON fixture shape SeedFromJSON reads for SQLite.
func SeedFromJSONPostgres(ctx context.Context, db *sql.DB, jsonPath string) error {
	seed, err := loadProblemSeed(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed problem: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO hub (id, name, lat, lon) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, lat = EXCLUDED.lat, lon = EXCLUDED.lon;`,
		seed.Hub.ID, seed.Hub.Name, seed.Hub.Lat, seed.Hub.Lon,
	); err != nil {
		return fmt.Errorf("seed problem: insert hub: %w", err)
	}

	stationStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO stations (id, name, code, lat, lon) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, code = EXCLUDED.code, lat = EXCLUDED.lat, lon = EXCLUDED.lon;`)
	if err != nil {
		return fmt.Errorf("seed problem: prepare station insert: %w", err)
	}
	defer stationStmt.Close()

	cargoStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cargos (id, station_id, user_id, weight_kg) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET station_id = EXCLUDED.station_id, user_id = EXCLUDED.user_id, weight_kg = EXCLUDED.weight_kg;`)
	if err != nil {
		return fmt.Errorf("seed problem: prepare cargo insert: %w", err)
	}
	defer cargoStmt.Close()

	for _, station := range seed.Stations {
		if _, err := stationStmt.ExecContext(ctx, station.ID, station.Name, station.Code, station.Lat, station.Lon); err != nil {
			return fmt.Errorf("seed problem: insert station %q: %w", station.ID, err)
		}
		for _, cargo := range station.Cargos {
			if _, err := cargoStmt.ExecContext(ctx, cargo.ID, station.ID, cargo.UserID, cargo.WeightKg); err != nil {
				return fmt.Errorf("seed problem: insert cargo %q: %w", cargo.ID, err)
			}
		}
	}

	vehicleStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO vehicles (id, name, plate_number, capacity_kg, ownership, rental_cost) VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, plate_number = EXCLUDED.plate_number,
			capacity_kg = EXCLUDED.capacity_kg, ownership = EXCLUDED.ownership, rental_cost = EXCLUDED.rental_cost;`)
	if err != nil {
		return fmt.Errorf("seed problem: prepare vehicle insert: %w", err)
	}
	defer vehicleStmt.Close()

	for _, vehicle := range seed.Vehicles {
		if _, err := vehicleStmt.ExecContext(ctx, vehicle.ID, vehicle.Name, vehicle.PlateNumber, vehicle.CapacityKg, vehicle.Ownership, vehicle.RentalCost); err != nil {
			return fmt.Errorf("seed problem: insert vehicle %q: %w", vehicle.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed problem: commit tx: %w", err)
	}

	return nil
}
