package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"delivery-route-service/internal/domain"
)

// PostgresProblemRepository is the Postgres-backed implementation of
// ports.ProblemRepository, for deployments where cmd/dbtool manages the
// catalog in a shared Postgres instance instead of a local SQLite file.
type PostgresProblemRepository struct{ DB *sql.DB }

func NewPostgresProblemRepository(db *sql.DB) *PostgresProblemRepository {
	return &PostgresProblemRepository{DB: db}
}

func (p *PostgresProblemRepository) GetHub(ctx context.Context) (domain.HubInfo, error) {
	if p.DB == nil {
		return domain.HubInfo{}, errors.New("postgres problem repository: DB is nil")
	}

	row := p.DB.QueryRowContext(ctx, `SELECT id, name, lat, lon FROM hub LIMIT 1;`)

	var hub domain.HubInfo
	if err := row.Scan(&hub.ID, &hub.Name, &hub.Lat, &hub.Lon); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.HubInfo{}, errors.New("get hub: no hub row seeded")
		}
		return domain.HubInfo{}, fmt.Errorf("get hub: scan row: %w", err)
	}
	return hub, nil
}

func (p *PostgresProblemRepository) ListStations(ctx context.Context) ([]domain.StationInput, error) {
	if p.DB == nil {
		return nil, errors.New("postgres problem repository: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, `SELECT id, name, code, lat, lon FROM stations ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list stations: query stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]domain.StationInput, 0, 64)
	byID := make(map[string]*domain.StationInput, 64)
	for rows.Next() {
		var st domain.StationInput
		if err := rows.Scan(&st.ID, &st.Name, &st.Code, &st.Lat, &st.Lon); err != nil {
			return nil, fmt.Errorf("list stations: scan row: %w", err)
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}
	for i := range stations {
		byID[stations[i].ID] = &stations[i]
	}

	cargoRows, err := p.DB.QueryContext(ctx, `SELECT id, station_id, user_id, weight_kg FROM cargos ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list stations: query cargos table: %w", err)
	}
	defer cargoRows.Close()

	for cargoRows.Next() {
		var cargo domain.Cargo
		var stationID string
		if err := cargoRows.Scan(&cargo.ID, &stationID, &cargo.UserID, &cargo.WeightKg); err != nil {
			return nil, fmt.Errorf("list stations: scan cargo row: %w", err)
		}
		station, ok := byID[stationID]
		if !ok {
			return nil, fmt.Errorf("list stations: cargo %q references unknown station %q", cargo.ID, stationID)
		}
		station.Cargos = append(station.Cargos, cargo)
		station.CargoCount++
		station.TotalWeightKg += cargo.WeightKg
	}
	if err := cargoRows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: cargo row iteration: %w", err)
	}

	return stations, nil
}

func (p *PostgresProblemRepository) ListVehicles(ctx context.Context) ([]domain.VehicleInput, error) {
	if p.DB == nil {
		return nil, errors.New("postgres problem repository: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, `
	SELECT
		id,
		name,
		plate_number,
		capacity_kg,
		ownership,
		rental_cost
	FROM vehicles
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.VehicleInput, 0, 16)
	for rows.Next() {
		var v domain.VehicleInput
		if err := rows.Scan(&v.ID, &v.Name, &v.PlateNumber, &v.CapacityKg, &v.Ownership, &v.RentalCost); err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}
