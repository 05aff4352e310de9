package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"delivery-route-service/internal/domain"
)

// SqliteGeocodeCache is a SQLite-backed cache mapping a location id to its
// resolved coordinates.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Get fetches the cached coordinates for a location id.
func (s *SqliteGeocodeCache) Get(ctx context.Context, locationID string) (domain.Coordinates, bool, error) {
	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	const q = `SELECT lon, lat FROM geocode_cache WHERE location_id = ?;`

	var coords domain.Coordinates
	err := s.DB.QueryRowContext(ctx, q, locationID).Scan(&coords.Lon, &coords.Lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: %w", err)
	}
	return coords, true, nil
}

// Set stores resolved coordinates for a location id.
func (s *SqliteGeocodeCache) Set(ctx context.Context, locationID string, coords domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	const q = `INSERT OR REPLACE INTO geocode_cache (location_id, lon, lat) VALUES (?, ?, ?);`

	if _, err := s.DB.ExecContext(ctx, q, locationID, coords.Lon, coords.Lat); err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}
	return nil
}
