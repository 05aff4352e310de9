package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"
)

// SQLGeocodeCache is a Postgres-backed cache mapping station/hub ids to
// resolved coordinates.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Get fetches the cached coordinates for a location id.
func (s *SQLGeocodeCache) Get(ctx context.Context, locationID string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	const q = `SELECT lon, lat FROM geocode_cache WHERE location_id = $1;`

	var coords domain.Coordinates
	err = s.DB.QueryRowContext(ctx, q, locationID).Scan(&coords.Lon, &coords.Lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: %w", err)
	}
	return coords, true, nil
}

// Set stores resolved coordinates for a location id.
func (s *SQLGeocodeCache) Set(ctx context.Context, locationID string, coords domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode.cache.Set")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	const q = `
	INSERT INTO geocode_cache (location_id, lon, lat)
	VALUES ($1, $2, $3)
	ON CONFLICT (location_id) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`

	if _, err := s.DB.ExecContext(ctx, q, locationID, coords.Lon, coords.Lat); err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}
	return nil
}
