package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"
)

// SQLDistanceCache is a Postgres-backed cache for station-pair distance
// matrix entries, keyed by the normalized (from, to) station id pair.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

// Get fetches a cached distance-matrix entry for the from->to pair.
func (s *SQLDistanceCache) Get(ctx context.Context, fromID, toID string) (_ domain.DistanceMatrixEntry, _ bool, err error) {
	defer obs.Time(ctx, "distance.cache.Get")(&err)

	if s.DB == nil {
		return domain.DistanceMatrixEntry{}, false, errors.New("distance cache: db is nil")
	}

	const q = `
	SELECT distance_km, duration_minutes, polyline
	FROM distance_cache
	WHERE from_id = $1 AND to_id = $2;
	`

	var entry domain.DistanceMatrixEntry
	err = s.DB.QueryRowContext(ctx, q, fromID, toID).Scan(&entry.DistanceKm, &entry.DurationMinutes, &entry.Polyline)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DistanceMatrixEntry{}, false, nil
	}
	if err != nil {
		return domain.DistanceMatrixEntry{}, false, fmt.Errorf("get distance cache: %w", err)
	}
	return entry, true, nil
}

// Set stores a distance-matrix entry for the from->to pair.
func (s *SQLDistanceCache) Set(ctx context.Context, fromID, toID string, entry domain.DistanceMatrixEntry) (err error) {
	defer obs.Time(ctx, "distance.cache.Set")(&err)

	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}

	const q = `
	INSERT INTO distance_cache (from_id, to_id, distance_km, duration_minutes, polyline)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (from_id, to_id) DO UPDATE
	SET distance_km = EXCLUDED.distance_km,
		duration_minutes = EXCLUDED.duration_minutes,
		polyline = EXCLUDED.polyline;
	`

	if _, err := s.DB.ExecContext(ctx, q, fromID, toID, entry.DistanceKm, entry.DurationMinutes, entry.Polyline); err != nil {
		return fmt.Errorf("insert distance cache: %w", err)
	}
	return nil
}
