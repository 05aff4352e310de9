package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"delivery-route-service/internal/domain"
)

// SqliteDistanceCache is a SQLite-backed cache for station-pair distance
// matrix entries. Keys are expected to be consistent (e.g., already
// normalized) by the caller.
type SqliteDistanceCache struct {
	DB *sql.DB
}

func NewSqliteDistanceCache(db *sql.DB) *SqliteDistanceCache {
	return &SqliteDistanceCache{DB: db}
}

// Get fetches a cached distance-matrix entry for the from->to pair.
func (s *SqliteDistanceCache) Get(ctx context.Context, fromID, toID string) (domain.DistanceMatrixEntry, bool, error) {
	if s.DB == nil {
		return domain.DistanceMatrixEntry{}, false, errors.New("distance cache: db is nil")
	}

	const q = `SELECT distance_km, duration_minutes, polyline FROM distance_cache WHERE from_id = ? AND to_id = ?;`

	var entry domain.DistanceMatrixEntry
	err := s.DB.QueryRowContext(ctx, q, fromID, toID).Scan(&entry.DistanceKm, &entry.DurationMinutes, &entry.Polyline)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DistanceMatrixEntry{}, false, nil
	}
	if err != nil {
		return domain.DistanceMatrixEntry{}, false, fmt.Errorf("get distance cache: %w", err)
	}
	return entry, true, nil
}

// Set stores a distance-matrix entry for the from->to pair.
func (s *SqliteDistanceCache) Set(ctx context.Context, fromID, toID string, entry domain.DistanceMatrixEntry) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}

	const q = `
	INSERT OR REPLACE INTO distance_cache (from_id, to_id, distance_km, duration_minutes, polyline)
	VALUES (?, ?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, fromID, toID, entry.DistanceKm, entry.DurationMinutes, entry.Polyline); err != nil {
		return fmt.Errorf("insert distance cache: %w", err)
	}
	return nil
}
