package repositories

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, InitSchema(db))
	return db
}

func writeSeedFixture(t *testing.T, body string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "seed-*.json")
	require.NoError(t, err)
	_, err = f.WriteString(body)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

const sampleSeedJSON = `{
	"hub": {"id": "HUB", "name": "Depot", "lat": 33.45, "lon": -112.07},
	"stations": [
		{
			"id": "s1", "name": "Station 1", "code": "S1", "lat": 33.46, "lon": -112.06,
			"cargos": [{"id": "c1", "user_id": "u1", "weight_kg": 10}, {"id": "c2", "user_id": "u2", "weight_kg": 5}]
		},
		{"id": "s2", "name": "Station 2", "code": "S2", "lat": 33.47, "lon": -112.05, "cargos": []}
	],
	"vehicles": [
		{"id": "v1", "name": "Van 1", "plate_number": "AZ-1", "capacity_kg": 100, "ownership": "owned", "rental_cost": 0}
	]
}`

func TestSqliteProblemRepositoryRoundTrip(t *testing.T) {
	db := openTestDB(t)
	path := writeSeedFixture(t, sampleSeedJSON)
	require.NoError(t, SeedFromJSON(db, path))

	repo := NewSqliteProblemRepository(db)
	ctx := context.Background()

	hub, err := repo.GetHub(ctx)
	require.NoError(t, err)
	require.Equal(t, "HUB", hub.ID)
	require.Equal(t, "Depot", hub.Name)

	stations, err := repo.ListStations(ctx)
	require.NoError(t, err)
	require.Len(t, stations, 2)

	var s1 *struct {
		cargoCount int
		weight     float64
	}
	for _, s := range stations {
		if s.ID == "s1" {
			s1 = &struct {
				cargoCount int
				weight     float64
			}{s.CargoCount, s.TotalWeightKg}
		}
	}
	require.NotNil(t, s1)
	require.Equal(t, 2, s1.cargoCount)
	require.InDelta(t, 15.0, s1.weight, 1e-9)

	vehicles, err := repo.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	require.Equal(t, "owned", vehicles[0].Ownership)
}

func TestSqliteProblemRepositoryGetHubFailsWhenUnseeded(t *testing.T) {
	db := openTestDB(t)
	repo := NewSqliteProblemRepository(db)

	_, err := repo.GetHub(context.Background())
	require.Error(t, err)
}
