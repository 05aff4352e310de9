package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"delivery-route-service/internal/adapters/cache"
	"delivery-route-service/internal/adapters/distance"
	"delivery-route-service/internal/adapters/repositories"
	"delivery-route-service/internal/api"
	"delivery-route-service/internal/config"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/ports"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// cacheTTL bounds how long a distance/geocode cache entry is trusted before
// a fresh lookup is forced, for the Redis-backed cache tiers.
const cacheTTL = 7 * 24 * time.Hour

// main is the application composition root. It wires concrete adapters
// (SQLite, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/problem.json")
	port := config.Get("PORT", "8080")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	distanceCache, geocodeCache, err := buildCaches(db)
	if err != nil {
		log.Fatal(err)
	}

	var provider ports.DistanceMatrixProvider
	if orsKey := strings.TrimSpace(os.Getenv("ORS_API_KEY")); orsKey != "" {
		p, err := distance.NewORSDistanceProvider(orsKey, distanceCache, geocodeCache)
		if err != nil {
			log.Fatal(err)
		}
		provider = p
	} else {
		log.Println("ORS_API_KEY not set: distance matrix gap-filling disabled, problems must supply a complete matrix")
	}

	repo := repositories.NewSqliteProblemRepository(db)

	defaultParams := domain.Parameters{
		CostPerKm:        config.GetFloat("COST_PER_KM", 1.0),
		RentalCost:       config.GetFloat("RENTAL_COST", 200.0),
		RentalCapacityKg: config.GetFloat("RENTAL_CAPACITY_KG", 500.0),
	}

	router := api.NewRouter(repo, provider, defaultParams)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildCaches selects the distance/geocode cache backend from CACHE_BACKEND:
// "none" disables caching, "redis" uses one Redis node or, when REDIS_ADDRS
// lists several, a distance cache sharded across them. Any other value,
// "postgres" included, selects the SQLite caches on db.
func buildCaches(db *sql.DB) (ports.DistanceCache, ports.GeocodeCache, error) {
	switch strings.ToLower(config.Get("CACHE_BACKEND", "sqlite")) {
	case "none":
		return nil, nil, nil

	case "redis":
		addrs := strings.Split(config.Get("REDIS_ADDRS", "localhost:6379"), ",")
		for i := range addrs {
			addrs[i] = strings.TrimSpace(addrs[i])
		}

		if len(addrs) == 1 {
			client := redis.NewClient(&redis.Options{Addr: addrs[0]})
			return cache.NewRedisDistanceCache(client, cacheTTL), cache.NewRedisGeocodeCache(client, cacheTTL), nil
		}

		shards := make([]ports.DistanceCache, len(addrs))
		for i, addr := range addrs {
			client := redis.NewClient(&redis.Options{Addr: addr})
			shards[i] = cache.NewRedisDistanceCache(client, cacheTTL)
		}
		sharded := cache.NewShardedDistanceCache(addrs, shards)
		geocode := cache.NewRedisGeocodeCache(redis.NewClient(&redis.Options{Addr: addrs[0]}), cacheTTL)
		return sharded, geocode, nil

	default: // "sqlite"
		return cache.NewSqliteDistanceCache(db), cache.NewSqliteGeocodeCache(db), nil
	}
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
