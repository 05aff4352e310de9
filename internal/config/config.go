// Package config provides small env-var-with-fallback helpers shared by
// cmd/server and cmd/dbtool, lifting the getEnv helper each used to
// duplicate locally into one place.
package config

import (
	"os"
	"strconv"
)

// Get returns the named environment variable, or fallback if unset/empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetFloat returns the named environment variable parsed as a float64, or
// fallback if unset/empty/unparseable.
func GetFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
