package api

import (
	"net/http"

	"delivery-route-service/internal/api/handlers"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(repo ports.ProblemRepository, provider ports.DistanceMatrixProvider, defaultParams domain.Parameters) http.Handler {
	mux := http.NewServeMux()

	optimizeHandler := &handlers.OptimizeHandler{
		Repo:             repo,
		DistanceProvider: provider,
		DefaultParams:    defaultParams,
	}
	validateHandler := &handlers.ValidateHandler{
		Repo:             repo,
		DistanceProvider: provider,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/validate", validateHandler.Validate)

	return loggingMiddleware(requestIDMiddleware(corsMiddleware(mux)))
}
