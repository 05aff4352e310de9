package distance

import (
	"context"
	"fmt"

	"delivery-route-service/internal/ports"
)

// MockPair is one fixed origin->destination distance used in tests.
type MockPair struct {
	From, To        string
	DistanceKm      float64
	DurationMinutes float64
}

// MockDistanceProvider answers GetDistance from a fixed table, for tests
// that need a DistanceProvider without calling out to a real backend.
type MockDistanceProvider struct {
	m map[string]ports.DistanceResult
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = ports.DistanceResult{DistanceKm: p.DistanceKm, DurationMinutes: p.DurationMinutes}
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, origin, destination ports.Location) (ports.DistanceResult, error) {
	r, ok := p.m[origin.ID+"|"+destination.ID]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %q -> %q", origin.ID, destination.ID)
	}
	return r, nil
}
