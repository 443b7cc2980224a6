package weather

import (
	"context"
)

// Geocoder resolves a place name to zero or more candidates.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, name string) ([]Candidate, error)
}

// ForecastSource fetches current conditions and a daily forecast for coordinates
// (e.g. Open-Meteo).
type ForecastSource interface {
	Name() string
	Forecast(ctx context.Context, lat, lon float64) (Snapshot, error)
}

// SessionStore is the contract the in-memory session store must satisfy.
type SessionStore interface {
	Create(o *Orchestrator) string
	Get(id string) (*Orchestrator, error)
	Delete(id string) error
	Sweep() int
}
