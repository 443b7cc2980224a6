package weather

import (
	"context"
	"log"
)

// Service ties orchestrators to sessions and renders their state.
type Service struct {
	sessions        SessionStore
	geocoder        Geocoder
	forecasts       ForecastSource
	icons           Icons
	defaultLocation string
}

// NewService creates a new Service.
func NewService(sessions SessionStore, geocoder Geocoder, forecasts ForecastSource, icons Icons, defaultLocation string) *Service {
	return &Service{
		sessions:        sessions,
		geocoder:        geocoder,
		forecasts:       forecasts,
		icons:           icons,
		defaultLocation: defaultLocation,
	}
}

// NewOrchestrator returns an orchestrator wired to the service's providers.
func (s *Service) NewOrchestrator() *Orchestrator {
	return NewOrchestrator(s.geocoder, s.forecasts)
}

// Render renders st with the service's icon set.
func (s *Service) Render(st State) View {
	return Render(st, s.icons)
}

// StartSession creates a session and looks up the default location for it.
func (s *Service) StartSession(ctx context.Context) (string, View, error) {
	o := s.NewOrchestrator()
	id := s.sessions.Create(o)

	log.Printf("DEBUG: session %s started", id)

	if s.defaultLocation == "" {
		return id, s.Render(o.State()), nil
	}
	st, err := o.ResolveAndFetch(ctx, s.defaultLocation)
	return id, s.Render(st), err
}

// Current returns the view of a session's state.
func (s *Service) Current(id string) (View, error) {
	o, err := s.sessions.Get(id)
	if err != nil {
		return View{}, err
	}
	return s.Render(o.State()), nil
}

// Search runs a new query in a session.
func (s *Service) Search(ctx context.Context, id, query string) (View, error) {
	o, err := s.sessions.Get(id)
	if err != nil {
		return View{}, err
	}
	st, err := o.ResolveAndFetch(ctx, query)
	return s.Render(st), err
}

// Select picks the i-th candidate of a session's disambiguation.
func (s *Service) Select(ctx context.Context, id string, i int) (View, error) {
	o, err := s.sessions.Get(id)
	if err != nil {
		return View{}, err
	}
	st, err := o.SelectIndex(ctx, i)
	return s.Render(st), err
}

// Back clears a session's error.
func (s *Service) Back(id string) (View, error) {
	o, err := s.sessions.Get(id)
	if err != nil {
		return View{}, err
	}
	st, err := o.Back()
	return s.Render(st), err
}

// EndSession removes a session.
func (s *Service) EndSession(id string) error {
	return s.sessions.Delete(id)
}

// Lookup runs a one-shot query outside any session.
func (s *Service) Lookup(ctx context.Context, query string) (View, error) {
	o := s.NewOrchestrator()
	defer o.Close()
	st, err := o.ResolveAndFetch(ctx, query)
	return s.Render(st), err
}

// ExpireIdle drops sessions that have been idle too long and returns how many went.
func (s *Service) ExpireIdle() int {
	n := s.sessions.Sweep()
	if n > 0 {
		log.Printf("INFO: expired %d idle sessions", n)
	}
	return n
}
