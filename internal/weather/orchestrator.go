package weather

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
)

// User-facing messages carried by Failed.
const (
	MessageLocationNotFound = "Location not found"
	MessageFetchFailed      = "Failed to fetch weather data"
)

var (
	// ErrEmptyQuery is returned when the query is blank.
	ErrEmptyQuery = errors.New("please enter a location")
	// ErrInvalidState is returned when an operation does not apply to the current state.
	ErrInvalidState = errors.New("operation not valid in current state")
	// ErrInvalidCandidate is returned when a candidate index is out of range.
	ErrInvalidCandidate = errors.New("no candidate at that index")
	// ErrSuperseded is returned when a newer request replaced this one before it finished.
	ErrSuperseded = errors.New("request superseded by a newer one")
)

// Orchestrator sequences the geocoding and forecast lookups for one client and owns
// its State. Every request is tagged with a generation; results from anything but
// the latest generation are dropped.
type Orchestrator struct {
	geocoder  Geocoder
	forecasts ForecastSource

	mu         sync.Mutex
	state      State
	generation uint64
	cancel     context.CancelFunc
}

// NewOrchestrator creates an Orchestrator in the Loading state.
func NewOrchestrator(geocoder Geocoder, forecasts ForecastSource) *Orchestrator {
	return &Orchestrator{
		geocoder:  geocoder,
		forecasts: forecasts,
		state:     Loading{},
	}
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// ResolveAndFetch geocodes query and, when it resolves to a single place, fetches
// its forecast. Several matches leave the orchestrator in AwaitingDisambiguation.
func (o *Orchestrator) ResolveAndFetch(ctx context.Context, query string) (State, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return o.State(), ErrEmptyQuery
	}

	ctx, gen, cancel, err := o.begin(ctx, nil)
	if err != nil {
		return o.State(), err
	}
	defer cancel()

	candidates, err := o.geocoder.Search(ctx, query)
	if err != nil {
		log.Printf("ERROR: geocoder %s failed for %q: %v", o.geocoder.Name(), query, err)
		return o.commit(gen, Failed{Message: MessageFetchFailed})
	}

	log.Printf("DEBUG: %q resolved to %d candidates", query, len(candidates))

	switch len(candidates) {
	case 0:
		return o.commit(gen, Failed{Message: MessageLocationNotFound})
	case 1:
		return o.fetch(ctx, gen, candidates[0], query)
	default:
		return o.commit(gen, AwaitingDisambiguation{Candidates: candidates})
	}
}

// SelectCandidate closes a disambiguation and fetches the forecast for c.
// c must be one of the candidates currently on offer.
func (o *Orchestrator) SelectCandidate(ctx context.Context, c Candidate) (State, error) {
	return o.selectWith(ctx, func(awaiting AwaitingDisambiguation) (Candidate, error) {
		for _, offered := range awaiting.Candidates {
			if offered == c {
				return c, nil
			}
		}
		return Candidate{}, ErrInvalidCandidate
	})
}

// SelectIndex is SelectCandidate for the i-th candidate of the current disambiguation.
func (o *Orchestrator) SelectIndex(ctx context.Context, i int) (State, error) {
	return o.selectWith(ctx, func(awaiting AwaitingDisambiguation) (Candidate, error) {
		if i < 0 || i >= len(awaiting.Candidates) {
			return Candidate{}, ErrInvalidCandidate
		}
		return awaiting.Candidates[i], nil
	})
}

// selectWith resolves pick against the current disambiguation while holding the
// lock, then fetches the chosen candidate.
func (o *Orchestrator) selectWith(ctx context.Context, pick func(AwaitingDisambiguation) (Candidate, error)) (State, error) {
	var chosen Candidate
	ctx, gen, cancel, err := o.begin(ctx, func(s State) error {
		awaiting, ok := s.(AwaitingDisambiguation)
		if !ok {
			return ErrInvalidState
		}
		c, err := pick(awaiting)
		if err != nil {
			return err
		}
		chosen = c
		return nil
	})
	if err != nil {
		return o.State(), err
	}
	defer cancel()

	return o.fetch(ctx, gen, chosen, chosen.Name)
}

// Back clears a Failed state and returns to Loading. Nothing is re-fetched.
func (o *Orchestrator) Back() (State, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.state.(Failed); !ok {
		return o.state, ErrInvalidState
	}
	o.generation++
	o.state = Loading{}
	return o.state, nil
}

// Close cancels any in-flight request.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

func (o *Orchestrator) fetch(ctx context.Context, gen uint64, c Candidate, name string) (State, error) {
	snapshot, err := o.forecasts.Forecast(ctx, c.Latitude, c.Longitude)
	if err != nil {
		log.Printf("ERROR: forecast source %s failed for %s (%f,%f): %v",
			o.forecasts.Name(), name, c.Latitude, c.Longitude, err)
		return o.commit(gen, Failed{Message: MessageFetchFailed})
	}
	return o.commit(gen, Ready{LocationName: name, Snapshot: snapshot})
}

// begin starts a new generation: the previous request is cancelled and the state
// becomes Loading. guard, when set, is checked against the current state first.
func (o *Orchestrator) begin(ctx context.Context, guard func(State) error) (context.Context, uint64, context.CancelFunc, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if guard != nil {
		if err := guard(o.state); err != nil {
			return nil, 0, nil, err
		}
	}

	if o.cancel != nil {
		o.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.generation++
	o.state = Loading{}

	return ctx, o.generation, cancel, nil
}

// commit stores s if gen is still the latest generation.
func (o *Orchestrator) commit(gen uint64, s State) (State, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		log.Printf("DEBUG: dropping %s result of generation %d (latest %d)", s.Phase(), gen, o.generation)
		return o.state, ErrSuperseded
	}
	o.state = s
	return s, nil
}
