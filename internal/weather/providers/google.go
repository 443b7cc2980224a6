package providers

import (
	"context"
	"fmt"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-finder/internal/common"
	"github.com/i474232898/weather-finder/internal/weather"
)

// maxGoogleLookups caps concurrent calls into the geocoder package. Its HTTP client
// has no timeout, so an abandoned call can outlive the request that started it.
const maxGoogleLookups = 4

// GoogleGeocoder implements weather.Geocoder on top of the Google Geocoding API.
// Google returns a single best match, so at most one candidate comes back.
type GoogleGeocoder struct {
	name     string
	inflight chan struct{}
	lookup   func(name string) ([]weather.Candidate, error)
}

// NewGoogleGeocoder configures the geocoder package with apiKey.
// The key is package-global in github.com/kelvins/geocoder.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	g := &GoogleGeocoder{
		name:     "google-geocoding",
		inflight: make(chan struct{}, maxGoogleLookups),
	}
	g.lookup = g.search
	return g
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

func (g *GoogleGeocoder) Search(ctx context.Context, name string) ([]weather.Candidate, error) {
	type result struct {
		candidates []weather.Candidate
		err        error
	}

	// Wait for a free slot; stalled lookups hold theirs until the upstream answers.
	select {
	case g.inflight <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// The geocoder package takes no context.
	done := make(chan result, 1)
	go func() {
		defer func() { <-g.inflight }()
		c, err := g.lookup(name)
		done <- result{candidates: c, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.candidates, r.err
	}
}

func (g *GoogleGeocoder) search(name string) ([]weather.Candidate, error) {
	loc, err := geocoder.Geocoding(geocoder.Address{City: name})
	if err != nil {
		if isZeroResults(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("google geocoding: %w", err)
	}

	candidate := weather.Candidate{
		Name:      name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}

	addresses, err := geocoder.GeocodingReverse(loc)
	if err != nil || len(addresses) == 0 {
		// Labels are best effort.
		return []weather.Candidate{candidate}, nil
	}

	addr := addresses[0]
	if addr.City != "" {
		candidate.Name = addr.City
	}
	candidate.Admin1 = addr.State
	candidate.Country = addr.Country

	return []weather.Candidate{candidate}, nil
}

func isZeroResults(err error) bool {
	return common.HasAny(err.Error(), "ZERO_RESULTS", "no results")
}
