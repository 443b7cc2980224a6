package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-finder/internal/weather"
)

const DefaultOpenWeatherGeocodingURL = "https://api.openweathermap.org/geo/1.0/direct"

// OpenWeatherGeocoder implements weather.Geocoder for the OpenWeatherMap direct geocoding API.
type OpenWeatherGeocoder struct {
	name    string
	apiKey  string
	baseURL string
	limit   int
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherGeocoder(baseURL, apiKey string, cfg HTTPClientConfig) *OpenWeatherGeocoder {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherGeocodingURL
	}
	return &OpenWeatherGeocoder{
		name:    "openweathermap-geocoding",
		apiKey:  apiKey,
		baseURL: baseURL,
		limit:   5,
		client:  cfg.Client,
		circuit: newCircuitBreaker("openweathermap-geocoding", cfg.Breaker),
	}
}

func (g *OpenWeatherGeocoder) Name() string {
	return g.name
}

func (g *OpenWeatherGeocoder) Search(ctx context.Context, name string) ([]weather.Candidate, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", g.apiKey)
		values.Set("q", name)
		values.Set("limit", fmt.Sprint(g.limit))

		u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, g.client, g.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload []struct {
		Name    string  `json:"name"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		Country string  `json:"country"`
		State   string  `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode openweather geocoding: %w", err)
	}

	candidates := make([]weather.Candidate, 0, len(payload))
	for _, p := range payload {
		candidates = append(candidates, weather.Candidate{
			Name:      p.Name,
			Latitude:  p.Lat,
			Longitude: p.Lon,
			Admin1:    p.State,
			Country:   p.Country,
		})
	}
	return candidates, nil
}
