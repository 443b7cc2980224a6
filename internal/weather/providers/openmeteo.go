package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-finder/internal/weather"
)

const (
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
)

// OpenMeteoProvider implements weather.ForecastSource for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(baseURL string, cfg HTTPClientConfig) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		client:  cfg.Client,
		circuit: newCircuitBreaker("openmeteo", cfg.Breaker),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// openMeteoForecast mirrors the parts of the forecast response we read.
// Pointers tell a missing section apart from an empty one.
type openMeteoForecast struct {
	CurrentWeather *struct {
		Temperature float64               `json:"temperature"`
		WeatherCode weather.ConditionCode `json:"weathercode"`
	} `json:"current_weather"`
	Daily *struct {
		TemperatureMax []float64               `json:"temperature_2m_max"`
		TemperatureMin []float64               `json:"temperature_2m_min"`
		WeatherCode    []weather.ConditionCode `json:"weathercode"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) Forecast(ctx context.Context, lat, lon float64) (weather.Snapshot, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode")
		values.Set("current_weather", "true")
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.Snapshot{}, err
	}
	defer resp.Body.Close()

	var payload openMeteoForecast
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("decode openmeteo forecast: %w", err)
	}

	var current *weather.CurrentConditions
	if cw := payload.CurrentWeather; cw != nil {
		current = &weather.CurrentConditions{
			TemperatureC:  cw.Temperature,
			ConditionCode: cw.WeatherCode,
		}
	}

	if payload.Daily == nil {
		return weather.NewSnapshot(current, nil, nil, nil), nil
	}
	return weather.NewSnapshot(
		current,
		payload.Daily.TemperatureMax,
		payload.Daily.TemperatureMin,
		payload.Daily.WeatherCode,
	), nil
}

// OpenMeteoGeocoder implements weather.Geocoder for the Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoGeocoder(baseURL string, cfg HTTPClientConfig) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &OpenMeteoGeocoder{
		name:    "openmeteo-geocoding",
		baseURL: baseURL,
		client:  cfg.Client,
		circuit: newCircuitBreaker("openmeteo-geocoding", cfg.Breaker),
	}
}

func (g *OpenMeteoGeocoder) Name() string {
	return g.name
}

// Search returns the matches for name in API order. A response without "results"
// yields no candidates.
func (g *OpenMeteoGeocoder) Search(ctx context.Context, name string) ([]weather.Candidate, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", name)

		u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, g.client, g.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []weather.Candidate `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode openmeteo geocoding: %w", err)
	}

	return payload.Results, nil
}
