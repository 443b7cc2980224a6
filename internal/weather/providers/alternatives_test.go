package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/i474232898/weather-finder/internal/config"
	"github.com/i474232898/weather-finder/internal/weather"
)

func TestOpenWeatherGeocoderSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("appid") != "key" || q.Get("q") != "Springfield" || q.Get("limit") != "5" {
			http.Error(w, "bad query "+r.URL.RawQuery, http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`[
			{"name":"Springfield","local_names":{"en":"Springfield"},"lat":39.8,"lon":-89.64,"country":"US","state":"Illinois"},
			{"name":"Springfield","lat":37.21,"lon":-93.29,"country":"US","state":"Missouri"}
		]`))
	}))
	defer srv.Close()

	g := NewOpenWeatherGeocoder(srv.URL, "key", testHTTPConfig())
	candidates, err := g.Search(context.Background(), "Springfield")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := weather.Candidate{Name: "Springfield", Latitude: 37.21, Longitude: -93.29, Admin1: "Missouri", Country: "US"}
	if len(candidates) != 2 || candidates[1] != want {
		t.Fatalf("unexpected candidates: %+v", candidates)
	}
}

func TestOpenWeatherGeocoderRequiresKey(t *testing.T) {
	g := NewOpenWeatherGeocoder("", "", testHTTPConfig())
	if _, err := g.Search(context.Background(), "Paris"); err == nil {
		t.Fatalf("expected an error without an api key")
	}
}

func TestWeatherAPIProviderForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "key" || q.Get("q") != "20.460000,85.880000" {
			http.Error(w, "bad query "+r.URL.RawQuery, http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{
			"current": {"temp_c": 22.4, "condition": {"text": "Sunny", "code": 1000}},
			"forecast": {"forecastday": [
				{"date": "2026-10-18", "day": {"maxtemp_c": 30.1, "mintemp_c": 21, "condition": {"text": "Patchy rain possible", "code": 1063}}},
				{"date": "2026-10-19", "day": {"maxtemp_c": 29, "mintemp_c": 20.5, "condition": {"text": "Moderate or heavy rain with thunder", "code": 1276}}}
			]}
		}`))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.URL, "key", testHTTPConfig())
	snap, err := p.Forecast(context.Background(), 20.46, 85.88)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Current == nil || snap.Current.TemperatureC != 22.4 || snap.Current.ConditionCode != "01d" {
		t.Fatalf("unexpected current conditions: %+v", snap.Current)
	}
	if snap.Days() != 2 || snap.DailyMaxC[0] != 30.1 || snap.DailyMinC[1] != 20.5 {
		t.Fatalf("unexpected daily forecast: %+v", snap)
	}
	if snap.DailyConditionCodes[0] != "10d" || snap.DailyConditionCodes[1] != "11d" {
		t.Fatalf("unexpected daily codes: %v", snap.DailyConditionCodes)
	}
}

func TestMapWeatherAPICondition(t *testing.T) {
	cases := map[string]weather.Condition{
		"Partly cloudy":        weather.ConditionCloudy,
		"Overcast":             weather.ConditionCloudy,
		"Light snow showers":   weather.ConditionSnow,
		"Freezing fog":         weather.ConditionMist,
		"Thundery outbreaks":   weather.ConditionStorm,
		"Clear":                weather.ConditionClear,
		"Light drizzle":        weather.ConditionRain,
		"":                     weather.ConditionUnknown,
		"Something unheard of": weather.ConditionUnknown,
	}
	for text, want := range cases {
		if got := mapWeatherAPICondition(text); got != want {
			t.Errorf("mapWeatherAPICondition(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestFromConfig(t *testing.T) {
	geo, fc := FromConfig(&config.AppConfig{GeocoderProvider: "openmeteo", ForecastProvider: "openmeteo"})
	if geo.Name() != "openmeteo-geocoding" || fc.Name() != "openmeteo" {
		t.Fatalf("unexpected defaults: %s / %s", geo.Name(), fc.Name())
	}

	geo, fc = FromConfig(&config.AppConfig{
		GeocoderProvider:  "openweather",
		OpenWeatherAPIKey: "k",
		ForecastProvider:  "weatherapi",
		WeatherAPIKey:     "k",
	})
	if geo.Name() != "openweathermap-geocoding" || fc.Name() != "weatherapi" {
		t.Fatalf("unexpected providers: %s / %s", geo.Name(), fc.Name())
	}
}
