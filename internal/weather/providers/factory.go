package providers

import (
	"net/http"

	"github.com/i474232898/weather-finder/internal/config"
	"github.com/i474232898/weather-finder/internal/weather"
)

// FromConfig builds the geocoder and forecast source selected by cfg.
// They share one HTTP client; each gets its own circuit breaker.
func FromConfig(cfg *config.AppConfig) (weather.Geocoder, weather.ForecastSource) {
	httpCfg := HTTPClientConfig{
		Client: &http.Client{Timeout: cfg.HTTPTimeout},
		Breaker: BreakerConfig{
			ConsecutiveFailures: cfg.BreakerFailures,
			OpenTimeout:         cfg.BreakerOpenTimeout,
		},
	}

	var geocoder weather.Geocoder
	switch cfg.GeocoderProvider {
	case "openweather":
		geocoder = NewOpenWeatherGeocoder(cfg.GeocodingURL, cfg.OpenWeatherAPIKey, httpCfg)
	case "google":
		geocoder = NewGoogleGeocoder(cfg.GoogleAPIKey)
	default:
		geocoder = NewOpenMeteoGeocoder(cfg.GeocodingURL, httpCfg)
	}

	var forecasts weather.ForecastSource
	switch cfg.ForecastProvider {
	case "weatherapi":
		forecasts = NewWeatherAPIProvider(cfg.ForecastURL, cfg.WeatherAPIKey, httpCfg)
	default:
		forecasts = NewOpenMeteoProvider(cfg.ForecastURL, httpCfg)
	}

	return geocoder, forecasts
}
