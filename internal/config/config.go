package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Which upstreams to use.
	GeocoderProvider string `env:"GEOCODER_PROVIDER" envDefault:"openmeteo" validate:"oneof=openmeteo openweather google"`
	ForecastProvider string `env:"FORECAST_PROVIDER" envDefault:"openmeteo" validate:"oneof=openmeteo weatherapi"`

	// Upstream endpoints ("" = the provider's public endpoint).
	GeocodingURL string `env:"GEOCODING_URL" validate:"omitempty,url"`
	ForecastURL  string `env:"FORECAST_URL"  validate:"omitempty,url"`

	// API keys for the providers that need one.
	OpenWeatherAPIKey string `env:"OPENWEATHER_API_KEY" validate:"required_if=GeocoderProvider openweather"`
	WeatherAPIKey     string `env:"WEATHERAPI_API_KEY"  validate:"required_if=ForecastProvider weatherapi"`
	GoogleAPIKey      string `env:"GOOGLE_GEOCODER_API_KEY" validate:"required_if=GeocoderProvider google"`

	// HTTPTimeout bounds outbound calls (0 = transport default).
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"0s" validate:"gte=0"`

	// Circuit breaker per upstream.
	BreakerFailures    uint32        `env:"BREAKER_FAILURES"     envDefault:"5"   validate:"gte=1"`
	BreakerOpenTimeout time.Duration `env:"BREAKER_OPEN_TIMEOUT" envDefault:"1m"`

	IconURLTemplate string `env:"ICON_URL_TEMPLATE" envDefault:"https://openweathermap.org/img/wn/%s@2x.png" validate:"required,contains=%s"`

	// DefaultLocation is looked up when a session starts.
	DefaultLocation string `env:"DEFAULT_LOCATION" envDefault:"Cuttack"`

	// Session retention (0 disables a limit).
	SessionMaxCount int           `env:"SESSION_MAX_COUNT" envDefault:"1000" validate:"gte=0"`
	SessionMaxIdle  time.Duration `env:"SESSION_MAX_IDLE"  envDefault:"30m"`
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL"    envDefault:"5m"`
}

var validate = validator.New()

// Load reads configuration from environment (and .env, when present) with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg, err := env.ParseAs[AppConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
