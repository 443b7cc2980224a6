package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-finder/internal/common"
	"github.com/i474232898/weather-finder/internal/weather"
)

const DefaultWeatherAPIURL = "https://api.weatherapi.com/v1/forecast.json"

// WeatherAPIProvider implements weather.ForecastSource for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	days    int
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(baseURL, apiKey string, cfg HTTPClientConfig) *WeatherAPIProvider {
	if baseURL == "" {
		baseURL = DefaultWeatherAPIURL
	}
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: baseURL,
		days:    7,
		client:  cfg.Client,
		circuit: newCircuitBreaker("weatherapi", cfg.Breaker),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type weatherAPICondition struct {
	Text string `json:"text"`
}

// Forecast maps WeatherAPI's condition texts onto icon codes, since its numeric
// codes are not WMO codes.
func (p *WeatherAPIProvider) Forecast(ctx context.Context, lat, lon float64) (weather.Snapshot, error) {
	if p.apiKey == "" {
		return weather.Snapshot{}, fmt.Errorf("weatherapi api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		// WeatherAPI uses "q" for location; it accepts "lat,lon".
		values.Set("q", fmt.Sprintf("%f,%f", lat, lon))
		values.Set("days", fmt.Sprint(p.days))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.Snapshot{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current *struct {
			TempC     float64             `json:"temp_c"`
			Condition weatherAPICondition `json:"condition"`
		} `json:"current"`
		Forecast struct {
			ForecastDay []struct {
				Day struct {
					MaxTempC  float64             `json:"maxtemp_c"`
					MinTempC  float64             `json:"mintemp_c"`
					Condition weatherAPICondition `json:"condition"`
				} `json:"day"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("decode weatherapi forecast: %w", err)
	}

	var current *weather.CurrentConditions
	if c := payload.Current; c != nil {
		current = &weather.CurrentConditions{
			TemperatureC:  c.TempC,
			ConditionCode: weather.IconCode(mapWeatherAPICondition(c.Condition.Text)),
		}
	}

	days := payload.Forecast.ForecastDay
	maxC := make([]float64, 0, len(days))
	minC := make([]float64, 0, len(days))
	codes := make([]weather.ConditionCode, 0, len(days))
	for _, d := range days {
		maxC = append(maxC, d.Day.MaxTempC)
		minC = append(minC, d.Day.MinTempC)
		codes = append(codes, weather.IconCode(mapWeatherAPICondition(d.Day.Condition.Text)))
	}

	return weather.NewSnapshot(current, maxC, minC, codes), nil
}

func mapWeatherAPICondition(text string) weather.Condition {
	switch {
	case text == "":
		return weather.ConditionUnknown
	case common.HasAny(text, "thunder", "storm"):
		return weather.ConditionStorm
	case common.HasAny(text, "snow", "sleet", "blizzard", "ice pellets"):
		return weather.ConditionSnow
	case common.HasAny(text, "rain", "shower", "drizzle"):
		return weather.ConditionRain
	case common.HasAny(text, "mist", "fog"):
		return weather.ConditionMist
	case common.HasAny(text, "cloud", "overcast"):
		return weather.ConditionCloudy
	case common.HasAny(text, "sunny", "clear"):
		return weather.ConditionClear
	default:
		return weather.ConditionUnknown
	}
}
