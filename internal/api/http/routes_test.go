package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-finder/internal/store"
	"github.com/i474232898/weather-finder/internal/weather"
)

type stubGeocoder map[string][]weather.Candidate

func (stubGeocoder) Name() string { return "stub" }

func (g stubGeocoder) Search(_ context.Context, name string) ([]weather.Candidate, error) {
	return g[name], nil
}

type stubForecasts struct{}

func (stubForecasts) Name() string { return "stub" }

func (stubForecasts) Forecast(_ context.Context, lat, lon float64) (weather.Snapshot, error) {
	return weather.NewSnapshot(
		&weather.CurrentConditions{TemperatureC: lat, ConditionCode: "0"},
		[]float64{20, 22, 23},
		[]float64{10, 12, 13},
		[]weather.ConditionCode{"0", "2", "61"},
	), nil
}

func newTestApp() *fiber.App {
	geo := stubGeocoder{
		"Cuttack": {{Name: "Cuttack", Latitude: 20.46, Longitude: 85.88}},
		"Springfield": {
			{Name: "Springfield", Latitude: 39.8, Longitude: -89.64, Admin1: "Illinois", Country: "United States"},
			{Name: "Springfield", Latitude: 37.21, Longitude: -93.29, Admin1: "Missouri", Country: "United States"},
		},
	}
	sessions := store.NewMemoryStore(10, time.Hour)
	svc := weather.NewService(sessions, geo, stubForecasts{}, weather.NewIcons(""), "Cuttack")

	app := NewApp()
	RegisterRoutes(app, svc)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp, out
}

func startSession(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp, out := do(t, app, http.MethodPost, "/api/v1/sessions", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	view := out["view"].(map[string]any)
	if view["phase"] != "ready" || view["location"] != "Cuttack" {
		t.Fatalf("expected the default location to be loaded, got %v", view)
	}
	return out["id"].(string)
}

func TestHealth(t *testing.T) {
	resp, out := do(t, newTestApp(), http.MethodGet, "/health", "")
	if resp.StatusCode != http.StatusOK || out["status"] != "ok" {
		t.Fatalf("unexpected health response: %d %v", resp.StatusCode, out)
	}
}

func TestSessionSearchFlow(t *testing.T) {
	app := newTestApp()
	id := startSession(t, app)
	base := "/api/v1/sessions/" + id

	// Ambiguous name asks for a choice.
	resp, view := do(t, app, http.MethodPost, base+"/search", `{"query":"Springfield"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if view["phase"] != "awaiting_disambiguation" {
		t.Fatalf("expected disambiguation, got %v", view["phase"])
	}
	options := view["options"].([]any)
	if len(options) != 2 || options[1].(map[string]any)["label"] != "Springfield, Missouri, United States" {
		t.Fatalf("unexpected options: %v", options)
	}

	// Picking the second option fetches with its coordinates.
	resp, view = do(t, app, http.MethodPost, base+"/select", `{"index":1}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if view["phase"] != "ready" || view["temperatureC"] != 37.21 {
		t.Fatalf("expected forecast for the second candidate, got %v", view)
	}
	if view["averageText"] != "Average Temperature: 22°C" {
		t.Fatalf("unexpected average: %v", view["averageText"])
	}

	// The session remembers its state.
	_, view = do(t, app, http.MethodGet, base, "")
	if view["location"] != "Springfield" {
		t.Fatalf("expected Springfield, got %v", view["location"])
	}

	// Selecting again is a conflict.
	resp, _ = do(t, app, http.MethodPost, base+"/select", `{"index":0}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
}

func TestSessionErrorAndBack(t *testing.T) {
	app := newTestApp()
	base := "/api/v1/sessions/" + startSession(t, app)

	_, view := do(t, app, http.MethodPost, base+"/search", `{"query":"Atlantis"}`)
	if view["phase"] != "error" || view["message"] != "Location not found" {
		t.Fatalf("expected location not found, got %v", view)
	}

	resp, view := do(t, app, http.MethodPost, base+"/back", "")
	if resp.StatusCode != http.StatusOK || view["phase"] != "loading" {
		t.Fatalf("expected back to loading, got %d %v", resp.StatusCode, view)
	}

	resp, _ = do(t, app, http.MethodPost, base+"/back", "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
}

func TestSearchValidation(t *testing.T) {
	app := newTestApp()
	base := "/api/v1/sessions/" + startSession(t, app)

	for _, body := range []string{`{}`, `{"query":"   "}`} {
		resp, out := do(t, app, http.MethodPost, base+"/search", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %s: expected status %d, got %d", body, http.StatusBadRequest, resp.StatusCode)
		}
		if out["message"] != "Please enter a location" {
			t.Fatalf("body %s: unexpected message %v", body, out["message"])
		}
	}

	resp, _ := do(t, app, http.MethodPost, base+"/select", `{"index":-1}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestUnknownSession(t *testing.T) {
	app := newTestApp()

	resp, _ := do(t, app, http.MethodGet, "/api/v1/sessions/does-not-exist", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestDeleteSession(t *testing.T) {
	app := newTestApp()
	base := "/api/v1/sessions/" + startSession(t, app)

	resp, _ := do(t, app, http.MethodDelete, base, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, resp.StatusCode)
	}
	resp, _ = do(t, app, http.MethodGet, base, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestOneShotLookup(t *testing.T) {
	app := newTestApp()

	resp, view := do(t, app, http.MethodGet, "/api/v1/weather?location=Cuttack", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if view["location"] != "Cuttack" || view["temperatureText"] != "20.46°C" {
		t.Fatalf("unexpected view: %v", view)
	}
	if len(view["days"].([]any)) != 3 {
		t.Fatalf("expected 3 days, got %v", view["days"])
	}

	resp, _ = do(t, app, http.MethodGet, "/api/v1/weather", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}
