package weather

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Candidate is one geocoding match for a place-name query.
type Candidate struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Admin1    string  `json:"admin1"`
	Country   string  `json:"country"`
}

// Label returns the "name, admin1, country" form shown when choosing between candidates.
// Empty parts are skipped.
func (c Candidate) Label() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Name, c.Admin1, c.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// ConditionCode is a provider weather code. Open-Meteo sends WMO codes as numbers,
// icon-style providers send strings such as "01d".
type ConditionCode string

// UnmarshalJSON accepts a JSON string, number or null.
func (c *ConditionCode) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = ConditionCode(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("invalid condition code %s: %w", b, err)
	}
	if f == math.Trunc(f) {
		*c = ConditionCode(strconv.FormatInt(int64(f), 10))
	} else {
		*c = ConditionCode(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return nil
}

// CurrentConditions is the current-weather part of a forecast response.
type CurrentConditions struct {
	TemperatureC  float64       `json:"temperatureC"`
	ConditionCode ConditionCode `json:"conditionCode"`
}

// Snapshot is the current-conditions-plus-multi-day-forecast payload for one location.
// The three daily slices are index-aligned and always have the same length.
type Snapshot struct {
	// Current is nil when the provider returned no current conditions.
	Current *CurrentConditions `json:"current,omitempty"`

	DailyMaxC           []float64       `json:"dailyMaxC"`
	DailyMinC           []float64       `json:"dailyMinC"`
	DailyConditionCodes []ConditionCode `json:"dailyConditionCodes"`
}

// NewSnapshot builds a Snapshot, cutting the daily slices down to the shortest one
// so they stay index-aligned. A nil slice counts as empty.
func NewSnapshot(current *CurrentConditions, maxC, minC []float64, codes []ConditionCode) Snapshot {
	n := min(len(maxC), len(minC), len(codes))
	return Snapshot{
		Current:             current,
		DailyMaxC:           append([]float64{}, maxC[:n]...),
		DailyMinC:           append([]float64{}, minC[:n]...),
		DailyConditionCodes: append([]ConditionCode{}, codes[:n]...),
	}
}

// Days returns the number of forecast days.
func (s Snapshot) Days() int {
	return len(s.DailyMaxC)
}

// AverageDailyMax returns the arithmetic mean of DailyMaxC.
// ok is false when there are no days.
func (s Snapshot) AverageDailyMax() (avg float64, ok bool) {
	if len(s.DailyMaxC) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range s.DailyMaxC {
		sum += v
	}
	return sum / float64(len(s.DailyMaxC)), true
}
