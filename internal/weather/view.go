package weather

import (
	"fmt"

	"github.com/i474232898/weather-finder/internal/common"
)

// View is a State flattened for presentation. Fields whose data is missing are omitted.
type View struct {
	Phase Phase  `json:"phase"`
	Text  string `json:"text,omitempty"`

	// Error.
	Message   string `json:"message,omitempty"`
	CanGoBack bool   `json:"canGoBack,omitempty"`

	// Disambiguation.
	Title   string       `json:"title,omitempty"`
	Options []OptionView `json:"options,omitempty"`

	// Ready.
	Location        string    `json:"location,omitempty"`
	TemperatureC    *float64  `json:"temperatureC,omitempty"`
	TemperatureText string    `json:"temperatureText,omitempty"`
	Condition       Condition `json:"condition,omitempty"`
	IconURL         string    `json:"iconUrl,omitempty"`
	AverageMaxC     *float64  `json:"averageMaxC,omitempty"`
	AverageText     string    `json:"averageText,omitempty"`
	Days            []DayView `json:"days,omitempty"`
}

// OptionView is one selectable candidate.
type OptionView struct {
	Index     int     `json:"index"`
	Label     string  `json:"label"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DayView is one row of the daily forecast.
type DayView struct {
	Day     int           `json:"day"`
	Label   string        `json:"label"`
	MaxC    float64       `json:"maxC"`
	MinC    float64       `json:"minC"`
	Code    ConditionCode `json:"code,omitempty"`
	IconURL string        `json:"iconUrl,omitempty"`
}

// Render builds the View for s.
func Render(s State, icons Icons) View {
	switch st := s.(type) {
	case Failed:
		return View{Phase: PhaseError, Message: st.Message, CanGoBack: true}
	case AwaitingDisambiguation:
		v := View{Phase: PhaseAwaitingDisambiguation, Title: "Select a Location"}
		for i, c := range st.Candidates {
			v.Options = append(v.Options, OptionView{
				Index:     i,
				Label:     c.Label(),
				Name:      c.Name,
				Latitude:  c.Latitude,
				Longitude: c.Longitude,
			})
		}
		return v
	case Ready:
		return renderReady(st, icons)
	default:
		return View{Phase: PhaseLoading, Text: "Loading..."}
	}
}

func renderReady(r Ready, icons Icons) View {
	v := View{Phase: PhaseReady, Location: r.LocationName}

	if cur := r.Snapshot.Current; cur != nil {
		t := cur.TemperatureC
		v.TemperatureC = &t
		v.TemperatureText = common.FormatNumber(t) + "°C"
		v.Condition = Classify(cur.ConditionCode)
		v.IconURL = icons.URL(cur.ConditionCode)
	}

	if avg, ok := r.Snapshot.AverageDailyMax(); ok {
		v.AverageMaxC = &avg
		v.AverageText = fmt.Sprintf("Average Temperature: %s°C", common.FormatNumber(common.RoundHalfUp(avg)))
	}

	for i := 0; i < r.Snapshot.Days(); i++ {
		maxC := r.Snapshot.DailyMaxC[i]
		code := r.Snapshot.DailyConditionCodes[i]
		v.Days = append(v.Days, DayView{
			Day:     i + 1,
			Label:   fmt.Sprintf("Day %d: %s°C", i+1, common.FormatNumber(maxC)),
			MaxC:    maxC,
			MinC:    r.Snapshot.DailyMinC[i],
			Code:    code,
			IconURL: icons.URL(code),
		})
	}

	return v
}
