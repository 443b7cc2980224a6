package weather

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultIconURLTemplate points at the OpenWeatherMap icon set.
const DefaultIconURLTemplate = "https://openweathermap.org/img/wn/%s@2x.png"

var iconCodePattern = regexp.MustCompile(`^\d{2}[dn]$`)

// Icons maps condition codes to image URLs.
type Icons struct {
	template string
}

// NewIcons creates an Icons using template, which must contain one %s verb for the icon name.
func NewIcons(template string) Icons {
	if template == "" {
		template = DefaultIconURLTemplate
	}
	return Icons{template: template}
}

// URL returns the image URL for code, or "" when the code has no icon.
func (i Icons) URL(code ConditionCode) string {
	name := iconName(code)
	if name == "" {
		return ""
	}
	return fmt.Sprintf(i.template, name)
}

// Classify maps a WMO weather code (as used by Open-Meteo) to a Condition.
// Icon-style codes are classified by their numeric prefix.
func Classify(code ConditionCode) Condition {
	s := string(code)
	if iconCodePattern.MatchString(s) {
		return classifyIcon(s[:2])
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return ConditionUnknown
	}

	// Mapping based on Open-Meteo weather codes (simplified).
	switch {
	case n == 0:
		return ConditionClear
	case n >= 1 && n <= 3:
		return ConditionCloudy
	case n == 45 || n == 48:
		return ConditionMist
	case (n >= 51 && n <= 67) || (n >= 80 && n <= 82):
		return ConditionRain
	case (n >= 71 && n <= 77) || n == 85 || n == 86:
		return ConditionSnow
	case n >= 95 && n <= 99:
		return ConditionStorm
	default:
		return ConditionUnknown
	}
}

func classifyIcon(prefix string) Condition {
	switch prefix {
	case "01":
		return ConditionClear
	case "02", "03", "04":
		return ConditionCloudy
	case "09", "10":
		return ConditionRain
	case "11":
		return ConditionStorm
	case "13":
		return ConditionSnow
	case "50":
		return ConditionMist
	default:
		return ConditionUnknown
	}
}

func iconName(code ConditionCode) string {
	if iconCodePattern.MatchString(string(code)) {
		return string(code)
	}
	return string(IconCode(Classify(code)))
}

// IconCode returns the daytime icon code for c, or "" for ConditionUnknown.
func IconCode(c Condition) ConditionCode {
	switch c {
	case ConditionClear:
		return "01d"
	case ConditionCloudy:
		return "03d"
	case ConditionMist:
		return "50d"
	case ConditionRain:
		return "10d"
	case ConditionSnow:
		return "13d"
	case ConditionStorm:
		return "11d"
	default:
		return ""
	}
}
