package model

import "strings"

// DefaultCondition is used when the provider omits weather[0].main.
const DefaultCondition = "Clear"

// WeatherReading is a normalized current-weather observation. It lives for one city of one run.
type WeatherReading struct {
	TemperatureCelsius float64 `json:"temperature_celsius"`
	HumidityPercent    float64 `json:"humidity_percent"`
	WindSpeed          float64 `json:"wind_speed"`
	Condition          string  `json:"condition"`
}

// ConditionKind is the closed set of message themes.
type ConditionKind int

const (
	ConditionOther ConditionKind = iota
	ConditionRain
	ConditionClear
	ConditionClouds
	ConditionSnow
)

func (k ConditionKind) String() string {
	switch k {
	case ConditionRain:
		return "rain"
	case ConditionClear:
		return "clear"
	case ConditionClouds:
		return "clouds"
	case ConditionSnow:
		return "snow"
	default:
		return "other"
	}
}

// Condition is a provider condition classified into a ConditionKind. Raw keeps the provider text
// for the generic message.
type Condition struct {
	Kind ConditionKind
	Raw  string
}

var conditionKinds = map[string]ConditionKind{
	"rain":         ConditionRain,
	"drizzle":      ConditionRain,
	"thunderstorm": ConditionRain,
	"clear":        ConditionClear,
	"clouds":       ConditionClouds,
	"snow":         ConditionSnow,
}

// ParseCondition classifies any string. Matching ignores case and surrounding spaces.
func ParseCondition(raw string) Condition {
	kind, ok := conditionKinds[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		kind = ConditionOther
	}
	return Condition{Kind: kind, Raw: raw}
}
