package external

// OpenWeatherResponse is the subset of /data/2.5/weather the notifier reads.
// Main and Weather are required, everything inside them is optional.
type OpenWeatherResponse struct {
	Name    string               `json:"name"`
	Main    *OpenWeatherMain     `json:"main"`
	Wind    *OpenWeatherWind     `json:"wind"`
	Weather []OpenWeatherSummary `json:"weather"`
}

type OpenWeatherMain struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

type OpenWeatherWind struct {
	Speed float64 `json:"speed"`
}

type OpenWeatherSummary struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// OpenWeatherErrorResponse is returned with non-2xx statuses. cod is a string or a number
// depending on the endpoint.
type OpenWeatherErrorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}
