package api

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"weather-notifier/configs"
	"weather-notifier/internal/domain/model"
	"weather-notifier/internal/domain/model/external"
	"weather-notifier/pkg/http"
)

const currentWeatherPath = "/data/2.5/weather"

// weatherGatewayImpl implements the WeatherGateway interface against OpenWeatherMap
type weatherGatewayImpl struct {
	httpClient *http.Client
	apiKey     string
	units      string
	country    string
	timeout    time.Duration
	failures   uint32

	mu       sync.Mutex
	circuits map[string]*gobreaker.CircuitBreaker
}

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client
func NewWeatherGateway(cfg configs.WeatherConfig, clientOptions http.ClientOptions) WeatherGateway {
	failures := cfg.CircuitFailures
	if failures == 0 {
		failures = 5
	}

	return &weatherGatewayImpl{
		httpClient: http.NewHttpClient(cfg.BaseURL, clientOptions),
		apiKey:     cfg.APIKey,
		units:      cfg.Units,
		country:    cfg.Country,
		timeout:    cfg.Timeout,
		failures:   failures,
		circuits:   make(map[string]*gobreaker.CircuitBreaker),
	}
}

// CheckCredentials fails with model.ErrAuthMisconfigured when the api key is missing
func (w *weatherGatewayImpl) CheckCredentials() error {
	if strings.TrimSpace(w.apiKey) == "" {
		return &model.LookupError{Kind: model.ErrAuthMisconfigured, Err: errors.New("missing weather api key")}
	}
	return nil
}

// FetchCurrent gets the current weather for a city
func (w *weatherGatewayImpl) FetchCurrent(ctx context.Context, city string) (*model.WeatherReading, error) {
	result, err := w.circuitFor(city).Execute(func() (any, error) {
		return w.fetch(ctx, city)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &model.LookupError{City: city, Kind: model.ErrUnavailable, Err: err}
		}
		return nil, err
	}
	return result.(*model.WeatherReading), nil
}

// circuitFor returns the breaker of a single city. Failures of one city never reject another.
func (w *weatherGatewayImpl) circuitFor(city string) *gobreaker.CircuitBreaker {
	key := strings.ToLower(strings.TrimSpace(city))

	w.mu.Lock()
	defer w.mu.Unlock()

	if circuit, ok := w.circuits[key]; ok {
		return circuit
	}
	circuit := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather:" + key,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= w.failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !isProviderFault(err)
		},
	})
	w.circuits[key] = circuit
	return circuit
}

func (w *weatherGatewayImpl) fetch(ctx context.Context, city string) (*model.WeatherReading, error) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	query := city
	if w.country != "" {
		query = city + "," + w.country
	}

	successResp, _, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(currentWeatherPath).
		WithQueryParams(map[string]string{
			"q":     query,
			"appid": w.apiKey,
			"units": w.units,
		}).
		WithSuccessResp(&external.OpenWeatherResponse{}).
		WithErrorResp(&external.OpenWeatherErrorResponse{}).
		Execute()

	if err != nil {
		return nil, toLookupError(city, status, err)
	}

	response, ok := successResp.(*external.OpenWeatherResponse)
	if !ok || response == nil {
		if status >= 300 {
			return nil, &model.LookupError{City: city, Kind: model.ErrProviderHTTP, Status: status}
		}
		return nil, &model.LookupError{City: city, Kind: model.ErrMalformedResponse, Status: status, Err: errors.New("empty response")}
	}
	return toWeatherReading(city, response)
}

// toWeatherReading requires main and a non-empty weather array. Missing values inside them
// default to zero and an empty condition to model.DefaultCondition.
func toWeatherReading(city string, response *external.OpenWeatherResponse) (*model.WeatherReading, error) {
	if response.Main == nil {
		return nil, &model.LookupError{City: city, Kind: model.ErrMalformedResponse, Err: errors.New("main is missing")}
	}
	if len(response.Weather) == 0 {
		return nil, &model.LookupError{City: city, Kind: model.ErrMalformedResponse, Err: errors.New("weather is missing")}
	}

	reading := &model.WeatherReading{
		TemperatureCelsius: response.Main.Temp,
		HumidityPercent:    response.Main.Humidity,
		Condition:          strings.TrimSpace(response.Weather[0].Main),
	}
	if response.Wind != nil {
		reading.WindSpeed = response.Wind.Speed
	}
	if reading.Condition == "" {
		reading.Condition = model.DefaultCondition
	}
	return reading, nil
}

func toLookupError(city string, status int, err error) error {
	var statusErr *http.StatusError
	switch {
	case errors.As(err, &statusErr):
		return &model.LookupError{City: city, Kind: model.ErrProviderHTTP, Status: statusErr.StatusCode, Body: statusErr.Body}
	case model.IsTimeout(err):
		return &model.LookupError{City: city, Kind: model.ErrTimeout, Err: err}
	case status >= 200 && status < 300:
		return &model.LookupError{City: city, Kind: model.ErrMalformedResponse, Status: status, Err: err}
	default:
		return &model.LookupError{City: city, Kind: model.ErrUnavailable, Err: err}
	}
}

// isProviderFault selects the failures that count towards opening the breaker.
// 4xx statuses and malformed bodies do not.
func isProviderFault(err error) bool {
	var lookupErr *model.LookupError
	if !errors.As(err, &lookupErr) {
		return true
	}
	switch {
	case errors.Is(lookupErr, model.ErrTimeout), errors.Is(lookupErr, model.ErrUnavailable):
		return true
	case errors.Is(lookupErr, model.ErrProviderHTTP):
		return lookupErr.Status >= 500 || lookupErr.Status == 429
	default:
		return false
	}
}
