package api

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-notifier/configs"
	"weather-notifier/internal/domain/model"
	"weather-notifier/pkg/http"
)

func newWeatherServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	calls := &atomic.Int32{}
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, calls
}

func weatherConfig(baseURL string) configs.WeatherConfig {
	return configs.WeatherConfig{
		BaseURL: baseURL,
		APIKey:  "weather-key",
		Units:   "metric",
		Timeout: time.Second,
	}
}

func TestFetchCurrentParsesReading(t *testing.T) {
	var query map[string]string
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		query = map[string]string{
			"q":     r.URL.Query().Get("q"),
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"temp":32,"humidity":40},"wind":{"speed":5},"weather":[{"main":"Clear"}]}`))
	}))
	defer server.Close()

	cfg := weatherConfig(server.URL)
	cfg.Country = "PK"
	reading, err := NewWeatherGateway(cfg, http.ClientOptions{}).FetchCurrent(context.Background(), "Lahore")

	require.NoError(t, err)
	assert.Equal(t, model.WeatherReading{TemperatureCelsius: 32, HumidityPercent: 40, WindSpeed: 5, Condition: "Clear"}, *reading)
	assert.Equal(t, map[string]string{"q": "Lahore,PK", "appid": "weather-key", "units": "metric"}, query)
}

func TestFetchCurrentDefaultsMissingFields(t *testing.T) {
	server, _ := newWeatherServer(t, nethttp.StatusOK, `{"main":{},"weather":[{}]}`)

	reading, err := NewWeatherGateway(weatherConfig(server.URL), http.ClientOptions{}).FetchCurrent(context.Background(), "Lahore")

	require.NoError(t, err)
	assert.Equal(t, model.WeatherReading{Condition: model.DefaultCondition}, *reading)
}

func TestFetchCurrentMalformedResponses(t *testing.T) {
	bodies := map[string]string{
		"missing main":    `{"weather":[{"main":"Rain"}]}`,
		"null main":       `{"main":null,"weather":[{"main":"Rain"}]}`,
		"missing weather": `{"main":{"temp":20}}`,
		"empty weather":   `{"main":{"temp":20},"weather":[]}`,
		"not json":        `<html>oops</html>`,
		"empty body":      ``,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			server, _ := newWeatherServer(t, nethttp.StatusOK, body)

			reading, err := NewWeatherGateway(weatherConfig(server.URL), http.ClientOptions{}).FetchCurrent(context.Background(), "Lahore")

			assert.Nil(t, reading)
			assert.True(t, errors.Is(err, model.ErrMalformedResponse), "got %v", err)
		})
	}
}

func TestFetchCurrentProviderHTTPError(t *testing.T) {
	server, _ := newWeatherServer(t, nethttp.StatusInternalServerError, `{"cod":500,"message":"internal"}`)

	_, err := NewWeatherGateway(weatherConfig(server.URL), http.ClientOptions{}).FetchCurrent(context.Background(), "Karachi")

	var lookupErr *model.LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.ErrorIs(t, err, model.ErrProviderHTTP)
	assert.Equal(t, "Karachi", lookupErr.City)
	assert.Equal(t, nethttp.StatusInternalServerError, lookupErr.Status)
	assert.JSONEq(t, `{"cod":500,"message":"internal"}`, lookupErr.Body)
}

func TestFetchCurrentTimeout(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	cfg := weatherConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond

	_, err := NewWeatherGateway(cfg, http.ClientOptions{}).FetchCurrent(context.Background(), "Lahore")
	assert.ErrorIs(t, err, model.ErrTimeout)
}

func TestFetchCurrentOpensCircuitOnRepeatedServerErrors(t *testing.T) {
	server, calls := newWeatherServer(t, nethttp.StatusBadGateway, `bad gateway`)

	cfg := weatherConfig(server.URL)
	cfg.CircuitFailures = 2
	gateway := NewWeatherGateway(cfg, http.ClientOptions{})

	for i := 0; i < 2; i++ {
		_, err := gateway.FetchCurrent(context.Background(), "Karachi")
		assert.ErrorIs(t, err, model.ErrProviderHTTP)
	}

	_, err := gateway.FetchCurrent(context.Background(), "karachi ")
	assert.ErrorIs(t, err, model.ErrUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchCurrentOpenCircuitDoesNotRejectOtherCities(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Query().Get("q") == "Karachi" {
			w.WriteHeader(nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"temp":30,"humidity":20},"weather":[{"main":"Clear"}]}`))
	}))
	defer server.Close()

	cfg := weatherConfig(server.URL)
	cfg.CircuitFailures = 1
	gateway := NewWeatherGateway(cfg, http.ClientOptions{})

	_, err := gateway.FetchCurrent(context.Background(), "Karachi")
	require.ErrorIs(t, err, model.ErrProviderHTTP)
	_, err = gateway.FetchCurrent(context.Background(), "Karachi")
	require.ErrorIs(t, err, model.ErrUnavailable)

	reading, err := gateway.FetchCurrent(context.Background(), "Lahore")
	require.NoError(t, err)
	assert.Equal(t, "Clear", reading.Condition)
}

func TestFetchCurrentDismissedNotFound(t *testing.T) {
	server, _ := newWeatherServer(t, nethttp.StatusNotFound, `{"cod":"404","message":"city not found"}`)

	reading, err := NewWeatherGateway(weatherConfig(server.URL), http.ClientOptions{Dismiss404: true}).
		FetchCurrent(context.Background(), "Atlantis")

	assert.Nil(t, reading)
	var lookupErr *model.LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.ErrorIs(t, err, model.ErrProviderHTTP)
	assert.Equal(t, nethttp.StatusNotFound, lookupErr.Status)
}

func TestCheckCredentials(t *testing.T) {
	assert.NoError(t, NewWeatherGateway(weatherConfig("http://localhost"), http.ClientOptions{}).CheckCredentials())

	cfg := weatherConfig("http://localhost")
	cfg.APIKey = " "
	assert.ErrorIs(t, NewWeatherGateway(cfg, http.ClientOptions{}).CheckCredentials(), model.ErrAuthMisconfigured)
}

func TestFetchCurrentNotFoundDoesNotOpenCircuit(t *testing.T) {
	server, calls := newWeatherServer(t, nethttp.StatusNotFound, `{"cod":"404","message":"city not found"}`)

	cfg := weatherConfig(server.URL)
	cfg.CircuitFailures = 1
	gateway := NewWeatherGateway(cfg, http.ClientOptions{})

	for i := 0; i < 3; i++ {
		_, err := gateway.FetchCurrent(context.Background(), "Atlantis")
		assert.ErrorIs(t, err, model.ErrProviderHTTP)
	}
	assert.Equal(t, int32(3), calls.Load())
}
