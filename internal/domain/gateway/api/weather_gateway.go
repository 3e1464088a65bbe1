package api

import (
	"context"

	"weather-notifier/internal/domain/model"
)

// WeatherGateway defines the interface for current-weather lookups
type WeatherGateway interface {
	// CheckCredentials fails with model.ErrAuthMisconfigured when the api key is missing.
	CheckCredentials() error
	// FetchCurrent issues exactly one bounded request for the city.
	// Failures are returned as *model.LookupError.
	FetchCurrent(ctx context.Context, city string) (*model.WeatherReading, error)
}
