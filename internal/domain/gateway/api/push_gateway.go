package api

import (
	"context"

	"weather-notifier/internal/domain/model"
)

// PushGateway defines the interface for push-provider calls
type PushGateway interface {
	// CheckCredentials fails with model.ErrAuthMisconfigured when the app id or api key is missing.
	// It makes no network call.
	CheckCredentials() error

	// Send issues exactly one notification request for the city.
	// Failures are returned as *model.DispatchError.
	Send(ctx context.Context, city string, message model.NotificationMessage, recipients model.RecipientSet) (*model.ProviderReceipt, error)

	// UpdateDeviceTags replaces the tags of one device and optionally sets its external user id.
	UpdateDeviceTags(ctx context.Context, deviceToken string, tags map[string]string, externalUserID string) error
}
