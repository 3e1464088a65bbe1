package registration

import (
	"context"

	"weather-notifier/internal/domain/model"
)

type UseCase interface {
	// Sync tags the saved device with its city on the push provider.
	Sync(ctx context.Context, event model.RegistrationSaved) error
}
