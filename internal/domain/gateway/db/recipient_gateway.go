package db

import (
	"context"
	"time"
)

// RecipientGateway is the read side of the device registry used by the notification job.
// Records created after asOf are excluded.
type RecipientGateway interface {
	FindDistinctCities(ctx context.Context, asOf time.Time) ([]string, error)
	FindDeviceTokensByCity(ctx context.Context, city string, asOf time.Time) ([]string, error)
}
