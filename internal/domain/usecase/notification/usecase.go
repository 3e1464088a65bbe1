package notification

import (
	"context"

	"weather-notifier/internal/domain/model"
)

type UseCase interface {
	// Run processes every city of the registry snapshot once and returns the per-city outcomes.
	// An error is returned only when the run could not start: missing push credentials or an
	// unreadable city list. City failures are reported in the summary.
	Run(ctx context.Context, runID string) (*model.RunSummary, error)
}
