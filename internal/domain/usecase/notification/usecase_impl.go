package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"weather-notifier/internal/domain/gateway/api"
	"weather-notifier/internal/domain/gateway/db"
	"weather-notifier/internal/domain/model"
	"weather-notifier/pkg/log"
	"weather-notifier/pkg/msg"
)

type notificationUseCase struct {
	weatherGateway   api.WeatherGateway
	pushGateway      api.PushGateway
	recipientGateway db.RecipientGateway
	resolver         RecipientResolver
	concurrency      int
	now              func() time.Time
}

func NewNotificationUseCase(weatherGateway api.WeatherGateway, pushGateway api.PushGateway, recipientGateway db.RecipientGateway, resolver RecipientResolver, concurrency int) UseCase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &notificationUseCase{
		weatherGateway:   weatherGateway,
		pushGateway:      pushGateway,
		recipientGateway: recipientGateway,
		resolver:         resolver,
		concurrency:      concurrency,
		now:              time.Now,
	}
}

// Run sends the weather notification of every registered city
func (uc *notificationUseCase) Run(ctx context.Context, runID string) (*model.RunSummary, error) {
	log.Info(msg.GetMessage("notification.job.start", runID), zap.String("run_id", runID))

	for _, check := range []func() error{uc.weatherGateway.CheckCredentials, uc.pushGateway.CheckCredentials} {
		if err := check(); err != nil {
			log.Error(msg.GetMessage("notification.job.aborted", runID, err.Error()), zap.String("run_id", runID), zap.Error(err))
			return nil, err
		}
	}

	asOf := uc.now()
	cities, err := uc.recipientGateway.FindDistinctCities(ctx, asOf)
	if err != nil {
		log.Error(msg.GetMessage("notification.job.aborted", runID, err.Error()), zap.String("run_id", runID), zap.Error(err))
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	cities = nonBlank(cities)

	log.Info(msg.GetMessage("notification.job.cities", runID, len(cities)),
		zap.String("run_id", runID),
		zap.Int("cities", len(cities)))

	outcomes := make([]model.DispatchOutcome, len(cities))
	if uc.concurrency == 1 {
		for i, city := range cities {
			outcomes[i] = uc.processCity(ctx, runID, city, asOf)
		}
	} else {
		var group errgroup.Group
		group.SetLimit(uc.concurrency)
		for i, city := range cities {
			i, city := i, city
			group.Go(func() error {
				outcomes[i] = uc.processCity(ctx, runID, city, asOf)
				return nil
			})
		}
		_ = group.Wait()
	}

	summary := model.NewRunSummary(runID, outcomes)
	log.Info(msg.GetMessage("notification.job.summary", runID, summary.SuccessCount, summary.SkippedCount, summary.FailureCount),
		zap.String("run_id", runID),
		zap.Int("sent", summary.SuccessCount),
		zap.Int("skipped", summary.SkippedCount),
		zap.Int("failed", summary.FailureCount))

	return summary, nil
}

// processCity drives one city to exactly one terminal outcome. Errors and panics stop here.
func (uc *notificationUseCase) processCity(ctx context.Context, runID string, city string, asOf time.Time) (outcome model.DispatchOutcome) {
	stage := model.StageWeather
	defer func() {
		if r := recover(); r != nil {
			outcome = failedOutcome(runID, city, stage, 0, "", fmt.Errorf("panic: %v", r))
		}
	}()

	reading, err := uc.weatherGateway.FetchCurrent(ctx, city)
	if err != nil {
		return weatherUnavailableOutcome(runID, city, err)
	}
	message := Compose(city, *reading)

	stage = model.StageResolve
	recipients, err := uc.resolver.Resolve(ctx, city, asOf)
	if err != nil {
		return failedOutcome(runID, city, stage, 0, "", err)
	}
	if recipients.Empty() {
		log.Info(msg.GetMessage("notification.job.skipped-no-recipients", city),
			zap.String("run_id", runID),
			zap.String("city", city))
		return model.DispatchOutcome{City: city, Status: model.StatusSkippedNoRecipients}
	}

	stage = model.StageDispatch
	receipt, err := uc.pushGateway.Send(ctx, city, message, recipients)
	if err != nil {
		var dispatchErr *model.DispatchError
		if errors.As(err, &dispatchErr) {
			return failedOutcome(runID, city, stage, dispatchErr.Status, dispatchErr.Body, err)
		}
		return failedOutcome(runID, city, stage, 0, "", err)
	}

	log.Info(msg.GetMessage("notification.job.sent", city, receipt.Recipients),
		zap.String("run_id", runID),
		zap.String("city", city),
		zap.String("notification_id", receipt.NotificationID),
		zap.Int("recipients", receipt.Recipients),
		zap.Int("status", receipt.StatusCode))

	return model.DispatchOutcome{
		City:           city,
		Status:         model.StatusSent,
		RecipientCount: receipt.Recipients,
		ProviderStatus: receipt.StatusCode,
		NotificationID: receipt.NotificationID,
	}
}

func weatherUnavailableOutcome(runID string, city string, err error) model.DispatchOutcome {
	outcome := model.DispatchOutcome{
		City:   city,
		Status: model.StatusSkippedWeatherUnavailable,
		Stage:  model.StageWeather,
		Error:  err.Error(),
	}

	fields := []zap.Field{
		zap.String("run_id", runID),
		zap.String("city", city),
		zap.String("stage", model.StageWeather),
		zap.Error(err),
	}
	var lookupErr *model.LookupError
	if errors.As(err, &lookupErr) && lookupErr.Status != 0 {
		outcome.ProviderStatus = lookupErr.Status
		fields = append(fields, zap.Int("status", lookupErr.Status), zap.String("body", lookupErr.Body))
	}

	log.Warn(msg.GetMessage("notification.job.skipped-weather", city, err.Error()), fields...)
	return outcome
}

func failedOutcome(runID string, city string, stage string, status int, body string, err error) model.DispatchOutcome {
	log.Error(msg.GetMessage("notification.job.failed", city, stage, err.Error()),
		zap.String("run_id", runID),
		zap.String("city", city),
		zap.String("stage", stage),
		zap.Int("status", status),
		zap.String("body", body),
		zap.Error(err))

	return model.DispatchOutcome{
		City:           city,
		Status:         model.StatusFailed,
		ProviderStatus: status,
		Stage:          stage,
		Error:          err.Error(),
	}
}

func nonBlank(cities []string) []string {
	result := make([]string, 0, len(cities))
	for _, city := range cities {
		if strings.TrimSpace(city) != "" {
			result = append(result, city)
		}
	}
	return result
}
