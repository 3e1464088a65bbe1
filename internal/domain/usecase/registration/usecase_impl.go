package registration

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"weather-notifier/internal/domain/gateway/api"
	"weather-notifier/internal/domain/model"
	"weather-notifier/pkg/log"
	"weather-notifier/pkg/msg"
)

type registrationUseCase struct {
	pushGateway api.PushGateway
}

func NewRegistrationUseCase(pushGateway api.PushGateway) UseCase {
	return &registrationUseCase{pushGateway: pushGateway}
}

// Sync is a no-op unless the event carries both a device token and a city
func (uc *registrationUseCase) Sync(ctx context.Context, event model.RegistrationSaved) error {
	token := strings.TrimSpace(event.DeviceToken)
	city := strings.TrimSpace(event.City)
	if token == "" || city == "" {
		log.Info(msg.GetMessage("registration.sync.skipped", event.ID), zap.Uint("id", event.ID))
		return nil
	}

	externalUserID := ""
	if event.ID != 0 {
		externalUserID = strconv.FormatUint(uint64(event.ID), 10)
	}

	if err := uc.pushGateway.UpdateDeviceTags(ctx, token, map[string]string{"city": city}, externalUserID); err != nil {
		return err
	}

	log.Info(msg.GetMessage("registration.sync.done", event.ID, city),
		zap.Uint("id", event.ID),
		zap.String("city", city))
	return nil
}
