package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"weather-notifier/internal/domain/model"
	"weather-notifier/internal/domain/usecase/registration"
	"weather-notifier/pkg/log"
)

const defaultSyncTimeout = 30 * time.Second

type RegistrationProcessor struct {
	registrationUseCase registration.UseCase
	timeout             time.Duration
}

func NewRegistrationProcessor(registrationUseCase registration.UseCase) *RegistrationProcessor {
	return &RegistrationProcessor{
		registrationUseCase: registrationUseCase,
		timeout:             defaultSyncTimeout,
	}
}

// HandleMessage implements the sqs.Handler interface. A returned error leaves the message on
// the queue for redelivery.
func (p *RegistrationProcessor) HandleMessage(msg *types.Message) error {
	if msg == nil || msg.Body == nil {
		return fmt.Errorf("received nil message or message body")
	}

	var event model.RegistrationSaved
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	log.Info("Processing registration saved event",
		zap.Stringp("message_id", msg.MessageId),
		zap.Uint("id", event.ID))

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.registrationUseCase.Sync(ctx, event); err != nil {
		return fmt.Errorf("failed to sync device tags for user detail %d: %w", event.ID, err)
	}
	return nil
}
