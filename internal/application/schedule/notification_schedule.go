package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weather-notifier/internal/domain/usecase/notification"
	"weather-notifier/pkg/log"
	"weather-notifier/pkg/msg"
	"weather-notifier/pkg/redis"
)

const (
	notificationLockKey       = "weather_notification_job"
	notificationLockNamespace = "weather_schedules"
)

// NotificationSchedulerConfig holds configuration for the notification scheduler
type NotificationSchedulerConfig struct {
	CronExpression string
	LockTTL        time.Duration
}

// NotificationScheduler runs the weather notification job on a cron. A redis lock keeps
// replicas from running the same tick twice.
type NotificationScheduler struct {
	cron        *cron.Cron
	useCase     notification.UseCase
	redisClient *redis.Client
	config      *NotificationSchedulerConfig
}

// NewNotificationScheduler creates the scheduler. A nil redis client runs without locking.
func NewNotificationScheduler(useCase notification.UseCase, redisClient *redis.Client, cronExpression string, lockTTL time.Duration) *NotificationScheduler {
	return &NotificationScheduler{
		cron:        cron.New(),
		useCase:     useCase,
		redisClient: redisClient,
		config: &NotificationSchedulerConfig{
			CronExpression: cronExpression,
			LockTTL:        lockTTL,
		},
	}
}

// InitNotificationScheduleTasks registers the job and starts the cron
func (s *NotificationScheduler) InitNotificationScheduleTasks(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.config.CronExpression, func() {
		s.ExecuteScheduledTask(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Infof("Weather notification scheduler started with cron expression: %s", s.config.CronExpression)
	return nil
}

// ExecuteScheduledTask runs one job under a fresh run id
func (s *NotificationScheduler) ExecuteScheduledTask(ctx context.Context) {
	runID := uuid.NewString()
	log.Info(msg.GetMessage("notification.cron.start"), zap.String("run_id", runID))

	if err := s.Trigger(ctx, runID); err != nil {
		if errors.Is(err, redis.ErrLockNotAcquired) {
			log.Info(msg.GetMessage("notification.cron.locked"), zap.String("run_id", runID))
			return
		}
		log.Error("Weather notification run failed", zap.String("run_id", runID), zap.Error(err))
		return
	}

	log.Info(msg.GetMessage("notification.cron.end"), zap.String("run_id", runID))
}

// Trigger runs the job once while holding the lock. It returns redis.ErrLockNotAcquired when
// another run is in progress.
func (s *NotificationScheduler) Trigger(ctx context.Context, runID string) error {
	run := func() error {
		_, err := s.useCase.Run(ctx, runID)
		return err
	}

	if s.redisClient == nil {
		return run()
	}

	opts := redis.DefaultLockOptions().
		WithTTL(s.getLockTTL()).
		WithLockNamespace(notificationLockNamespace)
	return redis.LockWithFunc(ctx, s.redisClient, notificationLockKey, opts, run)
}

// Stop gracefully stops the scheduler
func (s *NotificationScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *NotificationScheduler) getLockTTL() time.Duration {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 10 * time.Minute
}
