package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"weather-notifier/internal/domain/model"
	"weather-notifier/pkg/redis"
)

type notificationUseCaseMock struct {
	mock.Mock
}

func (m *notificationUseCaseMock) Run(ctx context.Context, runID string) (*model.RunSummary, error) {
	args := m.Called(ctx, runID)
	if summary := args.Get(0); summary != nil {
		return summary.(*model.RunSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redis.NewClientFrom(rdb, nil), server
}

func TestTriggerRunsJobAndReleasesLock(t *testing.T) {
	client, server := newRedis(t)
	useCase := &notificationUseCaseMock{}
	useCase.On("Run", mock.Anything, "run-1").Return(&model.RunSummary{RunID: "run-1"}, nil)

	err := NewNotificationScheduler(useCase, client, "0 * * * *", time.Minute).Trigger(context.Background(), "run-1")

	require.NoError(t, err)
	useCase.AssertExpectations(t)
	assert.False(t, server.Exists(notificationLockNamespace+"::"+notificationLockKey))
}

func TestTriggerSkipsWhileLocked(t *testing.T) {
	client, server := newRedis(t)
	require.NoError(t, server.Set(notificationLockNamespace+"::"+notificationLockKey, "other-replica"))
	useCase := &notificationUseCaseMock{}

	err := NewNotificationScheduler(useCase, client, "0 * * * *", time.Minute).Trigger(context.Background(), "run-2")

	assert.ErrorIs(t, err, redis.ErrLockNotAcquired)
	useCase.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestTriggerWithoutRedis(t *testing.T) {
	useCase := &notificationUseCaseMock{}
	useCase.On("Run", mock.Anything, "run-3").Return(nil, model.ErrAuthMisconfigured)

	err := NewNotificationScheduler(useCase, nil, "0 * * * *", 0).Trigger(context.Background(), "run-3")

	assert.ErrorIs(t, err, model.ErrAuthMisconfigured)
}

func TestInitRejectsInvalidCron(t *testing.T) {
	scheduler := NewNotificationScheduler(&notificationUseCaseMock{}, nil, "every hour", 0)

	assert.Error(t, scheduler.InitNotificationScheduleTasks(context.Background()))
}

func TestExecuteScheduledTaskUsesFreshRunID(t *testing.T) {
	useCase := &notificationUseCaseMock{}
	useCase.On("Run", mock.Anything, mock.AnythingOfType("string")).Return(&model.RunSummary{}, nil)
	scheduler := NewNotificationScheduler(useCase, nil, "0 * * * *", 0)

	scheduler.ExecuteScheduledTask(context.Background())
	scheduler.ExecuteScheduledTask(context.Background())

	require.Len(t, useCase.Calls, 2)
	assert.NotEqual(t, useCase.Calls[0].Arguments.String(1), useCase.Calls[1].Arguments.String(1))
}
