package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"weather-notifier/pkg/log"
	"weather-notifier/pkg/msg"
	"weather-notifier/pkg/redis"
)

// JobTrigger starts one notification run.
type JobTrigger interface {
	Trigger(ctx context.Context, runID string) error
}

type NotificationController struct {
	api     *echo.Group
	trigger JobTrigger
}

func NewNotificationController(api *echo.Group, trigger JobTrigger) *NotificationController {
	return &NotificationController{api: api, trigger: trigger}
}

// InitNotificationRoutes initializes notification routes
func (controller *NotificationController) InitNotificationRoutes() {
	controller.api.GET("/notifications/run", controller.Run)
}

// Run godoc
// @Summary Trigger a weather notification run
// @Description Starts the run in the background and returns its id
// @Tags notifications
// @Produce json
// @Success 202 {object} map[string]string "Run accepted"
// @Router /notifications/run [get]
func (controller *NotificationController) Run(c echo.Context) error {
	runID := uuid.NewString()
	ctx := context.WithoutCancel(c.Request().Context())

	go func() {
		err := controller.trigger.Trigger(ctx, runID)
		switch {
		case err == nil:
		case errors.Is(err, redis.ErrLockNotAcquired):
			log.Info(msg.GetMessage("notification.cron.locked"), zap.String("run_id", runID))
		default:
			log.Error("Weather notification run failed", zap.String("run_id", runID), zap.Error(err))
		}
	}()

	return c.JSON(http.StatusAccepted, map[string]string{"run_id": runID})
}
