package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"weather-notifier/configs"
	"weather-notifier/internal/domain/gateway/api"
	"weather-notifier/internal/domain/gateway/db"
	"weather-notifier/internal/domain/model"
	"weather-notifier/internal/domain/usecase/notification"
	"weather-notifier/internal/infra/database/sqlc"
	"weather-notifier/pkg/http"
	"weather-notifier/pkg/log"
	"weather-notifier/pkg/msg"
)

const (
	exitOK          = 0
	exitCityFailed  = 1
	exitConfigError = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	defer log.Sync()
	_ = godotenv.Load()

	path := configs.Path()
	cfg, err := configs.Load(path)
	if err != nil {
		log.Error(msg.GetMessage("config.invalid", err.Error()), zap.Error(err))
		return exitConfigError
	}
	if err := cfg.Validate(); err != nil {
		log.Error(msg.GetMessage("config.invalid", err.Error()), zap.Error(err))
		return exitConfigError
	}
	log.Info(msg.GetMessage("config.loaded", path))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlDB, err := sqlc.Open(ctx, cfg.Database)
	if err != nil {
		log.Error("Failed to open the user registry", zap.Error(err))
		return exitCityFailed
	}
	defer sqlDB.Close()

	clientOptions := http.ClientOptions{Logger: http.ZapLogger{}}
	recipientGateway := db.NewSQLCRecipientGateway(sqlDB)
	useCase := notification.NewNotificationUseCase(
		api.NewWeatherGateway(cfg.Weather, clientOptions),
		api.NewPushGateway(cfg.Push, clientOptions),
		recipientGateway,
		notification.NewRecipientResolver(cfg.Job.Mode, recipientGateway),
		cfg.Job.Concurrency,
	)

	summary, err := useCase.Run(ctx, uuid.NewString())
	return exitCode(summary, err)
}

func exitCode(summary *model.RunSummary, err error) int {
	switch {
	case errors.Is(err, model.ErrAuthMisconfigured):
		return exitConfigError
	case err != nil:
		return exitCityFailed
	case summary.Failed():
		return exitCityFailed
	default:
		return exitOK
	}
}
