package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"weather-notifier/configs"
	"weather-notifier/internal/application/controller"
	"weather-notifier/internal/application/middleware"
	"weather-notifier/internal/application/processor"
	"weather-notifier/internal/application/schedule"
	"weather-notifier/internal/domain/gateway/api"
	"weather-notifier/internal/domain/gateway/cache"
	"weather-notifier/internal/domain/gateway/db"
	"weather-notifier/internal/domain/gateway/queue"
	"weather-notifier/internal/domain/usecase/health"
	"weather-notifier/internal/domain/usecase/notification"
	"weather-notifier/internal/domain/usecase/registration"
	"weather-notifier/internal/domain/usecase/userdetail"
	"weather-notifier/internal/infra/aws"
	"weather-notifier/internal/infra/database/gorm"
	"weather-notifier/internal/infra/database/sqlc"
	"weather-notifier/pkg/http"
	"weather-notifier/pkg/log"
	"weather-notifier/pkg/msg"
	"weather-notifier/pkg/redis"
	"weather-notifier/pkg/sqs"
)

func main() {
	defer log.Sync()
	_ = godotenv.Load()
	log.Info(msg.GetMessage("app.start"))

	cfg, err := configs.Load(configs.Path())
	if err != nil {
		log.Fatal(msg.GetMessage("config.invalid", err.Error()), zap.Error(err))
	}
	// The notification job stays disabled on an invalid configuration. CRUD and health keep serving.
	jobEnabled := true
	if err := cfg.Validate(); err != nil {
		log.Warn(msg.GetMessage("config.invalid", err.Error()), zap.Error(err))
		jobEnabled = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init infra
	gormDB, err := gorm.Open(cfg.Database)
	if err != nil {
		log.Fatal("Fail to connect database", zap.Error(err))
	}
	sqlDB, err := sqlc.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Fail to connect database", zap.Error(err))
	}
	defer sqlDB.Close()

	redisClient, err := redis.NewClient(redis.DefaultConfig().
		WithHost(cfg.Redis.Host).
		WithPort(cfg.Redis.Port).
		WithPassword(cfg.Redis.Password).
		WithDatabase(cfg.Redis.Database))
	if err != nil {
		log.Fatal("Fail to create redis client", zap.Error(err))
	}
	defer redisClient.Close()

	awsCfg, err := aws.LoadConfig(ctx, cfg.Cloud)
	if err != nil {
		log.Fatal("Fail to load AWS configuration", zap.Error(err))
	}
	sqsClient := aws.NewSQSClient(awsCfg, cfg.Cloud)

	// Init Gateways
	clientOptions := http.ClientOptions{Logger: http.ZapLogger{}}
	weatherGateway := api.NewWeatherGateway(cfg.Weather, clientOptions)
	pushGateway := api.NewPushGateway(cfg.Push, clientOptions)
	recipientGateway := db.NewSQLCRecipientGateway(sqlDB)
	userDetailGateway := db.NewGormUserDetailGateway(gormDB)
	queueHealthGateway := queue.NewQueueHealthGateway()

	// Init UseCase
	healthUseCase := health.NewHealthUseCase(db.NewGormHealthDBGateway(gormDB), cache.NewRedisHealthGateway(redisClient), queueHealthGateway)
	userDetailUseCase := userdetail.NewUserDetailUseCase(userDetailGateway, aws.NewSQSSenderAdapter(sqsClient), cfg.Cloud.RegistrationQueue)
	registrationUseCase := registration.NewRegistrationUseCase(pushGateway)
	notificationUseCase := notification.NewNotificationUseCase(
		weatherGateway,
		pushGateway,
		recipientGateway,
		notification.NewRecipientResolver(cfg.Job.Mode, recipientGateway),
		cfg.Job.Concurrency,
	)

	// Init Schedule
	notificationScheduler := schedule.NewNotificationScheduler(notificationUseCase, redisClient, cfg.Job.Cron, cfg.Job.LockTTL)
	if jobEnabled {
		if err := notificationScheduler.InitNotificationScheduleTasks(ctx); err != nil {
			log.Fatal("Failed to initialize weather notification scheduler", zap.Error(err))
		}
		defer notificationScheduler.Stop()
	}

	// Init Workers
	if cfg.Cloud.RegistrationQueue != "" {
		worker, err := sqs.NewWorker(ctx, sqsClient, cfg.Cloud.RegistrationQueue,
			processor.NewRegistrationProcessor(registrationUseCase),
			&sqs.WorkerConfig{LogLevel: sqs.ErrorLevel})
		if err != nil {
			log.Error("Failed to create registration worker", zap.Error(err))
		} else {
			queueHealthGateway.RegisterWorker(cfg.Cloud.RegistrationQueue, worker)
			go worker.Start(ctx)
		}
	}

	// Init Controller
	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestLogger(e)
	group := e.Group(cfg.App.Server.ContextPath)

	controller.NewSwaggerController(group, cfg.App.Server.ContextPath).InitSwaggerRoutes()
	controller.NewHealthController(group, healthUseCase).InitHealthRoutes()
	controller.NewUserDetailController(group, userDetailUseCase).InitUserDetailRoutes()
	if jobEnabled {
		controller.NewNotificationController(group, notificationScheduler).InitNotificationRoutes()
	}

	// Start Routes
	go func() {
		if err := e.Start(":" + cfg.App.Server.Port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatal("Fail to start server", zap.Error(err))
		}
	}()
	log.Info(msg.GetMessage("app.started"), zap.String("port", cfg.App.Server.Port))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Fail to shutdown server", zap.Error(err))
	}
}
