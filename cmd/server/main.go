package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/planday/backend/api/handler"
	"github.com/planday/backend/internal/calendar"
	"github.com/planday/backend/internal/config"
	"github.com/planday/backend/internal/extract"
	"github.com/planday/backend/internal/infrastructure/monitor"
	"github.com/planday/backend/internal/infrastructure/outbox"
	pgInfra "github.com/planday/backend/internal/infrastructure/postgres"
	redisInfra "github.com/planday/backend/internal/infrastructure/redis"
	"github.com/planday/backend/internal/middleware"
	"github.com/planday/backend/internal/notify"
	"github.com/planday/backend/internal/router"
	"github.com/planday/backend/internal/services/lifecycle"
	"github.com/planday/backend/pkg/httpcontext"
	"github.com/planday/backend/pkg/logger"
	"github.com/planday/backend/repository/postgres"
	redisRepo "github.com/planday/backend/repository/redis"
	authUC "github.com/planday/backend/usecase/auth"
	ingestUC "github.com/planday/backend/usecase/ingest"
	preferenceUC "github.com/planday/backend/usecase/preference"
	scheduleUC "github.com/planday/backend/usecase/schedule"
	taskUC "github.com/planday/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	outboxStore, err := outbox.Open(cfg.Outbox.Path, "reminders")
	if err != nil {
		zapLogger.Fatal("failed to open reminder outbox", zap.Error(err))
	}
	manager.Register("outbox", func(ctx context.Context) error {
		return outboxStore.Close()
	})

	mon := monitor.New(pool, redisClient, outboxStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	prefRepo := postgres.NewPreferenceRepository(pool)
	scheduleRepo := postgres.NewScheduleRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, 24*time.Hour)

	dispatcher := notify.NewDispatcher(
		outboxStore,
		mon,
		notificationRepo,
		zapLogger,
		notify.DispatcherConfig{
			Interval:   cfg.Outbox.DrainInterval,
			BatchSize:  cfg.Outbox.BatchSize,
			MaxRetries: cfg.Outbox.MaxRetry,
			Retention:  time.Duration(cfg.Outbox.RetentionHours) * time.Hour,
		},
	)
	dispatcher.Start()
	manager.Register("reminder_dispatcher", func(ctx context.Context) error {
		dispatcher.Stop(ctx)
		return nil
	})

	notifier := notify.NewTrigger(outboxStore, zapLogger)
	calendarSync := calendar.NewStub(zapLogger)
	extractor := extract.NewClient(extract.Config{
		BaseURL: cfg.Extract.BaseURL,
		APIKey:  cfg.Extract.APIKey,
		Model:   cfg.Extract.Model,
		Timeout: cfg.Extract.Timeout,
	})

	authUseCase := authUC.New(userRepo, sessionRepo, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)
	preferenceUseCase := preferenceUC.New(prefRepo, zapLogger)
	scheduleService := scheduleUC.New(taskRepo, prefRepo, scheduleRepo, notifier, calendarSync, zapLogger)
	ingestUseCase := ingestUC.New(noteRepo, taskRepo, extractor, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:       apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, time.Hour),
		Task:       apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Preference: apiHandler.NewPreferenceHandler(preferenceUseCase, ctxAdapter, zapLogger),
		Schedule:   apiHandler.NewScheduleHandler(scheduleService, ctxAdapter, zapLogger),
		Ingest:     apiHandler.NewIngestHandler(ingestUseCase, ctxAdapter, zapLogger),
		Health:     apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
