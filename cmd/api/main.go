package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"resqnet/internal/adapter/api"
	"resqnet/internal/adapter/api/handler"
	apimiddleware "resqnet/internal/adapter/api/middleware"
	"resqnet/internal/adapter/api/router"
	adapterrepo "resqnet/internal/adapter/repository"
	"resqnet/internal/domain/repository"
	"resqnet/internal/domain/service"
	"resqnet/internal/infrastructure/ai"
	"resqnet/internal/infrastructure/firebase"
	"resqnet/internal/infrastructure/metrics"
	"resqnet/internal/infrastructure/ratelimit"
	"resqnet/internal/infrastructure/storage"
	"resqnet/internal/infrastructure/websocket"
	"resqnet/internal/usecase"
	"resqnet/pkg/config"
	"resqnet/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open %s entity store: %v", cfg.StoreBackend, err)
		os.Exit(1)
	}
	defer closeStore()

	if err := repository.Initialize(ctx, store, repository.DefaultSeed(time.Now().UTC())); err != nil {
		logger.Error("Failed to initialize entity store: %v", err)
		os.Exit(1)
	}
	logger.Info("Entity store ready (backend=%s)", cfg.StoreBackend)

	snapshotStorage, closeSnapshots, err := openSnapshotStorage(ctx, cfg)
	if err != nil {
		logger.Error("Failed to set up %s snapshot sink: %v", cfg.SnapshotSink, err)
		os.Exit(1)
	}
	defer closeSnapshots()

	var briefer service.BriefingService = service.DisabledBriefingService{}
	if cfg.OpenAIKey != "" {
		briefer = ai.NewOpenAIBriefingService(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		logger.Info("AI briefing enabled (model=%s)", cfg.OpenAIModel)
	} else {
		logger.Warn("OPENAI_API_KEY not set, AI briefing and severity rating use fallbacks")
	}

	m := metrics.New()

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine(ctx)

	opts := []usecase.Option{usecase.WithRecorder(m), usecase.WithNotifier(wsManager)}

	authUseCase := usecase.NewAuthUseCase(store, usecase.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  time.Duration(cfg.JWTExpiry) * time.Second,
		OTPCode:   cfg.OTPCode,
	}, rateLimiter, opts...)
	authUseCase.StartCleanupRoutine(ctx, 10*time.Minute)
	briefingUseCase := usecase.NewBriefingUseCase(store, briefer, cfg.AITimeout, opts...)
	chatUseCase := usecase.NewChatUseCase(store, rateLimiter, opts...)

	handler.Setup(handler.UseCases{
		Auth:      authUseCase,
		Dashboard: usecase.NewDashboardUseCase(store, briefingUseCase, opts...),
		Disaster:  usecase.NewDisasterUseCase(store, briefer, cfg.AITimeout, opts...),
		Briefing:  briefingUseCase,
		Task:      usecase.NewTaskUseCase(store, opts...),
		Request:   usecase.NewRequestUseCase(store, opts...),
		Alert:     usecase.NewAlertUseCase(store, opts...),
		User:      usecase.NewUserUseCase(store, opts...),
		Chat:      chatUseCase,
		Snapshot:  usecase.NewSnapshotUseCase(store, snapshotStorage, opts...),
	})

	if cfg.BriefingRefreshCron != "" {
		if err := briefingUseCase.StartScheduler(cfg.BriefingRefreshCron); err != nil {
			logger.Error("Invalid BRIEFING_REFRESH_CRON %q: %v", cfg.BriefingRefreshCron, err)
			os.Exit(1)
		}
		defer briefingUseCase.StopScheduler()
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, websocket.NewMessageHandler(wsManager, chatUseCase), cfg.WSAllowedOrigins)

	router.Setup(e, authMiddleware, rateLimiter)
	router.SetupHealthRouter(e, handler.NewHealthHandler(store, cfg.StoreBackend), m.Handler())
	router.SetupWebSocketRouter(e, wsHandler, authMiddleware)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

// openStore builds the entity store selected by STORE_BACKEND.
func openStore(ctx context.Context, cfg *config.Config) (repository.EntityStore, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case "", "memory":
		logger.Warn("Using the in-memory entity store; data is lost on restart")
		return adapterrepo.NewMemoryEntityStore(), noop, nil

	case "firestore":
		client, err := firebase.NewFirestoreClient(ctx, firebase.Credentials{
			ProjectID: cfg.FirebaseProject,
			JSON:      cfg.FirebaseServiceAccountJSON,
			Path:      cfg.FirebaseServiceAccountPath,
		})
		if err != nil {
			return nil, noop, err
		}
		return adapterrepo.NewFirestoreEntityStore(client), func() { client.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("ping redis at %s: %w", cfg.RedisAddr, err)
		}
		return adapterrepo.NewRedisEntityStore(client, cfg.RedisKeyPrefix), func() { client.Close() }, nil

	case "sqlite":
		s, err := adapterrepo.NewSQLiteEntityStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { s.Close() }, nil

	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, noop, errors.New("POSTGRES_DSN is required for the postgres backend")
		}
		s, err := adapterrepo.NewPostgresEntityStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { s.Close() }, nil
	}

	return nil, noop, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
}

// openSnapshotStorage builds the sink selected by SNAPSHOT_SINK. "none"
// disables snapshot export.
func openSnapshotStorage(ctx context.Context, cfg *config.Config) (service.SnapshotStorage, func(), error) {
	noop := func() {}

	switch cfg.SnapshotSink {
	case "", "none":
		return nil, noop, nil

	case "file":
		return storage.NewFileStorage(cfg.SnapshotDir), noop, nil

	case "gcs":
		client, err := storage.NewCloudStorageClient(ctx, cfg.SnapshotBucket, cfg.FirebaseServiceAccountPath)
		if err != nil {
			return nil, noop, err
		}
		return client, func() { client.Close() }, nil

	case "s3":
		client, err := storage.NewS3Client(ctx, storage.S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.SnapshotBucket,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			PathStyle:       cfg.S3PathStyle,
		})
		if err != nil {
			return nil, noop, err
		}
		return client, noop, nil
	}

	return nil, noop, fmt.Errorf("unknown SNAPSHOT_SINK %q", cfg.SnapshotSink)
}
