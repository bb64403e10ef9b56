package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/presenta/backend/api/handler"
	"github.com/presenta/backend/internal/config"
	"github.com/presenta/backend/internal/infrastructure/buffer"
	"github.com/presenta/backend/internal/infrastructure/monitor"
	pgInfra "github.com/presenta/backend/internal/infrastructure/postgres"
	redisInfra "github.com/presenta/backend/internal/infrastructure/redis"
	"github.com/presenta/backend/internal/middleware"
	"github.com/presenta/backend/internal/oauth"
	"github.com/presenta/backend/internal/router"
	"github.com/presenta/backend/internal/services"
	"github.com/presenta/backend/internal/services/lifecycle"
	"github.com/presenta/backend/pkg/httpcontext"
	"github.com/presenta/backend/pkg/logger"
	"github.com/presenta/backend/pkg/token"
	"github.com/presenta/backend/repository/postgres"
	redisRepo "github.com/presenta/backend/repository/redis"
	authUC "github.com/presenta/backend/usecase/auth"
	leaseUC "github.com/presenta/backend/usecase/lease"
	profileUC "github.com/presenta/backend/usecase/profile"
	projectUC "github.com/presenta/backend/usecase/project"
	propertyUC "github.com/presenta/backend/usecase/property"
	routineUC "github.com/presenta/backend/usecase/routine"
	taskUC "github.com/presenta/backend/usecase/task"
	tenantUC "github.com/presenta/backend/usecase/tenant"
	transactionUC "github.com/presenta/backend/usecase/transaction"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if cfg.Migrations.Enabled {
		if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
			zapLogger.Fatal("migrations failed", zap.Error(err))
		}
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

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	propertyRepo := postgres.NewPropertyRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	leaseRepo := postgres.NewLeaseRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	routineRepo := postgres.NewRoutineRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool, taskRepo)
	rateLimiter := redisRepo.NewRateLimiter(redisClient)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		routineRepo,
		transactionRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	issuer := token.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	googleProvider := oauth.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.CallbackURL)
	stateManager := oauth.NewStateManager(cfg.Auth.StateSecret, cfg.Auth.StateTTL)

	authUseCase := authUC.New(userRepo, issuer, googleProvider, stateManager, zapLogger)
	profileUseCase := profileUC.New(userRepo, zapLogger)
	propertyUseCase := propertyUC.New(propertyRepo, zapLogger)
	tenantUseCase := tenantUC.New(tenantRepo, propertyRepo, leaseRepo, zapLogger)
	leaseUseCase := leaseUC.New(leaseRepo, propertyRepo, tenantRepo, zapLogger)
	transactionUseCase := transactionUC.New(transactionRepo, bufferBridge, zapLogger)
	routineUseCase := routineUC.New(routineRepo, bufferBridge, zapLogger)
	projectUseCase := projectUC.New(projectRepo, zapLogger)
	taskUseCase := taskUC.New(taskRepo, projectUseCase, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	authenticator := middleware.NewAuthenticator(issuer, userRepo, ctxAdapter, zapLogger)
	dev := cfg.IsDevelopment()

	handlers := router.Handlers{
		Auth:        apiHandler.NewAuthHandler(authUseCase, authenticator, cfg.Frontend.BaseURL, ctxAdapter, zapLogger, dev),
		Profile:     apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger, dev),
		Property:    apiHandler.NewPropertyHandler(propertyUseCase, ctxAdapter, zapLogger, dev),
		Tenant:      apiHandler.NewTenantHandler(tenantUseCase, ctxAdapter, zapLogger, dev),
		Lease:       apiHandler.NewLeaseHandler(leaseUseCase, ctxAdapter, zapLogger, dev),
		Transaction: apiHandler.NewTransactionHandler(transactionUseCase, ctxAdapter, zapLogger, dev),
		Routine:     apiHandler.NewRoutineHandler(routineUseCase, ctxAdapter, zapLogger, dev),
		Project:     apiHandler.NewProjectHandler(projectUseCase, ctxAdapter, zapLogger, dev),
		Task:        apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger, dev),
		Health:      apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger, dev),
	}

	loginLimit := middleware.RateLimit(rateLimiter, "login", int64(cfg.RateLimit.LoginMax), cfg.RateLimit.LoginWindow, ctxAdapter, zapLogger)
	generalLimit := middleware.RateLimit(rateLimiter, "general", int64(cfg.RateLimit.GeneralMax), cfg.RateLimit.GeneralWindow, ctxAdapter, zapLogger)

	r := router.New(handlers, authenticator.Require, loginLimit, generalLimit)

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
