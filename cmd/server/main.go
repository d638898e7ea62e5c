package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apprecv "github.com/erp/warehouse-bot/internal/application/receiving"
	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/erp/warehouse-bot/internal/infrastructure/cache"
	"github.com/erp/warehouse-bot/internal/infrastructure/config"
	"github.com/erp/warehouse-bot/internal/infrastructure/event"
	"github.com/erp/warehouse-bot/internal/infrastructure/logger"
	"github.com/erp/warehouse-bot/internal/infrastructure/persistence"
	"github.com/erp/warehouse-bot/internal/infrastructure/session"
	"github.com/erp/warehouse-bot/internal/interfaces/http/handler"
	"github.com/erp/warehouse-bot/internal/interfaces/http/middleware"
	"github.com/erp/warehouse-bot/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting warehouse receiving service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	catalogReader := persistence.NewGormCatalogReader(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Idempotency store (Redis when enabled, in-memory otherwise)
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		_ = idempotencyStore.Close()
	}()

	// Event bus with a logging subscriber for all domain events
	eventBus := event.NewInMemoryEventBus(log.Named("events"))
	eventBus.Subscribe(event.NewLoggingEventHandler(log.Named("events")))

	// Application services
	ledgerService := apprecv.NewLedgerService(txScope, log.Named("ledger"))
	ledgerService.SetEventPublisher(eventBus)

	sessionStore := session.NewInMemoryStore()
	workflowService := apprecv.NewWorkflowService(
		catalogReader,
		sessionStore,
		ledgerService,
		idempotencyStore,
		log.Named("workflow"),
	)
	workflowService.SetIdempotencyConfig(shared.IdempotencyConfig{
		TTL:     cfg.Receiving.SaveTokenTTL,
		Enabled: true,
	})

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
	)

	// Routes
	r := router.NewRouter(engine)
	r.Register(handler.NewReceivingHandler(workflowService, userRepo, log.Named("http")))
	r.Register(handler.NewSystemHandler(db))
	r.Setup()

	// HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
