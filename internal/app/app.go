package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/chaitali929/coremodeling/internal/auth"
	"github.com/chaitali929/coremodeling/internal/config"
	"github.com/chaitali929/coremodeling/internal/email"
	"github.com/chaitali929/coremodeling/internal/handlers"
	"github.com/chaitali929/coremodeling/internal/locker"
	"github.com/chaitali929/coremodeling/internal/logger"
	"github.com/chaitali929/coremodeling/internal/middleware"
	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/repositories"
	"github.com/chaitali929/coremodeling/internal/routes"
	"github.com/chaitali929/coremodeling/internal/services"
	"github.com/chaitali929/coremodeling/internal/storage"
	"github.com/chaitali929/coremodeling/internal/validator"
	"github.com/chaitali929/coremodeling/internal/workers"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Setup(logger.Options{
		Env:        cfg.Server.Env,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := gormDB.AutoMigrate(&models.Account{}, &models.Application{}, &models.CascadeDivergence{}); err != nil {
			logger.Fatal("AutoMigrate failed", "error", err)
		}
	}

	store, files, err := initializeStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	lk, closeLocker, err := initializeLocker(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize locker", "error", err)
	}
	defer closeLocker()

	notifier, err := initializeNotifier(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize email", "error", err)
	}

	repos := services.Repositories{
		Accounts:     repositories.NewAccountRepository(gormDB),
		Applications: repositories.NewApplicationRepository(gormDB),
		Divergences:  repositories.NewDivergenceRepository(gormDB),
	}
	container := services.NewServiceContainer(repos, store, lk, notifier)

	if err := container.AccountService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	worker := workers.NewCascadeRepairWorker(container.StatusService, cfg.Workers.CascadeRepairSchedule, cfg.Workers.CascadeRepairBatch)
	if err := worker.Start(ctx); err != nil {
		logger.Fatal("Failed to start cascade repair worker", "error", err)
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL())
	router := NewRouter(cfg, container, tokens, files)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

// NewRouter builds the gin engine. files may be nil when objects are not served locally.
func NewRouter(cfg *config.Config, container *services.ServiceContainer, tokens *auth.TokenManager, files handlers.FileResolver) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	baseHandler := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, container, tokens),
		ArtistHandler:      handlers.NewArtistHandler(baseHandler, container),
		GalleryHandler:     handlers.NewGalleryHandler(baseHandler, container.GalleryService, cfg.Upload.MaxSize),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, container.ApplicationService),
	}
	if files != nil {
		appHandlers.FileHandler = handlers.NewFileHandler(baseHandler, files)
	}

	guards := handlers.RouteGuards{
		Auth:      middleware.AuthMiddleware(tokens),
		RateLimit: func(c *gin.Context) { c.Next() },
	}
	if cfg.RateLimit.RPS > 0 {
		guards.RateLimit = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Handler()
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	if cfg.Upload.MaxSize > 0 {
		router.MaxMultipartMemory = cfg.Upload.MaxSize
	}

	routes.RegisterRoutes(router, appHandlers, guards)
	return router
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDevelopment() {
		level = gormlogger.Info
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	return gormDB, nil
}

// initializeStorage also returns the local backend so its files can be served.
func initializeStorage(ctx context.Context, cfg *config.Config) (storage.Storage, handlers.FileResolver, error) {
	storageCfg := storage.Config{
		Type:        cfg.Storage.Type,
		BasePath:    cfg.Storage.BasePath,
		BaseURL:     cfg.Storage.BaseURL,
		Bucket:      cfg.Storage.Bucket,
		Region:      cfg.Storage.Region,
		AccessKey:   cfg.Storage.AccessKey,
		SecretKey:   cfg.Storage.SecretKey,
		Endpoint:    cfg.Storage.Endpoint,
		SupabaseURL: cfg.Storage.SupabaseURL,
		SupabaseKey: cfg.Storage.SupabaseKey,
		Timeout:     cfg.UploadTimeout(),
	}

	if storageCfg.Type == "local" {
		local, err := storage.NewLocalStorage(storageCfg)
		if err != nil {
			return nil, nil, err
		}
		return storage.WithTimeout(local, storageCfg.Timeout), local, nil
	}

	store, err := storage.NewStorage(ctx, storageCfg)
	return store, nil, err
}

func initializeLocker(ctx context.Context, cfg *config.Config) (locker.Locker, func(), error) {
	if cfg.Locker.Type != "redis" {
		return locker.NewLocalLocker(), func() {}, nil
	}

	client, err := locker.NewRedisClient(ctx, cfg.Locker.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close redis client", "error", err)
		}
	}
	logger.Info("Redis locker initialized")
	return locker.NewRedisLocker(client, cfg.LockTTL()), closeFn, nil
}

func initializeNotifier(cfg *config.Config) (services.StatusNotifier, error) {
	templates, err := email.NewTemplateManager()
	if err != nil {
		return nil, err
	}

	if !cfg.Email.Enabled {
		logger.Warn("Email is disabled, status notifications are dropped")
		return email.NewStatusMailer(email.NoopProvider{}, templates), nil
	}

	provider, err := email.NewSMTPProvider(email.SMTPConfig{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUsername,
		Password: cfg.Email.SMTPPassword,
		From:     cfg.Email.FromEmail,
		FromName: cfg.Email.FromName,
	})
	if err != nil {
		return nil, err
	}
	return email.NewStatusMailer(provider, templates), nil
}
