package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/Payphone-Digital/instruments/config"
	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/Payphone-Digital/instruments/internal/handler"
	"github.com/Payphone-Digital/instruments/internal/middleware"
	"github.com/Payphone-Digital/instruments/internal/repository"
	"github.com/Payphone-Digital/instruments/internal/router"
	"github.com/Payphone-Digital/instruments/internal/schema"
	"github.com/Payphone-Digital/instruments/internal/service"
	"github.com/Payphone-Digital/instruments/pkg/database"
	"github.com/Payphone-Digital/instruments/pkg/health"
	"github.com/Payphone-Digital/instruments/pkg/logger"
	"github.com/Payphone-Digital/instruments/pkg/redis"
	"github.com/Payphone-Digital/instruments/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
		zap.String("storage_driver", config.App.StorageDriver),
	)

	if config.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.App.APIKey == "" {
		logger.GetLogger().Warn("API_KEY is not set, every mutating request will be rejected")
	}

	validator, err := schema.New()
	if err != nil {
		logger.GetLogger().Fatal("Failed to compile request schemas", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	var store repository.InstrumentStore
	switch config.App.StorageDriver {
	case constants.StorageDriverMemory:
		store = repository.NewMemoryInstrumentRepository()
	default:
		db := openPostgres(ctx, config)
		defer database.CloseDB(db)
		store = repository.NewInstrumentRepository(db)
	}

	// Cache
	redisClient := redis.NewClient(redis.Config{
		Host:         config.Redis.Host,
		Port:         config.Redis.Port,
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		Enabled:      config.Redis.Enabled,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolTimeout:  config.Redis.PoolTimeout,
	}, logger.GetLogger())

	logger.GetLogger().Info("Redis client initialized",
		zap.Bool("enabled", redisClient.IsEnabled()),
		zap.String("address", config.RedisAddress()),
	)

	cacheService := service.NewCacheService(redisClient, service.CacheConfig{
		Enabled: config.Cache.Enabled,
		Local:   config.App.StorageDriver == constants.StorageDriverMemory,
		TTL:     config.Cache.TTL,
	})
	defer cacheService.Close()

	// Services
	instrumentService := service.NewInstrumentService(store, cacheService, config.ListingURL())

	if config.App.SeedFile != "" {
		seed(ctx, instrumentService, validator, config.App.SeedFile)
	}

	// Health
	monitor := health.NewMonitor(config.App.HealthEvery, 5*time.Second, logger.GetLogger())
	monitor.Register("storage", true, store.Ping)
	if redisClient.IsEnabled() {
		monitor.Register("redis", false, redisClient.Ping)
	}
	monitor.Start()
	defer monitor.Stop()

	// Handlers
	r := router.NewRouter(
		handler.NewInstrumentHandler(instrumentService),
		handler.NewHealthHandler(monitor, cacheService),

		middleware.NewValidationMiddleware(validator),
		middleware.NewMetrics("instruments"),
		config,
	).Handler()

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("base_url", config.App.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	<-ctx.Done()
	logger.GetLogger().Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().Error("Server shutdown failed", zap.Error(err))
	}
}

func openPostgres(ctx context.Context, config *configs.Config) *gorm.DB {
	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
		ConnectTimeout:  config.Database.ConnectTimeout,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully",
		zap.Int("search_indexes", database.SearchIndexes(db)),
	)
	return db
}

// seed loads fixtures into an empty catalog. Failures are logged and the
// service starts regardless.
func seed(ctx context.Context, svc *service.InstrumentService, v *validation.Validator, path string) {
	docs, err := database.LoadSeed(path)
	if err != nil {
		logger.GetLogger().Error("Failed to load seed file", zap.String("path", path), zap.Error(err))
		return
	}

	created, err := svc.Seed(ctx, v, docs)
	if err != nil {
		logger.GetLogger().Error("Failed to seed catalog",
			zap.String("path", path),
			zap.Int("created", created),
			zap.Error(err),
		)
		return
	}

	logger.GetLogger().Info("Seed file processed",
		zap.String("path", path),
		zap.Int("created", created),
	)
}
