package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vikask011/react-native/internal/di"
	"github.com/vikask011/react-native/internal/repository"
	"github.com/vikask011/react-native/internal/seed"
	"github.com/vikask011/react-native/internal/worker"
	"github.com/vikask011/react-native/pkg/config"
	"github.com/vikask011/react-native/pkg/database"
	"github.com/vikask011/react-native/pkg/kafka"
	"github.com/vikask011/react-native/pkg/logger"
	pkgredis "github.com/vikask011/react-native/pkg/redis"
	"github.com/vikask011/react-native/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(&logger.Config{
		Level:       cfg.Log.Level,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Event Booking API",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("gateway", cfg.Payment.Gateway),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		appLog.Warn("Tracing disabled", zap.Error(err))
	}

	db := connectPostgres(ctx, cfg, appLog)
	defer db.Close()

	if err := repository.EnsureSchema(ctx, db.Pool()); err != nil {
		appLog.Fatal("Failed to apply schema", zap.Error(err))
	}

	if cfg.App.SeedCatalog {
		if _, err := seed.Seed(ctx, repository.NewPostgresEventRepository(db.Pool()), false); err != nil {
			appLog.Error("Failed to seed catalog", zap.Error(err))
		}
	}

	redisClient := connectRedis(ctx, cfg, appLog)
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher, closePublisher := newPublisher(ctx, cfg, appLog)
	defer closePublisher()

	container, err := di.NewContainer(&di.ContainerConfig{
		Config:    cfg,
		DB:        db,
		Redis:     redisClient,
		Publisher: publisher,
	})
	if err != nil {
		appLog.Fatal("Failed to build container", zap.Error(err))
	}

	if err := container.ExpiryWorker.Start(ctx); err != nil {
		appLog.Fatal("Failed to start expiry worker", zap.Error(err))
	}
	if err := container.OutboxWorker.Start(ctx); err != nil {
		appLog.Fatal("Failed to start outbox worker", zap.Error(err))
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           container.Router(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		appLog.Info("Event Booking API listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", zap.Error(err))
	}

	container.ExpiryWorker.Stop()
	container.OutboxWorker.Stop()

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		appLog.Warn("Failed to flush traces", zap.Error(err))
	}

	appLog.Info("Server exited gracefully")
}

// connectPostgres retries until the database answers. Failure is fatal.
func connectPostgres(ctx context.Context, cfg *config.Config, appLog *logger.Logger) *database.PostgresDB {
	dbCfg := database.DefaultPostgresConfig(cfg.Database.DSN())
	if cfg.Database.MaxOpenConns > 0 {
		dbCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		dbCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		dbCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	}
	if cfg.Database.ConnMaxIdleTime > 0 {
		dbCfg.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime
	}
	dbCfg.EnableTracing = cfg.OTel.Enabled

	db, err := database.NewPostgres(ctx, dbCfg, func(attempt int, err error, wait time.Duration) {
		appLog.Warn("Database not ready, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})
	if err != nil {
		appLog.Fatal("Database connection failed", zap.Error(err))
	}
	appLog.Info("Database connected", zap.Int32("max_conns", dbCfg.MaxConns))
	return db
}

// connectRedis returns nil when Redis is disabled or unreachable; the API
// then runs without the event cache and without idempotency replay
func connectRedis(ctx context.Context, cfg *config.Config, appLog *logger.Logger) *pkgredis.Client {
	if !cfg.Redis.Enabled {
		appLog.Info("Redis disabled")
		return nil
	}

	redisCfg := pkgredis.DefaultConfig()
	redisCfg.Host = cfg.Redis.Host
	redisCfg.Port = cfg.Redis.Port
	redisCfg.Password = cfg.Redis.Password
	redisCfg.DB = cfg.Redis.DB
	if cfg.Redis.PoolSize > 0 {
		redisCfg.PoolSize = cfg.Redis.PoolSize
	}
	if cfg.Redis.MinIdleConns > 0 {
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
	}
	if cfg.Redis.DialTimeout > 0 {
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
	}
	if cfg.Redis.ReadTimeout > 0 {
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
	}
	if cfg.Redis.WriteTimeout > 0 {
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout
	}

	client, err := pkgredis.NewClient(ctx, redisCfg)
	if err != nil {
		appLog.Warn("Redis unavailable, running without cache and idempotency", zap.Error(err))
		return nil
	}
	appLog.Info("Redis connected", zap.String("addr", redisCfg.Addr()))
	return client
}

// newPublisher connects the outbox relay to Kafka, falling back to a
// logging publisher when Kafka is disabled or unreachable
func newPublisher(ctx context.Context, cfg *config.Config, appLog *logger.Logger) (worker.Publisher, func()) {
	if !cfg.Kafka.Enabled {
		appLog.Info("Kafka disabled, outbox messages will be logged")
		return worker.NewNoOpPublisher(), func() {}
	}

	producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:  cfg.Kafka.Brokers,
		ClientID: cfg.Kafka.ClientID,
	})
	if err != nil {
		appLog.Warn("Kafka connection failed, using no-op publisher", zap.Error(err))
		return worker.NewNoOpPublisher(), func() {}
	}
	appLog.Info("Kafka producer connected", zap.Strings("brokers", cfg.Kafka.Brokers))
	return worker.NewKafkaPublisher(producer), producer.Close
}
