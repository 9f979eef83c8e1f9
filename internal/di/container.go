package di

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikask011/react-native/internal/gateway"
	"github.com/vikask011/react-native/internal/handler"
	"github.com/vikask011/react-native/internal/repository"
	"github.com/vikask011/react-native/internal/service"
	"github.com/vikask011/react-native/internal/worker"
	"github.com/vikask011/react-native/pkg/config"
	"github.com/vikask011/react-native/pkg/database"
	"github.com/vikask011/react-native/pkg/logger"
	"github.com/vikask011/react-native/pkg/middleware"
	pkgredis "github.com/vikask011/react-native/pkg/redis"
	"github.com/vikask011/react-native/pkg/response"
	"github.com/vikask011/react-native/pkg/telemetry"
)

// Container holds all dependencies of the API
type Container struct {
	Config *config.Config

	// Infrastructure
	DB    *database.PostgresDB
	Redis *pkgredis.Client

	// Repositories
	UserRepo    repository.UserRepository
	EventRepo   repository.EventRepository
	BookingRepo repository.BookingRepository
	OutboxRepo  repository.OutboxRepository

	Gateway gateway.PaymentGateway

	// Services
	AuthService    service.AuthService
	EventService   service.EventService
	BookingService service.BookingService

	// Handlers
	HealthHandler  *handler.HealthHandler
	AuthHandler    *handler.AuthHandler
	EventHandler   *handler.EventHandler
	PaymentHandler *handler.PaymentHandler
	ProfileHandler *handler.ProfileHandler

	// Workers
	ExpiryWorker *worker.ExpiryWorker
	OutboxWorker *worker.OutboxWorker
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config *config.Config
	DB     *database.PostgresDB
	// Redis is nil when the cache is disabled or unreachable
	Redis *pkgredis.Client
	// Publisher relays outbox messages; nil falls back to logging
	Publisher worker.Publisher
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) (*Container, error) {
	appCfg := cfg.Config
	c := &Container{
		Config: appCfg,
		DB:     cfg.DB,
		Redis:  cfg.Redis,
	}

	pool := c.DB.Pool()
	c.UserRepo = repository.NewPostgresUserRepository(pool)
	c.BookingRepo = repository.NewPostgresBookingRepository(pool)
	c.OutboxRepo = repository.NewPostgresOutboxRepository(pool)

	var eventRepo repository.EventRepository = repository.NewPostgresEventRepository(pool)
	if c.Redis != nil {
		eventRepo = repository.NewCachedEventRepository(eventRepo, c.Redis, repository.CachedEventRepositoryConfig{
			ListTTL:  appCfg.Cache.EventListTTL,
			EventTTL: appCfg.Cache.EventTTL,
		})
	}
	c.EventRepo = eventRepo

	pg, err := gateway.NewPaymentGateway(appCfg.Payment.Gateway, &gateway.GatewayConfig{
		KeyID:           appCfg.Payment.KeyID,
		KeySecret:       appCfg.Payment.KeySecret,
		BaseURL:         appCfg.Payment.BaseURL,
		StripeSecretKey: appCfg.Payment.StripeSecretKey,
		Timeout:         appCfg.Payment.Timeout,
		MaxRetries:      appCfg.Payment.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment gateway: %w", err)
	}
	c.Gateway = pg

	c.AuthService, err = service.NewAuthService(c.UserRepo, &service.AuthServiceConfig{
		JWTSecret:         appCfg.JWT.Secret,
		Algorithm:         appCfg.JWT.Algorithm,
		AccessTokenExpiry: appCfg.JWT.AccessTokenTTL,
		Issuer:            appCfg.JWT.Issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	c.EventService = service.NewEventService(c.EventRepo)
	c.BookingService = service.NewBookingService(c.EventRepo, c.BookingRepo, c.Gateway, &service.BookingServiceConfig{
		Currency:       appCfg.Payment.Currency,
		Topic:          appCfg.Kafka.Topic,
		GatewayTimeout: appCfg.Payment.Timeout,
	})

	// A nil *Client must not reach the handler as a non-nil interface
	var redisChecker handler.HealthChecker
	if c.Redis != nil {
		redisChecker = c.Redis
	}
	c.HealthHandler = handler.NewHealthHandler(c.DB, redisChecker)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.EventHandler = handler.NewEventHandler(c.EventService)
	c.PaymentHandler = handler.NewPaymentHandler(c.BookingService)
	c.ProfileHandler = handler.NewProfileHandler(c.AuthService, c.BookingService)

	c.ExpiryWorker = worker.NewExpiryWorker(c.BookingRepo, &worker.ExpiryWorkerConfig{
		PendingTTL:   appCfg.Booking.PendingTTL,
		ScanInterval: appCfg.Booking.ExpiryInterval,
		BatchSize:    appCfg.Booking.ExpiryBatchSize,
		Topic:        appCfg.Kafka.Topic,
	})
	c.OutboxWorker = worker.NewOutboxWorker(c.OutboxRepo, cfg.Publisher, &worker.OutboxWorkerConfig{
		PollInterval: appCfg.Booking.OutboxPollInterval,
		BatchSize:    appCfg.Booking.OutboxBatchSize,
	})
	c.HealthHandler.AddWorker("expiry", func() interface{} { return c.ExpiryWorker.GetStats() })
	c.HealthHandler.AddWorker("outbox", func() interface{} { return c.OutboxWorker.GetStats() })

	return c, nil
}

// Router builds the gin engine with middleware and routes
func (c *Container) Router() *gin.Engine {
	log := logger.Get()

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		telemetry.TracingMiddleware(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(c.corsConfig()),
	)
	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, response.NotFound("Route not found"))
	})

	router.GET("/", c.HealthHandler.Root)
	router.GET("/health", c.HealthHandler.Health)
	router.GET("/ready", c.HealthHandler.Ready)

	auth := router.Group("/auth")
	{
		auth.POST("/register", c.AuthHandler.Register)
		auth.POST("/login", c.AuthHandler.Login)
	}

	events := router.Group("/events")
	{
		events.GET("", c.EventHandler.List)
		events.GET("/:id", c.EventHandler.GetByID)
	}

	requireAuth := middleware.JWTAuth(c.AuthService)
	idempotent := c.idempotency()

	payment := router.Group("/payment", requireAuth)
	{
		payment.POST("/create-order", append(idempotent, c.PaymentHandler.CreateOrder)...)
		payment.POST("/verify", append(idempotent, c.PaymentHandler.Verify)...)
		if c.Config.TestConfirmAllowed() {
			log.Warn("Test payment confirmation route is enabled")
			payment.POST("/confirm-test", c.PaymentHandler.ConfirmTest)
		}
	}

	profile := router.Group("/profile", requireAuth)
	{
		profile.GET("", c.ProfileHandler.Profile)
		profile.GET("/bookings", c.ProfileHandler.Bookings)
	}

	return router
}

// idempotency returns the replay middleware, or nothing when Redis is unavailable
func (c *Container) idempotency() []gin.HandlerFunc {
	if c.Redis == nil {
		return nil
	}
	return []gin.HandlerFunc{middleware.Idempotency(middleware.IdempotencyConfig{
		Redis:        c.Redis,
		TTL:          c.Config.Payment.IdempotencyKeyTTL,
		RequireKey:   c.Config.Payment.RequireIdempotency,
		MaxBodyBytes: c.Config.Server.MaxBodyBytes,
	})}
}

func (c *Container) corsConfig() middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(c.Config.CORS.AllowedOrigins) > 0 {
		cors.AllowOrigins = c.Config.CORS.AllowedOrigins
	}
	return cors
}
