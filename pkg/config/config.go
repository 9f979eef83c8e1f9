package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultJWTSecret is the development fallback signing secret
const DefaultJWTSecret = "fallback_secret"

// Config holds all application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Booking  BookingConfig  `mapstructure:"booking"`
	Cache    CacheConfig    `mapstructure:"cache"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
	OTel     OTelConfig     `mapstructure:"otel"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"` // development, staging, production
	Debug       bool   `mapstructure:"debug"`
	Version     string `mapstructure:"version"`
	SeedCatalog bool   `mapstructure:"seed_catalog"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// Addr returns the listen address
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds PostgreSQL connection settings.
// URL takes precedence over the discrete fields when set.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN returns the PostgreSQL connection string
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the Redis address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// KafkaConfig holds Kafka/Redpanda connection settings
type KafkaConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Brokers  []string `mapstructure:"brokers"`
	ClientID string   `mapstructure:"client_id"`
	Topic    string   `mapstructure:"topic"`
}

// JWTConfig holds access token settings
type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	Algorithm      string        `mapstructure:"algorithm"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	Issuer         string        `mapstructure:"issuer"`
}

// PaymentConfig holds payment gateway settings
type PaymentConfig struct {
	Gateway            string        `mapstructure:"gateway"` // razorpay, stripe, mock
	KeyID              string        `mapstructure:"key_id"`
	KeySecret          string        `mapstructure:"key_secret"`
	BaseURL            string        `mapstructure:"base_url"`
	StripeSecretKey    string        `mapstructure:"stripe_secret_key"`
	Currency           string        `mapstructure:"currency"`
	Timeout            time.Duration `mapstructure:"timeout"`
	MaxRetries         int           `mapstructure:"max_retries"`
	TestConfirmEnabled bool          `mapstructure:"test_confirm_enabled"`
	IdempotencyKeyTTL  time.Duration `mapstructure:"idempotency_key_ttl"`
	RequireIdempotency bool          `mapstructure:"idempotency_key_required"`
}

// BookingConfig holds booking lifecycle settings
type BookingConfig struct {
	PendingTTL         time.Duration `mapstructure:"pending_ttl"`
	ExpiryInterval     time.Duration `mapstructure:"expiry_interval"`
	ExpiryBatchSize    int           `mapstructure:"expiry_batch_size"`
	OutboxPollInterval time.Duration `mapstructure:"outbox_poll_interval"`
	OutboxBatchSize    int           `mapstructure:"outbox_batch_size"`
}

// CacheConfig holds catalog cache settings
type CacheConfig struct {
	EventListTTL time.Duration `mapstructure:"event_list_ttl"`
	EventTTL     time.Duration `mapstructure:"event_ttl"`
}

// CORSConfig holds allowed browser origins
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	ServiceName   string  `mapstructure:"service_name"`
	CollectorAddr string  `mapstructure:"collector_addr"`
	SampleRatio   float64 `mapstructure:"sample_ratio"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// A missing .env is fine, environment variables still apply
	_ = v.ReadInConfig()

	return load(v)
}

// LoadWithPath loads configuration from a specific path
func LoadWithPath(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	if err := bindAliases(v); err != nil {
		return nil, fmt.Errorf("failed to bind env aliases: %w", err)
	}

	cfg := &Config{}
	if err := bindConfig(v, cfg); err != nil {
		return nil, fmt.Errorf("failed to bind config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("APP_NAME", "event-booking-api")
	v.SetDefault("APP_ENVIRONMENT", "development")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("APP_SEED_CATALOG", true)

	// Server
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "120s")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("SERVER_MAX_BODY_BYTES", 1<<20)

	// Database
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_DBNAME", "event_booking")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("DATABASE_CONN_MAX_IDLE_TIME", "30m")

	// Redis
	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 50)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 5)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("REDIS_READ_TIMEOUT", "3s")
	v.SetDefault("REDIS_WRITE_TIMEOUT", "3s")

	// Kafka
	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_CLIENT_ID", "event-booking-api")
	v.SetDefault("KAFKA_TOPIC", "booking-events")

	// JWT
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "event-booking-api")

	// Payment
	v.SetDefault("PAYMENT_GATEWAY", "razorpay")
	v.SetDefault("PAYMENT_KEY_ID", "")
	v.SetDefault("PAYMENT_KEY_SECRET", "")
	v.SetDefault("PAYMENT_BASE_URL", "https://api.razorpay.com/v1")
	v.SetDefault("PAYMENT_STRIPE_SECRET_KEY", "")
	v.SetDefault("PAYMENT_CURRENCY", "INR")
	v.SetDefault("PAYMENT_TIMEOUT", "10s")
	v.SetDefault("PAYMENT_MAX_RETRIES", 2)
	v.SetDefault("PAYMENT_TEST_CONFIRM_ENABLED", false)
	v.SetDefault("PAYMENT_IDEMPOTENCY_KEY_TTL", "24h")
	v.SetDefault("PAYMENT_IDEMPOTENCY_KEY_REQUIRED", false)

	// Booking lifecycle
	v.SetDefault("BOOKING_PENDING_TTL", "30m")
	v.SetDefault("BOOKING_EXPIRY_INTERVAL", "1m")
	v.SetDefault("BOOKING_EXPIRY_BATCH_SIZE", 100)
	v.SetDefault("BOOKING_OUTBOX_POLL_INTERVAL", "1s")
	v.SetDefault("BOOKING_OUTBOX_BATCH_SIZE", 100)

	// Cache
	v.SetDefault("CACHE_EVENT_LIST_TTL", "30s")
	v.SetDefault("CACHE_EVENT_TTL", "60s")

	// CORS
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// Log
	v.SetDefault("LOG_LEVEL", "info")

	// OTel
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_SERVICE_NAME", "event-booking-api")
	v.SetDefault("OTEL_COLLECTOR_ADDR", "localhost:4317")
	v.SetDefault("OTEL_SAMPLE_RATIO", 1.0)
}

// legacyEnvNames maps canonical keys to the older variable names that also configure them
var legacyEnvNames = map[string][]string{
	"JWT_SECRET":                      {"SECRET_KEY"},
	"JWT_ALGORITHM":                   {"ALGORITHM"},
	"JWT_ACCESS_TOKEN_EXPIRE_MINUTES": {"ACCESS_TOKEN_EXPIRE_MINUTES"},
	"PAYMENT_KEY_ID":                  {"RAZORPAY_KEY_ID"},
	"PAYMENT_KEY_SECRET":              {"RAZORPAY_KEY_SECRET"},
}

// bindAliases lets the legacy names configure the service from the
// environment or the .env file. Precedence is environment, then the
// canonical name in the file, then the legacy name in the file.
func bindAliases(v *viper.Viper) error {
	for key, legacy := range legacyEnvNames {
		envs := append([]string{key}, legacy...)
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return err
		}
		if v.InConfig(key) || anyEnvSet(envs) {
			continue
		}
		for _, name := range legacy {
			if v.InConfig(name) {
				v.Set(key, v.Get(name))
				break
			}
		}
	}
	return nil
}

func anyEnvSet(names []string) bool {
	for _, name := range names {
		if _, ok := os.LookupEnv(name); ok {
			return true
		}
	}
	return false
}

func bindConfig(v *viper.Viper, cfg *Config) error {
	// App
	cfg.App.Name = v.GetString("APP_NAME")
	cfg.App.Environment = strings.ToLower(strings.TrimSpace(v.GetString("APP_ENVIRONMENT")))
	cfg.App.Debug = v.GetBool("APP_DEBUG")
	cfg.App.Version = v.GetString("APP_VERSION")
	cfg.App.SeedCatalog = v.GetBool("APP_SEED_CATALOG")

	// Server
	cfg.Server.Host = v.GetString("SERVER_HOST")
	cfg.Server.Port = v.GetInt("SERVER_PORT")
	cfg.Server.ReadTimeout = v.GetDuration("SERVER_READ_TIMEOUT")
	cfg.Server.WriteTimeout = v.GetDuration("SERVER_WRITE_TIMEOUT")
	cfg.Server.IdleTimeout = v.GetDuration("SERVER_IDLE_TIMEOUT")
	cfg.Server.ShutdownTimeout = v.GetDuration("SERVER_SHUTDOWN_TIMEOUT")
	cfg.Server.MaxBodyBytes = v.GetInt64("SERVER_MAX_BODY_BYTES")

	// Database
	cfg.Database.URL = v.GetString("DATABASE_URL")
	cfg.Database.Host = v.GetString("DATABASE_HOST")
	cfg.Database.Port = v.GetInt("DATABASE_PORT")
	cfg.Database.User = v.GetString("DATABASE_USER")
	cfg.Database.Password = v.GetString("DATABASE_PASSWORD")
	cfg.Database.DBName = v.GetString("DATABASE_DBNAME")
	cfg.Database.SSLMode = v.GetString("DATABASE_SSLMODE")
	cfg.Database.MaxOpenConns = v.GetInt("DATABASE_MAX_OPEN_CONNS")
	cfg.Database.MaxIdleConns = v.GetInt("DATABASE_MAX_IDLE_CONNS")
	cfg.Database.ConnMaxLifetime = v.GetDuration("DATABASE_CONN_MAX_LIFETIME")
	cfg.Database.ConnMaxIdleTime = v.GetDuration("DATABASE_CONN_MAX_IDLE_TIME")

	// Redis
	cfg.Redis.Enabled = v.GetBool("REDIS_ENABLED")
	cfg.Redis.Host = v.GetString("REDIS_HOST")
	cfg.Redis.Port = v.GetInt("REDIS_PORT")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")
	cfg.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")
	cfg.Redis.MinIdleConns = v.GetInt("REDIS_MIN_IDLE_CONNS")
	cfg.Redis.DialTimeout = v.GetDuration("REDIS_DIAL_TIMEOUT")
	cfg.Redis.ReadTimeout = v.GetDuration("REDIS_READ_TIMEOUT")
	cfg.Redis.WriteTimeout = v.GetDuration("REDIS_WRITE_TIMEOUT")

	// Kafka
	cfg.Kafka.Enabled = v.GetBool("KAFKA_ENABLED")
	cfg.Kafka.Brokers = splitList(v.GetString("KAFKA_BROKERS"))
	cfg.Kafka.ClientID = v.GetString("KAFKA_CLIENT_ID")
	cfg.Kafka.Topic = v.GetString("KAFKA_TOPIC")

	// JWT
	cfg.JWT.Secret = v.GetString("JWT_SECRET")
	cfg.JWT.Algorithm = strings.ToUpper(v.GetString("JWT_ALGORITHM"))
	cfg.JWT.AccessTokenTTL = time.Duration(v.GetInt("JWT_ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute
	cfg.JWT.Issuer = v.GetString("JWT_ISSUER")

	// Payment
	cfg.Payment.Gateway = strings.ToLower(v.GetString("PAYMENT_GATEWAY"))
	cfg.Payment.KeyID = v.GetString("PAYMENT_KEY_ID")
	cfg.Payment.KeySecret = v.GetString("PAYMENT_KEY_SECRET")
	cfg.Payment.BaseURL = v.GetString("PAYMENT_BASE_URL")
	cfg.Payment.StripeSecretKey = v.GetString("PAYMENT_STRIPE_SECRET_KEY")
	cfg.Payment.Currency = strings.ToUpper(v.GetString("PAYMENT_CURRENCY"))
	cfg.Payment.Timeout = v.GetDuration("PAYMENT_TIMEOUT")
	cfg.Payment.MaxRetries = v.GetInt("PAYMENT_MAX_RETRIES")
	cfg.Payment.TestConfirmEnabled = v.GetBool("PAYMENT_TEST_CONFIRM_ENABLED")
	cfg.Payment.IdempotencyKeyTTL = v.GetDuration("PAYMENT_IDEMPOTENCY_KEY_TTL")
	cfg.Payment.RequireIdempotency = v.GetBool("PAYMENT_IDEMPOTENCY_KEY_REQUIRED")

	// Booking
	cfg.Booking.PendingTTL = v.GetDuration("BOOKING_PENDING_TTL")
	cfg.Booking.ExpiryInterval = v.GetDuration("BOOKING_EXPIRY_INTERVAL")
	cfg.Booking.ExpiryBatchSize = v.GetInt("BOOKING_EXPIRY_BATCH_SIZE")
	cfg.Booking.OutboxPollInterval = v.GetDuration("BOOKING_OUTBOX_POLL_INTERVAL")
	cfg.Booking.OutboxBatchSize = v.GetInt("BOOKING_OUTBOX_BATCH_SIZE")

	// Cache
	cfg.Cache.EventListTTL = v.GetDuration("CACHE_EVENT_LIST_TTL")
	cfg.Cache.EventTTL = v.GetDuration("CACHE_EVENT_TTL")

	// CORS
	cfg.CORS.AllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	// Log
	cfg.Log.Level = v.GetString("LOG_LEVEL")

	// OTel
	cfg.OTel.Enabled = v.GetBool("OTEL_ENABLED")
	cfg.OTel.ServiceName = v.GetString("OTEL_SERVICE_NAME")
	cfg.OTel.CollectorAddr = v.GetString("OTEL_COLLECTOR_ADDR")
	cfg.OTel.SampleRatio = v.GetFloat64("OTEL_SAMPLE_RATIO")

	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return errors.New("app name is required")
	}

	switch c.App.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("unknown environment: %q", c.App.Environment)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.JWT.Secret == "" {
		return errors.New("JWT secret is required")
	}

	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported JWT algorithm: %s", c.JWT.Algorithm)
	}

	if c.JWT.AccessTokenTTL <= 0 {
		return errors.New("access token lifetime must be positive")
	}

	switch c.Payment.Gateway {
	case "razorpay", "stripe", "mock":
	default:
		return fmt.Errorf("unsupported payment gateway: %s", c.Payment.Gateway)
	}

	if c.IsProduction() {
		if c.JWT.Secret == DefaultJWTSecret {
			return errors.New("JWT secret must be changed in production")
		}
		if c.Payment.TestConfirmEnabled {
			return errors.New("test payment confirmation cannot be enabled in production")
		}
		if c.Payment.Gateway == "mock" {
			return errors.New("mock payment gateway cannot be used in production")
		}
	}

	return nil
}

// TestConfirmAllowed reports whether the signature-less confirm route may be mounted
func (c *Config) TestConfirmAllowed() bool {
	return c.Payment.TestConfirmEnabled && !c.IsProduction()
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
