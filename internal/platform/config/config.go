// Package config loads service configuration from the environment (and an
// optional .env file in development) using viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	strutil "gatehouse/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr               string        `mapstructure:"HTTP_ADDR"`
	Environment        string        `mapstructure:"APP_ENV"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	ReadTimeout        time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	WriteTimeout       time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`
	RequestTimeout     time.Duration `mapstructure:"HTTP_REQUEST_TIMEOUT"`
	MaxBodyBytes       int64         `mapstructure:"HTTP_MAX_BODY_BYTES"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	DemoSeed           bool          `mapstructure:"DEMO_SEED"`
}

// Auth holds identity-provider token settings.
type Auth struct {
	JWTSigningKey string        `mapstructure:"JWT_SIGNING_KEY"`
	JWTIssuer     string        `mapstructure:"JWT_ISSUER"`
	JWTAudience   string        `mapstructure:"JWT_AUDIENCE"`
	TokenTTL      time.Duration `mapstructure:"TOKEN_TTL"`
}

// Database configures the Postgres pool. An empty URL selects in-memory stores.
type Database struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
}

// RedisConfig configures the idempotency cache. An empty URL keeps it in memory.
type RedisConfig struct {
	URL            string        `mapstructure:"REDIS_URL"`
	PoolSize       int           `mapstructure:"REDIS_POOL_SIZE"`
	MinIdleConns   int           `mapstructure:"REDIS_MIN_IDLE_CONNS"`
	DialTimeout    time.Duration `mapstructure:"REDIS_DIAL_TIMEOUT"`
	ReadTimeout    time.Duration `mapstructure:"REDIS_READ_TIMEOUT"`
	WriteTimeout   time.Duration `mapstructure:"REDIS_WRITE_TIMEOUT"`
	IdempotencyTTL time.Duration `mapstructure:"IDEMPOTENCY_TTL"`
}

// Kafka configures the Kafka notification sender.
type Kafka struct {
	Brokers           string        `mapstructure:"KAFKA_BROKERS"`
	NotificationTopic string        `mapstructure:"KAFKA_NOTIFICATION_TOPIC"`
	Acks              string        `mapstructure:"KAFKA_ACKS"`
	Retries           int           `mapstructure:"KAFKA_RETRIES"`
	DeliveryTimeout   time.Duration `mapstructure:"KAFKA_DELIVERY_TIMEOUT"`
}

// RabbitMQ configures the RabbitMQ notification sender.
type RabbitMQ struct {
	URL        string `mapstructure:"RABBITMQ_URL"`
	Exchange   string `mapstructure:"RABBITMQ_EXCHANGE"`
	RoutingKey string `mapstructure:"RABBITMQ_ROUTING_KEY"`
}

// Notification selects and tunes the best-effort mail dispatch path.
type Notification struct {
	// Driver is one of log, http, kafka, rabbitmq.
	Driver      string        `mapstructure:"NOTIFY_DRIVER"`
	RelayURL    string        `mapstructure:"NOTIFY_RELAY_URL"`
	FromAddress string        `mapstructure:"NOTIFY_FROM_ADDRESS"`
	QueueSize   int           `mapstructure:"NOTIFY_QUEUE_SIZE"`
	Workers     int           `mapstructure:"NOTIFY_WORKERS"`
	SendTimeout time.Duration `mapstructure:"NOTIFY_SEND_TIMEOUT"`
	PortalURL   string        `mapstructure:"PORTAL_URL"`
}

// Sticker configures code issuance.
type Sticker struct {
	CodePrefix  string `mapstructure:"STICKER_CODE_PREFIX"`
	MaxAttempts int    `mapstructure:"STICKER_MAX_ATTEMPTS"`
}

// Scheduler configures background cron jobs.
type Scheduler struct {
	Enabled           bool   `mapstructure:"SCHEDULER_ENABLED"`
	ExpirySchedule    string `mapstructure:"STICKER_EXPIRY_SCHEDULE"`
	ReconcileSchedule string `mapstructure:"LEDGER_RECONCILE_SCHEDULE"`
}

// RateLimit caps resident submissions per account. A limit of 0 disables it.
type RateLimit struct {
	Submissions int           `mapstructure:"RATE_LIMIT_SUBMISSIONS"`
	Window      time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
}

// Config is the full service configuration.
type Config struct {
	Server       Server       `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Redis        RedisConfig  `mapstructure:",squash"`
	Kafka        Kafka        `mapstructure:",squash"`
	RabbitMQ     RabbitMQ     `mapstructure:",squash"`
	Notification Notification `mapstructure:",squash"`
	Sticker      Sticker      `mapstructure:",squash"`
	Scheduler    Scheduler    `mapstructure:",squash"`
	RateLimit    RateLimit    `mapstructure:",squash"`
}

const devSigningKey = "dev-secret-key-change-in-production"

var defaults = map[string]any{
	"HTTP_ADDR":            ":8080",
	"APP_ENV":              "dev",
	"LOG_LEVEL":            "info",
	"HTTP_READ_TIMEOUT":    "10s",
	"HTTP_WRITE_TIMEOUT":   "30s",
	"HTTP_REQUEST_TIMEOUT": "25s",
	"HTTP_MAX_BODY_BYTES":  1 << 20,
	"CORS_ALLOWED_ORIGINS": []string{"http://localhost:3000"},
	"DEMO_SEED":            false,

	"JWT_SIGNING_KEY": devSigningKey,
	"JWT_ISSUER":      "gatehouse-idp",
	"JWT_AUDIENCE":    "gatehouse",
	"TOKEN_TTL":       "15m",

	"DATABASE_URL":         "",
	"DB_MAX_OPEN_CONNS":    25,
	"DB_MAX_IDLE_CONNS":    5,
	"DB_CONN_MAX_LIFETIME": "5m",

	"REDIS_URL":            "",
	"REDIS_POOL_SIZE":      10,
	"REDIS_MIN_IDLE_CONNS": 2,
	"REDIS_DIAL_TIMEOUT":   "5s",
	"REDIS_READ_TIMEOUT":   "3s",
	"REDIS_WRITE_TIMEOUT":  "3s",
	"IDEMPOTENCY_TTL":      "24h",

	"KAFKA_BROKERS":            "",
	"KAFKA_NOTIFICATION_TOPIC": "gatehouse.notifications",
	"KAFKA_ACKS":               "all",
	"KAFKA_RETRIES":            3,
	"KAFKA_DELIVERY_TIMEOUT":   "30s",

	"RABBITMQ_URL":         "",
	"RABBITMQ_EXCHANGE":    "gatehouse.notifications",
	"RABBITMQ_ROUTING_KEY": "email.send",

	"NOTIFY_DRIVER":       "log",
	"NOTIFY_RELAY_URL":    "",
	"NOTIFY_FROM_ADDRESS": "no-reply@gatehouse.local",
	"NOTIFY_QUEUE_SIZE":   256,
	"NOTIFY_WORKERS":      2,
	"NOTIFY_SEND_TIMEOUT": "10s",
	"PORTAL_URL":          "http://localhost:3000",

	"STICKER_CODE_PREFIX":  "NVH",
	"STICKER_MAX_ATTEMPTS": 5,

	"SCHEDULER_ENABLED":         true,
	"STICKER_EXPIRY_SCHEDULE":   "0 1 * * *",
	"LEDGER_RECONCILE_SCHEDULE": "30 2 * * *",

	"RATE_LIMIT_SUBMISSIONS": 20,
	"RATE_LIMIT_WINDOW":      "1m",
}

// Load reads an optional .env file, then the environment, over the defaults.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Server.CORSAllowedOrigins = splitOrigins(cfg.Server.CORSAllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations that would start a misconfigured server.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Environment == "prod" && c.Auth.JWTSigningKey == devSigningKey {
		errs = append(errs, errors.New("JWT_SIGNING_KEY must be set in prod"))
	}
	switch c.Notification.Driver {
	case "log":
	case "http":
		if c.Notification.RelayURL == "" {
			errs = append(errs, errors.New("NOTIFY_RELAY_URL is required for the http driver"))
		}
	case "kafka":
		if c.Kafka.Brokers == "" {
			errs = append(errs, errors.New("KAFKA_BROKERS is required for the kafka driver"))
		}
	case "rabbitmq":
		if c.RabbitMQ.URL == "" {
			errs = append(errs, errors.New("RABBITMQ_URL is required for the rabbitmq driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown NOTIFY_DRIVER %q", c.Notification.Driver))
	}
	if c.Sticker.MaxAttempts < 1 {
		errs = append(errs, errors.New("STICKER_MAX_ATTEMPTS must be at least 1"))
	}
	if c.RateLimit.Submissions < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_SUBMISSIONS must not be negative"))
	}
	if c.RateLimit.Submissions > 0 && c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.Notification.Workers < 1 {
		errs = append(errs, errors.New("NOTIFY_WORKERS must be at least 1"))
	}
	return errors.Join(errs...)
}

// splitOrigins handles a single comma separated env value as well as a list.
func splitOrigins(in []string) []string {
	var parts []string
	for _, item := range in {
		parts = append(parts, strings.Split(item, ",")...)
	}
	return strutil.DedupeURLs(parts)
}
