package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"

	GatewayWebPush = "webpush"
	GatewayPubSub  = "pubsub"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Store    StoreConfig    `koanf:"store"`
	Scanner  ScannerConfig  `koanf:"scanner"`
	Gateway  GatewayConfig  `koanf:"gateway"`
	Auth     AuthConfig     `koanf:"auth"`
	PubSub   PubSubConfig   `koanf:"pubsub"`
	Log      LogConfig      `koanf:"log"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type DatabaseConfig struct {
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type RedisConfig struct {
	URL      string `koanf:"url"`
	PoolSize int    `koanf:"pool_size"`
}

type StoreConfig struct {
	Backend string `koanf:"backend"`
}

type ScannerConfig struct {
	TickInterval    time.Duration `koanf:"tick_interval"`
	GraceBefore     time.Duration `koanf:"grace_before"`
	Lookahead       time.Duration `koanf:"lookahead"`
	DeliveryTimeout time.Duration `koanf:"delivery_timeout"`
	MaxConcurrency  int           `koanf:"max_concurrency"`
}

type GatewayConfig struct {
	Kind  string      `koanf:"kind"`
	VAPID VAPIDConfig `koanf:"vapid"`
}

type VAPIDConfig struct {
	PublicKey  string `koanf:"public_key"`
	PrivateKey string `koanf:"private_key"`
	Subscriber string `koanf:"subscriber"`
}

type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

type PubSubConfig struct {
	NatsURL         string `koanf:"nats_url"`
	GCloudProjectID string `koanf:"gcloud_project_id"`
}

// envKeys maps the supported environment variables onto config paths.
// Variables not listed here are ignored.
var envKeys = map[string]string{
	"SERVER_HOST":              "server.host",
	"SERVER_PORT":              "server.port",
	"SERVER_READ_TIMEOUT":      "server.read_timeout",
	"SERVER_WRITE_TIMEOUT":     "server.write_timeout",
	"POSTGRES_DSN":             "database.dsn",
	"DB_MAX_OPEN_CONNS":        "database.max_open_conns",
	"DB_MAX_IDLE_CONNS":        "database.max_idle_conns",
	"DB_CONN_MAX_LIFETIME":     "database.conn_max_lifetime",
	"REDIS_URL":                "redis.url",
	"REDIS_POOL_SIZE":          "redis.pool_size",
	"STORE_BACKEND":            "store.backend",
	"SCANNER_TICK_INTERVAL":    "scanner.tick_interval",
	"SCANNER_GRACE_BEFORE":     "scanner.grace_before",
	"SCANNER_LOOKAHEAD":        "scanner.lookahead",
	"SCANNER_DELIVERY_TIMEOUT": "scanner.delivery_timeout",
	"SCANNER_MAX_CONCURRENCY":  "scanner.max_concurrency",
	"GATEWAY_KIND":             "gateway.kind",
	"VAPID_PUBLIC_KEY":         "gateway.vapid.public_key",
	"VAPID_PRIVATE_KEY":        "gateway.vapid.private_key",
	"VAPID_SUBSCRIBER":         "gateway.vapid.subscriber",
	"JWT_SECRET":               "auth.jwt_secret",
	"NATS_URL":                 "pubsub.nats_url",
	"GCLOUD_PROJECT_ID":        "pubsub.gcloud_project_id",
	"LOG_LEVEL":                "log.level",
}

func defaults() map[string]any {
	return map[string]any{
		"server.host":                "0.0.0.0",
		"server.port":                8080,
		"server.read_timeout":        30 * time.Second,
		"server.write_timeout":       30 * time.Second,
		"database.max_open_conns":    25,
		"database.max_idle_conns":    25,
		"database.conn_max_lifetime": 5 * time.Minute,
		"redis.url":                  "redis://localhost:6379/0",
		"redis.pool_size":            0,
		"store.backend":              BackendRedis,
		"scanner.tick_interval":      60 * time.Second,
		"scanner.grace_before":       domain.DefaultGraceBefore,
		"scanner.lookahead":          domain.DefaultLookahead,
		"scanner.delivery_timeout":   10 * time.Second,
		"scanner.max_concurrency":    16,
		"gateway.kind":               GatewayWebPush,
		"gateway.vapid.subscriber":   "mailto:reminders@example.com",
		"log.level":                  "info",
	}
}

// Load reads defaults, then the YAML file named by CONFIG_FILE when set, then
// environment variables, and validates the result.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv("CONFIG_FILE"))
}

func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Store.Backend = strings.ToLower(cfg.Store.Backend)
	cfg.Gateway.Kind = strings.ToLower(cfg.Gateway.Kind)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid SERVER_PORT: %d", c.Server.Port))
	}

	switch c.Store.Backend {
	case BackendRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis store backend"))
		}
	case BackendPostgres:
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required for the postgres store backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q (supported: %s, %s)",
			c.Store.Backend, BackendRedis, BackendPostgres))
	}

	switch c.Gateway.Kind {
	case GatewayWebPush:
		if c.Gateway.VAPID.PublicKey == "" || c.Gateway.VAPID.PrivateKey == "" {
			errs = append(errs, errors.New("VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY are required for web push"))
		}

		if c.Database.DSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required to store push subscriptions"))
		}
	case GatewayPubSub:
		if !c.PubSub.Enabled() {
			errs = append(errs, errors.New("an event transport is required for the pubsub gateway"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown GATEWAY_KIND %q (supported: %s, %s)",
			c.Gateway.Kind, GatewayWebPush, GatewayPubSub))
	}

	if err := c.PubSub.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	errs = append(errs, c.Scanner.validate()...)

	return errors.Join(errs...)
}

func (c *ScannerConfig) validate() []error {
	var errs []error

	if c.TickInterval <= 0 {
		errs = append(errs, errors.New("SCANNER_TICK_INTERVAL must be positive"))
	}

	if c.GraceBefore < 0 {
		errs = append(errs, errors.New("SCANNER_GRACE_BEFORE must not be negative"))
	}

	if c.Lookahead <= 0 {
		errs = append(errs, errors.New("SCANNER_LOOKAHEAD must be positive"))
	}

	if c.DeliveryTimeout <= 0 {
		errs = append(errs, errors.New("SCANNER_DELIVERY_TIMEOUT must be positive"))
	}

	if c.MaxConcurrency <= 0 {
		errs = append(errs, errors.New("SCANNER_MAX_CONCURRENCY must be positive"))
	}

	if len(errs) == 0 && !domain.Covers(c.GraceBefore, c.Lookahead, c.TickInterval) {
		errs = append(errs, fmt.Errorf(
			"scan windows leave gaps: grace_before (%s) + lookahead (%s) must be at least tick_interval (%s)",
			c.GraceBefore, c.Lookahead, c.TickInterval,
		))
	}

	return errs
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
