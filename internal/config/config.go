package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Access   AccessConfig
	Delivery DeliveryConfig
	Seed     SeedConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values. An empty DSN selects in-memory stores.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values for the activity stores.
type RedisConfig struct {
	Enabled   bool
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level     string
	File      string
	MaxSizeMB int
}

// AccessConfig controls how the caller address is read and the default designer address.
type AccessConfig struct {
	CallerHeader    string
	DesignerAddress string
}

// DeliveryConfig configures the primary email channel and the fallback pacing.
type DeliveryConfig struct {
	APIURL          string
	ServiceID       string
	TemplateID      string
	PublicKey       string
	TimeoutSeconds  int
	FallbackDelayMs int
}

// SeedConfig toggles populating empty stores with sample data on start.
type SeedConfig struct {
	OnStart bool
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "campaign-calendar"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Enabled:   getEnvAsBool("REDIS_ENABLED", false),
			Addr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "calendar"),
		},
		Logger: LoggerConfig{
			Level:     getEnv("LOG_LEVEL", "info"),
			File:      os.Getenv("LOG_FILE"),
			MaxSizeMB: getEnvAsInt("LOG_MAX_SIZE_MB", 100),
		},
		Access: AccessConfig{
			CallerHeader:    getEnv("ACCESS_CALLER_HEADER", "X-Caller-Address"),
			DesignerAddress: getEnv("ACCESS_DESIGNER_ADDRESS", "192.168.1.10"),
		},
		Delivery: DeliveryConfig{
			APIURL:          os.Getenv("DELIVERY_API_URL"),
			ServiceID:       os.Getenv("DELIVERY_SERVICE_ID"),
			TemplateID:      os.Getenv("DELIVERY_TEMPLATE_ID"),
			PublicKey:       os.Getenv("DELIVERY_PUBLIC_KEY"),
			TimeoutSeconds:  getEnvAsInt("DELIVERY_TIMEOUT_SECONDS", 10),
			FallbackDelayMs: getEnvAsInt("DELIVERY_FALLBACK_DELAY_MS", 1000),
		},
		Seed: SeedConfig{
			OnStart: getEnvAsBool("SEED_ON_START", false),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the per-send timeout of the primary channel.
func (d DeliveryConfig) Timeout() time.Duration {
	if d.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// FallbackDelay returns the pause between the fallback signal and the handoff.
func (d DeliveryConfig) FallbackDelay() time.Duration {
	if d.FallbackDelayMs < 0 {
		return 0
	}
	return time.Duration(d.FallbackDelayMs) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
