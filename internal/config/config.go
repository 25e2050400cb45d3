package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP      HTTPConfig
	Mongo     MongoConfig
	NATS      NATSConfig
	Redis     RedisConfig
	Simulator SimulatorConfig
}

type HTTPConfig struct {
	Addr string

	// Checkout rate limiting (per user, sliding window). Disabled when Redis
	// is not configured.
	CheckoutRateLimit  int
	CheckoutRateWindow time.Duration
}

type MongoConfig struct {
	URI string
	DB  string
}

type NATSConfig struct {
	URL string
}

type RedisConfig struct {
	Addr string
	DB   int
}

type SimulatorConfig struct {
	Enabled  bool
	Interval time.Duration
	Batch    int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTP: HTTPConfig{
			Addr:               getEnv("HTTP_ADDR", ":8080"),
			CheckoutRateLimit:  10,
			CheckoutRateWindow: time.Minute,
		},
		Mongo: MongoConfig{
			URI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
			DB:  getEnv("MONGO_DB", "ethioconnect"),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		Simulator: SimulatorConfig{
			Enabled:  true,
			Interval: 60 * time.Second,
			Batch:    5,
		},
	}

	var err error
	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.HTTP.CheckoutRateLimit, err = getEnvInt("CHECKOUT_RATE_LIMIT", cfg.HTTP.CheckoutRateLimit); err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_RATE_LIMIT: %w", err)
	}
	windowSec, err := getEnvInt("CHECKOUT_RATE_WINDOW_SEC", int(cfg.HTTP.CheckoutRateWindow.Seconds()))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_RATE_WINDOW_SEC: %w", err)
	}
	cfg.HTTP.CheckoutRateWindow = time.Duration(windowSec) * time.Second

	if cfg.Simulator.Enabled, err = getEnvBool("SIMULATOR_ENABLED", cfg.Simulator.Enabled); err != nil {
		return nil, fmt.Errorf("invalid SIMULATOR_ENABLED: %w", err)
	}
	intervalSec, err := getEnvInt("SIMULATOR_INTERVAL_SEC", int(cfg.Simulator.Interval.Seconds()))
	if err != nil {
		return nil, fmt.Errorf("invalid SIMULATOR_INTERVAL_SEC: %w", err)
	}
	cfg.Simulator.Interval = time.Duration(intervalSec) * time.Second
	if cfg.Simulator.Batch, err = getEnvInt("SIMULATOR_BATCH", cfg.Simulator.Batch); err != nil {
		return nil, fmt.Errorf("invalid SIMULATOR_BATCH: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.Mongo.DB == "" {
		return fmt.Errorf("MONGO_DB is required")
	}
	if c.HTTP.CheckoutRateLimit <= 0 {
		return fmt.Errorf("CHECKOUT_RATE_LIMIT must be > 0")
	}
	if c.HTTP.CheckoutRateWindow <= 0 {
		return fmt.Errorf("CHECKOUT_RATE_WINDOW_SEC must be > 0")
	}
	if c.Simulator.Interval <= 0 {
		return fmt.Errorf("SIMULATOR_INTERVAL_SEC must be > 0")
	}
	if c.Simulator.Batch <= 0 {
		return fmt.Errorf("SIMULATOR_BATCH must be > 0")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}
