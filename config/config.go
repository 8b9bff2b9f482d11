// Package config handles loading and validation of the reconciler's
// configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/roomsync/guest-reconciler/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	// DefaultCacheTTL bounds how long a saved roster snapshot stays
	// loadable. Fixed window from last save; no sliding expiry.
	DefaultCacheTTL = 24 * time.Hour
)

// CacheBackend selects which CacheStore implementation backs the roster cache.
type CacheBackend string

const (
	BackendMemory CacheBackend = "memory"
	BackendFile   CacheBackend = "file"
	BackendRedis  CacheBackend = "redis"
)

// CacheConfig holds roster-cache behavior settings.
type CacheConfig struct {
	Backend   CacheBackend  `mapstructure:"BACKEND"`
	TTL       time.Duration `mapstructure:"TTL"`
	KeyPrefix string        `mapstructure:"KEY_PREFIX"`
	// Dir is the directory the file backend writes snapshots into.
	Dir string `mapstructure:"DIR"`
}

// RedisConfig holds Redis connection details for the redis cache backend.
type RedisConfig struct {
	Address      string `mapstructure:"ADDRESS"`
	Password     string `mapstructure:"PASSWORD"`
	DB           int    `mapstructure:"DB"`
	UseTLS       bool   `mapstructure:"USE_TLS"`
	PoolSize     int    `mapstructure:"POOL_SIZE"`
	MinIdleConns int    `mapstructure:"MIN_IDLE_CONNS"`
}

// Config is the root configuration for the library.
type Config struct {
	Environment Environment `mapstructure:"ENVIRONMENT"`
	LogLevel    string      `mapstructure:"LOG_LEVEL"`
	Cache       CacheConfig `mapstructure:"CACHE"`
	Redis       RedisConfig `mapstructure:"REDIS"`
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("ENVIRONMENT", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CACHE.BACKEND", BackendMemory)
	v.SetDefault("CACHE.TTL", DefaultCacheTTL)
	v.SetDefault("CACHE.KEY_PREFIX", "")
	v.SetDefault("CACHE.DIR", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("REDIS.POOL_SIZE", 3)
	v.SetDefault("REDIS.MIN_IDLE_CONNS", 1)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"ENVIRONMENT", "ENVIRONMENT"},
		{"LOG_LEVEL", "LOG_LEVEL"},
		// Cache config
		{"CACHE.BACKEND", "CACHE_BACKEND"},
		{"CACHE.TTL", "CACHE_TTL"},
		{"CACHE.KEY_PREFIX", "CACHE_KEY_PREFIX"},
		{"CACHE.DIR", "CACHE_DIR"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		{"REDIS.POOL_SIZE", "REDIS_POOL_SIZE"},
		{"REDIS.MIN_IDLE_CONNS", "REDIS_MIN_IDLE_CONNS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("ENVIRONMENT"),
		"cache_backend", v.GetString("CACHE.BACKEND"),
		"cache_ttl", v.GetDuration("CACHE.TTL"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", cfg.Cache.TTL)
	}

	switch cfg.Cache.Backend {
	case BackendMemory:
	case BackendFile:
		if cfg.Cache.Dir == "" {
			return fmt.Errorf("CACHE_DIR is required for the file cache backend")
		}
	case BackendRedis:
		if cfg.Redis.Address == "" {
			return fmt.Errorf("REDIS_ADDRESS is required for the redis cache backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	return nil
}
