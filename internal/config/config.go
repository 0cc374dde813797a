// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend names accepted by STORAGE_BACKEND.
const (
	StorageBackendFile  = "file"
	StorageBackendRedis = "redis"
)

// Config holds all configuration for the client
type Config struct {
	App     AppConfig
	API     APIConfig
	Storage StorageConfig
	Redis   RedisConfig
	Logging LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// APIConfig contains the remote marketplace API configuration
type APIConfig struct {
	// BaseURL is the root of the marketplace REST API, including the
	// version prefix.
	BaseURL string
	// RequestTimeout bounds a single request. Zero disables the timeout,
	// which matches the historical client behavior.
	RequestTimeout time.Duration
}

// StorageConfig contains local durable storage configuration
type StorageConfig struct {
	// Backend selects the snapshot store: "file" or "redis".
	Backend string
	// Dir is the root directory for the file backend.
	Dir string
}

// RedisConfig contains Redis configuration for the redis storage backend
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Course Marketplace Client"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:9191/api/v1"),
			RequestTimeout: getEnvAsDuration("API_REQUEST_TIMEOUT", 0),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", StorageBackendFile),
			Dir:     getEnv("STORAGE_DIR", defaultStorageDir()),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate API base URL
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an http(s) URL")
	}

	// Validate storage backend
	switch c.Storage.Backend {
	case StorageBackendFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("STORAGE_DIR is required for the file backend")
		}
	case StorageBackendRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (expected %q or %q)",
			c.Storage.Backend, StorageBackendFile, StorageBackendRedis)
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

func defaultStorageDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".coursemarket"
	}
	return filepath.Join(home, ".coursemarket")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
