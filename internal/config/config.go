package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

type Config struct {
	// Application
	AppEnv   string
	AppPort  string
	LogLevel string

	// Storage
	StorageDriver string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string

	// Redis cache for the popular list; empty address disables it
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	PopularCacheTTLSecs int
	PopularDefaultCount int

	// Rate Limiting
	RateLimitPerIP         int
	RateLimitWindowSeconds int

	ShutdownTimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		AppPort:  getEnv("APP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StorageDriver: getEnv("STORAGE_DRIVER", StorageMemory),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "filmorate"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "filmorate"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/filmorate.db"),

		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		PopularCacheTTLSecs: getEnvInt("POPULAR_CACHE_TTL_SECONDS", 60),
		PopularDefaultCount: getEnvInt("POPULAR_DEFAULT_COUNT", 10),

		RateLimitPerIP:         getEnvInt("RATE_LIMIT_PER_IP", 100),
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),

		ShutdownTimeoutSeconds: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StorageSQLite, StoragePostgres:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of memory, sqlite, postgres; got %q", c.StorageDriver)
	}
	if c.StorageDriver == StoragePostgres && c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required for postgres storage")
	}
	if c.StorageDriver == StorageSQLite && c.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required for sqlite storage")
	}
	if c.PopularDefaultCount <= 0 {
		return fmt.Errorf("POPULAR_DEFAULT_COUNT must be positive")
	}
	if c.RateLimitPerIP <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_IP must be positive")
	}
	if c.RateLimitWindowSeconds <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be positive")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.StorageDriver != StoragePostgres {
		return fmt.Errorf("STORAGE_DRIVER must be 'postgres' in production")
	}
	if c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}

	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) GetPopularCacheTTL() time.Duration {
	return time.Duration(c.PopularCacheTTLSecs) * time.Second
}

func (c *Config) GetRateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func (c *Config) GetShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
