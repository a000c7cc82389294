// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported DB_DRIVER values
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion       string
	LogLevel         string
	MetricsNamespace string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Relational store
	DBDriver    string
	PostgresDSN string
	SQLitePath  string
	DBDebug     bool

	// MongoDB raw payload archive, disabled when MongoURI is empty
	MongoURI string
	MongoDB  string

	// Search API
	SearchAPIURL    string
	SearchAPIKey    string
	PollInterval    time.Duration
	SearchRangeDays int
	RetentionDays   int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:       getEnv("APP_VERSION", "1.0.0"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "flightsnap"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=flightsnap password=flightsnap dbname=flightsnap port=5432 sslmode=disable"),
		SQLitePath:  getEnv("SQLITE_PATH", "flightsnap.db"),
		DBDebug:     getEnvAsBool("DB_DEBUG", false),

		MongoURI: getEnv("MONGODB_DSN", ""),
		MongoDB:  getEnv("MONGO_DB", "flightsnap"),

		SearchAPIURL:    getEnv("SEARCH_API_URL", ""),
		SearchAPIKey:    getEnv("SEARCH_API_KEY", ""),
		PollInterval:    getEnvAsDuration("POLL_INTERVAL", time.Hour),
		SearchRangeDays: getEnvAsInt("SEARCH_RANGE_DAYS", 30),
		RetentionDays:   getEnvAsInt("RETENTION_DAYS", 0),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks settings that have no usable default
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when DB_DRIVER=%s", DriverPostgres)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when DB_DRIVER=%s", DriverSQLite)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}
	if c.SearchRangeDays < 0 || c.RetentionDays < 0 {
		return fmt.Errorf("SEARCH_RANGE_DAYS and RETENTION_DAYS must not be negative")
	}
	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("15m") or plain seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
