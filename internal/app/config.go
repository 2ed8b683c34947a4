package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/waypoint-labs/waypoint/pkg/jwtx"
)

type Config struct {
	TokenSecret string // Required: shared HS256 signing secret
	AdminSecret string // Optional: gate for Admin registration; empty disables it
	Issuer      string // Optional: issuer claim for tokens (default: waypoint)

	TokenTTL            time.Duration // Optional: token lifetime (default: 24h)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./waypoint.db)
	PepperFile          string        // Optional: path to password hashing pepper file (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// Best effort: a missing .env file is the normal production case.
	_ = godotenv.Load()

	return Config{
		TokenSecret:         os.Getenv("WAYPOINT_TOKEN_SECRET"),
		AdminSecret:         os.Getenv("WAYPOINT_ADMIN_SECRET"),
		Issuer:              getEnvOrDefault("WAYPOINT_ISSUER", "waypoint"),
		TokenTTL:            getEnvDurationOrDefault("WAYPOINT_TOKEN_TTL", jwtx.DefaultTokenTTL),
		DatabaseFile:        getEnvOrDefault("WAYPOINT_DATABASE_FILE", "waypoint.db"),
		PepperFile:          getEnvOrDefault("WAYPOINT_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accept durations ("24h", "90m") or bare integer hours.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}
