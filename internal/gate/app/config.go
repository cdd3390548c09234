package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/nightowlmedia/doorman/pkg/jwtx"
)

type Config struct {
	Issuer string // Issuer claim for session tokens (default: doorman)

	DatabaseFile   string        // Path to the SQLite database file (default: ./doorman.db)
	SessionKeyFile string        // Optional: path to the Ed25519 signing key PEM; generated there on first run
	SessionTTL     time.Duration // Session token lifetime (default: 7 days)

	AdminUsername string // Root admin username seeded on first run (default: admin)
	AdminPassword string // Optional: root admin password; generated and logged once when unset

	MediaServerURL   string // Required: base URL of the media server
	MediaServerToken string // Required: admin API token for the media server

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired session sweep interval (default: 1h)
}

func LoadConfig() Config {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	return Config{
		Issuer:           getEnvOrDefault("GATE_ISSUER", "doorman"),
		DatabaseFile:     getEnvOrDefault("GATE_DATABASE_FILE", "doorman.db"),
		SessionKeyFile:   os.Getenv("GATE_SESSION_KEY_FILE"),
		SessionTTL:       getEnvDurationOrDefault("GATE_SESSION_TTL", jwtx.DefaultSessionTTL),
		AdminUsername:    getEnvOrDefault("GATE_ADMIN_USERNAME", "admin"),
		AdminPassword:    os.Getenv("GATE_ADMIN_PASSWORD"),
		MediaServerURL:   os.Getenv("MEDIA_SERVER_URL"),
		MediaServerToken: os.Getenv("MEDIA_SERVER_TOKEN"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
