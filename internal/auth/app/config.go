package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Secret       string // Optional: hex-encoded session signing secret; empty generates a random one
	SessionTTL   time.Duration
	RememberTTL  time.Duration
	SignupPolicy string // invite (default) or open

	DatabaseFile string // Optional: path to SQLite database file (default: ./gatekeep.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	CookieDomain string // Optional: domain attribute for session cookies
	CORSOrigin   string // Optional: allowed CORS origin; empty reflects the request origin

	BootstrapAdminEmail    string // Optional: seed a super admin on an empty store
	BootstrapAdminPassword string // Optional: empty generates a password and logs it

	Env                 string // Environment (dev, staging, prod) (default: dev)
	LogLevel            string // Log level (debug, info, warn, error) (default: info)
	LogFormat           string // Log format (json, text) (default: json)
	Port                int    // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration
}

func LoadConfig() Config {
	return Config{
		Secret:       os.Getenv("GATEKEEP_SECRET"),
		SessionTTL:   getEnvDurationOrDefault("GATEKEEP_TOKEN_TTL", 24*time.Hour),
		RememberTTL:  getEnvDurationOrDefault("GATEKEEP_REMEMBER_TTL", 30*24*time.Hour),
		SignupPolicy: getEnvOrDefault("GATEKEEP_SIGNUP_POLICY", "invite"),

		DatabaseFile: getEnvOrDefault("GATEKEEP_DATABASE_FILE", "gatekeep.db"),
		PepperFile:   getEnvOrDefault("GATEKEEP_PEPPER_FILE", "pepper"),

		CookieDomain: os.Getenv("GATEKEEP_COOKIE_DOMAIN"),
		CORSOrigin:   os.Getenv("GATEKEEP_CORS_ORIGIN"),

		BootstrapAdminEmail:    os.Getenv("GATEKEEP_BOOTSTRAP_EMAIL"),
		BootstrapAdminPassword: os.Getenv("GATEKEEP_BOOTSTRAP_PASSWORD"),

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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
