package app

import (
	"os"
	"strconv"
	"time"

	"github.com/clefworks/scorebook/pkg/jwtx"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	DatabaseFile string // Path to SQLite database file (default: ./scorebook.db)
	RedisAddr    string // Session store address; empty selects the in-process driver

	// Key material, base64-encoded PEM. When a pair is missing an ephemeral
	// one is generated at startup and tokens do not survive restarts.
	AccessPrivateKey  string
	AccessPublicKey   string
	RefreshPrivateKey string
	RefreshPublicKey  string

	AccessTokenTTL     time.Duration // default: 15m
	RefreshTokenTTL    time.Duration // default: 60m
	RoleMismatchStatus int           // 401 or 403 (default: 401)
	RotateRefresh      bool          // reissue the refresh token on refresh (default: false)

	FlashKey string // flash cookie signing key; empty generates a random one

	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("SERVER_PORT", 8080),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "scorebook.db"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),

		AccessPrivateKey:  os.Getenv("ACCESS_TOKEN_PRIVATE_KEY"),
		AccessPublicKey:   os.Getenv("ACCESS_TOKEN_PUBLIC_KEY"),
		RefreshPrivateKey: os.Getenv("REFRESH_TOKEN_PRIVATE_KEY"),
		RefreshPublicKey:  os.Getenv("REFRESH_TOKEN_PUBLIC_KEY"),

		AccessTokenTTL:     getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTTL),
		RefreshTokenTTL:    getEnvDurationOrDefault("REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTTL),
		RoleMismatchStatus: getEnvIntOrDefault("AUTH_ROLE_MISMATCH_STATUS", 401),
		RotateRefresh:      getEnvBoolOrDefault("AUTH_ROTATE_REFRESH", false),

		FlashKey: os.Getenv("FLASH_KEY"),

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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Durations like "15m", or bare integer minutes.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
