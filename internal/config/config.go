package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/mandalnilabja/mpgconverter/internal/conversion"
)

// Config holds application configuration loaded from environment and file.
// Priority: Env vars (.env included) → config.toml → defaults
type Config struct {
	// ServerPort is the address to bind the server to (e.g., ":8080")
	ServerPort string

	// EnableWebUI enables the converter form at /web
	EnableWebUI bool

	// BasePath is an extra prefix every route is also mounted under
	BasePath string

	// DefaultUnit is the source unit used when a request names none
	DefaultUnit conversion.Unit

	// EnableUsageLog records per-request usage in the database
	EnableUsageLog bool

	// RateLimit is requests per minute per client; 0 disables limiting
	RateLimit int

	LogLevel  string
	LogFormat string

	// AdminPassword seeds the admin password when none is stored yet
	AdminPassword string
}

// Load reads configuration from file and environment variables.
// Environment variables override file config values.
func Load() *Config {
	loadDotEnv()

	fileConfig, err := LoadFile()
	if err != nil {
		fileConfig = &FileConfig{} // unreadable file, use defaults
	}

	return &Config{
		ServerPort:     getEnvOrFile("SERVER_PORT", fileConfig.ServerPort, ":8080"),
		EnableWebUI:    getEnvBoolOrFile("ENABLE_WEB_UI", fileConfig.EnableWebUI, true),
		BasePath:       getEnvOrFile("BASE_PATH", fileConfig.BasePath, "/mpg-converter"),
		DefaultUnit:    conversion.Unit(strings.ToLower(getEnvOrFile("DEFAULT_UNIT", fileConfig.DefaultUnit, string(conversion.ImperialMPG)))),
		EnableUsageLog: getEnvBoolOrFile("ENABLE_USAGE_LOG", fileConfig.EnableUsageLog, true),
		RateLimit:      getEnvIntOrFile("RATE_LIMIT", fileConfig.RateLimit, 0),
		LogLevel:       getEnvOrFile("LOG_LEVEL", fileConfig.LogLevel, "info"),
		LogFormat:      getEnvOrFile("LOG_FORMAT", fileConfig.LogFormat, "text"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
	}
}

// Validate checks values that would otherwise fail later at request time.
func (c *Config) Validate() error {
	if !c.DefaultUnit.Valid() {
		return fmt.Errorf("default unit %q: %w", c.DefaultUnit, conversion.ErrUnknownUnit)
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base path %q must start with /", c.BasePath)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %d", c.RateLimit)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q must be text or json", c.LogFormat)
	}
	return nil
}

// Prefix returns BasePath without a trailing slash, or "" when routes are served only at root.
func (c *Config) Prefix() string {
	return strings.TrimRight(c.BasePath, "/")
}

// loadDotEnv loads ENV_FILE_PATH (default .env) without overriding the real environment.
func loadDotEnv() {
	path := cast.ToString(getOrReturnDefault("ENV_FILE_PATH", ".env"))
	_ = godotenv.Load(path) // a missing .env is normal
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvBoolOrFile returns env bool, file bool, or default (in priority order).
// An unparseable env value is ignored, as in getEnvIntOrFile.
func getEnvBoolOrFile(key string, fileValue *bool, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := cast.ToBoolE(value); err == nil {
			return b
		}
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

// getEnvIntOrFile returns env int, file int, or default (in priority order)
func getEnvIntOrFile(key string, fileValue *int, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := cast.ToIntE(value); err == nil {
			return n
		}
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}
