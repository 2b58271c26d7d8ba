package config

import (
	"os"
	"strconv"

	"vesseldocs-backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Backend mode
	ModeOverride string // explicit operator override, empty = auto-resolve

	// Local profile
	LocalEndpoint     string
	LocalDocumentRoot string

	// Cloud profile
	CloudEndpoint     string
	CloudStorageSpace string
	CloudServiceKey   string

	// Production profile
	ProductionHost     string
	ProductionShare    string
	ProductionUsername string
	ProductionPassword string

	// Corpus
	CorpusIndexPath string

	// Sessions
	AccountsFile      string
	SessionTTLSeconds int

	// Fault injection
	MaxLatencyMs int

	// Connectivity probes
	ProbeTimeoutSeconds int

	// Logging and features
	LogLevel   string
	EnableCORS bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		ModeOverride: getEnv("BACKEND_MODE", ""),

		LocalEndpoint:     getEnv("LOCAL_ENDPOINT", "http://localhost:8081"),
		LocalDocumentRoot: getEnv("LOCAL_DOCUMENT_ROOT", "./corpus"),

		CloudEndpoint:     getEnv("CLOUD_ENDPOINT", "https://docs.yachtcloud.example.com"),
		CloudStorageSpace: getEnv("CLOUD_STORAGE_SPACE", "vessel-docs"),
		CloudServiceKey:   getEnv("CLOUD_SERVICE_KEY", ""),

		ProductionHost:     getEnv("PRODUCTION_HOST", ""),
		ProductionShare:    getEnv("PRODUCTION_SHARE", "TechnicalDocs"),
		ProductionUsername: getEnv("PRODUCTION_USERNAME", ""),
		ProductionPassword: getEnv("PRODUCTION_PASSWORD", ""),

		CorpusIndexPath: getEnv("CORPUS_INDEX_PATH", "./corpus/index.json"),

		AccountsFile:      getEnv("ACCOUNTS_FILE", ""),
		SessionTTLSeconds: getEnvInt("SESSION_TTL_SECONDS", 3600),

		MaxLatencyMs: getEnvInt("MAX_LATENCY_MS", 500),

		ProbeTimeoutSeconds: getEnvInt("PROBE_TIMEOUT_SECONDS", 4),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present. An
// unresolvable explicit mode is a fatal configuration error surfaced
// here, at process start, never retried.
func (c *Config) Validate() error {
	if c.ModeOverride != "" {
		if _, err := ParseMode(c.ModeOverride); err != nil {
			return err
		}
	}
	if c.SessionTTLSeconds <= 0 {
		return errors.NewConfigurationError("SESSION_TTL_SECONDS must be positive")
	}
	if c.MaxLatencyMs < 0 {
		return errors.NewConfigurationError("MAX_LATENCY_MS must not be negative")
	}
	if c.Environment == "production" && c.ProductionHost != "" && c.ProductionPassword == "" {
		return errors.NewConfigurationError("PRODUCTION_PASSWORD is required when PRODUCTION_HOST is set in production")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
