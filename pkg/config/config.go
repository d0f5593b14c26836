package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/modscope/modscope/pkg/storage"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Storage configuration
	Storage storage.Config

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Rescan triggers: a cron schedule, filesystem watching, or both.
	RescanCron   string
	WatchEnabled bool

	// SnapshotOnRescan persists a snapshot after each successful rescan.
	SnapshotOnRescan bool

	// Rendered-report cache
	CacheSize int
	CacheTTL  time.Duration
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging level: debug, info, warn, error
	LogLevel string

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool // Use insecure gRPC connection
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Storage:       loadStorageConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:             getEnv("MODSCOPE_HOST", "0.0.0.0"),
		Port:             getEnv("MODSCOPE_PORT", "8080"),
		ReadTimeout:      getEnvDuration("MODSCOPE_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:     getEnvDuration("MODSCOPE_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:      getEnvDuration("MODSCOPE_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:  getEnvDuration("MODSCOPE_SHUTDOWN_TIMEOUT", 30*time.Second),
		RescanCron:       getEnv("MODSCOPE_RESCAN_CRON", ""),
		WatchEnabled:     getEnvBool("MODSCOPE_WATCH_ENABLED", true),
		SnapshotOnRescan: getEnvBool("MODSCOPE_SNAPSHOT_ON_RESCAN", false),
		CacheSize:        getEnvInt("MODSCOPE_CACHE_SIZE", 128),
		CacheTTL:         getEnvDuration("MODSCOPE_CACHE_TTL", 5*time.Minute),
	}
}

// loadStorageConfig loads storage configuration from environment
func loadStorageConfig() storage.Config {
	cfg := storage.DefaultConfig()

	if storageType := getEnv("MODSCOPE_STORAGE_TYPE", ""); storageType != "" {
		cfg.Type = storageType
	}

	// Filesystem config
	if fsRoot := getEnv("MODSCOPE_FILESYSTEM_ROOT", ""); fsRoot != "" {
		cfg.FilesystemRoot = fsRoot
	}

	// S3 config
	if s3Endpoint := getEnv("MODSCOPE_S3_ENDPOINT", ""); s3Endpoint != "" {
		cfg.S3Endpoint = s3Endpoint
	}
	if s3Region := getEnv("MODSCOPE_S3_REGION", ""); s3Region != "" {
		cfg.S3Region = s3Region
	}
	if s3Bucket := getEnv("MODSCOPE_S3_BUCKET", ""); s3Bucket != "" {
		cfg.S3Bucket = s3Bucket
	}
	if s3AccessKey := getEnv("MODSCOPE_S3_ACCESS_KEY", ""); s3AccessKey != "" {
		cfg.S3AccessKey = s3AccessKey
	}
	if s3SecretKey := getEnv("MODSCOPE_S3_SECRET_KEY", ""); s3SecretKey != "" {
		cfg.S3SecretKey = s3SecretKey
	}
	if s3UsePathStyle := getEnv("MODSCOPE_S3_USE_PATH_STYLE", ""); s3UsePathStyle != "" {
		cfg.S3UsePathStyle = strings.ToLower(s3UsePathStyle) == "true"
	}

	return cfg
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           getEnv("MODSCOPE_LOG_LEVEL", "info"),
		MetricsEnabled:     getEnvBool("MODSCOPE_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("MODSCOPE_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("MODSCOPE_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("MODSCOPE_OTEL_SERVICE_NAME", "modscope"),
		OTelServiceVersion: getEnv("MODSCOPE_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("MODSCOPE_OTEL_INSECURE", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive")
	}

	switch c.Storage.Type {
	case "filesystem":
		if c.Storage.FilesystemRoot == "" {
			return fmt.Errorf("filesystem root is required for filesystem storage")
		}
	case "s3":
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3 bucket is required for s3 storage")
		}
	default:
		return fmt.Errorf("invalid storage type: %s (must be filesystem or s3)", c.Storage.Type)
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
