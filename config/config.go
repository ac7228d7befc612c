package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	Service       ServiceConfig
	App           AppConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Cache         CacheConfig
	Storage       StorageConfig
	Search        SearchConfig
}

type ServiceConfig struct {
	// BaseURL is the root of the profilehub JSON API, e.g. https://api.profilehub.dev
	BaseURL           string
	TimeoutSeconds    int
	RequestsPerSecond float64
	RequestBurst      int
}

type AppConfig struct {
	Env string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

type CacheConfig struct {
	ProfileTTLSeconds   int  // Profile cache TTL in seconds
	DisableProfileCache bool // Bypass the cache and hit the service on every read
}

type StorageConfig struct {
	// UserStatePath is the durable file holding the logged-in user id
	UserStatePath string
}

type SearchConfig struct {
	DefaultPageSize int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("SERVICE_BASE_URL", "https://api.profilehub.dev")
	v.SetDefault("SERVICE_TIMEOUT_SECONDS", 30)
	v.SetDefault("SERVICE_REQUESTS_PER_SECOND", 10.0)
	v.SetDefault("SERVICE_REQUEST_BURST", 5)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "alloy:4318") // OTLP over HTTP
	v.SetDefault("O11Y_SERVICE_NAME", "profilehub-client")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "profilehub")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "profilehub-client")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("PROFILE_CACHE_TTL", 600) // 10 minutes in seconds
	v.SetDefault("DISABLE_PROFILE_CACHE", false)
	v.SetDefault("USER_STATE_PATH", ".profilehub/user.json")
	v.SetDefault("DEFAULT_PAGE_SIZE", 10)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Service: ServiceConfig{
			BaseURL:           strings.TrimSuffix(v.GetString("SERVICE_BASE_URL"), "/"),
			TimeoutSeconds:    v.GetInt("SERVICE_TIMEOUT_SECONDS"),
			RequestsPerSecond: v.GetFloat64("SERVICE_REQUESTS_PER_SECOND"),
			RequestBurst:      v.GetInt("SERVICE_REQUEST_BURST"),
		},
		App: AppConfig{
			Env: v.GetString("APP_ENV"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Cache: CacheConfig{
			ProfileTTLSeconds:   v.GetInt("PROFILE_CACHE_TTL"),
			DisableProfileCache: v.GetBool("DISABLE_PROFILE_CACHE"),
		},
		Storage: StorageConfig{
			UserStatePath: v.GetString("USER_STATE_PATH"),
		},
		Search: SearchConfig{
			DefaultPageSize: v.GetInt("DEFAULT_PAGE_SIZE"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("SERVICE_BASE_URL is required")
	}
	if c.Service.TimeoutSeconds <= 0 {
		return fmt.Errorf("SERVICE_TIMEOUT_SECONDS must be positive")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	if c.Storage.UserStatePath == "" {
		return fmt.Errorf("USER_STATE_PATH is required")
	}

	switch c.Search.DefaultPageSize {
	case 10, 20, 30:
	default:
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be one of 10, 20, 30")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
