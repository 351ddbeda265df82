package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	OpenFoodFacts OpenFoodFactsConfig
	Nominatim     NominatimConfig
	Cache         CacheConfig
	RateLimit     RateLimitConfig
	Optimizer     OptimizerConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenFoodFactsConfig holds Open Food Facts API configuration
type OpenFoodFactsConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
	Country   string `mapstructure:"country"`
}

// NominatimConfig holds Nominatim geocoding API configuration
type NominatimConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // only "memory" is supported
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP
}

// OptimizerConfig holds defaults for the scoring and routing engines.
// StartLatitude/StartLongitude anchor route optimization when the request
// does not provide an origin.
type OptimizerConfig struct {
	StartLatitude  float64 `mapstructure:"start_latitude"`
	StartLongitude float64 `mapstructure:"start_longitude"`
	Debug          bool    `mapstructure:"debug"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/liquiverde/")

	// Environment variable settings
	v.SetEnvPrefix("LIQUIVERDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Open Food Facts defaults
	v.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.org/api/v2")
	v.SetDefault("openfoodfacts.user_agent", "LiquiVerde/1.0 (sustainability assistant)")
	v.SetDefault("openfoodfacts.country", "chile")

	// Nominatim defaults
	v.SetDefault("nominatim.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("nominatim.user_agent", "LiquiVerde/1.0 (sustainability assistant)")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Optimizer defaults: Santiago de Chile city center
	v.SetDefault("optimizer.start_latitude", -33.4489)
	v.SetDefault("optimizer.start_longitude", -70.6693)
	v.SetDefault("optimizer.debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit.per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.Optimizer.StartLatitude < -90 || config.Optimizer.StartLatitude > 90 {
		return fmt.Errorf("optimizer.start_latitude out of range: %f", config.Optimizer.StartLatitude)
	}

	if config.Optimizer.StartLongitude < -180 || config.Optimizer.StartLongitude > 180 {
		return fmt.Errorf("optimizer.start_longitude out of range: %f", config.Optimizer.StartLongitude)
	}

	return nil
}
