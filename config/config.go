package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	RateLimit RateLimitConfig
	Parser    ParserConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig selects and configures the record store backend
type StoreConfig struct {
	Type        string `mapstructure:"type"` // "memory", "sqlite" or "postgres"
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP float64 `mapstructure:"per_ip"` // requests per second per client IP
	Burst int     `mapstructure:"burst"`
}

// ParserConfig holds flyer-parsing configuration
type ParserConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
	MaxTextBytes       int  `mapstructure:"max_text_bytes"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/promolens/")

	// Environment variable settings
	v.SetEnvPrefix("PROMOLENS")
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
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Store defaults
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.sqlite_path", "./data/promolens.db")
	v.SetDefault("store.postgres_dsn", "")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 10.0)
	v.SetDefault("ratelimit.burst", 20)

	// Parser defaults
	v.SetDefault("parser.enable_debug_logging", false)
	v.SetDefault("parser.max_text_bytes", 10*1024*1024)
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Store.Type {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("store type must be 'memory', 'sqlite' or 'postgres', got: %s", config.Store.Type)
	}

	if config.Store.Type == "sqlite" && config.Store.SQLitePath == "" {
		return fmt.Errorf("SQLite path is required when store type is 'sqlite'")
	}
	if config.Store.Type == "postgres" && config.Store.PostgresDSN == "" {
		return fmt.Errorf("Postgres DSN is required when store type is 'postgres' (set PROMOLENS_STORE_POSTGRES_DSN)")
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("rate limit per_ip must be positive, got: %v", config.RateLimit.PerIP)
	}
	if config.Parser.MaxTextBytes <= 0 {
		return fmt.Errorf("parser max_text_bytes must be positive, got: %d", config.Parser.MaxTextBytes)
	}

	return nil
}
