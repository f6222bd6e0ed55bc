package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port   string `mapstructure:"port"`
	Env    string `mapstructure:"env"`
	APIKey string `mapstructure:"api_key"`
}

// StorageConfig holds PostgREST endpoint configuration
type StorageConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
}

// LoggingConfig holds log output configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AnalysisConfig overrides the analytics engine thresholds. Zero values
// fall back to the engine defaults.
type AnalysisConfig struct {
	MinEntriesForCorrelation int     `mapstructure:"min_entries_for_correlation"`
	MinEntriesForTrends      int     `mapstructure:"min_entries_for_trends"`
	ConfidenceThreshold      float64 `mapstructure:"confidence_threshold"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetEnvPrefix("WELLSPRING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables for deploy targets
	// that set the conventional names
	v.BindEnv("server.port", "PORT")
	v.BindEnv("storage.url", "POSTGREST_URL")
	v.BindEnv("storage.service_key", "POSTGREST_SERVICE_KEY")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that all required configuration values are present
func (c *Config) Validate() error {
	if c.Storage.URL == "" {
		return fmt.Errorf("WELLSPRING_STORAGE_URL is required")
	}
	if c.Storage.ServiceKey == "" {
		return fmt.Errorf("WELLSPRING_STORAGE_SERVICE_KEY is required")
	}
	return nil
}
