package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/evickastudio/fireapi-go/fireapi"
)

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".firectl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/firectl/")
	}

	// The API key can come from the environment instead of the file
	v.SetEnvPrefix("FIRE")
	if err := v.BindEnv("fire.api_key", "FIRE_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// A file is optional when the key comes from the environment
			if v.GetString("fire.api_key") == "" {
				return nil, fmt.Errorf("config file not found: %w", err)
			}
		} else {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("fire.base_url", fireapi.DefaultBaseURL)
	v.SetDefault("fire.timeout", fireapi.DefaultTimeout)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Fire.APIKey == "" || cfg.Fire.APIKey == "your-api-key-here" {
		return fmt.Errorf("fire.api_key must be set to a valid API key")
	}

	if cfg.Fire.BaseURL == "" {
		return fmt.Errorf("fire.base_url is required")
	}

	if cfg.Fire.Timeout <= 0 {
		return fmt.Errorf("fire.timeout must be positive, got %s", cfg.Fire.Timeout)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// ClientOptions translates the file configuration into fireapi options.
func (c *Config) ClientOptions() []fireapi.Option {
	opts := []fireapi.Option{
		fireapi.WithTimeout(c.Fire.Timeout),
	}
	if c.Fire.BaseURL != fireapi.DefaultBaseURL {
		opts = append(opts, fireapi.WithBaseURL(c.Fire.BaseURL))
	}
	return opts
}
