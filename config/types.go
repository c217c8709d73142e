package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Fire    FireConfig    `mapstructure:"fire"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// FireConfig holds 24Fire API connection details
type FireConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
