package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	UI       UIConfig       `mapstructure:"ui"`
	Discover DiscoverConfig `mapstructure:"discover"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// APIConfig holds the catalog API connection details
type APIConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Retries         int           `mapstructure:"retries"`
	Recommendations int           `mapstructure:"recommendations"`
}

// UIConfig contains terminal interface settings
type UIConfig struct {
	StateFile     string        `mapstructure:"state_file"`
	Mouse         bool          `mapstructure:"mouse"`
	ToastDuration time.Duration `mapstructure:"toast_duration"`
}

// DiscoverConfig controls the discover section
type DiscoverConfig struct {
	// FreezeFilters makes "load more" reuse the filters captured on apply
	// instead of the current control values.
	FreezeFilters bool `mapstructure:"freeze_filters"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
	// File receives the log while the TUI owns the terminal.
	File string `mapstructure:"file"`
}
