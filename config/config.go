package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const appName = "vincent"

// Recommendation count bounds accepted by the API.
const (
	MinRecommendations = 5
	MaxRecommendations = 50
)

// Load loads the configuration. A missing config file is not an error;
// defaults and VINCENT_* environment variables apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, appName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case configPath == "" && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("api.retries", 2)
	v.SetDefault("api.recommendations", 10)

	stateFile := filepath.Join(appName, "state.json")
	if dir, err := os.UserConfigDir(); err == nil {
		stateFile = filepath.Join(dir, stateFile)
	}
	v.SetDefault("ui.state_file", stateFile)
	v.SetDefault("ui.mouse", true)
	v.SetDefault("ui.toast_duration", "3s")

	v.SetDefault("discover.freeze_filters", false)

	logFile := filepath.Join(appName, appName+".log")
	if dir, err := os.UserCacheDir(); err == nil {
		logFile = filepath.Join(dir, logFile)
	}
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.file", logFile)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL: %q", cfg.API.BaseURL)
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if cfg.API.Retries < 0 {
		return fmt.Errorf("api.retries must not be negative")
	}
	if cfg.API.Recommendations < MinRecommendations || cfg.API.Recommendations > MaxRecommendations {
		return fmt.Errorf("api.recommendations must be between %d and %d, got %d",
			MinRecommendations, MaxRecommendations, cfg.API.Recommendations)
	}

	if cfg.UI.StateFile == "" {
		return fmt.Errorf("ui.state_file is required")
	}
	if cfg.UI.ToastDuration <= 0 {
		return fmt.Errorf("ui.toast_duration must be positive")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
