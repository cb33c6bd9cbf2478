// Package config provides configuration management for the console.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the console.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	API     APIConfig
	Session SessionConfig
	Upload  UploadConfig
	Logging LoggingConfig
}

// APIConfig contains backend connection configuration. BaseURL is the one
// and only backend host; there is deliberately no default and no per-call
// override.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // outbound requests per second
}

// SessionConfig locates the persisted session document.
type SessionConfig struct {
	File string
}

// UploadConfig contains multipart upload configuration.
type UploadConfig struct {
	PartSize     int64
	ResetDelay   time.Duration
	MaxThumbSize int64
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url is required (set APP_API_BASEURL or config.yaml)")
	}

	return &cfg, nil
}

func setDefaults() {
	// API
	viper.SetDefault("api.baseurl", "")
	viper.SetDefault("api.timeout", 30*time.Second)
	viper.SetDefault("api.ratelimit", 10.0)

	// Session
	viper.SetDefault("session.file", defaultSessionFile())

	// Upload
	viper.SetDefault("upload.partsize", int64(80*1024*1024))
	viper.SetDefault("upload.resetdelay", 5*time.Second)
	viper.SetDefault("upload.maxthumbsize", int64(5*1024*1024))

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "userDetails.json"
	}
	return filepath.Join(dir, "yama-console", "userDetails.json")
}
