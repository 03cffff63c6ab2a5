// Package common provides shared utilities for Aurum
package common

import (
	"fmt"
	"os"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Aurum
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Rates       RatesConfig   `toml:"rates"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds storage configuration.
// Path is the base data directory; the badger store and uploaded bill
// files live underneath it.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	GoodReturns GoodReturnsConfig `toml:"goodreturns"`
	Gemini      GeminiConfig      `toml:"gemini"`
}

// GoodReturnsConfig holds the live gold-rate source configuration
type GoodReturnsConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GeminiConfig holds Gemini API configuration for bill extraction
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// RatesConfig holds the daily capture schedule for the gold-rate feed.
// CaptureHour/CaptureMinute are in IST, matching the 10:30 AM publication
// time of the Indian retail gold rate.
type RatesConfig struct {
	CaptureHour   int `toml:"capture_hour"`
	CaptureMinute int `toml:"capture_minute"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data",
		},
		Clients: ClientsConfig{
			GoodReturns: GoodReturnsConfig{
				RateLimit: 1,
				Timeout:   "20s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-3-flash-preview",
			},
		},
		Rates: RatesConfig{
			CaptureHour:   10,
			CaptureMinute: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// IsProduction reports whether the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadConfig loads configuration from the given TOML files in order
// (later files override earlier ones), then applies environment overrides.
// Missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if env := os.Getenv("AURUM_ENV"); env != "" {
		config.Environment = env
	}
	if host := os.Getenv("AURUM_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("AURUM_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if level := os.Getenv("AURUM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if path := os.Getenv("AURUM_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}
	if key := os.Getenv("AURUM_GEMINI_API_KEY"); key != "" {
		config.Clients.Gemini.APIKey = key
	}
	if url := os.Getenv("AURUM_GOODRETURNS_URL"); url != "" {
		config.Clients.GoodReturns.BaseURL = url
	}
}
