package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the API service
type Config struct {
	// Server
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`

	// Model artifacts
	ModelDir string `yaml:"model_dir"`

	// Static assets
	WebDir string `yaml:"web_dir"`

	// Telemetry
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// Load reads configuration from an optional YAML file (CONFIG_FILE),
// then overrides from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        "8080",
		Environment: "development",
		ModelDir:    "models",
		WebDir:      "web",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("GO_ENV", cfg.Environment)
	cfg.ModelDir = getEnv("MODEL_DIR", cfg.ModelDir)
	cfg.WebDir = getEnv("WEB_DIR", cfg.WebDir)
	cfg.OTLPEndpoint = getEnv("OTLP_ENDPOINT", cfg.OTLPEndpoint)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
