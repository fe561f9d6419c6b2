// Package config loads the service configuration from YAML with environment
// fallbacks for secrets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`

	Database struct {
		Driver string `yaml:"driver"` // sqlite3 or postgres
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	LLM struct {
		Model     string `yaml:"model"`
		BaseURL   string `yaml:"base_url"`
		APIKeyEnv string `yaml:"api_key_env"`
	} `yaml:"llm"`

	Ordering struct {
		LowStockThreshold int `yaml:"low_stock_threshold"`
		ReorderAmount     int `yaml:"reorder_amount"`
		SessionTTLMinutes int `yaml:"session_ttl_minutes"`
	} `yaml:"ordering"`

	Auth struct {
		JWTSecret     string `yaml:"jwt_secret"`
		AdminPassword string `yaml:"admin_password"`
		TokenTTLHours int    `yaml:"token_ttl_hours"`
	} `yaml:"auth"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Metrics.Enabled = true
	cfg.Metrics.Port = 9090
	cfg.Metrics.Path = "/metrics"
	cfg.Database.Driver = "sqlite3"
	cfg.Database.DSN = "menu.db"
	cfg.LLM.Model = "gpt-4o"
	cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	cfg.Ordering.LowStockThreshold = 10
	cfg.Ordering.ReorderAmount = 50
	cfg.Ordering.SessionTTLMinutes = 30
	cfg.Auth.TokenTTLHours = 12
	return cfg
}

// Load reads a YAML config file over the defaults. Secrets left blank in the
// file are pulled from the environment (JWT_SECRET, ADMIN_PASSWORD).
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.Auth.AdminPassword == "" {
		cfg.Auth.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	return cfg, nil
}

// APIKey resolves the LLM API key from the configured environment variable.
func (c *Config) APIKey() string {
	if c.LLM.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.LLM.APIKeyEnv)
}
