package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the taskmuse configuration
type Config struct {
	Model     string `json:"model"`      // Model in provider:model format
	APIKey    string `json:"api_key"`    // API key for LLM providers
	BaseURL   string `json:"base_url"`   // Base URL for LLM providers (optional)
	StorePath string `json:"store_path"` // Path to the task list file (optional)
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Model: "openai:gpt-4o-mini",
	}
}

// LoadConfig loads configuration from the global config file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	fileCfg, err := loadGlobalConfig()
	if err == nil {
		mergeCfg(cfg, fileCfg)
	}

	// Environment overrides take precedence over the file
	if v := os.Getenv("TASKMUSE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("TASKMUSE_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("TASKMUSE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TASKMUSE_STORE"); v != "" {
		cfg.StorePath = v
	}

	return cfg, nil
}

// Get retrieves a configuration value by key
func (c *Config) Get(key string) (interface{}, error) {
	switch key {
	case "model":
		return c.Model, nil
	case "api_key":
		return c.APIKey, nil
	case "base_url":
		return c.BaseURL, nil
	case "store_path":
		return c.StorePath, nil
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a configuration value by key
func (c *Config) Set(key string, value interface{}) error {
	// Convert value to string (CLI input is always string)
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string value for %s", key)
	}

	switch key {
	case "model":
		c.Model = str
		return nil
	case "api_key":
		c.APIKey = str
		return nil
	case "base_url":
		c.BaseURL = str
		return nil
	case "store_path":
		c.StorePath = str
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// ConfigDir returns the taskmuse configuration directory (~/.taskmuse)
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".taskmuse"), nil
}

// loadGlobalConfig loads configuration from ~/.taskmuse/config.json
func loadGlobalConfig() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return loadConfigFromFile(filepath.Join(dir, "config.json"))
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SaveConfig saves configuration to ~/.taskmuse/config.json
func SaveConfig(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// mergeCfg merges source config into destination config
func mergeCfg(dst, src *Config) {
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.StorePath != "" {
		dst.StorePath = src.StorePath
	}
}
