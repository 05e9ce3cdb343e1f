package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the engine configuration
type Config struct {
	Engine   EngineConfig   `json:"engine"`
	LLM      LLMConfig      `json:"llm"`
	Server   ServerConfig   `json:"server"`
	Schedule ScheduleConfig `json:"schedule"`
	Logging  LoggingConfig  `json:"logging"`
}

// EngineConfig holds analysis defaults
type EngineConfig struct {
	// DefaultThresholdPace in seconds per km, used until detection
	// has enough data.
	DefaultThresholdPace float64 `json:"default_threshold_pace"`
	// Workers bounds the per-athlete concurrency of pipeline passes.
	Workers int `json:"workers"`
}

// LLMConfig selects the explanation backend
type LLMConfig struct {
	Provider       string `json:"provider"` // openai, ollama, none
	BaseURL        string `json:"base_url"`
	APIKey         string `json:"api_key"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// ServerConfig holds the health and metrics listener
type ServerConfig struct {
	ListenAddr string `json:"listen_addr"`
}

// ScheduleConfig holds the cron specs for the two loops
type ScheduleConfig struct {
	DailySpec  string `json:"daily_spec"`
	WeeklySpec string `json:"weekly_spec"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level  string `json:"level"`
	Pretty bool   `json:"pretty"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			DefaultThresholdPace: 330, // 5:30/km
			Workers:              4,
		},
		LLM: LLMConfig{
			Provider:       "none",
			TimeoutSeconds: 30,
		},
		Server: ServerConfig{
			ListenAddr: ":9180",
		},
		Schedule: ScheduleConfig{
			DailySpec:  "0 0 5 * * *",  // 05:00 every day
			WeeklySpec: "0 30 5 * * 1", // 05:30 every Monday
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration from ~/.runcoach/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadPath(path)
}

// LoadPath reads the configuration from an explicit path
func LoadPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Engine.DefaultThresholdPace == 0 {
		cfg.Engine.DefaultThresholdPace = defaults.Engine.DefaultThresholdPace
	}
	if cfg.Engine.Workers == 0 {
		cfg.Engine.Workers = defaults.Engine.Workers
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = defaults.LLM.Provider
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = defaults.LLM.TimeoutSeconds
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = defaults.Server.ListenAddr
	}
	if cfg.Schedule.DailySpec == "" {
		cfg.Schedule.DailySpec = defaults.Schedule.DailySpec
	}
	if cfg.Schedule.WeeklySpec == "" {
		cfg.Schedule.WeeklySpec = defaults.Schedule.WeeklySpec
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.runcoach/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.LLM = LLMConfig{
		Provider:       "ollama",
		BaseURL:        "http://localhost:11434",
		Model:          "llama3.2",
		TimeoutSeconds: 30,
	}
	return Save(&example)
}

// Validate checks if the config has usable values
func (c *Config) Validate() error {
	if c.Engine.DefaultThresholdPace < 120 || c.Engine.DefaultThresholdPace > 900 {
		return fmt.Errorf("engine.default_threshold_pace (%v) must be between 120 and 900 sec/km", c.Engine.DefaultThresholdPace)
	}
	if c.Engine.Workers < 1 {
		return errors.New("engine.workers must be at least 1")
	}

	switch c.LLM.Provider {
	case "none":
	case "ollama":
		if c.LLM.BaseURL == "" || c.LLM.Model == "" {
			return errors.New("llm.base_url and llm.model are required for the ollama provider")
		}
	case "openai":
		if c.LLM.BaseURL == "" || c.LLM.Model == "" {
			return errors.New("llm.base_url and llm.model are required for the openai provider")
		}
		if c.LLM.APIKey == "" {
			return errors.New("llm.api_key is required for the openai provider")
		}
	default:
		return fmt.Errorf("llm.provider must be \"openai\", \"ollama\" or \"none\", got %q", c.LLM.Provider)
	}

	if c.LLM.TimeoutSeconds < 1 {
		return errors.New("llm.timeout_seconds must be at least 1")
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".runcoach", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".runcoach"), nil
}
