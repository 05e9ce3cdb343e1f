package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPathMissing(t *testing.T) {
	_, err := LoadPath(filepath.Join(t.TempDir(), "nope.json"))
	if err != ErrNoConfig {
		t.Errorf("err = %v, want ErrNoConfig", err)
	}
}

func TestLoadPathAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"llm":{"provider":"ollama","base_url":"http://localhost:11434","model":"llama3.2"}}`), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.DefaultThresholdPace != 330 {
		t.Errorf("DefaultThresholdPace = %v, want default 330", cfg.Engine.DefaultThresholdPace)
	}
	if cfg.Engine.Workers != 4 {
		t.Errorf("Workers = %v, want default 4", cfg.Engine.Workers)
	}
	if cfg.LLM.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %v, want default 30", cfg.LLM.TimeoutSeconds)
	}
	if cfg.Schedule.DailySpec == "" || cfg.Schedule.WeeklySpec == "" {
		t.Error("schedule defaults missing")
	}
}

func TestLoadPathInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPath(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"threshold pace out of range", func(c *Config) { c.Engine.DefaultThresholdPace = 50 }, true},
		{"zero workers", func(c *Config) { c.Engine.Workers = 0 }, true},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "gemini" }, true},
		{"ollama missing model", func(c *Config) { c.LLM.Provider = "ollama"; c.LLM.BaseURL = "http://x" }, true},
		{"openai missing key", func(c *Config) {
			c.LLM.Provider = "openai"
			c.LLM.BaseURL = "http://x"
			c.LLM.Model = "m"
		}, true},
		{"openai complete", func(c *Config) {
			c.LLM.Provider = "openai"
			c.LLM.BaseURL = "http://x"
			c.LLM.Model = "m"
			c.LLM.APIKey = "k"
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
