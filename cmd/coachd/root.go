package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"runcoach/internal/config"
	"runcoach/internal/llm"
	"runcoach/internal/pipeline"
	"runcoach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "coachd",
	Short: "Athlete state and coaching decision engine",
	Long: `coachd turns synced runs and wellness data into coaching decisions.

Every day it rebuilds each athlete's state snapshot (fitness, load,
recovery, trends), detects the current performance bottleneck, and
keeps the training philosophy aligned with it. Every Monday it reviews
the completed week against the plan and adjusts the upcoming sessions.

COMMANDS:

  init       Create an example config at ~/.runcoach/config.json
  migrate    Create or update the database schema
  analyze    Run one pass now (all athletes or one)
  serve      Run the scheduler with health and metrics endpoints`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(initCmd, migrateCmd, analyzeCmd, serveCmd)
}

// loadConfig reads and validates the config, guiding first-run users
// toward init.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		return nil, fmt.Errorf("no config found; run \"coachd init\" first")
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		dir, _ := config.GetConfigDir()
		return nil, fmt.Errorf("%w\n\nedit the config at %s/config.json", err, dir)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if cfg.Logging.Pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Logger()
}

func newGenerator(cfg *config.Config) llm.Generator {
	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
	switch cfg.LLM.Provider {
	case "openai":
		return llm.NewOpenAIGenerator(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, timeout)
	case "ollama":
		return llm.NewOllamaGenerator(cfg.LLM.BaseURL, cfg.LLM.Model, timeout)
	default:
		return nil
	}
}

func newEngine(cfg *config.Config, db *store.DB, log zerolog.Logger) *pipeline.Engine {
	return pipeline.New(
		db,
		newGenerator(cfg),
		log,
		cfg.Engine.DefaultThresholdPace,
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
		cfg.Engine.Workers,
	)
}
