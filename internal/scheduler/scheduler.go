package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron"
	"github.com/rs/zerolog"

	"runcoach/internal/pipeline"
)

// Scheduler drives the engine on a clock: the daily pass every
// morning, the weekly review on Mondays. Specs use six-field cron
// syntax with seconds.
type Scheduler struct {
	Engine *pipeline.Engine
	Log    zerolog.Logger

	DailySpec  string
	WeeklySpec string

	c *cron.Cron
}

// Start registers both jobs and starts the cron runner. Jobs inherit
// ctx, so cancelling it stops in-flight passes; call Stop to halt
// scheduling.
func (s *Scheduler) Start(ctx context.Context) error {
	s.c = cron.New()

	if err := s.c.AddFunc(s.DailySpec, func() {
		s.run(ctx, false)
	}); err != nil {
		return err
	}
	if err := s.c.AddFunc(s.WeeklySpec, func() {
		s.run(ctx, true)
	}); err != nil {
		return err
	}

	s.c.Start()
	s.Log.Info().Str("daily", s.DailySpec).Str("weekly", s.WeeklySpec).Msg("scheduler started")
	return nil
}

// Stop halts the cron runner. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	if s.c != nil {
		s.c.Stop()
	}
}

func (s *Scheduler) run(ctx context.Context, weekly bool) {
	kind := "daily"
	if weekly {
		kind = "weekly"
	}
	started := time.Now()
	if err := s.Engine.RunAll(ctx, time.Now(), weekly); err != nil {
		s.Log.Error().Err(err).Str("pass", kind).Msg("scheduled pass failed")
		return
	}
	s.Log.Info().Str("pass", kind).Dur("took", time.Since(started)).Msg("scheduled pass complete")
}
