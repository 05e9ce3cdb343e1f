package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"runcoach/internal/adaptation"
	"runcoach/internal/bottleneck"
	"runcoach/internal/llm"
	"runcoach/internal/metrics"
	"runcoach/internal/philosophy"
	"runcoach/internal/state"
	"runcoach/internal/store"
)

// Engine chains the coaching stages. The daily pass rebuilds state,
// detects the limiter, and keeps the philosophy period aligned; the
// weekly pass reviews the completed week and rewrites the plan.
type Engine struct {
	DB  *store.DB
	Log zerolog.Logger

	Aggregator *state.Aggregator
	Detector   *bottleneck.Detector
	Selector   *philosophy.Selector
	Loop       *adaptation.Loop

	// Workers bounds concurrent athletes in RunAll.
	Workers int
}

// New wires an engine with the given backends.
func New(db *store.DB, gen llm.Generator, log zerolog.Logger, defaultThresholdPace float64, explainTimeout time.Duration, workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		DB:  db,
		Log: log,
		Aggregator: &state.Aggregator{
			DB:                   db,
			Log:                  log,
			DefaultThresholdPace: defaultThresholdPace,
		},
		Detector: &bottleneck.Detector{DB: db, Log: log},
		Selector: &philosophy.Selector{DB: db, Log: log},
		Loop: &adaptation.Loop{
			DB:                   db,
			Gen:                  gen,
			Log:                  log,
			DefaultThresholdPace: defaultThresholdPace,
			ExplainTimeout:       explainTimeout,
		},
		Workers: workers,
	}
}

// DailyResult summarizes one athlete's daily pass.
type DailyResult struct {
	State      *store.AthleteState
	Bottleneck *bottleneck.Result
	Period     *store.PhilosophyPeriod
	Transition bool
}

// RunDaily executes the daily pass for one athlete.
func (e *Engine) RunDaily(ctx context.Context, athleteID int64, now time.Time) (*DailyResult, error) {
	st, err := e.timed(metrics.StageState, func() (*store.AthleteState, error) {
		return e.Aggregator.BuildState(athleteID, now)
	})
	if err != nil {
		return nil, fmt.Errorf("athlete %d: build state: %w", athleteID, err)
	}

	started := time.Now()
	res, err := e.Detector.Detect(st, now)
	e.observe(metrics.StageBottleneck, started, err)
	if err != nil {
		return nil, fmt.Errorf("athlete %d: detect: %w", athleteID, err)
	}

	started = time.Now()
	period, transitioned, err := e.Selector.Select(st, res.Primary.Type, now)
	e.observe(metrics.StagePhilosophy, started, err)
	if err != nil {
		return nil, fmt.Errorf("athlete %d: select philosophy: %w", athleteID, err)
	}
	if transitioned {
		metrics.LimiterTransitionsTotal.WithLabelValues(res.Primary.Type).Inc()
	}

	id := strconv.FormatInt(athleteID, 10)
	metrics.ReadinessScore.WithLabelValues(id).Set(float64(st.ReadinessScore))
	metrics.InjuryRiskScore.WithLabelValues(id).Set(float64(st.InjuryRiskScore))
	metrics.ChronicTrainingLoad.WithLabelValues(id).Set(st.CTL)

	// Bookkeeping only; a failed write never fails the pass.
	if err := e.DB.SetEngineState("last_daily_pass:"+id, st.StateDay); err != nil {
		e.Log.Warn().Err(err).Int64("athlete", athleteID).Msg("recording daily pass failed")
	}

	return &DailyResult{State: st, Bottleneck: res, Period: period, Transition: transitioned}, nil
}

// RunWeekly executes the weekly review for one athlete. The daily pass
// runs first so the review reads a fresh snapshot.
func (e *Engine) RunWeekly(ctx context.Context, athleteID int64, now time.Time) (*store.AdaptationRecord, error) {
	if _, err := e.RunDaily(ctx, athleteID, now); err != nil {
		return nil, err
	}
	started := time.Now()
	rec, err := e.Loop.ReviewWeek(ctx, athleteID, now)
	e.observe(metrics.StageWeekly, started, err)
	if err != nil {
		return nil, fmt.Errorf("athlete %d: weekly review: %w", athleteID, err)
	}

	key := "last_weekly_review:" + strconv.FormatInt(athleteID, 10)
	if err := e.DB.SetEngineState(key, fmt.Sprintf("%d-W%02d", rec.ISOYear, rec.ISOWeek)); err != nil {
		e.Log.Warn().Err(err).Int64("athlete", athleteID).Msg("recording weekly review failed")
	}
	return rec, nil
}

// RunAll runs a pass for every known athlete through a bounded worker
// pool. Individual athlete failures are logged and counted, never
// fatal to the pass.
func (e *Engine) RunAll(ctx context.Context, now time.Time, weekly bool) error {
	ids, err := e.DB.ListAthleteIDs()
	if err != nil {
		return fmt.Errorf("list athletes: %w", err)
	}
	metrics.AthletesProcessed.Set(float64(len(ids)))
	if len(ids) == 0 {
		e.Log.Info().Msg("no athletes to process")
		return nil
	}

	jobs := make(chan int64)
	var wg sync.WaitGroup
	for i := 0; i < e.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				var err error
				if weekly {
					_, err = e.RunWeekly(ctx, id, now)
				} else {
					_, err = e.RunDaily(ctx, id, now)
				}
				if err != nil {
					e.Log.Error().Err(err).Int64("athlete", id).Msg("pipeline pass failed")
				}
			}
		}()
	}

	for _, id := range ids {
		select {
		case jobs <- id:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()
	return nil
}

func (e *Engine) timed(stage string, fn func() (*store.AthleteState, error)) (*store.AthleteState, error) {
	started := time.Now()
	st, err := fn()
	e.observe(stage, started, err)
	return st, err
}

func (e *Engine) observe(stage string, started time.Time, err error) {
	metrics.PipelineStageDuration.WithLabelValues(stage).Observe(time.Since(started).Seconds())
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailure
	}
	metrics.PipelineRunsTotal.WithLabelValues(stage, result).Inc()
}
