package philosophy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"runcoach/internal/store"
)

// Selector turns a detected limiter into the active training period.
// A new period opens only when the limiter actually changed or none is
// open; the close-then-open happens in one transaction so there is
// never a moment with two open periods or none committed halfway.
type Selector struct {
	DB  *store.DB
	Log zerolog.Logger
}

// Select ensures the open period matches the limiter. Returns the
// active period and whether a transition happened.
func (s *Selector) Select(st *store.AthleteState, limiter string, now time.Time) (*store.PhilosophyPeriod, bool, error) {
	open, err := s.DB.GetOpenPeriod(st.AthleteID)
	if err != nil && !errors.Is(err, store.ErrNoOpenPeriod) {
		return nil, false, fmt.Errorf("get open period: %w", err)
	}
	if open != nil && open.Limiter == limiter {
		return open, false, nil
	}

	cfg := ConfigFor(limiter)
	multiplier := cfg.VolumeMultiplier
	if limiter == "pre_race_peak" && st.WeeksToRace != nil {
		multiplier = TaperMultiplier(*st.WeeksToRace)
	}

	period := &store.PhilosophyPeriod{
		ID:                uuid.NewString(),
		AthleteID:         st.AthleteID,
		Limiter:           limiter,
		Mode:              cfg.Mode,
		VolumeTargetKm:    st.Weekly4wkAvgKm * multiplier,
		EasyPct:           cfg.EasyPct,
		ModeratePct:       cfg.ModeratePct,
		HardPct:           cfg.HardPct,
		AllowedWorkouts:   strings.Join(cfg.AllowedWorkouts, ","),
		ForbiddenWorkouts: strings.Join(cfg.ForbiddenWorkouts, ","),
		ProgressionPct:    cfg.ProgressionPct,
		DurationWeeks:     cfg.DurationWeeks,
		SuccessMetric:     cfg.SuccessMetric,
		StartedAt:         now.UTC(),
	}
	if err := s.DB.TransitionPeriod(period); err != nil {
		return nil, false, fmt.Errorf("transition period: %w", err)
	}

	from := "none"
	if open != nil {
		from = open.Mode
	}
	s.Log.Info().
		Int64("athlete", st.AthleteID).
		Str("from", from).
		Str("to", period.Mode).
		Str("limiter", limiter).
		Float64("volume_target_km", period.VolumeTargetKm).
		Msg("philosophy transition")

	return period, true, nil
}
