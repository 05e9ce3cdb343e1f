package adaptation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"runcoach/internal/analysis"
	"runcoach/internal/llm"
	"runcoach/internal/metrics"
	"runcoach/internal/store"
)

// Loop is the weekly review: compare the completed week's actual
// fitness change to what the philosophy promised, classify the
// response, and rewrite the upcoming plan accordingly. One record per
// athlete-week; re-running a review replaces it.
type Loop struct {
	DB  *store.DB
	Gen llm.Generator
	Log zerolog.Logger

	DefaultThresholdPace float64
	ExplainTimeout       time.Duration
}

// ReviewWeek runs the loop for the most recently completed ISO week.
func (l *Loop) ReviewWeek(ctx context.Context, athleteID int64, now time.Time) (*store.AdaptationRecord, error) {
	wk, weekStart, weekEnd := PriorWeek(now)

	st, err := l.DB.GetAthleteState(athleteID)
	if err != nil && !errors.Is(err, store.ErrNoState) {
		return nil, fmt.Errorf("get state: %w", err)
	}
	thresholdPace := l.DefaultThresholdPace
	if st != nil && st.ThresholdPace > 0 {
		thresholdPace = st.ThresholdPace
	}

	runs, err := l.DB.ListRunsSince(athleteID, weekEnd.AddDate(0, 0, -analysis.WindowDays))
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	samples, actualKm := l.weekSamples(runs, thresholdPace, weekStart, weekEnd)

	// CTL read at both week boundaries from the same series.
	lastDay := weekEnd.AddDate(0, 0, -1)
	daily := analysis.DailyTSSSeries(samples, lastDay, analysis.WindowDays)
	ctlSeries := analysis.EWMASeries(daily, analysis.ChronicLoadDays)
	weekEndCTL := ctlSeries[len(ctlSeries)-1]
	weekStartCTL := ctlSeries[len(ctlSeries)-8]
	ctlDelta := weekEndCTL - weekStartCTL

	progression := 5.0
	period, err := l.DB.GetOpenPeriod(athleteID)
	if err != nil && !errors.Is(err, store.ErrNoOpenPeriod) {
		return nil, fmt.Errorf("get open period: %w", err)
	}
	if period != nil {
		progression = period.ProgressionPct
	}

	expected := weekStartCTL * progression / 100
	ratio := 1.0
	if expected > 0 {
		ratio = ctlDelta / expected
	}

	plannedKm, plannedN, completedN, err := l.weekPlan(athleteID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	completionRate := 0.0
	if plannedN > 0 {
		completionRate = float64(completedN) / float64(plannedN)
	}

	hrvAvg, hrvResponse, err := l.hrvResponse(athleteID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	prev, err := l.DB.LatestAdaptationRecordBefore(athleteID, wk.Year, wk.Week)
	if err != nil {
		return nil, fmt.Errorf("previous record: %w", err)
	}
	prevStagnant := prev != nil && (prev.Classification == Stagnant || prev.AdaptationRatio < 0.7)

	out := Classify(Inputs{
		AdaptationRatio: ratio,
		CTLDelta:        ctlDelta,
		HRVResponse:     hrvResponse,
		PrevStagnant:    prevStagnant,
		ProgressionPct:  progression,
	})

	adjusted, err := ApplyAdjustments(l.DB, athleteID, out, now)
	if err != nil {
		return nil, err
	}
	metrics.AdaptationClassifications.WithLabelValues(out.Classification).Inc()
	metrics.SessionsAdjustedTotal.Add(float64(adjusted))

	rec := &store.AdaptationRecord{
		AthleteID:         athleteID,
		ISOYear:           wk.Year,
		ISOWeek:           wk.Week,
		PlannedKm:         plannedKm,
		ActualKm:          actualKm,
		PlannedSessions:   plannedN,
		CompletedSessions: completedN,
		CompletionRate:    completionRate,
		ExpectedCTLDelta:  expected,
		ActualCTLDelta:    ctlDelta,
		AdaptationRatio:   ratio,
		Classification:    out.Classification,
		Action:            out.Action,
		VolumeAdjPct:      out.VolumeAdjPct,
		IntensityAdjPct:   out.IntensityAdjPct,
		NeedsReplan:       out.NeedsReplan,
		WeekEndCTL:        weekEndCTL,
		HRVAvg:            hrvAvg,
		ThresholdPace:     thresholdPace,
		CreatedAt:         now.UTC(),
	}
	if st != nil {
		rec.DecouplingPct = st.RecentDecouplingPct
	}
	rec.Explanation = Explain(ctx, l.Gen, l.Log, rec, l.ExplainTimeout)

	if err := l.DB.UpsertAdaptationRecord(rec); err != nil {
		return nil, fmt.Errorf("upsert record: %w", err)
	}

	l.Log.Info().
		Int64("athlete", athleteID).
		Int("iso_year", wk.Year).
		Int("iso_week", wk.Week).
		Str("classification", out.Classification).
		Str("action", out.Action).
		Float64("ratio", ratio).
		Int("sessions_adjusted", adjusted).
		Msg("weekly review complete")

	return rec, nil
}

// weekSamples converts runs to analysis samples and totals the
// distance inside the reviewed week.
func (l *Loop) weekSamples(runs []store.Run, thresholdPace float64, weekStart, weekEnd time.Time) ([]analysis.RunSample, float64) {
	var samples []analysis.RunSample
	var actualKm float64
	for _, r := range runs {
		if !analysis.Qualifies(r.DistanceM, r.DurationS) {
			continue
		}
		var tss, intensity float64
		if r.MetricsComputed && r.TSS != nil && r.IntensityFactor != nil {
			tss = *r.TSS
			intensity = *r.IntensityFactor
		} else {
			m := analysis.ComputeRunMetrics(r.ID, r.DistanceM, r.DurationS, r.AvgHR, thresholdPace)
			tss = m.TSS
			intensity = m.IntensityFactor
		}
		samples = append(samples, analysis.RunSample{
			Start:           r.StartTime,
			DistanceM:       r.DistanceM,
			DurationS:       r.DurationS,
			TSS:             tss,
			IntensityFactor: intensity,
		})
		if !r.StartTime.Before(weekStart) && r.StartTime.Before(weekEnd) {
			actualKm += r.DistanceM / 1000
		}
	}
	return samples, actualKm
}

func (l *Loop) weekPlan(athleteID int64, weekStart, weekEnd time.Time) (plannedKm float64, planned, completed int, err error) {
	from := weekStart.Format("2006-01-02")
	to := weekEnd.AddDate(0, 0, -1).Format("2006-01-02")
	planned, completed, err = l.DB.CountPlannedCompleted(athleteID, from, to)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("count sessions: %w", err)
	}
	sessions, err := l.DB.ListSessionsBetween(athleteID, from, to)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("list sessions: %w", err)
	}
	for _, s := range sessions {
		if s.Type == "rest" {
			continue
		}
		plannedKm += s.TargetDistanceKm
	}
	return plannedKm, planned, completed, nil
}

// hrvResponse compares the reviewed week's average HRV to the week
// before it. Either side missing reads as a zero response.
func (l *Loop) hrvResponse(athleteID int64, weekStart, weekEnd time.Time) (*float64, float64, error) {
	records, err := l.DB.ListWellnessSince(athleteID, weekStart.AddDate(0, 0, -7).Format("2006-01-02"))
	if err != nil {
		return nil, 0, fmt.Errorf("list wellness: %w", err)
	}
	weekFrom := weekStart.Format("2006-01-02")
	weekTo := weekEnd.Format("2006-01-02")

	var cur, prior []float64
	for _, r := range records {
		if r.HRV == nil {
			continue
		}
		switch {
		case r.Day >= weekFrom && r.Day < weekTo:
			cur = append(cur, *r.HRV)
		case r.Day < weekFrom:
			prior = append(prior, *r.HRV)
		}
	}
	if len(cur) == 0 {
		return nil, 0, nil
	}
	avg := meanOf(cur)
	if len(prior) == 0 {
		return &avg, 0, nil
	}
	return &avg, avg - meanOf(prior), nil
}

func meanOf(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
