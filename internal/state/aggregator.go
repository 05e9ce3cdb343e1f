package state

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"runcoach/internal/analysis"
	"runcoach/internal/store"
)

// Aggregator rebuilds the single athlete state snapshot from runs and
// wellness records. Every pass is a full rebuild; nothing is mutated
// incrementally, so re-running for the same day is idempotent.
type Aggregator struct {
	DB  *store.DB
	Log zerolog.Logger

	// Fallback threshold pace (sec/km) before any detection succeeds.
	DefaultThresholdPace float64
}

// BuildState computes and persists the state snapshot for one athlete
// as of now. The returned state is the row just written.
func (a *Aggregator) BuildState(athleteID int64, now time.Time) (*store.AthleteState, error) {
	today := now.UTC().Format("2006-01-02")

	prior, err := a.DB.GetAthleteState(athleteID)
	if err != nil && !errors.Is(err, store.ErrNoState) {
		return nil, fmt.Errorf("load prior state: %w", err)
	}

	priorThreshold := a.DefaultThresholdPace
	if prior != nil && prior.ThresholdPace > 0 {
		priorThreshold = prior.ThresholdPace
	}

	runs, err := a.DB.ListRunsSince(athleteID, now.AddDate(0, 0, -analysis.WindowDays))
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	rep := analysis.Analyze(runs, priorThreshold, now)

	for _, m := range rep.NewMetrics {
		if err := a.saveMetrics(m); err != nil {
			return nil, fmt.Errorf("save run metrics for %d: %w", m.RunID, err)
		}
	}

	wellness, err := a.DB.ListWellnessSince(athleteID, now.UTC().AddDate(0, 0, -baselineDays).Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list wellness: %w", err)
	}
	baselines := ComputeBaselines(wellness)
	todayWellness, err := a.DB.GetWellness(athleteID, today)
	if err != nil {
		return nil, fmt.Errorf("get wellness: %w", err)
	}
	readiness := ScoreReadiness(todayWellness, baselines)
	recentDays := RecentDays(now, 14)

	st := &store.AthleteState{
		AthleteID: athleteID,
		StateDay:  today,

		CTL:             rep.Load.CTL,
		ATL:             rep.Load.ATL,
		TSB:             rep.Load.TSB,
		FormDescription: rep.FormDescription,

		VDOT:                rep.VDOT,
		VDOTLabel:           rep.VDOTLabel,
		VDOTConfidence:      rep.VDOTConfidence,
		RecentDecouplingPct: rep.RecentDecouplingPct,

		WeeklyKm:           rep.WeeklyKm,
		Weekly4wkAvgKm:     rep.Weekly4wkAvgKm,
		Weekly8wkAvgKm:     rep.Weekly8wkAvgKm,
		VolumeTrend:        rep.VolumeTrend,
		LoadIncrease7dPct:  rep.LoadIncrease7dPct,
		LoadIncrease28dPct: rep.LoadIncrease28dPct,
		EasyPct:            rep.EasyPct,
		ModeratePct:        rep.ModeratePct,
		HardPct:            rep.HardPct,
		LongestRunKm:       rep.LongestRunKm,
		QualitySessions14d: rep.QualitySessions14d,

		HRV:               wellnessField(todayWellness, func(w *store.WellnessRecord) *float64 { return w.HRV }),
		HRVBaseline:       baselines.HRV,
		HRVDeviationPct:   readiness.HRVDeviationPct,
		RestingHR:         wellnessField(todayWellness, func(w *store.WellnessRecord) *float64 { return w.RestingHR }),
		RHRBaseline:       baselines.RHR,
		RHRDeviation:      readiness.RHRDeviation,
		SleepScore:        wellnessField(todayWellness, func(w *store.WellnessRecord) *float64 { return w.SleepScore }),
		SleepBaseline:     baselines.Sleep,
		SleepDeviationPct: readiness.SleepDeviationPct,
		ReadinessScore:    readiness.Score,
		ReadinessStatus:   readiness.Status,
		HRVSuppressedDays: SuppressedDays(wellness, baselines, recentDays),
		PoorSleepDays:     PoorSleepDays(wellness, baselines, recentDays),

		UpdatedAt: now.UTC(),
	}

	a.applyThreshold(st, prior, rep, today)
	a.applyStreaks(st, rep, now)
	a.applyInjury(st, prior, today)
	if err := a.applyGoal(st, athleteID, now); err != nil {
		return nil, err
	}
	if err := a.applyTrends(st, rep, athleteID, now); err != nil {
		return nil, err
	}

	if err := a.DB.UpsertAthleteState(st); err != nil {
		return nil, fmt.Errorf("upsert state: %w", err)
	}

	a.Log.Debug().
		Int64("athlete", athleteID).
		Str("day", today).
		Float64("ctl", st.CTL).
		Float64("tsb", st.TSB).
		Int("readiness", st.ReadinessScore).
		Int("injury_risk", st.InjuryRiskScore).
		Msg("state rebuilt")

	return st, nil
}

func (a *Aggregator) saveMetrics(m analysis.RunMetrics) error {
	return a.DB.SaveRunMetrics(&store.Run{
		ID:              m.RunID,
		TSS:             &m.TSS,
		IntensityFactor: &m.IntensityFactor,
		NormalizedPace:  &m.NormalizedPace,
		DecouplingPct:   m.DecouplingPct,
		VDOT:            m.VDOT,
	})
}

func (a *Aggregator) applyThreshold(st *store.AthleteState, prior *store.AthleteState, rep *analysis.Report, today string) {
	st.ThresholdPace = rep.ThresholdPace
	st.ThresholdHR = rep.ThresholdHR
	st.ThresholdEstimated = !rep.ThresholdDetected && (prior == nil || prior.ThresholdEstimated)

	switch {
	case rep.ThresholdDetected && (prior == nil || math.Abs(rep.ThresholdPace-prior.ThresholdPace) > 1):
		st.ThresholdLastChanged = today
	case prior != nil && prior.ThresholdLastChanged != "":
		st.ThresholdLastChanged = prior.ThresholdLastChanged
	default:
		st.ThresholdLastChanged = today
	}

	zones := analysis.ZonesFromThreshold(st.ThresholdPace)
	st.EasyPace = zones.Easy
	st.MarathonPace = zones.Marathon
	st.IntervalPace = zones.Interval
}

func (a *Aggregator) applyStreaks(st *store.AthleteState, rep *analysis.Report, now time.Time) {
	runDays := rep.RunDays
	if runDays == nil {
		runDays = map[string]bool{}
	}
	hardDays := hardDaysFromSeries(rep.DailyTSS, now)
	st.ConsecutiveRunDays = ConsecutiveRunDays(runDays, now)
	st.DaysSinceRest = DaysSinceRest(runDays, now)
	st.DaysSinceHard = DaysSinceHard(hardDays, now)
	st.ConsistencyScore = ConsistencyScore(runDays, now)
}

// applyInjury keeps the score stable across same-day reruns: the decay
// and penalties are applied once per calendar day.
func (a *Aggregator) applyInjury(st *store.AthleteState, prior *store.AthleteState, today string) {
	if prior != nil && prior.StateDay == today {
		st.InjuryRiskScore = prior.InjuryRiskScore
		return
	}
	priorScore := 30
	if prior != nil {
		priorScore = prior.InjuryRiskScore
	}
	st.InjuryRiskScore = ScoreInjuryRisk(InjuryInputs{
		PriorScore:         priorScore,
		LoadIncrease7dPct:  st.LoadIncrease7dPct,
		ATL:                st.ATL,
		CTL:                st.CTL,
		TSB:                st.TSB,
		ConsecutiveRunDays: st.ConsecutiveRunDays,
	})
}

func (a *Aggregator) applyGoal(st *store.AthleteState, athleteID int64, now time.Time) error {
	goal, err := a.DB.GetGoal(athleteID)
	if errors.Is(err, store.ErrNoGoal) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get goal: %w", err)
	}
	st.RaceDistanceM = &goal.RaceDistanceM
	st.RaceDate = goal.RaceDate
	st.PlanPhase = goal.PlanPhase
	if goal.RaceDate != nil {
		days := goal.RaceDate.Sub(now).Hours() / 24
		if days >= 0 {
			w := int(math.Ceil(days / 7))
			st.WeeksToRace = &w
			// Race proximity outranks whatever the plan says.
			switch {
			case w <= 1:
				st.PlanPhase = "taper"
			case w <= 3:
				st.PlanPhase = "peak"
			}
			if goal.PlanWeeks > 0 {
				week := goal.PlanWeeks - w
				if week < 1 {
					week = 1
				}
				if week > goal.PlanWeeks {
					week = goal.PlanWeeks
				}
				st.PlanWeek = week
			}
		}
	}
	if st.VDOT != nil && goal.RaceDistanceM > 0 {
		pred := analysis.PredictTime(*st.VDOT, goal.RaceDistanceM)
		st.GoalRacePredictionS = &pred
	}
	return nil
}

func (a *Aggregator) applyTrends(st *store.AthleteState, rep *analysis.Report, athleteID int64, now time.Time) error {
	st.FitnessTrajectory = Trajectory(rep.DailyTSS)

	year, week := now.UTC().ISOWeek()
	last, err := a.DB.LatestAdaptationRecordBefore(athleteID, year, week)
	if err != nil {
		return fmt.Errorf("latest adaptation: %w", err)
	}
	if last != nil {
		st.AdaptationRate = AdaptationRate(&last.AdaptationRatio)
	} else {
		st.AdaptationRate = AdaptationRate(nil)
	}
	return nil
}

func hardDaysFromSeries(dailyTSS []float64, now time.Time) map[string]bool {
	m := make(map[string]bool)
	n := len(dailyTSS)
	for i, v := range dailyTSS {
		if v >= analysis.HardSessionTSS {
			day := now.UTC().AddDate(0, 0, -(n - 1 - i)).Format("2006-01-02")
			m[day] = true
		}
	}
	return m
}

func wellnessField(w *store.WellnessRecord, get func(*store.WellnessRecord) *float64) *float64 {
	if w == nil {
		return nil
	}
	return get(w)
}
