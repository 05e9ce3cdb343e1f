package state

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"runcoach/internal/store"
)

var aggNow = time.Date(2025, 6, 30, 8, 0, 0, 0, time.UTC)

func seedRun(t *testing.T, db *store.DB, id int64, daysAgo int, distanceM float64, durationS int, hr float64) {
	t.Helper()
	err := db.UpsertRun(&store.Run{
		ID:        id,
		AthleteID: 1,
		StartTime: aggNow.AddDate(0, 0, -daysAgo),
		DistanceM: distanceM,
		DurationS: durationS,
		AvgHR:     &hr,
	})
	require.NoError(t, err)
}

func newAggregator(db *store.DB) *Aggregator {
	return &Aggregator{DB: db, Log: zerolog.Nop(), DefaultThresholdPace: 300}
}

func TestBuildState(t *testing.T) {
	db := store.OpenTest(t)
	agg := newAggregator(db)

	seedRun(t, db, 1, 1, 10000, 3300, 150)
	seedRun(t, db, 2, 3, 8000, 2700, 145)
	// Outside the rolling 7-day window, so it counts toward CTL and
	// the multi-week averages but not WeeklyKm.
	seedRun(t, db, 3, 8, 12000, 4000, 152)

	raceDate := aggNow.AddDate(0, 0, 70)
	require.NoError(t, db.UpsertGoal(&store.Goal{
		AthleteID:     1,
		RaceDistanceM: 42195,
		RaceDate:      &raceDate,
		PlanPhase:     "build",
		PlanWeeks:     16,
	}))

	hrv, rhr, sleep := 62.0, 48.0, 82.0
	require.NoError(t, db.UpsertWellness(&store.WellnessRecord{
		AthleteID: 1, Day: "2025-06-30", HRV: &hrv, RestingHR: &rhr, SleepScore: &sleep,
	}))

	st, err := agg.BuildState(1, aggNow)
	require.NoError(t, err)

	require.Equal(t, "2025-06-30", st.StateDay)
	require.Greater(t, st.CTL, 0.0)
	require.InDelta(t, 18, st.WeeklyKm, 0.001)
	require.Equal(t, 300.0, st.ThresholdPace, "3 HR pairs cannot move the threshold")
	require.True(t, st.ThresholdEstimated)
	require.InDelta(t, st.ThresholdPace*1.30, st.EasyPace, 0.001)
	require.NotNil(t, st.WeeksToRace)
	require.Equal(t, 10, *st.WeeksToRace)
	require.Equal(t, 6, st.PlanWeek)
	require.Equal(t, "build", st.PlanPhase)
	require.NotNil(t, st.VDOT)
	require.NotNil(t, st.GoalRacePredictionS)
	require.Equal(t, "unknown", st.AdaptationRate)

	// Single wellness record: today is also the baseline, so readiness
	// sits at the at-baseline score.
	require.Equal(t, 90, st.ReadinessScore)
	require.Equal(t, "optimal", st.ReadinessStatus)

	// Run metrics were persisted write-once.
	run, err := db.GetRun(1)
	require.NoError(t, err)
	require.True(t, run.MetricsComputed)
	require.NotNil(t, run.TSS)
}

func TestBuildStatePlanPhaseNearRace(t *testing.T) {
	cases := []struct {
		name      string
		daysOut   int
		wantPhase string
	}{
		{"race in six days overrides to taper", 6, "taper"},
		{"race in two weeks overrides to peak", 14, "peak"},
		{"race far out keeps the plan's phase", 42, "build"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := store.OpenTest(t)
			agg := newAggregator(db)
			seedRun(t, db, 1, 1, 10000, 3300, 150)

			raceDate := aggNow.AddDate(0, 0, tc.daysOut)
			require.NoError(t, db.UpsertGoal(&store.Goal{
				AthleteID:     1,
				RaceDistanceM: 21097,
				RaceDate:      &raceDate,
				PlanPhase:     "build",
				PlanWeeks:     12,
			}))

			st, err := agg.BuildState(1, aggNow)
			require.NoError(t, err)
			require.Equal(t, tc.wantPhase, st.PlanPhase)
		})
	}
}

func TestBuildStateIdempotentSameDay(t *testing.T) {
	db := store.OpenTest(t)
	agg := newAggregator(db)

	// Big spike so injury penalties fire on the first pass.
	seedRun(t, db, 1, 1, 20000, 7000, 150)
	seedRun(t, db, 2, 2, 18000, 6400, 150)

	first, err := agg.BuildState(1, aggNow)
	require.NoError(t, err)
	second, err := agg.BuildState(1, aggNow)
	require.NoError(t, err)

	require.Equal(t, first.InjuryRiskScore, second.InjuryRiskScore,
		"same-day recomputation must not compound injury penalties")
	require.Equal(t, first.CTL, second.CTL)
	require.Equal(t, first.ReadinessScore, second.ReadinessScore)
}

func TestBuildStateInjuryDecaysNextDay(t *testing.T) {
	db := store.OpenTest(t)
	agg := newAggregator(db)

	seedRun(t, db, 1, 2, 20000, 7000, 150)
	seedRun(t, db, 2, 3, 18000, 6400, 150)

	first, err := agg.BuildState(1, aggNow)
	require.NoError(t, err)

	// Quiet rest week then recompute: the score should have decayed.
	later, err := agg.BuildState(1, aggNow.AddDate(0, 0, 10))
	require.NoError(t, err)
	require.Less(t, later.InjuryRiskScore, first.InjuryRiskScore)
}

func TestBuildStateNoRuns(t *testing.T) {
	db := store.OpenTest(t)
	agg := newAggregator(db)

	st, err := agg.BuildState(1, aggNow)
	require.NoError(t, err)
	require.Zero(t, st.CTL)
	require.Equal(t, 300.0, st.ThresholdPace)
	require.Equal(t, 75, st.ReadinessScore)
	require.Equal(t, "plateau", st.FitnessTrajectory)

	// The snapshot still lands in the store.
	loaded, err := db.GetAthleteState(1)
	require.NoError(t, err)
	require.Equal(t, st.StateDay, loaded.StateDay)
}
