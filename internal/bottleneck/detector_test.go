package bottleneck

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"runcoach/internal/store"
)

var detectNow = time.Date(2025, 6, 30, 8, 0, 0, 0, time.UTC)

func newDetector(t *testing.T) *Detector {
	return &Detector{DB: store.OpenTest(t), Log: zerolog.Nop()}
}

func balancedState() *store.AthleteState {
	return &store.AthleteState{
		AthleteID:            1,
		StateDay:             "2025-06-30",
		FitnessTrajectory:    "steady_improvement",
		ReadinessStatus:      "optimal",
		ThresholdLastChanged: "2025-06-15",
		QualitySessions14d:   2,
	}
}

func TestDetectBalanced(t *testing.T) {
	d := newDetector(t)
	res, err := d.Detect(balancedState(), detectNow)
	require.NoError(t, err)
	require.Equal(t, LimiterBalanced, res.Primary.Type)
	require.Empty(t, res.Secondary)
	require.Equal(t, "low", res.Confidence)
	require.True(t, res.LimiterChanged, "first detection always counts as a change")
}

func TestDetectOvertrainingOverridesScore(t *testing.T) {
	d := newDetector(t)
	st := balancedState()
	// Aerobic base maxes out at 100 but the critical overtraining
	// signal must still win.
	st.RecentDecouplingPct = floatPtr(30)
	st.TSB = -30
	st.HRVSuppressedDays = 4
	st.LoadIncrease7dPct = 20
	st.ConsecutiveRunDays = 6

	res, err := d.Detect(st, detectNow)
	require.NoError(t, err)
	require.Equal(t, LimiterOvertraining, res.Primary.Type)
	require.Equal(t, StrengthCritical, res.Primary.Strength)
}

func TestDetectStrongOvertrainingDoesNotOverride(t *testing.T) {
	d := newDetector(t)
	st := balancedState()
	st.RecentDecouplingPct = floatPtr(30) // aerobic at 100
	st.TSB = -30
	st.HRVSuppressedDays = 4 // two flags: strong, not critical

	res, err := d.Detect(st, detectNow)
	require.NoError(t, err)
	require.Equal(t, LimiterAerobicBase, res.Primary.Type, "only critical safety signals override the score order")
}

func TestDetectPreRacePeakOverrides(t *testing.T) {
	d := newDetector(t)
	st := balancedState()
	weeks := 2
	st.WeeksToRace = &weeks
	st.RecentDecouplingPct = floatPtr(14)
	race := 42195.0
	st.RaceDistanceM = &race
	st.LongestRunKm = 15

	res, err := d.Detect(st, detectNow)
	require.NoError(t, err)
	require.Equal(t, LimiterPreRacePeak, res.Primary.Type)
}

func TestDetectSecondarySignals(t *testing.T) {
	d := newDetector(t)
	st := balancedState()
	st.RecentDecouplingPct = floatPtr(14) // 83
	race := 42195.0
	st.RaceDistanceM = &race
	st.LongestRunKm = 15 // 75
	st.InjuryRiskScore = 70

	res, err := d.Detect(st, detectNow)
	require.NoError(t, err)
	require.Equal(t, LimiterAerobicBase, res.Primary.Type)
	require.Len(t, res.Secondary, 2)
	require.NotEqual(t, res.Secondary[0].Type, res.Primary.Type)
}

func TestDetectLimiterChangeTracking(t *testing.T) {
	d := newDetector(t)

	st := balancedState()
	st.RecentDecouplingPct = floatPtr(14)
	first, err := d.Detect(st, detectNow)
	require.NoError(t, err)
	require.True(t, first.LimiterChanged)

	second, err := d.Detect(st, detectNow.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.False(t, second.LimiterChanged, "same limiter two days running is not a change")

	st.RecentDecouplingPct = nil
	st.InjuryRiskScore = 85
	third, err := d.Detect(st, detectNow.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.True(t, third.LimiterChanged)
	require.Equal(t, LimiterInjuryRisk, third.Primary.Type)

	history, err := d.DB.ListAnalyses(1, 10)
	require.NoError(t, err)
	require.Len(t, history, 3, "every detection is appended, never replaced")
}

func TestDetectConfidence(t *testing.T) {
	d := newDetector(t)

	st := balancedState()
	st.RecentDecouplingPct = floatPtr(14) // single clear signal at 83
	res, err := d.Detect(st, detectNow)
	require.NoError(t, err)
	require.Equal(t, "high", res.Confidence)

	st = balancedState()
	st.QualitySessions14d = 0
	weeks := 12
	st.WeeksToRace = &weeks // threshold at 50
	res, err = d.Detect(st, detectNow)
	require.NoError(t, err)
	require.Equal(t, "medium", res.Confidence)
}

func TestThresholdStagnantWeeks(t *testing.T) {
	st := &store.AthleteState{ThresholdLastChanged: "2025-05-01"}
	got := thresholdStagnantWeeks(st, detectNow)
	if got != 8 { // 60 days
		t.Errorf("stagnant weeks = %d, want 8", got)
	}
	if thresholdStagnantWeeks(&store.AthleteState{}, detectNow) != 0 {
		t.Error("missing date should read as zero weeks")
	}
}
