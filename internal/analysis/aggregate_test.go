package analysis

import (
	"testing"

	"runcoach/internal/store"
)

func testRun(id int64, daysAgo int, distanceM float64, durationS int, hr *float64) store.Run {
	return store.Run{
		ID:        id,
		AthleteID: 1,
		StartTime: weeklyNow.AddDate(0, 0, -daysAgo),
		DistanceM: distanceM,
		DurationS: durationS,
		AvgHR:     hr,
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	rep := Analyze(nil, 280, weeklyNow)
	if !rep.Empty {
		t.Error("expected empty report")
	}
	if rep.ThresholdPace != 280 {
		t.Errorf("empty report should keep prior threshold, got %v", rep.ThresholdPace)
	}
}

func TestAnalyzeIgnoresNonQualifyingRuns(t *testing.T) {
	runs := []store.Run{
		testRun(1, 1, 400, 200, nil), // below both floors
	}
	rep := Analyze(runs, 280, weeklyNow)
	if !rep.Empty {
		t.Error("non-qualifying runs alone should yield an empty report")
	}
}

func TestAnalyze(t *testing.T) {
	runs := []store.Run{
		testRun(1, 1, 10000, 3300, floatPtr(150)),
		testRun(2, 3, 8000, 2700, floatPtr(145)),
		testRun(3, 6, 12000, 4000, floatPtr(152)),
		testRun(4, 10, 10000, 3300, floatPtr(149)),
		testRun(5, 14, 6000, 1900, floatPtr(158)),
	}
	rep := Analyze(runs, 300, weeklyNow)
	if rep.Empty {
		t.Fatal("expected a populated report")
	}
	if len(rep.NewMetrics) != 5 {
		t.Errorf("NewMetrics = %d runs, want 5", len(rep.NewMetrics))
	}
	if !almostEqual(rep.WeeklyKm, 30, 0.001) {
		t.Errorf("WeeklyKm = %v, want 30", rep.WeeklyKm)
	}
	if rep.Load.CTL <= 0 || rep.Load.ATL <= 0 {
		t.Errorf("expected positive load, got CTL=%v ATL=%v", rep.Load.CTL, rep.Load.ATL)
	}
	if rep.VDOT == nil {
		t.Error("expected a headline VDOT")
	}
	if rep.VDOTConfidence != "medium" {
		t.Errorf("confidence = %v, want medium with 5 estimates", rep.VDOTConfidence)
	}
	if rep.RecentDecouplingPct == nil {
		t.Error("expected decoupling from runs over 20min with HR")
	}
	if len(rep.DailyTSS) != WindowDays {
		t.Errorf("DailyTSS len = %d, want %d", len(rep.DailyTSS), WindowDays)
	}
	if !rep.RunDays[weeklyNow.AddDate(0, 0, -1).Format("2006-01-02")] {
		t.Error("expected run day recorded for yesterday")
	}
	if !rep.ThresholdDetected {
		t.Error("5 valid pace/HR pairs should produce a detection")
	}
}

func TestAnalyzeKeepsPriorThresholdBelowMinPairs(t *testing.T) {
	runs := []store.Run{
		testRun(1, 1, 10000, 3300, floatPtr(150)),
		testRun(2, 3, 8000, 2700, floatPtr(145)),
	}
	rep := Analyze(runs, 290, weeklyNow)
	if rep.ThresholdDetected {
		t.Error("2 pairs should not detect a threshold")
	}
	if rep.ThresholdPace != 290 {
		t.Errorf("ThresholdPace = %v, want prior 290", rep.ThresholdPace)
	}
}

func TestAnalyzeTrustsPersistedMetrics(t *testing.T) {
	r := testRun(1, 1, 10000, 3300, floatPtr(150))
	r.MetricsComputed = true
	r.TSS = floatPtr(55)
	r.IntensityFactor = floatPtr(0.8)
	r.NormalizedPace = floatPtr(323.4)
	rep := Analyze([]store.Run{r}, 300, weeklyNow)
	if len(rep.NewMetrics) != 0 {
		t.Errorf("persisted metrics must not be recomputed, got %d new", len(rep.NewMetrics))
	}
	var total float64
	for _, v := range rep.DailyTSS {
		total += v
	}
	if !almostEqual(total, 55, 0.001) {
		t.Errorf("aggregates should use the stored TSS, total = %v", total)
	}
}
