package adaptation

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"runcoach/internal/llm"
	"runcoach/internal/store"
)

// Tuesday following the reviewed week of 2025-06-23 .. 2025-06-29.
var reviewNow = time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)

func newLoop(t *testing.T) (*Loop, *llm.StaticGenerator) {
	gen := &llm.StaticGenerator{Text: "model explanation"}
	l := &Loop{
		DB:                   store.OpenTest(t),
		Gen:                  gen,
		Log:                  zerolog.Nop(),
		DefaultThresholdPace: 300,
		ExplainTimeout:       time.Second,
	}
	return l, gen
}

func seedWeekRun(t *testing.T, db *store.DB, id int64, day time.Time, distanceM float64, durationS int) {
	t.Helper()
	hr := 150.0
	require.NoError(t, db.UpsertRun(&store.Run{
		ID:        id,
		AthleteID: 1,
		StartTime: day,
		DistanceM: distanceM,
		DurationS: durationS,
		AvgHR:     &hr,
	}))
}

func seedSession(t *testing.T, db *store.DB, day, sessionType string, km float64, status string) int64 {
	t.Helper()
	id, err := db.InsertSession(&store.Session{
		AthleteID:        1,
		Date:             day,
		Type:             sessionType,
		TargetDistanceKm: km,
		Status:           status,
	})
	require.NoError(t, err)
	return id
}

func TestReviewWeek(t *testing.T) {
	l, gen := newLoop(t)

	// Build base fitness over prior weeks, then a solid reviewed week.
	for i := int64(0); i < 6; i++ {
		seedWeekRun(t, l.DB, 10+i, time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC).AddDate(0, 0, int(i)*3), 10000, 3300)
	}
	seedWeekRun(t, l.DB, 1, time.Date(2025, 6, 24, 8, 0, 0, 0, time.UTC), 10000, 3300)
	seedWeekRun(t, l.DB, 2, time.Date(2025, 6, 26, 8, 0, 0, 0, time.UTC), 8000, 2700)
	seedWeekRun(t, l.DB, 3, time.Date(2025, 6, 28, 8, 0, 0, 0, time.UTC), 16000, 5400)

	seedSession(t, l.DB, "2025-06-24", "easy", 10, store.SessionCompleted)
	seedSession(t, l.DB, "2025-06-26", "easy", 8, store.SessionCompleted)
	seedSession(t, l.DB, "2025-06-28", "long_run", 16, store.SessionCompleted)
	seedSession(t, l.DB, "2025-06-27", "rest", 0, store.SessionPlanned)

	rec, err := l.ReviewWeek(context.Background(), 1, reviewNow)
	require.NoError(t, err)

	require.Equal(t, 2025, rec.ISOYear)
	require.Equal(t, 26, rec.ISOWeek)
	require.InDelta(t, 34, rec.ActualKm, 0.001)
	require.InDelta(t, 34, rec.PlannedKm, 0.001)
	require.Equal(t, 3, rec.PlannedSessions, "rest days are not sessions")
	require.Equal(t, 3, rec.CompletedSessions)
	require.InDelta(t, 1.0, rec.CompletionRate, 0.001)
	require.Greater(t, rec.ActualCTLDelta, 0.0)
	require.Greater(t, rec.WeekEndCTL, 0.0)
	require.NotEmpty(t, rec.Classification)
	require.Equal(t, "model explanation", rec.Explanation)
	require.NotEmpty(t, gen.Requests)

	// Persisted under the athlete-week key.
	loaded, err := l.DB.GetAdaptationRecord(1, 2025, 26)
	require.NoError(t, err)
	require.Equal(t, rec.Classification, loaded.Classification)
}

func TestReviewWeekUpsertReplaces(t *testing.T) {
	l, _ := newLoop(t)
	seedWeekRun(t, l.DB, 1, time.Date(2025, 6, 24, 8, 0, 0, 0, time.UTC), 10000, 3300)

	_, err := l.ReviewWeek(context.Background(), 1, reviewNow)
	require.NoError(t, err)

	// A late-synced run changes the actuals; the rerun must replace
	// the row, not duplicate it.
	seedWeekRun(t, l.DB, 2, time.Date(2025, 6, 28, 8, 0, 0, 0, time.UTC), 12000, 4000)
	second, err := l.ReviewWeek(context.Background(), 1, reviewNow.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.InDelta(t, 22, second.ActualKm, 0.001)

	loaded, err := l.DB.GetAdaptationRecord(1, 2025, 26)
	require.NoError(t, err)
	require.InDelta(t, 22, loaded.ActualKm, 0.001)
}

func TestReviewWeekNoPlannedSessions(t *testing.T) {
	l, _ := newLoop(t)
	seedWeekRun(t, l.DB, 1, time.Date(2025, 6, 24, 8, 0, 0, 0, time.UTC), 10000, 3300)

	rec, err := l.ReviewWeek(context.Background(), 1, reviewNow)
	require.NoError(t, err)
	require.Zero(t, rec.PlannedSessions)
	require.InDelta(t, 0.0, rec.CompletionRate, 0.001,
		"an unplanned week completes nothing")
}

func TestReviewWeekExplanationFallsBack(t *testing.T) {
	l, gen := newLoop(t)
	gen.Err = context.DeadlineExceeded
	seedWeekRun(t, l.DB, 1, time.Date(2025, 6, 24, 8, 0, 0, 0, time.UTC), 10000, 3300)

	rec, err := l.ReviewWeek(context.Background(), 1, reviewNow)
	require.NoError(t, err, "an LLM failure must not fail the review")
	require.Contains(t, rec.Explanation, "Week 26")
}

func TestReviewWeekNegativeConvertsQualitySessions(t *testing.T) {
	l, _ := newLoop(t)

	// Heavy training through mid June then nothing in the reviewed
	// week: CTL falls across the week.
	for i := int64(0); i < 10; i++ {
		seedWeekRun(t, l.DB, 10+i, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC).AddDate(0, 0, int(i)*2), 14000, 4600)
	}
	// HRV crashed in the reviewed week.
	for d := 16; d <= 29; d++ {
		hrv := 65.0
		if d >= 23 {
			hrv = 50.0
		}
		require.NoError(t, l.DB.UpsertWellness(&store.WellnessRecord{
			AthleteID: 1,
			Day:       time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			HRV:       &hrv,
		}))
	}

	// Upcoming plan holds a quality session that must convert.
	tempoID := seedSession(t, l.DB, "2025-07-03", "tempo", 10, store.SessionPlanned)
	easyID := seedSession(t, l.DB, "2025-07-04", "easy", 10, store.SessionPlanned)

	rec, err := l.ReviewWeek(context.Background(), 1, reviewNow)
	require.NoError(t, err)
	require.Equal(t, Negative, rec.Classification)
	require.Equal(t, ActionReduce, rec.Action)

	sessions, err := l.DB.ListSessionsBetween(1, "2025-07-03", "2025-07-04")
	require.NoError(t, err)
	byID := map[int64]store.Session{}
	for _, s := range sessions {
		byID[s.ID] = s
	}
	require.Equal(t, "easy", byID[tempoID].Type)
	require.NotNil(t, byID[tempoID].AdjustmentNote)
	require.Equal(t, "easy", byID[easyID].Type)
	require.InDelta(t, 7.5, byID[easyID].TargetDistanceKm, 0.001) // -25%
}
