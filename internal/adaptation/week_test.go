package adaptation

import (
	"testing"
	"time"
)

func TestPriorWeek(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart string
		wantEnd   string
		wantWeek  int
	}{
		{
			"midweek wednesday",
			time.Date(2025, 7, 2, 15, 0, 0, 0, time.UTC),
			"2025-06-23", "2025-06-30", 26,
		},
		{
			"monday reviews the week that just closed",
			time.Date(2025, 6, 30, 0, 30, 0, 0, time.UTC),
			"2025-06-23", "2025-06-30", 26,
		},
		{
			"sunday still reviews the previous week",
			time.Date(2025, 6, 29, 23, 0, 0, 0, time.UTC),
			"2025-06-16", "2025-06-23", 25,
		},
		{
			"year boundary",
			time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
			"2025-12-22", "2025-12-29", 52,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wk, start, end := PriorWeek(tt.now)
			if got := start.Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format("2006-01-02"); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
			if wk.Week != tt.wantWeek {
				t.Errorf("week = %d, want %d", wk.Week, tt.wantWeek)
			}
		})
	}
}

func TestCurrentWeekStart(t *testing.T) {
	sunday := time.Date(2025, 7, 6, 10, 0, 0, 0, time.UTC)
	if got := CurrentWeekStart(sunday).Format("2006-01-02"); got != "2025-06-30" {
		t.Errorf("sunday week start = %s, want 2025-06-30", got)
	}
	monday := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	if got := CurrentWeekStart(monday).Format("2006-01-02"); got != "2025-06-30" {
		t.Errorf("monday week start = %s, want 2025-06-30", got)
	}
}
