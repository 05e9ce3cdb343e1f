package state

import "time"

// Streak counters walked backwards from the reference day over the set
// of days the athlete ran.

// RecentDays returns day strings starting at the reference day going
// backwards, newest first.
func RecentDays(now time.Time, n int) []string {
	days := make([]string, n)
	for i := 0; i < n; i++ {
		days[i] = now.UTC().AddDate(0, 0, -i).Format("2006-01-02")
	}
	return days
}

// ConsecutiveRunDays counts the unbroken run streak ending today.
func ConsecutiveRunDays(runDays map[string]bool, now time.Time) int {
	n := 0
	for _, day := range RecentDays(now, 90) {
		if !runDays[day] {
			break
		}
		n++
	}
	return n
}

// DaysSinceRest counts days since the last day with no run. A rest day
// today returns 0; the scan caps at 30 days back.
func DaysSinceRest(runDays map[string]bool, now time.Time) int {
	for i, day := range RecentDays(now, 30) {
		if !runDays[day] {
			return i
		}
	}
	return 30
}

// DaysSinceHard counts days since the last hard session. Returns -1
// when no hard day exists in the window.
func DaysSinceHard(hardDays map[string]bool, now time.Time) int {
	for i, day := range RecentDays(now, 90) {
		if hardDays[day] {
			return i
		}
	}
	return -1
}

// ConsistencyScore is the fraction of the last 28 days with at least
// one run, scaled to 0-100. Four runs a week scores about 57.
func ConsistencyScore(runDays map[string]bool, now time.Time) float64 {
	n := 0
	for _, day := range RecentDays(now, 28) {
		if runDays[day] {
			n++
		}
	}
	return float64(n) / 28 * 100
}
