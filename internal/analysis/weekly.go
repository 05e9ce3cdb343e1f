package analysis

import "time"

// Rolling weekly volume and intensity breakdowns. All windows are
// measured backwards from the supplied reference time so the math is
// testable with fixed clocks.

// RunSample is the slice of a run the weekly aggregates need.
type RunSample struct {
	Start           time.Time
	DistanceM       float64
	DurationS       int
	TSS             float64
	IntensityFactor float64
}

// WeeklyVolume returns current 7-day distance plus the 4- and 8-week
// weekly averages, all in kilometers.
func WeeklyVolume(runs []RunSample, now time.Time) (currentKm, avg4wkKm, avg8wkKm float64) {
	currentKm = distanceKmSince(runs, now, 7)
	avg4wkKm = distanceKmSince(runs, now, 28) / 4
	avg8wkKm = distanceKmSince(runs, now, 56) / 8
	return
}

func distanceKmSince(runs []RunSample, now time.Time, days int) float64 {
	cutoff := now.AddDate(0, 0, -days)
	var m float64
	for _, r := range runs {
		if !r.Start.Before(cutoff) {
			m += r.DistanceM
		}
	}
	return m / 1000
}

// VolumeTrend compares the current week to the 4-week average with a
// 5% dead band.
func VolumeTrend(currentKm, avg4wkKm float64) string {
	if avg4wkKm <= 0 {
		if currentKm > 0 {
			return "building"
		}
		return "stable"
	}
	ratio := currentKm / avg4wkKm
	switch {
	case ratio > 1.05:
		return "building"
	case ratio < 0.95:
		return "declining"
	default:
		return "stable"
	}
}

// IntensitySplit buckets the last 7 days of running time by intensity
// factor and returns the percentage of time in each bucket.
func IntensitySplit(runs []RunSample, now time.Time) (easyPct, moderatePct, hardPct float64) {
	cutoff := now.AddDate(0, 0, -7)
	var easy, moderate, hard float64
	for _, r := range runs {
		if r.Start.Before(cutoff) {
			continue
		}
		d := float64(r.DurationS)
		switch {
		case r.IntensityFactor < EasyIFMax:
			easy += d
		case r.IntensityFactor < ModerateIFMax:
			moderate += d
		default:
			hard += d
		}
	}
	total := easy + moderate + hard
	if total == 0 {
		return 0, 0, 0
	}
	return easy / total * 100, moderate / total * 100, hard / total * 100
}

// LoadIncrease compares total TSS in the most recent window against
// the window immediately before it, as a percentage change. A prior
// window of zero with any current load reads as a 100% jump.
func LoadIncrease(runs []RunSample, now time.Time, windowDays int) float64 {
	mid := now.AddDate(0, 0, -windowDays)
	start := now.AddDate(0, 0, -2*windowDays)
	var current, prior float64
	for _, r := range runs {
		switch {
		case !r.Start.Before(mid):
			current += r.TSS
		case !r.Start.Before(start):
			prior += r.TSS
		}
	}
	if prior <= 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - prior) / prior * 100
}

// LongestRunKm returns the longest single run inside the window.
func LongestRunKm(runs []RunSample, now time.Time, days int) float64 {
	cutoff := now.AddDate(0, 0, -days)
	var best float64
	for _, r := range runs {
		if !r.Start.Before(cutoff) && r.DistanceM > best {
			best = r.DistanceM
		}
	}
	return best / 1000
}

// QualitySessions counts runs in the window whose intensity factor
// puts them above the easy band.
func QualitySessions(runs []RunSample, now time.Time, days int) int {
	cutoff := now.AddDate(0, 0, -days)
	n := 0
	for _, r := range runs {
		if !r.Start.Before(cutoff) && r.IntensityFactor >= ModerateIFMax {
			n++
		}
	}
	return n
}

// DailyTSSSeries builds a zero-filled daily TSS series covering the
// window, ordered oldest first and ending on the reference day.
func DailyTSSSeries(runs []RunSample, now time.Time, days int) []float64 {
	series := make([]float64, days)
	startDay := truncateDay(now).AddDate(0, 0, -(days - 1))
	for _, r := range runs {
		idx := int(truncateDay(r.Start).Sub(startDay).Hours() / 24)
		if idx >= 0 && idx < days {
			series[idx] += r.TSS
		}
	}
	return series
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
