package state

import "runcoach/internal/store"

// Readiness scoring from wellness telemetry. Deviations are measured
// against each athlete's own rolling baselines, never population norms.

const baselineDays = 60

// Baselines holds the rolling means the deviations are scored against.
type Baselines struct {
	HRV   *float64
	RHR   *float64
	Sleep *float64
}

// ComputeBaselines averages the available wellness fields over the
// supplied records. A field with no samples stays nil.
func ComputeBaselines(records []store.WellnessRecord) Baselines {
	var b Baselines
	var hrvSum, rhrSum, sleepSum float64
	var hrvN, rhrN, sleepN int
	for _, r := range records {
		if r.HRV != nil {
			hrvSum += *r.HRV
			hrvN++
		}
		if r.RestingHR != nil {
			rhrSum += *r.RestingHR
			rhrN++
		}
		if r.SleepScore != nil {
			sleepSum += *r.SleepScore
			sleepN++
		}
	}
	if hrvN > 0 {
		v := hrvSum / float64(hrvN)
		b.HRV = &v
	}
	if rhrN > 0 {
		v := rhrSum / float64(rhrN)
		b.RHR = &v
	}
	if sleepN > 0 {
		v := sleepSum / float64(sleepN)
		b.Sleep = &v
	}
	return b
}

// Readiness is the scored recovery picture for one day.
type Readiness struct {
	Score             int
	Status            string
	HRVDeviationPct   float64
	RHRDeviation      float64
	SleepDeviationPct float64
}

// ScoreReadiness starts from a neutral 75 and moves with each signal's
// deviation from baseline. Missing signals contribute nothing, so an
// athlete with no wearable sits at 75/optimal forever.
func ScoreReadiness(today *store.WellnessRecord, b Baselines) Readiness {
	r := Readiness{Score: 75}
	if today != nil {
		if today.HRV != nil && b.HRV != nil && *b.HRV > 0 {
			r.HRVDeviationPct = (*today.HRV - *b.HRV) / *b.HRV * 100
			r.Score += hrvAdjustment(r.HRVDeviationPct)
		}
		if today.RestingHR != nil && b.RHR != nil {
			r.RHRDeviation = *today.RestingHR - *b.RHR
			r.Score += rhrAdjustment(r.RHRDeviation)
		}
		if today.SleepScore != nil && b.Sleep != nil && *b.Sleep > 0 {
			r.SleepDeviationPct = (*today.SleepScore - *b.Sleep) / *b.Sleep * 100
			r.Score += sleepAdjustment(r.SleepDeviationPct)
		}
	}
	if r.Score > 100 {
		r.Score = 100
	}
	if r.Score < 0 {
		r.Score = 0
	}
	r.Status = readinessStatus(r.Score)
	return r
}

func hrvAdjustment(devPct float64) int {
	switch {
	case devPct >= 10:
		return 15
	case devPct >= 0:
		return 5
	case devPct >= -10:
		return -5
	case devPct >= -20:
		return -15
	default:
		return -25
	}
}

func rhrAdjustment(dev float64) int {
	switch {
	case dev <= 0:
		return 5
	case dev <= 3:
		return 0
	case dev <= 7:
		return -10
	default:
		return -20
	}
}

func sleepAdjustment(devPct float64) int {
	switch {
	case devPct >= 0:
		return 5
	case devPct >= -10:
		return 0
	case devPct >= -20:
		return -10
	default:
		return -15
	}
}

func readinessStatus(score int) string {
	switch {
	case score >= 75:
		return "optimal"
	case score >= 55:
		return "suboptimal"
	case score >= 35:
		return "poor"
	default:
		return "very_poor"
	}
}

// SuppressedDays counts consecutive days, ending today, where HRV sat
// below 90% of baseline. Days without a sample break the streak.
func SuppressedDays(records []store.WellnessRecord, b Baselines, days []string) int {
	if b.HRV == nil || *b.HRV <= 0 {
		return 0
	}
	byDay := indexByDay(records)
	n := 0
	for _, day := range days {
		r, ok := byDay[day]
		if !ok || r.HRV == nil || *r.HRV >= *b.HRV*0.9 {
			break
		}
		n++
	}
	return n
}

// PoorSleepDays counts consecutive days, ending today, with sleep
// score below 80% of baseline.
func PoorSleepDays(records []store.WellnessRecord, b Baselines, days []string) int {
	if b.Sleep == nil || *b.Sleep <= 0 {
		return 0
	}
	byDay := indexByDay(records)
	n := 0
	for _, day := range days {
		r, ok := byDay[day]
		if !ok || r.SleepScore == nil || *r.SleepScore >= *b.Sleep*0.8 {
			break
		}
		n++
	}
	return n
}

func indexByDay(records []store.WellnessRecord) map[string]store.WellnessRecord {
	m := make(map[string]store.WellnessRecord, len(records))
	for _, r := range records {
		m[r.Day] = r
	}
	return m
}
