package analysis

// Training load as exponentially weighted moving averages of daily
// stress. CTL over 42 days is fitness, ATL over 7 days is fatigue, and
// the gap between them is form.

// EWMA computes an exponentially weighted moving average over a daily
// series with smoothing N days. The first value seeds the average
// directly; there is no warm-up discount.
func EWMA(series []float64, days int) float64 {
	if len(series) == 0 {
		return 0
	}
	alpha := 2.0 / (float64(days) + 1)
	avg := series[0]
	for _, v := range series[1:] {
		avg = alpha*v + (1-alpha)*avg
	}
	return avg
}

// EWMASeries returns the running average at every day, not just the
// final one. Used to read CTL at historical week boundaries.
func EWMASeries(series []float64, days int) []float64 {
	if len(series) == 0 {
		return nil
	}
	alpha := 2.0 / (float64(days) + 1)
	out := make([]float64, len(series))
	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = alpha*series[i] + (1-alpha)*out[i-1]
	}
	return out
}

// TrainingLoad holds the three load numbers for a single day.
type TrainingLoad struct {
	CTL float64
	ATL float64
	TSB float64
}

// ComputeLoad derives CTL, ATL and TSB from a zero-filled daily TSS
// series ordered oldest first.
func ComputeLoad(dailyTSS []float64) TrainingLoad {
	ctl := EWMA(dailyTSS, ChronicLoadDays)
	atl := EWMA(dailyTSS, AcuteLoadDays)
	return TrainingLoad{CTL: ctl, ATL: atl, TSB: ctl - atl}
}

// FormDescription turns a TSB value into a word a runner would use.
func FormDescription(tsb float64) string {
	switch {
	case tsb > 15:
		return "fresh"
	case tsb > 5:
		return "rested"
	case tsb > -10:
		return "neutral"
	case tsb > -25:
		return "fatigued"
	default:
		return "overreached"
	}
}
