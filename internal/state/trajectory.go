package state

// Fitness trajectory from the tail of the daily TSS series: the most
// recent 7 days against the 7 before them.

const trajectoryMinDays = 14

// Trajectory classifies the short-term fitness direction. With fewer
// than two full weeks of history everything reads as a plateau.
func Trajectory(dailyTSS []float64) string {
	if len(dailyTSS) < trajectoryMinDays {
		return "plateau"
	}
	n := len(dailyTSS)
	recent := weekMean(dailyTSS[n-7 : n])
	prior := weekMean(dailyTSS[n-14 : n-7])
	if prior <= 0 {
		if recent > 0 {
			return "rapid_improvement"
		}
		return "plateau"
	}
	change := (recent - prior) / prior * 100
	switch {
	case change > 8:
		return "rapid_improvement"
	case change > 3:
		return "steady_improvement"
	case change >= -3:
		return "plateau"
	case change < -8:
		return "significant_decline"
	default:
		return "slight_decline"
	}
}

func weekMean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// AdaptationRate reads how quickly fitness responds to load from the
// last weekly adaptation ratio. Unknown until a weekly review exists.
func AdaptationRate(lastRatio *float64) string {
	if lastRatio == nil {
		return "unknown"
	}
	switch {
	case *lastRatio > 1.15:
		return "fast"
	case *lastRatio >= 0.85:
		return "normal"
	default:
		return "slow"
	}
}
