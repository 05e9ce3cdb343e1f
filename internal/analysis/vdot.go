package analysis

import "math"

// VDOT estimation via the Daniels-Gilbert running economy and
// fractional-utilization regressions. Input is a steady run; the model
// treats it as a maximal-effort data point, so the headline estimate
// weights many runs rather than trusting any single one.

// EstimateVDOT returns the VDOT implied by covering distanceM in
// durationS, clamped to a plausible range, or nil when the run is too
// short to anchor the utilization curve.
func EstimateVDOT(distanceM float64, durationS int) *float64 {
	if durationS < MinVDOTDurationS || distanceM <= 0 {
		return nil
	}
	minutes := float64(durationS) / 60
	velocity := distanceM / minutes // meters per minute

	vo2 := -4.60 + 0.182258*velocity + 0.000104*velocity*velocity
	pct := 0.8 + 0.1894393*math.Exp(-0.012778*minutes) + 0.2989558*math.Exp(-0.1932605*minutes)

	v := vo2 / pct
	if v < MinVDOT {
		v = MinVDOT
	}
	if v > MaxVDOT {
		v = MaxVDOT
	}
	return &v
}

// HeadlineVDOT combines per-run estimates with linear recency
// weighting: the newest estimate gets weight n, the oldest weight 1.
// Estimates must be ordered oldest first. Confidence reflects sample
// size only.
func HeadlineVDOT(estimates []float64) (vdot float64, confidence string) {
	n := len(estimates)
	if n == 0 {
		return 0, "low"
	}
	var sum, weight float64
	for i, v := range estimates {
		w := float64(i + 1)
		sum += v * w
		weight += w
	}
	vdot = sum / weight
	switch {
	case n >= 10:
		confidence = "high"
	case n >= 5:
		confidence = "medium"
	default:
		confidence = "low"
	}
	return vdot, confidence
}

// PredictTime inverts the VDOT model: the duration in seconds at which
// racing distanceM yields the given VDOT. Solved by bisection; the
// implied time is monotonic in effort.
func PredictTime(vdot, distanceM float64) int {
	if vdot <= 0 || distanceM <= 0 {
		return 0
	}
	lo := distanceM / 12.0 // faster than world record pace
	hi := distanceM / 1.0  // slower than walking
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		est := rawVDOT(distanceM, mid)
		if est > vdot {
			lo = mid // too fast for this fitness, slow down
		} else {
			hi = mid
		}
	}
	return int(math.Round((lo + hi) / 2))
}

// rawVDOT is EstimateVDOT without the duration floor or clamping, for
// use inside the bisection.
func rawVDOT(distanceM, durationS float64) float64 {
	minutes := durationS / 60
	velocity := distanceM / minutes
	vo2 := -4.60 + 0.182258*velocity + 0.000104*velocity*velocity
	pct := 0.8 + 0.1894393*math.Exp(-0.012778*minutes) + 0.2989558*math.Exp(-0.1932605*minutes)
	return vo2 / pct
}

// VDOTLabel maps a VDOT to a rough ability bracket.
func VDOTLabel(vdot float64) string {
	switch {
	case vdot >= 70:
		return "elite"
	case vdot >= 60:
		return "competitive"
	case vdot >= 50:
		return "advanced"
	case vdot >= 40:
		return "intermediate"
	case vdot >= 30:
		return "novice"
	default:
		return "beginner"
	}
}
