package analysis

// Per-run derived metrics. Pace is expressed in seconds per kilometer
// throughout the engine; lower pace means faster running.

// Qualifies reports whether a run is long enough to feed the analysis.
// Treadmill warmups and watch fumbles fall below these floors.
func Qualifies(distanceM float64, durationS int) bool {
	return distanceM >= MinRunDistanceM && durationS >= MinRunDurationS
}

// Pace returns seconds per kilometer.
func Pace(distanceM float64, durationS int) float64 {
	if distanceM <= 0 {
		return 0
	}
	return float64(durationS) / distanceM * 1000
}

// NormalizedPace applies a flat 2% grade adjustment. Without per-second
// elevation streams a surge-weighted pace is not computable, so a fixed
// discount stands in for typical rolling terrain.
func NormalizedPace(pace float64) float64 {
	return pace * 0.98
}

// IntensityFactor compares the run's normalized pace to threshold pace.
// Faster than threshold yields IF > 1.0.
func IntensityFactor(normalizedPace, thresholdPace float64) float64 {
	if normalizedPace <= 0 || thresholdPace <= 0 {
		return 0
	}
	return thresholdPace / normalizedPace
}

// TSS is the pace-based training stress score: one hour at threshold
// scores 100.
func TSS(durationS int, intensityFactor float64) float64 {
	hours := float64(durationS) / 3600
	return hours * intensityFactor * intensityFactor * 100
}

// Decoupling estimates aerobic decoupling as a percentage. The first
// half efficiency (speed over heart rate) is taken at the run averages;
// the second half is modeled with pace fading 2% and heart rate
// drifting up 2% for every hour of total duration. Returns nil when
// the run is too short or carries no heart-rate sample.
func Decoupling(distanceM float64, durationS int, avgHR *float64) *float64 {
	if durationS < MinDecouplingDurationS || avgHR == nil || *avgHR <= 0 || distanceM <= 0 {
		return nil
	}
	hours := float64(durationS) / 3600
	paceFade := 1 + 0.02*hours
	hrDrift := 1 + 0.02*hours

	speed := distanceM / float64(durationS)
	effFirst := speed / *avgHR
	effSecond := (speed / paceFade) / (*avgHR * hrDrift)

	d := (effFirst/effSecond - 1) * 100
	return &d
}

// RunMetrics bundles everything derived from a single run.
type RunMetrics struct {
	RunID           int64
	Pace            float64
	NormalizedPace  float64
	IntensityFactor float64
	TSS             float64
	DecouplingPct   *float64
	VDOT            *float64
}

// ComputeRunMetrics derives the full metric set for one qualifying run
// against the athlete's current threshold pace.
func ComputeRunMetrics(id int64, distanceM float64, durationS int, avgHR *float64, thresholdPace float64) RunMetrics {
	pace := Pace(distanceM, durationS)
	np := NormalizedPace(pace)
	intensity := IntensityFactor(np, thresholdPace)
	m := RunMetrics{
		RunID:           id,
		Pace:            pace,
		NormalizedPace:  np,
		IntensityFactor: intensity,
		TSS:             TSS(durationS, intensity),
		DecouplingPct:   Decoupling(distanceM, durationS, avgHR),
	}
	if v := EstimateVDOT(distanceM, durationS); v != nil {
		m.VDOT = v
	}
	return m
}
