package analysis

import (
	"math"
	"sort"
)

// Threshold pace estimation from the pace/HR relationship. Below
// threshold heart rate climbs roughly linearly with speed; above it
// the slope steepens. The biggest change in slope across the observed
// pace range marks the inflection.

// PaceHRPair is one qualifying run's normalized pace and average HR.
type PaceHRPair struct {
	Pace float64
	HR   float64
}

// DetectThreshold scans consecutive slope changes across the sorted
// pace/HR curve and returns the pace and HR at the sharpest bend.
// Returns ok=false when fewer than MinThresholdPairs points are
// available; callers should retain their prior threshold in that case.
func DetectThreshold(pairs []PaceHRPair) (pace, hr float64, ok bool) {
	valid := pairs[:0:0]
	for _, p := range pairs {
		if p.Pace > 0 && p.HR > 0 {
			valid = append(valid, p)
		}
	}
	if len(valid) < MinThresholdPairs {
		return 0, 0, false
	}

	// Slowest first so slope is dHR per unit of pace gained.
	sort.Slice(valid, func(i, j int) bool { return valid[i].Pace > valid[j].Pace })

	bestDelta := -1.0
	bestIdx := -1
	for i := 1; i < len(valid)-1; i++ {
		s1 := slope(valid[i-1], valid[i])
		s2 := slope(valid[i], valid[i+1])
		if math.IsNaN(s1) || math.IsNaN(s2) {
			continue
		}
		delta := math.Abs(s2 - s1)
		if delta > bestDelta {
			bestDelta = delta
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return 0, 0, false
	}
	return valid[bestIdx].Pace, valid[bestIdx].HR, true
}

func slope(a, b PaceHRPair) float64 {
	dp := b.Pace - a.Pace
	if math.Abs(dp) < 1e-9 {
		return math.NaN()
	}
	return (b.HR - a.HR) / dp
}

// PaceZones derives the standard training paces from threshold pace.
type PaceZones struct {
	Easy     float64
	Marathon float64
	Interval float64
}

// ZonesFromThreshold applies fixed multipliers to threshold pace.
func ZonesFromThreshold(thresholdPace float64) PaceZones {
	return PaceZones{
		Easy:     thresholdPace * 1.30,
		Marathon: thresholdPace * 1.12,
		Interval: thresholdPace * 0.94,
	}
}
