package analysis

import (
	"sort"
	"time"

	"runcoach/internal/store"
)

// Report is the full metric picture computed from one athlete's runs.
// Everything downstream (state aggregation, bottleneck detection, the
// weekly loop) reads from here rather than recomputing.
type Report struct {
	Empty bool

	// Per-run metrics for runs not yet persisted as computed.
	NewMetrics []RunMetrics

	Load            TrainingLoad
	FormDescription string

	VDOT           *float64
	VDOTLabel      string
	VDOTConfidence string

	ThresholdPace       float64
	ThresholdHR         *float64
	ThresholdDetected   bool
	RecentDecouplingPct *float64

	WeeklyKm           float64
	Weekly4wkAvgKm     float64
	Weekly8wkAvgKm     float64
	VolumeTrend        string
	LoadIncrease7dPct  float64
	LoadIncrease28dPct float64
	EasyPct            float64
	ModeratePct        float64
	HardPct            float64
	LongestRunKm       float64
	QualitySessions14d int

	// Zero-filled daily TSS ending on the reference day, oldest first.
	DailyTSS []float64
	// Run days as YYYY-MM-DD for streak counting.
	RunDays map[string]bool
}

// Analyze computes the report for a window of runs. Runs below the
// qualifying floors are ignored entirely. Derived metrics already
// persisted on a run are trusted; missing ones are computed against
// priorThresholdPace and surfaced in NewMetrics for write-back.
func Analyze(runs []store.Run, priorThresholdPace float64, now time.Time) *Report {
	var qualifying []store.Run
	for _, r := range runs {
		if Qualifies(r.DistanceM, r.DurationS) {
			qualifying = append(qualifying, r)
		}
	}
	if len(qualifying) == 0 {
		return &Report{
			Empty:           true,
			ThresholdPace:   priorThresholdPace,
			FormDescription: FormDescription(0),
			VDOTConfidence:  "low",
			VolumeTrend:     VolumeTrend(0, 0),
		}
	}
	sort.Slice(qualifying, func(i, j int) bool {
		return qualifying[i].StartTime.Before(qualifying[j].StartTime)
	})

	rep := &Report{RunDays: make(map[string]bool)}

	samples := make([]RunSample, 0, len(qualifying))
	var pairs []PaceHRPair
	var vdots []float64
	var decs []float64

	for _, r := range qualifying {
		var m RunMetrics
		if r.MetricsComputed && r.TSS != nil && r.IntensityFactor != nil && r.NormalizedPace != nil {
			m = RunMetrics{
				RunID:           r.ID,
				NormalizedPace:  *r.NormalizedPace,
				IntensityFactor: *r.IntensityFactor,
				TSS:             *r.TSS,
				DecouplingPct:   r.DecouplingPct,
				VDOT:            r.VDOT,
			}
		} else {
			m = ComputeRunMetrics(r.ID, r.DistanceM, r.DurationS, r.AvgHR, priorThresholdPace)
			rep.NewMetrics = append(rep.NewMetrics, m)
		}

		samples = append(samples, RunSample{
			Start:           r.StartTime,
			DistanceM:       r.DistanceM,
			DurationS:       r.DurationS,
			TSS:             m.TSS,
			IntensityFactor: m.IntensityFactor,
		})
		if r.AvgHR != nil {
			pairs = append(pairs, PaceHRPair{Pace: m.NormalizedPace, HR: *r.AvgHR})
		}
		if m.VDOT != nil {
			vdots = append(vdots, *m.VDOT)
		}
		if m.DecouplingPct != nil {
			decs = append(decs, *m.DecouplingPct)
		}
		rep.RunDays[r.StartTime.UTC().Format("2006-01-02")] = true
	}

	rep.DailyTSS = DailyTSSSeries(samples, now, WindowDays)
	rep.Load = ComputeLoad(rep.DailyTSS)
	rep.FormDescription = FormDescription(rep.Load.TSB)

	if len(vdots) > 0 {
		v, conf := HeadlineVDOT(vdots)
		rep.VDOT = &v
		rep.VDOTLabel = VDOTLabel(v)
		rep.VDOTConfidence = conf
	} else {
		rep.VDOTConfidence = "low"
	}

	if pace, hr, ok := DetectThreshold(pairs); ok {
		rep.ThresholdPace = pace
		rep.ThresholdHR = &hr
		rep.ThresholdDetected = true
	} else {
		rep.ThresholdPace = priorThresholdPace
	}

	if len(decs) > 0 {
		avg := mean(decs)
		rep.RecentDecouplingPct = &avg
	}

	rep.WeeklyKm, rep.Weekly4wkAvgKm, rep.Weekly8wkAvgKm = WeeklyVolume(samples, now)
	rep.VolumeTrend = VolumeTrend(rep.WeeklyKm, rep.Weekly4wkAvgKm)
	rep.LoadIncrease7dPct = LoadIncrease(samples, now, 7)
	rep.LoadIncrease28dPct = LoadIncrease(samples, now, 28)
	rep.EasyPct, rep.ModeratePct, rep.HardPct = IntensitySplit(samples, now)
	rep.LongestRunKm = LongestRunKm(samples, now, 28)
	rep.QualitySessions14d = QualitySessions(samples, now, 14)

	return rep
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
