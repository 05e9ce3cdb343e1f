package adaptation

// Weekly adaptation classification: how the body responded to the load
// it was given, and what to do about it next week.

// Classifications.
const (
	StrongPositive = "strong_positive"
	NormalPositive = "normal_positive"
	WeakPositive   = "weak_positive"
	Stagnant       = "stagnant"
	Negative       = "negative"
)

// Actions.
const (
	ActionAccelerate = "accelerate"
	ActionContinue   = "continue"
	ActionHold       = "hold"
	ActionReplan     = "replan"
	ActionReduce     = "reduce"
)

// Inputs are the facts the classifier weighs for one week.
type Inputs struct {
	// AdaptationRatio is actual CTL gain over expected gain.
	AdaptationRatio float64
	// CTLDelta is the actual fitness change across the week.
	CTLDelta float64
	// HRVResponse is the week's average HRV minus the prior week's,
	// zero when either side is unknown.
	HRVResponse float64
	// PrevStagnant reports whether the previous review already read
	// as stagnant or badly under-responding.
	PrevStagnant bool
	// ProgressionPct is the active philosophy's weekly progression.
	ProgressionPct float64
}

// Outcome is the classified response with next-week adjustments.
type Outcome struct {
	Classification  string
	Action          string
	VolumeAdjPct    float64
	IntensityAdjPct float64
	NeedsReplan     bool
}

// Classify orders the checks from best response to worst; the first
// match wins.
func Classify(in Inputs) Outcome {
	switch {
	case in.AdaptationRatio > 1.15 && in.HRVResponse >= 0:
		return Outcome{
			Classification: StrongPositive,
			Action:         ActionAccelerate,
			VolumeAdjPct:   8,
		}
	case in.CTLDelta < 0 && in.HRVResponse < -3:
		return Outcome{
			Classification:  Negative,
			Action:          ActionReduce,
			VolumeAdjPct:    -25,
			IntensityAdjPct: -50,
		}
	case in.AdaptationRatio >= 0.85 && in.AdaptationRatio <= 1.15:
		return Outcome{
			Classification: NormalPositive,
			Action:         ActionContinue,
			VolumeAdjPct:   in.ProgressionPct,
		}
	case in.AdaptationRatio < 0.7 && in.PrevStagnant:
		return Outcome{
			Classification: Stagnant,
			Action:         ActionReplan,
			NeedsReplan:    true,
		}
	case in.AdaptationRatio >= 0.7 || in.HRVResponse < -2:
		return Outcome{
			Classification: WeakPositive,
			Action:         ActionHold,
		}
	default:
		// First under-responding week: hold and watch before
		// declaring stagnation.
		return Outcome{
			Classification: WeakPositive,
			Action:         ActionHold,
		}
	}
}
