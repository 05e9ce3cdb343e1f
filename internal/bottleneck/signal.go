package bottleneck

// Limiter types, ordered from most to least urgent for override
// purposes. Exactly one becomes the primary limiter per detection.
const (
	LimiterOvertraining  = "overtraining_risk"
	LimiterInjuryRisk    = "injury_risk_high"
	LimiterPreRacePeak   = "pre_race_peak"
	LimiterAerobicBase   = "weak_aerobic_base"
	LimiterThreshold     = "weak_lactate_threshold"
	LimiterRaceEndurance = "poor_race_specific_endurance"
	LimiterPlateau       = "performance_plateau"
	LimiterVolume        = "insufficient_volume"
	LimiterBalanced      = "balanced_fitness"
)

// Signal strengths.
const (
	StrengthWeak     = "weak"
	StrengthModerate = "moderate"
	StrengthStrong   = "strong"
	StrengthCritical = "critical"
)

// Signal is one fired detection rule with its supporting evidence and
// the coaching directive it implies.
type Signal struct {
	Type      string
	Strength  string
	Score     float64
	Evidence  string
	Directive string
}

func strengthFor(score float64) string {
	switch {
	case score >= 90:
		return StrengthCritical
	case score >= 70:
		return StrengthStrong
	case score >= 45:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}
