package state

// Injury risk scoring. The score ratchets up with load spikes and
// recovery debt, and decays by 10 points per day toward a floor of 20
// when nothing new fires. Recomputing the same day must not compound
// penalties, so callers gate on the snapshot day before applying this.

const (
	injuryFloor    = 20
	injuryDecay    = 10
	acuteChronicHi = 1.5
)

// InjuryInputs are the risk factors considered for one day.
type InjuryInputs struct {
	PriorScore         int
	LoadIncrease7dPct  float64
	ATL                float64
	CTL                float64
	TSB                float64
	ConsecutiveRunDays int
}

// ScoreInjuryRisk applies daily decay then stacks the active penalties.
func ScoreInjuryRisk(in InjuryInputs) int {
	score := in.PriorScore - injuryDecay
	if score < injuryFloor {
		score = injuryFloor
	}

	switch {
	case in.LoadIncrease7dPct > 15:
		score += 20
	case in.LoadIncrease7dPct > 10:
		score += 15
	case in.LoadIncrease7dPct > 5:
		score += 10
	}

	if in.CTL > 0 && in.ATL/in.CTL > acuteChronicHi {
		score += 15
	}
	if in.TSB < -30 {
		score += 15
	}
	if in.ConsecutiveRunDays > 5 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
