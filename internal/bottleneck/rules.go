package bottleneck

import (
	"fmt"

	"runcoach/internal/store"
)

// Detection rules. Each rule inspects the state snapshot and returns a
// signal when its conditions hold, nil otherwise. Rules never consult
// each other; interplay is resolved at primary selection.

// raceMinimumLongRunKm is the long-run distance below which race
// endurance reads as undertrained, by race distance.
func raceMinimumLongRunKm(raceDistanceM float64) float64 {
	switch {
	case raceDistanceM > 42300:
		return 35 // ultra
	case raceDistanceM >= 42000:
		return 28 // marathon
	case raceDistanceM >= 21000:
		return 18 // half
	case raceDistanceM >= 10000:
		return 14
	case raceDistanceM >= 5000:
		return 8
	default:
		return 0
	}
}

func ruleAerobicBase(st *store.AthleteState) *Signal {
	dec := st.RecentDecouplingPct
	var s *Signal
	switch {
	case dec != nil && *dec > 10:
		score := 75 + (*dec-10)*2
		if score > 100 {
			score = 100
		}
		s = &Signal{
			Type:     LimiterAerobicBase,
			Score:    score,
			Evidence: fmt.Sprintf("aerobic decoupling averaging %.1f%%, well above the 5%% target", *dec),
		}
	case dec != nil && *dec > 8:
		s = &Signal{
			Type:     LimiterAerobicBase,
			Score:    60,
			Evidence: fmt.Sprintf("aerobic decoupling averaging %.1f%%", *dec),
		}
	}

	if st.HardPct > 30 {
		if s != nil {
			s.Score += 10
			if s.Score > 100 {
				s.Score = 100
			}
			s.Evidence += fmt.Sprintf("; %.0f%% of training time at high intensity", st.HardPct)
		} else {
			s = &Signal{
				Type:     LimiterAerobicBase,
				Score:    55,
				Evidence: fmt.Sprintf("%.0f%% of training time at high intensity leaves little aerobic stimulus", st.HardPct),
			}
		}
	}
	if s == nil {
		return nil
	}
	s.Strength = strengthFor(s.Score)
	s.Directive = "shift volume toward easy aerobic running and rebuild the base before adding intensity"
	return s
}

func ruleLactateThreshold(st *store.AthleteState, thresholdStagnantWeeks int) *Signal {
	if thresholdStagnantWeeks >= 6 && st.FitnessTrajectory == "plateau" {
		return &Signal{
			Type:      LimiterThreshold,
			Strength:  StrengthStrong,
			Score:     80,
			Evidence:  fmt.Sprintf("threshold pace unchanged for %d weeks with fitness flat", thresholdStagnantWeeks),
			Directive: "introduce weekly threshold work: tempo runs and cruise intervals at threshold pace",
		}
	}
	// No race at all counts as ample time.
	if st.QualitySessions14d == 0 && (st.WeeksToRace == nil || *st.WeeksToRace > 8) {
		return &Signal{
			Type:      LimiterThreshold,
			Strength:  StrengthModerate,
			Score:     50,
			Evidence:  "no quality sessions in the last 14 days with ample time before the race",
			Directive: "add one threshold session per week while the base phase allows it",
		}
	}
	return nil
}

func ruleRaceEndurance(st *store.AthleteState) *Signal {
	if st.RaceDistanceM == nil {
		return nil
	}
	minimum := raceMinimumLongRunKm(*st.RaceDistanceM)
	if minimum <= 0 || st.LongestRunKm >= minimum {
		return nil
	}
	gap := minimum - st.LongestRunKm
	score := 55.0
	if gap > 10 {
		score = 75
	}
	return &Signal{
		Type:      LimiterRaceEndurance,
		Strength:  strengthFor(score),
		Score:     score,
		Evidence:  fmt.Sprintf("longest recent run %.1f km against a %.0f km requirement for the goal race", st.LongestRunKm, minimum),
		Directive: "extend the weekly long run progressively toward race-specific distance",
	}
}

func ruleOvertraining(st *store.AthleteState) *Signal {
	var flags []string
	if st.TSB < -25 {
		flags = append(flags, fmt.Sprintf("form at %.0f", st.TSB))
	}
	if st.HRVSuppressedDays >= 3 {
		flags = append(flags, fmt.Sprintf("HRV suppressed %d days running", st.HRVSuppressedDays))
	}
	if st.RestingHR != nil && st.RHRBaseline != nil && *st.RestingHR >= *st.RHRBaseline+7 {
		flags = append(flags, "resting HR well above baseline")
	}
	if st.LoadIncrease7dPct > 15 {
		flags = append(flags, fmt.Sprintf("load up %.0f%% this week", st.LoadIncrease7dPct))
	}
	if st.PoorSleepDays >= 3 {
		flags = append(flags, fmt.Sprintf("poor sleep %d days running", st.PoorSleepDays))
	}
	if st.ConsecutiveRunDays >= 5 {
		flags = append(flags, fmt.Sprintf("%d consecutive run days", st.ConsecutiveRunDays))
	}
	if len(flags) < 2 {
		return nil
	}
	score := 85.0
	strength := StrengthStrong
	if len(flags) >= 4 {
		score = 100
		strength = StrengthCritical
	}
	return &Signal{
		Type:      LimiterOvertraining,
		Strength:  strength,
		Score:     score,
		Evidence:  joinFlags(flags),
		Directive: "cut volume immediately, drop all intensity, and recover until readiness normalizes",
	}
}

func ruleInjuryRisk(st *store.AthleteState) *Signal {
	switch {
	case st.InjuryRiskScore > 80:
		return &Signal{
			Type:      LimiterInjuryRisk,
			Strength:  StrengthCritical,
			Score:     95,
			Evidence:  fmt.Sprintf("injury risk score at %d", st.InjuryRiskScore),
			Directive: "reduce load sharply and reintroduce volume only as the risk score decays",
		}
	case st.InjuryRiskScore > 65:
		return &Signal{
			Type:      LimiterInjuryRisk,
			Strength:  StrengthStrong,
			Score:     75,
			Evidence:  fmt.Sprintf("injury risk score at %d", st.InjuryRiskScore),
			Directive: "hold volume flat and avoid back-to-back hard days until the risk score drops",
		}
	}
	return nil
}

func rulePlateau(st *store.AthleteState) *Signal {
	if st.FitnessTrajectory != "plateau" {
		return nil
	}
	if st.AdaptationRate == "slow" && st.VolumeTrend == "stable" {
		return &Signal{
			Type:      LimiterPlateau,
			Strength:  StrengthStrong,
			Score:     70,
			Evidence:  "fitness flat, adaptation slow, and volume unchanged for weeks",
			Directive: "change the stimulus: vary workout types, add a volume step, or schedule a down week",
		}
	}
	return &Signal{
		Type:      LimiterPlateau,
		Strength:  StrengthModerate,
		Score:     50,
		Evidence:  "fitness trajectory flat over the last two weeks",
		Directive: "review training variety before the plateau hardens",
	}
}

func ruleInsufficientVolume(st *store.AthleteState) *Signal {
	if st.VDOT == nil {
		return nil
	}
	if st.WeeklyKm < 0.8**st.VDOT && st.ReadinessStatus == "optimal" && st.TSB > 5 {
		return &Signal{
			Type:      LimiterVolume,
			Strength:  StrengthModerate,
			Score:     45,
			Evidence:  fmt.Sprintf("%.0f km/week is low for current fitness and the athlete is fresh", st.WeeklyKm),
			Directive: "add volume: the athlete is absorbing the current load with room to spare",
		}
	}
	return nil
}

func rulePreRacePeak(st *store.AthleteState) *Signal {
	if st.WeeksToRace == nil || *st.WeeksToRace < 1 || *st.WeeksToRace > 3 {
		return nil
	}
	return &Signal{
		Type:      LimiterPreRacePeak,
		Strength:  StrengthCritical,
		Score:     100,
		Evidence:  fmt.Sprintf("%d weeks to goal race", *st.WeeksToRace),
		Directive: "taper: cut volume, keep short race-pace touches, and prioritize freshness",
	}
}

func joinFlags(flags []string) string {
	out := flags[0]
	for _, f := range flags[1:] {
		out += "; " + f
	}
	return out
}
