package philosophy

// The limiter-to-philosophy mapping is declarative: one Config per
// limiter, applied as a whole when a period opens. Volume multipliers
// scale the athlete's 4-week average weekly distance.

// Config is the complete training prescription for one limiter.
type Config struct {
	Mode              string
	VolumeMultiplier  float64
	EasyPct           float64
	ModeratePct       float64
	HardPct           float64
	AllowedWorkouts   []string
	ForbiddenWorkouts []string
	ProgressionPct    float64 // weekly volume progression
	DurationWeeks     int
	SuccessMetric     string
}

var configs = map[string]Config{
	"weak_aerobic_base": {
		Mode:              "base_building",
		VolumeMultiplier:  1.10,
		EasyPct:           90,
		ModeratePct:       8,
		HardPct:           2,
		AllowedWorkouts:   []string{"easy", "long_run", "strides"},
		ForbiddenWorkouts: []string{"interval", "threshold", "race_pace"},
		ProgressionPct:    8,
		DurationWeeks:     8,
		SuccessMetric:     "decoupling below 5% on runs over 90 minutes",
	},
	"weak_lactate_threshold": {
		Mode:              "threshold_development",
		VolumeMultiplier:  1.00,
		EasyPct:           80,
		ModeratePct:       15,
		HardPct:           5,
		AllowedWorkouts:   []string{"easy", "long_run", "tempo", "threshold", "strides"},
		ForbiddenWorkouts: []string{"race_pace"},
		ProgressionPct:    5,
		DurationWeeks:     6,
		SuccessMetric:     "threshold pace improving week over week",
	},
	"poor_race_specific_endurance": {
		Mode:              "endurance_extension",
		VolumeMultiplier:  1.05,
		EasyPct:           85,
		ModeratePct:       12,
		HardPct:           3,
		AllowedWorkouts:   []string{"easy", "long_run", "race_pace", "strides"},
		ForbiddenWorkouts: []string{"interval"},
		ProgressionPct:    6,
		DurationWeeks:     6,
		SuccessMetric:     "long run reaching race-distance requirement",
	},
	"overtraining_risk": {
		Mode:              "recovery",
		VolumeMultiplier:  0.50,
		EasyPct:           100,
		ModeratePct:       0,
		HardPct:           0,
		AllowedWorkouts:   []string{"easy", "rest"},
		ForbiddenWorkouts: []string{"long_run", "tempo", "interval", "threshold", "race_pace"},
		ProgressionPct:    0,
		DurationWeeks:     2,
		SuccessMetric:     "readiness back above 75 with HRV at baseline",
	},
	"performance_plateau": {
		Mode:              "stimulus_variation",
		VolumeMultiplier:  1.05,
		EasyPct:           75,
		ModeratePct:       15,
		HardPct:           10,
		AllowedWorkouts:   []string{"easy", "long_run", "tempo", "interval", "threshold", "strides"},
		ForbiddenWorkouts: nil,
		ProgressionPct:    4,
		DurationWeeks:     4,
		SuccessMetric:     "fitness trajectory leaving the plateau",
	},
	"injury_risk_high": {
		Mode:              "load_management",
		VolumeMultiplier:  0.70,
		EasyPct:           95,
		ModeratePct:       5,
		HardPct:           0,
		AllowedWorkouts:   []string{"easy", "rest", "strides"},
		ForbiddenWorkouts: []string{"interval", "threshold", "race_pace", "long_run"},
		ProgressionPct:    3,
		DurationWeeks:     3,
		SuccessMetric:     "injury risk score decayed below 40",
	},
	"insufficient_volume": {
		Mode:              "volume_build",
		VolumeMultiplier:  1.15,
		EasyPct:           85,
		ModeratePct:       10,
		HardPct:           5,
		AllowedWorkouts:   []string{"easy", "long_run", "tempo", "strides"},
		ForbiddenWorkouts: nil,
		ProgressionPct:    8,
		DurationWeeks:     6,
		SuccessMetric:     "weekly volume matched to fitness without readiness decline",
	},
	"pre_race_peak": {
		Mode:              "taper",
		VolumeMultiplier:  0.75, // tightened further by weeks-to-race
		EasyPct:           80,
		ModeratePct:       10,
		HardPct:           10,
		AllowedWorkouts:   []string{"easy", "race_pace", "strides", "rest"},
		ForbiddenWorkouts: []string{"long_run", "interval", "threshold"},
		ProgressionPct:    0,
		DurationWeeks:     3,
		SuccessMetric:     "arriving at the start line fresh with TSB above +10",
	},
	"balanced_fitness": {
		Mode:              "progressive_overload",
		VolumeMultiplier:  1.05,
		EasyPct:           80,
		ModeratePct:       12,
		HardPct:           8,
		AllowedWorkouts:   []string{"easy", "long_run", "tempo", "interval", "threshold", "strides"},
		ForbiddenWorkouts: nil,
		ProgressionPct:    5,
		DurationWeeks:     4,
		SuccessMetric:     "steady CTL growth with stable readiness",
	},
}

// ConfigFor returns the philosophy for a limiter. Unknown limiters get
// the balanced default.
func ConfigFor(limiter string) Config {
	if c, ok := configs[limiter]; ok {
		return c
	}
	return configs["balanced_fitness"]
}

// TaperMultiplier deepens the taper as the race approaches.
func TaperMultiplier(weeksToRace int) float64 {
	switch {
	case weeksToRace <= 1:
		return 0.40
	case weeksToRace <= 2:
		return 0.60
	default:
		return 0.75
	}
}
