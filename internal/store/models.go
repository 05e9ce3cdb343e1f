package store

import "time"

// Run is a single normalized run delivered by an ingestion connector.
// Derived metric fields are written once by the metrics calculator and
// never recomputed (MetricsComputed guards the write).
type Run struct {
	ID         int64     `db:"id"`
	AthleteID  int64     `db:"athlete_id"`
	StartTime  time.Time `db:"start_time"`
	DistanceM  float64   `db:"distance_m"` // meters
	DurationS  int       `db:"duration_s"` // seconds
	AvgHR      *float64  `db:"avg_hr"`     // nullable
	AvgCadence *float64  `db:"avg_cadence"`

	// Derived, written once
	TSS             *float64 `db:"tss"`
	IntensityFactor *float64 `db:"intensity_factor"`
	NormalizedPace  *float64 `db:"normalized_pace"` // sec per km
	DecouplingPct   *float64 `db:"decoupling_pct"`
	VDOT            *float64 `db:"vdot"`
	MetricsComputed bool     `db:"metrics_computed"`
}

// WellnessRecord is one athlete-day of recovery telemetry, upserted by an
// external sync. Read-only to the engine.
type WellnessRecord struct {
	AthleteID  int64    `db:"athlete_id"`
	Day        string   `db:"day"` // YYYY-MM-DD
	HRV        *float64 `db:"hrv"`
	RestingHR  *float64 `db:"resting_hr"`
	SleepScore *float64 `db:"sleep_score"`
	SleepHours *float64 `db:"sleep_hours"`
}

// Goal is the athlete's target race and plan context. Read-only to the engine.
type Goal struct {
	AthleteID     int64      `db:"athlete_id"`
	RaceDistanceM float64    `db:"race_distance_m"`
	RaceDate      *time.Time `db:"race_date"`
	PlanPhase     string     `db:"plan_phase"` // base, build, peak, taper
	PlanWeeks     int        `db:"plan_weeks"`
}

// AthleteState is the single live snapshot per athlete. It is fully
// overwritten on every aggregation pass and rebuilt from runs and wellness
// records, never mutated incrementally.
type AthleteState struct {
	AthleteID int64  `db:"athlete_id"`
	StateDay  string `db:"state_day"` // day this snapshot describes, YYYY-MM-DD

	// Fitness
	CTL                  float64  `db:"ctl"`
	ATL                  float64  `db:"atl"`
	TSB                  float64  `db:"tsb"`
	FormDescription      string   `db:"form_description"`
	VDOT                 *float64 `db:"vdot"`
	VDOTLabel            string   `db:"vdot_label"`
	VDOTConfidence       string   `db:"vdot_confidence"` // high, medium, low
	GoalRacePredictionS  *int     `db:"goal_race_prediction_s"`
	ThresholdPace        float64  `db:"threshold_pace"` // sec per km
	ThresholdHR          *float64 `db:"threshold_hr"`
	ThresholdEstimated   bool     `db:"threshold_estimated"`
	ThresholdLastChanged string   `db:"threshold_last_changed"` // YYYY-MM-DD
	EasyPace             float64  `db:"easy_pace"`
	MarathonPace         float64  `db:"marathon_pace"`
	IntervalPace         float64  `db:"interval_pace"`
	RecentDecouplingPct  *float64 `db:"recent_decoupling_pct"`

	// Load
	WeeklyKm           float64 `db:"weekly_km"`
	Weekly4wkAvgKm     float64 `db:"weekly_4wk_avg_km"`
	Weekly8wkAvgKm     float64 `db:"weekly_8wk_avg_km"`
	VolumeTrend        string  `db:"volume_trend"` // building, stable, declining
	LoadIncrease7dPct  float64 `db:"load_increase_7d_pct"`
	LoadIncrease28dPct float64 `db:"load_increase_28d_pct"`
	EasyPct            float64 `db:"easy_pct"`
	ModeratePct        float64 `db:"moderate_pct"`
	HardPct            float64 `db:"hard_pct"`
	LongestRunKm       float64 `db:"longest_run_km"`
	QualitySessions14d int     `db:"quality_sessions_14d"`
	ConsecutiveRunDays int     `db:"consecutive_run_days"`
	DaysSinceRest      int     `db:"days_since_rest"`
	DaysSinceHard      int     `db:"days_since_hard"`

	// Recovery
	HRV               *float64 `db:"hrv"`
	HRVBaseline       *float64 `db:"hrv_baseline"`
	HRVDeviationPct   float64  `db:"hrv_deviation_pct"`
	RestingHR         *float64 `db:"resting_hr"`
	RHRBaseline       *float64 `db:"rhr_baseline"`
	RHRDeviation      float64  `db:"rhr_deviation"`
	SleepScore        *float64 `db:"sleep_score"`
	SleepBaseline     *float64 `db:"sleep_baseline"`
	SleepDeviationPct float64  `db:"sleep_deviation_pct"`
	ReadinessScore    int      `db:"readiness_score"`
	ReadinessStatus   string   `db:"readiness_status"` // optimal, suboptimal, poor, very_poor
	HRVSuppressedDays int      `db:"hrv_suppressed_days"`
	PoorSleepDays     int      `db:"poor_sleep_days"`

	InjuryRiskScore int `db:"injury_risk_score"`

	// Goal context
	RaceDistanceM *float64   `db:"race_distance_m"`
	RaceDate      *time.Time `db:"race_date"`
	WeeksToRace   *int       `db:"weeks_to_race"`
	PlanPhase     string     `db:"plan_phase"`
	PlanWeek      int        `db:"plan_week"`

	// Trends
	FitnessTrajectory string  `db:"fitness_trajectory"`
	AdaptationRate    string  `db:"adaptation_rate"` // fast, normal, slow, unknown
	ConsistencyScore  float64 `db:"consistency_score"`

	UpdatedAt time.Time `db:"updated_at"`
}

// BottleneckAnalysis is one detection result, appended per detection run.
type BottleneckAnalysis struct {
	ID             string    `db:"id"`
	AthleteID      int64     `db:"athlete_id"`
	PrimaryLimiter string    `db:"primary_limiter"`
	Strength       string    `db:"strength"`
	Score          float64   `db:"score"`
	Evidence       string    `db:"evidence"`
	Directive      string    `db:"directive"`
	Secondary      string    `db:"secondary_signals"` // comma separated limiter types
	Confidence     string    `db:"confidence"`
	LimiterChanged bool      `db:"limiter_changed"`
	StateSnapshot  string    `db:"state_snapshot"` // JSON of the AthleteState used
	CreatedAt      time.Time `db:"created_at"`
}

// PhilosophyPeriod is an interval during which one training configuration
// is active. At most one open (EndedAt == nil) period exists per athlete.
type PhilosophyPeriod struct {
	ID                string     `db:"id"`
	AthleteID         int64      `db:"athlete_id"`
	Limiter           string     `db:"limiter"`
	Mode              string     `db:"mode"`
	VolumeTargetKm    float64    `db:"volume_target_km"`
	EasyPct           float64    `db:"easy_pct"`
	ModeratePct       float64    `db:"moderate_pct"`
	HardPct           float64    `db:"hard_pct"`
	AllowedWorkouts   string     `db:"allowed_workouts"` // comma separated
	ForbiddenWorkouts string     `db:"forbidden_workouts"`
	ProgressionPct    float64    `db:"progression_pct"`
	DurationWeeks     int        `db:"duration_weeks"`
	SuccessMetric     string     `db:"success_metric"`
	StartedAt         time.Time  `db:"started_at"`
	EndedAt           *time.Time `db:"ended_at"`
}

// AdaptationRecord is the weekly closed-loop result, exactly one per
// athlete per ISO week. Re-running the same week replaces the row.
type AdaptationRecord struct {
	AthleteID         int64     `db:"athlete_id"`
	ISOYear           int       `db:"iso_year"`
	ISOWeek           int       `db:"iso_week"`
	PlannedKm         float64   `db:"planned_km"`
	ActualKm          float64   `db:"actual_km"`
	PlannedSessions   int       `db:"planned_sessions"`
	CompletedSessions int       `db:"completed_sessions"`
	CompletionRate    float64   `db:"completion_rate"`
	ExpectedCTLDelta  float64   `db:"expected_ctl_delta"`
	ActualCTLDelta    float64   `db:"actual_ctl_delta"`
	AdaptationRatio   float64   `db:"adaptation_ratio"`
	Classification    string    `db:"classification"`
	Action            string    `db:"action"`
	VolumeAdjPct      float64   `db:"volume_adj_pct"`
	IntensityAdjPct   float64   `db:"intensity_adj_pct"`
	NeedsReplan       bool      `db:"needs_replan"`
	WeekEndCTL        float64   `db:"week_end_ctl"`
	HRVAvg            *float64  `db:"hrv_avg"`
	ThresholdPace     float64   `db:"threshold_pace"`
	DecouplingPct     *float64  `db:"decoupling_pct"`
	Explanation       string    `db:"explanation"`
	CreatedAt         time.Time `db:"created_at"`
}

// Session is a planned workout prescription. The adaptation loop rewrites
// target distance and type; completion tracking links the finishing run.
type Session struct {
	ID               int64    `db:"id"`
	AthleteID        int64    `db:"athlete_id"`
	Date             string   `db:"date"` // YYYY-MM-DD
	Type             string   `db:"type"` // easy, long_run, tempo, interval, threshold, race_pace, strides, rest
	TargetDistanceKm float64  `db:"target_distance_km"`
	TargetPace       *float64 `db:"target_pace"` // sec per km
	TargetHRZone     *string  `db:"target_hr_zone"`
	Status           string   `db:"status"` // planned, completed, missed
	CompletingRunID  *int64   `db:"completing_run_id"`
	AdjustmentNote   *string  `db:"adjustment_note"`
}

// Session status values.
const (
	SessionPlanned   = "planned"
	SessionCompleted = "completed"
	SessionMissed    = "missed"
)
