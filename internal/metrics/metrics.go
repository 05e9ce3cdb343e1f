package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label value constants to prevent typos
const (
	// Pipeline stages
	StageState      = "state"
	StageBottleneck = "bottleneck"
	StagePhilosophy = "philosophy"
	StageWeekly     = "weekly_review"

	// Results
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Pipeline Metrics
var (
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_pipeline_runs_total",
			Help: "Total number of pipeline stage executions per athlete",
		},
		[]string{"stage", "result"},
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coach_pipeline_stage_duration_seconds",
			Help:    "Time spent in each pipeline stage",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"stage"},
	)

	AthletesProcessed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coach_athletes_processed",
			Help: "Number of athletes handled in the last pipeline pass",
		},
	)
)

// State Metrics
var (
	LimiterTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_limiter_transitions_total",
			Help: "Total number of primary limiter changes by new limiter",
		},
		[]string{"limiter"},
	)

	ReadinessScore = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coach_readiness_score",
			Help: "Latest readiness score per athlete",
		},
		[]string{"athlete_id"},
	)

	InjuryRiskScore = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coach_injury_risk_score",
			Help: "Latest injury risk score per athlete",
		},
		[]string{"athlete_id"},
	)

	ChronicTrainingLoad = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coach_chronic_training_load",
			Help: "Latest CTL per athlete",
		},
		[]string{"athlete_id"},
	)
)

// Weekly Review Metrics
var (
	AdaptationClassifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_adaptation_classifications_total",
			Help: "Weekly adaptation verdicts by classification",
		},
		[]string{"classification"},
	)

	SessionsAdjustedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coach_sessions_adjusted_total",
			Help: "Total number of planned sessions rewritten by the weekly loop",
		},
	)

	ExplanationFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coach_explanation_fallbacks_total",
			Help: "Weekly explanations that fell back to the template",
		},
	)
)
