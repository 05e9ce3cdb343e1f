package bottleneck

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"runcoach/internal/store"
)

// Detector evaluates every rule against a state snapshot, picks the
// primary limiter, and appends the result to the analysis history.
type Detector struct {
	DB  *store.DB
	Log zerolog.Logger
}

// Result is one complete detection outcome.
type Result struct {
	Primary        Signal
	Secondary      []Signal
	All            []Signal
	Confidence     string
	LimiterChanged bool
}

// safety limiters that outrank any score when they fire at critical
// strength, checked in this order.
var overrides = []struct {
	limiter  string
	strength string
}{
	{LimiterOvertraining, StrengthCritical},
	{LimiterInjuryRisk, StrengthCritical},
	{LimiterPreRacePeak, StrengthCritical},
}

// Detect runs all rules against the snapshot and persists the outcome.
func (d *Detector) Detect(st *store.AthleteState, now time.Time) (*Result, error) {
	signals := evaluate(st, now)

	res := &Result{All: signals}
	res.Primary, res.Secondary = selectPrimary(signals)
	res.Confidence = confidence(res.Primary, signals)

	last, err := d.DB.LatestAnalysis(st.AthleteID)
	if err != nil {
		return nil, fmt.Errorf("latest analysis: %w", err)
	}
	res.LimiterChanged = last == nil || last.PrimaryLimiter != res.Primary.Type

	snapshot, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	var secondaryTypes []string
	for _, s := range res.Secondary {
		secondaryTypes = append(secondaryTypes, s.Type)
	}
	if err := d.DB.InsertAnalysis(&store.BottleneckAnalysis{
		ID:             uuid.NewString(),
		AthleteID:      st.AthleteID,
		PrimaryLimiter: res.Primary.Type,
		Strength:       res.Primary.Strength,
		Score:          res.Primary.Score,
		Evidence:       res.Primary.Evidence,
		Directive:      res.Primary.Directive,
		Secondary:      strings.Join(secondaryTypes, ","),
		Confidence:     res.Confidence,
		LimiterChanged: res.LimiterChanged,
		StateSnapshot:  string(snapshot),
		CreatedAt:      now.UTC(),
	}); err != nil {
		return nil, fmt.Errorf("insert analysis: %w", err)
	}

	d.Log.Info().
		Int64("athlete", st.AthleteID).
		Str("limiter", res.Primary.Type).
		Str("strength", res.Primary.Strength).
		Str("confidence", res.Confidence).
		Bool("changed", res.LimiterChanged).
		Msg("bottleneck detected")

	return res, nil
}

func evaluate(st *store.AthleteState, now time.Time) []Signal {
	stagnant := thresholdStagnantWeeks(st, now)
	var signals []Signal
	for _, s := range []*Signal{
		ruleOvertraining(st),
		ruleInjuryRisk(st),
		rulePreRacePeak(st),
		ruleAerobicBase(st),
		ruleLactateThreshold(st, stagnant),
		ruleRaceEndurance(st),
		rulePlateau(st),
		ruleInsufficientVolume(st),
	} {
		if s != nil {
			signals = append(signals, *s)
		}
	}
	if len(signals) == 0 {
		signals = append(signals, Signal{
			Type:      LimiterBalanced,
			Strength:  StrengthWeak,
			Score:     0,
			Evidence:  "no limiter stands out",
			Directive: "continue the current plan and progress volume steadily",
		})
	}
	return signals
}

// selectPrimary applies the safety overrides first, then falls back to
// the highest score. Secondary signals are the next two strongest.
func selectPrimary(signals []Signal) (Signal, []Signal) {
	sorted := make([]Signal, len(signals))
	copy(sorted, signals)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	primary := sorted[0]
	for _, o := range overrides {
		if s := find(sorted, o.limiter); s != nil && s.Strength == o.strength {
			primary = *s
			break
		}
	}

	var secondary []Signal
	for _, s := range sorted {
		if s.Type == primary.Type || s.Type == LimiterBalanced {
			continue
		}
		secondary = append(secondary, s)
		if len(secondary) == 2 {
			break
		}
	}
	return primary, secondary
}

func confidence(primary Signal, signals []Signal) string {
	competing := 0
	for _, s := range signals {
		if s.Score > 40 {
			competing++
		}
	}
	switch {
	case primary.Score >= 80 && competing <= 2:
		return "high"
	case primary.Score >= 50:
		return "medium"
	default:
		return "low"
	}
}

func thresholdStagnantWeeks(st *store.AthleteState, now time.Time) int {
	if st.ThresholdLastChanged == "" {
		return 0
	}
	changed, err := time.Parse("2006-01-02", st.ThresholdLastChanged)
	if err != nil {
		return 0
	}
	days := now.UTC().Sub(changed).Hours() / 24
	if days < 0 {
		return 0
	}
	return int(days / 7)
}

func find(signals []Signal, limiter string) *Signal {
	for i := range signals {
		if signals[i].Type == limiter {
			return &signals[i]
		}
	}
	return nil
}
