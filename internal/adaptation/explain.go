package adaptation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"runcoach/internal/llm"
	"runcoach/internal/metrics"
	"runcoach/internal/store"
)

const explainSystem = "You are a running coach reviewing an athlete's training week. " +
	"Explain the adaptation verdict in two or three plain sentences an amateur runner understands. " +
	"Be concrete about what changes next week and why. No greetings, no bullet points."

// Explain produces the weekly summary text. Model failures degrade to
// a templated explanation; the review never fails on the LLM.
func Explain(ctx context.Context, gen llm.Generator, log zerolog.Logger, r *store.AdaptationRecord, timeout time.Duration) string {
	if gen != nil {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		prompt := fmt.Sprintf(
			"Week %d/%d: planned %.1f km, ran %.1f km (%d of %d sessions). "+
				"Fitness change %.1f against an expected %.1f (ratio %.2f). "+
				"Verdict: %s, action: %s, volume adjustment %+.0f%%, intensity adjustment %+.0f%%.",
			r.ISOYear, r.ISOWeek, r.PlannedKm, r.ActualKm, r.CompletedSessions, r.PlannedSessions,
			r.ActualCTLDelta, r.ExpectedCTLDelta, r.AdaptationRatio,
			r.Classification, r.Action, r.VolumeAdjPct, r.IntensityAdjPct,
		)
		text, err := gen.Generate(ctx, llm.Request{
			System:      explainSystem,
			Prompt:      prompt,
			MaxTokens:   220,
			Temperature: 0.4,
		})
		if err == nil {
			return text
		}
		log.Warn().Err(err).Str("provider", gen.Name()).Msg("explanation fell back to template")
		metrics.ExplanationFallbacksTotal.Inc()
	}
	return templateExplanation(r)
}

func templateExplanation(r *store.AdaptationRecord) string {
	var verdict string
	switch r.Classification {
	case StrongPositive:
		verdict = "You absorbed the week unusually well, so the plan accelerates slightly."
	case NormalPositive:
		verdict = "Fitness moved as planned; next week continues the current progression."
	case WeakPositive:
		verdict = "The response was smaller than planned, so next week holds volume steady instead of progressing."
	case Stagnant:
		verdict = "Two under-responding weeks in a row: the current approach is not working and the plan will be rebuilt."
	case Negative:
		verdict = "The load outran recovery this week, so volume drops and quality sessions convert to easy running."
	default:
		verdict = "The week has been reviewed."
	}
	return fmt.Sprintf(
		"Week %d: ran %.1f of %.1f planned km, completing %d of %d sessions. "+
			"Fitness changed by %.1f against an expected %.1f. %s",
		r.ISOWeek, r.ActualKm, r.PlannedKm, r.CompletedSessions, r.PlannedSessions,
		r.ActualCTLDelta, r.ExpectedCTLDelta, verdict,
	)
}
