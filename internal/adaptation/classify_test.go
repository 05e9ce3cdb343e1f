package adaptation

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		in           Inputs
		wantClass    string
		wantAction   string
		wantVolume   float64
		wantReplan   bool
		wantIntensity float64
	}{
		{
			"strong response accelerates",
			Inputs{AdaptationRatio: 1.5, HRVResponse: 1, ProgressionPct: 5},
			StrongPositive, ActionAccelerate, 8, false, 0,
		},
		{
			"strong ratio with suppressed hrv is not strong",
			Inputs{AdaptationRatio: 1.5, HRVResponse: -1, ProgressionPct: 5},
			WeakPositive, ActionHold, 0, false, 0,
		},
		{
			"on plan continues at progression",
			Inputs{AdaptationRatio: 1.0, ProgressionPct: 6},
			NormalPositive, ActionContinue, 6, false, 0,
		},
		{
			"lower bound of normal",
			Inputs{AdaptationRatio: 0.85, ProgressionPct: 5},
			NormalPositive, ActionContinue, 5, false, 0,
		},
		{
			"under-response holds",
			Inputs{AdaptationRatio: 0.75, ProgressionPct: 5},
			WeakPositive, ActionHold, 0, false, 0,
		},
		{
			"first bad week holds",
			Inputs{AdaptationRatio: 0.5, ProgressionPct: 5},
			WeakPositive, ActionHold, 0, false, 0,
		},
		{
			"second bad week replans",
			Inputs{AdaptationRatio: 0.5, PrevStagnant: true, ProgressionPct: 5},
			Stagnant, ActionReplan, 0, true, 0,
		},
		{
			"fitness loss with crashed hrv reduces",
			Inputs{AdaptationRatio: 0.3, CTLDelta: -2, HRVResponse: -5, ProgressionPct: 5},
			Negative, ActionReduce, -25, false, -50,
		},
		{
			"negative outranks stagnant",
			Inputs{AdaptationRatio: 0.3, CTLDelta: -2, HRVResponse: -5, PrevStagnant: true},
			Negative, ActionReduce, -25, false, -50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Classify(tt.in)
			if out.Classification != tt.wantClass {
				t.Errorf("Classification = %s, want %s", out.Classification, tt.wantClass)
			}
			if out.Action != tt.wantAction {
				t.Errorf("Action = %s, want %s", out.Action, tt.wantAction)
			}
			if out.VolumeAdjPct != tt.wantVolume {
				t.Errorf("VolumeAdjPct = %v, want %v", out.VolumeAdjPct, tt.wantVolume)
			}
			if out.NeedsReplan != tt.wantReplan {
				t.Errorf("NeedsReplan = %v, want %v", out.NeedsReplan, tt.wantReplan)
			}
			if out.IntensityAdjPct != tt.wantIntensity {
				t.Errorf("IntensityAdjPct = %v, want %v", out.IntensityAdjPct, tt.wantIntensity)
			}
		})
	}
}
