package analysis

import (
	"math"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }

func almostEqual(a, b, delta float64) bool {
	return math.Abs(a-b) <= delta
}

func TestQualifies(t *testing.T) {
	tests := []struct {
		name      string
		distanceM float64
		durationS int
		want      bool
	}{
		{"normal run", 10000, 3000, true},
		{"exactly at floors", 500, 300, true},
		{"too short distance", 499, 3000, false},
		{"too short duration", 10000, 299, false},
		{"watch fumble", 50, 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Qualifies(tt.distanceM, tt.durationS); got != tt.want {
				t.Errorf("Qualifies() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPace(t *testing.T) {
	tests := []struct {
		name      string
		distanceM float64
		durationS int
		want      float64
	}{
		{"10k in 50min", 10000, 3000, 300},
		{"5k in 25min", 5000, 1500, 300},
		{"zero distance", 0, 3000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pace(tt.distanceM, tt.durationS); !almostEqual(got, tt.want, 0.01) {
				t.Errorf("Pace() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntensityFactor(t *testing.T) {
	tests := []struct {
		name           string
		normalizedPace float64
		thresholdPace  float64
		want           float64
	}{
		{"at threshold", 270, 270, 1.0},
		{"easy run", 360, 270, 0.75},
		{"faster than threshold", 250, 270, 1.08},
		{"zero threshold", 300, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntensityFactor(tt.normalizedPace, tt.thresholdPace); !almostEqual(got, tt.want, 0.01) {
				t.Errorf("IntensityFactor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTSS(t *testing.T) {
	tests := []struct {
		name            string
		durationS       int
		intensityFactor float64
		want            float64
	}{
		{"one hour at threshold", 3600, 1.0, 100},
		{"one hour easy", 3600, 0.75, 56.25},
		{"two hours easy", 7200, 0.70, 98},
		{"30min hard", 1800, 1.05, 55.125},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TSS(tt.durationS, tt.intensityFactor); !almostEqual(got, tt.want, 0.01) {
				t.Errorf("TSS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecoupling(t *testing.T) {
	tests := []struct {
		name      string
		distanceM float64
		durationS int
		avgHR     *float64
		want      *float64
	}{
		{"no heart rate", 12000, 3600, nil, nil},
		{"too short", 3000, 1100, floatPtr(150), nil},
		{"one hour", 12000, 3600, floatPtr(150), floatPtr(4.04)},
		{"long run over two hours", 28000, 9000, floatPtr(145), floatPtr(10.25)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decoupling(tt.distanceM, tt.durationS, tt.avgHR)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Decoupling() = %v, want %v", got, tt.want)
			}
			if got != nil && !almostEqual(*got, *tt.want, 0.01) {
				t.Errorf("Decoupling() = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestDecouplingGrowsWithDuration(t *testing.T) {
	short := Decoupling(12000, 3600, floatPtr(150))
	long := Decoupling(24000, 7200, floatPtr(150))
	if short == nil || long == nil {
		t.Fatal("expected decoupling for both runs")
	}
	if *long <= *short {
		t.Errorf("decoupling should grow with duration: %v vs %v", *short, *long)
	}
}

func TestComputeRunMetrics(t *testing.T) {
	m := ComputeRunMetrics(7, 10000, 3000, floatPtr(155), 270)
	if m.RunID != 7 {
		t.Errorf("RunID = %v, want 7", m.RunID)
	}
	if !almostEqual(m.Pace, 300, 0.01) {
		t.Errorf("Pace = %v, want 300", m.Pace)
	}
	if !almostEqual(m.NormalizedPace, 294, 0.01) {
		t.Errorf("NormalizedPace = %v, want 294", m.NormalizedPace)
	}
	wantIF := 270.0 / 294.0
	if !almostEqual(m.IntensityFactor, wantIF, 0.001) {
		t.Errorf("IntensityFactor = %v, want %v", m.IntensityFactor, wantIF)
	}
	wantTSS := (3000.0 / 3600.0) * wantIF * wantIF * 100
	if !almostEqual(m.TSS, wantTSS, 0.01) {
		t.Errorf("TSS = %v, want %v", m.TSS, wantTSS)
	}
	if m.DecouplingPct == nil {
		t.Error("expected decoupling for a 50min run with HR")
	}
	if m.VDOT == nil {
		t.Error("expected a VDOT estimate for a 50min run")
	}
}
