package animation

import (
	"math"
	"math/rand"
	"testing"
)

func TestApplyEase_Endpoints(t *testing.T) {
	for _, ease := range []string{EaseLinear, EaseIn, EaseOut, EaseInOut, "unknown"} {
		if got := ApplyEase(ease, 0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", ease, got)
		}
		if got := ApplyEase(ease, 1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s(1) = %v, want 1", ease, got)
		}
	}
	if got := ApplyEase(EaseInOut, 0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("ease-in-out(0.5) = %v, want 0.5", got)
	}
	if ApplyEase(EaseIn, 0.5) >= 0.5 {
		t.Error("ease-in should lag linear at midpoint")
	}
	if ApplyEase(EaseOut, 0.5) <= 0.5 {
		t.Error("ease-out should lead linear at midpoint")
	}
	// 超出范围会被截断
	if got := ApplyEase(EaseLinear, 2); got != 1 {
		t.Errorf("clamp: got %v, want 1", got)
	}
}

func TestEvaluateKeyframes(t *testing.T) {
	keys := EvenKeyframes([]float64{0, -20, 0, -10, 0, -5, 0})
	if len(keys) != 7 {
		t.Fatalf("got %d keyframes, want 7", len(keys))
	}
	if keys[6].Time != 1 {
		t.Errorf("last keyframe time = %v, want 1", keys[6].Time)
	}

	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{1.0 / 6.0, -20},
		{1.0 / 12.0, -10},
		{1, 0},
	}
	for _, tt := range tests {
		got := EvaluateKeyframes(keys, tt.t, EaseLinear)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EvaluateKeyframes(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}

	if EvaluateKeyframes(nil, 0.5, EaseLinear) != 0 {
		t.Error("empty keyframes should evaluate to 0")
	}
	if EvaluateKeyframes([]Keyframe{{Time: 0, Value: 3}}, 0.5, EaseLinear) != 3 {
		t.Error("single keyframe should evaluate to its value")
	}
}

func TestSpringSettles(t *testing.T) {
	s := Spring{Stiffness: 150, Damping: 20}
	settle := s.SettleTime()
	if settle <= 0 || settle >= springMaxTime {
		t.Fatalf("SettleTime = %v", settle)
	}
	if p := s.Progress(settle + 0.5); math.Abs(p-1) > 0.01 {
		t.Errorf("Progress after settle = %v, want ~1", p)
	}
	if s.Progress(0) != 0 {
		t.Error("Progress(0) should be 0")
	}

	// 低阻尼弹簧会过冲
	bouncy := Spring{Stiffness: 300, Damping: 5}
	overshoot := false
	for e := 0.0; e < 1; e += 0.01 {
		if bouncy.Progress(e) > 1 {
			overshoot = true
			break
		}
	}
	if !overshoot {
		t.Error("under-damped spring never overshoots")
	}
}

func TestRandomInRange(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		v := RandomInRange(r, 2, 4)
		if v < 2 || v > 4 {
			t.Fatalf("value %v out of range", v)
		}
	}
	if RandomInRange(r, 5, 5) != 5 {
		t.Error("degenerate range should return min")
	}
}
