package animation

import (
	"math"
	"math/rand"
)

// Ease names understood by Transition sampling.
const (
	EaseLinear = "linear"
	EaseIn     = "ease-in"
	EaseOut    = "ease-out"
	EaseInOut  = "ease-in-out"
)

// Keyframe is a single (time, value) pair of a track. Time is normalized 0-1.
type Keyframe struct {
	Time  float64
	Value float64
}

// EvenKeyframes spreads values evenly over normalized time 0..1.
func EvenKeyframes(values []float64) []Keyframe {
	if len(values) == 0 {
		return nil
	}
	if len(values) == 1 {
		return []Keyframe{{Time: 0, Value: values[0]}}
	}
	keys := make([]Keyframe, len(values))
	last := float64(len(values) - 1)
	for i, v := range values {
		keys[i] = Keyframe{Time: float64(i) / last, Value: v}
	}
	return keys
}

// ApplyEase maps normalized progress t (0-1) through the named easing curve.
// Unknown names use linear.
func ApplyEase(ease string, t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	switch ease {
	case EaseIn:
		return t * t * t
	case EaseOut:
		return 1 - math.Pow(1-t, 3)
	case EaseInOut:
		// easeInOutCubic
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	default:
		return t
	}
}

// EvaluateKeyframes calculates the interpolated value at time t (0-1)
// using the provided keyframes and easing name.
//
// Parameters:
//   - keyframes: Array of keyframes (must be sorted by Time)
//   - t: Normalized time (0-1)
//   - ease: easing applied within each keyframe interval
func EvaluateKeyframes(keyframes []Keyframe, t float64, ease string) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	t = math.Max(0, math.Min(1, t))

	if t < keyframes[0].Time {
		return keyframes[0].Value
	}

	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]

		if t >= k0.Time && t <= k1.Time {
			duration := k1.Time - k0.Time
			if duration <= 0 {
				return k0.Value
			}
			ratio := ApplyEase(ease, (t-k0.Time)/duration)
			return k0.Value + ratio*(k1.Value-k0.Value)
		}
	}

	return keyframes[len(keyframes)-1].Value
}

// Spring is a damped harmonic oscillator with unit mass.
type Spring struct {
	Stiffness float64 `json:"stiffness" yaml:"stiffness"`
	Damping   float64 `json:"damping" yaml:"damping"`
}

// 弹簧积分参数
const (
	springStep      = 1.0 / 240.0 // 积分步长（秒）
	springRestDelta = 0.001       // 位移阈值
	springRestSpeed = 0.01        // 速度阈值
	springMaxTime   = 10.0        // 最长模拟时间（秒）
)

// Progress returns the spring's normalized progress (0 at rest start,
// settling at 1) after elapsed seconds. It may overshoot 1.
func (s Spring) Progress(elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	if s.Stiffness <= 0 {
		return 1
	}
	x, v := 0.0, 0.0
	for t := 0.0; t < elapsed; t += springStep {
		dt := math.Min(springStep, elapsed-t)
		a := s.Stiffness*(1-x) - s.Damping*v
		v += a * dt
		x += v * dt
	}
	return x
}

// SettleTime returns the time in seconds until the spring comes to rest.
func (s Spring) SettleTime() float64 {
	if s.Stiffness <= 0 {
		return 0
	}
	x, v := 0.0, 0.0
	for t := 0.0; t < springMaxTime; t += springStep {
		a := s.Stiffness*(1-x) - s.Damping*v
		v += a * springStep
		x += v * springStep
		if math.Abs(1-x) < springRestDelta && math.Abs(v) < springRestSpeed {
			return t + springStep
		}
	}
	return springMaxTime
}

// RandomInRange returns a random float64 in the range [min, max].
func RandomInRange(r *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	if r == nil {
		return min + rand.Float64()*(max-min)
	}
	return min + r.Float64()*(max-min)
}
