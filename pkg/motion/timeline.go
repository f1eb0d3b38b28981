package motion

import (
	"math"

	"github.com/gonewx/folio/internal/animation"
)

// Frame is a concrete visual state sampled from a motion.
type Frame struct {
	Opacity float64
	X       float64
	Y       float64
	Scale   float64
	RotateX float64 // degrees
	RotateY float64 // degrees
	Shadow  bool
	Pulse   bool
}

// IdentityFrame is the fully visible, untransformed frame.
var IdentityFrame = Frame{Opacity: 1, Scale: 1}

// FrameOf applies the set fields of a style on top of the identity frame.
func FrameOf(s Style) Frame {
	fr := IdentityFrame
	if s.Opacity != nil {
		fr.Opacity = *s.Opacity
	}
	if s.X != nil {
		fr.X = *s.X
	}
	if s.Y != nil {
		fr.Y = *s.Y
	}
	if s.Scale != nil {
		fr.Scale = *s.Scale
	}
	if s.RotateX != nil {
		fr.RotateX = *s.RotateX
	}
	if s.RotateY != nil {
		fr.RotateY = *s.RotateY
	}
	fr.Shadow = s.BoxShadow != ""
	return fr
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpFrame(a, b Frame, t float64) Frame {
	return Frame{
		Opacity: lerp(a.Opacity, b.Opacity, t),
		X:       lerp(a.X, b.X, t),
		Y:       lerp(a.Y, b.Y, t),
		Scale:   lerp(a.Scale, b.Scale, t),
		RotateX: lerp(a.RotateX, b.RotateX, t),
		RotateY: lerp(a.RotateY, b.RotateY, t),
		Shadow:  b.Shadow,
	}
}

// Progress returns the normalized progress of a transition after elapsed
// seconds, including its delay.
func (tr Transition) Progress(elapsed float64) float64 {
	e := elapsed - tr.Delay
	if e <= 0 {
		return 0
	}
	if tr.Spring != nil {
		return tr.Spring.Progress(e)
	}
	if tr.Duration <= 0 {
		return 1
	}
	return animation.ApplyEase(tr.Ease, e/tr.Duration)
}

// Length returns the total time in seconds a transition takes, including
// its delay.
func (tr Transition) Length() float64 {
	if tr.Spring != nil {
		return tr.Delay + tr.Spring.SettleTime()
	}
	return tr.Delay + math.Max(0, tr.Duration)
}

// Timeline samples a resolved motion over time. Whenever the motion's
// animated state or the hover state changes, the timeline starts a new
// transition from the frame currently shown.
type Timeline struct {
	motion  Motion
	started bool

	from    Frame
	to      Frame
	track   []animation.Keyframe // vertical keyframes (bounce)
	elapsed float64

	hovering     bool
	hoverFrom    float64
	hoverTo      float64
	hoverElapsed float64
}

// Apply feeds the latest resolved motion and hover state.
func (tl *Timeline) Apply(m Motion, hovering bool) {
	to := FrameOf(m.Animate)

	switch {
	case !tl.started:
		tl.from = FrameOf(m.Initial)
		tl.restart(m, to)
		tl.started = true
	case m.Source != tl.motion.Source || m.Shown != tl.motion.Shown || to != tl.to:
		tl.from = tl.base()
		tl.restart(m, to)
	default:
		tl.motion = m
	}

	if hovering != tl.hovering {
		tl.hoverFrom = tl.hoverBlend()
		tl.hovering = hovering
		tl.hoverTo = 0
		if hovering {
			tl.hoverTo = 1
		}
		tl.hoverElapsed = 0
	}
}

func (tl *Timeline) restart(m Motion, to Frame) {
	tl.motion = m
	tl.to = to
	tl.elapsed = 0
	tl.track = nil
	if m.Shown && len(m.Animate.YKeyframes) > 0 {
		tl.track = animation.EvenKeyframes(m.Animate.YKeyframes)
	}
}

// Replay restarts the current motion from its initial state.
func (tl *Timeline) Replay() {
	tl.from = FrameOf(tl.motion.Initial)
	tl.restart(tl.motion, tl.to)
}

// Advance moves the timeline forward by dt seconds.
func (tl *Timeline) Advance(dt float64) {
	tl.elapsed += dt
	tl.hoverElapsed += dt
}

// Playing reports whether the base transition is still running.
func (tl *Timeline) Playing() bool {
	return tl.started && tl.elapsed < tl.motion.Transition.Length()
}

func (tl *Timeline) base() Frame {
	if !tl.started {
		return IdentityFrame
	}
	p := tl.motion.Transition.Progress(tl.elapsed)
	fr := lerpFrame(tl.from, tl.to, p)

	if len(tl.track) > 0 {
		length := tl.motion.Transition.Length() - tl.motion.Transition.Delay
		t := 1.0
		if length > 0 {
			t = math.Max(0, (tl.elapsed-tl.motion.Transition.Delay)/length)
		}
		fr.Y = animation.EvaluateKeyframes(tl.track, t, animation.EaseLinear)
	}
	return fr
}

func (tl *Timeline) hoverBlend() float64 {
	if tl.motion.Hover == nil {
		return 0
	}
	p := tl.motion.Hover.Transition.Progress(tl.hoverElapsed)
	return lerp(tl.hoverFrom, tl.hoverTo, math.Min(1, p))
}

// Frame returns the visual state at the current time, with the hover style
// blended on top of the base motion.
func (tl *Timeline) Frame() Frame {
	fr := tl.base()

	h := tl.motion.Hover
	if h == nil {
		return fr
	}

	fr.Pulse = h.Pulse && tl.hovering
	blend := tl.hoverBlend()
	if blend <= 0 {
		return fr
	}

	if h.Style.Opacity != nil {
		fr.Opacity = lerp(fr.Opacity, *h.Style.Opacity, blend)
	}
	if h.Style.Scale != nil {
		fr.Scale = lerp(fr.Scale, fr.Scale*(*h.Style.Scale), blend)
	}
	if h.Style.Y != nil {
		fr.Y = lerp(fr.Y, fr.Y+(*h.Style.Y), blend)
	}
	if h.Style.BoxShadow != "" && blend >= 0.5 {
		fr.Shadow = true
	}
	return fr
}
