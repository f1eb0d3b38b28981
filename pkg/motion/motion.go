// Package motion resolves a section's animation descriptors into concrete
// motion records (initial state, target state, transition) for a rendering
// layer to apply.
//
// Resolution priority:
//  1. an active scroll animation drives the element;
//  2. otherwise the entrance animation drives it;
//  3. the hover animation is layered on top of whichever is active.
//
// If neither scroll nor entrance is active the element is rendered fully
// visible with no transform.
package motion

import (
	"github.com/gonewx/folio/internal/animation"
)

// Source identifies which descriptor drives the base motion.
type Source int

const (
	SourceNone Source = iota
	SourceScroll
	SourceEntrance
)

func (s Source) String() string {
	switch s {
	case SourceScroll:
		return "scroll"
	case SourceEntrance:
		return "entrance"
	default:
		return "none"
	}
}

// Motion constants.
const (
	SlideOffset     = 50.0 // px
	ZoomInScale     = 0.8  // zoom, direction "in"
	ZoomOutScale    = 1.2  // zoom, any other direction
	FlipAngle       = 90.0 // degrees
	HoverFadeIn     = 1.0  // hover fade, direction "in"
	HoverFadeOut    = 0.7  // hover fade, other directions
	HoverScaleUp    = 1.05 // hover zoom, or hover scale with direction "up"
	HoverScaleDown  = 0.95 // hover scale, other directions
	HoverLiftOffset = -5.0 // px
	HoverLiftShadow = "0 10px 25px -5px rgba(0, 0, 0, 0.1)"

	visibleOpacity   = 1.0
	hiddenOpacity    = 0.0
	identityScale    = 1.0
	identityRotation = 0.0
)

// BounceKeyframes is the vertical oscillation used by the bounce entrance.
var BounceKeyframes = []float64{0, -20, 0, -10, 0, -5, 0}

// Spring presets.
var (
	CurveSpring  = animation.Spring{Stiffness: 150, Damping: 20}
	BounceSpring = animation.Spring{Stiffness: 300, Damping: 15}
)

// Style is a set of optional visual properties. Nil fields are not animated.
type Style struct {
	Opacity    *float64  `json:"opacity,omitempty"`
	X          *float64  `json:"x,omitempty"`
	Y          *float64  `json:"y,omitempty"`
	Scale      *float64  `json:"scale,omitempty"`
	RotateX    *float64  `json:"rotateX,omitempty"`
	RotateY    *float64  `json:"rotateY,omitempty"`
	YKeyframes []float64 `json:"yKeyframes,omitempty"`
	BoxShadow  string    `json:"boxShadow,omitempty"`
}

// IsZero reports whether the style sets nothing.
func (s Style) IsZero() bool {
	return s.Opacity == nil && s.X == nil && s.Y == nil && s.Scale == nil &&
		s.RotateX == nil && s.RotateY == nil && len(s.YKeyframes) == 0 && s.BoxShadow == ""
}

// Transition describes how to move from one style to another.
//
// When Spring is non-nil the transition is physics driven and Duration is
// ignored.
type Transition struct {
	Ease     string            `json:"ease,omitempty"`
	Duration float64           `json:"duration"`
	Delay    float64           `json:"delay"`
	Spring   *animation.Spring `json:"spring,omitempty"`
}

// HoverMotion is the style applied only while the pointer is over the element.
type HoverMotion struct {
	Style      Style      `json:"style"`
	Transition Transition `json:"transition"`
	Pulse      bool       `json:"pulse,omitempty"` // CSS pulse instead of a transform
}

// Motion is the fully resolved motion for an element.
type Motion struct {
	Source     Source       `json:"source"`
	Initial    Style        `json:"initial"`
	Target     Style        `json:"target"`
	Animate    Style        `json:"animate"` // Target when shown, Initial otherwise
	Shown      bool         `json:"shown"`
	Transition Transition   `json:"transition"`
	Hover      *HoverMotion `json:"hover,omitempty"`
}

// Input carries the per-render signals from the hosting environment.
type Input struct {
	// ExtraDelay is added to the entrance delay (sibling staggering).
	ExtraDelay float64
	// InView reports that at least InViewThreshold of the element is visible.
	InView bool
	// HasEntered reports that the entrance animation has already triggered.
	HasEntered bool
	// Ungated starts the entrance immediately instead of waiting for InView.
	Ungated bool
}

// Resolve computes the motion for one element.
func Resolve(anims animation.SectionAnimations, in Input) Motion {
	var m Motion

	switch {
	case anims.Scroll.Active():
		m = resolveScroll(anims.Scroll, in)
	case anims.Entrance.Active():
		m = resolveEntrance(anims.Entrance, in)
	default:
		m = resolveStatic()
	}

	m.Hover = resolveHover(anims.Hover)
	return m
}

func resolveStatic() Motion {
	s := Style{Opacity: f(visibleOpacity)}
	return Motion{
		Source:  SourceNone,
		Initial: s,
		Target:  s,
		Animate: s,
		Shown:   true,
	}
}

func resolveScroll(cfg animation.Config, in Input) Motion {
	initial, target := baseStyles(cfg, false)
	m := Motion{
		Source:     SourceScroll,
		Initial:    initial,
		Target:     target,
		Shown:      in.InView,
		Transition: transitionFor(cfg, 0),
	}
	m.Animate = pick(m)
	return m
}

func resolveEntrance(cfg animation.Config, in Input) Motion {
	initial, target := baseStyles(cfg, true)
	tr := transitionFor(cfg, in.ExtraDelay)
	if cfg.Type == animation.TypeBounce {
		spring := BounceSpring
		tr.Spring = &spring
		tr.Ease = ""
		tr.Duration = 0
	}
	m := Motion{
		Source:     SourceEntrance,
		Initial:    initial,
		Target:     target,
		Shown:      in.Ungated || in.HasEntered || in.InView,
		Transition: tr,
	}
	m.Animate = pick(m)
	return m
}

func pick(m Motion) Style {
	if m.Shown {
		return m.Target
	}
	return m.Initial
}

// baseStyles maps type/direction to initial and target styles. flip and
// bounce are entrance-only; for scroll they fall back to a plain fade.
func baseStyles(cfg animation.Config, entrance bool) (initial, target Style) {
	initial = Style{Opacity: f(hiddenOpacity)}
	target = Style{Opacity: f(visibleOpacity)}

	switch cfg.Type {
	case animation.TypeSlide:
		switch cfg.Direction {
		case animation.DirectionUp:
			initial.Y, target.Y = f(SlideOffset), f(0)
		case animation.DirectionDown:
			initial.Y, target.Y = f(-SlideOffset), f(0)
		case animation.DirectionLeft:
			initial.X, target.X = f(SlideOffset), f(0)
		case animation.DirectionRight:
			initial.X, target.X = f(-SlideOffset), f(0)
		}
	case animation.TypeZoom:
		if cfg.Direction == animation.DirectionIn {
			initial.Scale = f(ZoomInScale)
		} else {
			initial.Scale = f(ZoomOutScale)
		}
		target.Scale = f(identityScale)
	case animation.TypeFlip:
		if !entrance {
			break
		}
		switch cfg.Direction {
		case animation.DirectionUp:
			initial.RotateX, target.RotateX = f(FlipAngle), f(identityRotation)
		case animation.DirectionDown:
			initial.RotateX, target.RotateX = f(-FlipAngle), f(identityRotation)
		case animation.DirectionLeft:
			initial.RotateY, target.RotateY = f(-FlipAngle), f(identityRotation)
		case animation.DirectionRight:
			initial.RotateY, target.RotateY = f(FlipAngle), f(identityRotation)
		}
	case animation.TypeBounce:
		if !entrance {
			break
		}
		initial.Y = f(0)
		target.YKeyframes = append([]float64(nil), BounceKeyframes...)
	}

	return initial, target
}

func resolveHover(cfg animation.Config) *HoverMotion {
	if !cfg.Active() {
		return nil
	}

	h := &HoverMotion{
		Transition: transitionFor(cfg, 0),
	}
	// 悬停不使用延迟
	h.Transition.Delay = 0

	switch cfg.Type {
	case animation.TypeFade:
		if cfg.Direction == animation.DirectionIn {
			h.Style.Opacity = f(HoverFadeIn)
		} else {
			h.Style.Opacity = f(HoverFadeOut)
		}
	case animation.TypeZoom:
		// 悬停 zoom 总是放大，与方向无关
		h.Style.Scale = f(HoverScaleUp)
	case animation.TypeScale:
		if cfg.Direction == animation.DirectionUp {
			h.Style.Scale = f(HoverScaleUp)
		} else {
			h.Style.Scale = f(HoverScaleDown)
		}
	case animation.TypeLift:
		h.Style.Y = f(HoverLiftOffset)
		h.Style.BoxShadow = HoverLiftShadow
	case animation.TypePulse:
		h.Pulse = true
	default:
		return nil
	}

	return h
}

// transitionFor maps a descriptor's timing fields to a Transition.
func transitionFor(cfg animation.Config, extraDelay float64) Transition {
	tr := Transition{
		Duration: cfg.Duration,
		Delay:    cfg.Delay + extraDelay,
	}
	if spring, ok := SpringFor(cfg.Curve); ok {
		tr.Spring = &spring
		tr.Duration = 0
		return tr
	}
	tr.Ease = EaseFor(cfg.Curve)
	return tr
}

// EaseFor maps a curve to an easing name. spring has no easing name.
func EaseFor(c animation.Curve) string {
	switch c {
	case animation.CurveLinear:
		return animation.EaseLinear
	case animation.CurveEase, animation.CurveEaseInOut:
		return animation.EaseInOut
	case animation.CurveEaseIn:
		return animation.EaseIn
	case animation.CurveEaseOut:
		return animation.EaseOut
	}
	return animation.EaseOut
}

// SpringFor returns the spring used by the spring curve.
func SpringFor(c animation.Curve) (animation.Spring, bool) {
	if c == animation.CurveSpring {
		return CurveSpring, true
	}
	return animation.Spring{}, false
}

func f(v float64) *float64 { return &v }
