package motion

import (
	"math"
	"testing"

	"github.com/gonewx/folio/internal/animation"
)

func val(t *testing.T, name string, p *float64) float64 {
	t.Helper()
	if p == nil {
		t.Fatalf("%s not set", name)
	}
	return *p
}

func scrollSection(typ animation.Type, dir animation.Direction, curve animation.Curve) animation.SectionAnimations {
	s := animation.DefaultSectionAnimations()
	s.Scroll = animation.Config{Type: typ, Direction: dir, Duration: 0.6, Delay: 0.1, Curve: curve, Enabled: true}
	return s
}

// TestResolveScrollSlideLeft 滚动 slide/left：视口外 x=+50，视口内 x=0
func TestResolveScrollSlideLeft(t *testing.T) {
	anims := scrollSection(animation.TypeSlide, animation.DirectionLeft, animation.CurveEaseOut)

	out := Resolve(anims, Input{InView: false})
	if out.Source != SourceScroll {
		t.Fatalf("Source = %v, want scroll", out.Source)
	}
	if x := val(t, "initial x", out.Animate.X); x != 50 {
		t.Errorf("out of view x = %v, want 50", x)
	}
	if o := val(t, "initial opacity", out.Animate.Opacity); o != 0 {
		t.Errorf("out of view opacity = %v, want 0", o)
	}

	in := Resolve(anims, Input{InView: true})
	if x := val(t, "target x", in.Animate.X); x != 0 {
		t.Errorf("in view x = %v, want 0", x)
	}
	if o := val(t, "target opacity", in.Animate.Opacity); o != 1 {
		t.Errorf("in view opacity = %v, want 1", o)
	}
	if in.Transition.Duration != 0.6 || in.Transition.Delay != 0.1 || in.Transition.Ease != animation.EaseOut {
		t.Errorf("transition = %+v", in.Transition)
	}
}

func TestResolveSlideDirections(t *testing.T) {
	tests := []struct {
		dir   animation.Direction
		wantX *float64
		wantY *float64
	}{
		{animation.DirectionUp, nil, f(50)},
		{animation.DirectionDown, nil, f(-50)},
		{animation.DirectionLeft, f(50), nil},
		{animation.DirectionRight, f(-50), nil},
		{animation.DirectionNone, nil, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			m := Resolve(scrollSection(animation.TypeSlide, tt.dir, animation.CurveLinear), Input{})
			check := func(name string, got, want *float64) {
				if (got == nil) != (want == nil) {
					t.Fatalf("%s: got %v, want %v", name, got, want)
				}
				if got != nil && *got != *want {
					t.Errorf("%s = %v, want %v", name, *got, *want)
				}
			}
			check("x", m.Initial.X, tt.wantX)
			check("y", m.Initial.Y, tt.wantY)
		})
	}
}

// TestResolveSpringCurve spring 曲线忽略 duration，使用 150/20
func TestResolveSpringCurve(t *testing.T) {
	m := Resolve(scrollSection(animation.TypeFade, animation.DirectionNone, animation.CurveSpring), Input{InView: true})

	if m.Transition.Spring == nil {
		t.Fatal("spring transition not set")
	}
	if m.Transition.Spring.Stiffness != 150 || m.Transition.Spring.Damping != 20 {
		t.Errorf("spring = %+v, want 150/20", *m.Transition.Spring)
	}
	if m.Transition.Duration != 0 {
		t.Errorf("Duration = %v, want ignored (0)", m.Transition.Duration)
	}
	if m.Transition.Delay != 0.1 {
		t.Errorf("Delay = %v, want 0.1", m.Transition.Delay)
	}
}

func TestEaseFor(t *testing.T) {
	tests := []struct {
		curve animation.Curve
		want  string
	}{
		{animation.CurveLinear, "linear"},
		{animation.CurveEase, "ease-in-out"},
		{animation.CurveEaseInOut, "ease-in-out"},
		{animation.CurveEaseIn, "ease-in"},
		{animation.CurveEaseOut, "ease-out"},
	}
	for _, tt := range tests {
		if got := EaseFor(tt.curve); got != tt.want {
			t.Errorf("EaseFor(%q) = %q, want %q", tt.curve, got, tt.want)
		}
	}
	if _, ok := SpringFor(animation.CurveEase); ok {
		t.Error("SpringFor(ease) should not return a spring")
	}
}

func TestResolveZoom(t *testing.T) {
	in := Resolve(scrollSection(animation.TypeZoom, animation.DirectionIn, animation.CurveEase), Input{})
	if s := val(t, "scale", in.Initial.Scale); s != 0.8 {
		t.Errorf("zoom in initial scale = %v, want 0.8", s)
	}
	out := Resolve(scrollSection(animation.TypeZoom, animation.DirectionUp, animation.CurveEase), Input{InView: true})
	if s := val(t, "scale", out.Initial.Scale); s != 1.2 {
		t.Errorf("zoom other initial scale = %v, want 1.2", s)
	}
	if s := val(t, "target scale", out.Animate.Scale); s != 1 {
		t.Errorf("zoom target scale = %v, want 1", s)
	}
}

// TestScrollPriority 滚动动画优先于入场动画
func TestScrollPriority(t *testing.T) {
	anims := scrollSection(animation.TypeFade, animation.DirectionUp, animation.CurveEaseOut)
	anims.Entrance.Type = animation.TypeSlide

	m := Resolve(anims, Input{HasEntered: true, InView: false})
	if m.Source != SourceScroll {
		t.Fatalf("Source = %v, want scroll", m.Source)
	}
	if m.Shown {
		t.Error("scroll motion shown while out of view")
	}

	anims.Scroll.Type = animation.TypeNone
	m = Resolve(anims, Input{})
	if m.Source != SourceEntrance {
		t.Errorf("Source = %v, want entrance when scroll type is none", m.Source)
	}
}

func TestResolveEntrance(t *testing.T) {
	anims := animation.DefaultSectionAnimations()

	hidden := Resolve(anims, Input{ExtraDelay: 0.3})
	if hidden.Source != SourceEntrance || hidden.Shown {
		t.Fatalf("got source=%v shown=%v, want hidden entrance", hidden.Source, hidden.Shown)
	}
	if math.Abs(hidden.Transition.Delay-0.5) > 1e-9 {
		t.Errorf("Delay = %v, want 0.2 + 0.3", hidden.Transition.Delay)
	}

	// 已进入过视口的元素保持可见
	entered := Resolve(anims, Input{HasEntered: true, InView: false})
	if !entered.Shown {
		t.Error("entered element hidden again")
	}

	ungated := Resolve(anims, Input{Ungated: true})
	if !ungated.Shown {
		t.Error("ungated entrance not shown immediately")
	}
}

func TestResolveFlip(t *testing.T) {
	tests := []struct {
		dir     animation.Direction
		rotateX *float64
		rotateY *float64
	}{
		{animation.DirectionUp, f(90), nil},
		{animation.DirectionDown, f(-90), nil},
		{animation.DirectionLeft, nil, f(-90)},
		{animation.DirectionRight, nil, f(90)},
	}
	for _, tt := range tests {
		anims := animation.DefaultSectionAnimations()
		anims.Entrance.Type = animation.TypeFlip
		anims.Entrance.Direction = tt.dir
		m := Resolve(anims, Input{})

		if tt.rotateX != nil && (m.Initial.RotateX == nil || *m.Initial.RotateX != *tt.rotateX) {
			t.Errorf("%s: rotateX = %v, want %v", tt.dir, m.Initial.RotateX, *tt.rotateX)
		}
		if tt.rotateY != nil && (m.Initial.RotateY == nil || *m.Initial.RotateY != *tt.rotateY) {
			t.Errorf("%s: rotateY = %v, want %v", tt.dir, m.Initial.RotateY, *tt.rotateY)
		}
		if m.Initial.Opacity == nil || *m.Initial.Opacity != 0 {
			t.Errorf("%s: flip should start transparent", tt.dir)
		}
	}
}

// TestResolveBounce bounce 使用多关键帧并覆盖为 300/15 弹簧
func TestResolveBounce(t *testing.T) {
	anims := animation.DefaultSectionAnimations()
	anims.Entrance.Type = animation.TypeBounce
	anims.Entrance.Curve = animation.CurveLinear

	m := Resolve(anims, Input{InView: true})
	want := []float64{0, -20, 0, -10, 0, -5, 0}
	if len(m.Target.YKeyframes) != len(want) {
		t.Fatalf("YKeyframes = %v, want %v", m.Target.YKeyframes, want)
	}
	for i := range want {
		if m.Target.YKeyframes[i] != want[i] {
			t.Errorf("YKeyframes[%d] = %v, want %v", i, m.Target.YKeyframes[i], want[i])
		}
	}
	if m.Transition.Spring == nil || m.Transition.Spring.Stiffness != 300 || m.Transition.Spring.Damping != 15 {
		t.Errorf("bounce spring = %+v", m.Transition.Spring)
	}
	if m.Transition.Ease != "" {
		t.Errorf("bounce ease = %q, want overridden", m.Transition.Ease)
	}
	if val(t, "initial opacity", m.Initial.Opacity) != 0 || val(t, "target opacity", m.Target.Opacity) != 1 {
		t.Error("bounce should fade in")
	}

	// 关键帧是副本
	m.Target.YKeyframes[1] = 99
	if BounceKeyframes[1] != -20 {
		t.Error("Resolve leaked BounceKeyframes backing array")
	}
}

// TestResolveStatic 入场与滚动都禁用时：不透明度 1，无变换
func TestResolveStatic(t *testing.T) {
	anims := animation.DefaultSectionAnimations()
	anims.Entrance.Enabled = false

	m := Resolve(anims, Input{})
	if m.Source != SourceNone || !m.Shown {
		t.Fatalf("got source=%v shown=%v", m.Source, m.Shown)
	}
	if FrameOf(m.Animate) != IdentityFrame {
		t.Errorf("static frame = %+v, want identity", FrameOf(m.Animate))
	}
}

func TestResolveHover(t *testing.T) {
	tests := []struct {
		name    string
		typ     animation.Type
		dir     animation.Direction
		opacity *float64
		scale   *float64
		y       *float64
		pulse   bool
	}{
		{"fade in", animation.TypeFade, animation.DirectionIn, f(1), nil, nil, false},
		{"fade other", animation.TypeFade, animation.DirectionUp, f(0.7), nil, nil, false},
		{"scale up", animation.TypeScale, animation.DirectionUp, nil, f(1.05), nil, false},
		{"scale other", animation.TypeScale, animation.DirectionDown, nil, f(0.95), nil, false},
		{"zoom default direction", animation.TypeZoom, animation.DirectionNone, nil, f(1.05), nil, false},
		{"zoom ignores direction", animation.TypeZoom, animation.DirectionDown, nil, f(1.05), nil, false},
		{"lift", animation.TypeLift, animation.DirectionNone, nil, nil, f(-5), false},
		{"pulse", animation.TypePulse, animation.DirectionNone, nil, nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anims := animation.DefaultSectionAnimations()
			anims.Hover = animation.Config{Type: tt.typ, Direction: tt.dir, Duration: 0.3, Delay: 0.4, Curve: animation.CurveEaseIn, Enabled: true}

			m := Resolve(anims, Input{})
			if m.Hover == nil {
				t.Fatal("hover not resolved")
			}
			h := m.Hover
			if h.Pulse != tt.pulse {
				t.Errorf("Pulse = %v, want %v", h.Pulse, tt.pulse)
			}
			for _, c := range []struct {
				name      string
				got, want *float64
			}{{"opacity", h.Style.Opacity, tt.opacity}, {"scale", h.Style.Scale, tt.scale}, {"y", h.Style.Y, tt.y}} {
				if (c.got == nil) != (c.want == nil) {
					t.Fatalf("%s: got %v, want %v", c.name, c.got, c.want)
				}
				if c.got != nil && *c.got != *c.want {
					t.Errorf("%s = %v, want %v", c.name, *c.got, *c.want)
				}
			}
			if tt.typ == animation.TypeLift && h.Style.BoxShadow == "" {
				t.Error("lift should add a shadow")
			}
			if h.Transition.Delay != 0 {
				t.Errorf("hover delay = %v, want 0", h.Transition.Delay)
			}
			if h.Transition.Duration != 0.3 || h.Transition.Ease != animation.EaseIn {
				t.Errorf("hover transition = %+v", h.Transition)
			}
		})
	}

	disabled := animation.DefaultSectionAnimations()
	if Resolve(disabled, Input{}).Hover != nil {
		t.Error("disabled hover resolved")
	}
}
