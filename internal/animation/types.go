// Package animation provides the data model for per-section animation
// descriptors used by the portfolio preview.
//
// A section (e.g. "header", "skills") carries three independent descriptors:
// an entrance animation, a hover animation and a scroll animation. Values are
// plain data; the store in pkg/store owns them and pkg/motion turns them into
// concrete motion parameters.
package animation

// Type is the kind of motion an animation descriptor requests.
type Type string

// Entrance/scroll animation types.
const (
	TypeFade   Type = "fade"
	TypeSlide  Type = "slide"
	TypeZoom   Type = "zoom"
	TypeFlip   Type = "flip"
	TypeBounce Type = "bounce"
	TypeNone   Type = "none"
)

// Hover-only animation types (悬停专用类型).
const (
	TypeScale Type = "scale"
	TypeLift  Type = "lift"
	TypePulse Type = "pulse"
)

// Direction selects the axis/sign of a motion. It is meaningful only for
// slide, flip and zoom variants and ignored otherwise.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionNone  Direction = "none"

	// DirectionIn / DirectionOut are used by zoom and hover fade.
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Curve is the timing function of a transition.
type Curve string

const (
	CurveLinear    Curve = "linear"
	CurveEase      Curve = "ease"
	CurveEaseIn    Curve = "ease-in"
	CurveEaseOut   Curve = "ease-out"
	CurveEaseInOut Curve = "ease-in-out"
	CurveSpring    Curve = "spring"
)

// Kind identifies one of the three descriptors of a section.
type Kind string

const (
	KindEntrance Kind = "entrance"
	KindHover    Kind = "hover"
	KindScroll   Kind = "scroll"
)

// Valid reports whether k names one of the three descriptors.
func (k Kind) Valid() bool {
	switch k {
	case KindEntrance, KindHover, KindScroll:
		return true
	}
	return false
}

// Config is a single animation descriptor.
//
// Type == TypeNone or Enabled == false means no visual transform is applied.
type Config struct {
	Type      Type      `yaml:"type" json:"type"`
	Direction Direction `yaml:"direction" json:"direction"`
	Duration  float64   `yaml:"duration" json:"duration"` // 秒，> 0
	Delay     float64   `yaml:"delay" json:"delay"`       // 秒，>= 0
	Curve     Curve     `yaml:"curve" json:"curve"`
	Enabled   bool      `yaml:"enabled" json:"enabled"`
}

// Active reports whether the descriptor produces any motion.
func (c Config) Active() bool {
	return c.Enabled && c.Type != TypeNone && c.Type != ""
}

// SectionAnimations is the keyed triple stored per section.
type SectionAnimations struct {
	Entrance Config `yaml:"entrance" json:"entrance"`
	Hover    Config `yaml:"hover" json:"hover"`
	Scroll   Config `yaml:"scroll" json:"scroll"`
}

// Get returns the descriptor selected by kind. Unknown kinds return the
// entrance descriptor.
func (s SectionAnimations) Get(kind Kind) Config {
	switch kind {
	case KindHover:
		return s.Hover
	case KindScroll:
		return s.Scroll
	default:
		return s.Entrance
	}
}

// With returns a copy of s with the descriptor selected by kind replaced.
func (s SectionAnimations) With(kind Kind, cfg Config) SectionAnimations {
	switch kind {
	case KindHover:
		s.Hover = cfg
	case KindScroll:
		s.Scroll = cfg
	case KindEntrance:
		s.Entrance = cfg
	}
	return s
}

// Patch is a partial Config. Nil fields are left untouched by Apply.
type Patch struct {
	Type      *Type      `yaml:"type,omitempty" json:"type,omitempty"`
	Direction *Direction `yaml:"direction,omitempty" json:"direction,omitempty"`
	Duration  *float64   `yaml:"duration,omitempty" json:"duration,omitempty"`
	Delay     *float64   `yaml:"delay,omitempty" json:"delay,omitempty"`
	Curve     *Curve     `yaml:"curve,omitempty" json:"curve,omitempty"`
	Enabled   *bool      `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// Apply merges p into c field by field (last write wins) and returns the result.
func (c Config) Apply(p Patch) Config {
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Direction != nil {
		c.Direction = *p.Direction
	}
	if p.Duration != nil {
		c.Duration = *p.Duration
	}
	if p.Delay != nil {
		c.Delay = *p.Delay
	}
	if p.Curve != nil {
		c.Curve = *p.Curve
	}
	if p.Enabled != nil {
		c.Enabled = *p.Enabled
	}
	return c
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Type == nil && p.Direction == nil && p.Duration == nil &&
		p.Delay == nil && p.Curve == nil && p.Enabled == nil
}

// Patch builders, so callers can write animation.Patch{Enabled: animation.Bool(true)}.

func Bool(v bool) *bool { return &v }

func Float(v float64) *float64 { return &v }

func TypeOf(v Type) *Type { return &v }

func DirectionOf(v Direction) *Direction { return &v }

func CurveOf(v Curve) *Curve { return &v }
