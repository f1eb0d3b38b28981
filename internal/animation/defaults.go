package animation

// 默认动画配置，只通过 DefaultSectionAnimations 的拷贝对外暴露
// 入场动画默认启用（fade/up），悬停和滚动动画默认禁用
var (
	defaultEntrance = Config{
		Type:      TypeFade,
		Direction: DirectionUp,
		Duration:  0.5,
		Delay:     0.2,
		Curve:     CurveEaseOut,
		Enabled:   true,
	}

	defaultHover = Config{
		Type:      TypeZoom,
		Direction: DirectionNone,
		Duration:  0.3,
		Delay:     0,
		Curve:     CurveEaseOut,
		Enabled:   false,
	}

	defaultScroll = Config{
		Type:      TypeFade,
		Direction: DirectionUp,
		Duration:  0.5,
		Delay:     0,
		Curve:     CurveEaseOut,
		Enabled:   false,
	}
)

// DefaultSectionAnimations 返回一个新的默认三元组（值拷贝，调用方可随意修改）
func DefaultSectionAnimations() SectionAnimations {
	return SectionAnimations{
		Entrance: defaultEntrance,
		Hover:    defaultHover,
		Scroll:   defaultScroll,
	}
}

// defaultPreviewDuration 配置时长为 0 时使用的预览时长（秒）
const defaultPreviewDuration = 0.5

// previewTail 预览结束后额外保留的时间（秒）
const previewTail = 0.5

// PreviewPlayDuration 返回预览一次动画所需的建议时长（秒）
//
// 仅用于 UI 重置"正在播放"标志，不会被任何调度器强制执行。
func PreviewPlayDuration(cfg Config) float64 {
	d := cfg.Duration
	if d <= 0 {
		d = defaultPreviewDuration
	}
	return d + previewTail
}

// Option 可选值及其显示标签
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// OptionSet 动画编辑器中可选的类型、方向和曲线
type OptionSet struct {
	Types      []Option `json:"types" yaml:"types"`
	Directions []Option `json:"directions" yaml:"directions"`
	Curves     []Option `json:"curves" yaml:"curves"`
}

// Options 返回编辑器使用的选项列表
func Options() OptionSet {
	return OptionSet{
		Types: []Option{
			{Value: string(TypeFade), Label: "Fade"},
			{Value: string(TypeSlide), Label: "Slide"},
			{Value: string(TypeZoom), Label: "Zoom"},
			{Value: string(TypeFlip), Label: "Flip"},
			{Value: string(TypeBounce), Label: "Bounce"},
			{Value: string(TypeNone), Label: "None"},
		},
		Directions: []Option{
			{Value: string(DirectionUp), Label: "Up"},
			{Value: string(DirectionDown), Label: "Down"},
			{Value: string(DirectionLeft), Label: "Left"},
			{Value: string(DirectionRight), Label: "Right"},
			{Value: string(DirectionNone), Label: "None"},
		},
		Curves: []Option{
			{Value: string(CurveLinear), Label: "Linear"},
			{Value: string(CurveEase), Label: "Ease"},
			{Value: string(CurveEaseIn), Label: "Ease In"},
			{Value: string(CurveEaseOut), Label: "Ease Out"},
			{Value: string(CurveEaseInOut), Label: "Ease In Out"},
			{Value: string(CurveSpring), Label: "Spring"},
		},
	}
}

// EntranceTypes 入场动画可循环切换的类型顺序
var EntranceTypes = []Type{TypeFade, TypeSlide, TypeZoom, TypeFlip, TypeBounce, TypeNone}
