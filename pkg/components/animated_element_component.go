package components

import "github.com/gonewx/folio/pkg/motion"

// AnimatedElementComponent 让实体参与分区动画。
//
// Element 保存视口与悬停信号，Timeline 把解析后的 Motion 采样为逐帧状态；
// Frame 是 MotionSystem 最近一次写入的结果，供渲染读取。
type AnimatedElementComponent struct {
	Element  *motion.Element
	Timeline motion.Timeline
	Motion   motion.Motion
	Frame    motion.Frame
}

// NewAnimatedElementComponent 创建绑定到分区的动画组件
func NewAnimatedElementComponent(sectionID string, extraDelay float64) *AnimatedElementComponent {
	return &AnimatedElementComponent{
		Element: motion.NewElement(sectionID, extraDelay),
		Frame:   motion.IdentityFrame,
	}
}
