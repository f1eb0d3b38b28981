package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/folio/internal/animation"
	"github.com/gonewx/folio/pkg/components"
	"github.com/gonewx/folio/pkg/config"
	"github.com/gonewx/folio/pkg/ecs"
	"github.com/gonewx/folio/pkg/store"
	"github.com/gonewx/folio/pkg/systems"
	"github.com/gonewx/folio/pkg/utils"
)

// statusDuration HUD 状态提示的显示时长（秒）
const statusDuration = 2.5

// itemTop 卡片内第一行子元素相对卡片顶部的偏移
const itemTop = 48.0

// itemGap 子元素行间距
const itemGap = 8.0

// entranceKeys 数字键 1-6 依次对应 animation.EntranceTypes
var entranceKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
}

// PreviewConfig 预览场景依赖
type PreviewConfig struct {
	Store     *store.AnimationStore
	Particles *systems.ParticleLayer
	// Input 为 nil 时使用 Ebitengine 输入
	Input   utils.InputSource
	Presets config.ParticlePresets
	// Section 初始选中的区块，为空时沿用存储中的 activeSection
	Section string
	// Theme 卡片配色主题名
	Theme string
}

// PreviewScene lays out the portfolio sections as cards, scrolls them
// through a viewport and lets the user edit each section's animations with
// the keyboard while the particle layer runs behind.
type PreviewScene struct {
	em        *ecs.EntityManager
	store     *store.AnimationStore
	motion    *systems.MotionSystem
	particles *systems.ParticleLayer
	renderer  *systems.ParticleRenderer
	input     utils.InputSource

	presets     config.ParticlePresets
	presetNames []string
	presetIndex int

	sections []config.PreviewSection
	active   int

	scroll    float64
	maxScroll float64
	elapsed   float64

	cardColor   color.RGBA
	itemColor   color.RGBA
	accentColor color.RGBA

	status    string
	statusTTL float64
}

// NewPreviewScene builds the card entities and subscribes the motion system
// to the store.
func NewPreviewScene(cfg PreviewConfig) *PreviewScene {
	input := cfg.Input
	if input == nil {
		input = utils.NewEbitenInput()
	}

	s := &PreviewScene{
		em:          ecs.NewEntityManager(),
		store:       cfg.Store,
		particles:   cfg.Particles,
		input:       input,
		presets:     cfg.Presets,
		presetNames: cfg.Presets.Names(),
		presetIndex: -1,
		sections:    config.PreviewSections,
	}
	s.setTheme(cfg.Theme)
	s.buildLayout()
	s.motion = systems.NewMotionSystem(s.em, s.store)

	section := cfg.Section
	if section == "" {
		section = s.store.ActiveSection()
	}
	s.selectSection(s.sectionIndex(section))

	log.Printf("[PreviewScene] Created %d entities for %d sections", s.em.Count(), len(s.sections))
	return s
}

func (s *PreviewScene) setTheme(name string) {
	theme, ok := config.FindTheme(name)
	if !ok {
		log.Printf("[PreviewScene] Warning: unknown theme %q, using %s", name, config.DefaultTheme)
		theme, _ = config.FindTheme("")
	}
	primary, _ := config.ParseColor(theme.Primary)
	secondary, _ := config.ParseColor(theme.Secondary)
	s.accentColor = primary
	s.cardColor = color.RGBA{R: primary.R / 3, G: primary.G / 3, B: primary.B / 3, A: 255}
	s.itemColor = secondary
}

// buildLayout 为每个区块创建卡片实体及其子元素实体
// 子元素按序号错开 StaggerStep 秒
func (s *PreviewScene) buildLayout() {
	x := (config.WindowWidth - config.ContentWidth) / 2
	y := config.TopPadding

	for _, sec := range s.sections {
		card := s.em.CreateEntity()
		s.em.AddComponent(card, &components.BoundsComponent{X: x, Y: y, Width: config.ContentWidth, Height: config.CardHeight})
		s.em.AddComponent(card, &components.SectionCardComponent{SectionID: sec.ID, Title: sec.Title, Index: -1})
		s.em.AddComponent(card, components.NewAnimatedElementComponent(sec.ID, 0))

		for i := 0; i < sec.Items; i++ {
			item := s.em.CreateEntity()
			s.em.AddComponent(item, &components.BoundsComponent{
				X:      x + config.ItemPadding,
				Y:      y + itemTop + float64(i)*(config.ItemHeight+itemGap),
				Width:  config.ContentWidth - 2*config.ItemPadding,
				Height: config.ItemHeight,
			})
			s.em.AddComponent(item, &components.SectionCardComponent{SectionID: sec.ID, Title: sec.Title, Index: i})
			s.em.AddComponent(item, components.NewAnimatedElementComponent(sec.ID, float64(i+1)*config.StaggerStep))
		}

		y += config.CardHeight + config.CardSpacing
	}

	s.maxScroll = max(0, y-viewportHeight())
}

func viewportHeight() float64 {
	return config.WindowHeight - config.HUDHeight
}

func (s *PreviewScene) sectionIndex(id string) int {
	for i, sec := range s.sections {
		if sec.ID == id {
			return i
		}
	}
	return 0
}

func (s *PreviewScene) selectSection(i int) {
	n := len(s.sections)
	s.active = ((i % n) + n) % n
	s.store.SetActiveSection(s.ActiveSection())
}

// ActiveSection 返回当前编辑的区块 ID
func (s *PreviewScene) ActiveSection() string {
	return s.sections[s.active].ID
}

// Scroll 返回当前滚动位置
func (s *PreviewScene) Scroll() float64 {
	return s.scroll
}

// Status 返回 HUD 上的临时提示
func (s *PreviewScene) Status() string {
	return s.status
}

// Update 处理输入，推进动画
func (s *PreviewScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	if s.statusTTL > 0 {
		s.statusTTL -= deltaTime
		if s.statusTTL <= 0 {
			s.status = ""
		}
	}

	frame := s.input.Poll()
	s.handleKeys(frame)
	s.handleScroll(frame)
	if frame.JustPressed {
		s.handleClick(float64(frame.X), float64(frame.Y))
	}

	if s.particles != nil {
		s.particles.Resize(config.WindowWidth, config.WindowHeight)
	}

	inside := frame.X >= 0 && frame.X < config.WindowWidth && frame.Y >= 0 && frame.Y < int(viewportHeight())
	s.motion.Update(deltaTime,
		systems.Viewport{Top: s.scroll, Height: viewportHeight()},
		systems.Pointer{X: float64(frame.X), Y: float64(frame.Y) + s.scroll, Inside: inside},
	)
}

func (s *PreviewScene) handleKeys(f utils.InputFrame) {
	section := s.ActiveSection()
	anims := s.store.GetSectionAnimations(section)

	switch {
	case f.Pressed(ebiten.KeyP):
		on := s.store.TogglePreviewMode()
		s.setStatus(fmt.Sprintf("Preview mode %s", onOff(on)))
	case f.Pressed(ebiten.KeyR) && f.Shift:
		s.store.ResetAllAnimations()
		s.setStatus("All animations reset")
	case f.Pressed(ebiten.KeyR):
		s.store.ResetSectionAnimations(section)
		s.setStatus(fmt.Sprintf("%s animations reset", section))
	case f.Pressed(ebiten.KeyH):
		s.store.UpdateAnimationConfig(section, animation.KindHover, animation.Patch{Enabled: animation.Bool(!anims.Hover.Enabled)})
		s.setStatus(fmt.Sprintf("Hover %s", onOff(!anims.Hover.Enabled)))
	case f.Pressed(ebiten.KeyS):
		s.store.UpdateAnimationConfig(section, animation.KindScroll, animation.Patch{Enabled: animation.Bool(!anims.Scroll.Enabled)})
		s.setStatus(fmt.Sprintf("Scroll animation %s", onOff(!anims.Scroll.Enabled)))
	case f.Pressed(ebiten.KeySpace):
		s.motion.Replay(section)
		s.setStatus(fmt.Sprintf("Replaying %s (%.1fs)", section, animation.PreviewPlayDuration(anims.Entrance)))
	case f.Pressed(ebiten.KeyTab) && f.Shift:
		s.selectSection(s.active - 1)
	case f.Pressed(ebiten.KeyTab):
		s.selectSection(s.active + 1)
	}

	for i, typ := range animation.EntranceTypes {
		if i < len(entranceKeys) && f.Pressed(entranceKeys[i]) {
			s.store.UpdateAnimationConfig(section, animation.KindEntrance, animation.Patch{
				Type:    animation.TypeOf(typ),
				Enabled: animation.Bool(true),
			})
			s.setStatus(fmt.Sprintf("Entrance: %s", typ))
		}
	}

	s.handleParticleKeys(f)
}

func (s *PreviewScene) handleParticleKeys(f utils.InputFrame) {
	if s.particles == nil {
		return
	}
	cfg := s.particles.System.Config()

	switch {
	case f.Pressed(ebiten.KeyC):
		cfg.Style = cfg.Style.Next()
		s.setStatus(fmt.Sprintf("Particle style: %s", cfg.Style))
	case f.Pressed(ebiten.KeyE):
		cfg.Enabled = !cfg.Enabled
		s.setStatus(fmt.Sprintf("Particles %s", onOff(cfg.Enabled)))
	case f.Pressed(ebiten.KeyBracketRight), f.Pressed(ebiten.KeyBracketLeft):
		if len(s.presetNames) == 0 {
			return
		}
		step := 1
		if f.Pressed(ebiten.KeyBracketLeft) {
			step = -1
		}
		n := len(s.presetNames)
		s.presetIndex = ((s.presetIndex+step)%n + n) % n
		name := s.presetNames[s.presetIndex]
		cfg = s.presets[name]
		s.setStatus(fmt.Sprintf("Particle preset: %s", name))
	default:
		return
	}
	s.particles.Configure(cfg)
}

func (s *PreviewScene) handleScroll(f utils.InputFrame) {
	delta := -f.WheelY*config.ScrollStep - f.DragY
	switch {
	case f.Pressed(ebiten.KeyArrowDown):
		delta += config.ScrollStep
	case f.Pressed(ebiten.KeyArrowUp):
		delta -= config.ScrollStep
	case f.Pressed(ebiten.KeyPageDown):
		delta += viewportHeight()
	case f.Pressed(ebiten.KeyPageUp):
		delta -= viewportHeight()
	case f.Pressed(ebiten.KeyHome):
		delta = -s.scroll
	}
	s.scroll = min(max(s.scroll+delta, 0), s.maxScroll)
}

// handleClick 点击卡片选中对应区块（窗口坐标）
func (s *PreviewScene) handleClick(x, y float64) {
	if y >= viewportHeight() {
		return
	}
	for _, id := range ecs.GetEntitiesWith2[*components.SectionCardComponent, *components.BoundsComponent](s.em) {
		card, _ := ecs.GetComponent[*components.SectionCardComponent](s.em, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.em, id)
		if card.IsCard() && bounds.Contains(x, y+s.scroll) {
			s.selectSection(s.sectionIndex(card.SectionID))
			return
		}
	}
}

func (s *PreviewScene) setStatus(msg string) {
	s.status = msg
	s.statusTTL = statusDuration
	log.Printf("[PreviewScene] %s", msg)
}

// Close 取消存储订阅
func (s *PreviewScene) Close() {
	s.motion.Close()
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
