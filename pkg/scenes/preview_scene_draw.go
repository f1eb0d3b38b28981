package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/folio/pkg/components"
	"github.com/gonewx/folio/pkg/config"
	"github.com/gonewx/folio/pkg/ecs"
	"github.com/gonewx/folio/pkg/motion"
	"github.com/gonewx/folio/pkg/systems"
)

var (
	backgroundColor = color.RGBA{R: 17, G: 17, B: 27, A: 255}
	hudColor        = color.RGBA{R: 9, G: 9, B: 11, A: 235}
)

// pulsePeriod 悬停 pulse 的透明度周期（秒）
const pulsePeriod = 2.0

const hudHelp = "Tab section  1-6 entrance  H hover  S scroll  P preview  R/Shift+R reset  Space replay  C E [ ] particles"

// elementRect 计算元素的屏幕矩形
// 位移后绕中心缩放；rotateX/rotateY 按 cos 压缩高度/宽度，近似翻转
func elementRect(b *components.BoundsComponent, fr motion.Frame, scroll float64) (x, y, w, h float64) {
	w = b.Width * fr.Scale * math.Abs(math.Cos(fr.RotateY*math.Pi/180))
	h = b.Height * fr.Scale * math.Abs(math.Cos(fr.RotateX*math.Pi/180))
	cx := b.X + b.Width/2 + fr.X
	cy := b.Y + b.Height/2 + fr.Y - scroll
	return cx - w/2, cy - h/2, w, h
}

// elementAlpha 返回帧的绘制透明度，pulse 时随时间在 [0.5, 1] 倍之间起伏
func elementAlpha(fr motion.Frame, elapsed float64) float64 {
	a := min(max(fr.Opacity, 0), 1)
	if fr.Pulse {
		a *= 0.75 + 0.25*math.Cos(2*math.Pi*elapsed/pulsePeriod)
	}
	return a
}

func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha * 255)}
}

// Draw 绘制粒子层、区块卡片和底部 HUD
func (s *PreviewScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if s.particles != nil {
		if s.renderer == nil {
			s.renderer = systems.NewParticleRenderer()
		}
		s.renderer.Draw(screen, s.particles.System)
	}

	s.drawElements(screen)
	s.drawHUD(screen)
}

func (s *PreviewScene) drawElements(screen *ebiten.Image) {
	viewH := viewportHeight()
	active := s.ActiveSection()

	for _, id := range ecs.GetEntitiesWith2[*components.SectionCardComponent, *components.AnimatedElementComponent](s.em) {
		card, _ := ecs.GetComponent[*components.SectionCardComponent](s.em, id)
		anim, _ := ecs.GetComponent[*components.AnimatedElementComponent](s.em, id)
		bounds, ok := ecs.GetComponent[*components.BoundsComponent](s.em, id)
		if !ok {
			continue
		}

		x, y, w, h := elementRect(bounds, anim.Frame, s.scroll)
		if y+h < 0 || y > viewH || w <= 0 || h <= 0 {
			continue
		}
		alpha := elementAlpha(anim.Frame, s.elapsed)
		if alpha <= 0.01 {
			continue
		}

		fill := s.itemColor
		if card.IsCard() {
			fill = s.cardColor
		}
		if anim.Frame.Shadow {
			vector.DrawFilledRect(screen, float32(x+4), float32(y+6), float32(w), float32(h), color.NRGBA{A: uint8(alpha * 90)}, true)
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), withAlpha(fill, alpha), true)

		if card.IsCard() && card.SectionID == active {
			vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, withAlpha(s.accentColor, alpha), true)
		}
		if alpha > 0.5 {
			label := card.Title
			if !card.IsCard() {
				label = fmt.Sprintf("%s item %d", card.Title, card.Index+1)
			}
			ebitenutil.DebugPrintAt(screen, label, int(x)+8, int(y)+6)
		}
	}
}

func (s *PreviewScene) drawHUD(screen *ebiten.Image) {
	top := viewportHeight()
	vector.DrawFilledRect(screen, 0, float32(top), config.WindowWidth, config.HUDHeight, hudColor, false)

	section := s.ActiveSection()
	anims := s.store.GetSectionAnimations(section)
	playing := ""
	if s.motion.Playing(section) {
		playing = " (playing)"
	}
	line1 := fmt.Sprintf("[%s]%s entrance %s/%s %.1fs %s  hover %s  scroll %s  preview %s",
		section, playing,
		anims.Entrance.Type, anims.Entrance.Direction, anims.Entrance.Duration, anims.Entrance.Curve,
		onOff(anims.Hover.Enabled), onOff(anims.Scroll.Enabled), onOff(s.store.PreviewMode()))
	ebitenutil.DebugPrintAt(screen, line1, 10, int(top)+6)

	line2 := s.status
	if line2 == "" {
		line2 = hudHelp
	}
	ebitenutil.DebugPrintAt(screen, line2, 10, int(top)+22)

	if s.particles != nil {
		cfg := s.particles.System.Config()
		info := fmt.Sprintf("particles %s x%d %s  %.0f fps", cfg.Style, cfg.ParticleCount, s.particles.System.State(), ebiten.ActualFPS())
		ebitenutil.DebugPrintAt(screen, info, 10, int(top)+38)
	}
}
