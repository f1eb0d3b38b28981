package scenes

import (
	"context"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/folio/internal/animation"
	"github.com/gonewx/folio/pkg/components"
	"github.com/gonewx/folio/pkg/config"
	"github.com/gonewx/folio/pkg/ecs"
	"github.com/gonewx/folio/pkg/motion"
	"github.com/gonewx/folio/pkg/store"
	"github.com/gonewx/folio/pkg/systems"
	"github.com/gonewx/folio/pkg/utils"
)

const dt = 1.0 / 60.0

// scriptedInput 按顺序返回预设的输入帧，耗尽后返回空帧
type scriptedInput struct {
	frames []utils.InputFrame
}

func (in *scriptedInput) Poll() utils.InputFrame {
	if len(in.frames) == 0 {
		return utils.InputFrame{X: -1, Y: -1}
	}
	f := in.frames[0]
	in.frames = in.frames[1:]
	return f
}

func (in *scriptedInput) push(frames ...utils.InputFrame) {
	in.frames = append(in.frames, frames...)
}

func keys(k ...ebiten.Key) utils.InputFrame {
	return utils.InputFrame{X: -1, Y: -1, Keys: k}
}

func newTestScene(t *testing.T) (*PreviewScene, *scriptedInput, *store.AnimationStore) {
	t.Helper()
	st := store.NewAnimationStore(nil)
	in := &scriptedInput{}
	s := NewPreviewScene(PreviewConfig{Store: st, Input: in})
	t.Cleanup(s.Close)
	return s, in, st
}

func cardFrame(t *testing.T, s *PreviewScene, sectionID string) motion.Frame {
	t.Helper()
	for _, id := range ecs.GetEntitiesWith2[*components.SectionCardComponent, *components.AnimatedElementComponent](s.em) {
		card, _ := ecs.GetComponent[*components.SectionCardComponent](s.em, id)
		anim, _ := ecs.GetComponent[*components.AnimatedElementComponent](s.em, id)
		if card.IsCard() && card.SectionID == sectionID {
			return anim.Frame
		}
	}
	t.Fatalf("no card for %s", sectionID)
	return motion.Frame{}
}

func TestPreviewLayout(t *testing.T) {
	s, _, st := newTestScene(t)

	items := 0
	for _, sec := range config.PreviewSections {
		items += sec.Items
	}
	if want := len(config.PreviewSections) + items; s.em.Count() != want {
		t.Errorf("entities = %d, want %d", s.em.Count(), want)
	}
	if s.maxScroll <= 0 {
		t.Errorf("maxScroll = %v, content should overflow the viewport", s.maxScroll)
	}
	if s.ActiveSection() != "header" || st.ActiveSection() != "header" {
		t.Errorf("active = %s / %s, want header", s.ActiveSection(), st.ActiveSection())
	}
}

func TestPreviewInitialSection(t *testing.T) {
	st := store.NewAnimationStore(nil)
	s := NewPreviewScene(PreviewConfig{Store: st, Input: &scriptedInput{}, Section: "projects"})
	defer s.Close()

	if s.ActiveSection() != "projects" || !st.HasSection("projects") {
		t.Errorf("active = %s, store entry = %v", s.ActiveSection(), st.HasSection("projects"))
	}
}

func TestPreviewEntranceOnlyInView(t *testing.T) {
	s, _, _ := newTestScene(t)

	for i := 0; i < 60; i++ {
		s.Update(dt)
	}

	if fr := cardFrame(t, s, "header"); math.Abs(fr.Opacity-1) > 0.01 {
		t.Errorf("header opacity = %v, want 1 after entrance", fr.Opacity)
	}
	if fr := cardFrame(t, s, "contact"); fr.Opacity > 0.01 {
		t.Errorf("contact opacity = %v, want hidden until scrolled into view", fr.Opacity)
	}
}

func TestPreviewKeys(t *testing.T) {
	s, in, st := newTestScene(t)

	in.push(keys(ebiten.KeyP))
	s.Update(dt)
	if !st.PreviewMode() {
		t.Error("P did not enable preview mode")
	}

	in.push(keys(ebiten.KeyDigit2))
	s.Update(dt)
	if got := st.GetSectionAnimations("header").Entrance.Type; got != animation.TypeSlide {
		t.Errorf("entrance type = %s, want slide", got)
	}

	in.push(keys(ebiten.KeyH), keys(ebiten.KeyS))
	s.Update(dt)
	s.Update(dt)
	anims := st.GetSectionAnimations("header")
	if !anims.Hover.Enabled || !anims.Scroll.Enabled {
		t.Errorf("hover/scroll = %v/%v, want enabled", anims.Hover.Enabled, anims.Scroll.Enabled)
	}
	if s.Status() == "" {
		t.Error("no status message after a change")
	}

	in.push(keys(ebiten.KeyR))
	s.Update(dt)
	if st.GetSectionAnimations("header") != animation.DefaultSectionAnimations() {
		t.Error("R did not reset the section")
	}

	in.push(keys(ebiten.KeyTab))
	s.Update(dt)
	if s.ActiveSection() != "about" || st.ActiveSection() != "about" {
		t.Errorf("Tab selected %s", s.ActiveSection())
	}
	in.push(utils.InputFrame{X: -1, Y: -1, Keys: []ebiten.Key{ebiten.KeyTab}, Shift: true})
	s.Update(dt)
	in.push(utils.InputFrame{X: -1, Y: -1, Keys: []ebiten.Key{ebiten.KeyTab}, Shift: true})
	s.Update(dt)
	if s.ActiveSection() != "contact" {
		t.Errorf("Shift+Tab should wrap to contact, got %s", s.ActiveSection())
	}

	in.push(utils.InputFrame{X: -1, Y: -1, Keys: []ebiten.Key{ebiten.KeyR}, Shift: true})
	s.Update(dt)
	if len(st.Sections()) != 0 {
		t.Errorf("Shift+R left sections %v", st.Sections())
	}
}

func TestPreviewScroll(t *testing.T) {
	s, in, _ := newTestScene(t)

	in.push(utils.InputFrame{X: -1, Y: -1, WheelY: -2})
	s.Update(dt)
	if s.Scroll() != 2*config.ScrollStep {
		t.Errorf("scroll = %v, want %v", s.Scroll(), 2*config.ScrollStep)
	}

	in.push(keys(ebiten.KeyArrowUp), keys(ebiten.KeyArrowUp), keys(ebiten.KeyArrowUp))
	for i := 0; i < 3; i++ {
		s.Update(dt)
	}
	if s.Scroll() != 0 {
		t.Errorf("scroll = %v, want clamped to 0", s.Scroll())
	}

	for i := 0; i < 20; i++ {
		in.push(keys(ebiten.KeyPageDown))
		s.Update(dt)
	}
	if s.Scroll() != s.maxScroll {
		t.Errorf("scroll = %v, want clamped to %v", s.Scroll(), s.maxScroll)
	}

	// 触摸上拖等于向下滚动
	in.push(keys(ebiten.KeyHome), utils.InputFrame{X: -1, Y: -1, DragY: -30})
	s.Update(dt)
	s.Update(dt)
	if s.Scroll() != 30 {
		t.Errorf("scroll after drag = %v, want 30", s.Scroll())
	}
}

func TestPreviewClickSelectsCard(t *testing.T) {
	s, in, _ := newTestScene(t)

	// about 卡片位于 TopPadding + CardHeight + CardSpacing
	y := config.TopPadding + config.CardHeight + config.CardSpacing + 10
	in.push(utils.InputFrame{X: config.WindowWidth / 2, Y: int(y), JustPressed: true})
	s.Update(dt)
	if s.ActiveSection() != "about" {
		t.Errorf("click selected %s, want about", s.ActiveSection())
	}
}

func TestPreviewParticleKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ps := systems.NewParticleSystem(config.DefaultParticleConfig())
	layer := systems.NewParticleLayer(ctx, ps, systems.DefaultFrameInterval)
	defer layer.Close()

	calm := config.DefaultParticleConfig()
	calm.ParticleCount = 12
	in := &scriptedInput{}
	s := NewPreviewScene(PreviewConfig{
		Store:     store.NewAnimationStore(nil),
		Particles: layer,
		Input:     in,
		Presets:   config.ParticlePresets{"calm": calm},
	})
	defer s.Close()

	s.Update(dt)
	if ps.State() == systems.ParticleUninitialized {
		t.Fatal("scene did not size the particle layer")
	}

	in.push(keys(ebiten.KeyC))
	s.Update(dt)
	if ps.Config().Style != config.StyleSquares {
		t.Errorf("style = %s, want squares", ps.Config().Style)
	}

	in.push(keys(ebiten.KeyBracketRight))
	s.Update(dt)
	if ps.Config().ParticleCount != 12 || len(ps.Particles()) != 12 {
		t.Errorf("preset not applied: count %d, particles %d", ps.Config().ParticleCount, len(ps.Particles()))
	}

	in.push(keys(ebiten.KeyE))
	s.Update(dt)
	if ps.Config().Enabled || layer.Running() {
		t.Error("E did not stop the particles")
	}
}

func TestElementRect(t *testing.T) {
	b := &components.BoundsComponent{X: 100, Y: 200, Width: 80, Height: 40}

	x, y, w, h := elementRect(b, motion.IdentityFrame, 50)
	if x != 100 || y != 150 || w != 80 || h != 40 {
		t.Errorf("identity = (%v, %v, %v, %v)", x, y, w, h)
	}

	fr := motion.IdentityFrame
	fr.Scale = 0.5
	fr.X = 10
	x, y, w, h = elementRect(b, fr, 0)
	if x != 130 || y != 210 || w != 40 || h != 20 {
		t.Errorf("scaled = (%v, %v, %v, %v)", x, y, w, h)
	}

	fr = motion.IdentityFrame
	fr.RotateY = 90
	_, _, w, h = elementRect(b, fr, 0)
	if w > 1e-9 || h != 40 {
		t.Errorf("flipped edge-on: w = %v, h = %v", w, h)
	}
}

func TestElementAlpha(t *testing.T) {
	if a := elementAlpha(motion.Frame{Opacity: 1.4}, 0); a != 1 {
		t.Errorf("alpha = %v, want clamped to 1", a)
	}
	pulse := motion.Frame{Opacity: 1, Pulse: true}
	if a := elementAlpha(pulse, 0); a != 1 {
		t.Errorf("pulse at t=0: %v", a)
	}
	if a := elementAlpha(pulse, pulsePeriod/2); math.Abs(a-0.5) > 1e-9 {
		t.Errorf("pulse at half period: %v, want 0.5", a)
	}
}
