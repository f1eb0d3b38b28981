package systems

import (
	"sync"

	"github.com/gonewx/folio/pkg/components"
	"github.com/gonewx/folio/pkg/ecs"
	"github.com/gonewx/folio/pkg/store"
)

// Viewport is the visible vertical window of the scrolling content, in
// content coordinates.
type Viewport struct {
	Top    float64
	Height float64
}

// Pointer is the cursor position in content coordinates.
type Pointer struct {
	X, Y   float64
	Inside bool // cursor is over the window
}

// MotionSystem drives every entity that has an AnimatedElementComponent and
// a BoundsComponent: it feeds viewport and hover signals to the element,
// resolves the section's motion from the store and samples its timeline.
//
// Store changes are queued by the subscription and applied at the start of
// the next Update.
type MotionSystem struct {
	EntityManager *ecs.EntityManager
	Store         *store.AnimationStore

	mu          sync.Mutex
	pending     []store.Change
	unsubscribe func()
}

// NewMotionSystem creates the system and subscribes it to store changes.
func NewMotionSystem(em *ecs.EntityManager, st *store.AnimationStore) *MotionSystem {
	ms := &MotionSystem{
		EntityManager: em,
		Store:         st,
	}
	ms.unsubscribe = st.Subscribe(ms.enqueue)
	// 同步初始预览状态
	ms.pending = append(ms.pending, store.Change{Kind: store.ChangePreviewMode})
	return ms
}

func (ms *MotionSystem) enqueue(c store.Change) {
	ms.mu.Lock()
	ms.pending = append(ms.pending, c)
	ms.mu.Unlock()
}

// Close unsubscribes from the store.
func (ms *MotionSystem) Close() {
	if ms.unsubscribe != nil {
		ms.unsubscribe()
		ms.unsubscribe = nil
	}
}

// Update advances all animated elements by dt seconds.
func (ms *MotionSystem) Update(dt float64, vp Viewport, ptr Pointer) {
	ms.applyPending()

	entities := ecs.GetEntitiesWith2[*components.AnimatedElementComponent, *components.BoundsComponent](ms.EntityManager)
	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.AnimatedElementComponent](ms.EntityManager, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](ms.EntityManager, id)

		el := anim.Element
		if area := bounds.Area(); area > 0 {
			el.ObserveFraction(bounds.VisibleArea(vp.Top, vp.Height) / area)
		}
		el.SetHovering(ptr.Inside && bounds.Contains(ptr.X, ptr.Y))

		anim.Motion = el.Resolve(ms.Store.GetSectionAnimations(el.SectionID))
		anim.Timeline.Apply(anim.Motion, el.Hovering())
		anim.Timeline.Advance(dt)
		anim.Frame = anim.Timeline.Frame()
	}
}

func (ms *MotionSystem) applyPending() {
	ms.mu.Lock()
	changes := ms.pending
	ms.pending = nil
	ms.mu.Unlock()

	// 非预览模式下入场只触发一次：配置变更只重新解析（每帧 Update 完成），不重播
	for _, c := range changes {
		switch c.Kind {
		case store.ChangePreviewMode:
			ms.syncPreviewMode()
		case store.ChangeConfig, store.ChangeSectionReset:
			if ms.Store.PreviewMode() {
				ms.Replay(c.SectionID)
			}
		case store.ChangeAllReset, store.ChangeLoaded:
			ms.syncPreviewMode()
			if ms.Store.PreviewMode() {
				ms.Replay("")
			}
		}
	}
}

// syncPreviewMode 把存储中的预览标志下发到每个元素；开启预览的元素重新播放
func (ms *MotionSystem) syncPreviewMode() {
	on := ms.Store.PreviewMode()
	for _, id := range ecs.GetEntitiesWith1[*components.AnimatedElementComponent](ms.EntityManager) {
		anim, _ := ecs.GetComponent[*components.AnimatedElementComponent](ms.EntityManager, id)
		if anim.Element.SetPreviewMode(on) {
			anim.Timeline.Replay()
		}
	}
}

// Replay restarts the entrance of every element in sectionID, or of all
// elements when sectionID is empty.
func (ms *MotionSystem) Replay(sectionID string) {
	for _, id := range ecs.GetEntitiesWith1[*components.AnimatedElementComponent](ms.EntityManager) {
		anim, _ := ecs.GetComponent[*components.AnimatedElementComponent](ms.EntityManager, id)
		if sectionID != "" && anim.Element.SectionID != sectionID {
			continue
		}
		anim.Element.Replay()
		anim.Timeline.Replay()
	}
}

// Playing reports whether any element in sectionID is still transitioning.
func (ms *MotionSystem) Playing(sectionID string) bool {
	for _, id := range ecs.GetEntitiesWith1[*components.AnimatedElementComponent](ms.EntityManager) {
		anim, _ := ecs.GetComponent[*components.AnimatedElementComponent](ms.EntityManager, id)
		if anim.Element.SectionID == sectionID && anim.Timeline.Playing() {
			return true
		}
	}
	return false
}
