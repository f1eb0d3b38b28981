package motion

import (
	"github.com/gonewx/folio/internal/animation"
)

// InViewThreshold is the visible area fraction at which an element counts
// as being in view.
const InViewThreshold = 0.2

// InView reports whether visibleArea/totalArea reaches InViewThreshold.
// A zero-area element is never in view.
func InView(visibleArea, totalArea float64) bool {
	if totalArea <= 0 {
		return false
	}
	return visibleArea/totalArea >= InViewThreshold
}

// Element tracks the per-instance state an animated element needs between
// renders: whether the entrance has triggered, the latched in-view signal
// and the pointer hover state.
//
// Outside preview mode the in-view signal triggers once: after the element
// has been seen it stays "in view". In preview mode the signal follows the
// viewport on every entry and exit, and (re-)enabling preview resets the
// entered flag so entrances replay.
type Element struct {
	SectionID  string
	ExtraDelay float64
	// Ungated elements start their entrance without waiting for the viewport.
	Ungated bool

	hasEntered  bool
	inView      bool
	hovering    bool
	previewMode bool
}

// NewElement creates an element bound to a section.
func NewElement(sectionID string, extraDelay float64) *Element {
	return &Element{
		SectionID:  sectionID,
		ExtraDelay: extraDelay,
	}
}

// SetPreviewMode updates the store-wide preview flag seen by this element.
// It reports whether the element was reset.
func (e *Element) SetPreviewMode(on bool) bool {
	reset := on && !e.previewMode
	e.previewMode = on
	if reset {
		e.hasEntered = false
		e.inView = false
	}
	return reset
}

// PreviewMode reports the last preview flag passed to SetPreviewMode.
func (e *Element) PreviewMode() bool {
	return e.previewMode
}

// ObserveFraction feeds the visible area fraction (0-1) of the element.
func (e *Element) ObserveFraction(fraction float64) {
	e.Observe(fraction >= InViewThreshold)
}

// Observe feeds the raw "intersecting by at least the threshold" signal.
func (e *Element) Observe(intersecting bool) {
	if e.previewMode {
		e.inView = intersecting
	} else if intersecting {
		// triggerOnce：进入视口后保持
		e.inView = true
	}

	if e.inView && !e.hasEntered {
		e.hasEntered = true
	}
}

// SetHovering records whether the pointer is over the element.
func (e *Element) SetHovering(hovering bool) {
	e.hovering = hovering
}

// Hovering reports the pointer state.
func (e *Element) Hovering() bool {
	return e.hovering
}

// InView reports the effective (policy-applied) in-view signal.
func (e *Element) InView() bool {
	return e.inView
}

// HasEntered reports whether the entrance animation has triggered.
func (e *Element) HasEntered() bool {
	return e.hasEntered
}

// Replay clears the entered flag so the entrance plays again on the next
// in-view signal.
func (e *Element) Replay() {
	e.hasEntered = false
	e.inView = false
}

// Input returns the resolver input for the current state.
func (e *Element) Input() Input {
	return Input{
		ExtraDelay: e.ExtraDelay,
		InView:     e.inView,
		HasEntered: e.hasEntered,
		Ungated:    e.Ungated,
	}
}

// Resolve resolves the element's motion for the given section descriptors.
func (e *Element) Resolve(anims animation.SectionAnimations) Motion {
	return Resolve(anims, e.Input())
}

// PulseActive reports whether a hover pulse should be shown right now.
func (e *Element) PulseActive(m Motion) bool {
	return e.hovering && m.Hover != nil && m.Hover.Pulse
}
