package systems

import (
	"image/color"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gonewx/folio/internal/animation"
	"github.com/gonewx/folio/pkg/components"
	"github.com/gonewx/folio/pkg/config"
)

// ParticleState is the lifecycle state of a ParticleSystem.
type ParticleState int

const (
	// ParticleUninitialized means no canvas dimensions are known yet.
	ParticleUninitialized ParticleState = iota
	// ParticleSeeded means a batch exists but no loop is driving it.
	ParticleSeeded
	// ParticleRunning means a ParticleLoop is stepping the batch.
	ParticleRunning
	// ParticleStopped means the layer is disabled or its loop was cancelled.
	ParticleStopped
)

func (s ParticleState) String() string {
	switch s {
	case ParticleSeeded:
		return "seeded"
	case ParticleRunning:
		return "running"
	case ParticleStopped:
		return "stopped"
	default:
		return "uninitialized"
	}
}

// RotationStep is the per-frame rotation increment in radians.
const RotationStep = 0.01

// ParticleSystem simulates the decorative particle layer.
//
// The system owns its particles exclusively: a fresh batch replaces the old
// one whenever the canvas is resized or particleCount, size, speed, color or
// opacity change. Style changes only affect drawing.
//
// All methods are safe for concurrent use; a ParticleLoop steps the system
// from its own goroutine while the renderer reads snapshots.
type ParticleSystem struct {
	mu sync.Mutex

	cfg   config.ParticleConfig
	color color.RGBA

	width  float64
	height float64

	particles []components.Particle
	state     ParticleState
	frames    uint64

	rng *rand.Rand
}

// ParticleOption configures a ParticleSystem.
type ParticleOption func(*ParticleSystem)

// WithRand uses r for seeding instead of a time-seeded source.
func WithRand(r *rand.Rand) ParticleOption {
	return func(ps *ParticleSystem) {
		ps.rng = r
	}
}

// NewParticleSystem creates an uninitialized particle system. Nothing is
// seeded until Resize supplies positive dimensions.
func NewParticleSystem(cfg config.ParticleConfig, opts ...ParticleOption) *ParticleSystem {
	ps := &ParticleSystem{
		cfg:   cfg,
		color: resolveColor(cfg.Color),
		state: ParticleUninitialized,
	}
	for _, opt := range opts {
		opt(ps)
	}
	if ps.rng == nil {
		ps.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return ps
}

func resolveColor(hex string) color.RGBA {
	c, err := config.ParseColor(hex)
	if err != nil {
		log.Printf("[ParticleSystem] Warning: %v, using default color", err)
		c, _ = config.ParseColor(config.DefaultParticleConfig().Color)
	}
	return c
}

// Resize updates the canvas dimensions. A change in dimensions discards the
// current batch and, while enabled, seeds a new one. Non-positive dimensions
// return the system to the uninitialized state.
//
// It reports whether a new batch was seeded.
func (ps *ParticleSystem) Resize(width, height float64) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if width <= 0 || height <= 0 {
		ps.width, ps.height = 0, 0
		ps.particles = nil
		ps.state = ParticleUninitialized
		return false
	}
	if width == ps.width && height == ps.height && ps.state != ParticleUninitialized {
		return false
	}

	ps.width, ps.height = width, height
	if !ps.cfg.Enabled {
		ps.particles = nil
		ps.state = ParticleStopped
		return false
	}
	ps.seedLocked()
	return true
}

// SetConfig applies a new configuration and reports whether it seeded a
// new batch. Disabling discards the batch; re-enabling seeds a new one.
func (ps *ParticleSystem) SetConfig(cfg config.ParticleConfig) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	old := ps.cfg
	ps.cfg = cfg
	if cfg.Color != old.Color {
		ps.color = resolveColor(cfg.Color)
	}

	if !cfg.Enabled {
		ps.particles = nil
		if ps.state != ParticleUninitialized {
			ps.state = ParticleStopped
		}
		return false
	}
	if ps.state == ParticleUninitialized {
		return false
	}
	if !old.Enabled || ps.particles == nil || cfg.ReseedNeeded(old) {
		ps.seedLocked()
		return true
	}
	return false
}

// Seed discards the current batch and generates a new one. It reports false
// when no dimensions are known or the layer is disabled.
func (ps *ParticleSystem) Seed() bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.state == ParticleUninitialized || !ps.cfg.Enabled {
		return false
	}
	ps.seedLocked()
	return true
}

// seedLocked 生成一批粒子：位置在画布内均匀分布，尺寸在 [0.5s, 1.5s]，
// 速度分量在 [-speed, speed]，透明度在 [0.5o, o]，旋转在 [0, 2π)
func (ps *ParticleSystem) seedLocked() {
	cfg := ps.cfg
	n := max(cfg.ParticleCount, 0)

	batch := make([]components.Particle, n)
	for i := range batch {
		batch[i] = components.Particle{
			X:        animation.RandomInRange(ps.rng, 0, ps.width),
			Y:        animation.RandomInRange(ps.rng, 0, ps.height),
			Size:     animation.RandomInRange(ps.rng, cfg.Size*0.5, cfg.Size*1.5),
			SpeedX:   animation.RandomInRange(ps.rng, -cfg.Speed, cfg.Speed),
			SpeedY:   animation.RandomInRange(ps.rng, -cfg.Speed, cfg.Speed),
			Color:    ps.color,
			Opacity:  animation.RandomInRange(ps.rng, cfg.Opacity*0.5, cfg.Opacity),
			Rotation: animation.RandomInRange(ps.rng, 0, 2*math.Pi),
		}
	}
	ps.particles = batch
	ps.frames = 0
	ps.state = ParticleSeeded
}

// Step advances every particle by one frame.
func (ps *ParticleSystem) Step() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if len(ps.particles) == 0 {
		return
	}
	for i := range ps.particles {
		StepParticle(&ps.particles[i], ps.width, ps.height)
	}
	ps.frames++
}

// StepParticle applies one frame of movement to p inside a width x height
// canvas. Crossing a boundary flips that axis' speed and clamps the position
// to the boundary.
func StepParticle(p *components.Particle, width, height float64) {
	x := p.X + p.SpeedX
	y := p.Y + p.SpeedY

	if x < 0 || x > width {
		p.SpeedX = -p.SpeedX
		x = clampEdge(x, width)
	}
	if y < 0 || y > height {
		p.SpeedY = -p.SpeedY
		y = clampEdge(y, height)
	}

	p.X, p.Y = x, y
	p.Rotation = math.Mod(p.Rotation+RotationStep, 2*math.Pi)
}

func clampEdge(v, limit float64) float64 {
	if v < 0 {
		return 0
	}
	return limit
}

// Particles returns a copy of the current batch.
func (ps *ParticleSystem) Particles() []components.Particle {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return append([]components.Particle(nil), ps.particles...)
}

// Snapshot copies the current batch into dst (reusing its capacity) and
// returns it together with the style to draw it in. A disabled layer
// yields an empty slice.
func (ps *ParticleSystem) Snapshot(dst []components.Particle) ([]components.Particle, config.ParticleStyle) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	dst = dst[:0]
	if ps.cfg.Enabled {
		dst = append(dst, ps.particles...)
	}
	return dst, ps.cfg.Style
}

// Config returns the active configuration.
func (ps *ParticleSystem) Config() config.ParticleConfig {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.cfg
}

// State returns the lifecycle state.
func (ps *ParticleSystem) State() ParticleState {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.state
}

// Size returns the canvas dimensions.
func (ps *ParticleSystem) Size() (width, height float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.width, ps.height
}

// Frames returns the number of steps applied to the current batch.
func (ps *ParticleSystem) Frames() uint64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.frames
}

// Runnable reports whether a loop may drive the system.
func (ps *ParticleSystem) Runnable() bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.cfg.Enabled && len(ps.particles) > 0
}

func (ps *ParticleSystem) markRunning() {
	ps.mu.Lock()
	if ps.state == ParticleSeeded || ps.state == ParticleStopped {
		ps.state = ParticleRunning
	}
	ps.mu.Unlock()
}

func (ps *ParticleSystem) markStopped() {
	ps.mu.Lock()
	if ps.state == ParticleRunning {
		ps.state = ParticleStopped
	}
	ps.mu.Unlock()
}
