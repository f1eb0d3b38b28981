package systems

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gonewx/folio/pkg/config"
)

// ParticleLayer ties a ParticleSystem to its ParticleLoop and owns the
// restart rules: any reseed stops the running loop before the new batch is
// generated and starts a fresh one afterwards; disabling stops it for good.
type ParticleLayer struct {
	System *ParticleSystem
	loop   *ParticleLoop

	mu     sync.Mutex
	ctx    context.Context
	closed bool
}

// NewParticleLayer creates a layer whose loops run under ctx.
func NewParticleLayer(ctx context.Context, ps *ParticleSystem, interval time.Duration) *ParticleLayer {
	return &ParticleLayer{
		System: ps,
		loop:   NewParticleLoop(ps, interval),
		ctx:    ctx,
	}
}

// Resize forwards new canvas dimensions. Unchanged dimensions are a no-op,
// so it is safe to call every frame.
func (pl *ParticleLayer) Resize(width, height float64) {
	if w, h := pl.System.Size(); w == width && h == height && pl.System.State() != ParticleUninitialized {
		return
	}
	pl.apply(func() bool { return pl.System.Resize(width, height) })
}

// Configure applies a new particle configuration.
func (pl *ParticleLayer) Configure(cfg config.ParticleConfig) {
	if pl.System.Config() == cfg {
		return
	}
	pl.apply(func() bool { return pl.System.SetConfig(cfg) })
}

// Reseed discards the batch and starts over with a fresh one.
func (pl *ParticleLayer) Reseed() {
	pl.apply(pl.System.Seed)
}

func (pl *ParticleLayer) apply(change func() bool) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if pl.closed {
		return
	}

	// 先停止旧循环，保证不会有两个循环同时驱动
	pl.loop.Stop()

	reseeded := change()
	if reseeded {
		log.Printf("[ParticleSystem] Reseeded %d particles", pl.System.Config().ParticleCount)
	}

	if pl.System.Runnable() {
		pl.loop.Start(pl.ctx)
	}
}

// Running reports whether the loop is active.
func (pl *ParticleLayer) Running() bool {
	return pl.loop.Running()
}

// Close stops the loop permanently.
func (pl *ParticleLayer) Close() {
	pl.mu.Lock()
	pl.closed = true
	pl.mu.Unlock()
	pl.loop.Stop()
}
