package systems

import (
	"context"
	"sync"
	"time"
)

// DefaultFrameInterval is one display frame at 60 FPS.
const DefaultFrameInterval = time.Second / 60

// ParticleLoop is the cancellable repeating task that steps a
// ParticleSystem once per frame interval.
//
// Each Start owns a fresh cancel func; Stop cancels it and waits for the
// goroutine to exit, so a stopped loop never steps again.
type ParticleLoop struct {
	ps       *ParticleSystem
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewParticleLoop creates a stopped loop. A non-positive interval uses
// DefaultFrameInterval.
func NewParticleLoop(ps *ParticleSystem, interval time.Duration) *ParticleLoop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &ParticleLoop{ps: ps, interval: interval}
}

// Start launches the loop under parent. It does nothing and reports false
// when the loop is already running or the system has nothing to animate.
func (l *ParticleLoop) Start(parent context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.reapLocked()
	if l.cancel != nil || !l.ps.Runnable() {
		return false
	}

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	l.cancel = cancel
	l.done = done
	l.ps.markRunning()

	go l.run(ctx, done)
	return true
}

func (l *ParticleLoop) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer l.ps.markStopped()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.ps.Step()
		}
	}
}

// Stop cancels the loop and waits for it to exit. Safe to call repeatedly.
func (l *ParticleLoop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// reapLocked 清理因父 context 取消而已退出的运行
func (l *ParticleLoop) reapLocked() {
	if l.done == nil {
		return
	}
	select {
	case <-l.done:
		l.cancel()
		l.cancel, l.done = nil, nil
	default:
	}
}

// Running reports whether the loop is currently stepping.
func (l *ParticleLoop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reapLocked()
	return l.cancel != nil
}

// Done returns a channel closed when the current run exits, or nil when
// the loop is not running. The run also exits if the parent context passed
// to Start is cancelled.
func (l *ParticleLoop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}
