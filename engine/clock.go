package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tumble/parameter"
)

// Clock measures simulation time between frames
// Paused intervals are excluded, each Tick reports the game time elapsed since the previous one
type Clock struct {
	mu sync.Mutex

	provider TimeProvider
	maxDelta time.Duration

	last    time.Time
	paused  atomic.Bool
	frame   atomic.Uint64
	elapsed time.Duration // total game time
}

// NewClock starts a clock on the given time source, nil selects the system clock
func NewClock(provider TimeProvider) *Clock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &Clock{
		provider: provider,
		maxDelta: parameter.MaxFrameDelta,
		last:     provider.Now(),
	}
}

// SetMaxDelta overrides the per-tick clamp, zero disables it
func (c *Clock) SetMaxDelta(d time.Duration) {
	c.mu.Lock()
	c.maxDelta = d
	c.mu.Unlock()
}

// Tick returns the seconds of game time since the previous tick and advances the frame counter
// Returns 0 while paused, deltas above the clamp are truncated so a stalled terminal
// does not fling bodies through each other
func (c *Clock) Tick() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.provider.Now()
	d := now.Sub(c.last)
	c.last = now
	c.frame.Add(1)

	if c.paused.Load() || d <= 0 {
		return 0
	}
	if c.maxDelta > 0 && d > c.maxDelta {
		d = c.maxDelta
	}
	c.elapsed += d
	return d.Seconds()
}

// Frame returns the number of ticks taken so far
func (c *Clock) Frame() uint64 {
	return c.frame.Load()
}

// Elapsed returns total unpaused game time
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

func (c *Clock) Pause() {
	c.paused.Store(true)
}

// Resume continues from now, the paused interval is never reported by Tick
func (c *Clock) Resume() {
	if c.paused.CompareAndSwap(true, false) {
		c.mu.Lock()
		c.last = c.provider.Now()
		c.mu.Unlock()
	}
}

// Toggle flips the pause state and returns the new state
func (c *Clock) Toggle() bool {
	if c.paused.Load() {
		c.Resume()
		return false
	}
	c.Pause()
	return true
}

func (c *Clock) IsPaused() bool {
	return c.paused.Load()
}
