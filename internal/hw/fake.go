package hw

import (
	"context"
	"sync"
	"time"
)

// Level is a DigitalInput whose level is set by the caller. It backs the
// desktop emulator's virtual switches and the tests.
type Level struct {
	mu   sync.Mutex
	high bool
}

// NewLevel returns a line resting at the given level.
func NewLevel(high bool) *Level { return &Level{high: high} }

// Set drives the line.
func (l *Level) Set(high bool) {
	l.mu.Lock()
	l.high = high
	l.mu.Unlock()
}

// Read implements DigitalInput.
func (l *Level) Read() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.high
}

// Knob is an AnalogInput holding a fixed raw sample.
type Knob struct {
	mu  sync.Mutex
	raw int32
	max int32
}

// NewKnob returns a knob clamped to [0, max].
func NewKnob(raw, max int32) *Knob {
	k := &Knob{max: max}
	k.Set(raw)
	return k
}

// Set moves the knob, clamping to its range.
func (k *Knob) Set(raw int32) {
	if raw < 0 {
		raw = 0
	}
	if raw > k.max {
		raw = k.max
	}
	k.mu.Lock()
	k.raw = raw
	k.mu.Unlock()
}

// Nudge moves the knob by delta.
func (k *Knob) Nudge(delta int32) { k.Set(k.Read() + delta) }

// Read implements AnalogInput.
func (k *Knob) Read() int32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.raw
}

// ManualClock is a Clock that only advances when slept on.
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

// Now implements Clock.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

// Sleep advances the clock by d without blocking.
func (c *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d > 0 {
		c.Advance(d)
	}
	return nil
}
