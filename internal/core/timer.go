package core

import (
	"context"
	"time"
)

// SystemClock is the wall-clock implementation of the monotonic clock used
// by the device loop. Now is measured from the moment the clock was created.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock { return &SystemClock{origin: time.Now()} }

// Now returns the monotonic time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration { return time.Since(c.origin) }

// Sleep blocks for d or until ctx is done, whichever comes first.
func (c *SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Pacer decides when a frame-driven loop should run the next poll. The delay
// before each poll is chosen by the previous one, mirroring a sleep call.
type Pacer struct {
	wait        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewPacer returns a Pacer that is due immediately.
func NewPacer() *Pacer { return &Pacer{now: time.Now} }

// Delay sets the time that must pass before the next poll is due.
func (p *Pacer) Delay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	p.wait = d
	p.accumulator = 0
}

// Due reports whether the configured delay has elapsed.
func (p *Pacer) Due() bool {
	now := p.now()
	if p.last.IsZero() {
		p.last = now
	}
	p.accumulator += now.Sub(p.last)
	p.last = now
	return p.accumulator >= p.wait
}
