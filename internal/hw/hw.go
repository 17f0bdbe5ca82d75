// Package hw declares the peripheral capabilities the simulation consumes.
// Board-specific code provides implementations; the simulation never talks
// to hardware directly.
package hw

import (
	"context"
	"time"
)

// Display is a monochrome bitmap surface with an off-screen buffer.
type Display interface {
	// Clear blanks the buffer.
	Clear()
	// FillRect lights a w×h rectangle whose top-left corner is (x, y).
	FillRect(x, y, w, h int)
	// Text writes s with the top-left of its first glyph at (x, y).
	Text(s string, x, y int)
	// Show transfers the buffer to the panel.
	Show() error
}

// AnalogInput is one ADC channel returning raw samples.
type AnalogInput interface {
	Read() int32
}

// DigitalInput is one GPIO line. Read returns the electrical level, true
// meaning high.
type DigitalInput interface {
	Read() bool
}

// Clock is a monotonic time source with a cancellable delay.
type Clock interface {
	Now() time.Duration
	Sleep(ctx context.Context, d time.Duration) error
}

// BitSource produces uniformly distributed n-bit values.
type BitSource interface {
	Bits(n uint) uint32
}

// Line couples a digital input with the level that counts as "active".
type Line struct {
	In        DigitalInput
	ActiveLow bool
}

// Active reports whether the line currently sits at its active level.
func (l Line) Active() bool {
	return l.In.Read() != l.ActiveLow
}
