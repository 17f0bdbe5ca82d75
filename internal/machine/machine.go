// Package machine sequences the device: wait for the run toggle, reseed
// until the start button is pressed, then animate generations until the
// toggle is switched off and everything starts over.
package machine

import (
	"context"
	"io"
	"log"
	"time"

	"micro-life/internal/core"
	"micro-life/internal/hw"
	"micro-life/internal/life"
	"micro-life/internal/render"
)

// State identifies where the device is in its cycle.
type State int

const (
	// AwaitToggleOn shows the banner and waits for the toggle.
	AwaitToggleOn State = iota
	// SeedingLoop reseeds and redraws until the button is pressed.
	SeedingLoop
	// AwaitRelease holds until the debounced button is let go.
	AwaitRelease
	// Running advances one generation per frame.
	Running
)

func (s State) String() string {
	switch s {
	case AwaitToggleOn:
		return "await-toggle"
	case SeedingLoop:
		return "seeding"
	case AwaitRelease:
		return "await-release"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Timing holds the loop delays.
type Timing struct {
	Poll        time.Duration
	Frame       time.Duration
	Debounce    time.Duration
	ReleasePoll time.Duration
}

// DefaultTiming matches the reference device.
func DefaultTiming() Timing {
	return Timing{
		Poll:        100 * time.Millisecond,
		Frame:       100 * time.Millisecond,
		Debounce:    200 * time.Millisecond,
		ReleasePoll: 5 * time.Millisecond,
	}
}

// Peripherals bundles everything the machine reads from or writes to.
type Peripherals struct {
	Display hw.Display
	Toggle  hw.Line
	Button  hw.Line
	Pot1    hw.AnalogInput
	Pot2    hw.AnalogInput
	// FullScale is the raw reading of a potentiometer at its top end.
	FullScale int32
	Bits      hw.BitSource
	Clock     hw.Clock
}

// Snapshot is a read-only view of the run counters.
type Snapshot struct {
	State   State
	Elapsed time.Duration
	Step    int
	Bias    int
}

// Machine owns the grid and drives the device one poll at a time.
type Machine struct {
	p      Peripherals
	layout core.Layout
	timing Timing
	grid   *core.Grid
	log    *log.Logger

	state  State
	banner bool
	start  time.Duration
	now    time.Duration
	step   int
	bias   int
}

// New builds a machine for the given display geometry. logger may be nil.
func New(p Peripherals, layout core.Layout, timing Timing, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	size := layout.GridSize()
	return &Machine{
		p:      p,
		layout: layout,
		timing: timing,
		grid:   core.NewGrid(size.W, size.H),
		log:    logger,
	}
}

// Grid exposes the simulation grid.
func (m *Machine) Grid() *core.Grid { return m.grid }

// State reports the current state.
func (m *Machine) State() State { return m.state }

// Snapshot returns the current counters.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{State: m.state, Step: m.step, Bias: m.bias}
	if m.state == Running {
		s.Elapsed = m.now - m.start
	}
	return s
}

// Run polls until ctx is cancelled and returns ctx's error.
func (m *Machine) Run(ctx context.Context) error {
	for {
		d := m.Tick()
		if err := m.p.Clock.Sleep(ctx, d); err != nil {
			return err
		}
	}
}

// Tick performs one polling iteration and returns how long to wait before
// the next one.
func (m *Machine) Tick() time.Duration {
	switch m.state {
	case AwaitToggleOn:
		return m.awaitToggle()
	case SeedingLoop:
		return m.seeding()
	case AwaitRelease:
		return m.awaitRelease()
	case Running:
		return m.running()
	}
	m.restart()
	return 0
}

func (m *Machine) awaitToggle() time.Duration {
	if !m.banner {
		render.Banner(m.p.Display)
		m.show()
		m.banner = true
	}
	if !m.p.Toggle.Active() {
		return m.timing.Poll
	}
	m.enter(SeedingLoop)
	return 0
}

func (m *Machine) seeding() time.Duration {
	if !m.p.Toggle.Active() {
		m.restart()
		return 0
	}
	m.bias = life.Bias(m.p.Pot1, m.p.Pot2, m.p.FullScale)
	life.Seed(m.grid, m.bias, m.p.Bits)
	render.Generation(m.p.Display, m.grid, m.layout, 0, 0)
	render.Prompt(m.p.Display, m.layout)
	m.show()

	if !m.p.Button.Active() {
		return m.timing.Poll
	}
	m.enter(AwaitRelease)
	return m.timing.Debounce
}

func (m *Machine) awaitRelease() time.Duration {
	if m.p.Button.Active() {
		return m.timing.ReleasePoll
	}
	m.start = m.p.Clock.Now()
	m.now = m.start
	m.step = 0
	m.enter(Running)
	return 0
}

func (m *Machine) running() time.Duration {
	if !m.p.Toggle.Active() {
		m.restart()
		return m.timing.Poll
	}
	m.now = m.p.Clock.Now()
	elapsed := int((m.now - m.start) / time.Second)
	render.Generation(m.p.Display, m.grid, m.layout, elapsed, m.step)
	m.show()
	life.Step(m.grid)
	m.step++
	return m.timing.Frame
}

// restart goes back to the banner with fresh counters.
func (m *Machine) restart() {
	m.enter(AwaitToggleOn)
	m.banner = false
	m.step = 0
	m.start = 0
	m.now = 0
}

func (m *Machine) enter(s State) {
	if s == m.state {
		return
	}
	m.log.Printf("%s -> %s (step %d)", m.state, s, m.step)
	m.state = s
}

func (m *Machine) show() {
	if err := m.p.Display.Show(); err != nil {
		m.log.Printf("display: %v", err)
	}
}
