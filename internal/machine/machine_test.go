package machine

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"micro-life/internal/core"
	"micro-life/internal/hw"
)

var panel = core.Layout{Display: core.Size{W: 128, H: 64}, Header: 16, Cell: 4}

type recordingDisplay struct {
	texts  []string
	rects  int
	shows  int
	shown  []string
	failOn int
}

func (d *recordingDisplay) Clear() {
	d.texts = nil
	d.rects = 0
}

func (d *recordingDisplay) FillRect(x, y, w, h int) { d.rects++ }

func (d *recordingDisplay) Text(s string, x, y int) { d.texts = append(d.texts, s) }

func (d *recordingDisplay) Show() error {
	d.shows++
	d.shown = append([]string(nil), d.texts...)
	if d.failOn > 0 && d.shows == d.failOn {
		return errors.New("i2c nack")
	}
	return nil
}

func (d *recordingDisplay) showing(s string) bool {
	for _, t := range d.shown {
		if t == s {
			return true
		}
	}
	return false
}

type rig struct {
	m       *Machine
	display *recordingDisplay
	toggle  *hw.Level
	button  *hw.Level
	pot1    *hw.Knob
	pot2    *hw.Knob
	clock   *hw.ManualClock
	logs    *bytes.Buffer
}

func newRig() *rig {
	r := &rig{
		display: &recordingDisplay{},
		toggle:  hw.NewLevel(false),
		button:  hw.NewLevel(true),
		pot1:    hw.NewKnob(4095, 4095),
		pot2:    hw.NewKnob(4095, 4095),
		clock:   &hw.ManualClock{},
		logs:    &bytes.Buffer{},
	}
	p := Peripherals{
		Display:   r.display,
		Toggle:    hw.Line{In: r.toggle},
		Button:    hw.Line{In: r.button, ActiveLow: true},
		Pot1:      r.pot1,
		Pot2:      r.pot2,
		FullScale: 4095,
		Bits:      core.NewRNG(5),
		Clock:     r.clock,
	}
	r.m = New(p, panel, DefaultTiming(), log.New(r.logs, "", 0))
	return r
}

// tick runs one poll and lets the returned delay pass.
func (r *rig) tick() time.Duration {
	d := r.m.Tick()
	r.clock.Advance(d)
	return d
}

func (r *rig) press()   { r.button.Set(false) }
func (r *rig) release() { r.button.Set(true) }

// startRun walks the machine from power-on into Running.
func (r *rig) startRun(t *testing.T) {
	t.Helper()
	r.toggle.Set(true)
	for r.m.State() != SeedingLoop {
		r.tick()
	}
	r.tick()
	r.press()
	r.tick()
	r.release()
	r.tick()
	if r.m.State() != Running {
		t.Fatalf("expected running, got %s", r.m.State())
	}
}

func TestBannerWhileWaitingForToggle(t *testing.T) {
	r := newRig()
	for i := 0; i < 5; i++ {
		if d := r.tick(); d != 100*time.Millisecond {
			t.Fatalf("poll delay %v", d)
		}
	}
	if r.m.State() != AwaitToggleOn {
		t.Fatalf("state %s", r.m.State())
	}
	if r.display.shows != 1 {
		t.Fatalf("banner shown %d times, want once", r.display.shows)
	}
	if !r.display.showing("Micro") || !r.display.showing("Game of Life") {
		t.Fatalf("banner text %v", r.display.shown)
	}
}

func TestSeedingLoopReseedsAndPrompts(t *testing.T) {
	r := newRig()
	r.toggle.Set(true)
	if d := r.tick(); d != 0 || r.m.State() != SeedingLoop {
		t.Fatalf("toggle on: delay %v state %s", d, r.m.State())
	}

	if d := r.tick(); d != 100*time.Millisecond {
		t.Fatalf("seeding delay %v", d)
	}
	if !r.display.showing("Press Button") || !r.display.showing("Time: 0s") || !r.display.showing("T: 0") {
		t.Fatalf("seeding frame %v", r.display.shown)
	}
	if r.m.Snapshot().Bias != 30 {
		t.Fatalf("bias %d, want 30", r.m.Snapshot().Bias)
	}
	first := r.m.Grid().Clone()
	if first.Population() == 0 {
		t.Fatal("full bias produced an empty grid")
	}

	r.tick()
	if r.m.Grid().Equal(first) {
		t.Fatal("grid was not reseeded on the next iteration")
	}

	r.pot1.Set(0)
	r.pot2.Set(0)
	r.tick()
	if pop := r.m.Grid().Population(); pop != 0 {
		t.Fatalf("zero bias seeded %d cells", pop)
	}
}

func TestSustainedPressStartsOneRun(t *testing.T) {
	r := newRig()
	r.toggle.Set(true)
	r.tick()

	r.press()
	if d := r.tick(); d != 200*time.Millisecond || r.m.State() != AwaitRelease {
		t.Fatalf("press: delay %v state %s", d, r.m.State())
	}
	shows := r.display.shows
	for i := 0; i < 400; i++ {
		if d := r.tick(); d != 5*time.Millisecond {
			t.Fatalf("release poll delay %v", d)
		}
	}
	if r.m.State() != AwaitRelease {
		t.Fatalf("held button left await-release: %s", r.m.State())
	}
	if r.display.shows != shows {
		t.Fatal("display redrawn while waiting for release")
	}

	r.release()
	r.tick()
	if r.m.State() != Running {
		t.Fatalf("state %s after release", r.m.State())
	}
	if n := strings.Count(r.logs.String(), "-> running"); n != 1 {
		t.Fatalf("entered running %d times", n)
	}

	// A second press while running is ignored.
	r.press()
	for i := 0; i < 5; i++ {
		r.tick()
	}
	if r.m.State() != Running {
		t.Fatalf("button press changed state to %s", r.m.State())
	}
	if n := strings.Count(r.logs.String(), "-> running"); n != 1 {
		t.Fatalf("entered running %d times", n)
	}
}

func TestRunningAdvancesGenerations(t *testing.T) {
	r := newRig()
	r.startRun(t)

	seeded := r.m.Grid().Clone()
	for i := 0; i < 11; i++ {
		if d := r.tick(); d != 100*time.Millisecond {
			t.Fatalf("frame delay %v", d)
		}
	}
	if got := r.m.Snapshot().Step; got != 11 {
		t.Fatalf("step %d, want 11", got)
	}
	if !r.display.showing("T: 10") || !r.display.showing("Time: 1s") {
		t.Fatalf("last frame %v", r.display.shown)
	}
	if r.m.Grid().Equal(seeded) {
		t.Fatal("grid did not evolve")
	}
	if el := r.m.Snapshot().Elapsed; el != time.Second {
		t.Fatalf("elapsed %v, want 1s", el)
	}
}

func TestToggleOffRestartsWithFreshCounters(t *testing.T) {
	r := newRig()
	r.startRun(t)
	for i := 0; i < 30; i++ {
		r.tick()
	}
	if r.m.Snapshot().Step != 30 {
		t.Fatalf("step %d", r.m.Snapshot().Step)
	}

	r.toggle.Set(false)
	if d := r.tick(); d != 100*time.Millisecond {
		t.Fatalf("stop delay %v", d)
	}
	if r.m.State() != AwaitToggleOn {
		t.Fatalf("state %s after toggle off", r.m.State())
	}
	snap := r.m.Snapshot()
	if snap.Step != 0 || snap.Elapsed != 0 {
		t.Fatalf("counters not reset: %+v", snap)
	}

	r.tick()
	if !r.display.showing("Micro") {
		t.Fatal("banner not redrawn after restart")
	}

	r.startRun(t)
	r.tick()
	if !r.display.showing("T: 0") || !r.display.showing("Time: 0s") {
		t.Fatalf("first frame of new run %v", r.display.shown)
	}
}

func TestToggleOffDuringSeedingRestarts(t *testing.T) {
	r := newRig()
	r.toggle.Set(true)
	r.tick()
	r.tick()
	r.toggle.Set(false)
	if d := r.tick(); d != 0 {
		t.Fatalf("restart delay %v", d)
	}
	if r.m.State() != AwaitToggleOn {
		t.Fatalf("state %s", r.m.State())
	}
	shows := r.display.shows
	r.tick()
	if r.display.shows != shows+1 || !r.display.showing("Micro") {
		t.Fatal("banner not redrawn")
	}
}

func TestDisplayErrorsAreLogged(t *testing.T) {
	r := newRig()
	r.display.failOn = 1
	r.tick()
	if !strings.Contains(r.logs.String(), "i2c nack") {
		t.Fatalf("display error not logged: %q", r.logs.String())
	}
}

type cancelAfter struct {
	*hw.ManualClock
	left   int
	cancel context.CancelFunc
}

func (c *cancelAfter) Sleep(ctx context.Context, d time.Duration) error {
	c.left--
	if c.left <= 0 {
		c.cancel()
	}
	return c.ManualClock.Sleep(ctx, d)
}

func TestRunStopsOnCancel(t *testing.T) {
	r := newRig()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.m.p.Clock = &cancelAfter{ManualClock: r.clock, left: 3, cancel: cancel}

	err := r.m.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v", err)
	}
	if r.clock.Now() != 200*time.Millisecond {
		t.Fatalf("clock at %v, want two polls", r.clock.Now())
	}
}
