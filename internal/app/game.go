//go:build ebiten

package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"micro-life/internal/config"
	"micro-life/internal/core"
	"micro-life/internal/hw"
	"micro-life/internal/machine"
	"micro-life/internal/render"
)

const (
	statusHeight = 36
	knobStep     = 48
	// maxTicksPerFrame bounds the zero-delay polls chained inside one Update.
	maxTicksPerFrame = 8
)

// Game runs the device against the keyboard and an on-screen panel.
type Game struct {
	m     *machine.Machine
	frame *render.Frame
	pacer *core.Pacer

	toggle     *hw.Level
	button     *hw.Level
	toggleLine hw.Line
	buttonLine hw.Line
	pot1       *hw.Knob
	pot2       *hw.Knob

	img *ebiten.Image
	buf []byte

	onColor  color.Color
	offColor color.Color
	scale    int
}

// NewGame builds an emulated board from cfg.
func NewGame(cfg *config.Config, scale int) *Game {
	w, h := cfg.DisplayWidth, cfg.DisplayHeight
	g := &Game{
		frame:    render.NewFrame(w, h, nil),
		pacer:    core.NewPacer(),
		toggle:   hw.NewLevel(cfg.ToggleActiveLow),
		button:   hw.NewLevel(cfg.ButtonActiveLow),
		pot1:     hw.NewKnob(cfg.ADCFullScale/2, cfg.ADCFullScale),
		pot2:     hw.NewKnob(cfg.ADCFullScale/2, cfg.ADCFullScale),
		img:      ebiten.NewImage(w, h),
		buf:      make([]byte, 4*w*h),
		onColor:  color.RGBA{R: 120, G: 200, B: 255, A: 255},
		offColor: color.Black,
		scale:    scale,
	}
	g.toggleLine = hw.Line{In: g.toggle, ActiveLow: cfg.ToggleActiveLow}
	g.buttonLine = hw.Line{In: g.button, ActiveLow: cfg.ButtonActiveLow}
	in := Inputs{Toggle: g.toggleLine, Button: g.buttonLine, Pot1: g.pot1, Pot2: g.pot2}
	g.m = NewMachine(cfg, g.frame, in, core.NewSystemClock(), Logger(cfg))
	return g
}

// Update reads the keyboard into the virtual controls and polls the machine
// whenever its last delay has passed.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.toggle.Set(!g.toggle.Read())
	}
	// Space holds the button at its active level.
	g.button.Set(ebiten.IsKeyPressed(ebiten.KeySpace) != g.buttonLine.ActiveLow)
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		g.pot1.Nudge(knobStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		g.pot1.Nudge(-knobStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		g.pot2.Nudge(knobStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		g.pot2.Nudge(-knobStep)
	}

	for i := 0; i < maxTicksPerFrame && g.pacer.Due(); i++ {
		d := g.m.Tick()
		g.pacer.Delay(d)
		if d > 0 {
			break
		}
	}
	return nil
}

// Draw renders the last shown panel frame and a status line.
func (g *Game) Draw(screen *ebiten.Image) {
	render.FillRGBA(g.buf, g.frame.Snapshot(), g.onColor, g.offColor)
	g.img.WritePixels(g.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)

	snap := g.m.Snapshot()
	h := g.img.Bounds().Dy()
	status := fmt.Sprintf("%s  bias %d  pots %d/%d  toggle %s\nT toggle  SPACE button  W/S E/D pots  Q quit",
		snap.State, snap.Bias, g.pot1.Read(), g.pot2.Read(), onOff(g.toggleLine.Active()))
	ebitenutil.DebugPrintAt(screen, status, 4, h*g.scale+2)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.img.Bounds()
	return b.Dx() * g.scale, b.Dy()*g.scale + statusHeight
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
