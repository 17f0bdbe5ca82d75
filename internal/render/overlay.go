package render

import (
	"fmt"

	"micro-life/internal/core"
	"micro-life/internal/hw"
)

// Text positions on the 128×64 panel.
const (
	timeX   = 0
	stepX   = 80
	titleX  = 20
	titleY  = 20
	subX    = 10
	subY    = 40
	promptX = 10
)

// promptLineHeight matches basicfont.Face7x13.
const promptLineHeight = 13

// Banner draws the startup screen.
func Banner(d hw.Display) {
	d.Clear()
	d.Text("Micro", titleX, titleY)
	d.Text("Game of Life", subX, subY)
}

// Generation draws the header band with the elapsed seconds and generation
// counter, then one filled square per live cell below it. The buffer is
// cleared first; Show is left to the caller.
func Generation(d hw.Display, g *core.Grid, l core.Layout, elapsed, step int) {
	if elapsed < 0 || step < 0 {
		panic(fmt.Sprintf("render: negative counters (elapsed %d, step %d)", elapsed, step))
	}
	d.Clear()
	d.Text(fmt.Sprintf("Time: %ds", elapsed), timeX, 0)
	d.Text(fmt.Sprintf("T: %d", step), stepX, 0)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if !g.Alive(x, y) {
				continue
			}
			px, py := l.CellOrigin(x, y)
			d.FillRect(px, py, l.Cell, l.Cell)
		}
	}
}

// Prompt writes the start prompt on the bottom text line, over whatever the
// buffer already holds.
func Prompt(d hw.Display, l core.Layout) {
	d.Text("Press Button", promptX, l.Display.H-promptLineHeight)
}
