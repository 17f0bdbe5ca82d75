package core

import "fmt"

// Grid is a fixed-size matrix of alive/dead cells stored in row-major order.
// It keeps two buffers: the current generation, which is what readers see,
// and the next generation, which is written cell by cell and only becomes
// visible on Commit.
type Grid struct {
	W, H int
	cur  []bool
	nxt  []bool
}

// NewGrid allocates an all-dead grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, cur: make([]bool, w*h), nxt: make([]bool, w*h)}
}

// Size reports the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		panic(fmt.Sprintf("core: cell (%d,%d) outside %dx%d grid", x, y, g.W, g.H))
	}
	return y*g.W + x
}

// Alive reports whether the cell at (x, y) is alive in the current generation.
func (g *Grid) Alive(x, y int) bool { return g.cur[g.Index(x, y)] }

// Set changes a single cell of the current generation.
func (g *Grid) Set(x, y int, alive bool) { g.cur[g.Index(x, y)] = alive }

// Fill overwrites every cell of the current generation with fn(x, y).
func (g *Grid) Fill(fn func(x, y int) bool) {
	for y := 0; y < g.H; y++ {
		row := y * g.W
		for x := 0; x < g.W; x++ {
			g.cur[row+x] = fn(x, y)
		}
	}
}

// Clear kills every cell in both buffers.
func (g *Grid) Clear() {
	clear(g.cur)
	clear(g.nxt)
}

// SetNext records the state (x, y) will have once Commit is called.
func (g *Grid) SetNext(x, y int, alive bool) { g.nxt[g.Index(x, y)] = alive }

// Commit makes the next buffer the current generation.
func (g *Grid) Commit() { g.cur, g.nxt = g.nxt, g.cur }

// Population counts the live cells of the current generation.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cur {
		if c {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the current generation.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.W, g.H)
	copy(c.cur, g.cur)
	return c
}

// Equal reports whether both grids have the same size and current cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.W != o.W || g.H != o.H {
		return false
	}
	for i := range g.cur {
		if g.cur[i] != o.cur[i] {
			return false
		}
	}
	return true
}

// String renders the current generation using '#' and '.', one row per line.
func (g *Grid) String() string {
	buf := make([]byte, 0, (g.W+1)*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.cur[y*g.W+x] {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
