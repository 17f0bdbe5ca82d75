// Package life implements Conway's Game of Life on a bounded grid: cells
// beyond the edges are permanently dead.
package life

import "micro-life/internal/core"

// Neighbors counts the live cells among the eight cells surrounding (x, y).
// Positions outside the grid count as dead.
func Neighbors(g *core.Grid, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= g.H {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if nx < 0 || nx >= g.W {
				continue
			}
			if g.Alive(nx, ny) {
				n++
			}
		}
	}
	return n
}

// Rule is the B3/S23 transition: a live cell survives with two or three
// neighbours, a dead cell is born with exactly three.
func Rule(alive bool, neighbors int) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == 3
}

// Step advances g by one generation. Every next state is computed from the
// current generation before any of them becomes visible.
func Step(g *core.Grid) {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			g.SetNext(x, y, Rule(g.Alive(x, y), Neighbors(g, x, y)))
		}
	}
	g.Commit()
}
