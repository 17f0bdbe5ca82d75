package core

// Size describes the dimensions of a simulation grid or a display surface.
type Size struct {
	W int
	H int
}

// Layout maps grid cells onto a display with a reserved header band.
type Layout struct {
	Display Size
	Header  int
	Cell    int
}

// GridSize derives the grid dimensions that fit below the header band.
func (l Layout) GridSize() Size {
	if l.Cell <= 0 {
		return Size{}
	}
	return Size{W: l.Display.W / l.Cell, H: (l.Display.H - l.Header) / l.Cell}
}

// CellOrigin returns the top-left pixel of cell (x, y).
func (l Layout) CellOrigin(x, y int) (int, int) {
	return x * l.Cell, y*l.Cell + l.Header
}
