package render

import (
	"image"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Sink receives finished frames. *ssd1306.Dev satisfies it.
type Sink interface {
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// Frame is a monochrome off-screen buffer in the SSD1306 page layout. It
// implements hw.Display.
type Frame struct {
	img  *image1bit.VerticalLSB
	face font.Face
	sink Sink

	mu    sync.Mutex
	shown *image1bit.VerticalLSB
}

// NewFrame allocates a w×h buffer that is pushed to sink on Show. sink may be
// nil, in which case Show only updates the snapshot.
func NewFrame(w, h int, sink Sink) *Frame {
	r := image.Rect(0, 0, w, h)
	return &Frame{
		img:   image1bit.NewVerticalLSB(r),
		face:  basicfont.Face7x13,
		sink:  sink,
		shown: image1bit.NewVerticalLSB(r),
	}
}

// Clear blanks the buffer.
func (f *Frame) Clear() { clear(f.img.Pix) }

// FillRect lights every pixel of the w×h rectangle at (x, y), clipped to the
// buffer.
func (f *Frame) FillRect(x, y, w, h int) {
	r := image.Rect(x, y, x+w, y+h)
	draw.Draw(f.img, r, &image.Uniform{C: image1bit.On}, image.Point{}, draw.Src)
}

// Text draws s with the top-left corner of its first glyph at (x, y).
func (f *Frame) Text(s string, x, y int) {
	d := font.Drawer{
		Dst:  f.img,
		Src:  &image.Uniform{C: image1bit.On},
		Face: f.face,
		Dot:  fixed.P(x, y+f.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// Show pushes the buffer to the sink and records it as the visible frame.
func (f *Frame) Show() error {
	f.mu.Lock()
	copy(f.shown.Pix, f.img.Pix)
	f.mu.Unlock()
	if f.sink == nil {
		return nil
	}
	return f.sink.Draw(f.img.Bounds(), f.img, image.Point{})
}

// Snapshot returns a copy of the last frame passed to Show.
func (f *Frame) Snapshot() *image1bit.VerticalLSB {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := image1bit.NewVerticalLSB(f.shown.Bounds())
	copy(out.Pix, f.shown.Pix)
	return out
}

// Lit reports whether the pixel at (x, y) is on in the working buffer.
func (f *Frame) Lit(x, y int) bool { return bool(f.img.BitAt(x, y)) }
