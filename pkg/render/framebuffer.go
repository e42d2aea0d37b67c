// Package render implements the CPU rasterization pipeline: vertex stage,
// edge-function rasterizer, depth-tested framebuffer and the presenters
// that put a finished frame on a terminal or into an image file.
package render

import "math"

// Framebuffer holds packed 0xRRGGBB pixels and a parallel depth buffer.
// len(Buffer) == len(Depth) == Width*Height always holds.
//
// For terminal output the height is 2x the terminal rows, one framebuffer
// row per half-block.
type Framebuffer struct {
	Width  int
	Height int
	Buffer []uint32  // row-major pixel data
	Depth  []float64 // smaller is closer; +Inf when cleared

	current    Color
	background Color
}

// NewFramebuffer creates a cleared framebuffer with a black background and
// a white drawing color.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	fb := &Framebuffer{
		Width:   width,
		Height:  height,
		Buffer:  make([]uint32, width*height),
		Depth:   make([]float64, width*height),
		current: ColorWhite,
	}
	fb.Clear()
	return fb
}

// Resize reallocates the buffers if the dimensions changed and clears.
func (fb *Framebuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width != fb.Width || height != fb.Height {
		fb.Width = width
		fb.Height = height
		fb.Buffer = make([]uint32, width*height)
		fb.Depth = make([]float64, width*height)
	}
	fb.Clear()
}

// SetBackgroundColor sets the color Clear fills with.
func (fb *Framebuffer) SetBackgroundColor(c Color) { fb.background = c }

// BackgroundColor returns the clear color.
func (fb *Framebuffer) BackgroundColor() Color { return fb.background }

// SetCurrentColor sets the color the next Point writes.
func (fb *Framebuffer) SetCurrentColor(c Color) { fb.current = c }

// CurrentColor returns the drawing color.
func (fb *Framebuffer) CurrentColor() Color { return fb.current }

// Clear fills every pixel with the background color and resets depth to
// +Inf.
func (fb *Framebuffer) Clear() {
	if len(fb.Buffer) == 0 {
		return
	}
	// Seed one element then double the copy window.
	fb.Buffer[0] = fb.background.Hex()
	for filled := 1; filled < len(fb.Buffer); filled *= 2 {
		copy(fb.Buffer[filled:], fb.Buffer[:filled])
	}
	fb.Depth[0] = math.Inf(1)
	for filled := 1; filled < len(fb.Depth); filled *= 2 {
		copy(fb.Depth[filled:], fb.Depth[:filled])
	}
}

// InBounds reports whether (x, y) addresses a pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// Point writes the current color at (x, y) if depth is strictly closer
// than the stored depth. Ties keep the existing pixel. Out-of-range
// coordinates and NaN depths are rejected. Reports whether the pixel was
// written.
func (fb *Framebuffer) Point(x, y int, depth float64) bool {
	if !fb.InBounds(x, y) {
		return false
	}
	idx := y*fb.Width + x
	if !(depth < fb.Depth[idx]) {
		return false
	}
	fb.Buffer[idx] = fb.current.Hex()
	fb.Depth[idx] = depth
	return true
}

// Pixel returns the color at (x, y), or black if out of bounds.
func (fb *Framebuffer) Pixel(x, y int) Color {
	if !fb.InBounds(x, y) {
		return ColorBlack
	}
	return ColorFromHex(fb.Buffer[y*fb.Width+x])
}

// DepthAt returns the stored depth at (x, y), or +Inf if out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if !fb.InBounds(x, y) {
		return math.Inf(1)
	}
	return fb.Depth[y*fb.Width+x]
}

// setPixel writes without a depth test.
func (fb *Framebuffer) setPixel(x, y int, c Color) {
	if !fb.InBounds(x, y) {
		return
	}
	fb.Buffer[y*fb.Width+x] = c.Hex()
}

// Line draws from (x0, y0) to (x1, y1) using Bresenham's algorithm. Lines
// ignore and do not update the depth buffer; they are an overlay.
func (fb *Framebuffer) Line(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.setPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
