package render

import (
	"math"
	"testing"
)

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.SetBackgroundColor(ColorSpace)
	fb.Clear()

	if len(fb.Buffer) != 12 || len(fb.Depth) != 12 {
		t.Fatalf("buffer lengths = %d/%d, want 12", len(fb.Buffer), len(fb.Depth))
	}
	for i := range fb.Buffer {
		if fb.Buffer[i] != 0x333355 {
			t.Errorf("Buffer[%d] = %06x, want 333355", i, fb.Buffer[i])
		}
		if !math.IsInf(fb.Depth[i], 1) {
			t.Errorf("Depth[%d] = %v, want +Inf", i, fb.Depth[i])
		}
	}
}

func TestFramebufferPointDepthTest(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Clear()
	fb.SetCurrentColor(ColorRed)

	if !fb.Point(2, 1, 0.5) {
		t.Fatal("first write should pass the depth test")
	}
	if fb.Buffer[1*4+2] != 0xFF0000 || fb.Depth[1*4+2] != 0.5 {
		t.Fatalf("pixel = %06x depth %v, want ff0000 at 0.5", fb.Buffer[6], fb.Depth[6])
	}

	fb.SetCurrentColor(ColorBlue)
	tests := []struct {
		name  string
		x, y  int
		depth float64
	}{
		{"farther", 2, 1, 0.9},
		{"tie", 2, 1, 0.5},
		{"nan", 2, 1, math.NaN()},
		{"right of buffer", 5, 1, 0},
		{"below buffer", 2, 3, 0},
		{"negative", -1, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if fb.Point(tc.x, tc.y, tc.depth) {
				t.Error("write should be rejected")
			}
		})
	}
	if got := fb.Pixel(2, 1); got != ColorRed {
		t.Errorf("pixel changed to %v", got)
	}
	if got := fb.DepthAt(2, 1); got != 0.5 {
		t.Errorf("depth changed to %v", got)
	}

	if !fb.Point(2, 1, 0.1) {
		t.Error("closer write should pass")
	}
	if got := fb.Pixel(2, 1); got != ColorBlue {
		t.Errorf("pixel = %v, want blue", got)
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Point(0, 0, 0)
	fb.Resize(10, 5)
	if fb.Width != 10 || fb.Height != 5 || len(fb.Buffer) != 50 || len(fb.Depth) != 50 {
		t.Fatalf("resized to %dx%d with %d/%d entries", fb.Width, fb.Height, len(fb.Buffer), len(fb.Depth))
	}
	if !math.IsInf(fb.DepthAt(0, 0), 1) {
		t.Error("resize should clear depth")
	}

	fb.Resize(-3, 2)
	if fb.Width != 0 || len(fb.Buffer) != 0 {
		t.Errorf("negative width should clamp to 0, got %d", fb.Width)
	}
}

func TestFramebufferLine(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Line(0, 0, 7, 7, ColorGreen)
	for i := range 8 {
		if got := fb.Pixel(i, i); got != ColorGreen {
			t.Errorf("pixel (%d,%d) = %v, want green", i, i, got)
		}
	}
	if !math.IsInf(fb.DepthAt(3, 3), 1) {
		t.Error("lines must not write depth")
	}

	// Endpoints outside the buffer are clipped per pixel.
	fb.Line(-4, 2, 20, 2, ColorRed)
	if got := fb.Pixel(7, 2); got != ColorRed {
		t.Errorf("pixel (7,2) = %v, want red", got)
	}
}

func BenchmarkFramebufferClear(b *testing.B) {
	fb := NewFramebuffer(320, 200)
	for b.Loop() {
		fb.Clear()
	}
}
