package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an 8-bit-per-channel RGB value. All arithmetic saturates to
// [0, 255]; nothing wraps.
type Color struct {
	R, G, B uint8
}

// Colors for convenience
var (
	ColorBlack = Color{0, 0, 0}
	ColorWhite = Color{255, 255, 255}
	ColorRed   = Color{255, 0, 0}
	ColorGreen = Color{0, 255, 0}
	ColorBlue  = Color{0, 0, 255}
	ColorSpace = Color{0x33, 0x33, 0x55}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// ColorFromHex unpacks a 0xRRGGBB value.
func ColorFromHex(hex uint32) Color {
	return Color{uint8(hex >> 16), uint8(hex >> 8), uint8(hex)}
}

// ColorFromFloat builds a color from channel values in [0, 255],
// clamping anything outside that range.
func ColorFromFloat(r, g, b float64) Color {
	return Color{clamp8(r), clamp8(g), clamp8(b)}
}

// ParseColor accepts "#RRGGBB", "0xRRGGBB" or "R,G,B".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if parts := strings.Split(s, ","); len(parts) == 3 {
		var ch [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return Color{}, fmt.Errorf("parse color %q: %w", s, err)
			}
			ch[i] = uint8(v)
		}
		return Color{ch[0], ch[1], ch[2]}, nil
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("parse color %q: want #RRGGBB or R,G,B", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return ColorFromHex(uint32(v)), nil
}

// Hex packs the color as 0xRRGGBB.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Lerp linearly interpolates from c to o. t is clamped to [0, 1].
func (c Color) Lerp(o Color, t float64) Color {
	t = clamp01(t)
	return Color{
		clamp8(float64(c.R) + (float64(o.R)-float64(c.R))*t),
		clamp8(float64(c.G) + (float64(o.G)-float64(c.G))*t),
		clamp8(float64(c.B) + (float64(o.B)-float64(c.B))*t),
	}
}

// Scale multiplies every channel by s (for lighting).
func (c Color) Scale(s float64) Color {
	return Color{
		clamp8(float64(c.R) * s),
		clamp8(float64(c.G) * s),
		clamp8(float64(c.B) * s),
	}
}

// Add returns the saturating channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{
		addSat(c.R, o.R),
		addSat(c.G, o.G),
		addSat(c.B, o.B),
	}
}

// Mul modulates c by o, treating o as a 0-1 filter.
func (c Color) Mul(o Color) Color {
	return Color{
		uint8(uint16(c.R) * uint16(o.R) / 255),
		uint8(uint16(c.G) * uint16(o.G) / 255),
		uint8(uint16(c.B) * uint16(o.B) / 255),
	}
}

// RGBA implements color.Color. The color is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 255}.RGBA()
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func clamp8(v float64) uint8 {
	if !(v > 0) { // also catches NaN
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
