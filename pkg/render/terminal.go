package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// halfBlock is the upper half block; fg paints the top pixel, bg the
// bottom one.
const halfBlock = "▀"

// FramebufferSize returns the framebuffer dimensions that exactly fill a
// terminal of cols x rows cells.
func FramebufferSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Draw converts the framebuffer to half-block cells and draws them into
// area. Framebuffer row 2k maps to the top half of terminal row k of the
// area, row 2k+1 to the bottom half.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		if topY >= fb.Height {
			break
		}
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			bot := fb.background
			if botY < fb.Height {
				bot = fb.Pixel(x, botY)
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: halfBlock,
				Width:   1,
				Style: uv.Style{
					Fg: fb.Pixel(x, topY),
					Bg: bot,
				},
			})
		}
	}
}
