package render

import (
	"github.com/taigrr/planetarium/pkg/math3d"
)

// Wireframe draws depth-less line overlays on a framebuffer.
type Wireframe struct {
	fb    *Framebuffer
	Color Color
}

// NewWireframe creates an overlay drawer in c.
func NewWireframe(fb *Framebuffer, c Color) *Wireframe {
	return &Wireframe{fb: fb, Color: c}
}

// DrawTriangles outlines every front-facing triangle of an already shaded
// vertex array.
func (w *Wireframe) DrawTriangles(shaded []Vertex) {
	for i := 0; i+2 < len(shaded); i += 3 {
		p0 := shaded[i].TransformedPosition
		p1 := shaded[i+1].TransformedPosition
		p2 := shaded[i+2].TransformedPosition
		if !p0.IsFinite() || !p1.IsFinite() || !p2.IsFinite() {
			continue
		}
		if (p1.X-p0.X)*(p2.Y-p0.Y)-(p1.Y-p0.Y)*(p2.X-p0.X) <= 0 {
			continue
		}
		w.line(p0, p1)
		w.line(p1, p2)
		w.line(p2, p0)
	}
}

// boxEdges indexes corner pairs of an AABB; bit 0 is x, bit 1 y, bit 2 z.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// DrawBounds projects a model-space box with the uniforms and outlines its
// twelve edges. Edges with an endpoint behind the eye are skipped.
func (w *Wireframe) DrawBounds(u *Uniforms, box AABB) {
	mvp := u.Projection.Mul(u.View).Mul(u.Model)
	var screen [8]math3d.Vec3
	var front [8]bool
	for i := range 8 {
		corner := math3d.V3(
			pick(i&1 != 0, box.Max.X, box.Min.X),
			pick(i&2 != 0, box.Max.Y, box.Min.Y),
			pick(i&4 != 0, box.Max.Z, box.Min.Z),
		)
		clip := mvp.MulVec4(math3d.V4FromV3(corner, 1))
		front[i] = clip.W > 0
		screen[i] = u.Viewport.MulVec3(clip.PerspectiveDivide())
	}
	for _, e := range boxEdges {
		if front[e[0]] && front[e[1]] {
			w.line(screen[e[0]], screen[e[1]])
		}
	}
}

func (w *Wireframe) line(a, b math3d.Vec3) {
	if !onCanvas(a) || !onCanvas(b) {
		return
	}
	w.fb.Line(int(a.X), int(a.Y), int(b.X), int(b.Y), w.Color)
}

// onCanvas rejects points so far away that walking a line to them would
// stall the frame.
func onCanvas(p math3d.Vec3) bool {
	const lim = maxUnclampedCoord
	return p.IsFinite() && p.X > -lim && p.X < lim && p.Y > -lim && p.Y < lim
}
