package render

import (
	"math"

	"github.com/taigrr/planetarium/pkg/math3d"
)

// LightingMode selects where the diffuse term is evaluated.
type LightingMode int

const (
	// LightingFlat computes one intensity per triangle from the normalized
	// sum of its three normals.
	LightingFlat LightingMode = iota
	// LightingPerFragment uses the interpolated normal of each fragment.
	LightingPerFragment
)

// Lighting is a single directional light with an ambient floor.
type Lighting struct {
	Direction math3d.Vec3 // towards the light
	Ambient   float64     // minimum intensity in [0, 1]
	Mode      LightingMode
}

// DefaultLighting is a light straight down the view axis with no ambient
// term.
func DefaultLighting() Lighting {
	return Lighting{Direction: math3d.V3(0, 0, 1)}
}

// intensity maps a surface normal to a lighting factor in [0, 1].
func (l Lighting) intensity(normal math3d.Vec3) float64 {
	diffuse := math.Max(0, normal.Normalize().Dot(l.Direction.Normalize()))
	return clamp01(l.Ambient + (1-l.Ambient)*diffuse)
}

// maxUnclampedCoord bounds the pixel box when no extent is set so the
// integer conversion stays defined.
const maxUnclampedCoord = 1 << 20

// Rasterizer turns screen-space triangles into fragments using edge
// functions. Front faces are clockwise on screen (counter-clockwise in
// NDC before the viewport's y flip); anything else is culled.
type Rasterizer struct {
	Lighting Lighting

	width, height int
	clamp         bool
}

// NewRasterizer creates a rasterizer with default lighting and no extent.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{Lighting: DefaultLighting()}
}

// SetExtent clamps generated fragments to [0,w) x [0,h).
func (r *Rasterizer) SetExtent(width, height int) {
	r.width, r.height = width, height
	r.clamp = true
}

// ClearExtent removes the clamp; fragments may then lie off-screen.
func (r *Rasterizer) ClearExtent() {
	r.clamp = false
}

// Triangle rasterizes with default lighting and no extent.
func Triangle(a, b, c Vertex) []Fragment {
	return NewRasterizer().Triangle(a, b, c)
}

// Triangle returns the fragments covered by the triangle abc.
func (r *Rasterizer) Triangle(a, b, c Vertex) []Fragment {
	var frags []Fragment
	r.TriangleFunc(a, b, c, func(f Fragment) {
		frags = append(frags, f)
	})
	return frags
}

// TriangleFunc streams the covered fragments of abc to emit and returns
// how many were emitted. A pixel is covered when its center (x+0.5, y+0.5)
// has all three barycentric weights >= 0, so pixels on a shared edge are
// produced by both triangles. Degenerate, back-facing and non-finite
// triangles emit nothing.
func (r *Rasterizer) TriangleFunc(a, b, c Vertex, emit func(Fragment)) int {
	p0, p1, p2 := a.TransformedPosition, b.TransformedPosition, c.TransformedPosition
	if !p0.IsFinite() || !p1.IsFinite() || !p2.IsFinite() {
		return 0
	}

	area := (p1.X-p0.X)*(p2.Y-p0.Y) - (p1.Y-p0.Y)*(p2.X-p0.X)
	if !(area > 0) {
		return 0
	}
	invArea := 1 / area

	minX, maxX, minY, maxY, ok := r.box(p0, p1, p2)
	if !ok {
		return 0
	}

	// Edge i is opposite vertex i, so its value is that vertex's weight.
	a0, b0, c0 := edgeCoeffs(p1.X, p1.Y, p2.X, p2.Y)
	a1, b1, c1 := edgeCoeffs(p2.X, p2.Y, p0.X, p0.Y)
	a2, b2, c2 := edgeCoeffs(p0.X, p0.Y, p1.X, p1.Y)

	n0, n1, n2 := a.TransformedNormal, b.TransformedNormal, c.TransformedNormal
	k0, k1, k2 := colorVec(a.Color), colorVec(b.Color), colorVec(c.Color)
	perspective := a.ClipW > 0 && b.ClipW > 0 && c.ClipW > 0
	var iw0, iw1, iw2 float64
	if perspective {
		iw0, iw1, iw2 = 1/a.ClipW, 1/b.ClipW, 1/c.ClipW
	}

	flat := r.Lighting.Mode == LightingFlat
	var faceIntensity float64
	if flat {
		faceIntensity = r.Lighting.intensity(n0.Add(n1).Add(n2))
	}

	count := 0
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		px := float64(minX) + 0.5
		w0 := a0*px + b0*py + c0
		w1 := a1*px + b1*py + c1
		w2 := a2*px + b2*py + c2

		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				bc := math3d.V3(w0*invArea, w1*invArea, w2*invArea)

				attr := bc
				if perspective {
					attr = math3d.V3(bc.X*iw0, bc.Y*iw1, bc.Z*iw2)
					attr = attr.Scale(1 / (attr.X + attr.Y + attr.Z))
				}
				normal := math3d.Blend3(n0, n1, n2, attr)
				k := math3d.Blend3(k0, k1, k2, attr)

				intensity := faceIntensity
				if !flat {
					intensity = r.Lighting.intensity(normal)
				}

				emit(Fragment{
					Position:       math3d.V2(float64(x), float64(y)),
					Depth:          bc.X*p0.Z + bc.Y*p1.Z + bc.Z*p2.Z,
					VertexPosition: normal,
					Intensity:      intensity,
					Barycentric:    bc,
					Color:          ColorFromFloat(k.X, k.Y, k.Z),
				})
				count++
			}
			w0 += a0
			w1 += a1
			w2 += a2
		}
	}
	return count
}

// box returns the inclusive integer pixel range touched by the triangle,
// clamped to the extent when one is set.
func (r *Rasterizer) box(p0, p1, p2 math3d.Vec3) (minX, maxX, minY, maxY int, ok bool) {
	loX := math.Floor(min(p0.X, p1.X, p2.X))
	hiX := math.Ceil(max(p0.X, p1.X, p2.X))
	loY := math.Floor(min(p0.Y, p1.Y, p2.Y))
	hiY := math.Ceil(max(p0.Y, p1.Y, p2.Y))

	limLoX, limHiX := float64(-maxUnclampedCoord), float64(maxUnclampedCoord)
	limLoY, limHiY := limLoX, limHiX
	if r.clamp {
		limLoX, limHiX = 0, float64(r.width-1)
		limLoY, limHiY = 0, float64(r.height-1)
	}
	loX, hiX = max(loX, limLoX), min(hiX, limHiX)
	loY, hiY = max(loY, limLoY), min(hiY, limHiY)
	if loX > hiX || loY > hiY {
		return 0, 0, 0, 0, false
	}
	return int(loX), int(hiX), int(loY), int(hiY), true
}

func colorVec(c Color) math3d.Vec3 {
	return math3d.V3(float64(c.R), float64(c.G), float64(c.B))
}

// edgeCoeffs returns A, B, C such that A*x + B*y + C is the signed
// parallelogram area of (x0,y0)->(x1,y1)->(x,y). Stepping one pixel in x
// adds A, stepping in y adds B.
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	return y0 - y1, x1 - x0, x0*y1 - x1*y0
}
