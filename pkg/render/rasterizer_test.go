package render

import (
	"math"
	"testing"

	"github.com/taigrr/planetarium/pkg/math3d"
)

// sv builds a vertex already in screen space facing the viewer.
func sv(x, y, z float64) Vertex {
	return Vertex{
		TransformedPosition: math3d.V3(x, y, z),
		TransformedNormal:   math3d.V3(0, 0, 1),
	}
}

func TestTriangleCoverage(t *testing.T) {
	frags := Triangle(sv(0, 0, 0), sv(4, 0, 0), sv(0, 4, 0))
	if len(frags) != 10 {
		t.Fatalf("got %d fragments, want 10", len(frags))
	}

	seen := make(map[[2]int]bool)
	for _, f := range frags {
		x, y := int(f.Position.X), int(f.Position.Y)
		if x+y > 3 || x < 0 || y < 0 {
			t.Errorf("fragment (%d, %d) outside the triangle", x, y)
		}
		if seen[[2]int{x, y}] {
			t.Errorf("fragment (%d, %d) emitted twice", x, y)
		}
		seen[[2]int{x, y}] = true

		sum := f.Barycentric.X + f.Barycentric.Y + f.Barycentric.Z
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("weights at (%d, %d) sum to %v, want 1", x, y, sum)
		}
		if f.Barycentric.X < 0 || f.Barycentric.Y < 0 || f.Barycentric.Z < 0 {
			t.Errorf("negative weight at (%d, %d): %v", x, y, f.Barycentric)
		}
	}
}

func TestTriangleRejects(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		name    string
		a, b, c Vertex
	}{
		{"collinear", sv(0, 0, 0), sv(2, 2, 0), sv(4, 4, 0)},
		{"repeated vertex", sv(1, 1, 0), sv(1, 1, 0), sv(3, 0, 0)},
		{"back face", sv(0, 0, 0), sv(0, 4, 0), sv(4, 0, 0)},
		{"infinite", sv(0, 0, 0), sv(inf, 0, 0), sv(0, 4, 0)},
		{"nan", sv(0, 0, 0), sv(4, 0, 0), sv(0, math.NaN(), 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if frags := Triangle(tc.a, tc.b, tc.c); len(frags) != 0 {
				t.Errorf("got %d fragments, want 0", len(frags))
			}
		})
	}
}

func TestTriangleDepthInterpolation(t *testing.T) {
	frags := Triangle(sv(0, 0, 0), sv(8, 0, 1), sv(0, 8, 1))
	for _, f := range frags {
		want := f.Barycentric.Y + f.Barycentric.Z
		if math.Abs(f.Depth-want) > 1e-9 {
			t.Errorf("depth at %v = %v, want %v", f.Position, f.Depth, want)
		}
		if f.Depth < 0 || f.Depth > 1 {
			t.Errorf("depth %v outside the vertex range", f.Depth)
		}
	}
}

func TestTriangleBoundedByBox(t *testing.T) {
	a, b, c := sv(1.2, 0.3, 0), sv(17.9, 5.5, 0), sv(3.1, 12.8, 0)
	frags := Triangle(a, b, c)
	boxArea := (math.Ceil(17.9) - math.Floor(1.2) + 1) * (math.Ceil(12.8) - math.Floor(0.3) + 1)
	if len(frags) == 0 || float64(len(frags)) > boxArea {
		t.Errorf("got %d fragments, want 1..%v", len(frags), boxArea)
	}
}

func TestTriangleExtent(t *testing.T) {
	r := NewRasterizer()
	a, b, c := sv(-10, -10, 0), sv(30, -10, 0), sv(-10, 30, 0)

	unclamped := r.Triangle(a, b, c)
	r.SetExtent(8, 6)
	clamped := r.Triangle(a, b, c)

	if len(clamped) != 48 {
		t.Errorf("clamped fragments = %d, want 48 (whole 8x6 screen)", len(clamped))
	}
	for _, f := range clamped {
		if f.Position.X < 0 || f.Position.X >= 8 || f.Position.Y < 0 || f.Position.Y >= 6 {
			t.Errorf("fragment %v outside extent", f.Position)
		}
	}
	if len(unclamped) <= len(clamped) {
		t.Errorf("unclamped fragments = %d, want more than %d", len(unclamped), len(clamped))
	}

	r.SetExtent(8, 6)
	if frags := r.Triangle(sv(100, 100, 0), sv(110, 100, 0), sv(100, 110, 0)); len(frags) != 0 {
		t.Errorf("off-screen triangle produced %d fragments", len(frags))
	}
}

func TestSharedEdgeDoubleCover(t *testing.T) {
	// Two triangles splitting a 4x4 square along the diagonal x+y=4.
	first := Triangle(sv(0, 0, 0), sv(4, 0, 0), sv(0, 4, 0))
	second := Triangle(sv(4, 0, 0), sv(4, 4, 0), sv(0, 4, 0))

	covered := make(map[[2]int]int)
	for _, f := range append(first, second...) {
		covered[[2]int{int(f.Position.X), int(f.Position.Y)}]++
	}
	if len(covered) != 16 {
		t.Errorf("square covers %d pixels, want 16", len(covered))
	}
	doubled := 0
	for _, n := range covered {
		if n > 1 {
			doubled++
		}
	}
	if doubled != 4 {
		t.Errorf("%d pixels on the diagonal covered twice, want 4", doubled)
	}
}

func TestFlatLighting(t *testing.T) {
	lit := func(t *testing.T, n math3d.Vec3, l Lighting) float64 {
		t.Helper()
		r := NewRasterizer()
		r.Lighting = l
		a, b, c := sv(0, 0, 0), sv(4, 0, 0), sv(0, 4, 0)
		a.TransformedNormal, b.TransformedNormal, c.TransformedNormal = n, n, n
		frags := r.Triangle(a, b, c)
		if len(frags) == 0 {
			t.Fatal("no fragments")
		}
		for _, f := range frags[1:] {
			if f.Intensity != frags[0].Intensity {
				t.Fatalf("flat intensity varies: %v vs %v", f.Intensity, frags[0].Intensity)
			}
		}
		return frags[0].Intensity
	}

	tests := []struct {
		name   string
		normal math3d.Vec3
		light  Lighting
		want   float64
	}{
		{"facing light", math3d.V3(0, 0, 1), DefaultLighting(), 1},
		{"unnormalized normal", math3d.V3(0, 0, 7), DefaultLighting(), 1},
		{"facing away", math3d.V3(0, 0, -1), DefaultLighting(), 0},
		{"grazing", math3d.V3(1, 0, 0), DefaultLighting(), 0},
		{"45 degrees", math3d.V3(1, 0, 1), DefaultLighting(), math.Sqrt2 / 2},
		{"ambient floor", math3d.V3(0, 0, -1), Lighting{Direction: math3d.V3(0, 0, 1), Ambient: 0.2}, 0.2},
		{"ambient lit", math3d.V3(0, 0, 1), Lighting{Direction: math3d.V3(0, 0, 1), Ambient: 0.2}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := lit(t, tc.normal, tc.light); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("intensity = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPerFragmentLighting(t *testing.T) {
	r := NewRasterizer()
	r.Lighting.Mode = LightingPerFragment
	a, b, c := sv(0, 0, 0), sv(16, 0, 0), sv(0, 16, 0)
	a.TransformedNormal = math3d.V3(0, 0, 1)
	b.TransformedNormal = math3d.V3(1, 0, 0)
	c.TransformedNormal = math3d.V3(0, 0, 1)

	frags := r.Triangle(a, b, c)
	var lo, hi = 1.0, 0.0
	for _, f := range frags {
		if f.Intensity < 0 || f.Intensity > 1 {
			t.Fatalf("intensity %v out of range", f.Intensity)
		}
		lo, hi = min(lo, f.Intensity), max(hi, f.Intensity)
	}
	if hi-lo < 0.1 {
		t.Errorf("per-fragment intensity should vary, got range [%v, %v]", lo, hi)
	}
}

func TestPerspectiveCorrectAttributes(t *testing.T) {
	a, b, c := sv(0, 0, 0), sv(16, 0, 0), sv(0, 16, 0)
	a.TransformedNormal = math3d.V3(1, 0, 0)
	b.TransformedNormal = math3d.V3(0, 1, 0)
	c.TransformedNormal = math3d.V3(0, 0, 1)

	// Without w the attribute weights are the screen weights.
	for _, f := range Triangle(a, b, c) {
		if !vecClose(f.VertexPosition, f.Barycentric) {
			t.Fatalf("screen-space attribute %v, want %v", f.VertexPosition, f.Barycentric)
		}
	}

	a.ClipW, b.ClipW, c.ClipW = 1, 4, 1
	for _, f := range Triangle(a, b, c) {
		bc := f.Barycentric
		pw := math3d.V3(bc.X, bc.Y/4, bc.Z)
		want := pw.Scale(1 / (pw.X + pw.Y + pw.Z))
		if !vecClose(f.VertexPosition, want) {
			t.Fatalf("perspective attribute at %v = %v, want %v", f.Position, f.VertexPosition, want)
		}
		if math.Abs(f.Depth-0) > 1e-12 {
			t.Fatalf("depth should stay screen-space, got %v", f.Depth)
		}
	}
}

func TestVertexColorInterpolation(t *testing.T) {
	a, b, c := sv(0, 0, 0), sv(16, 0, 0), sv(0, 16, 0)
	a.Color, b.Color, c.Color = ColorRed, ColorGreen, ColorBlue

	for _, f := range Triangle(a, b, c) {
		bc := f.Barycentric
		want := ColorFromFloat(bc.X*255, bc.Y*255, bc.Z*255)
		if f.Color != want {
			t.Fatalf("color at %v = %v, want %v", f.Position, f.Color, want)
		}
	}

	a.Color, b.Color, c.Color = ColorSpace, ColorSpace, ColorSpace
	for _, f := range Triangle(a, b, c) {
		if f.Color != ColorSpace {
			t.Fatalf("uniform color at %v = %v, want %v", f.Position, f.Color, ColorSpace)
		}
	}
}

func vecClose(a, b math3d.Vec3) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9 && math.Abs(a.Z-b.Z) < 1e-9
}

func BenchmarkTriangle(b *testing.B) {
	r := NewRasterizer()
	r.SetExtent(200, 200)
	v0, v1, v2 := sv(10, 10, 0.5), sv(190, 40, 0.5), sv(60, 180, 0.5)
	for b.Loop() {
		r.TriangleFunc(v0, v1, v2, func(Fragment) {})
	}
}
