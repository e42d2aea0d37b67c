package shaders

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/planetarium/pkg/math3d"
	"github.com/taigrr/planetarium/pkg/render"
)

func frag(n math3d.Vec3, intensity float64) render.Fragment {
	return render.Fragment{
		VertexPosition: n,
		Intensity:      intensity,
		Color:          render.ColorWhite,
	}
}

// spherePoints samples directions on the unit sphere with a Fibonacci
// spiral.
func spherePoints(n int) []math3d.Vec3 {
	pts := make([]math3d.Vec3, n)
	golden := math.Pi * (3 - math.Sqrt(5))
	for i := range n {
		y := 1 - 2*(float64(i)+0.5)/float64(n)
		r := math.Sqrt(1 - y*y)
		theta := golden * float64(i)
		pts[i] = math3d.V3(r*math.Cos(theta), y, r*math.Sin(theta))
	}
	return pts
}

func TestShadersDeterministic(t *testing.T) {
	u := &render.Uniforms{Time: 1234}
	for _, name := range Default().Names() {
		t.Run(name, func(t *testing.T) {
			s, ok := Default().Lookup(name)
			require.True(t, ok)
			for _, p := range spherePoints(50) {
				f := frag(p, 0.8)
				assert.Equal(t, s(f, u, 1), s(f, u, 1), "point %v", p)
			}
		})
	}
}

func TestLitShadersGoDarkWithoutLight(t *testing.T) {
	u := &render.Uniforms{Time: 42}
	lit := []string{NameEarth, NameMoon, NameGasGiant, NameIceGiant, NameMars, NameFlat}
	for _, name := range lit {
		t.Run(name, func(t *testing.T) {
			s, _ := Default().Lookup(name)
			for _, p := range spherePoints(50) {
				assert.Equal(t, render.ColorBlack, s(frag(p, 0), u, 1), "point %v", p)
			}
		})
	}
}

func TestSunGradient(t *testing.T) {
	u := &render.Uniforms{}

	center := Sun(frag(math3d.V3(0, 0, 1), 0), u, 3)
	assert.Equal(t, uint8(255), center.R)
	assert.Greater(t, center.B, uint8(150), "disc center should be near white, got %v", center)

	rim := Sun(frag(math3d.V3(1, 0, 0), 0), u, 3)
	assert.LessOrEqual(t, rim.B, uint8(51), "rim should be orange, got %v", rim)
	assert.GreaterOrEqual(t, rim.R, uint8(204))
}

func TestGasGiantBands(t *testing.T) {
	u := &render.Uniforms{}
	seen := map[render.Color]bool{}
	for y := -0.9; y <= 0.9; y += 0.05 {
		p := math3d.V3(math.Sqrt(1-y*y), y, 0)
		seen[GasGiant(frag(p, 1), u, 4)] = true
	}
	assert.Greater(t, len(seen), 5, "bands should vary with latitude")
}

func TestGasGiantAnimates(t *testing.T) {
	p := math3d.V3(0.6, 0.3, 0.74)
	a := GasGiant(frag(p, 1), &render.Uniforms{Time: 0}, 4)
	b := GasGiant(frag(p, 1), &render.Uniforms{Time: 100}, 4)
	assert.NotEqual(t, a, b)
}

func TestLavaGlowsOnNightSide(t *testing.T) {
	u := &render.Uniforms{Time: 10}
	glowing := 0
	for _, p := range spherePoints(500) {
		if Lava(frag(p, 0), u, 6) != render.ColorBlack {
			glowing++
		}
	}
	assert.Positive(t, glowing, "cracks should emit light without lighting")
	assert.Less(t, glowing, 500, "crust should stay dark without lighting")
}

func TestFlatUsesVertexColor(t *testing.T) {
	f := frag(math3d.V3(0, 0, 1), 0.5)
	f.Color = render.RGB(200, 100, 50)
	assert.Equal(t, render.RGB(100, 50, 25), Flat(f, &render.Uniforms{}, 0))
}

func TestNormalsShader(t *testing.T) {
	got := Normals(frag(math3d.V3(0, 0, 2), 0), &render.Uniforms{}, 0)
	assert.Equal(t, render.RGB(128, 128, 255), got)
}
