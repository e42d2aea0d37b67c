package shaders

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taigrr/planetarium/pkg/math3d"
)

func TestNoiseRange(t *testing.T) {
	for _, p := range spherePoints(200) {
		q := p.Scale(7.3)
		for name, v := range map[string]float64{
			"hash":  Hash(q),
			"value": ValueNoise(q),
			"fbm":   FBM(q, 5),
		} {
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.Less(t, v, 1.0, name)
		}
	}
}

func TestValueNoiseMatchesHashOnLattice(t *testing.T) {
	p := math3d.V3(3, -2, 5)
	assert.InDelta(t, Hash(p), ValueNoise(p), 1e-12)
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"below", -1, 0},
		{"low edge", 0, 0},
		{"middle", 0.5, 0.5},
		{"high edge", 1, 1},
		{"above", 2, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Smoothstep(0, 1, tc.x), 1e-12)
		})
	}
	assert.Equal(t, 1.0, Smoothstep(0.5, 0.5, 0.7))
}

func TestLatLong(t *testing.T) {
	lat, lon := LatLong(math3d.V3(0, 3, 0))
	assert.InDelta(t, math.Pi/2, lat, 1e-12)
	assert.InDelta(t, 0, lon, 1e-12)

	lat, lon = LatLong(math3d.V3(0, 0, 1))
	assert.InDelta(t, 0, lat, 1e-12)
	assert.InDelta(t, math.Pi/2, lon, 1e-12)

	lat, lon = LatLong(math3d.Vec3{})
	assert.Zero(t, lat)
	assert.Zero(t, lon)
}

func TestRotateY(t *testing.T) {
	got := RotateY(math3d.V3(1, 2, 0), math.Pi/2)
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 2, got.Y, 1e-12)
	assert.InDelta(t, -1, got.Z, 1e-12)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
	assert.Equal(t, 0.0, Clamp01(-3))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 1.0, Clamp01(9))
}
