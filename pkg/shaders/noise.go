package shaders

import (
	"math"

	"github.com/taigrr/planetarium/pkg/math3d"
)

// Fract returns the fractional part of x, always in [0, 1).
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Hash maps a lattice point to a pseudo-random value in [0, 1) with the
// classic sine hash. Equal inputs always give equal outputs.
func Hash(p math3d.Vec3) float64 {
	return Fract(math.Sin(p.X*12.9898+p.Y*78.233+p.Z*37.719) * 43758.5453)
}

// ValueNoise is trilinearly interpolated lattice noise in [0, 1).
func ValueNoise(p math3d.Vec3) float64 {
	i := math3d.V3(math.Floor(p.X), math.Floor(p.Y), math.Floor(p.Z))
	f := p.Sub(i)
	u := math3d.V3(fade(f.X), fade(f.Y), fade(f.Z))

	corner := func(dx, dy, dz float64) float64 {
		return Hash(i.Add(math3d.V3(dx, dy, dz)))
	}
	x00 := lerp(corner(0, 0, 0), corner(1, 0, 0), u.X)
	x10 := lerp(corner(0, 1, 0), corner(1, 1, 0), u.X)
	x01 := lerp(corner(0, 0, 1), corner(1, 0, 1), u.X)
	x11 := lerp(corner(0, 1, 1), corner(1, 1, 1), u.X)
	return lerp(lerp(x00, x10, u.Y), lerp(x01, x11, u.Y), u.Z)
}

// FBM sums octaves of value noise, each at double the frequency and half
// the amplitude of the last, normalized back to [0, 1).
func FBM(p math3d.Vec3, octaves int) float64 {
	var sum, amp, norm float64 = 0, 0.5, 0
	for range max(octaves, 1) {
		sum += amp * ValueNoise(p)
		norm += amp
		p = p.Scale(2.03)
		amp *= 0.5
	}
	return sum / norm
}

// Smoothstep is the Hermite step between edge0 and edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Clamp01 clamps x to [0, 1]. NaN maps to 0.
func Clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	return math.Min(x, 1)
}

// LatLong returns the latitude in [-pi/2, pi/2] and longitude in
// (-pi, pi] of the direction p. The zero vector maps to (0, 0).
func LatLong(p math3d.Vec3) (lat, lon float64) {
	n := p.Normalize()
	if n == (math3d.Vec3{}) {
		return 0, 0
	}
	return math.Asin(math.Max(-1, math.Min(1, n.Y))), math.Atan2(n.Z, n.X)
}

// RotateY spins p about the Y axis by angle radians.
func RotateY(p math3d.Vec3, angle float64) math3d.Vec3 {
	s, c := math.Sincos(angle)
	return math3d.V3(c*p.X+s*p.Z, p.Y, -s*p.X+c*p.Z)
}

func fade(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
