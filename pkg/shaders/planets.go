package shaders

import (
	"math"

	"github.com/taigrr/planetarium/pkg/math3d"
	"github.com/taigrr/planetarium/pkg/render"
)

// Every shader here reads Fragment.VertexPosition as the interpolated
// surface normal, i.e. a point on the unit sphere in world orientation.

// surface returns the unit-sphere coordinate of a fragment.
func surface(f render.Fragment) math3d.Vec3 {
	return f.VertexPosition.Normalize()
}

// Earth: oceans and continents from fbm, ice caps, drifting clouds.
func Earth(f render.Fragment, u *render.Uniforms, _ render.ObjectID) render.Color {
	p := surface(f)
	t := float64(u.Time)

	n := FBM(p.Scale(2.5).Add(math3d.V3(7.1, 3.3, 1.7)), 5)
	var c render.Color
	if n < 0.52 {
		c = render.RGB(10, 40, 110).Lerp(render.RGB(30, 90, 170), Smoothstep(0.35, 0.52, n))
	} else {
		c = render.RGB(40, 110, 40).Lerp(render.RGB(140, 120, 70), Smoothstep(0.55, 0.7, n))
	}

	lat, _ := LatLong(p)
	if math.Abs(lat) > 1.2-0.15*ValueNoise(p.Scale(6)) {
		c = render.RGB(235, 240, 245)
	}

	q := RotateY(p, t*0.002)
	clouds := Smoothstep(0.55, 0.75, FBM(q.Scale(3).Add(math3d.V3(0, 11, 0)), 4))
	c = c.Lerp(render.ColorWhite, clouds*0.9)

	return c.Scale(f.Intensity)
}

// Moon: grey regolith, fine speckle, and one crater per lattice cell.
func Moon(f render.Fragment, _ *render.Uniforms, _ render.ObjectID) render.Color {
	p := surface(f)

	c := render.RGB(120, 120, 120).Lerp(render.RGB(175, 175, 170), FBM(p.Scale(4), 4))

	speck := Hash(math3d.V3(math.Floor(p.X*60), math.Floor(p.Y*60), math.Floor(p.Z*60)))
	switch {
	case speck > 0.93:
		c = c.Add(render.RGB(18, 18, 18))
	case speck < 0.07:
		c = c.Scale(0.85)
	}

	q := p.Scale(5)
	cell := math3d.V3(math.Floor(q.X), math.Floor(q.Y), math.Floor(q.Z))
	h := Hash(cell)
	if h > 0.35 {
		center := cell.Add(math3d.V3(
			0.3+0.4*Hash(cell.Add(math3d.V3(1, 0, 0))),
			0.3+0.4*Hash(cell.Add(math3d.V3(0, 1, 0))),
			0.3+0.4*Hash(cell.Add(math3d.V3(0, 0, 1))),
		))
		radius := 0.12 + 0.15*h
		d := q.Sub(center).Len()
		switch {
		case d < radius*0.85:
			c = c.Scale(0.7 + 0.2*d/radius)
		case d < radius:
			c = c.Add(render.RGB(25, 25, 25))
		}
	}

	return c.Scale(f.Intensity)
}

// Sun: radial white-to-orange gradient across the visible disc with
// slowly boiling turbulence. Emissive, so intensity is ignored.
func Sun(f render.Fragment, u *render.Uniforms, _ render.ObjectID) render.Color {
	p := surface(f)
	t := float64(u.Time)

	turb := FBM(p.Scale(4).Add(math3d.V3(0, 0, t*0.01)), 4) - 0.5
	r := Clamp01(math.Hypot(p.X, p.Y) + 0.15*turb)

	stops := [4]render.Color{
		render.RGB(255, 255, 255),
		render.RGB(255, 230, 28),
		render.RGB(255, 178, 51),
		render.RGB(204, 102, 0),
	}
	switch {
	case r < 0.33:
		return stops[0].Lerp(stops[1], r/0.33)
	case r < 0.66:
		return stops[1].Lerp(stops[2], (r-0.33)/0.33)
	default:
		return stops[2].Lerp(stops[3], (r-0.66)/0.34)
	}
}

// GasGiant: ochre latitude stripes drifting over time, roughened by
// turbulence.
func GasGiant(f render.Fragment, u *render.Uniforms, _ render.ObjectID) render.Color {
	const (
		stripeWidth = 0.2
		speed       = 0.001
	)
	p := surface(f)
	t := float64(u.Time)

	turb := FBM(RotateY(p, t*0.0005).Scale(3), 3) - 0.5
	y := p.Y + t*speed + 0.08*turb
	stripe := math.Sin(y/stripeWidth*math.Pi)*0.5 + 0.5

	c := render.RGB(134, 100, 35).Lerp(render.RGB(169, 141, 86), stripe)
	// Faint third band color in the temperate belts.
	belt := Smoothstep(0.3, 0.5, math.Abs(p.Y)) * (1 - Smoothstep(0.6, 0.8, math.Abs(p.Y)))
	c = c.Lerp(render.RGB(196, 150, 110), belt*0.35)

	return c.Scale(f.Intensity)
}

// IceGiant: pale cyan bands, bright polar caps and a uniform haze.
func IceGiant(f render.Fragment, u *render.Uniforms, _ render.ObjectID) render.Color {
	p := surface(f)
	t := float64(u.Time)

	lat, _ := LatLong(p)
	band := math.Sin(lat*6+0.6*(FBM(RotateY(p, t*0.001).Scale(2), 3)-0.5))*0.5 + 0.5
	c := render.RGB(110, 180, 210).Lerp(render.RGB(150, 210, 225), band)

	c = c.Lerp(render.RGB(225, 245, 250), Smoothstep(0.75, 0.95, math.Abs(p.Y)))
	c = c.Lerp(render.RGB(200, 230, 240), 0.25)

	return c.Scale(f.Intensity)
}

// Lava: dark crust lit normally plus glowing cracks that pulse over time.
// The glow is added after lighting so the night side still shows it.
func Lava(f render.Fragment, u *render.Uniforms, _ render.ObjectID) render.Color {
	p := surface(f)
	t := float64(u.Time)

	crust := render.RGB(40, 20, 15).Lerp(render.RGB(75, 38, 26), FBM(p.Scale(5), 4))

	n := FBM(p.Scale(3).Add(math3d.V3(t*0.003, 0, 0)), 4)
	crack := 1 - Smoothstep(0, 0.05, math.Abs(n-0.5))
	pulse := math.Sin(t*0.05)*0.5 + 0.5
	glow := render.RGB(255, 110, 20).Lerp(render.RGB(255, 220, 80), pulse)

	return crust.Scale(f.Intensity).Add(glow.Scale(crack))
}

// Mars: rust desert with darker maria, moving dust storms and polar caps.
func Mars(f render.Fragment, u *render.Uniforms, _ render.ObjectID) render.Color {
	p := surface(f)
	t := float64(u.Time)

	c := render.RGB(180, 82, 42).Lerp(render.RGB(115, 48, 28), Smoothstep(0.45, 0.65, FBM(p.Scale(3), 5)))

	storm := Smoothstep(0.6, 0.8, FBM(RotateY(p, t*0.004).Scale(3).Add(math3d.V3(5, 0, 0)), 4))
	c = c.Lerp(render.RGB(210, 150, 100), storm*0.6)

	c = c.Lerp(render.RGB(240, 240, 240), Smoothstep(0.85, 0.95, math.Abs(p.Y)))

	return c.Scale(f.Intensity)
}

// Flat shades the interpolated vertex color.
func Flat(f render.Fragment, _ *render.Uniforms, _ render.ObjectID) render.Color {
	return f.Color.Scale(f.Intensity)
}

// Normals maps the surface normal to RGB for debugging. Unlit.
func Normals(f render.Fragment, _ *render.Uniforms, _ render.ObjectID) render.Color {
	n := surface(f)
	return render.ColorFromFloat((n.X+1)*127.5, (n.Y+1)*127.5, (n.Z+1)*127.5)
}
