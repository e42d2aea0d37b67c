package render

import (
	"github.com/taigrr/planetarium/pkg/math3d"
)

// Plane is Normal·p + D = 0. Points with a positive distance lie on the
// side the normal points to.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane so its normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to point.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum holds the six view planes with inward-facing normals, ordered
// left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts the planes of a projection (or
// projection*view*model) matrix with the Gribb/Hartmann method: each plane
// is row 3 plus or minus one of rows 0..2.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	row := func(i int) (math3d.Vec3, float64) {
		return math3d.V3(m[i], m[i+4], m[i+8]), m[i+12]
	}
	w, wd := row(3)

	var f Frustum
	for axis := range 3 {
		r, rd := row(axis)
		f.Planes[axis*2] = Plane{Normal: w.Add(r), D: wd + rd}
		f.Planes[axis*2+1] = Plane{Normal: w.Sub(r), D: wd - rd}
	}
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// ContainsPoint reports whether p is inside every plane.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectAABB reports whether any part of box may be inside the
// frustum. For each plane only the corner furthest along the normal is
// tested; if even that one is outside, so is the whole box.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, plane := range f.Planes {
		far := math3d.V3(
			pick(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			pick(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			pick(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.DistanceToPoint(far) < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from its corners.
func NewAABB(lo, hi math3d.Vec3) AABB {
	return AABB{Min: lo, Max: hi}
}

// BoundsOf returns the model-space bounds of the vertex positions. An
// empty slice yields the zero box.
func BoundsOf(vertices []Vertex) AABB {
	if len(vertices) == 0 {
		return AABB{}
	}
	box := AABB{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		box.Min = box.Min.Min(v.Position)
		box.Max = box.Max.Max(v.Position)
	}
	return box
}

// Center returns the midpoint of the box.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the edge lengths of the box.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// ContainsPoint reports whether p lies inside or on the box.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Transform returns the box enclosing all eight transformed corners.
func (b AABB) Transform(m math3d.Mat4) AABB {
	var out AABB
	for i := range 8 {
		corner := math3d.V3(
			pick(i&1 != 0, b.Max.X, b.Min.X),
			pick(i&2 != 0, b.Max.Y, b.Min.Y),
			pick(i&4 != 0, b.Max.Z, b.Min.Z),
		)
		p := m.MulVec3(corner)
		if i == 0 {
			out = AABB{Min: p, Max: p}
			continue
		}
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// Visible reports whether a model-space box can appear on screen under
// the uniforms' projection, view and model matrices.
func Visible(u *Uniforms, local AABB) bool {
	world := local.Transform(u.Model)
	return NewFrustumFromMatrix(u.Projection.Mul(u.View)).IntersectAABB(world)
}
