package render

import "github.com/taigrr/planetarium/pkg/math3d"

// Uniforms are the per-frame values shared by every vertex and fragment of
// one draw. The loop builds them; the pipeline only reads them.
type Uniforms struct {
	Model      math3d.Mat4
	View       math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4
	Time       uint32 // frame counter, drives shader animation
}

// Vertex is a model-space attribute bundle plus the results of the vertex
// stage. The Transformed fields and ClipW are zero until VertexShader runs.
type Vertex struct {
	Position  math3d.Vec3
	Normal    math3d.Vec3
	TexCoords math3d.Vec2
	Color     Color

	TransformedPosition math3d.Vec3 // screen space: pixels in x/y, NDC z
	TransformedNormal   math3d.Vec3 // world orientation
	ClipW               float64     // clip-space w before the divide; 0 if unknown
}

// NewVertex creates a white vertex.
func NewVertex(position, normal math3d.Vec3, texCoords math3d.Vec2) Vertex {
	return Vertex{
		Position:  position,
		Normal:    normal,
		TexCoords: texCoords,
		Color:     ColorWhite,
	}
}

// VertexStage holds the matrices derived from one set of uniforms so a
// whole vertex array can be transformed without recomputing them.
type VertexStage struct {
	mvp      math3d.Mat4
	viewport math3d.Mat4
	normal   math3d.Mat3
}

// NewVertexStage precomputes Projection*View*Model and the normal matrix.
func NewVertexStage(u *Uniforms) VertexStage {
	return VertexStage{
		mvp:      u.Projection.Mul(u.View).Mul(u.Model),
		viewport: u.Viewport,
		normal:   math3d.NormalMatrix(u.Model),
	}
}

// Shade transforms a single vertex. v is not modified.
func (s VertexStage) Shade(v Vertex) Vertex {
	clip := s.mvp.MulVec4(math3d.V4FromV3(v.Position, 1))
	ndc := clip.PerspectiveDivide()

	out := v
	out.TransformedPosition = s.viewport.MulVec3(ndc)
	out.TransformedNormal = s.normal.MulVec3(v.Normal)
	out.ClipW = clip.W
	return out
}

// ShadeAll transforms src into dst, growing dst as needed, and returns it.
// src is never modified.
func (s VertexStage) ShadeAll(dst, src []Vertex) []Vertex {
	if cap(dst) < len(src) {
		dst = make([]Vertex, len(src))
	}
	dst = dst[:len(src)]
	for i := range src {
		dst[i] = s.Shade(src[i])
	}
	return dst
}

// VertexShader transforms v by the uniforms: model-view-projection,
// perspective divide, then viewport. The normal is carried into world
// orientation by the inverse-transpose of the model's linear part.
func VertexShader(v Vertex, u *Uniforms) Vertex {
	return NewVertexStage(u).Shade(v)
}

// MeshSource is satisfied by loaded meshes. It lets the render package
// flatten geometry without importing the models package.
type MeshSource interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// VertexArray flattens a mesh into a triangle list: three vertices per
// face, in face order. Faces referencing missing vertices are skipped, so
// the result length is always a multiple of 3.
func VertexArray(mesh MeshSource, c Color) []Vertex {
	n := mesh.VertexCount()
	out := make([]Vertex, 0, mesh.TriangleCount()*3)
	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)
		if face[0] < 0 || face[0] >= n || face[1] < 0 || face[1] >= n || face[2] < 0 || face[2] >= n {
			continue
		}
		for _, idx := range face {
			pos, normal, uv := mesh.GetVertex(idx)
			out = append(out, Vertex{
				Position:  pos,
				Normal:    normal,
				TexCoords: uv,
				Color:     c,
			})
		}
	}
	return out
}
