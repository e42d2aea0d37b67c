package render

import "github.com/taigrr/planetarium/pkg/math3d"

// Fragment is one covered pixel produced by the rasterizer.
type Fragment struct {
	Position       math3d.Vec2 // integer pixel coordinate
	Depth          float64     // interpolated screen-space z
	VertexPosition math3d.Vec3 // interpolated transformed normal, the shading coordinate
	Intensity      float64     // lighting factor in [0, 1]
	Barycentric    math3d.Vec3 // screen-space weights of the three vertices
	Color          Color       // interpolated vertex color
}

// ObjectID identifies a scene object and selects its fragment shader.
type ObjectID int

// FragmentShader computes the final color of a fragment. Implementations
// must be deterministic in their inputs.
type FragmentShader func(f Fragment, u *Uniforms, id ObjectID) Color

// ShaderSelector picks the fragment shader for an object.
type ShaderSelector interface {
	ShaderFor(id ObjectID) FragmentShader
}

// ShaderFor lets a single FragmentShader act as a selector for every
// object.
func (s FragmentShader) ShaderFor(ObjectID) FragmentShader {
	return s
}

// IntensityShader shades white scaled by the fragment intensity.
func IntensityShader(f Fragment, _ *Uniforms, _ ObjectID) Color {
	return ColorWhite.Scale(f.Intensity)
}
