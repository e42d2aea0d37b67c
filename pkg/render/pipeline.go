package render

import (
	"log/slog"
)

// DrawStats summarizes one Draw call.
type DrawStats struct {
	Vertices  int  // vertices run through the vertex stage
	Triangles int  // triangles assembled
	Culled    int  // triangles that produced nothing (back-facing, degenerate, off-screen)
	Fragments int  // fragments shaded
	Written   int  // fragments that passed the depth test
	Skipped   bool // whole object rejected by frustum culling
}

// Add accumulates o into s.
func (s *DrawStats) Add(o DrawStats) {
	s.Vertices += o.Vertices
	s.Triangles += o.Triangles
	s.Culled += o.Culled
	s.Fragments += o.Fragments
	s.Written += o.Written
}

// LogValue implements slog.LogValuer.
func (s DrawStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("vertices", s.Vertices),
		slog.Int("triangles", s.Triangles),
		slog.Int("culled", s.Culled),
		slog.Int("fragments", s.Fragments),
		slog.Int("written", s.Written),
		slog.Bool("skipped", s.Skipped),
	)
}

// Pipeline draws vertex arrays into a framebuffer: vertex stage, triangle
// assembly, rasterization, fragment shading and the depth-tested write.
// It is not safe for concurrent use; one goroutine owns it and its
// framebuffer.
type Pipeline struct {
	fb        *Framebuffer
	raster    *Rasterizer
	shaders   ShaderSelector
	wireframe *Wireframe

	// Wireframe outlines front-facing triangles after filling.
	Wireframe bool
	// ShowBounds outlines each drawn object's bounding box.
	ShowBounds bool
	// Cull skips objects whose bounds are entirely outside the view.
	Cull bool

	shaded []Vertex
}

// NewPipeline creates a pipeline drawing into fb. A nil selector shades
// by intensity alone.
func NewPipeline(fb *Framebuffer, shaders ShaderSelector) *Pipeline {
	if shaders == nil {
		shaders = FragmentShader(IntensityShader)
	}
	raster := NewRasterizer()
	raster.SetExtent(fb.Width, fb.Height)
	return &Pipeline{
		fb:        fb,
		raster:    raster,
		shaders:   shaders,
		wireframe: NewWireframe(fb, Color{0x9f, 0xef, 0x9f}),
		Cull:      true,
	}
}

// Framebuffer returns the target framebuffer.
func (p *Pipeline) Framebuffer() *Framebuffer { return p.fb }

// Rasterizer returns the rasterizer so callers can adjust lighting.
func (p *Pipeline) Rasterizer() *Rasterizer { return p.raster }

// SetShaders swaps the shader selector.
func (p *Pipeline) SetShaders(s ShaderSelector) {
	if s == nil {
		s = FragmentShader(IntensityShader)
	}
	p.shaders = s
}

// SetWireColor sets the overlay color.
func (p *Pipeline) SetWireColor(c Color) { p.wireframe.Color = c }

// Resize resizes the framebuffer and the rasterizer extent.
func (p *Pipeline) Resize(width, height int) {
	p.fb.Resize(width, height)
	p.raster.SetExtent(p.fb.Width, p.fb.Height)
	Logger().Info("framebuffer resized", "width", p.fb.Width, "height", p.fb.Height)
}

// Begin clears the framebuffer for a new frame.
func (p *Pipeline) Begin() {
	p.fb.Clear()
}

// Draw renders one object's vertex array. Vertices are consumed three at
// a time; a trailing partial triangle is ignored. The input slice is never
// modified.
func (p *Pipeline) Draw(u *Uniforms, vertices []Vertex, id ObjectID) DrawStats {
	return p.draw(u, vertices, id, nil)
}

// DrawBounded is Draw with a model-space bounding box used for frustum
// culling and the bounds overlay.
func (p *Pipeline) DrawBounded(u *Uniforms, vertices []Vertex, id ObjectID, bounds AABB) DrawStats {
	return p.draw(u, vertices, id, &bounds)
}

func (p *Pipeline) draw(u *Uniforms, vertices []Vertex, id ObjectID, bounds *AABB) DrawStats {
	var stats DrawStats
	if bounds != nil && p.Cull && !Visible(u, *bounds) {
		stats.Skipped = true
		Logger().Debug("object culled", "id", int(id))
		return stats
	}

	stage := NewVertexStage(u)
	p.shaded = stage.ShadeAll(p.shaded, vertices)
	stats.Vertices = len(p.shaded)

	shade := p.shaders.ShaderFor(id)
	if shade == nil {
		shade = IntensityShader
	}

	emit := func(f Fragment) {
		x, y := int(f.Position.X), int(f.Position.Y)
		if !p.fb.InBounds(x, y) {
			return
		}
		stats.Fragments++
		p.fb.SetCurrentColor(shade(f, u, id))
		if p.fb.Point(x, y, f.Depth) {
			stats.Written++
		}
	}

	for i := 0; i+2 < len(p.shaded); i += 3 {
		stats.Triangles++
		if p.raster.TriangleFunc(p.shaded[i], p.shaded[i+1], p.shaded[i+2], emit) == 0 {
			stats.Culled++
		}
	}

	if p.Wireframe {
		p.wireframe.DrawTriangles(p.shaded)
	}
	if p.ShowBounds && bounds != nil {
		p.wireframe.DrawBounds(u, *bounds)
	}

	Logger().Debug("draw", "id", int(id), "stats", stats)
	return stats
}
