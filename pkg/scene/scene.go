// Package scene holds the selectable planetary objects, builds them from a
// config, and renders the selected one through a render.Pipeline.
package scene

import (
	"fmt"
	"math"

	"github.com/taigrr/planetarium/pkg/config"
	"github.com/taigrr/planetarium/pkg/math3d"
	"github.com/taigrr/planetarium/pkg/models"
	"github.com/taigrr/planetarium/pkg/render"
	"github.com/taigrr/planetarium/pkg/shaders"
)

// Sphere tessellation used when an object names no model file.
const (
	SphereStacks = 24
	SphereSlices = 32
)

// Object is one selectable body. Its vertex array may be shared with other
// objects and is never modified after Build.
type Object struct {
	Name        string
	ID          render.ObjectID
	Translation math3d.Vec3
	Rotation    math3d.Vec3 // radians, applied Z then Y then X
	Scale       float64
	Spin        float64 // radians per frame about Y

	Vertices []render.Vertex
	Bounds   render.AABB // model space
}

// ModelMatrix returns the object's model matrix at frame time.
func (o *Object) ModelMatrix(time uint32) math3d.Mat4 {
	rot := o.Rotation
	if o.Spin != 0 {
		rot.Y = math.Mod(rot.Y+o.Spin*float64(time), 2*math.Pi)
	}
	return math3d.ModelMatrix(o.Translation, o.Scale, rot)
}

// Scene is the list of objects plus the frame-wide settings. Exactly one
// object is drawn per frame: the selected one.
type Scene struct {
	Objects    []*Object
	Background render.Color
	WireColor  render.Color
	Lighting   render.Lighting
	Shaders    *shaders.Registry

	selected int
}

// New creates a scene with the default registry and lighting. The first
// object is selected.
func New(objects []*Object) *Scene {
	return &Scene{
		Objects:    objects,
		Background: render.ColorSpace,
		WireColor:  render.RGB(0x9f, 0xef, 0x9f),
		Lighting:   render.DefaultLighting(),
		Shaders:    shaders.Default(),
	}
}

// Select makes the i-th object (0-based) current. Out-of-range indices
// are ignored and reported as false.
func (s *Scene) Select(i int) bool {
	if i < 0 || i >= len(s.Objects) {
		return false
	}
	s.selected = i
	return true
}

// SelectID selects the object with the given id.
func (s *Scene) SelectID(id render.ObjectID) bool {
	for i, o := range s.Objects {
		if o.ID == id {
			s.selected = i
			return true
		}
	}
	return false
}

// SelectedIndex returns the 0-based index of the current object.
func (s *Scene) SelectedIndex() int { return s.selected }

// Selected returns the current object, or nil for an empty scene.
func (s *Scene) Selected() *Object {
	if s.selected < 0 || s.selected >= len(s.Objects) {
		return nil
	}
	return s.Objects[s.selected]
}

// Uniforms builds the per-frame uniforms for obj seen through cam on a
// width x height framebuffer.
func Uniforms(obj *Object, cam *render.Camera, width, height int, time uint32) render.Uniforms {
	aspect := 1.0
	if width > 0 && height > 0 {
		aspect = float64(width) / float64(height)
	}
	return render.Uniforms{
		Model:      obj.ModelMatrix(time),
		View:       cam.ViewMatrix(),
		Projection: cam.ProjectionMatrix(aspect),
		Viewport:   math3d.Viewport(float64(width), float64(height)),
		Time:       time,
	}
}

// Render clears the pipeline's framebuffer and draws the selected object.
func (s *Scene) Render(p *render.Pipeline, cam *render.Camera, time uint32) render.DrawStats {
	fb := p.Framebuffer()
	fb.SetBackgroundColor(s.Background)
	p.Rasterizer().Lighting = s.Lighting
	p.SetWireColor(s.WireColor)
	if s.Shaders != nil {
		p.SetShaders(s.Shaders)
	}
	p.Begin()

	obj := s.Selected()
	if obj == nil {
		return render.DrawStats{}
	}
	u := Uniforms(obj, cam, fb.Width, fb.Height, time)
	return p.DrawBounded(&u, obj.Vertices, obj.ID, obj.Bounds)
}

type loaded struct {
	vertices []render.Vertex
	bounds   render.AABB
}

// Build loads every object's model and assigns shaders by name. Objects
// naming the same model and color share one vertex array. cfg should
// already be resolved and validated.
func Build(cfg config.Config) (*Scene, error) {
	reg := shaders.NewRegistry()
	meshes := make(map[string]*models.Mesh)
	arrays := make(map[string]loaded)

	objects := make([]*Object, 0, len(cfg.Objects))
	for _, oc := range cfg.Objects {
		id := render.ObjectID(oc.ID)
		if err := reg.Assign(id, oc.Shader); err != nil {
			return nil, fmt.Errorf("object %q: %w", oc.Name, err)
		}
		c, err := render.ParseColor(oc.Color)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", oc.Name, err)
		}

		key := oc.Model + "|" + c.String()
		arr, ok := arrays[key]
		if !ok {
			mesh, ok := meshes[oc.Model]
			if !ok {
				if oc.Model == "" {
					mesh = models.UVSphere(SphereStacks, SphereSlices)
				} else if mesh, err = models.LoadNormalized(oc.Model); err != nil {
					return nil, fmt.Errorf("object %q: %w", oc.Name, err)
				}
				meshes[oc.Model] = mesh
				render.Logger().Info("model loaded",
					"object", oc.Name, "model", mesh.Name,
					"vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())
			}
			verts := render.VertexArray(mesh, c)
			arr = loaded{vertices: verts, bounds: render.BoundsOf(verts)}
			arrays[key] = arr
		}

		objects = append(objects, &Object{
			Name:        oc.Name,
			ID:          id,
			Translation: vec3(oc.Translation),
			Rotation:    vec3(oc.Rotation),
			Scale:       oc.Scale,
			Spin:        oc.Spin,
			Vertices:    arr.vertices,
			Bounds:      arr.bounds,
		})
	}

	s := New(objects)
	s.Shaders = reg

	var err error
	if s.Background, err = render.ParseColor(cfg.Background); err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	if s.WireColor, err = render.ParseColor(cfg.WireColor); err != nil {
		return nil, fmt.Errorf("wire color: %w", err)
	}
	s.Lighting = Lighting(cfg.Light)
	s.Select(cfg.Selected - 1)
	return s, nil
}

// Lighting converts the config's light section.
func Lighting(l config.Light) render.Lighting {
	out := render.Lighting{
		Direction: vec3(l.Direction),
		Ambient:   l.Ambient,
		Mode:      render.LightingFlat,
	}
	if l.PerFragment {
		out.Mode = render.LightingPerFragment
	}
	return out
}

// NewCamera creates the camera described by cfg.
func NewCamera(cfg config.Config) *render.Camera {
	cam := render.NewCamera(vec3(cfg.Camera.Eye), vec3(cfg.Camera.Center), vec3(cfg.Camera.Up), cfg.FPS)
	if cfg.Camera.FOV > 0 {
		cam.FOV = cfg.Camera.FOV * math.Pi / 180
	}
	return cam
}

func vec3(v [3]float64) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}
