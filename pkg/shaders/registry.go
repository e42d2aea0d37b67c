// Package shaders holds the procedural planet fragment shaders and the
// registry that maps scene objects to them.
package shaders

import (
	"errors"
	"fmt"
	"slices"

	"github.com/taigrr/planetarium/pkg/render"
)

// Names of the built-in shaders.
const (
	NameEarth    = "earth"
	NameMoon     = "moon"
	NameSun      = "sun"
	NameGasGiant = "gas_giant"
	NameIceGiant = "ice_giant"
	NameLava     = "lava"
	NameMars     = "mars"
	NameFlat     = "flat"
	NameNormals  = "normals"
)

// ErrUnknownShader is returned when a name has no registered shader.
var ErrUnknownShader = errors.New("unknown shader")

var builtins = map[string]render.FragmentShader{
	NameEarth:    Earth,
	NameMoon:     Moon,
	NameSun:      Sun,
	NameGasGiant: GasGiant,
	NameIceGiant: IceGiant,
	NameLava:     Lava,
	NameMars:     Mars,
	NameFlat:     Flat,
	NameNormals:  Normals,
}

// DefaultAssignment is the shader name for each object id of the default
// scene.
var DefaultAssignment = map[render.ObjectID]string{
	1: NameEarth,
	2: NameMoon,
	3: NameSun,
	4: NameGasGiant,
	5: NameIceGiant,
	6: NameLava,
	7: NameMars,
}

// Registry selects fragment shaders by object id. It implements
// render.ShaderSelector. Not safe for concurrent mutation; build it, then
// hand it to the render goroutine.
type Registry struct {
	byName   map[string]render.FragmentShader
	byID     map[render.ObjectID]render.FragmentShader
	fallback render.FragmentShader
}

// NewRegistry returns a registry knowing every built-in shader by name
// but with no object assignments. Unassigned ids get Flat.
func NewRegistry() *Registry {
	r := &Registry{
		byName:   make(map[string]render.FragmentShader, len(builtins)),
		byID:     make(map[render.ObjectID]render.FragmentShader),
		fallback: Flat,
	}
	for name, s := range builtins {
		r.byName[name] = s
	}
	return r
}

// Default returns a registry with DefaultAssignment applied.
func Default() *Registry {
	r := NewRegistry()
	for id, name := range DefaultAssignment {
		r.byID[id] = r.byName[name]
	}
	return r
}

// Register adds or replaces a named shader.
func (r *Registry) Register(name string, s render.FragmentShader) error {
	if name == "" || s == nil {
		return fmt.Errorf("register shader %q: empty name or nil shader", name)
	}
	r.byName[name] = s
	return nil
}

// Lookup returns the shader registered under name.
func (r *Registry) Lookup(name string) (render.FragmentShader, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Assign makes object id use the named shader.
func (r *Registry) Assign(id render.ObjectID, name string) error {
	s, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("assign object %d: %w %q", id, ErrUnknownShader, name)
	}
	r.byID[id] = s
	return nil
}

// SetFallback sets the shader used for unassigned ids.
func (r *Registry) SetFallback(name string) error {
	s, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("set fallback: %w %q", ErrUnknownShader, name)
	}
	r.fallback = s
	return nil
}

// ShaderFor implements render.ShaderSelector.
func (r *Registry) ShaderFor(id render.ObjectID) render.FragmentShader {
	if s, ok := r.byID[id]; ok {
		return s
	}
	return r.fallback
}

// Names lists the registered shader names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
