package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load picks a loader from the file extension: .obj, .glb or .gltf.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("load model %s: unsupported format %q", path, filepath.Ext(path))
	}
}

// LoadNormalized loads a model and fits it into [-1, 1] around the origin,
// the size the scene's scale factors assume.
func LoadNormalized(path string) (*Mesh, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	m.Normalize()
	return m, nil
}
