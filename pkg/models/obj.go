package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/planetarium/pkg/math3d"
)

// objKey identifies a unique position/uv/normal combination. Zero means
// absent; the other fields are 1-based resolved indices.
type objKey struct {
	v, vt, vn int
}

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ reads OBJ geometry from r. Polygons are fan-triangulated and
// their winding reversed from OBJ's counter-clockwise to the engine's
// clockwise. Negative indices count back from the latest element. Missing
// normals are computed from the faces. Materials, groups and smoothing
// directives are ignored.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	var (
		positions []math3d.Vec3
		uvs       []math3d.Vec2
		normals   []math3d.Vec3
		mesh      = NewMesh(name)
		index     = make(map[objKey]int)
		hasNormal = true
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, math3d.V3(p[0], p[1], p[2]))

		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			uvs = append(uvs, math3d.V2(p[0], p[1]))

		case "vn":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, math3d.V3(p[0], p[1], p[2]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices, got %d", lineNo, len(fields)-1)
			}
			poly := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				key, err := parseFaceVertex(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: face vertex %q: %w", lineNo, tok, err)
				}
				if key.vn == 0 {
					hasNormal = false
				}
				idx, ok := index[key]
				if !ok {
					idx = len(mesh.Vertices)
					index[key] = idx
					v := MeshVertex{Position: positions[key.v-1]}
					if key.vt > 0 {
						v.UV = uvs[key.vt-1]
					}
					if key.vn > 0 {
						v.Normal = normals[key.vn-1]
					}
					mesh.Vertices = append(mesh.Vertices, v)
				}
				poly = append(poly, idx)
			}
			for i := 1; i+1 < len(poly); i++ {
				mesh.Faces = append(mesh.Faces, Face{V: [3]int{poly[0], poly[i+1], poly[i]}})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("no faces")
	}

	if !hasNormal {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseFaceVertex parses v, v/vt, v//vn or v/vt/vn and resolves each index
// against the counts seen so far.
func parseFaceVertex(tok string, nv, nvt, nvn int) (objKey, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return objKey{}, fmt.Errorf("too many components")
	}
	var key objKey
	var err error
	if key.v, err = resolveIndex(parts[0], nv); err != nil {
		return objKey{}, fmt.Errorf("position: %w", err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if key.vt, err = resolveIndex(parts[1], nvt); err != nil {
			return objKey{}, fmt.Errorf("texcoord: %w", err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if key.vn, err = resolveIndex(parts[2], nvn); err != nil {
			return objKey{}, fmt.Errorf("normal: %w", err)
		}
	}
	return key, nil
}

// resolveIndex turns a 1-based or negative OBJ index into a 1-based one.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = count + 1 + i
	}
	if i < 1 || i > count {
		return 0, fmt.Errorf("index %s out of range (have %d)", s, count)
	}
	return i, nil
}
