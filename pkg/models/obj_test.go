package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/planetarium/pkg/math3d"
)

const quadOBJ = `# unit quad facing +Z
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuadFan(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ), "quad")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.VertexCount() != 4 || m.TriangleCount() != 2 {
		t.Fatalf("got %d verts / %d faces, want 4 / 2", m.VertexCount(), m.TriangleCount())
	}
	// Fan (1,2,3),(1,3,4) reversed to clockwise.
	want := [][3]int{{0, 2, 1}, {0, 3, 2}}
	for i, f := range m.Faces {
		if f.V != want[i] {
			t.Errorf("face %d = %v, want %v", i, f.V, want[i])
		}
	}
	if m.Vertices[2].UV != math3d.V2(1, 1) {
		t.Errorf("uv = %v, want (1, 1)", m.Vertices[2].UV)
	}
	if m.BoundsMax != math3d.V3(1, 1, 0) {
		t.Errorf("bounds max = %v", m.BoundsMax)
	}
}

func TestParseOBJIndexForms(t *testing.T) {
	tests := []struct {
		name  string
		faces string
	}{
		{"positions only", "f 1 2 3"},
		{"position and uv", "f 1/1 2/2 3/3"},
		{"position and normal", "f 1//1 2//1 3//1"},
		{"negative", "f -3 -2 -1"},
	}
	const head = "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\nvn 0 0 1\n"

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := ParseOBJ(strings.NewReader(head+tc.faces+"\n"), tc.name)
			if err != nil {
				t.Fatalf("ParseOBJ: %v", err)
			}
			if m.TriangleCount() != 1 || m.VertexCount() != 3 {
				t.Fatalf("got %d faces / %d verts", m.TriangleCount(), m.VertexCount())
			}
			if m.Faces[0].V != [3]int{0, 2, 1} {
				t.Errorf("face = %v, want reversed {0 2 1}", m.Faces[0].V)
			}
		})
	}
}

func TestParseOBJComputesOutwardNormals(t *testing.T) {
	// Counter-clockwise seen from +Z, so the outward normal is +Z.
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	m, err := ParseOBJ(strings.NewReader(src), "tri")
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range m.Vertices {
		if v.Normal.Sub(math3d.V3(0, 0, 1)).Len() > 1e-9 {
			t.Errorf("vertex %d normal = %v, want +Z", i, v.Normal)
		}
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no faces", "v 0 0 0\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"bad number", "v 0 zero 0\n"},
		{"short vertex", "v 0 0\n"},
		{"two vertex face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"bad normal ref", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tc.src), tc.name); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "quad.obj" {
		t.Errorf("name = %q", m.Name)
	}
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("missing file should fail")
	}
}
