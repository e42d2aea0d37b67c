package models

import (
	"fmt"
	"math"

	"github.com/taigrr/planetarium/pkg/math3d"
)

// UVSphere generates a unit sphere with stacks latitude rings and slices
// longitude segments. Normals equal positions.
func UVSphere(stacks, slices int) *Mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)
	m := NewMesh(fmt.Sprintf("uvsphere-%dx%d", stacks, slices))

	for i := 0; i <= stacks; i++ {
		theta := math.Pi * float64(i) / float64(stacks)
		st, ct := math.Sincos(theta)
		for j := 0; j <= slices; j++ {
			phi := 2 * math.Pi * float64(j) / float64(slices)
			sp, cp := math.Sincos(phi)
			p := math3d.V3(st*cp, ct, st*sp)
			m.Vertices = append(m.Vertices, MeshVertex{
				Position: p,
				Normal:   p,
				UV:       math3d.V2(float64(j)/float64(slices), 1-float64(i)/float64(stacks)),
			})
		}
	}

	row := slices + 1
	for i := range stacks {
		for j := range slices {
			a := i*row + j
			b := a + row
			// Skip the zero-area triangles that touch the poles.
			if i != 0 {
				m.addFacing(a, b, a+1)
			}
			if i != stacks-1 {
				m.addFacing(a+1, b, b+1)
			}
		}
	}
	m.CalculateBounds()
	return m
}

// addFacing appends the triangle, flipping it if needed so it is
// clockwise seen from outside a shape centered on the origin.
func (m *Mesh) addFacing(i0, i1, i2 int) {
	f := Face{V: [3]int{i0, i1, i2}}
	centroid := m.Vertices[i0].Position.Add(m.Vertices[i1].Position).Add(m.Vertices[i2].Position)
	if m.faceNormal(f).Dot(centroid) < 0 {
		f.V[1], f.V[2] = f.V[2], f.V[1]
	}
	m.Faces = append(m.Faces, f)
}
