// Package mesh triangulates valid-sample grids and serializes the
// result as vertex-colored OBJ and binary STL.
package mesh

import (
	"github.com/go-gl/mathgl/mgl64"

	"terrain-gen/internal/terrain"
)

// Vertex is one deduplicated mesh corner: its 3D position, its color
// and the grid cell it came from. Vertices are immutable once emitted.
type Vertex struct {
	Position mgl64.Vec3
	Color    terrain.RGB
	Row, Col int
}

// Triangle references three vertices by 0-based position in the
// vertex list. Indices are never negative and never exceed the vertex
// count; the OBJ writer converts them to 1-based form.
type Triangle [3]int

// Mesh is the builder's complete output: every vertex is referenced by
// at least one triangle, and all triangles share one winding order.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle
}

// FaceNormal computes the unit normal of a triangle from the cross
// product of its edge vectors. Degenerate (zero-area) triangles get a
// zero normal rather than NaN.
func (m *Mesh) FaceNormal(t Triangle) mgl64.Vec3 {
	a := m.Vertices[t[0]].Position
	b := m.Vertices[t[1]].Position
	c := m.Vertices[t[2]].Position
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}
