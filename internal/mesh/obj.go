package mesh

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ emits the vertex-colored Wavefront form: one `v` line per
// vertex carrying position plus RGB in [0,1], one `f` line per face
// with strictly positive 1-based indices. No normals, no texture
// coordinates, no material references; color travels only in the
// vertex lines. Negative relative indices are legal in some dialects
// but break enough importers that this writer never produces them.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Terrain model with vertex colors\n")
	fmt.Fprintf(bw, "# Vertices: %d\n", len(m.Vertices))
	fmt.Fprintf(bw, "# Faces: %d\n\n", len(m.Triangles))

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f %.3f %.3f %.3f\n",
			v.Position.X(), v.Position.Y(), v.Position.Z(),
			v.Color.R, v.Color.G, v.Color.B)
	}
	for _, t := range m.Triangles {
		fmt.Fprintf(bw, "f %d %d %d\n", t[0]+1, t[1]+1, t[2]+1)
	}
	return bw.Flush()
}

// WriteOBJFile writes the OBJ form to path atomically.
func WriteOBJFile(path string, m *Mesh) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return WriteOBJ(w, m)
	})
}
