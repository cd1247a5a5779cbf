package mesh

import (
	"bufio"
	"encoding/binary"
	"io"
)

// stlHeaderText fills the fixed 80-byte binary STL header.
const stlHeaderText = "Binary STL - terrain-gen"

// stlRecord is the packed 50-byte per-triangle layout: normal, three
// vertices, attribute byte count.
type stlRecord struct {
	Normal  [3]float32
	V1      [3]float32
	V2      [3]float32
	V3      [3]float32
	AttrLen uint16
}

// WriteSTL emits the binary triangle-soup form: 80-byte header,
// little-endian uint32 triangle count, then one record per face with
// the geometric normal computed from the winding. STL carries no
// color. Every mesh triangle is written, so the triangle count always
// equals the OBJ face count.
func WriteSTL(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], stlHeaderText)
	for i := len(stlHeaderText); i < len(header); i++ {
		header[i] = ' '
	}
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return err
	}

	for _, t := range m.Triangles {
		n := m.FaceNormal(t)
		rec := stlRecord{
			Normal: [3]float32{float32(n.X()), float32(n.Y()), float32(n.Z())},
			V1:     vec32(m, t[0]),
			V2:     vec32(m, t[1]),
			V3:     vec32(m, t[2]),
		}
		if err := binary.Write(bw, binary.LittleEndian, &rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func vec32(m *Mesh, idx int) [3]float32 {
	p := m.Vertices[idx].Position
	return [3]float32{float32(p.X()), float32(p.Y()), float32(p.Z())}
}

// WriteSTLFile writes the binary STL form to path atomically.
func WriteSTLFile(path string, m *Mesh) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return WriteSTL(w, m)
	})
}
