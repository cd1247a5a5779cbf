package mesh

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terrain-gen/internal/terrain"
)

// readSTL parses a binary STL stream back into triangle records. Test
// helper only; the package deliberately ships no reader.
type stlTri struct {
	normal [3]float32
	verts  [3][3]float32
}

func readSTL(t *testing.T, r io.Reader) []stlTri {
	t.Helper()
	var header [80]byte
	_, err := io.ReadFull(r, header[:])
	require.NoError(t, err)

	var count uint32
	require.NoError(t, binary.Read(r, binary.LittleEndian, &count))

	tris := make([]stlTri, count)
	for i := range tris {
		var rec stlRecord
		require.NoError(t, binary.Read(r, binary.LittleEndian, &rec))
		tris[i] = stlTri{
			normal: rec.Normal,
			verts:  [3][3]float32{rec.V1, rec.V2, rec.V3},
		}
		assert.Zero(t, rec.AttrLen)
	}

	// Nothing may trail the last record.
	var tail [1]byte
	_, err = r.Read(tail[:])
	assert.Equal(t, io.EOF, err)
	return tris
}

func TestSTLRoundTripCountMatchesOBJ(t *testing.T) {
	g := demGrid(t, 5, 5)
	g.SetNoData(-9999)
	g.Set(1, 1, -9999)
	m := buildSurface(t, g)

	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, m))

	tris := readSTL(t, &buf)
	assert.Len(t, tris, len(m.Triangles))

	// 5x5 grid has 16 quads; the nodata cell kills the 4 around it.
	assert.Len(t, tris, (16-4)*2)
}

func TestSTLByteLayout(t *testing.T) {
	m := buildSurface(t, demGrid(t, 3, 3))

	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, m))

	// 80-byte header + 4-byte count + 50 bytes per triangle.
	assert.Equal(t, 84+50*len(m.Triangles), buf.Len())

	var count uint32
	require.NoError(t, binary.Read(bytes.NewReader(buf.Bytes()[80:84]), binary.LittleEndian, &count))
	assert.Equal(t, uint32(len(m.Triangles)), count)
}

func TestSTLNormalsMatchWinding(t *testing.T) {
	m := buildSurface(t, demGrid(t, 4, 4))

	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, m))

	for _, tri := range readSTL(t, &buf) {
		assert.Greater(t, tri.normal[2], float32(0), "top surface normals point up")
		// Unit length within float32 tolerance.
		lenSq := tri.normal[0]*tri.normal[0] + tri.normal[1]*tri.normal[1] + tri.normal[2]*tri.normal[2]
		assert.InDelta(t, 1.0, float64(lenSq), 1e-5)
	}
}

func TestSTLVerticesMatchMesh(t *testing.T) {
	m := buildSurface(t, demGrid(t, 2, 2))

	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, m))

	tris := readSTL(t, &buf)
	require.Len(t, tris, len(m.Triangles))
	for i, tri := range tris {
		for v := 0; v < 3; v++ {
			want := m.Vertices[m.Triangles[i][v]].Position
			assert.Equal(t, float32(want.X()), tri.verts[v][0])
			assert.Equal(t, float32(want.Y()), tri.verts[v][1])
			assert.Equal(t, float32(want.Z()), tri.verts[v][2])
		}
	}
}

func TestFaceNormalDegenerate(t *testing.T) {
	m := &Mesh{
		Vertices: []Vertex{
			{Color: terrain.RGB{}},
			{Color: terrain.RGB{}},
			{Color: terrain.RGB{}},
		},
	}
	// All three vertices coincide; the normal is zero, not NaN.
	n := m.FaceNormal(Triangle{0, 1, 2})
	assert.Equal(t, 0.0, n.X())
	assert.Equal(t, 0.0, n.Y())
	assert.Equal(t, 0.0, n.Z())
}
