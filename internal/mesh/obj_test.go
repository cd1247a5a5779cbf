package mesh

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOBJString(t *testing.T, m *Mesh) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, m))
	return buf.String()
}

func TestOBJIndexPositivity(t *testing.T) {
	g := demGrid(t, 4, 4)
	g.SetNoData(-9999)
	g.Set(0, 3, -9999)
	m := buildSurface(t, g)

	out := writeOBJString(t, m)
	sc := bufio.NewScanner(strings.NewReader(out))
	faces := 0
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] != "f" {
			continue
		}
		faces++
		require.Len(t, fields, 4)
		for _, ref := range fields[1:] {
			idx, err := strconv.Atoi(ref)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, idx, 1, "face indices are 1-based and never negative")
			assert.LessOrEqual(t, idx, len(m.Vertices))
		}
	}
	assert.Equal(t, len(m.Triangles), faces)
}

func TestOBJNoTextureDependency(t *testing.T) {
	m := buildSurface(t, demGrid(t, 3, 3))
	out := writeOBJString(t, m)

	for _, forbidden := range []string{"vt ", "vn ", "mtllib", "usemtl", "map_Kd"} {
		assert.NotContains(t, out, forbidden)
	}
}

func TestOBJVertexLinesCarryColor(t *testing.T) {
	m := buildSurface(t, demGrid(t, 2, 2))
	out := writeOBJString(t, m)

	vertices := 0
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] != "v" {
			continue
		}
		vertices++
		// Position plus RGB: exactly 6 values.
		require.Len(t, fields, 7)
		for _, ch := range fields[4:] {
			c, err := strconv.ParseFloat(ch, 64)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, c, 0.0)
			assert.LessOrEqual(t, c, 1.0)
		}
	}
	assert.Equal(t, len(m.Vertices), vertices)
}

func TestOBJPassesOwnValidator(t *testing.T) {
	g := demGrid(t, 5, 4)
	g.SetNoData(-9999)
	g.Set(2, 1, -9999)
	m := buildSurface(t, g)

	out := writeOBJString(t, m)
	rep, err := ValidateOBJ(strings.NewReader(out))
	require.NoError(t, err)

	assert.Empty(t, rep.Issues())
	assert.Equal(t, len(m.Vertices), rep.Vertices)
	assert.Equal(t, len(m.Vertices), rep.ColoredVertices)
	assert.Equal(t, len(m.Triangles), rep.Faces)
	assert.Zero(t, rep.NegativeIndices)
	assert.Zero(t, rep.TextureCoords)
	assert.Zero(t, rep.MaterialRefs)
}

func TestValidateOBJFlagsNegativeIndices(t *testing.T) {
	in := strings.Join([]string{
		"v 0 0 0 1 0 0",
		"v 1 0 0 1 0 0",
		"v 0 1 0 1 0 0",
		"f -3 -2 -1",
	}, "\n")

	rep, err := ValidateOBJ(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 1, rep.NegativeIndices)
	assert.NotEmpty(t, rep.Issues())
}

func TestValidateOBJFlagsTextureAndMaterial(t *testing.T) {
	in := strings.Join([]string{
		"mtllib terrain.mtl",
		"v 0 0 0",
		"vt 0.5 0.5",
		"f 1/1 1/1 1/1",
	}, "\n")

	rep, err := ValidateOBJ(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 1, rep.MaterialRefs)
	assert.Equal(t, 1, rep.TextureCoords)
	assert.Equal(t, 0, rep.ColoredVertices)
	assert.NotEmpty(t, rep.Issues())
}

func TestValidateOBJFlagsOutOfRangeIndex(t *testing.T) {
	in := strings.Join([]string{
		"v 0 0 0 1 1 1",
		"v 1 0 0 1 1 1",
		"v 0 1 0 1 1 1",
		"f 1 2 4",
	}, "\n")

	rep, err := ValidateOBJ(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 4, rep.MaxIndex)
	assert.NotEmpty(t, rep.Issues())
}

func TestWriteOBJFileAtomic(t *testing.T) {
	m := buildSurface(t, demGrid(t, 3, 3))
	dir := t.TempDir()
	path := filepath.Join(dir, "out.obj")

	require.NoError(t, WriteOBJFile(path, m))

	// No temporary files survive next to the finished output.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.obj", entries[0].Name())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rep, err := ValidateOBJ(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, rep.Issues())
}

func TestWriteOBJFileUnwritablePath(t *testing.T) {
	m := buildSurface(t, demGrid(t, 2, 2))
	err := WriteOBJFile(filepath.Join(t.TempDir(), "missing", "out.obj"), m)

	var serErr *SerializationError
	require.ErrorAs(t, err, &serErr)
}
