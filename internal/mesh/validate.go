package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OBJReport summarizes the compatibility-relevant content of a
// vertex-colored OBJ file. It is produced by a line-oriented scan, not
// a full OBJ parse.
type OBJReport struct {
	Vertices        int
	ColoredVertices int
	Faces           int
	TextureCoords   int
	Normals         int
	NegativeIndices int // faces using negative (relative) references
	MaterialRefs    int // mtllib/usemtl lines
	MaxIndex        int // largest vertex reference seen on any face
}

// Issues lists the defects that break downstream importers. An empty
// result means the file carries vertex colors, positive in-range
// indices and no external resource references.
func (r *OBJReport) Issues() []string {
	var issues []string
	if r.NegativeIndices > 0 {
		issues = append(issues, fmt.Sprintf("%d faces use negative indices", r.NegativeIndices))
	}
	if r.MaxIndex > r.Vertices {
		issues = append(issues, fmt.Sprintf("face references vertex %d but file has %d vertices", r.MaxIndex, r.Vertices))
	}
	if r.MaterialRefs > 0 {
		issues = append(issues, fmt.Sprintf("%d material/texture references require external files", r.MaterialRefs))
	}
	if r.TextureCoords > 0 {
		issues = append(issues, fmt.Sprintf("%d texture coordinates depend on an external texture", r.TextureCoords))
	}
	if r.Vertices > 0 && r.ColoredVertices == 0 {
		issues = append(issues, "no vertex colors")
	}
	if r.ColoredVertices > 0 && r.ColoredVertices < r.Vertices {
		issues = append(issues, fmt.Sprintf("only %d of %d vertices carry colors", r.ColoredVertices, r.Vertices))
	}
	return issues
}

// ValidateOBJ scans a vertex-colored OBJ stream and reports the
// statistics the generator's output must satisfy.
func ValidateOBJ(r io.Reader) (*OBJReport, error) {
	rep := &OBJReport{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			rep.Vertices++
			// Position plus color makes at least 7 fields.
			if len(fields) >= 7 {
				rep.ColoredVertices++
			}
		case "vt":
			rep.TextureCoords++
		case "vn":
			rep.Normals++
		case "mtllib", "usemtl":
			rep.MaterialRefs++
		case "f":
			rep.Faces++
			negative := false
			for _, ref := range fields[1:] {
				idxStr := ref
				if i := strings.IndexByte(ref, '/'); i >= 0 {
					idxStr = ref[:i]
				}
				idx, err := strconv.Atoi(idxStr)
				if err != nil {
					return nil, fmt.Errorf("malformed face reference %q", ref)
				}
				if idx < 0 {
					negative = true
				} else if idx > rep.MaxIndex {
					rep.MaxIndex = idx
				}
			}
			if negative {
				rep.NegativeIndices++
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rep, nil
}
