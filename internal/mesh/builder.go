package mesh

import (
	"terrain-gen/internal/raster"
	"terrain-gen/internal/terrain"
)

// Builder walks every 2x2 quad of the elevation grid and emits two
// triangles per quad whose four corners are all usable: non-nodata in
// the DEM and, when a class grid is present, defined after alignment.
// Quads with any unusable corner are skipped whole; no partial or
// degenerate faces are ever produced. Corners shared between adjacent
// quads map to exactly one vertex.
type Builder struct {
	elev          *raster.Grid
	classes       *terrain.ClassGrid
	colorize      terrain.Colorizer
	transform     terrain.Transformer
	baseThickness float64
}

// NewBuilder wires the builder to its inputs. classes may be nil when
// colorizing does not depend on the zonemap (gradient mode). A
// baseThickness > 0 adds a flat bottom and perimeter walls so the
// model prints watertight.
func NewBuilder(elev *raster.Grid, classes *terrain.ClassGrid, c terrain.Colorizer, t terrain.Transformer, baseThickness float64) *Builder {
	return &Builder{
		elev:          elev,
		classes:       classes,
		colorize:      c,
		transform:     t,
		baseThickness: baseThickness,
	}
}

// Build produces the complete mesh. Every vertex in the result is
// referenced by at least one triangle, and all top-surface triangles
// share the winding that makes their normals point up (+Z).
func (b *Builder) Build() (*Mesh, error) {
	m := &Mesh{}
	rows, cols := b.elev.Rows, b.elev.Cols
	if rows < 2 || cols < 2 {
		return m, nil
	}

	vmap := newIndexMap(rows * cols)
	flip := b.windingFlipped()

	for r := 0; r < rows-1; r++ {
		for c := 0; c < cols-1; c++ {
			if !b.usable(r, c) || !b.usable(r, c+1) || !b.usable(r+1, c+1) || !b.usable(r+1, c) {
				continue
			}
			a, err := b.corner(m, vmap, r, c)
			if err != nil {
				return nil, err
			}
			e, err := b.corner(m, vmap, r, c+1)
			if err != nil {
				return nil, err
			}
			f, err := b.corner(m, vmap, r+1, c+1)
			if err != nil {
				return nil, err
			}
			d, err := b.corner(m, vmap, r+1, c)
			if err != nil {
				return nil, err
			}
			// Fixed diagonal (r,c)-(r+1,c+1).
			if flip {
				m.Triangles = append(m.Triangles, Triangle{a, f, e}, Triangle{a, d, f})
			} else {
				m.Triangles = append(m.Triangles, Triangle{a, e, f}, Triangle{a, f, d})
			}
		}
	}

	if b.baseThickness > 0 {
		b.buildBase(m, vmap, flip)
	}
	return m, nil
}

// usable reports whether a grid corner may participate in a quad.
func (b *Builder) usable(row, col int) bool {
	if !b.elev.Valid(row, col) {
		return false
	}
	return b.classes == nil || b.classes.Defined(row, col)
}

// corner returns the vertex index for a grid corner, creating it on
// first reference so unreferenced corners never reach the output.
func (b *Builder) corner(m *Mesh, vmap []int32, row, col int) (int, error) {
	if idx := vmap[row*b.elev.Cols+col]; idx >= 0 {
		return int(idx), nil
	}
	elev := b.elev.At(row, col)
	color, err := b.colorize.Colorize(row, col, elev)
	if err != nil {
		return 0, err
	}
	m.Vertices = append(m.Vertices, Vertex{
		Position: b.transform.Transform(row, col, elev),
		Color:    color,
		Row:      row,
		Col:      col,
	})
	idx := int32(len(m.Vertices) - 1)
	vmap[row*b.elev.Cols+col] = idx
	return int(idx), nil
}

// windingFlipped probes the transform to learn whether stepping east
// then south runs clockwise seen from above, which happens in
// real-world mode where Y decreases with increasing row. The result
// fixes one winding for the whole mesh.
func (b *Builder) windingFlipped() bool {
	p := b.transform.Transform(0, 0, 0)
	east := b.transform.Transform(0, 1, 0).Sub(p)
	south := b.transform.Transform(1, 0, 0).Sub(p)
	return east.Cross(south).Z() < 0
}

// buildBase closes the surface into a printable solid: a flat bottom
// mirror of every complete quad with reversed winding, plus walls
// along the outer grid border connecting the two surfaces.
func (b *Builder) buildBase(m *Mesh, vmap []int32, flip bool) {
	rows, cols := b.elev.Rows, b.elev.Cols
	bmap := newIndexMap(rows * cols)

	bottom := func(row, col int) int {
		if idx := bmap[row*cols+col]; idx >= 0 {
			return int(idx)
		}
		top := m.Vertices[vmap[row*cols+col]]
		pos := top.Position
		pos[2] = -b.baseThickness
		m.Vertices = append(m.Vertices, Vertex{Position: pos, Color: top.Color, Row: row, Col: col})
		idx := int32(len(m.Vertices) - 1)
		bmap[row*cols+col] = idx
		return int(idx)
	}

	for r := 0; r < rows-1; r++ {
		for c := 0; c < cols-1; c++ {
			// The bottom mirrors exactly the quads the top emitted.
			if vmap[r*cols+c] < 0 || vmap[r*cols+c+1] < 0 || vmap[(r+1)*cols+c+1] < 0 || vmap[(r+1)*cols+c] < 0 {
				continue
			}
			a := bottom(r, c)
			e := bottom(r, c+1)
			f := bottom(r+1, c+1)
			d := bottom(r+1, c)
			if flip {
				m.Triangles = append(m.Triangles, Triangle{a, e, f}, Triangle{a, f, d})
			} else {
				m.Triangles = append(m.Triangles, Triangle{a, f, e}, Triangle{a, d, f})
			}
		}
	}

	// Walls along the west and east borders.
	for r := 0; r < rows-1; r++ {
		for _, c := range [2]int{0, cols - 1} {
			t1, t2 := vmap[r*cols+c], vmap[(r+1)*cols+c]
			if t1 < 0 || t2 < 0 {
				continue
			}
			b1, b2 := bottom(r, c), bottom(r+1, c)
			m.Triangles = append(m.Triangles,
				Triangle{int(t1), b1, b2},
				Triangle{int(t1), b2, int(t2)})
		}
	}
	// Walls along the north and south borders.
	for c := 0; c < cols-1; c++ {
		for _, r := range [2]int{0, rows - 1} {
			t1, t2 := vmap[r*cols+c], vmap[r*cols+c+1]
			if t1 < 0 || t2 < 0 {
				continue
			}
			b1, b2 := bottom(r, c), bottom(r, c+1)
			m.Triangles = append(m.Triangles,
				Triangle{int(t1), int(t2), b2},
				Triangle{int(t1), b2, b1})
		}
	}
}

func newIndexMap(n int) []int32 {
	vmap := make([]int32, n)
	for i := range vmap {
		vmap[i] = -1
	}
	return vmap
}
