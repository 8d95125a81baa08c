package world

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/geometry"
)

type Cell int8

const (
	CellEmpty   Cell = 0
	CellBlocked Cell = -1
)

// Columns taller than this block movement.
const maxWalkableRed = 1

// Grid is the occupancy map indexed [x][z]. It is read-only once built.
type Grid struct {
	cells  [][]Cell
	width  int
	height int
}

func NewGrid(width, height int) *Grid {
	cells := make([][]Cell, width)
	for x := range cells {
		cells[x] = make([]Cell, height)
	}
	return &Grid{cells: cells, width: width, height: height}
}

func (g *Grid) Dimensions() (int, int) {
	return g.width, g.height
}

// Cell returns the state at (x, z). Cells outside the map are blocked.
func (g *Grid) Cell(x, z int) Cell {
	if g == nil || x < 0 || z < 0 || x >= g.width || z >= g.height {
		return CellBlocked
	}
	return g.cells[x][z]
}

func (g *Grid) set(x, z int, c Cell) {
	g.cells[x][z] = c
}

// CanOccupy rounds both coordinates up and reports whether that cell is free.
func (g *Grid) CanOccupy(x, z float32) bool {
	cx := int(gomath.Ceil(float64(x)))
	cz := int(gomath.Ceil(float64(z)))
	return g.Cell(cx, cz) != CellBlocked
}

// BuildMap turns row-major 8-bit RGBA pixels into a cube field and its
// occupancy grid. The red channel is the column height; red above 1 blocks.
func BuildMap(pix []uint8, width, height int, cubeSize float32) (*geometry.StaticMap, *Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, nil, fmt.Errorf("invalid map size %dx%d", width, height)
	}
	if len(pix) < width*height*4 {
		return nil, nil, fmt.Errorf("map needs %d bytes of RGBA, got %d", width*height*4, len(pix))
	}

	sm := geometry.NewStaticMap(width, height)
	grid := NewGrid(width, height)

	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			offset := z*width*4 + x*4
			r, g, b := pix[offset], pix[offset+1], pix[offset+2]

			if r > maxWalkableRed {
				grid.set(x, z, CellBlocked)
			}

			color := mgl32.Vec3{float32(r) / 255, float32(g) / 255, float32(b) / 255}
			for h := 0; h < int(r); h++ {
				center := mgl32.Vec3{float32(x), float32(h), float32(z)}.Mul(cubeSize)
				sm.AddCube(cubeSize, center, color)
			}
		}
	}
	sm.Finalize()

	core.LogDebug("map built: %dx%d, %d cubes", width, height, sm.CubeCount())
	return sm, grid, nil
}
