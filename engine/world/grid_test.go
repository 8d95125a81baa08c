package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pixels builds a width x height RGBA buffer from per-pixel red values.
func pixels(width, height int, reds []uint8) []uint8 {
	pix := make([]uint8, width*height*4)
	for i, r := range reds {
		pix[i*4] = r
		pix[i*4+1] = 100
		pix[i*4+2] = 200
		pix[i*4+3] = 255
	}
	return pix
}

func TestBuildMapHeightsAndGrid(t *testing.T) {
	// row z=0: 0 1 3
	// row z=1: 2 0 0
	pix := pixels(3, 2, []uint8{0, 1, 3, 2, 0, 0})
	sm, grid, err := BuildMap(pix, 3, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, 1+3+2, sm.CubeCount())
	assert.Equal(t, (1+3+2)*geometry.CubeVertexCount, sm.VertexCount())

	assert.Equal(t, CellEmpty, grid.Cell(0, 0))
	assert.Equal(t, CellEmpty, grid.Cell(1, 0))
	assert.Equal(t, CellBlocked, grid.Cell(2, 0))
	assert.Equal(t, CellBlocked, grid.Cell(0, 1))
	assert.Equal(t, CellEmpty, grid.Cell(2, 1))

	vb := sm.Buffers()
	assert.Equal(t, mgl32.Vec4{1.0 / 255, 100.0 / 255, 200.0 / 255, 1}, vb.Color(0))
}

func TestGridBounds(t *testing.T) {
	grid := NewGrid(2, 2)
	assert.Equal(t, CellBlocked, grid.Cell(-1, 0))
	assert.Equal(t, CellBlocked, grid.Cell(2, 0))
	assert.False(t, grid.CanOccupy(1.5, 0))
	assert.True(t, grid.CanOccupy(0.5, 0.5))

	var missing *Grid
	assert.False(t, missing.CanOccupy(0, 0))
}

func TestBuildMapRejectsShortInput(t *testing.T) {
	_, _, err := BuildMap(make([]uint8, 4), 2, 2, 1)
	assert.Error(t, err)
	_, _, err = BuildMap(nil, 0, 2, 1)
	assert.Error(t, err)
}

func TestBlitzCollisionAgainstBuiltGrid(t *testing.T) {
	// a 4x1 corridor: x=0,1 free, x=2 wall (red 5), x=3 free
	pix := pixels(4, 1, []uint8{0, 1, 5, 0})
	_, grid, err := BuildMap(pix, 4, 1, 1)
	require.NoError(t, err)

	b := geometry.NewBlitz(mgl32.Vec3{0, 0.5, 0})
	b.AddCube(0.8, mgl32.Vec3{0, 0.6, 0}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1})

	ok, err := b.TranslateForward(0.5, grid)
	require.NoError(t, err)
	require.True(t, ok, "red 1 is walkable")
	assert.InDelta(t, 0.5, b.Position().X(), 1e-6)

	ok, err = b.TranslateForward(1.0, grid)
	require.NoError(t, err)
	assert.False(t, ok, "ceil(1.5) = 2 is a wall")
	assert.InDelta(t, 0.5, b.Position().X(), 1e-6)

	// destination-only check: jumping over the wall is accepted
	ok, err = b.TranslateForward(2.25, grid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 2.75, b.Position().X(), 1e-6)
}
