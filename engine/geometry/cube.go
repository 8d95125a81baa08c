package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

// CubeVertexCount is the number of vertices of one cube: 6 faces of 2 triangles.
const CubeVertexCount = 36

// cubeCornerOrder indexes the 8 corners (v1..v8 as 0..7) into 12 triangles,
// face by face: +Z, +X, -Z, -X, +Y, -Y.
var cubeCornerOrder = [CubeVertexCount]int{
	2, 1, 0, 3, 1, 2,
	3, 5, 1, 7, 5, 3,
	7, 4, 5, 6, 4, 7,
	6, 0, 4, 2, 0, 6,
	0, 5, 4, 1, 5, 0,
	6, 3, 2, 7, 3, 6,
}

var cubeFaceNormals = [6]mgl32.Vec3{
	{0, 0, 1},
	{1, 0, 0},
	{0, 0, -1},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
}

// cubeVertices builds the 36 vertices of an axis-aligned box. Vertices keep
// their random default colors and get the face normal.
func cubeVertices(size float32, center, scale mgl32.Vec3) []Vertex {
	h := size / 2
	hx, hy, hz := h*scale.X(), h*scale.Y(), h*scale.Z()
	cx, cy, cz := center.X(), center.Y(), center.Z()

	corners := [8]mgl32.Vec3{
		{cx - hx, cy + hy, cz + hz},
		{cx + hx, cy + hy, cz + hz},
		{cx - hx, cy - hy, cz + hz},
		{cx + hx, cy - hy, cz + hz},
		{cx - hx, cy + hy, cz - hz},
		{cx + hx, cy + hy, cz - hz},
		{cx - hx, cy - hy, cz - hz},
		{cx + hx, cy - hy, cz - hz},
	}

	out := make([]Vertex, CubeVertexCount)
	for i, c := range cubeCornerOrder {
		v := NewVertex(corners[c].X(), corners[c].Y(), corners[c].Z())
		n := cubeFaceNormals[i/6]
		v.Normal = &n
		out[i] = v
	}
	return out
}

func coloredCubeVertices(size float32, center, scale mgl32.Vec3, color mgl32.Vec3) []Vertex {
	vs := cubeVertices(size, center, scale)
	for i := range vs {
		vs[i].Color = color.Vec4(1)
	}
	return vs
}

// Cube is a single flat-colored box that can slide along X and Z.
type Cube struct {
	base
	size     float32
	position mgl32.Vec3
}

func NewCube(size float32, center mgl32.Vec3, color mgl32.Vec3, scale mgl32.Vec3) *Cube {
	c := &Cube{
		base:     newBase(metadata.ShaderLit, metadata.ViewCurrent, mapLight),
		size:     size,
		position: center,
	}
	c.vertices = coloredCubeVertices(size, center, scale, color)
	c.finalize()
	return c
}

func (c *Cube) Size() float32 {
	return c.size
}

// Position is the tracked center after every translation.
func (c *Cube) Position() mgl32.Vec3 {
	return c.position
}

func (c *Cube) TranslateForward(units float32) {
	c.transform.Translate(units, 0, 0)
	c.position[0] += units
}

func (c *Cube) TranslateRight(units float32) {
	c.transform.Translate(0, 0, units)
	c.position[2] += units
}
