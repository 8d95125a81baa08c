package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/rand"
)

// Vertex is one emitted vertex. UV and Normal are nil when the source had none.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
	UV       *mgl32.Vec2
	Normal   *mgl32.Vec3
}

// NewVertex places a vertex at (x, y, z) with a random opaque color.
func NewVertex(x, y, z float32) Vertex {
	return Vertex{
		Position: mgl32.Vec3{x, y, z},
		Color:    mgl32.Vec4{rand.Float32(), rand.Float32(), rand.Float32(), 1},
	}
}

