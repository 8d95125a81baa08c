package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

// StaticMap collects many cubes into a single geometry. Cubes are added
// first, then Finalize builds the buffers once.
type StaticMap struct {
	base
	width  int
	height int
	cubes  int
}

func NewStaticMap(width, height int) *StaticMap {
	return &StaticMap{
		base:   newBase(metadata.ShaderLit, metadata.ViewCurrent, mapLight),
		width:  width,
		height: height,
	}
}

func (sm *StaticMap) AddCube(size float32, center mgl32.Vec3, color mgl32.Vec3) {
	sm.vertices = append(sm.vertices, coloredCubeVertices(size, center, mgl32.Vec3{1, 1, 1}, color)...)
	sm.cubes++
}

// Finalize flattens every added cube. Cubes added later are ignored until
// Finalize runs again.
func (sm *StaticMap) Finalize() {
	sm.finalize()
}

func (sm *StaticMap) CubeCount() int {
	return sm.cubes
}

func (sm *StaticMap) Dimensions() (int, int) {
	return sm.width, sm.height
}
