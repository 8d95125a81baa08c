package geometry

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/math"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

var (
	ErrEmptyMesh       = errors.New("mesh has no indices")
	ErrNotTriangulated = errors.New("index count is not a multiple of 3")
	ErrIndexOutOfRange = errors.New("mesh index out of range")
	ErrGridNotReady    = errors.New("collision grid is not loaded")
)

// Geometry is the closed set of drawable scene objects: Cube, TiltedCube,
// StaticMap, Blitz and LoadedOBJ.
type Geometry interface {
	ID() string
	Shader() metadata.ShaderKind
	// Animate advances per-object animation by delta seconds.
	Animate(delta float64)
	// RenderData computes the draw data of the geometry without drawing it.
	RenderData() []*metadata.GeometryRenderData

	sealed()
}

// Occupancy answers whether a world position may be stood on.
type Occupancy interface {
	CanOccupy(x, z float32) bool
}

// Lighting of the map-like lit geometry: Cube, StaticMap and Blitz parts.
var mapLight = metadata.LightParams{
	Ambient:         mgl32.Vec3{0.15, 0.15, 0.15},
	DirectionOffset: mgl32.Vec3{0.8, 0, 1.4},
}

// base holds what every variant shares: identity, pipeline, transform and
// the vertex list that is flattened once into buffers.
type base struct {
	id        string
	shader    metadata.ShaderKind
	view      metadata.ViewSource
	light     metadata.LightParams
	transform *math.Transform
	vertices  []Vertex
	buffers   *metadata.VertexBuffers
}

func newBase(shader metadata.ShaderKind, view metadata.ViewSource, light metadata.LightParams) base {
	return base{
		id:        core.NewIdentifier(),
		shader:    shader,
		view:      view,
		light:     light,
		transform: math.NewTransform(),
	}
}

func (b *base) ID() string {
	return b.id
}

func (b *base) Shader() metadata.ShaderKind {
	return b.shader
}

func (b *base) Animate(float64) {}

func (b *base) sealed() {}

func (b *base) Vertices() []Vertex {
	return b.vertices
}

func (b *base) VertexCount() int {
	return len(b.vertices)
}

func (b *base) ModelMatrix() mgl32.Mat4 {
	return b.transform.Matrix()
}

func (b *base) Buffers() *metadata.VertexBuffers {
	return b.buffers
}

// finalize flattens the vertex list. Normals and UVs are only kept when every
// vertex carries one.
func (b *base) finalize() {
	b.buffers = FlattenVertices(b.vertices)
}

func (b *base) renderData() *metadata.GeometryRenderData {
	return &metadata.GeometryRenderData{
		ID:      b.id,
		Shader:  b.shader,
		View:    b.view,
		Model:   b.transform.Matrix(),
		Buffers: b.buffers,
		Light:   b.light,
	}
}

func (b *base) RenderData() []*metadata.GeometryRenderData {
	if b.buffers == nil {
		return nil
	}
	return []*metadata.GeometryRenderData{b.renderData()}
}

// FlattenVertices turns a vertex list into the interleaving-free streams the
// rasterizer consumes.
func FlattenVertices(vertices []Vertex) *metadata.VertexBuffers {
	n := len(vertices)
	vb := &metadata.VertexBuffers{
		Positions: make([]float32, 0, n*metadata.PositionComponents),
		Colors:    make([]float32, 0, n*metadata.ColorComponents),
		Count:     n,
	}

	hasNormals, hasUVs := n > 0, n > 0
	for i := range vertices {
		hasNormals = hasNormals && vertices[i].Normal != nil
		hasUVs = hasUVs && vertices[i].UV != nil
	}
	if hasNormals {
		vb.Normals = make([]float32, 0, n*metadata.NormalComponents)
	}
	if hasUVs {
		vb.UVs = make([]float32, 0, n*metadata.UVComponents)
	}

	for _, v := range vertices {
		vb.Positions = append(vb.Positions, v.Position[:]...)
		vb.Colors = append(vb.Colors, v.Color[:]...)
		if hasNormals {
			vb.Normals = append(vb.Normals, v.Normal[:]...)
		}
		if hasUVs {
			vb.UVs = append(vb.UVs, v.UV[:]...)
		}
	}
	return vb
}
